package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_RequiresBaseURL(t *testing.T) {
	stdout, _, err := executeCommand(t, "serve", "--port", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL is required")
	assert.Empty(t, stdout)
}

func TestServe_InvalidBaseURL(t *testing.T) {
	_, _, err := executeCommand(t, "serve", "--base-url", "not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}
