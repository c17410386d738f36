package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	srv, calls, _ := newScorer(t, http.StatusOK, scoredBody)

	stdout, _, err := executeCommand(t, "health", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Scoring service at "+srv.URL+": Backend running (HTTP 200)\n", stdout)
	assert.Zero(t, calls.Load())
}

func TestHealth_Unreachable(t *testing.T) {
	srv, _, _ := newScorer(t, http.StatusOK, scoredBody)
	url := srv.URL
	srv.Close()

	_, _, err := executeCommand(t, "health", "--base-url", url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring service is not healthy")
}

func TestHealth_RequiresBaseURL(t *testing.T) {
	_, _, err := executeCommand(t, "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL is required")
}
