package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-matcher/internal/upload"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "validation", err: &upload.ValidationError{Field: upload.FieldResumes, Message: upload.MsgFileRequired}, want: http.StatusBadRequest},
		{name: "bad form", err: &ErrBadForm{Cause: errors.New("boundary")}, want: http.StatusBadRequest},
		{name: "in progress", err: upload.ErrSubmissionInProgress, want: http.StatusConflict},
		{name: "wrapped in progress", err: fmt.Errorf("submit: %w", upload.ErrSubmissionInProgress), want: http.StatusConflict},
		{name: "too large", err: &ErrFormTooLarge{Limit: 10}, want: http.StatusRequestEntityTooLarge},
		{name: "network", err: &upload.SubmissionError{Kind: upload.KindNetwork}, want: http.StatusBadGateway},
		{name: "status", err: &upload.SubmissionError{Kind: upload.KindStatus, StatusCode: 400}, want: http.StatusBadGateway},
		{name: "body", err: &upload.SubmissionError{Kind: upload.KindBody}, want: http.StatusBadGateway},
		{name: "payload", err: &upload.SubmissionError{Kind: upload.KindPayload}, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "upload exceeds 1024 bytes", (&ErrFormTooLarge{Limit: 1024}).Error())

	cause := errors.New("no boundary")
	err := &ErrBadForm{Cause: cause}
	assert.Equal(t, "invalid form: no boundary", err.Error())
	assert.ErrorIs(t, err, cause)
}
