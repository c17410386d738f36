package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/upload"
)

// ErrFormTooLarge indicates the uploaded form exceeded the configured size limit
type ErrFormTooLarge struct {
	Limit int64
}

func (e *ErrFormTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// ErrBadForm indicates the request body could not be parsed as a form
type ErrBadForm struct {
	Cause error
}

func (e *ErrBadForm) Error() string {
	return fmt.Sprintf("invalid form: %v", e.Cause)
}

func (e *ErrBadForm) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validationErr *upload.ValidationError
		submissionErr *upload.SubmissionError
		tooLargeErr   *ErrFormTooLarge
		badFormErr    *ErrBadForm
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &badFormErr):
		return http.StatusBadRequest
	case errors.Is(err, upload.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &submissionErr):
		if submissionErr.Kind == upload.KindPayload {
			return http.StatusInternalServerError
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
