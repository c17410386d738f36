package upload

import (
	"errors"
	"fmt"
	"time"
)

// ErrSubmissionInProgress is returned when a trigger arrives while another submission is
// still waiting for its response.
var ErrSubmissionInProgress = errors.New("a submission is already in progress")

// ValidationError reports a failed input precondition. No request was attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Kind tags the ways a dispatched submission can fail.
type Kind int

const (
	// KindNetwork: the service could not be reached or the body could not be read.
	KindNetwork Kind = iota + 1
	// KindStatus: the service answered with a non-2xx status.
	KindStatus
	// KindBody: the service answered 2xx but the body is not a scoring response.
	KindBody
	// KindPayload: the request body could not be built. Nothing was sent.
	KindPayload
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindBody:
		return "body"
	case KindPayload:
		return "payload"
	default:
		return "unknown"
	}
}

// SubmissionError reports a dispatched submission that produced no renderable result.
type SubmissionError struct {
	Kind          Kind
	URL           string
	StatusCode    int
	ServerMessage string
	// Elapsed is zero when no response arrived.
	Elapsed time.Duration
	Cause   error
}

func (e *SubmissionError) Error() string {
	msg := fmt.Sprintf("submission to %s failed (%s)", e.URL, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.ServerMessage != "" {
		msg += ": " + e.ServerMessage
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}

// UserMessage is the notice text shown for this failure.
func (e *SubmissionError) UserMessage() string {
	switch e.Kind {
	case KindStatus:
		if e.ServerMessage != "" {
			return fmt.Sprintf("Scoring service rejected the request (HTTP %d): %s", e.StatusCode, e.ServerMessage)
		}
		return fmt.Sprintf("Scoring service rejected the request (HTTP %d).", e.StatusCode)
	case KindBody:
		return "Scoring service returned a response that could not be read."
	case KindPayload:
		return "The selected files could not be prepared for upload."
	default:
		return "Error connecting to the scoring service. Make sure it is running."
	}
}

// IsKind reports whether err is a SubmissionError of the given kind.
func IsKind(err error, kind Kind) bool {
	var subErr *SubmissionError
	return errors.As(err, &subErr) && subErr.Kind == kind
}
