package upload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

// MatchDetails carries the service's match information. Its shape is opaque to the client.
type MatchDetails struct {
	Matches json.RawMessage `json:"matches,omitempty"`
}

// ScoredResult is one resume's score as returned by the service.
type ScoredResult struct {
	Filename   string       `json:"filename"`
	Score      float64      `json:"score"`
	Details    MatchDetails `json:"details"`
	TextLength *int         `json:"text_length,omitempty"`
}

// ScoringResponse is the body of a successful upload. TopResume is nil when the service
// omitted it or sent null.
type ScoringResponse struct {
	TopResume      *ScoredResult  `json:"top_resume"`
	AllResults     []ScoredResult `json:"all_results"`
	ProcessingTime *float64       `json:"processing_time,omitempty"`
}

// ErrEmptyBody is returned by ParseResponse for a zero-length body.
var ErrEmptyBody = errors.New("empty response body")

// ParseResponse decodes and shape-checks an upload response body.
func ParseResponse(body []byte) (*ScoringResponse, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	if err := schemas.ValidateScoringResponse(body); err != nil {
		return nil, fmt.Errorf("response does not match the scoring response shape: %w", err)
	}

	var resp ScoringResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.AllResults == nil {
		resp.AllResults = []ScoredResult{}
	}
	return &resp, nil
}

// MatchText renders match information for display. Strings are shown as-is, numbers and
// booleans as their literal text, null or absent as "", string arrays joined with ", ", and
// anything else as compact JSON.
func MatchText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed)
	}

	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		// keep the service's own spelling of the number
		return string(trimmed)
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return compact(trimmed)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", ")
	default:
		return compact(trimmed)
	}
}

func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// serverMessage extracts the service's {"error": "..."} text from a failure body.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
