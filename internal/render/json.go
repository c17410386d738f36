package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/resume-matcher/internal/upload"
)

// JSON collects one render pass and writes it as a single document on Flush.
type JSON struct {
	*Board
	out io.Writer
}

// NewJSON creates a JSON display writing to out.
func NewJSON(out io.Writer) *JSON {
	return &JSON{Board: NewBoard(), out: out}
}

// Document is the written form of a snapshot.
type Document struct {
	ProcessingTime string               `json:"processing_time,omitempty"`
	TopResume      *upload.TopResult    `json:"top_resume"`
	AllResults     []upload.ResultEntry `json:"all_results"`
	Notice         *upload.Notice       `json:"notice,omitempty"`
}

// Flush writes the collected regions, or only the notice when nothing was rendered.
func (j *JSON) Flush() error {
	s := j.Snapshot()
	doc := Document{
		ProcessingTime: s.Elapsed,
		TopResume:      s.Top,
		AllResults:     s.Entries,
		Notice:         s.Notice,
	}

	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
