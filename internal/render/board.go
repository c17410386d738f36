// Package render provides Display implementations for the submit-and-render cycle: an
// in-memory board for the web console, a boxed terminal printer and a JSON writer.
package render

import (
	"sync"

	"github.com/jonathan/resume-matcher/internal/upload"
)

// Snapshot is a copy of the display regions at one point in time.
type Snapshot struct {
	Elapsed   string               `json:"processing_time"`
	Top       *upload.TopResult    `json:"top_resume"`
	NoResults bool                 `json:"no_results"`
	Entries   []upload.ResultEntry `json:"all_results"`
	Notice    *upload.Notice       `json:"notice,omitempty"`
	// Rendered is false until the first successful submission.
	Rendered bool `json:"rendered"`
}

// ProcessingText is the elapsed-time region text, empty before the first render.
func (s Snapshot) ProcessingText() string {
	if s.Elapsed == "" {
		return ""
	}
	return "Processed in " + s.Elapsed + " seconds"
}

// Board holds the regions in memory. It is safe for concurrent use.
type Board struct {
	mu    sync.RWMutex
	state Snapshot
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{state: Snapshot{Entries: []upload.ResultEntry{}}}
}

// SetElapsed starts a new render pass and drops any pending notice.
func (b *Board) SetElapsed(elapsed string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Elapsed = elapsed
	b.state.Notice = nil
	b.state.Rendered = true
}

func (b *Board) SetTopResult(top *upload.TopResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if top == nil {
		b.state.Top = nil
		b.state.NoResults = true
		return
	}
	copied := *top
	b.state.Top = &copied
	b.state.NoResults = false
}

func (b *Board) ClearResults() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Entries = []upload.ResultEntry{}
}

func (b *Board) AppendResult(entry upload.ResultEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Entries = append(b.state.Entries, entry)
}

// Notify records the notice without touching the regions.
func (b *Board) Notify(n upload.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Notice = &n
}

// DismissNotice clears the pending notice.
func (b *Board) DismissNotice() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Notice = nil
}

// Snapshot returns a deep copy of the current regions.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := b.state
	if b.state.Top != nil {
		top := *b.state.Top
		s.Top = &top
	}
	if b.state.Notice != nil {
		notice := *b.state.Notice
		s.Notice = &notice
	}
	s.Entries = append([]upload.ResultEntry{}, b.state.Entries...)
	return s
}
