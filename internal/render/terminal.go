package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/upload"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Terminal collects one render pass and prints it as boxed regions on Flush.
// Notices are written to errOut immediately.
type Terminal struct {
	out        io.Writer
	errOut     io.Writer
	maxEntries int
	board      *Board
}

// NewTerminal creates a Terminal writing regions to out and notices to errOut.
func NewTerminal(out, errOut io.Writer) *Terminal {
	return &Terminal{
		out:    out,
		errOut: errOut,
		board:  NewBoard(),
	}
}

// WithMaxEntries limits how many list entries are printed. Zero prints all of them.
func (t *Terminal) WithMaxEntries(n int) *Terminal {
	t.maxEntries = n
	return t
}

func (t *Terminal) SetElapsed(elapsed string) {
	t.board.SetElapsed(elapsed)
}

func (t *Terminal) SetTopResult(top *upload.TopResult) {
	t.board.SetTopResult(top)
}

func (t *Terminal) ClearResults() {
	t.board.ClearResults()
}

func (t *Terminal) AppendResult(e upload.ResultEntry) {
	t.board.AppendResult(e)
}

// Notify prints the notice to errOut.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (t *Terminal) Notify(n upload.Notice) {
	fmt.Fprintf(t.errOut, "⚠ %s\n", n.Message)
}

// Flush prints the regions. Nothing is printed before the first successful render.
func (t *Terminal) Flush() error {
	s := t.board.Snapshot()
	if !s.Rendered {
		return nil
	}

	var sb strings.Builder
	writeBox(&sb, "PROCESSING TIME", s.ProcessingText())
	writeBox(&sb, "TOP RESUME", topText(s))
	writeBox(&sb, "ALL RESULTS", t.entriesText(s.Entries))

	_, err := io.WriteString(t.out, sb.String())
	return err
}

func topText(s Snapshot) string {
	if s.Top == nil {
		return upload.NoResultsPlaceholder
	}
	var sb strings.Builder
	sb.WriteString(s.Top.Filename + "\n")
	sb.WriteString(fmt.Sprintf("Score: %s\n", s.Top.Score))
	sb.WriteString(fmt.Sprintf("Matched Keywords: %s", s.Top.Matches))
	return sb.String()
}

func (t *Terminal) entriesText(entries []upload.ResultEntry) string {
	if len(entries) == 0 {
		return "(empty)"
	}

	count := len(entries)
	if t.maxEntries > 0 {
		count = min(count, t.maxEntries)
	}

	lines := make([]string, 0, count+1)
	for i := 0; i < count; i++ {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, entries[i]))
	}
	if count < len(entries) {
		lines = append(lines, fmt.Sprintf("... and %d more", len(entries)-count))
	}
	return strings.Join(lines, "\n")
}

// writeBox writes a formatted box with a title and content.
func writeBox(sb *strings.Builder, title, content string) {
	border := strings.Repeat("─", boxWidth-2)
	sb.WriteString("┌" + border + "┐\n")
	sb.WriteString("│ " + pad(title, boxWidth-4) + " │\n")
	sb.WriteString("├" + border + "┤\n")
	for _, line := range strings.Split(content, "\n") {
		sb.WriteString("│ " + pad(truncate(line, boxWidth-4), boxWidth-4) + " │\n")
	}
	sb.WriteString("└" + border + "┘\n")
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
