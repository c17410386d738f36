package upload

import (
	"fmt"
	"time"
)

// NoResultsPlaceholder is shown in the top-result region when the service sent no top resume.
const NoResultsPlaceholder = "No resumes found"

// Display receives the render operations for one completed submission. Implementations
// own their regions; the controller never reads them back.
type Display interface {
	SetElapsed(elapsed string)
	// SetTopResult with nil shows NoResultsPlaceholder.
	SetTopResult(top *TopResult)
	ClearResults()
	AppendResult(entry ResultEntry)
	Notify(n Notice)
}

// NoticeKind classifies a user notice.
type NoticeKind string

const (
	NoticeValidation NoticeKind = "validation"
	NoticeSubmission NoticeKind = "submission"
	NoticeBusy       NoticeKind = "busy"
)

// Notice is a blocking message for the user. It never changes the rendered regions.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// TopResult is the display form of the top-ranked resume.
type TopResult struct {
	Filename string `json:"filename"`
	Score    string `json:"score"`
	Matches  string `json:"matches"`
}

// ResultEntry is one line of the ranked list.
type ResultEntry struct {
	Filename string `json:"filename"`
	Score    string `json:"score"`
}

func (e ResultEntry) String() string {
	return fmt.Sprintf("%s — %s", e.Filename, e.Score)
}

// FormatScore renders a 0..1 score as a percentage with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}

// FormatElapsed renders a duration in seconds with two decimals. Negative durations render as 0.00.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.2f", d.Seconds())
}

// View is the render state derived from one response.
type View struct {
	Elapsed string        `json:"elapsed"`
	Top     *TopResult    `json:"top_resume"`
	Entries []ResultEntry `json:"all_results"`
}

// Project derives the view of a response received after elapsed.
func Project(resp *ScoringResponse, elapsed time.Duration) View {
	v := View{
		Elapsed: FormatElapsed(elapsed),
		Entries: make([]ResultEntry, 0, len(resp.AllResults)),
	}
	if resp.TopResume != nil {
		v.Top = &TopResult{
			Filename: resp.TopResume.Filename,
			Score:    FormatScore(resp.TopResume.Score),
			Matches:  MatchText(resp.TopResume.Details.Matches),
		}
	}
	for _, r := range resp.AllResults {
		v.Entries = append(v.Entries, ResultEntry{Filename: r.Filename, Score: FormatScore(r.Score)})
	}
	return v
}

// Apply replays the view onto d: elapsed, top result, then a cleared and refilled list.
func (v View) Apply(d Display) {
	d.SetElapsed(v.Elapsed)
	d.SetTopResult(v.Top)
	d.ClearResults()
	for _, e := range v.Entries {
		d.AppendResult(e)
	}
}
