package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jonathan/resume-matcher/internal/upload"
)

//go:embed templates/console.html.tmpl
var templateFS embed.FS

var consoleTemplate = template.Must(template.ParseFS(templateFS, "templates/console.html.tmpl"))

// Page is the data behind the console page.
type Page struct {
	Snapshot
	JobDescription string
	SubmitPath     string
}

// Placeholder is the top-result text used when the service sent no top resume.
func (Page) Placeholder() string {
	return upload.NoResultsPlaceholder
}

// WritePage renders the console page for page to w.
func WritePage(w io.Writer, page Page) error {
	if page.SubmitPath == "" {
		page.SubmitPath = "/submit"
	}
	if err := consoleTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render console page: %w", err)
	}
	return nil
}
