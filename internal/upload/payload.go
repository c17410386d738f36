package upload

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
)

// Payload is an encoded multipart/form-data request body.
type Payload struct {
	Body        []byte
	ContentType string
	FileCount   int
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildPayload encodes the trimmed job description followed by one resumes part per file,
// in the order the files were selected.
func BuildPayload(in SubmissionInput) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(FieldJobDescription, strings.TrimSpace(in.JobDescription)); err != nil {
		return nil, fmt.Errorf("failed to write %s field: %w", FieldJobDescription, err)
	}

	for _, f := range in.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(FieldResumes), quoteEscaper.Replace(f.Name)))
		h.Set("Content-Type", contentType(f))

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("failed to create part for %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize payload: %w", err)
	}

	return &Payload{
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
		FileCount:   len(in.Files),
	}, nil
}

// contentType prefers the extension mapping (what a browser file picker sends) and falls back
// to sniffing the bytes.
func contentType(f File) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name))); ct != "" {
		return ct
	}
	if len(f.Data) == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(f.Data)
}
