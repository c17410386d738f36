// Package upload implements the submit-and-render cycle against the resume scoring service:
// input validation, multipart payload construction, one POST to {base_url}/upload, response
// interpretation and projection onto a Display.
package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Multipart field names understood by the scoring service.
const (
	FieldJobDescription = "job_description"
	FieldResumes        = "resumes"
)

// Notice messages for the two input preconditions.
const (
	MsgJobDescriptionRequired = "job description required"
	MsgFileRequired           = "at least one file required"
)

var validate = validator.New()

// File is one selected resume: its display name and raw bytes.
type File struct {
	Name string
	Data []byte
}

// SubmissionInput is gathered at trigger time and discarded once the payload is built.
type SubmissionInput struct {
	JobDescription string `validate:"required"`
	Files          []File `validate:"min=1"`
}

// Validate checks the preconditions in order: a non-blank job description, then at least
// one file. Only the first failure is reported.
func (in SubmissionInput) Validate() error {
	trimmed := in
	trimmed.JobDescription = strings.TrimSpace(in.JobDescription)

	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "JobDescription":
			return &ValidationError{Field: FieldJobDescription, Message: MsgJobDescriptionRequired}
		case "Files":
			return &ValidationError{Field: FieldResumes, Message: MsgFileRequired}
		}
	}
	return &ValidationError{Message: err.Error()}
}

// FileFromPath reads a resume from disk. The file name shown to the service is the base name.
func FileFromPath(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, fmt.Errorf("resume not found: %w", err)
		}
		return File{}, fmt.Errorf("failed to read resume: %w", err)
	}
	return File{Name: filepath.Base(path), Data: data}, nil
}

// LoadFiles reads every path in order. Entries containing glob metacharacters are expanded
// in lexical order and must match at least one file.
func LoadFiles(patterns []string) ([]File, error) {
	files := make([]File, 0, len(patterns))
	for _, pattern := range patterns {
		paths := []string{pattern}
		if strings.ContainsAny(pattern, "*?[") {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid resume pattern %q: %w", pattern, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no resumes match %q", pattern)
			}
			paths = matches
		}
		for _, p := range paths {
			f, err := FileFromPath(p)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	}
	return files, nil
}
