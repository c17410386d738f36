package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/render"
	"github.com/jonathan/resume-matcher/internal/upload"
)

// submitResponse is the JSON answer to POST /submit.
type submitResponse struct {
	RequestID string          `json:"request_id,omitempty"`
	State     render.Snapshot `json:"state"`
	Error     string          `json:"error,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleState returns the current display regions
func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.board.Snapshot())
}

// handleIndex renders the console page. A pending notice is shown once.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writePage(w, http.StatusOK, "")
}

// handleSubmit runs one submission from the console form
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	in, err := s.readSubmission(w, r)
	if err != nil {
		s.logger.Debug("rejected form", zap.Error(err))
		s.board.Notify(upload.Notice{Kind: upload.NoticeValidation, Message: err.Error()})
		s.respondSubmit(w, r, HTTPStatus(err), "", in.JobDescription, err.Error())
		return
	}

	outcome, err := s.submitter.Submit(r.Context(), in)
	if err != nil {
		status := HTTPStatus(err)
		s.respondSubmit(w, r, status, "", in.JobDescription, userMessage(err))
		return
	}

	s.respondSubmit(w, r, http.StatusOK, outcome.RequestID, in.JobDescription, "")
}

func (s *Server) respondSubmit(w http.ResponseWriter, r *http.Request, status int, requestID, jobDescription, errMsg string) {
	if wantsJSON(r) {
		snapshot := s.board.Snapshot()
		s.board.DismissNotice()
		s.jsonResponse(w, status, submitResponse{RequestID: requestID, State: snapshot, Error: errMsg})
		return
	}
	s.writePage(w, status, jobDescription)
}

func (s *Server) writePage(w http.ResponseWriter, status int, jobDescription string) {
	page := render.Page{Snapshot: s.board.Snapshot(), JobDescription: jobDescription}
	s.board.DismissNotice()

	var buf bytes.Buffer
	if err := render.WritePage(&buf, page); err != nil {
		s.logger.Error("failed to render console page", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("failed to write console page", zap.Error(err))
	}
}

// readSubmission extracts the job description and resume files from a multipart or
// urlencoded form. Empty file inputs are ignored.
func (s *Server) readSubmission(w http.ResponseWriter, r *http.Request) (upload.SubmissionInput, error) {
	var in upload.SubmissionInput
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	err := r.ParseMultipartForm(s.maxUpload)
	switch {
	case err == nil:
	case errors.Is(err, http.ErrNotMultipart):
		if err := r.ParseForm(); err != nil {
			return in, formError(err, s.maxUpload)
		}
	default:
		return in, formError(err, s.maxUpload)
	}

	in.JobDescription = r.PostFormValue(upload.FieldJobDescription)
	if r.MultipartForm == nil {
		return in, nil
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	for _, fh := range r.MultipartForm.File[upload.FieldResumes] {
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		f, err := readFile(fh)
		if err != nil {
			return in, &ErrBadForm{Cause: err}
		}
		in.Files = append(in.Files, f)
	}
	return in, nil
}

func readFile(fh *multipart.FileHeader) (upload.File, error) {
	file, err := fh.Open()
	if err != nil {
		return upload.File{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return upload.File{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return upload.File{Name: fh.Filename, Data: data}, nil
}

func formError(err error, limit int64) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge) {
		return &ErrFormTooLarge{Limit: limit}
	}
	return &ErrBadForm{Cause: err}
}

func userMessage(err error) string {
	var validationErr *upload.ValidationError
	var submissionErr *upload.SubmissionError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &submissionErr):
		return submissionErr.UserMessage()
	default:
		return err.Error()
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
