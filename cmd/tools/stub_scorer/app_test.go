package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/upload"
)

func uploadRequest(t *testing.T, job string, files map[string]string, order ...string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("job_description", job))
	for _, name := range order {
		part, err := w.CreateFormFile("resumes", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, files[name])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	resp, err := newApp(nil, nil).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Backend running", got["status"])
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	resp, err := newApp(nil, &buf).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), "GET")
	assert.Contains(t, buf.String(), "200")
}

func TestUpload_ScoresByKeywordOverlap(t *testing.T) {
	files := map[string]string{
		"bob.txt":   "Java developer",
		"alice.txt": "Golang developer with Kubernetes and Postgres",
	}
	req := uploadRequest(t, "Golang Kubernetes Postgres Terraform", files, "bob.txt", "alice.txt")

	resp, err := newApp(nil, nil).Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, schemas.ValidateScoringResponse(body))

	parsed, err := upload.ParseResponse(body)
	require.NoError(t, err)
	require.NotNil(t, parsed.TopResume)
	assert.Equal(t, "alice.txt", parsed.TopResume.Filename)
	assert.InDelta(t, 0.75, parsed.TopResume.Score, 1e-9)
	assert.Equal(t, "golang, kubernetes, postgres", upload.MatchText(parsed.TopResume.Details.Matches))

	require.Len(t, parsed.AllResults, 2)
	assert.Equal(t, "bob.txt", parsed.AllResults[1].Filename)
	assert.Zero(t, parsed.AllResults[1].Score)
}

func TestUpload_Fixture(t *testing.T) {
	fixture := []byte(`{"top_resume":null,"all_results":[],"processing_time":0.5}`)
	req := uploadRequest(t, "anything", map[string]string{"a.pdf": "x"}, "a.pdf")

	resp, err := newApp(fixture, nil).Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, string(fixture), string(body))
}

func TestUpload_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *http.Request
		wantErr string
	}{
		{
			name:    "blank job description",
			req:     uploadRequest(t, "  ", map[string]string{"a.pdf": "x"}, "a.pdf"),
			wantErr: "Job description is required",
		},
		{
			name:    "no resumes",
			req:     uploadRequest(t, "Go", nil),
			wantErr: "At least one resume file is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newApp(nil, nil).Test(tt.req, -1)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var got map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.wantErr, got["error"])
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"senior", "engineer", "c++", "node.js"},
		tokenize("Senior Go engineer, C++ and Node.js. Senior!"))
}
