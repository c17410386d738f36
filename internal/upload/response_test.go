package upload

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

const sampleResponse = `{
  "top_resume": {"filename": "resume1.pdf", "score": 0.8734, "details": {"matches": "python, go"}},
  "all_results": [{"filename": "resume1.pdf", "score": 0.8734, "details": {"matches": "python, go"}}]
}`

func TestParseResponse_Sample(t *testing.T) {
	resp, err := ParseResponse([]byte(sampleResponse))
	require.NoError(t, err)

	require.NotNil(t, resp.TopResume)
	assert.Equal(t, "resume1.pdf", resp.TopResume.Filename)
	assert.InDelta(t, 0.8734, resp.TopResume.Score, 1e-9)
	assert.Equal(t, "python, go", MatchText(resp.TopResume.Details.Matches))
	require.Len(t, resp.AllResults, 1)
	assert.Nil(t, resp.ProcessingTime)
}

func TestParseResponse_OptionalFields(t *testing.T) {
	body := `{"top_resume":null,"all_results":[{"filename":"a.pdf","score":0.5,"details":{"matches":4},"text_length":812}],"processing_time":2.31}`

	resp, err := ParseResponse([]byte(body))
	require.NoError(t, err)
	assert.Nil(t, resp.TopResume)
	require.NotNil(t, resp.ProcessingTime)
	assert.InDelta(t, 2.31, *resp.ProcessingTime, 1e-9)
	require.NotNil(t, resp.AllResults[0].TextLength)
	assert.Equal(t, 812, *resp.AllResults[0].TextLength)
}

func TestParseResponse_EmptyList(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"all_results":[]}`))
	require.NoError(t, err)
	assert.Nil(t, resp.TopResume)
	assert.NotNil(t, resp.AllResults)
	assert.Empty(t, resp.AllResults)
}

func TestParseResponse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantSchema bool
	}{
		{name: "empty", body: ""},
		{name: "whitespace", body: "  \n"},
		{name: "not json", body: "<html>oops</html>"},
		{name: "truncated", body: `{"all_results":[`},
		{name: "missing all_results", body: `{"top_resume":null}`, wantSchema: true},
		{name: "wrong score type", body: `{"all_results":[{"filename":"a","score":"high"}]}`, wantSchema: true},
		{name: "score above one", body: `{"all_results":[{"filename":"a","score":87.34}]}`, wantSchema: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse([]byte(tt.body))
			require.Error(t, err)
			var validationErr *schemas.ValidationError
			assert.Equal(t, tt.wantSchema, errors.As(err, &validationErr))
		})
	}
}

func TestMatchText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "absent", raw: "", want: ""},
		{name: "null", raw: "null", want: ""},
		{name: "string", raw: `"python, go"`, want: "python, go"},
		{name: "integer", raw: "3", want: "3"},
		{name: "float", raw: "2.5", want: "2.5"},
		{name: "bool", raw: "true", want: "true"},
		{name: "string array", raw: `["python", "go"]`, want: "python, go"},
		{name: "empty array", raw: `[]`, want: ""},
		{name: "mixed array", raw: `["python", 2]`, want: `["python",2]`},
		{name: "object", raw: `{ "python": 2 }`, want: `{"python":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchText(json.RawMessage(tt.raw)))
		})
	}
}

func TestServerMessage(t *testing.T) {
	assert.Equal(t, "Job description is required", serverMessage([]byte(`{"error":"Job description is required"}`)))
	assert.Equal(t, "boom", serverMessage([]byte(`{"message":"boom"}`)))
	assert.Equal(t, "Bad Gateway", serverMessage([]byte("Bad Gateway\n")))
	assert.Empty(t, serverMessage([]byte("<html><body>502</body></html>")))
	assert.Empty(t, serverMessage(nil))
}
