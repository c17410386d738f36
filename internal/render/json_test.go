package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/upload"
)

func TestJSON_Flush(t *testing.T) {
	var out bytes.Buffer
	j := NewJSON(&out)

	sampleView().Apply(j)
	require.NoError(t, j.Flush())

	assert.JSONEq(t, `{
		"processing_time": "1.50",
		"top_resume": {"filename": "resume1.pdf", "score": "87.34%", "matches": "python, go"},
		"all_results": [{"filename": "resume1.pdf", "score": "87.34%"}]
	}`, out.String())
}

func TestJSON_FlushNotice(t *testing.T) {
	var out bytes.Buffer
	j := NewJSON(&out)

	j.Notify(upload.Notice{Kind: upload.NoticeSubmission, Message: "Error connecting"})
	require.NoError(t, j.Flush())

	var doc Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Empty(t, doc.ProcessingTime)
	assert.Nil(t, doc.TopResume)
	assert.Empty(t, doc.AllResults)
	require.NotNil(t, doc.Notice)
	assert.Equal(t, upload.NoticeSubmission, doc.Notice.Kind)
}
