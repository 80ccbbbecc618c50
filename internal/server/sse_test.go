package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/pipeline"
	"github.com/hirelens/hirelens/internal/types"
)

func TestEventStream_SendStage(t *testing.T) {
	w := httptest.NewRecorder()
	stream, err := newEventStream(w)
	require.NoError(t, err)

	require.NoError(t, stream.sendStage(pipeline.ProgressEvent{
		AnalysisID: "abc-123",
		Stage:      types.StageParsing,
		Status:     types.StageSuccess,
		Elapsed:    0.012,
	}))

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.True(t, w.Flushed)

	body := w.Body.String()
	assert.Contains(t, body, "event: stage\n")
	assert.Contains(t, body, `"stage":"parsing"`)
	assert.Contains(t, body, `"status":"success"`)
	assert.Contains(t, body, `"elapsed_seconds":0.012`)
}

func TestEventStream_SendComplete(t *testing.T) {
	w := httptest.NewRecorder()
	stream, err := newEventStream(w)
	require.NoError(t, err)

	stream.sendComplete("abc-123", types.AnalysisCompleted)

	body := w.Body.String()
	assert.Contains(t, body, "event: complete")
	assert.Contains(t, body, `"analysis_id":"abc-123"`)
	assert.Contains(t, body, `"status":"completed"`)
}

func TestEventStream_SendError(t *testing.T) {
	w := httptest.NewRecorder()
	stream, err := newEventStream(w)
	require.NoError(t, err)

	stream.sendError("pipeline exploded")

	body := w.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, `"error":"pipeline exploded"`)
}

// nonFlushingWriter is a ResponseWriter without http.Flusher, like a
// buffering middleware would present.
type nonFlushingWriter struct {
	header http.Header
}

func (w *nonFlushingWriter) Header() http.Header         { return w.header }
func (w *nonFlushingWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *nonFlushingWriter) WriteHeader(int)             {}

func TestEventStream_RequiresFlusher(t *testing.T) {
	_, err := newEventStream(&nonFlushingWriter{header: make(http.Header)})
	assert.ErrorIs(t, err, errStreamingUnsupported)
}
