package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hirelens/hirelens/internal/pipeline"
)

// Event names on the analyze stream. Clients follow "stage" events for
// per-stage progress and stop at the terminal "complete" or "error" event.
const (
	eventStage    = "stage"
	eventComplete = "complete"
	eventError    = "error"
)

// errStreamingUnsupported means the response writer cannot flush, usually
// because a buffering proxy sits in front of the server.
var errStreamingUnsupported = errors.New("streaming not supported by this connection")

// eventStream writes analyze progress as Server-Sent Events.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// newEventStream sends the SSE headers and prepares the response for
// streaming.
func newEventStream(w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")

	return &eventStream{w: w, flusher: flusher}, nil
}

// send writes one named event with a JSON payload and flushes it out
// immediately so clients see progress as it happens.
func (es *eventStream) send(name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", name, err)
	}
	if _, err := fmt.Fprintf(es.w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	es.flusher.Flush()
	return nil
}

// sendStage forwards one pipeline progress event.
func (es *eventStream) sendStage(event pipeline.ProgressEvent) error {
	return es.send(eventStage, event)
}

// sendComplete ends the stream with the analysis id and final status.
func (es *eventStream) sendComplete(analysisID, status string) {
	es.send(eventComplete, map[string]string{ //nolint:errcheck
		"analysis_id": analysisID,
		"status":      status,
	})
}

// sendError ends the stream with an error event.
func (es *eventStream) sendError(message string) {
	es.send(eventError, map[string]string{"error": message}) //nolint:errcheck
}
