package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SetHeaders sets the response headers for Server-Sent Events streaming.
func SetHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// Writer emits SSE frames over an HTTP response, flushing after every write
// so tokens reach the client as they arrive.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter wraps w. Headers must already be set via SetHeaders.
func NewWriter(w http.ResponseWriter) *Writer {
	flusher, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: flusher}
}

// WriteEvent writes a named event with a JSON payload.
func (s *Writer) WriteEvent(name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", name, err)
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return fmt.Errorf("failed to write %s event: %w", name, err)
	}

	s.flush()
	return nil
}

// WriteRaw forwards one upstream line verbatim, preserving its original
// directive and byte content. An empty line is the event separator.
func (s *Writer) WriteRaw(line string) error {
	if _, err := fmt.Fprintf(s.w, "%s\n", line); err != nil {
		return fmt.Errorf("failed to write raw line: %w", err)
	}

	s.flush()
	return nil
}

func (s *Writer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
