package models

// SSE event names emitted by the proxy gateway, in addition to raw
// vendor-forwarded lines.
const (
	EventMeta           = "meta"
	EventStreamStart    = "stream_start"
	EventError          = "error"
	EventStreamComplete = "stream_complete"
	EventStreamEnd      = "stream_end"
)

// Error codes carried by in-band error events.
const (
	ErrCodeUpstream   = "upstream_error"
	ErrCodeTimeout    = "timeout_error"
	ErrCodeConnection = "connection_error"
	ErrCodeStream     = "stream_error"
)

// MetaEvent is emitted before any upstream I/O so clients can distinguish
// "proxy accepted" from "vendor connected".
type MetaEvent struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
}

// StreamStartEvent is emitted once the upstream connection is established.
type StreamStartEvent struct {
	RequestID     string `json:"request_id"`
	VendorTraceID string `json:"vendor_trace_id,omitempty"`
	Model         string `json:"model,omitempty"`
}

// StreamErrorEvent is an in-band categorized error. The outer HTTP status
// never changes once the stream is committed.
type StreamErrorEvent struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Status    int    `json:"status,omitempty"`
}

// StreamCompleteEvent is emitted on normal end of stream.
type StreamCompleteEvent struct {
	RequestID    string `json:"request_id"`
	ProcessingMS int64  `json:"processing_ms"`
}

// StreamEndEvent is the terminal event, emitted exactly once per request on
// every exit path.
type StreamEndEvent struct {
	RequestID string `json:"request_id"`
}

// HTTPError is the pre-stream JSON error body.
type HTTPError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
