package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestTrace carries the correlation identifiers for one streaming
// request. Ephemeral, never persisted.
type RequestTrace struct {
	RequestID     string
	VendorTraceID string
	StartTime     time.Time
}

// NewRequestTrace creates a trace with a short opaque request id.
func NewRequestTrace() RequestTrace {
	return RequestTrace{
		RequestID: uuid.NewString()[:8],
		StartTime: time.Now(),
	}
}

// Elapsed returns the processing time since the trace started, in ms.
func (t RequestTrace) Elapsed() int64 {
	return time.Since(t.StartTime).Milliseconds()
}
