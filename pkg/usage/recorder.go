package usage

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/creastat/stream-gateway/pkg/logger"
)

// TaskTypeChatStream is the queue task emitted after each completed stream.
const TaskTypeChatStream = "usage:chat_stream"

// StreamUsage is the payload handed to the analytics workers.
type StreamUsage struct {
	RequestID    string `json:"request_id"`
	UserID       string `json:"user_id"`
	Model        string `json:"model"`
	Vendor       string `json:"vendor"`
	ProcessingMS int64  `json:"processing_ms"`
	Lines        int    `json:"lines"`
}

// Recorder publishes stream usage for out-of-process accounting. Recording
// is best-effort and never fails the request it describes.
type Recorder interface {
	RecordStream(ctx context.Context, u StreamUsage)
}

// AsynqRecorder enqueues usage tasks onto the platform's task queue.
type AsynqRecorder struct {
	client *asynq.Client
	log    logger.Logger
}

// NewAsynqRecorder creates a recorder backed by the given redis address.
func NewAsynqRecorder(redisAddr string, log logger.Logger) *AsynqRecorder {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	return &AsynqRecorder{client: client, log: log}
}

// RecordStream implements Recorder.
func (r *AsynqRecorder) RecordStream(ctx context.Context, u StreamUsage) {
	payload, err := json.Marshal(u)
	if err != nil {
		r.log.Warn("failed to marshal usage payload", "error", err)
		return
	}

	task := asynq.NewTask(TaskTypeChatStream, payload)
	if _, err := r.client.EnqueueContext(ctx, task); err != nil {
		r.log.Warn("failed to enqueue usage task", "request_id", u.RequestID, "error", err)
	}
}

// Close releases the queue connection.
func (r *AsynqRecorder) Close() error {
	return r.client.Close()
}

// NopRecorder discards usage events. Used when no queue is configured.
type NopRecorder struct{}

// RecordStream implements Recorder.
func (NopRecorder) RecordStream(ctx context.Context, u StreamUsage) {}
