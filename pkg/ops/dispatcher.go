package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/creastat/stream-gateway/pkg/collab"
	"github.com/creastat/stream-gateway/pkg/logger"
	"github.com/creastat/stream-gateway/pkg/models"
)

// Dispatcher routes inbound WebSocket operations to their handlers. Each
// invocation is an independent unit of work: handler failures become scoped
// error frames and never close the connection.
type Dispatcher struct {
	search     collab.SearchService
	translator collab.Translator
	candidates []string
	delay      time.Duration
	log        logger.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithProcessingDelay sets the simulated processing delay for content
// generation. Zero disables it.
func WithProcessingDelay(d time.Duration) Option {
	return func(dp *Dispatcher) { dp.delay = d }
}

// WithCandidates replaces the suggestion candidate list.
func WithCandidates(candidates []string) Option {
	return func(dp *Dispatcher) { dp.candidates = candidates }
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(search collab.SearchService, translator collab.Translator, log logger.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		search:     search,
		translator: translator,
		candidates: defaultCandidates,
		log:        log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Capabilities lists the operation types announced on connect.
func (d *Dispatcher) Capabilities() []string {
	return []string{
		models.OpGenerateContent,
		models.OpOptimizePrompt,
		models.OpAnalyzeSentiment,
		models.OpExtractKeywords,
		models.OpSummarize,
		models.OpTranslate,
		models.OpRealTimeSearch,
		models.OpGetSuggestions,
		models.OpPing,
	}
}

// Dispatch decodes one inbound frame and runs the matching handler. Every
// outbound frame goes through emit. Malformed JSON and unknown types yield
// in-band errors; the documented short-query debounce cases emit nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte, emit func(msg any)) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("operation handler panicked", "panic", r)
			emit(models.WSError{
				Type:      "error",
				Error:     "internal error while processing operation",
				Timestamp: models.Timestamp(),
			})
		}
	}()

	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		emit(models.WSError{
			Type:      "error",
			Error:     "invalid JSON message",
			Timestamp: models.Timestamp(),
		})
		return
	}

	switch env.Type {
	case models.OpGenerateContent:
		d.handleGenerateContent(ctx, raw, emit)
	case models.OpOptimizePrompt:
		d.handleOptimizePrompt(raw, emit)
	case models.OpAnalyzeSentiment:
		d.handleAnalyzeSentiment(raw, emit)
	case models.OpExtractKeywords:
		d.handleExtractKeywords(raw, emit)
	case models.OpSummarize:
		d.handleSummarize(raw, emit)
	case models.OpTranslate:
		d.handleTranslate(ctx, raw, emit)
	case models.OpRealTimeSearch:
		d.handleRealTimeSearch(ctx, raw, emit)
	case models.OpGetSuggestions:
		d.handleGetSuggestions(raw, emit)
	case models.OpPing:
		emit(models.Pong{Type: "pong", Timestamp: models.Timestamp()})
	default:
		emit(models.WSError{
			Type:      "error",
			Error:     fmt.Sprintf("unknown message type %q", env.Type),
			Timestamp: models.Timestamp(),
		})
	}
}

func decode[T any](raw []byte, emit func(msg any), errType string) (T, bool) {
	var req T
	if err := json.Unmarshal(raw, &req); err != nil {
		emit(models.WSError{
			Type:      errType,
			Error:     "malformed operation payload",
			Timestamp: models.Timestamp(),
		})
		var zero T
		return zero, false
	}
	return req, true
}
