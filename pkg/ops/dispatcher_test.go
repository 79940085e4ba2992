package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/creastat/stream-gateway/pkg/collab"
	"github.com/creastat/stream-gateway/pkg/logger"
	"github.com/creastat/stream-gateway/pkg/models"
)

func newTestDispatcher(t *testing.T, opts ...Option) *Dispatcher {
	t.Helper()
	return NewDispatcher(
		collab.NewLocalSearchService(nil),
		collab.NewLocalTranslator(),
		logger.Nop(),
		opts...,
	)
}

func dispatch(t *testing.T, d *Dispatcher, frame string) []any {
	t.Helper()
	var emitted []any
	d.Dispatch(context.Background(), []byte(frame), func(msg any) {
		emitted = append(emitted, msg)
	})
	return emitted
}

func TestDispatch_PingPong(t *testing.T) {
	d := newTestDispatcher(t)

	emitted := dispatch(t, d, `{"type":"ping"}`)
	if len(emitted) != 1 {
		t.Fatalf("ping emitted %d frames, want exactly 1", len(emitted))
	}
	pong, ok := emitted[0].(models.Pong)
	if !ok {
		t.Fatalf("expected Pong, got %T", emitted[0])
	}
	if pong.Type != "pong" {
		t.Errorf("type = %q", pong.Type)
	}
	if pong.Timestamp == "" {
		t.Error("pong missing timestamp")
	}

	// Idempotent under repetition.
	again := dispatch(t, d, `{"type":"ping"}`)
	if len(again) != 1 {
		t.Errorf("repeated ping emitted %d frames", len(again))
	}
}

func TestDispatch_UnknownType(t *testing.T) {
	d := newTestDispatcher(t)

	emitted := dispatch(t, d, `{"type":"transmogrify"}`)
	if len(emitted) != 1 {
		t.Fatalf("emitted %d frames, want 1", len(emitted))
	}
	errMsg, ok := emitted[0].(models.WSError)
	if !ok {
		t.Fatalf("expected WSError, got %T", emitted[0])
	}
	if errMsg.Type != "error" {
		t.Errorf("type = %q", errMsg.Type)
	}
	if got := errMsg.Error; !strings.Contains(got, "transmogrify") {
		t.Errorf("error should name the offending type, got %q", got)
	}
}

func TestDispatch_MalformedJSON(t *testing.T) {
	d := newTestDispatcher(t)

	emitted := dispatch(t, d, `{not json`)
	if len(emitted) != 1 {
		t.Fatalf("emitted %d frames, want 1", len(emitted))
	}
	if _, ok := emitted[0].(models.WSError); !ok {
		t.Fatalf("expected WSError, got %T", emitted[0])
	}
}

func TestCapabilities_ListAllOperations(t *testing.T) {
	d := newTestDispatcher(t)

	caps := d.Capabilities()
	if len(caps) != 9 {
		t.Fatalf("got %d capabilities, want 9", len(caps))
	}

	seen := make(map[string]bool)
	for _, c := range caps {
		seen[c] = true
	}
	for _, op := range []string{
		models.OpGenerateContent, models.OpOptimizePrompt,
		models.OpAnalyzeSentiment, models.OpExtractKeywords,
		models.OpSummarize, models.OpTranslate,
		models.OpRealTimeSearch, models.OpGetSuggestions, models.OpPing,
	} {
		if !seen[op] {
			t.Errorf("capability %q missing", op)
		}
	}
}
