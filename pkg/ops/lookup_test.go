package ops

import (
	"testing"

	"github.com/creastat/stream-gateway/pkg/models"
)

func TestRealTimeSearch_ShortQuerySilentlyDropped(t *testing.T) {
	d := newTestDispatcher(t)

	emitted := dispatch(t, d, `{"type":"real_time_search","query":"a"}`)
	if len(emitted) != 0 {
		t.Fatalf("short query must produce no response frame at all, got %d frames", len(emitted))
	}
}

func TestRealTimeSearch_ReturnsResults(t *testing.T) {
	d := newTestDispatcher(t)

	emitted := dispatch(t, d, `{"type":"real_time_search","query":"blog"}`)
	if len(emitted) != 1 {
		t.Fatalf("emitted %d frames, want 1", len(emitted))
	}

	result, ok := emitted[0].(models.SearchResults)
	if !ok {
		t.Fatalf("expected SearchResults, got %T", emitted[0])
	}
	if len(result.Results) == 0 {
		t.Fatal("expected at least one hit for 'blog'")
	}
	if len(result.Results) > 5 {
		t.Errorf("got %d results, cap is 5", len(result.Results))
	}
	if result.LatencyMS < 0 {
		t.Errorf("latency = %d", result.LatencyMS)
	}
	for _, hit := range result.Results {
		if hit.Score <= 0 {
			t.Errorf("hit %q has non-positive score", hit.ID)
		}
		if len(hit.Preview) > 120 {
			t.Errorf("preview exceeds truncation limit: %d chars", len(hit.Preview))
		}
	}
}

func TestGetSuggestions_ShortQuerySilentlyDropped(t *testing.T) {
	d := newTestDispatcher(t)

	emitted := dispatch(t, d, `{"type":"get_suggestions","query":"x"}`)
	if len(emitted) != 0 {
		t.Fatalf("short query must produce no frame, got %d", len(emitted))
	}
}

func TestGetSuggestions_CaseInsensitiveMatch(t *testing.T) {
	d := newTestDispatcher(t, WithCandidates([]string{
		"Write a blog post about",
		"Review this code snippet",
		"write release notes",
		"Draft a product announcement",
	}))

	emitted := dispatch(t, d, `{"type":"get_suggestions","query":"WRITE"}`)
	result, ok := emitted[0].(models.Suggestions)
	if !ok {
		t.Fatalf("expected Suggestions, got %T", emitted[0])
	}
	if len(result.Suggestions) != 2 {
		t.Fatalf("got %v, want both write candidates", result.Suggestions)
	}
}

func TestGetSuggestions_CappedAtFive(t *testing.T) {
	d := newTestDispatcher(t, WithCandidates([]string{
		"prompt one", "prompt two", "prompt three", "prompt four",
		"prompt five", "prompt six", "prompt seven",
	}))

	emitted := dispatch(t, d, `{"type":"get_suggestions","query":"prompt"}`)
	result := emitted[0].(models.Suggestions)
	if len(result.Suggestions) != 5 {
		t.Errorf("got %d suggestions, cap is 5", len(result.Suggestions))
	}
}

func TestTranslate_EnvelopeContract(t *testing.T) {
	d := newTestDispatcher(t)

	emitted := dispatch(t, d, `{"type":"translate","text":"hello","source_language":"en","target_language":"es"}`)
	result, ok := emitted[0].(models.TranslationCompleted)
	if !ok {
		t.Fatalf("expected TranslationCompleted, got %T", emitted[0])
	}
	if result.DetectedLanguage != "en" {
		t.Errorf("detected = %q, want source language", result.DetectedLanguage)
	}
	if result.Confidence == 0 {
		t.Error("confidence must always be set")
	}
	if result.TranslatedText == "" {
		t.Error("translated text missing")
	}
}

func TestTranslate_AutoDetectFallback(t *testing.T) {
	d := newTestDispatcher(t)

	emitted := dispatch(t, d, `{"type":"translate","text":"hola","source_language":"auto","target_language":"de"}`)
	result := emitted[0].(models.TranslationCompleted)
	if result.DetectedLanguage != "en" {
		t.Errorf("auto detection must fall back to en, got %q", result.DetectedLanguage)
	}
}

func TestTranslate_EmptyText(t *testing.T) {
	d := newTestDispatcher(t)

	emitted := dispatch(t, d, `{"type":"translate","text":"","target_language":"fr"}`)
	errMsg, ok := emitted[0].(models.WSError)
	if !ok {
		t.Fatalf("expected WSError, got %T", emitted[0])
	}
	if errMsg.Type != "translation_error" {
		t.Errorf("type = %q", errMsg.Type)
	}
}
