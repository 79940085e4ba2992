package collab

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when a bearer token is absent or unknown.
var ErrUnauthenticated = errors.New("unauthenticated")

// Principal is the authenticated caller used for rate limiting.
type Principal struct {
	ID string
}

// Identity resolves bearer tokens to principals.
type Identity interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// SearchResult is one hit returned by the search collaborator.
type SearchResult struct {
	ID      string
	Title   string
	Content string
	Score   float64
}

// SearchMetrics carries measured query cost.
type SearchMetrics struct {
	LatencyMS int64
	Total     int
}

// SearchService is the real-time search collaborator.
type SearchService interface {
	Search(ctx context.Context, query string, filters map[string]any, limit int, sessionID string) ([]SearchResult, SearchMetrics, error)
}

// Translation is the translator collaborator's result envelope. Detected
// language equals the source language unless the source was "auto", in
// which case a fixed fallback is reported.
type Translation struct {
	Text             string
	DetectedLanguage string
	Confidence       float64
}

// Translator is the translation collaborator.
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (Translation, error)
}
