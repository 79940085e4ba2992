package ops

import (
	"context"
	"strings"

	"github.com/creastat/stream-gateway/pkg/models"
)

// minQueryLength is the debounce threshold: shorter queries are dropped
// with no response frame at all. This is the only silent drop in the
// protocol.
const minQueryLength = 2

const (
	maxSearchResults = 5
	maxPreviewLength = 120
	maxSuggestions   = 5
)

func (d *Dispatcher) handleTranslate(ctx context.Context, raw []byte, emit func(msg any)) {
	req, ok := decode[models.TranslateRequest](raw, emit, "translation_error")
	if !ok {
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		emit(models.WSError{
			Type:      "translation_error",
			Error:     "text must not be empty",
			Timestamp: models.Timestamp(),
		})
		return
	}

	result, err := d.translator.Translate(ctx, req.Text, req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		d.log.Warn("translation failed", "error", err)
		emit(models.WSError{
			Type:      "translation_error",
			Error:     "translation failed",
			Timestamp: models.Timestamp(),
		})
		return
	}

	emit(models.TranslationCompleted{
		Type:             "translation_completed",
		TranslatedText:   result.Text,
		DetectedLanguage: result.DetectedLanguage,
		Confidence:       result.Confidence,
		Timestamp:        models.Timestamp(),
	})
}

func (d *Dispatcher) handleRealTimeSearch(ctx context.Context, raw []byte, emit func(msg any)) {
	req, ok := decode[models.SearchRequest](raw, emit, "search_error")
	if !ok {
		return
	}

	query := strings.TrimSpace(req.Query)
	if len(query) < minQueryLength {
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}

	hits, metrics, err := d.search.Search(ctx, query, req.Filters, limit, "")
	if err != nil {
		d.log.Warn("search failed", "query", query, "error", err)
		emit(models.WSError{
			Type:      "search_error",
			Error:     "search failed",
			Timestamp: models.Timestamp(),
		})
		return
	}

	results := make([]models.SearchResultItem, 0, len(hits))
	for _, hit := range hits {
		results = append(results, models.SearchResultItem{
			ID:      hit.ID,
			Title:   strings.TrimSpace(hit.Title),
			Preview: truncate(strings.TrimSpace(hit.Content), maxPreviewLength),
			Score:   hit.Score,
		})
	}

	emit(models.SearchResults{
		Type:      "search_results",
		Results:   results,
		LatencyMS: metrics.LatencyMS,
		Timestamp: models.Timestamp(),
	})
}

func (d *Dispatcher) handleGetSuggestions(raw []byte, emit func(msg any)) {
	req, ok := decode[models.SuggestionsRequest](raw, emit, "suggestion_error")
	if !ok {
		return
	}

	query := strings.TrimSpace(req.Query)
	if len(query) < minQueryLength {
		return
	}

	q := strings.ToLower(query)
	var matches []string
	for _, candidate := range d.candidates {
		if strings.Contains(strings.ToLower(candidate), q) {
			matches = append(matches, candidate)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}

	emit(models.Suggestions{
		Type:        "suggestions",
		Suggestions: matches,
		Timestamp:   models.Timestamp(),
	})
}
