package collab

import (
	"context"
	"sort"
	"strings"
	"time"
)

// LocalSearchService searches a fixed in-memory corpus of prompt templates.
// It stands in for the platform's search backend, which lives outside this
// service.
type LocalSearchService struct {
	corpus []SearchResult
}

// NewLocalSearchService creates a search service over the given corpus. A
// nil corpus falls back to a small built-in template set.
func NewLocalSearchService(corpus []SearchResult) *LocalSearchService {
	if corpus == nil {
		corpus = defaultCorpus
	}
	return &LocalSearchService{corpus: corpus}
}

var defaultCorpus = []SearchResult{
	{ID: "tpl-1", Title: "Blog post outline", Content: "Write a structured outline for a blog post about the given topic, with headings and key points."},
	{ID: "tpl-2", Title: "Code review assistant", Content: "Review the following code for bugs, style issues and missing tests, and suggest improvements."},
	{ID: "tpl-3", Title: "Email summarizer", Content: "Summarize this email thread into action items and open questions."},
	{ID: "tpl-4", Title: "Product description", Content: "Write a compelling product description highlighting benefits over features."},
	{ID: "tpl-5", Title: "Interview questions", Content: "Generate interview questions for the given role, mixing technical and behavioral topics."},
	{ID: "tpl-6", Title: "SQL query helper", Content: "Translate this natural language request into an SQL query with an explanation."},
	{ID: "tpl-7", Title: "Meeting agenda", Content: "Draft a meeting agenda from these discussion topics, with time boxes."},
}

// Search implements SearchService with substring scoring: title hits count
// double word hits in the body.
func (s *LocalSearchService) Search(ctx context.Context, query string, filters map[string]any, limit int, sessionID string) ([]SearchResult, SearchMetrics, error) {
	start := time.Now()
	q := strings.ToLower(strings.TrimSpace(query))

	var hits []SearchResult
	for _, doc := range s.corpus {
		select {
		case <-ctx.Done():
			return nil, SearchMetrics{}, ctx.Err()
		default:
		}

		score := 0.0
		if strings.Contains(strings.ToLower(doc.Title), q) {
			score += 2.0
		}
		if strings.Contains(strings.ToLower(doc.Content), q) {
			score += 1.0
		}
		if score > 0 {
			doc.Score = score
			hits = append(hits, doc)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	metrics := SearchMetrics{
		LatencyMS: time.Since(start).Milliseconds(),
		Total:     len(hits),
	}
	return hits, metrics, nil
}
