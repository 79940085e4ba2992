package models

import "time"

// Inbound WebSocket operation types.
const (
	OpGenerateContent  = "generate_content"
	OpOptimizePrompt   = "optimize_prompt"
	OpAnalyzeSentiment = "analyze_sentiment"
	OpExtractKeywords  = "extract_keywords"
	OpSummarize        = "summarize"
	OpTranslate        = "translate"
	OpRealTimeSearch   = "real_time_search"
	OpGetSuggestions   = "get_suggestions"
	OpPing             = "ping"
)

// Envelope is the discriminant of every inbound WebSocket frame.
type Envelope struct {
	Type string `json:"type"`
}

// Inbound operation payloads. Each frame decodes into Envelope first, then
// into the payload matching its type.

type GenerateContentRequest struct {
	Prompt    string `json:"prompt"`
	MaxLength int    `json:"max_length"`
}

type OptimizePromptRequest struct {
	Prompt string   `json:"prompt"`
	Goals  []string `json:"goals"`
}

type AnalyzeSentimentRequest struct {
	Text string `json:"text"`
}

type ExtractKeywordsRequest struct {
	Text        string `json:"text"`
	MaxKeywords int    `json:"max_keywords"`
}

type SummarizeRequest struct {
	Text   string `json:"text"`
	Length string `json:"length"`
}

type TranslateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type SearchRequest struct {
	Query   string         `json:"query"`
	Filters map[string]any `json:"filters,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

type SuggestionsRequest struct {
	Query string `json:"query"`
}

// Timestamp returns the wire form used on every outbound frame.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Outbound frames. Every server-to-client message carries a type tag and an
// ISO-8601 timestamp.

type ConnectionEstablished struct {
	Type         string   `json:"type"`
	SessionID    string   `json:"session_id"`
	Capabilities []string `json:"capabilities"`
	Timestamp    string   `json:"timestamp"`
}

type ProcessingStarted struct {
	Type      string `json:"type"`
	Operation string `json:"operation"`
	Timestamp string `json:"timestamp"`
}

type ContentGenerated struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type PromptOptimized struct {
	Type             string  `json:"type"`
	OptimizedPrompt  string  `json:"optimized_prompt"`
	ScoreImprovement float64 `json:"score_improvement"`
	Timestamp        string  `json:"timestamp"`
}

type SentimentAnalyzed struct {
	Type       string  `json:"type"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

type Keyword struct {
	Word      string  `json:"word"`
	Frequency int     `json:"frequency"`
	Relevance float64 `json:"relevance"`
}

type KeywordsExtracted struct {
	Type      string    `json:"type"`
	Keywords  []Keyword `json:"keywords"`
	Timestamp string    `json:"timestamp"`
}

type SummaryGenerated struct {
	Type             string  `json:"type"`
	Summary          string  `json:"summary"`
	CompressionRatio float64 `json:"compression_ratio"`
	Timestamp        string  `json:"timestamp"`
}

type TranslationCompleted struct {
	Type             string  `json:"type"`
	TranslatedText   string  `json:"translated_text"`
	DetectedLanguage string  `json:"detected_language"`
	Confidence       float64 `json:"confidence"`
	Timestamp        string  `json:"timestamp"`
}

type SearchResultItem struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Preview string  `json:"preview"`
	Score   float64 `json:"score"`
}

type SearchResults struct {
	Type      string             `json:"type"`
	Results   []SearchResultItem `json:"results"`
	LatencyMS int64              `json:"latency_ms"`
	Timestamp string             `json:"timestamp"`
}

type Suggestions struct {
	Type        string   `json:"type"`
	Suggestions []string `json:"suggestions"`
	Timestamp   string   `json:"timestamp"`
}

type Pong struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

type WSError struct {
	Type      string `json:"type"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

type HealthCheck struct {
	Type      string `json:"type"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
