package ops

import (
	"math"
	"sort"
	"strings"

	"github.com/creastat/stream-gateway/pkg/models"
)

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "amazing": {}, "wonderful": {},
	"fantastic": {}, "love": {}, "best": {}, "happy": {}, "awesome": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "hate": {}, "worst": {},
	"horrible": {}, "poor": {}, "disappointing": {}, "sad": {}, "angry": {},
}

func (d *Dispatcher) handleAnalyzeSentiment(raw []byte, emit func(msg any)) {
	req, ok := decode[models.AnalyzeSentimentRequest](raw, emit, "sentiment_error")
	if !ok {
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		emit(models.WSError{
			Type:      "sentiment_error",
			Error:     "text must not be empty",
			Timestamp: models.Timestamp(),
		})
		return
	}

	positive, negative := 0, 0
	for _, token := range tokenize(req.Text) {
		if _, ok := positiveWords[token]; ok {
			positive++
		}
		if _, ok := negativeWords[token]; ok {
			negative++
		}
	}

	sentiment := "neutral"
	confidence := 0.5
	if positive != negative {
		if positive > negative {
			sentiment = "positive"
		} else {
			sentiment = "negative"
		}
		diff := float64(positive - negative)
		confidence = math.Min(0.6+0.1*math.Abs(diff), 0.95)
	}

	emit(models.SentimentAnalyzed{
		Type:       "sentiment_analyzed",
		Sentiment:  sentiment,
		Confidence: confidence,
		Timestamp:  models.Timestamp(),
	})
}

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "this": {}, "that": {}, "with": {}, "have": {},
	"from": {}, "they": {}, "been": {}, "were": {}, "what": {}, "your": {},
}

const maxKeywordCount = 20

func (d *Dispatcher) handleExtractKeywords(raw []byte, emit func(msg any)) {
	req, ok := decode[models.ExtractKeywordsRequest](raw, emit, "keyword_error")
	if !ok {
		return
	}

	maxKeywords := req.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = 10
	}
	if maxKeywords > maxKeywordCount {
		maxKeywords = maxKeywordCount
	}

	tokens := tokenize(req.Text)
	totalWords := len(tokens)

	freq := make(map[string]int)
	for _, token := range tokens {
		if len(token) <= 3 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		freq[token]++
	}

	words := make([]string, 0, len(freq))
	for word := range freq {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > maxKeywords {
		words = words[:maxKeywords]
	}

	keywords := make([]models.Keyword, 0, len(words))
	for _, word := range words {
		keywords = append(keywords, models.Keyword{
			Word:      word,
			Frequency: freq[word],
			Relevance: math.Min(float64(freq[word])/float64(totalWords)*10, 1.0),
		})
	}

	emit(models.KeywordsExtracted{
		Type:      "keywords_extracted",
		Keywords:  keywords,
		Timestamp: models.Timestamp(),
	})
}

// Summary ratios by requested length. Unknown values fall back to medium.
var summaryRatios = map[string]float64{
	"short":  0.2,
	"medium": 0.4,
	"long":   0.6,
}

const minSummarizeLength = 100

func (d *Dispatcher) handleSummarize(raw []byte, emit func(msg any)) {
	req, ok := decode[models.SummarizeRequest](raw, emit, "summarization_error")
	if !ok {
		return
	}

	if len(req.Text) < minSummarizeLength {
		emit(models.WSError{
			Type:      "summarization_error",
			Error:     "text too short to summarize",
			Timestamp: models.Timestamp(),
		})
		return
	}

	ratio, ok := summaryRatios[req.Length]
	if !ok {
		ratio = summaryRatios["medium"]
	}

	var sentences []string
	for _, part := range strings.Split(req.Text, ".") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}

	keep := int(math.Floor(float64(len(sentences)) * ratio))
	if keep < 1 {
		keep = 1
	}
	if keep > len(sentences) {
		keep = len(sentences)
	}

	summary := strings.Join(sentences[:keep], ". ") + "."

	emit(models.SummaryGenerated{
		Type:             "summary_generated",
		Summary:          summary,
		CompressionRatio: math.Round(float64(len(summary))/float64(len(req.Text))*100) / 100,
		Timestamp:        models.Timestamp(),
	})
}

// tokenize lowercases, splits on whitespace and strips non-alphanumeric
// runes from each token. Empty tokens are dropped.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		var b strings.Builder
		for _, r := range field {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
		}
	}
	return tokens
}
