package ops

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/creastat/stream-gateway/pkg/models"
)

const maxGeneratedLength = 2000

// handleGenerateContent emits a processing_started progress frame, then the
// terminal result. The progress frame always precedes the result for the
// same invocation.
func (d *Dispatcher) handleGenerateContent(ctx context.Context, raw []byte, emit func(msg any)) {
	req, ok := decode[models.GenerateContentRequest](raw, emit, "generation_error")
	if !ok {
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		emit(models.WSError{
			Type:      "generation_error",
			Error:     "prompt must not be empty",
			Timestamp: models.Timestamp(),
		})
		return
	}

	maxLength := req.MaxLength
	if maxLength <= 0 {
		maxLength = 500
	}
	if maxLength > maxGeneratedLength {
		maxLength = maxGeneratedLength
	}

	emit(models.ProcessingStarted{
		Type:      "processing_started",
		Operation: models.OpGenerateContent,
		Timestamp: models.Timestamp(),
	})

	if d.delay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.delay):
		}
	}

	content := fmt.Sprintf(
		"Based on your prompt %q, here is a draft: %s. Consider refining the tone, audience and desired length for a stronger result.",
		prompt, prompt,
	)
	content = truncate(content, maxLength)

	emit(models.ContentGenerated{
		Type:      "content_generated",
		Content:   content,
		Timestamp: models.Timestamp(),
	})
}

// Recognized optimization goals and their additive score contributions.
// Unrecognized goals contribute nothing, silently.
var goalScores = map[string]float64{
	"clarity":       0.2,
	"effectiveness": 0.15,
}

func (d *Dispatcher) handleOptimizePrompt(raw []byte, emit func(msg any)) {
	req, ok := decode[models.OptimizePromptRequest](raw, emit, "optimization_error")
	if !ok {
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		emit(models.WSError{
			Type:      "optimization_error",
			Error:     "prompt must not be empty",
			Timestamp: models.Timestamp(),
		})
		return
	}

	score := 0.0
	for _, goal := range req.Goals {
		score += goalScores[goal]
	}

	emit(models.PromptOptimized{
		Type:             "prompt_optimized",
		OptimizedPrompt:  "Be specific and provide context: " + prompt,
		ScoreImprovement: score,
		Timestamp:        models.Timestamp(),
	})
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
