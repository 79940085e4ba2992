package collab

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiConfidence = 0.75

// GeminiTranslator backs the Translator collaborator with Google Gemini.
type GeminiTranslator struct {
	client *genai.Client
	model  string
}

// NewGeminiTranslator creates a Gemini-backed translator.
func NewGeminiTranslator(ctx context.Context, apiKey, model string) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTranslator{client: client, model: model}, nil
}

// Translate implements Translator.
func (t *GeminiTranslator) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (Translation, error) {
	detected := sourceLanguage
	if detected == "" || detected == "auto" {
		detected = autoDetectFallback
	}

	prompt := fmt.Sprintf(
		"Translate the following text from %s to %s. Reply with the translation only.\n\n%s",
		detected, targetLanguage, text,
	)

	res, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
	if err != nil {
		return Translation{}, fmt.Errorf("failed to generate translation: %w", err)
	}

	out := strings.TrimSpace(res.Text())
	if out == "" {
		return Translation{}, fmt.Errorf("empty translation returned")
	}

	return Translation{
		Text:             out,
		DetectedLanguage: detected,
		Confidence:       geminiConfidence,
	}, nil
}
