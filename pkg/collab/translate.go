package collab

import (
	"context"
	"fmt"
)

// autoDetectFallback is reported as the detected language when the caller
// asked for auto-detection.
const autoDetectFallback = "en"

const localConfidence = 0.85

// LocalTranslator is a deterministic placeholder preserving the translator
// envelope contract: it always reports a confidence and detected language.
type LocalTranslator struct{}

// NewLocalTranslator creates the placeholder translator.
func NewLocalTranslator() *LocalTranslator {
	return &LocalTranslator{}
}

// Translate implements Translator.
func (t *LocalTranslator) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (Translation, error) {
	detected := sourceLanguage
	if detected == "" || detected == "auto" {
		detected = autoDetectFallback
	}

	return Translation{
		Text:             fmt.Sprintf("[%s] %s", targetLanguage, text),
		DetectedLanguage: detected,
		Confidence:       localConfidence,
	}, nil
}
