package models

import (
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/creastat/stream-gateway/pkg/types"
)

// ChatCompletionRequest is the inbound body for the SSE proxy endpoint.
// Only the whitelisted parameters below are forwarded upstream; everything
// else in the body is dropped.
type ChatCompletionRequest struct {
	Messages         []types.ChatMessage `json:"messages"`
	Model            string              `json:"model,omitempty"`
	Temperature      float64             `json:"temperature,omitempty"`
	MaxTokens        int                 `json:"max_tokens,omitempty"`
	Stream           bool                `json:"stream"`
	TopP             float64             `json:"top_p,omitempty"`
	FrequencyPenalty float64             `json:"frequency_penalty,omitempty"`
	PresencePenalty  float64             `json:"presence_penalty,omitempty"`
	Stop             []string            `json:"stop,omitempty"`
	User             string              `json:"user,omitempty"`
	LogitBias        map[string]int      `json:"logit_bias,omitempty"`
}

// ValidationError describes a rejected request field. Validation runs before
// any network I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks the request invariants: a non-empty message list where
// every role is one of user/assistant/system.
func (r *ChatCompletionRequest) Validate() error {
	if len(r.Messages) == 0 {
		return &ValidationError{Field: "messages", Message: "must not be empty"}
	}
	for i, msg := range r.Messages {
		if !types.ValidRole(msg.Role) {
			return &ValidationError{
				Field:   fmt.Sprintf("messages[%d].role", i),
				Message: fmt.Sprintf("unknown role %q", msg.Role),
			}
		}
	}
	return nil
}

// ToUpstream projects the request onto the vendor wire format. Streaming is
// always forced on regardless of what the client sent.
func (r *ChatCompletionRequest) ToUpstream() openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, len(r.Messages))
	for i, msg := range r.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	return openai.ChatCompletionRequest{
		Model:            r.Model,
		Messages:         messages,
		Temperature:      float32(r.Temperature),
		MaxTokens:        r.MaxTokens,
		Stream:           true,
		TopP:             float32(r.TopP),
		FrequencyPenalty: float32(r.FrequencyPenalty),
		PresencePenalty:  float32(r.PresencePenalty),
		Stop:             r.Stop,
		User:             r.User,
		LogitBias:        r.LogitBias,
	}
}
