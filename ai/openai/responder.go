package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/lampstand/sermonrec/ai"
)

// Responder implements ai.Responder using OpenAI-compatible chat APIs.
type Responder struct {
	client llms.Model
	logger *slog.Logger
}

// newResponder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newResponder(config *ai.Config) (*Responder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &Responder{
		client: client,
		logger: slog.Default().With("component", "openai-responder"),
	}, nil
}

// NewResponder creates a new responder using the provided configuration.
//
// Returns ai.Responder interface to enforce abstraction.
func NewResponder(config *ai.Config) (ai.Responder, error) {
	return newResponder(config)
}

// Reply generates a short pastoral reply to the user's message.
func (r *Responder) Reply(ctx context.Context, query string) (string, error) {
	prompt := buildReplyPrompt(query)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		r.logger.Error("reply call failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ai.ErrEmptyResponse
	}

	reply := strings.TrimSpace(response.Choices[0].Content)
	if reply == "" {
		return "", ai.ErrEmptyResponse
	}
	return reply, nil
}
