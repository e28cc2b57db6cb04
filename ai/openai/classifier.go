package openai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/llms"

	"github.com/lampstand/sermonrec/ai"
)

// TeachingClassifier implements ai.TeachingClassifier using OpenAI-compatible chat APIs.
type TeachingClassifier struct {
	client llms.Model
	logger *slog.Logger
}

// newTeachingClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTeachingClassifier(config *ai.Config) (*TeachingClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &TeachingClassifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewTeachingClassifier creates a new classifier using the provided configuration.
//
// Returns ai.TeachingClassifier interface to enforce abstraction.
func NewTeachingClassifier(config *ai.Config) (ai.TeachingClassifier, error) {
	return newTeachingClassifier(config)
}

// IsTeaching asks the model whether the text is a sermon or teaching.
func (c *TeachingClassifier) IsTeaching(ctx context.Context, text string) (bool, error) {
	prompt := buildClassificationPrompt(text)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("classification call failed", "err", err)
		return false, err
	}
	if len(response.Choices) < 1 {
		return false, ai.ErrEmptyResponse
	}

	isTeaching, err := parseYesNo(response.Choices[0].Content)
	if err != nil {
		c.logger.Warn("unparseable classification response",
			"response", truncate(response.Choices[0].Content, 100))
		return false, err
	}
	return isTeaching, nil
}
