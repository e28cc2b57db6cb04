package openai

import (
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/lampstand/sermonrec/ai"
)

// newChatClient builds an OpenAI chat client from the configuration.
func newChatClient(config *ai.Config) (*openai.LLM, error) {
	opts := []openai.Option{
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}
	return openai.New(opts...)
}

// newEmbeddingClient builds an OpenAI client configured for embeddings.
func newEmbeddingClient(config *ai.Config) (*openai.LLM, error) {
	opts := []openai.Option{
		openai.WithToken(config.Token),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}
	return openai.New(opts...)
}
