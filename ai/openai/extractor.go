// Copyright 2025 Lampstand Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tmc/langchaingo/llms"

	"github.com/lampstand/sermonrec/ai"
)

// MetadataExtractor implements ai.MetadataExtractor using OpenAI-compatible chat APIs.
type MetadataExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// newMetadataExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newMetadataExtractor(config *ai.Config) (*MetadataExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &MetadataExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewMetadataExtractor creates a new extractor using the provided configuration.
//
// Returns ai.MetadataExtractor interface to enforce abstraction.
func NewMetadataExtractor(config *ai.Config) (ai.MetadataExtractor, error) {
	return newMetadataExtractor(config)
}

// ExtractMetadata asks the model for a title, description, and theme.
// Malformed JSON is retried a couple of times before giving up, since
// formatting slips are transient while transport errors usually are not.
func (e *MetadataExtractor) ExtractMetadata(ctx context.Context, text string) (*ai.SermonMetadata, error) {
	prompt := buildMetadataPrompt(text)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("metadata call failed", "attempt", attempt+1, "err", err)
			return nil, err
		}
		if len(response.Choices) < 1 {
			return nil, ai.ErrEmptyResponse
		}

		metadata, err := parseMetadata(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			e.logger.Warn("error parsing metadata response",
				"attempt", attempt+1,
				"response", truncate(response.Choices[0].Content, 200),
				"err", err)
			if errors.Is(err, ai.ErrMalformedResponse) {
				continue
			}
			return nil, err
		}

		e.logger.Debug("metadata extracted", "title", metadata.Title, "theme", metadata.Theme)
		return metadata, nil
	}

	e.logger.Error("failed to parse metadata response after retries", "err", lastErr)
	return nil, lastErr
}
