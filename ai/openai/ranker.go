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
	"log/slog"

	"github.com/tmc/langchaingo/llms"

	"github.com/lampstand/sermonrec/ai"
)

// Ranker implements ai.Ranker using OpenAI-compatible chat APIs.
type Ranker struct {
	client llms.Model
	logger *slog.Logger
}

// newRanker is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRanker(config *ai.Config) (*Ranker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &Ranker{
		client: client,
		logger: slog.Default().With("component", "openai-ranker"),
	}, nil
}

// NewRanker creates a new ranker using the provided configuration.
//
// Returns ai.Ranker interface to enforce abstraction.
func NewRanker(config *ai.Config) (ai.Ranker, error) {
	return newRanker(config)
}

// RankSermons asks the model to order the candidate summaries by relevance
// to the query and returns the resulting indexes. At most
// ai.MaxRankCandidates summaries are shown to the model; indexes can only
// refer to that window.
func (r *Ranker) RankSermons(ctx context.Context, query string, summaries []ai.SermonSummary) ([]int, error) {
	if len(summaries) == 0 {
		return []int{}, nil
	}
	if len(summaries) > ai.MaxRankCandidates {
		summaries = summaries[:ai.MaxRankCandidates]
	}

	prompt := buildRankingPrompt(query, summaries)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		r.logger.Error("ranking call failed", "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return nil, ai.ErrEmptyResponse
	}

	indexes, err := parseRanking(response.Choices[0].Content)
	if err != nil {
		r.logger.Warn("unparseable ranking response",
			"response", truncate(response.Choices[0].Content, 200), "err", err)
		return nil, err
	}

	r.logger.Debug("ranking completed", "candidates", len(summaries), "ranked", len(indexes))
	return indexes, nil
}
