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

package recommend

import (
	"context"
	"log/slog"

	"github.com/lampstand/sermonrec/ai"
	"github.com/lampstand/sermonrec/cache"
	"github.com/lampstand/sermonrec/core"
)

// Ranker performs the second pipeline stage: asking the model to order the
// retrieved candidates by relevance, with a similarity-threshold fallback
// when the model misbehaves.
type Ranker struct {
	model        ai.Ranker
	cache        *cache.Store
	minRelevance float64
	logger       *slog.Logger
}

// NewRanker creates a ranker. minRelevance is the similarity floor used by
// the fallback path when the model call fails.
func NewRanker(model ai.Ranker, cacheStore *cache.Store, minRelevance float64, logger *slog.Logger) (*Ranker, error) {
	if model == nil {
		return nil, ErrModelRankerRequired
	}
	if cacheStore == nil {
		return nil, ErrCacheRequired
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Ranker{
		model:        model,
		cache:        cacheStore,
		minRelevance: minRelevance,
		logger:       logger.With("component", "ranker"),
	}, nil
}

// Rank orders the candidates by relevance to the query.
func (r *Ranker) Rank(ctx context.Context, query string, candidates []core.SearchHit, userID int64) core.RankedList {
	return r.RankWithMonitor(ctx, query, candidates, userID, nil)
}

// RankWithMonitor orders the candidates by relevance to the query, with
// monitoring callbacks at each stage.
//
// Successful rankings are cached per user and normalized query. When the
// model call fails or returns unparseable output, the candidates are
// filtered by the similarity floor instead, preserving retrieval order;
// fallback results are never cached so a later call can try the model
// again.
func (r *Ranker) RankWithMonitor(ctx context.Context, query string, candidates []core.SearchHit, userID int64, monitor Monitor) core.RankedList {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if len(candidates) == 0 {
		return core.RankedList{}
	}

	key := cache.RankingKey(userID, query)
	if cached, ok := r.cache.Get(key); ok {
		monitor.CacheHit(key)
		r.logger.Info("using cached ranking", "user", userID, "key", key)
		return cached
	}

	window := candidates
	if len(window) > ai.MaxRankCandidates {
		window = window[:ai.MaxRankCandidates]
	}

	summaries := make([]ai.SermonSummary, len(window))
	for i, hit := range window {
		summaries[i] = ai.SermonSummary{
			Title:       hit.Sermon.Title,
			Description: hit.Sermon.Description,
		}
	}

	indexes, err := r.model.RankSermons(ctx, query, summaries)
	if err != nil {
		monitor.RankingFallback(err)
		r.logger.Warn("model ranking failed, falling back to similarity filter",
			"user", userID, "err", err)
		return r.fallback(candidates)
	}
	monitor.AfterRanking(indexes)

	// Reorder by the model's indexes. Out-of-range indexes and repeats
	// (by index or by link) are dropped rather than failing the whole
	// ranking.
	ranked := make(core.RankedList, 0, len(indexes))
	seenLinks := make(map[string]bool, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(window) {
			continue
		}
		link := window[idx].Sermon.MessageLink
		if seenLinks[link] {
			continue
		}
		seenLinks[link] = true
		ranked = append(ranked, window[idx])
	}

	r.cache.Set(key, ranked)

	r.logger.Info("ranking completed", "user", userID, "candidates", len(window), "ranked", len(ranked))
	return ranked
}

// fallback filters the candidates by the similarity floor, keeping
// retrieval order.
func (r *Ranker) fallback(candidates []core.SearchHit) core.RankedList {
	filtered := make(core.RankedList, 0, len(candidates))
	for _, hit := range candidates {
		if hit.Similarity >= r.minRelevance {
			filtered = append(filtered, hit)
		}
	}
	return filtered
}
