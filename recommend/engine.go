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
	"strings"

	"github.com/lampstand/sermonrec/core"
	"github.com/lampstand/sermonrec/session"
)

// Engine orchestrates the recommendation pipeline: retrieval, ranking, and
// session-backed pagination.
type Engine struct {
	retriever *Retriever
	ranker    *Ranker
	sessions  *session.Manager
	monitor   Monitor
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "engine")
		return nil
	}
}

// WithMonitor sets a pipeline monitor invoked on every recommendation.
// Default is a no-op.
func WithMonitor(monitor Monitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// NewEngine creates a recommendation engine.
func NewEngine(retriever *Retriever, ranker *Ranker, sessions *session.Manager, opts ...Option) (*Engine, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if ranker == nil {
		return nil, ErrRankerRequired
	}
	if sessions == nil {
		return nil, ErrSessionsRequired
	}

	e := &Engine{
		retriever: retriever,
		ranker:    ranker,
		sessions:  sessions,
		monitor:   &noopMonitor{},
		logger:    slog.Default().With("component", "engine"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Recommend runs the full pipeline for a topic and returns the first page
// of results (up to n sermons). The remaining ranked sermons are held in
// the user's session for More. Returns ErrNoResults when retrieval found
// nothing and ErrNothingRelevant when ranking kept nothing; no session is
// started in either case so an earlier session stays pageable.
func (e *Engine) Recommend(ctx context.Context, userID int64, topic string, n int) ([]core.SearchHit, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	e.monitor.Start(topic)

	candidates := e.retriever.Retrieve(ctx, topic)
	e.monitor.AfterRetrieval(candidates)

	if len(candidates) == 0 {
		e.monitor.Finish(nil)
		e.logger.Info("no sermons retrieved", "user", userID, "topic", topic)
		return nil, ErrNoResults
	}

	ranked := e.ranker.RankWithMonitor(ctx, topic, candidates, userID, e.monitor)
	e.monitor.Finish(ranked)

	if len(ranked) == 0 {
		e.logger.Info("no relevant sermons found", "user", userID, "topic", topic)
		return nil, ErrNothingRelevant
	}

	first := e.sessions.Start(userID, ranked, n)
	e.logger.Info("recommendations served",
		"user", userID, "topic", topic, "total", len(ranked), "served", len(first))
	return first, nil
}

// More returns the next page of the user's current session.
// Returns session.ErrNoSession or session.ErrExhausted when there is
// nothing to serve.
func (e *Engine) More(userID int64) ([]core.SearchHit, error) {
	page, err := e.sessions.Next(userID)
	if err != nil {
		return nil, err
	}
	e.logger.Info("more recommendations served", "user", userID, "served", len(page))
	return page, nil
}

// Remaining reports how many ranked sermons the user's session still holds
// beyond what has been served. Zero when there is no session.
func (e *Engine) Remaining(userID int64) int {
	return e.sessions.Remaining(userID)
}
