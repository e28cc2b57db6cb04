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

package sermonrec

import (
	"errors"
	"log/slog"

	"github.com/lampstand/sermonrec/ai"
	"github.com/lampstand/sermonrec/ai/openai"
	"github.com/lampstand/sermonrec/bot"
	"github.com/lampstand/sermonrec/cache"
	"github.com/lampstand/sermonrec/config"
	"github.com/lampstand/sermonrec/ingest"
	"github.com/lampstand/sermonrec/recommend"
	"github.com/lampstand/sermonrec/session"
	"github.com/lampstand/sermonrec/storage"
	"github.com/lampstand/sermonrec/storage/badger"
	"github.com/lampstand/sermonrec/storage/sqlite"
)

// ErrConfigRequired is returned when NewAdvisor is called without a config.
var ErrConfigRequired = errors.New("config required")

// Advisor is the root facade: it owns the content store, the vector index,
// the AI provider, the ranking cache and the session state, and hands out
// the services built on top of them.
type Advisor struct {
	store    storage.SermonStore
	backend  *badger.Backend
	index    storage.VectorIndex
	provider ai.Provider
	cache    *cache.Store
	sessions *session.Manager
	engine   *recommend.Engine
	logger   *slog.Logger
}

// AdvisorOption configures an Advisor.
type AdvisorOption func(*advisorOptions)

type advisorOptions struct {
	provider      ai.Provider
	logger        *slog.Logger
	inMemoryIndex bool
}

// WithAIProvider injects a provider instead of the OpenAI default.
// Used with the mock provider in tests and offline tooling.
func WithAIProvider(provider ai.Provider) AdvisorOption {
	return func(o *advisorOptions) {
		o.provider = provider
	}
}

// WithAdvisorLogger sets a custom logger.
// Default is slog.Default().
func WithAdvisorLogger(logger *slog.Logger) AdvisorOption {
	return func(o *advisorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInMemoryIndex keeps the vector index in memory instead of on disk.
func WithInMemoryIndex() AdvisorOption {
	return func(o *advisorOptions) {
		o.inMemoryIndex = true
	}
}

// NewAdvisor wires all services from the configuration. Dependencies open
// in order and are torn down in reverse on any failure.
func NewAdvisor(cfg *config.Config, opts ...AdvisorOption) (*Advisor, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	options := &advisorOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	store, err := sqlite.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(cfg.IndexPath, options.inMemoryIndex)
	if err != nil {
		store.Close()
		return nil, err
	}
	index := badger.NewVectorIndex(backend, logger)

	provider := options.provider
	if provider == nil {
		aiCfg := ai.NewConfig(
			ai.WithToken(cfg.OpenAIAPIKey),
			ai.WithChatModel(cfg.AIModel),
			ai.WithEmbeddingModel(cfg.EmbeddingModel),
		)
		provider, err = openai.NewProvider(aiCfg)
		if err != nil {
			backend.Close()
			store.Close()
			return nil, err
		}
	}

	rankCache, err := cache.New(cfg.CachePath, cfg.CacheDuration, logger)
	if err != nil {
		provider.Close()
		backend.Close()
		store.Close()
		return nil, err
	}

	sessions := session.NewManager(session.DefaultTTL, logger)

	retriever, err := recommend.NewRetriever(provider.Embedder(), index, cfg.TopK, logger)
	if err != nil {
		provider.Close()
		backend.Close()
		store.Close()
		return nil, err
	}

	ranker, err := recommend.NewRanker(provider.Ranker(), rankCache, cfg.MinRelevanceScore, logger)
	if err != nil {
		provider.Close()
		backend.Close()
		store.Close()
		return nil, err
	}

	engine, err := recommend.NewEngine(retriever, ranker, sessions, recommend.WithLogger(logger))
	if err != nil {
		provider.Close()
		backend.Close()
		store.Close()
		return nil, err
	}

	return &Advisor{
		store:    store,
		backend:  backend,
		index:    index,
		provider: provider,
		cache:    rankCache,
		sessions: sessions,
		engine:   engine,
		logger:   logger,
	}, nil
}

// Close releases all owned resources, in reverse order of construction.
func (a *Advisor) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing vector index", "err", err)
		return err
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing content store", "err", err)
		return err
	}
	return nil
}

// Engine returns the recommendation engine.
func (a *Advisor) Engine() *recommend.Engine {
	return a.engine
}

// Store returns the sermon content store.
func (a *Advisor) Store() storage.SermonStore {
	return a.store
}

// Index returns the vector index.
func (a *Advisor) Index() storage.VectorIndex {
	return a.index
}

// Provider returns the AI provider.
func (a *Advisor) Provider() ai.Provider {
	return a.provider
}

// NewPipeline creates an ingestion pipeline over the advisor's store,
// index and provider.
func (a *Advisor) NewPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(a.store, a.index, a.provider, opts...)
}

// NewMaterialsLoader creates a loader feeding the given pipeline from the
// configured materials directory.
func (a *Advisor) NewMaterialsLoader(dir string, pipeline *ingest.Pipeline) (*ingest.MaterialsLoader, error) {
	return ingest.NewMaterialsLoader(dir, pipeline, a.logger)
}

// NewBot creates the chat front-end over the advisor's engine and
// responder, bound to the given transport.
func (a *Advisor) NewBot(messenger bot.Messenger, opts ...bot.Option) (*bot.Bot, error) {
	return bot.NewBot(a.engine, a.provider.Responder(), messenger, opts...)
}
