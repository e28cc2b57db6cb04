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

package ingest

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/lampstand/sermonrec/ai"
	"github.com/lampstand/sermonrec/core"
	"github.com/lampstand/sermonrec/storage"
)

// ChannelMessage is a raw post pulled from a channel, before any teaching
// filtering or metadata extraction.
type ChannelMessage struct {
	Channel  string
	Link     string
	Text     string
	Date     string // YYYY-MM-DD, empty when unknown
	HasPhoto bool
}

// Stats summarizes an ingestion run.
type Stats struct {
	Scanned  int // messages examined
	Skipped  int // not teachings, or already stored
	Ingested int // new sermons stored and indexed
	Failed   int // messages that errored
}

// Pipeline turns channel messages into stored, indexed sermons.
// Filtering, metadata extraction, and storage run synchronously per
// message; embedding and indexing run asynchronously on a worker pool.
type Pipeline struct {
	store      storage.SermonStore
	index      storage.VectorIndex
	embedder   ai.Embedder
	classifier ai.TeachingClassifier
	extractor  ai.MetadataExtractor
	pool       *ants.Pool
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for embedding and indexing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "ingest")
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	store storage.SermonStore,
	index storage.VectorIndex,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:      store,
		index:      index,
		embedder:   provider.Embedder(),
		classifier: provider.TeachingClassifier(),
		extractor:  provider.MetadataExtractor(),
		pool:       pool,
		logger:     slog.Default().With("component", "ingest"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest processes a batch of channel messages and blocks until all
// embedding work has drained. Individual message failures are counted and
// logged, never fatal to the batch.
func (p *Pipeline) Ingest(ctx context.Context, messages []ChannelMessage) (*Stats, error) {
	stats := &Stats{}

	for _, msg := range messages {
		stats.Scanned++

		ok, err := p.ingestOne(ctx, msg)
		switch {
		case err != nil:
			stats.Failed++
			p.logger.Error("message ingestion failed", "link", msg.Link, "err", err)
		case ok:
			stats.Ingested++
		default:
			stats.Skipped++
		}

		if err := ctx.Err(); err != nil {
			p.Wait()
			return stats, err
		}
	}

	p.Wait()

	p.logger.Info("ingestion run completed",
		"scanned", stats.Scanned, "ingested", stats.Ingested,
		"skipped", stats.Skipped, "failed", stats.Failed)
	return stats, nil
}

// ingestOne handles a single message. Returns true when a new sermon was
// stored.
func (p *Pipeline) ingestOne(ctx context.Context, msg ChannelMessage) (bool, error) {
	if !likelyTeaching(msg.Text) {
		return false, nil
	}

	isTeaching, err := p.classifier.IsTeaching(ctx, msg.Text)
	if err != nil {
		// The prefilter already passed; trust the keyword verdict when
		// the model is unavailable.
		p.logger.Warn("teaching classification failed, using keyword verdict",
			"link", msg.Link, "err", err)
		isTeaching = true
	}
	if !isTeaching {
		return false, nil
	}

	// Re-ingesting an already stored teaching is a no-op.
	if _, err := p.store.GetSermonByLink(ctx, msg.Link); err == nil {
		p.logger.Debug("sermon already stored", "link", msg.Link)
		return false, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	metadata, err := p.extractor.ExtractMetadata(ctx, msg.Text)
	if err != nil {
		p.logger.Warn("metadata extraction failed, using fallback",
			"link", msg.Link, "err", err)
		metadata = fallbackMetadata(msg.Text)
	}

	sermon := &core.Sermon{
		Title:       metadata.Title,
		Description: metadata.Description,
		Channel:     msg.Channel,
		MessageLink: msg.Link,
		Date:        msg.Date,
		Theme:       metadata.Theme,
	}
	if msg.HasPhoto {
		sermon.ImageURL = msg.Link
	}

	return true, p.IngestSermon(ctx, sermon)
}

// IngestSermon stores the sermon and schedules embedding and indexing.
// Used directly by loaders that produce sermons without channel metadata.
func (p *Pipeline) IngestSermon(ctx context.Context, sermon *core.Sermon) error {
	stored, err := p.store.UpsertSermon(ctx, sermon)
	if err != nil {
		return err
	}

	snapshot := *stored
	p.wg.Add(1)
	err = p.pool.Submit(func() {
		defer p.wg.Done()
		p.embedAndIndex(snapshot)
	})
	if err != nil {
		p.wg.Done()
		return err
	}

	p.logger.Debug("sermon queued for indexing", "title", sermon.Title, "link", sermon.MessageLink)
	return nil
}

// embedAndIndex runs on the worker pool. Errors are logged; the sermon
// stays searchable via full text even when embedding fails.
func (p *Pipeline) embedAndIndex(sermon core.Sermon) {
	ctx := context.Background()

	vector, err := p.embedder.EmbedText(ctx, sermon.EmbeddingText())
	if err != nil {
		p.logger.Error("embedding failed", "link", sermon.MessageLink, "err", err)
		return
	}

	entry := &core.IndexEntry{
		Key:    sermon.Key(),
		Sermon: sermon,
		Vector: vector,
	}
	if err := p.index.Add(ctx, entry); err != nil {
		p.logger.Error("indexing failed", "link", sermon.MessageLink, "err", err)
	}
}

// Wait blocks until all scheduled embedding work has finished.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Release waits for in-flight work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.wg.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}
