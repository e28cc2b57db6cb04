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
	"github.com/lampstand/sermonrec/core"
	"github.com/lampstand/sermonrec/storage"
)

// Retriever performs the first pipeline stage: embedding the query and
// pulling the nearest sermons from the vector index.
type Retriever struct {
	embedder ai.Embedder
	index    storage.VectorIndex
	topK     int
	logger   *slog.Logger
}

// NewRetriever creates a retriever that returns up to topK candidates per
// query.
func NewRetriever(embedder ai.Embedder, index storage.VectorIndex, topK int, logger *slog.Logger) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if topK <= 0 {
		topK = 20
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
		logger:   logger.With("component", "retriever"),
	}, nil
}

// Retrieve returns candidate sermons for the query ordered by descending
// similarity. Retrieval is best-effort: any failure is logged and an empty
// slice returned, so a degraded index never takes the whole pipeline down.
func (r *Retriever) Retrieve(ctx context.Context, query string) []core.SearchHit {
	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("query embedding failed", "query", query, "err", err)
		return []core.SearchHit{}
	}
	if len(vector) == 0 {
		r.logger.Warn("query embedding is empty", "query", query)
		return []core.SearchHit{}
	}

	neighbors, err := r.index.Search(ctx, vector, r.topK)
	if err != nil {
		r.logger.Error("similarity search failed", "query", query, "err", err)
		return []core.SearchHit{}
	}

	hits := make([]core.SearchHit, len(neighbors))
	for i, n := range neighbors {
		hits[i] = core.SearchHit{
			Sermon:     n.Entry.Sermon,
			Similarity: 1 - n.Distance,
		}
	}

	r.logger.Debug("retrieval completed", "query", query, "candidates", len(hits))
	return hits
}
