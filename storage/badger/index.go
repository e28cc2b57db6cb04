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

// Package badger implements the vector index on BadgerDB.
//
// Each entry is stored under a prefixed key derived from the sermon's
// content ID and holds the sermon snapshot plus its embedding vector.
// Search is a brute-force cosine scan over all entries, which is fine
// for the collection sizes this system targets (thousands, not
// millions).
package badger

import (
	"context"
	"log/slog"
	"math"
	"sort"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/lampstand/sermonrec/core"
	"github.com/lampstand/sermonrec/storage"
)

// vectorIndex implements storage.VectorIndex on a Backend.
type vectorIndex struct {
	backend *Backend
	logger  *slog.Logger
}

// NewVectorIndex creates a vector index on the given backend.
func NewVectorIndex(backend *Backend, logger *slog.Logger) storage.VectorIndex {
	if logger == nil {
		logger = slog.Default()
	}
	return &vectorIndex{
		backend: backend,
		logger:  logger.With("component", "vector_index"),
	}
}

// Add stores index entries, replacing any previous entries with the same
// keys. All entries go through a single transaction.
func (v *vectorIndex) Add(ctx context.Context, entries ...*core.IndexEntry) error {
	if v.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	err := v.backend.WithTx(func(tx *badgerdb.Txn) error {
		for _, entry := range entries {
			if err := tx.Set(makeIndexEntryKey(entry.Key), storage.MarshalIndexEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	v.logger.Debug("index entries stored", "count", len(entries))
	return nil
}

// Search scans all entries and returns the k nearest to the query vector,
// ordered by ascending cosine distance.
func (v *vectorIndex) Search(ctx context.Context, vector []float32, k int) ([]core.Neighbor, error) {
	if v.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if len(vector) == 0 {
		return nil, storage.ErrInvalidQuery
	}
	if k <= 0 {
		return []core.Neighbor{}, nil
	}

	var neighbors []core.Neighbor

	err := v.backend.WithTx(func(tx *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(indexEntryPrefix + ":")
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			err := it.Item().Value(func(val []byte) error {
				entry, err := storage.UnmarshalIndexEntry(val)
				if err != nil {
					// A corrupt entry should not poison the whole scan.
					v.logger.Warn("skipping unreadable index entry",
						"key", string(it.Item().Key()), "error", err)
					return nil
				}
				if len(entry.Vector) != len(vector) {
					return nil
				}
				neighbors = append(neighbors, core.Neighbor{
					Entry:    *entry,
					Distance: cosineDistance(vector, entry.Vector),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}

	v.logger.Debug("similarity search completed", "candidates", len(neighbors), "k", k)
	return neighbors, nil
}

// Count returns the number of entries in the index.
func (v *vectorIndex) Count(ctx context.Context) (int, error) {
	if v.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := v.backend.WithTx(func(tx *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(indexEntryPrefix + ":")
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Clear removes all entries from the index.
func (v *vectorIndex) Clear(ctx context.Context) error {
	if v.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := v.backend.DropPrefix([]byte(indexEntryPrefix + ":")); err != nil {
		return err
	}
	v.logger.Info("vector index cleared")
	return nil
}

// Close closes the underlying backend.
func (v *vectorIndex) Close() error {
	if v.backend.IsClosed() {
		return nil
	}
	return v.backend.Close()
}

// cosineDistance returns 1 minus the cosine similarity of a and b.
// Identical directions yield 0, orthogonal vectors yield 1.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
