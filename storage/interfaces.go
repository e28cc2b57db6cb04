package storage

import (
	"context"

	"github.com/lampstand/sermonrec/core"
)

// SermonStore provides operations for the persistent content store.
// Implementations must be thread-safe and support concurrent access.
type SermonStore interface {
	// UpsertSermon inserts a sermon or replaces the existing row with the
	// same message link (the natural key). The returned sermon carries the
	// store-assigned Id and timestamps.
	UpsertSermon(ctx context.Context, sermon *core.Sermon) (*core.Sermon, error)

	// GetSermonByLink retrieves a sermon by its unique message link.
	// Returns ErrNotFound if no such sermon exists.
	GetSermonByLink(ctx context.Context, link string) (*core.Sermon, error)

	// ListSermons retrieves all sermons ordered by date descending.
	ListSermons(ctx context.Context) ([]*core.Sermon, error)

	// SearchSermons performs a full-text search over title, description and
	// theme, ranked by text relevance. A query matching nothing returns an
	// empty slice, not an error.
	SearchSermons(ctx context.Context, query string, limit int) ([]*core.Sermon, error)

	// ListSermonsByChannel retrieves all sermons from one channel,
	// ordered by date descending.
	ListSermonsByChannel(ctx context.Context, channel string) ([]*core.Sermon, error)

	// CountSermons returns the total number of stored sermons.
	CountSermons(ctx context.Context) (int, error)

	// DeleteAllSermons removes every sermon. Administrative use only.
	DeleteAllSermons(ctx context.Context) error

	// Close closes the store and releases resources.
	Close() error
}

// VectorIndex provides embedding storage and similarity search.
// Implementations must be thread-safe and support concurrent access.
type VectorIndex interface {
	// Add stores index entries, replacing any entry with the same key.
	Add(ctx context.Context, entries ...*core.IndexEntry) error

	// Search returns up to k entries nearest to the query vector, ordered
	// by ascending distance (closest first).
	Search(ctx context.Context, vector []float32, k int) ([]core.Neighbor, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Clear removes all entries. Administrative use only.
	Clear(ctx context.Context) error

	// Close closes the index and releases resources.
	Close() error
}
