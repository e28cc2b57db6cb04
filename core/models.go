package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for index entries, derived from content hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text using BLAKE2b hashing.
// Identical content always produces the same ID, which is what makes duplicate
// ingestion of the same sermon link a no-op in the vector index.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Sermon is a single piece of ingested teaching content.
// MessageLink is the natural key: it is globally unique, and re-inserting a
// sermon with the same link replaces the stored row.
type Sermon struct {
	Id          int64     `json:"id"` // Assigned by the content store; 0 before insertion
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Channel     string    `json:"channel"` // Source channel the sermon was ingested from
	MessageLink string    `json:"message_link"`
	ImageURL    string    `json:"image_url,omitempty"` // Optional image reference
	Date        string    `json:"date,omitempty"`      // Optional, YYYY-MM-DD
	Theme       string    `json:"theme,omitempty"`     // Optional main theme, e.g. "Faith"
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Key returns the content-derived index ID for the sermon.
func (s *Sermon) Key() ID {
	return IDFromContent(s.MessageLink)
}

// EmbeddingText returns the text that is embedded for semantic search.
func (s *Sermon) EmbeddingText() string {
	return s.Title + "\n\n" + s.Description
}

// SearchHit is a sermon returned from retrieval together with its normalized
// similarity score in [0,1], where 1 means identical. The score is derived as
// 1 - distance from the vector index output.
type SearchHit struct {
	Sermon     Sermon  `json:"sermon"`
	Similarity float64 `json:"similarity"`
}

// RankedList is an ordered sequence of search hits, most relevant first,
// deduplicated by message link. It is the unit cached per (user, query).
type RankedList []SearchHit

// Links returns the message links of the list, in order.
func (l RankedList) Links() []string {
	links := make([]string, len(l))
	for i, hit := range l {
		links[i] = hit.Sermon.MessageLink
	}
	return links
}

// IndexEntry is a sermon with its embedding vector, as persisted in the
// vector index.
type IndexEntry struct {
	Key    ID
	Sermon Sermon
	Vector []float32
}

// Neighbor is an index entry returned from similarity search with its raw
// vector distance (lower is closer).
type Neighbor struct {
	Entry    IndexEntry
	Distance float64
}
