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

// Package cache provides a file-backed cache for ranking results.
//
// Each key is stored as its own JSON file under the cache directory, in a
// versioned envelope carrying the value and an absolute expiry time.
// Expired entries are evicted lazily when read. There is no capacity
// bound; the cache grows with the number of distinct user/query pairs and
// relies on expiry for turnover.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"

	"github.com/lampstand/sermonrec/core"
)

// envelopeVersion is the current on-disk envelope format. Entries written
// with a different version are treated as absent.
const envelopeVersion = 1

// envelope is the JSON layout of a cache file.
type envelope struct {
	Version   int             `json:"version"`
	Value     core.RankedList `json:"value"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Store is a file-per-key cache of ranked sermon lists.
type Store struct {
	dir    string
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a cache store rooted at dir. Entries expire ttl after being
// written.
func New(dir string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Store{
		dir:    dir,
		ttl:    ttl,
		logger: logger.With("component", "cache"),
	}, nil
}

// Get returns the cached list for key, or ok=false when the key is absent,
// expired, or unreadable. Expired entries are removed on read.
func (s *Store) Get(key string) (core.RankedList, bool) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Decode failures are distinct from misses but treated the same.
		s.logger.Warn("cache entry undecodable", "key", key, "error", err)
		return nil, false
	}
	if env.Version != envelopeVersion {
		s.logger.Warn("cache entry version mismatch", "key", key, "version", env.Version)
		return nil, false
	}

	if time.Now().After(env.ExpiresAt) {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("cache eviction failed", "key", key, "error", err)
		}
		return nil, false
	}

	return env.Value, true
}

// Set stores the list under key with the configured TTL. Errors are logged
// and swallowed; the cache is an optimization, not a source of truth.
func (s *Store) Set(key string, value core.RankedList) {
	env := envelope{
		Version:   envelopeVersion,
		Value:     value,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	data, err := json.Marshal(env)
	if err != nil {
		s.logger.Error("cache encode failed", "key", key, "error", err)
		return
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		s.logger.Error("cache write failed", "key", key, "error", err)
	}
}

// Delete removes the entry for key, if present.
func (s *Store) Delete(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("cache delete failed", "key", key, "error", err)
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// RankingKey derives the cache key for a user's ranking of a query. The
// query is normalized (lowercased, whitespace collapsed) before hashing so
// trivially different phrasings share an entry.
func RankingKey(userID int64, query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")

	h, _ := blake2b.New(16, nil)
	h.Write([]byte(normalized))

	return fmt.Sprintf("rank_%d_%s", userID, hex.EncodeToString(h.Sum(nil)))
}
