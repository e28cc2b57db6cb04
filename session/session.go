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

// Package session tracks per-user recommendation state for pagination.
//
// A session holds the full ranked list produced for a user's latest query
// and a cursor into it, so follow-up "more" requests can page through the
// remainder without re-running retrieval or ranking. Sessions live in
// memory only; a restart clears them and users simply search again.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/lampstand/sermonrec/core"
)

const (
	// pageSize is how many sermons a "more" request returns.
	pageSize = 5

	// maxFirstPage caps how many sermons the first page may contain.
	maxFirstPage = 20

	// DefaultTTL is how long an idle session survives before eviction.
	DefaultTTL = 24 * time.Hour
)

type userSession struct {
	list    core.RankedList
	cursor  int
	touched time.Time
}

// Manager holds the per-user sessions behind a mutex.
// Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*userSession
	ttl      time.Duration
	logger   *slog.Logger
}

// NewManager creates a session manager. A non-positive ttl falls back to
// DefaultTTL.
func NewManager(ttl time.Duration, logger *slog.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[int64]*userSession),
		ttl:      ttl,
		logger:   logger.With("component", "sessions"),
	}
}

// Start replaces any existing session for the user with the given list and
// returns the first page. The first page size is clamped to 1..20.
func (m *Manager) Start(userID int64, list core.RankedList, first int) []core.SearchHit {
	if first < 1 {
		first = 1
	}
	if first > maxFirstPage {
		first = maxFirstPage
	}
	if first > len(list) {
		first = len(list)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()

	m.sessions[userID] = &userSession{
		list:    list,
		cursor:  first,
		touched: time.Now(),
	}

	m.logger.Debug("session started", "user", userID, "total", len(list), "first_page", first)
	return list[:first]
}

// Next returns the next page of the user's session, up to pageSize items.
// Returns ErrNoSession when the user has no session and ErrExhausted when
// the list has been fully paged through; the cursor is untouched in both
// cases.
func (m *Manager) Next(userID int64) ([]core.SearchHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()

	sess, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}

	sess.touched = time.Now()

	if sess.cursor >= len(sess.list) {
		return nil, ErrExhausted
	}

	end := sess.cursor + pageSize
	if end > len(sess.list) {
		end = len(sess.list)
	}

	page := sess.list[sess.cursor:end]
	sess.cursor = end

	m.logger.Debug("session page served", "user", userID, "served", len(page), "cursor", sess.cursor)
	return page, nil
}

// Remaining reports how many items are left beyond the cursor.
// Zero when the user has no session.
func (m *Manager) Remaining(userID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		return 0
	}
	return len(sess.list) - sess.cursor
}

// Clear drops the user's session, if any.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// pruneLocked evicts sessions idle longer than the TTL.
// Caller must hold the mutex.
func (m *Manager) pruneLocked() {
	cutoff := time.Now().Add(-m.ttl)
	for id, sess := range m.sessions {
		if sess.touched.Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Debug("session evicted", "user", id)
		}
	}
}
