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

// Package sqlite implements the sermon content store on SQLite.
//
// The store keeps one row per sermon, deduplicated by message link, and
// maintains an FTS5 index over title, description, and theme for keyword
// search. Two connection handles are used: a single-connection writer and
// a read-only reader, so long scans never block ingestion.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lampstand/sermonrec/core"
	"github.com/lampstand/sermonrec/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS sermons (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL,
	channel      TEXT NOT NULL,
	message_link TEXT UNIQUE NOT NULL,
	image_url    TEXT NOT NULL DEFAULT '',
	date         TEXT NOT NULL DEFAULT '',
	theme        TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sermons_channel ON sermons(channel);
CREATE INDEX IF NOT EXISTS idx_sermons_date ON sermons(date);
CREATE INDEX IF NOT EXISTS idx_sermons_theme ON sermons(theme);

CREATE VIRTUAL TABLE IF NOT EXISTS sermons_fts USING fts5(
	title, description, theme, content='sermons', content_rowid='id'
);

CREATE TRIGGER IF NOT EXISTS sermons_ai AFTER INSERT ON sermons BEGIN
	INSERT INTO sermons_fts(rowid, title, description, theme)
	VALUES (new.id, new.title, new.description, new.theme);
END;
CREATE TRIGGER IF NOT EXISTS sermons_ad AFTER DELETE ON sermons BEGIN
	INSERT INTO sermons_fts(sermons_fts, rowid, title, description, theme)
	VALUES ('delete', old.id, old.title, old.description, old.theme);
END;
CREATE TRIGGER IF NOT EXISTS sermons_au AFTER UPDATE ON sermons BEGIN
	INSERT INTO sermons_fts(sermons_fts, rowid, title, description, theme)
	VALUES ('delete', old.id, old.title, old.description, old.theme);
	INSERT INTO sermons_fts(rowid, title, description, theme)
	VALUES (new.id, new.title, new.description, new.theme);
END;
`

const sermonColumns = `id, title, description, channel, message_link, image_url, date, theme, created_at, updated_at`

// store implements storage.SermonStore on SQLite.
type store struct {
	readDB  *sql.DB
	writeDB *sql.DB
	logger  *slog.Logger
}

// Open opens (or creates) a sermon store at the given path.
func Open(dbPath string, logger *slog.Logger) (storage.SermonStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	s := &store{
		writeDB: writeDB,
		logger:  logger.With("component", "sermon_store"),
	}
	if err := s.init(); err != nil {
		_ = writeDB.Close()
		return nil, err
	}

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		_ = writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	s.readDB = readDB

	s.logger.Info("sermon store opened", "path", dbPath)
	return s, nil
}

func (s *store) init() error {
	if _, err := s.writeDB.Exec(schema); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// Close closes both connection handles.
func (s *store) Close() error {
	var firstErr error
	for _, db := range []*sql.DB{s.readDB, s.writeDB} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// UpsertSermon inserts a sermon or updates the existing row with the same
// message link. The returned sermon carries the store-assigned Id and
// timestamps; the input is left untouched.
func (s *store) UpsertSermon(ctx context.Context, sermon *core.Sermon) (*core.Sermon, error) {
	if err := core.ValidateSermon(sermon); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err := s.writeDB.ExecContext(ctx, `
		INSERT INTO sermons (title, description, channel, message_link, image_url, date, theme, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(message_link) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			channel = excluded.channel,
			image_url = excluded.image_url,
			date = excluded.date,
			theme = excluded.theme,
			updated_at = excluded.updated_at
	`, sermon.Title, sermon.Description, sermon.Channel, sermon.MessageLink,
		sermon.ImageURL, sermon.Date, sermon.Theme, now, now)
	if err != nil {
		return nil, fmt.Errorf("upserting sermon %q: %w", sermon.MessageLink, err)
	}

	stored, err := s.getByLink(ctx, s.writeDB, sermon.MessageLink)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("sermon stored", "id", stored.Id, "title", stored.Title)
	return stored, nil
}

// GetSermonByLink returns the sermon with the given message link, or
// storage.ErrNotFound when no such row exists.
func (s *store) GetSermonByLink(ctx context.Context, messageLink string) (*core.Sermon, error) {
	return s.getByLink(ctx, s.readDB, messageLink)
}

func (s *store) getByLink(ctx context.Context, db *sql.DB, messageLink string) (*core.Sermon, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+sermonColumns+` FROM sermons WHERE message_link = ?`, messageLink)

	sermon, err := scanSermon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: sermon %q", storage.ErrNotFound, messageLink)
	}
	if err != nil {
		return nil, err
	}
	return sermon, nil
}

// ListSermons returns all sermons ordered by date, newest first.
func (s *store) ListSermons(ctx context.Context) ([]*core.Sermon, error) {
	return s.querySermons(ctx,
		`SELECT `+sermonColumns+` FROM sermons ORDER BY date DESC, id DESC`)
}

// SearchSermons runs a full-text search over titles, descriptions, and
// themes. Queries with no indexable terms return an empty result.
func (s *store) SearchSermons(ctx context.Context, query string, limit int) ([]*core.Sermon, error) {
	match := ftsQuery(query)
	if match == "" {
		return []*core.Sermon{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	return s.querySermons(ctx, `
		SELECT s.id, s.title, s.description, s.channel, s.message_link,
		       s.image_url, s.date, s.theme, s.created_at, s.updated_at
		FROM sermons s
		JOIN sermons_fts fts ON s.id = fts.rowid
		WHERE sermons_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, match, limit)
}

// ListSermonsByChannel returns all sermons from the given channel, newest
// first.
func (s *store) ListSermonsByChannel(ctx context.Context, channel string) ([]*core.Sermon, error) {
	return s.querySermons(ctx,
		`SELECT `+sermonColumns+` FROM sermons WHERE channel = ? ORDER BY date DESC, id DESC`,
		channel)
}

// CountSermons returns the number of stored sermons.
func (s *store) CountSermons(ctx context.Context) (int, error) {
	var count int
	err := s.readDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM sermons`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting sermons: %w", err)
	}
	return count, nil
}

// DeleteAllSermons removes every stored sermon.
func (s *store) DeleteAllSermons(ctx context.Context) error {
	if _, err := s.writeDB.ExecContext(ctx, `DELETE FROM sermons`); err != nil {
		return fmt.Errorf("deleting sermons: %w", err)
	}
	s.logger.Info("all sermons deleted")
	return nil
}

func (s *store) querySermons(ctx context.Context, query string, args ...any) ([]*core.Sermon, error) {
	rows, err := s.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sermons: %w", err)
	}
	defer rows.Close()

	sermons := []*core.Sermon{}
	for rows.Next() {
		sermon, err := scanSermon(rows)
		if err != nil {
			return nil, err
		}
		sermons = append(sermons, sermon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading sermon rows: %w", err)
	}
	return sermons, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSermon(row rowScanner) (*core.Sermon, error) {
	var sermon core.Sermon
	err := row.Scan(
		&sermon.Id,
		&sermon.Title,
		&sermon.Description,
		&sermon.Channel,
		&sermon.MessageLink,
		&sermon.ImageURL,
		&sermon.Date,
		&sermon.Theme,
		&sermon.CreatedAt,
		&sermon.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sermon, nil
}

// ftsKeywords are FTS5 query operators stripped from user input.
var ftsKeywords = map[string]bool{
	"and":  true,
	"or":   true,
	"not":  true,
	"near": true,
}

// ftsQuery turns free-form user text into a safe FTS5 MATCH expression.
// Each term is quoted so FTS operator characters in user input cannot
// break the query, and bare operator keywords are dropped so a stray
// "OR" relaxes the match instead of demanding a literal term.
func ftsQuery(query string) string {
	terms := strings.FieldsFunc(query, func(r rune) bool {
		return !isTermRune(r)
	})

	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		if ftsKeywords[strings.ToLower(term)] {
			continue
		}
		quoted = append(quoted, `"`+term+`"`)
	}
	return strings.Join(quoted, " ")
}

func isTermRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r > 127:
		// Keep non-ASCII letters so non-English queries still match.
		return true
	}
	return false
}
