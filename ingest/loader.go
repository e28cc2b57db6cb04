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
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/lampstand/sermonrec/core"
)

// materialsChannel is the channel name recorded for file-based sermons.
const materialsChannel = "materials"

// minMaterialLength is the minimum content length for a material file to
// be worth ingesting.
const minMaterialLength = 50

var (
	linkPattern  = regexp.MustCompile(`\[(https?://[^\]]+)\]`)
	imagePattern = regexp.MustCompile(`(?i)\[([^\]]+\.(jpg|jpeg|png|gif))\]`)
)

// MaterialsLoader ingests plain-text sermon files from a directory.
//
// Filenames carry optional metadata in square brackets:
//
//	Walking in Faith [https://t.me/channel/12] [cover.jpg].txt
//
// The bracketed link becomes the sermon's message link (falling back to a
// materials/ pseudo-link) and the bracketed image name its image URL.
type MaterialsLoader struct {
	dir      string
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewMaterialsLoader creates a loader for the given directory.
func NewMaterialsLoader(dir string, pipeline *Pipeline, logger *slog.Logger) (*MaterialsLoader, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MaterialsLoader{
		dir:      dir,
		pipeline: pipeline,
		logger:   logger.With("component", "materials"),
	}, nil
}

// LoadAll ingests every .txt file in the directory. A missing directory is
// created and treated as empty. Per-file failures are counted, not fatal.
func (l *MaterialsLoader) LoadAll(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(l.dir, 0o755); mkErr != nil {
				return stats, mkErr
			}
			l.logger.Info("created materials folder", "path", l.dir)
			return stats, nil
		}
		return stats, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}
		stats.Scanned++

		ok, err := l.loadFile(ctx, entry.Name())
		switch {
		case err != nil:
			stats.Failed++
			l.logger.Error("material ingestion failed", "file", entry.Name(), "err", err)
		case ok:
			stats.Ingested++
		default:
			stats.Skipped++
		}
	}

	l.pipeline.Wait()

	l.logger.Info("materials load completed",
		"scanned", stats.Scanned, "ingested", stats.Ingested,
		"skipped", stats.Skipped, "failed", stats.Failed)
	return stats, nil
}

func (l *MaterialsLoader) loadFile(ctx context.Context, filename string) (bool, error) {
	content, err := os.ReadFile(filepath.Join(l.dir, filename))
	if err != nil {
		return false, err
	}

	text := strings.TrimSpace(string(content))
	if len(text) < minMaterialLength {
		l.logger.Warn("skipping empty or too short file", "file", filename)
		return false, nil
	}

	title, link, image := parseMaterialFilename(filename)
	if link == "" {
		link = materialsChannel + "/" + filename
	}

	sermon := &core.Sermon{
		Title:       title,
		Description: clamp(strings.ReplaceAll(text, "\n", " "), 500),
		Channel:     materialsChannel,
		MessageLink: link,
		ImageURL:    image,
		Date:        time.Now().Format("2006-01-02"),
		Theme:       guessTheme(text),
	}

	return true, l.pipeline.IngestSermon(ctx, sermon)
}

// parseMaterialFilename splits "Title [link] [image.jpg].txt" into its
// parts. Missing brackets leave the corresponding value empty; an empty
// remaining title becomes "Untitled Sermon".
func parseMaterialFilename(filename string) (title, link, image string) {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	if m := linkPattern.FindStringSubmatch(name); m != nil {
		link = m[1]
		name = strings.Replace(name, m[0], "", 1)
	}
	if m := imagePattern.FindStringSubmatch(name); m != nil {
		image = m[1]
		name = strings.Replace(name, m[0], "", 1)
	}

	name = strings.TrimSpace(strings.NewReplacer("[", "", "]", "").Replace(name))
	if name == "" {
		name = "Untitled Sermon"
	}
	return name, link, image
}
