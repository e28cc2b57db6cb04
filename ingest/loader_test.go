package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMaterialFilename(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantTitle string
		wantLink  string
		wantImage string
	}{
		{
			name:      "title link and image",
			filename:  "Walking in Faith [https://t.me/gracechurch/12] [cover.jpg].txt",
			wantTitle: "Walking in Faith",
			wantLink:  "https://t.me/gracechurch/12",
			wantImage: "cover.jpg",
		},
		{
			name:      "title and link only",
			filename:  "The Anointing [https://t.me/gracechurch/13].txt",
			wantTitle: "The Anointing",
			wantLink:  "https://t.me/gracechurch/13",
		},
		{
			name:      "title and image only",
			filename:  "Grace Abounds [Banner.PNG].txt",
			wantTitle: "Grace Abounds",
			wantImage: "Banner.PNG",
		},
		{
			name:      "plain title",
			filename:  "Sunday Message.txt",
			wantTitle: "Sunday Message",
		},
		{
			name:      "only brackets",
			filename:  "[https://t.me/gracechurch/14].txt",
			wantTitle: "Untitled Sermon",
			wantLink:  "https://t.me/gracechurch/14",
		},
		{
			name:      "stray brackets stripped from title",
			filename:  "Hope [draft].txt",
			wantTitle: "Hope draft",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, link, image := parseMaterialFilename(tt.filename)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantLink, link)
			assert.Equal(t, tt.wantImage, image)
		})
	}
}

func TestNewMaterialsLoaderRequiresPipeline(t *testing.T) {
	_, err := NewMaterialsLoader(t.TempDir(), nil, nil)
	assert.ErrorIs(t, err, ErrPipelineRequired)
}

func TestLoadAllIngestsMaterialFiles(t *testing.T) {
	pipeline, store, index, _ := newTestPipeline(t)
	ctx := context.Background()

	dir := t.TempDir()
	writeMaterial(t, dir, "Walking in Faith [cover.jpg].txt",
		"A teaching on what it means to trust God completely, even when the path ahead is unclear.")
	writeMaterial(t, dir, "Sunday Message.txt",
		"The Lord honors those who seek Him early. This message unpacks the discipline of morning devotion.")
	writeMaterial(t, dir, "too short.txt", "tiny")
	writeMaterial(t, dir, "notes.md", "Markdown files are not material files and must be ignored entirely here.")

	loader, err := NewMaterialsLoader(dir, pipeline, nil)
	require.NoError(t, err)

	stats, err := loader.LoadAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Scanned) // .md not counted
	assert.Equal(t, 2, stats.Ingested)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)

	// Without a bracketed link the filename becomes the pseudo-link.
	sermon, err := store.GetSermonByLink(ctx, "materials/Walking in Faith [cover.jpg].txt")
	require.NoError(t, err)
	assert.Equal(t, "Walking in Faith", sermon.Title)
	assert.Equal(t, "cover.jpg", sermon.ImageURL)
	assert.Equal(t, "materials", sermon.Channel)

	sermon, err = store.GetSermonByLink(ctx, "materials/Sunday Message.txt")
	require.NoError(t, err)
	assert.Equal(t, "Sunday Message", sermon.Title)

	// LoadAll waits for the embedding pool.
	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLoadAllReingestIsIdempotent(t *testing.T) {
	pipeline, store, _, _ := newTestPipeline(t)
	ctx := context.Background()

	dir := t.TempDir()
	writeMaterial(t, dir, "Walking in Faith.txt",
		"A teaching on what it means to trust God completely, even when the path ahead is unclear.")

	loader, err := NewMaterialsLoader(dir, pipeline, nil)
	require.NoError(t, err)

	_, err = loader.LoadAll(ctx)
	require.NoError(t, err)
	_, err = loader.LoadAll(ctx)
	require.NoError(t, err)

	count, err := store.CountSermons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoadAllCreatesMissingDirectory(t *testing.T) {
	pipeline, _, _, _ := newTestPipeline(t)

	dir := filepath.Join(t.TempDir(), "materials")
	loader, err := NewMaterialsLoader(dir, pipeline, nil)
	require.NoError(t, err)

	stats, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Scanned)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func writeMaterial(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
