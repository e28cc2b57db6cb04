package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampstand/sermonrec/ai"
	"github.com/lampstand/sermonrec/ai/mock"
	"github.com/lampstand/sermonrec/storage"
	badgerstore "github.com/lampstand/sermonrec/storage/badger"
	"github.com/lampstand/sermonrec/storage/sqlite"
)

// teachingText passes the keyword prefilter: long enough, several
// teaching keywords.
const teachingText = `The Power of Unshakable Faith

Beloved, the Lord laid a word on my heart about faith. Scripture tells us
that faith is the substance of things hoped for. When we anchor our prayer
life in the word of God, every storm must bow to His glory.`

func newTestPipeline(t *testing.T) (*Pipeline, storage.SermonStore, storage.VectorIndex, *mock.MockProvider) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "sermons.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	index, backend, err := badgerstore.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	provider := mock.NewMockProvider()

	pipeline, err := NewPipeline(store, index, provider,
		WithLogger(logger), WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, store, index, provider.(*mock.MockProvider)
}

func teachingMessage(link string) ChannelMessage {
	return ChannelMessage{
		Channel: "gracechurch",
		Link:    link,
		Text:    teachingText,
		Date:    "2025-03-09",
	}
}

func TestNewPipelineValidation(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "sermons.db"), nil)
	require.NoError(t, err)
	defer store.Close()

	index, backend, err := badgerstore.NewMemoryIndex()
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProvider()

	t.Run("requires store", func(t *testing.T) {
		_, err := NewPipeline(nil, index, provider)
		assert.ErrorIs(t, err, ErrStoreRequired)
	})

	t.Run("requires index", func(t *testing.T) {
		_, err := NewPipeline(store, nil, provider)
		assert.ErrorIs(t, err, ErrIndexRequired)
	})

	t.Run("requires provider", func(t *testing.T) {
		_, err := NewPipeline(store, index, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})
}

func TestIngestStoresAndIndexesTeaching(t *testing.T) {
	pipeline, store, index, _ := newTestPipeline(t)
	ctx := context.Background()

	stats, err := pipeline.Ingest(ctx, []ChannelMessage{teachingMessage("https://t.me/gracechurch/42")})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 1, stats.Ingested)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)

	sermon, err := store.GetSermonByLink(ctx, "https://t.me/gracechurch/42")
	require.NoError(t, err)
	assert.Equal(t, "The Power of Unshakable Faith", sermon.Title)
	assert.Equal(t, "gracechurch", sermon.Channel)
	assert.Equal(t, "2025-03-09", sermon.Date)

	// Ingest waits for the pool, so the vector must be there already.
	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestSkipsShortMessagesWithoutModelCall(t *testing.T) {
	pipeline, _, _, provider := newTestPipeline(t)

	stats, err := pipeline.Ingest(context.Background(), []ChannelMessage{
		{Channel: "gracechurch", Link: "https://t.me/gracechurch/1", Text: "Service starts at 10am!"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Ingested)
	assert.Equal(t, 0, provider.GetMockClassifier().CallCount())
}

func TestIngestSkipsWhenClassifierRejects(t *testing.T) {
	pipeline, store, _, provider := newTestPipeline(t)
	ctx := context.Background()

	provider.GetMockClassifier().IsTeachingFunc = func(ctx context.Context, text string) (bool, error) {
		return false, nil
	}

	stats, err := pipeline.Ingest(ctx, []ChannelMessage{teachingMessage("https://t.me/gracechurch/7")})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Skipped)
	count, err := store.CountSermons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIngestClassifierErrorFallsBackToKeywordVerdict(t *testing.T) {
	pipeline, store, _, provider := newTestPipeline(t)
	ctx := context.Background()

	provider.GetMockClassifier().IsTeachingFunc = func(ctx context.Context, text string) (bool, error) {
		return false, errors.New("model unreachable")
	}

	stats, err := pipeline.Ingest(ctx, []ChannelMessage{teachingMessage("https://t.me/gracechurch/8")})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Ingested)
	count, err := store.CountSermons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestDeduplicatesByLink(t *testing.T) {
	pipeline, store, _, provider := newTestPipeline(t)
	ctx := context.Background()

	msg := teachingMessage("https://t.me/gracechurch/9")

	stats, err := pipeline.Ingest(ctx, []ChannelMessage{msg})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Ingested)

	stats, err = pipeline.Ingest(ctx, []ChannelMessage{msg})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Ingested)

	// Metadata extraction runs only for the first pass.
	assert.Equal(t, 1, provider.GetMockExtractor().CallCount())

	count, err := store.CountSermons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestMetadataFallbackOnExtractorError(t *testing.T) {
	pipeline, store, _, provider := newTestPipeline(t)
	ctx := context.Background()

	provider.GetMockExtractor().ExtractMetadataFunc = func(ctx context.Context, text string) (*ai.SermonMetadata, error) {
		return nil, errors.New("malformed response")
	}

	stats, err := pipeline.Ingest(ctx, []ChannelMessage{teachingMessage("https://t.me/gracechurch/10")})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Ingested)

	sermon, err := store.GetSermonByLink(ctx, "https://t.me/gracechurch/10")
	require.NoError(t, err)
	assert.Equal(t, "The Power of Unshakable Faith", sermon.Title)
	assert.Equal(t, "Faith", sermon.Theme)
	assert.NotEmpty(t, sermon.Description)
}

func TestIngestRecordsImageForPhotoMessages(t *testing.T) {
	pipeline, store, _, _ := newTestPipeline(t)
	ctx := context.Background()

	msg := teachingMessage("https://t.me/gracechurch/11")
	msg.HasPhoto = true

	_, err := pipeline.Ingest(ctx, []ChannelMessage{msg})
	require.NoError(t, err)

	sermon, err := store.GetSermonByLink(ctx, "https://t.me/gracechurch/11")
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/gracechurch/11", sermon.ImageURL)
}

func TestIngestCountsFailures(t *testing.T) {
	pipeline, _, _, provider := newTestPipeline(t)

	// A store error surfaces as a failed message, not a failed batch.
	provider.GetMockExtractor().ExtractMetadataFunc = func(ctx context.Context, text string) (*ai.SermonMetadata, error) {
		// Empty title fails sermon validation on upsert.
		return &ai.SermonMetadata{Title: "", Description: "d", Theme: "General"}, nil
	}

	stats, err := pipeline.Ingest(context.Background(), []ChannelMessage{teachingMessage("https://t.me/gracechurch/12")})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
}

func TestReindexRebuildsVectorIndex(t *testing.T) {
	pipeline, _, index, _ := newTestPipeline(t)
	ctx := context.Background()

	messages := []ChannelMessage{
		teachingMessage("https://t.me/gracechurch/20"),
		teachingMessage("https://t.me/gracechurch/21"),
	}
	_, err := pipeline.Ingest(ctx, messages)
	require.NoError(t, err)

	require.NoError(t, index.Clear(ctx))
	count, err := index.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	scheduled, err := pipeline.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, scheduled)

	count, err = index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLikelyTeaching(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "teaching with multiple keywords",
			text: teachingText,
			want: true,
		},
		{
			name: "too short",
			text: "faith and prayer",
			want: false,
		},
		{
			name: "long but only one keyword",
			text: "faith " + strings.Repeat("walking forward together, step by step, ", 4),
			want: false,
		},
		{
			name: "empty",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, likelyTeaching(tt.text))
		})
	}
}

func TestGuessTheme(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"a teaching about faith and trust", "Faith"},
		{"divine healing flows tonight", "Healing"},
		{"breakthrough is coming", "Breakthrough"},
		{"nothing matching here", "General"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, guessTheme(tt.text), tt.text)
	}
}

func TestFallbackMetadata(t *testing.T) {
	t.Run("first line becomes title", func(t *testing.T) {
		meta := fallbackMetadata(teachingText)
		assert.Equal(t, "The Power of Unshakable Faith", meta.Title)
		assert.Equal(t, "Faith", meta.Theme)
		assert.NotContains(t, meta.Description, "\n")
	})

	t.Run("short first line falls back to first sentence", func(t *testing.T) {
		text := "Beloved!\nThe Lord spoke to me about walking in divine healing today. Receive it."
		meta := fallbackMetadata(text)
		assert.Equal(t, "Beloved! The Lord spoke to me about walking in divine healing today", meta.Title)
	})

	t.Run("long description clamped", func(t *testing.T) {
		long := make([]byte, 900)
		for i := range long {
			long[i] = 'a'
		}
		meta := fallbackMetadata("Title line\n" + string(long))
		assert.LessOrEqual(t, len(meta.Description), 500)
	})
}
