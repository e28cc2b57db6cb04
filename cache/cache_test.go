package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampstand/sermonrec/core"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := New(dir, ttl, nil)
	require.NoError(t, err)
	return store, dir
}

func rankedList(titles ...string) core.RankedList {
	list := make(core.RankedList, len(titles))
	for i, title := range titles {
		list[i] = core.SearchHit{
			Sermon: core.Sermon{
				Title:       title,
				Description: "description",
				Channel:     "@channel",
				MessageLink: "https://t.me/c/" + title,
			},
			Similarity: 0.9,
		}
	}
	return list
}

func TestCacheSetGet(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	list := rankedList("First", "Second")
	store.Set("rank_1_abc", list)

	got, ok := store.Get("rank_1_abc")
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Sermon.Title)
	assert.Equal(t, "Second", got[1].Sermon.Title)
	assert.InDelta(t, 0.9, got[0].Similarity, 1e-9)
}

func TestCacheGet_Missing(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, ok := store.Get("rank_1_missing")
	assert.False(t, ok)
}

func TestCacheGet_ExpiredEntryRemoved(t *testing.T) {
	store, dir := newTestStore(t, -time.Minute) // already expired on write

	store.Set("rank_1_abc", rankedList("Sermon"))

	path := filepath.Join(dir, "rank_1_abc.json")
	_, err := os.Stat(path)
	require.NoError(t, err, "entry should exist before the expired read")

	_, ok := store.Get("rank_1_abc")
	assert.False(t, ok)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expired entry should be removed on read")
}

func TestCacheGet_Undecodable(t *testing.T) {
	store, dir := newTestStore(t, time.Hour)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "rank_1_bad.json"), []byte("not json"), 0o644))

	_, ok := store.Get("rank_1_bad")
	assert.False(t, ok)
}

func TestCacheGet_VersionMismatch(t *testing.T) {
	store, dir := newTestStore(t, time.Hour)

	stale := `{"version":99,"value":[],"expires_at":"2099-01-01T00:00:00Z"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rank_1_old.json"), []byte(stale), 0o644))

	_, ok := store.Get("rank_1_old")
	assert.False(t, ok)
}

func TestCacheSet_Overwrites(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	store.Set("rank_1_abc", rankedList("Old"))
	store.Set("rank_1_abc", rankedList("New"))

	got, ok := store.Get("rank_1_abc")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Sermon.Title)
}

func TestCacheDelete(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	store.Set("rank_1_abc", rankedList("Sermon"))
	store.Delete("rank_1_abc")

	_, ok := store.Get("rank_1_abc")
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	store.Delete("rank_1_abc")
}

func TestRankingKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, RankingKey(1, "faith"), RankingKey(1, "faith"))
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		assert.Equal(t, RankingKey(1, "Faith  in   God"), RankingKey(1, "faith in god"))
	})

	t.Run("differs by user", func(t *testing.T) {
		assert.NotEqual(t, RankingKey(1, "faith"), RankingKey(2, "faith"))
	})

	t.Run("differs by query", func(t *testing.T) {
		assert.NotEqual(t, RankingKey(1, "faith"), RankingKey(1, "healing"))
	})

	t.Run("filesystem safe", func(t *testing.T) {
		key := RankingKey(42, `what does "faith" mean? / how do i pray`)
		assert.NotContains(t, key, "/")
		assert.NotContains(t, key, "\"")
		assert.NotContains(t, key, "?")
	})
}
