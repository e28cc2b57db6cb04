package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lampstand/sermonrec/ai"
	"github.com/lampstand/sermonrec/ai/mock"
	"github.com/lampstand/sermonrec/session"
	badgerstore "github.com/lampstand/sermonrec/storage/badger"
)

// newTestEngine wires an engine over an in-memory index seeded with nine
// sermons that all match the mock query embedding.
func newTestEngine(t *testing.T) (*Engine, *mock.MockRanker) {
	t.Helper()

	backend := newTestIndex(t)
	index := badgerstore.NewVectorIndex(backend, nil)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		link := "https://t.me/c/" + string(rune('a'+i))
		title := "Sermon " + string(rune('A'+i))
		vector := []float32{1, float32(i) * 0.01}
		require.NoError(t, index.Add(ctx, indexEntry(link, title, vector)))
	}

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	retriever, err := NewRetriever(embedder, index, 20, nil)
	require.NoError(t, err)

	model := mock.NewMockRanker()
	ranker, err := NewRanker(model, newTestCache(t), 0.7, nil)
	require.NoError(t, err)

	engine, err := NewEngine(retriever, ranker, session.NewManager(0, nil))
	require.NoError(t, err)

	return engine, model
}

func TestRecommend_EmptyTopic(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Recommend(context.Background(), 1, "   ", 5)
	assert.ErrorIs(t, err, ErrEmptyTopic)
}

func TestRecommend_ServesFirstPage(t *testing.T) {
	engine, _ := newTestEngine(t)

	page, err := engine.Recommend(context.Background(), 1, "faith", 5)
	require.NoError(t, err)
	assert.Len(t, page, 5)
}

func TestRecommend_ThenMore_PagesThroughRanked(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Recommend(ctx, 1, "faith", 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := engine.More(1)
	require.NoError(t, err)
	assert.Len(t, second, 5)

	third, err := engine.More(1)
	require.NoError(t, err)
	assert.Len(t, third, 2)

	_, err = engine.More(1)
	assert.ErrorIs(t, err, session.ErrExhausted)
}

func TestRecommend_NoDuplicatesAcrossPages(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	page, err := engine.Recommend(ctx, 1, "faith", 3)
	require.NoError(t, err)

	for {
		for _, hit := range page {
			link := hit.Sermon.MessageLink
			assert.False(t, seen[link], "sermon %s served twice", link)
			seen[link] = true
		}
		page, err = engine.More(1)
		if err != nil {
			assert.ErrorIs(t, err, session.ErrExhausted)
			break
		}
	}

	assert.Len(t, seen, 9)
}

func TestMore_WithoutRecommendFirst(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.More(1)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestRecommend_EmptyRankingLeavesSessionIntact(t *testing.T) {
	engine, model := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.Recommend(ctx, 1, "faith", 2)
	require.NoError(t, err)

	// Next query ranks nothing relevant.
	model.RankSermonsFunc = func(ctx context.Context, query string, summaries []ai.SermonSummary) ([]int, error) {
		return []int{}, nil
	}
	page, err := engine.Recommend(ctx, 1, "quantum chromodynamics", 5)
	assert.ErrorIs(t, err, ErrNothingRelevant)
	assert.Empty(t, page)

	// The previous session still pages.
	more, err := engine.More(1)
	require.NoError(t, err)
	assert.NotEmpty(t, more)
}

func TestRecommend_EmptyRetrievalReturnsNoResults(t *testing.T) {
	engine, _ := newTestEngine(t)

	// An embedder that fails makes retrieval come back empty.
	failing := mock.NewMockEmbedder()
	failing.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, assert.AnError
	}
	retriever, err := NewRetriever(failing, badgerstore.NewVectorIndex(newTestIndex(t), nil), 20, nil)
	require.NoError(t, err)
	engine.retriever = retriever

	_, err = engine.Recommend(context.Background(), 1, "faith", 5)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestRemaining_TracksUnservedItems(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	assert.Equal(t, 0, engine.Remaining(1))

	_, err := engine.Recommend(ctx, 1, "faith", 5)
	require.NoError(t, err)
	assert.Equal(t, 4, engine.Remaining(1))

	_, err = engine.More(1)
	require.NoError(t, err)
	assert.Equal(t, 0, engine.Remaining(1))
}

func TestRecommend_NewQueryReplacesSession(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.Recommend(ctx, 1, "faith", 5)
	require.NoError(t, err)

	_, err = engine.Recommend(ctx, 1, "healing", 5)
	require.NoError(t, err)

	// 9 ranked, 5 served by the new query: exactly 4 remain.
	more, err := engine.More(1)
	require.NoError(t, err)
	assert.Len(t, more, 4)
}

func TestRecommend_MonitorSeesAllStages(t *testing.T) {
	backend := newTestIndex(t)
	index := badgerstore.NewVectorIndex(backend, nil)
	require.NoError(t, index.Add(context.Background(),
		indexEntry("https://t.me/c/1", "Sermon", []float32{1, 0})))

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	retriever, err := NewRetriever(embedder, index, 20, nil)
	require.NoError(t, err)
	ranker, err := NewRanker(mock.NewMockRanker(), newTestCache(t), 0.7, nil)
	require.NoError(t, err)

	recorder := &recordingMonitor{}
	engine, err := NewEngine(retriever, ranker, session.NewManager(0, nil), WithMonitor(recorder))
	require.NoError(t, err)

	_, err = engine.Recommend(context.Background(), 1, "faith", 5)
	require.NoError(t, err)

	assert.Equal(t, 1, recorder.starts)
	assert.Equal(t, 1, recorder.retrievals)
	assert.Equal(t, 1, recorder.rankings)
	assert.Equal(t, 1, recorder.finishes)
}

func TestNewEngine_Validation(t *testing.T) {
	backend := newTestIndex(t)
	index := badgerstore.NewVectorIndex(backend, nil)

	embedder := mock.NewMockEmbedder()
	retriever, err := NewRetriever(embedder, index, 20, nil)
	require.NoError(t, err)
	ranker, err := NewRanker(mock.NewMockRanker(), newTestCache(t), 0.7, nil)
	require.NoError(t, err)
	sessions := session.NewManager(0, nil)

	_, err = NewEngine(nil, ranker, sessions)
	assert.ErrorIs(t, err, ErrRetrieverRequired)

	_, err = NewEngine(retriever, nil, sessions)
	assert.ErrorIs(t, err, ErrRankerRequired)

	_, err = NewEngine(retriever, ranker, nil)
	assert.ErrorIs(t, err, ErrSessionsRequired)
}
