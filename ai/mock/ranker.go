package mock

import (
	"context"

	"github.com/lampstand/sermonrec/ai"
)

// MockRanker is a test double for ai.Ranker.
// It allows custom behavior injection via function fields.
type MockRanker struct {
	// RankSermonsFunc is called by RankSermons if set.
	// If nil, the default returns the candidates in their original order.
	RankSermonsFunc func(ctx context.Context, query string, summaries []ai.SermonSummary) ([]int, error)

	callCount int
}

// NewMockRanker creates a mock ranker with default pass-through behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockRanker() *MockRanker {
	return &MockRanker{}
}

// RankSermons returns candidate indexes, by default in original order.
func (m *MockRanker) RankSermons(ctx context.Context, query string, summaries []ai.SermonSummary) ([]int, error) {
	m.callCount++

	if m.RankSermonsFunc != nil {
		return m.RankSermonsFunc(ctx, query, summaries)
	}

	indexes := make([]int, len(summaries))
	for i := range summaries {
		indexes[i] = i
	}
	return indexes, nil
}

// CallCount returns the number of times RankSermons was called.
func (m *MockRanker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockRanker) Reset() {
	m.callCount = 0
	m.RankSermonsFunc = nil
}
