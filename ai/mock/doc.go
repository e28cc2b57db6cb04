// Package mock provides test double implementations of the AI service
// interfaces.
//
// The mocks allow tests to run without external AI services and enable
// controlled, deterministic behavior via function-field injection.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	ranker := mock.NewMockRanker()
//	ranker.RankSermonsFunc = func(ctx context.Context, query string, summaries []ai.SermonSummary) ([]int, error) {
//	    return []int{1, 0}, nil
//	}
//
//	// Check call counts
//	count := ranker.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: returns deterministic vectors based on text hash
//   - MockRanker: returns candidates in their original order
//   - MockTeachingClassifier: classifies everything as a teaching
//   - MockMetadataExtractor: first line as title, text as description
//   - MockResponder: returns a fixed encouraging reply
package mock
