package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Ranker orders candidate sermons by relevance to a user query.
// Implementations must be thread-safe for concurrent use.
type Ranker interface {
	// RankSermons returns the indexes of the given summaries ordered from
	// most to least relevant. Indexes refer to positions in the summaries
	// slice. Irrelevant candidates may be omitted from the result.
	// Returns ErrMalformedResponse (wrapped) when the model output cannot
	// be parsed as a ranking; callers are expected to fall back to their
	// own ordering in that case.
	RankSermons(ctx context.Context, query string, summaries []SermonSummary) ([]int, error)
}

// TeachingClassifier decides whether a piece of channel text is an actual
// teaching rather than an announcement or unrelated post.
type TeachingClassifier interface {
	// IsTeaching reports whether the text reads as a sermon or teaching.
	IsTeaching(ctx context.Context, text string) (bool, error)
}

// MetadataExtractor derives structured sermon metadata from raw message text.
type MetadataExtractor interface {
	// ExtractMetadata returns a title, description, and theme for the text.
	// Returns ErrMalformedResponse (wrapped) when the model output cannot
	// be parsed; callers may apply their own fallback extraction.
	ExtractMetadata(ctx context.Context, text string) (*SermonMetadata, error)
}

// Responder writes the short pastoral reply that accompanies a set of
// recommendations.
type Responder interface {
	// Reply generates an encouraging response to the user's message.
	// The reply never lists the recommendations themselves; those are
	// delivered separately.
	Reply(ctx context.Context, query string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages the services,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Ranker returns the relevance ranking service.
	Ranker() Ranker

	// TeachingClassifier returns the teaching classification service.
	TeachingClassifier() TeachingClassifier

	// MetadataExtractor returns the metadata extraction service.
	MetadataExtractor() MetadataExtractor

	// Responder returns the reply generation service.
	Responder() Responder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
