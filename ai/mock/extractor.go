package mock

import (
	"context"
	"strings"

	"github.com/lampstand/sermonrec/ai"
)

// MockMetadataExtractor is a test double for ai.MetadataExtractor.
// It allows custom behavior injection via function fields.
type MockMetadataExtractor struct {
	// ExtractMetadataFunc is called by ExtractMetadata if set.
	// If nil, uses simple line-based extraction.
	ExtractMetadataFunc func(ctx context.Context, text string) (*ai.SermonMetadata, error)

	callCount int
}

// NewMockMetadataExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockMetadataExtractor() *MockMetadataExtractor {
	return &MockMetadataExtractor{}
}

// ExtractMetadata derives simple metadata from the text.
// Default behavior: first line becomes the title, the full text the
// description, and the theme is fixed.
func (m *MockMetadataExtractor) ExtractMetadata(ctx context.Context, text string) (*ai.SermonMetadata, error) {
	m.callCount++

	if m.ExtractMetadataFunc != nil {
		return m.ExtractMetadataFunc(ctx, text)
	}

	title := "Untitled Teaching"
	if lines := strings.Split(strings.TrimSpace(text), "\n"); len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		title = strings.TrimSpace(lines[0])
		if len(title) > 200 {
			title = title[:200]
		}
	}

	description := strings.TrimSpace(text)
	if len(description) > 500 {
		description = description[:500]
	}

	return &ai.SermonMetadata{
		Title:       title,
		Description: description,
		Theme:       "General",
	}, nil
}

// CallCount returns the number of times ExtractMetadata was called.
func (m *MockMetadataExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockMetadataExtractor) Reset() {
	m.callCount = 0
	m.ExtractMetadataFunc = nil
}
