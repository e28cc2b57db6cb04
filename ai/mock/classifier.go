package mock

import "context"

// MockTeachingClassifier is a test double for ai.TeachingClassifier.
// It allows custom behavior injection via function fields.
type MockTeachingClassifier struct {
	// IsTeachingFunc is called by IsTeaching if set.
	// If nil, the default classifies everything as a teaching.
	IsTeachingFunc func(ctx context.Context, text string) (bool, error)

	callCount int
}

// NewMockTeachingClassifier creates a mock classifier that accepts everything.
// Note: Returns concrete type to allow test assertions.
func NewMockTeachingClassifier() *MockTeachingClassifier {
	return &MockTeachingClassifier{}
}

// IsTeaching reports whether the text is a teaching, true by default.
func (m *MockTeachingClassifier) IsTeaching(ctx context.Context, text string) (bool, error) {
	m.callCount++

	if m.IsTeachingFunc != nil {
		return m.IsTeachingFunc(ctx, text)
	}
	return true, nil
}

// CallCount returns the number of times IsTeaching was called.
func (m *MockTeachingClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockTeachingClassifier) Reset() {
	m.callCount = 0
	m.IsTeachingFunc = nil
}
