package mock

import "context"

// MockResponder is a test double for ai.Responder.
// It allows custom behavior injection via function fields.
type MockResponder struct {
	// ReplyFunc is called by Reply if set.
	// If nil, a fixed encouraging reply is returned.
	ReplyFunc func(ctx context.Context, query string) (string, error)

	callCount int
}

// NewMockResponder creates a mock responder with a canned reply.
// Note: Returns concrete type to allow test assertions.
func NewMockResponder() *MockResponder {
	return &MockResponder{}
}

// Reply returns a canned pastoral reply.
func (m *MockResponder) Reply(ctx context.Context, query string) (string, error) {
	m.callCount++

	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, query)
	}
	return "Thank you for reaching out! May these teachings encourage you today.", nil
}

// CallCount returns the number of times Reply was called.
func (m *MockResponder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockResponder) Reset() {
	m.callCount = 0
	m.ReplyFunc = nil
}
