package mocks

import (
	"context"
	"sync"
)

// ForwardCall records one Forward invocation.
type ForwardCall struct {
	Lines       []string
	ContentType string
}

// MockForwarder implements service.BatchForwarder for testing.
type MockForwarder struct {
	// ForwardFn overrides the default response when set.
	ForwardFn func(ctx context.Context, lines []string, contentType string) error

	// Err is returned when ForwardFn is nil.
	Err error

	mu    sync.Mutex
	calls []ForwardCall
}

// Forward implements service.BatchForwarder.
func (m *MockForwarder) Forward(ctx context.Context, lines []string, contentType string) error {
	m.mu.Lock()
	m.calls = append(m.calls, ForwardCall{
		Lines:       append([]string(nil), lines...),
		ContentType: contentType,
	})
	m.mu.Unlock()

	if m.ForwardFn != nil {
		return m.ForwardFn(ctx, lines, contentType)
	}
	return m.Err
}

// Calls returns the recorded Forward invocations.
func (m *MockForwarder) Calls() []ForwardCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ForwardCall(nil), m.calls...)
}
