package mocks

import (
	"context"
	"sync"
)

// MockFetcher implements service.LogFetcher for testing.
type MockFetcher struct {
	// FetchFn overrides the default response when set.
	FetchFn func(ctx context.Context, url string) ([]byte, error)

	// Default response values
	Body []byte
	Err  error

	mu   sync.Mutex
	urls []string
}

// Fetch implements service.LogFetcher.
func (m *MockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.mu.Unlock()

	if m.FetchFn != nil {
		return m.FetchFn(ctx, url)
	}
	return m.Body, m.Err
}

// URLs returns the URLs passed to Fetch, in call order.
func (m *MockFetcher) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}
