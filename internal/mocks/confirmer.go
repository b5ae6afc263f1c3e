package mocks

import (
	"context"
	"sync"
)

// MockConfirmer implements service.SubscriptionConfirmer for testing.
type MockConfirmer struct {
	Err error

	mu   sync.Mutex
	urls []string
}

// Confirm implements service.SubscriptionConfirmer.
func (m *MockConfirmer) Confirm(ctx context.Context, subscribeURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, subscribeURL)
	return m.Err
}

// URLs returns the subscribe URLs confirmed so far.
func (m *MockConfirmer) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}
