package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/elbship/internal/events"
)

// MockEventEmitter implements events.EventEmitter and keeps every event.
type MockEventEmitter struct {
	// EmitFn overrides the default behavior when set.
	EmitFn func(ctx context.Context, event *events.TaskRequestEvent) error

	mu     sync.Mutex
	events []*events.TaskRequestEvent
}

// EmitEvent implements events.EventEmitter.
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if m.EmitFn != nil {
		if err := m.EmitFn(ctx, event); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns the successfully emitted events.
func (m *MockEventEmitter) Events() []*events.TaskRequestEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*events.TaskRequestEvent(nil), m.events...)
}
