package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogObjectEventType is the type of events announcing a new access log object.
const LogObjectEventType = "log_object"

// TaskRequestEvent is a request to create background work.
type TaskRequestEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type selects the handler that acts on the event
	Type string `json:"type"`

	// Payload is the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is when the triggering notification was received
	CreatedAt time.Time `json:"created_at"`
}

// LogObjectPayload is the payload of a LogObjectEventType event.
type LogObjectPayload struct {
	URL string `json:"url"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent creates an event of eventType with the given payload,
// stamped with createdAt.
func NewTaskRequestEvent(eventType string, payload interface{}, createdAt time.Time) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: createdAt,
	}, nil
}

// NewLogObjectEvent announces the object at url, received at receivedAt.
func NewLogObjectEvent(url string, receivedAt time.Time) (*TaskRequestEvent, error) {
	return NewTaskRequestEvent(LogObjectEventType, LogObjectPayload{URL: url}, receivedAt)
}

// EventHandler is implemented by components that act on events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter is implemented by components that publish events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
