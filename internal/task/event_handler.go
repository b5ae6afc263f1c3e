package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/elbship/internal/events"
)

// ErrMissingURL is returned for a log object event without an object URL.
var ErrMissingURL = errors.New("log object event has no url")

// EnqueueEventHandler turns log object events into fresh tasks on the queue.
type EnqueueEventHandler struct {
	queue  QueueWriter
	logger *slog.Logger
}

// NewEnqueueEventHandler creates a handler that writes to queue.
func NewEnqueueEventHandler(queue QueueWriter, logger *slog.Logger) *EnqueueEventHandler {
	return &EnqueueEventHandler{
		queue:  queue,
		logger: logger.With("component", "enqueue_event_handler"),
	}
}

// HandleEvent enqueues a task with no tries, due at the event's creation
// time. Events of other types are ignored.
func (h *EnqueueEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != events.LogObjectEventType {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload events.LogObjectPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload of event %s: %w", event.ID, err)
	}
	if payload.URL == "" {
		return fmt.Errorf("%w: event %s", ErrMissingURL, event.ID)
	}

	t := New(payload.URL, event.CreatedAt)
	if err := h.queue.Enqueue(t); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", payload.URL, err)
	}

	h.logger.Info("log object queued",
		"url", t.URL(),
		"chain_id", t.ChainID(),
		"event_id", event.ID)
	return nil
}

var _ events.EventHandler = (*EnqueueEventHandler)(nil)
