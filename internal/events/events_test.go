package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogObjectEvent(t *testing.T) {
	receivedAt := time.Date(2015, 5, 13, 23, 40, 0, 0, time.UTC)

	event, err := NewLogObjectEvent("https://b.s3.amazonaws.com/k.log", receivedAt)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, LogObjectEventType, event.Type)
	assert.Equal(t, receivedAt, event.CreatedAt)

	var payload LogObjectPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, "https://b.s3.amazonaws.com/k.log", payload.URL)
}

func TestNewTaskRequestEvent(t *testing.T) {
	t.Run("unencodable payload", func(t *testing.T) {
		_, err := NewTaskRequestEvent("bad", make(chan int), time.Now())
		assert.Error(t, err)
	})

	t.Run("distinct ids", func(t *testing.T) {
		a, err := NewTaskRequestEvent("x", nil, time.Now())
		require.NoError(t, err)
		b, err := NewTaskRequestEvent("x", nil, time.Now())
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

// recordingHandler implements EventHandler for tests.
type recordingHandler struct {
	events []*TaskRequestEvent
	err    error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *TaskRequestEvent) error {
	h.events = append(h.events, event)
	return h.err
}
