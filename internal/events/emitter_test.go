package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *TaskRequestEvent {
		t.Helper()
		event, err := NewLogObjectEvent("https://b.s3.amazonaws.com/k.log", time.Now())
		require.NoError(t, err)
		return event
	}

	t.Run("unhandled type", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		emitter.RegisterHandler("other", &recordingHandler{})

		err := emitter.EmitEvent(context.Background(), newEvent(t))
		assert.ErrorIs(t, err, ErrNoHandler)
	})

	t.Run("routes by type", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		first, second, other := &recordingHandler{}, &recordingHandler{}, &recordingHandler{}
		emitter.RegisterHandler(LogObjectEventType, first)
		emitter.RegisterHandler(LogObjectEventType, second)
		emitter.RegisterHandler("other", other)

		event := newEvent(t)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, []*TaskRequestEvent{event}, first.events)
		assert.Equal(t, []*TaskRequestEvent{event}, second.events)
		assert.Empty(t, other.events)
	})

	t.Run("failing handlers do not stop delivery", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		errA := errors.New("handler a")
		errB := errors.New("handler b")
		failingA := &recordingHandler{err: errA}
		ok := &recordingHandler{}
		failingB := &recordingHandler{err: errB}
		emitter.RegisterHandler(LogObjectEventType, failingA)
		emitter.RegisterHandler(LogObjectEventType, ok)
		emitter.RegisterHandler(LogObjectEventType, failingB)

		err := emitter.EmitEvent(context.Background(), newEvent(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
		assert.Len(t, ok.events, 1)
		assert.Len(t, failingB.events, 1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler := &recordingHandler{}
		emitter.RegisterHandler(LogObjectEventType, handler)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := emitter.EmitEvent(ctx, newEvent(t))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, handler.events)
	})
}
