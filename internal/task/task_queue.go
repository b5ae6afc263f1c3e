package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrQueueClosed is returned by Enqueue after Close, and by Dequeue once a
// closed queue has been drained.
var ErrQueueClosed = errors.New("task queue is closed")

// Queue is an unbounded FIFO of tasks. Enqueue is safe for any number of
// concurrent producers and never blocks; Dequeue blocks until a task is
// available. Queue does not hold back tasks that are not yet due.
type Queue struct {
	mu     sync.Mutex
	tasks  []Task
	notify chan struct{}
	closed bool
	logger *slog.Logger
}

// NewQueue creates an empty queue.
func NewQueue(logger *slog.Logger) *Queue {
	return &Queue{
		notify: make(chan struct{}, 1),
		logger: logger.With("component", "task_queue"),
	}
}

// Enqueue appends a task to the tail of the queue.
func (q *Queue) Enqueue(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.tasks = append(q.tasks, task)

	// Wake a waiting consumer; a pending signal is enough.
	select {
	case q.notify <- struct{}{}:
	default:
	}

	q.logger.Debug("task enqueued",
		"url", task.URL(),
		"tries", task.Tries(),
		"queue_len", len(q.tasks))
	return nil
}

// Dequeue removes and returns the head task, blocking while the queue is
// empty. It returns the context error if ctx ends first, or ErrQueueClosed
// when the queue is closed and empty.
func (q *Queue) Dequeue(ctx context.Context) (Task, error) {
	for {
		q.mu.Lock()
		if len(q.tasks) > 0 {
			task := q.tasks[0]
			q.tasks[0] = Task{}
			q.tasks = q.tasks[1:]
			q.mu.Unlock()
			return task, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return Task{}, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return Task{}, ctx.Err()
		case <-q.notify:
		}
	}
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Close stops further insertion. Tasks already queued can still be dequeued.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.notify)
	q.logger.Info("task queue closed", "pending", len(q.tasks))
}
