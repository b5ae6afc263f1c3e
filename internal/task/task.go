package task

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// Task is a pending unit of work: ship the access log object at URL.
// Task is a value type; retries produce new values and never mutate an
// existing one. All tasks of one retry chain share the same ChainID.
type Task struct {
	chainID   uuid.UUID
	url       string
	notBefore time.Time
	tries     int
}

// New creates the first task of a retry chain for url, due immediately at now.
func New(url string, now time.Time) Task {
	return Task{
		chainID:   uuid.New(),
		url:       url,
		notBefore: now,
		tries:     0,
	}
}

// ChainID identifies the retry chain this task belongs to.
func (t Task) ChainID() uuid.UUID {
	return t.chainID
}

// URL returns the object URL to ship.
func (t Task) URL() string {
	return t.url
}

// NotBefore returns the earliest time the task may be attempted.
func (t Task) NotBefore() time.Time {
	return t.notBefore
}

// Tries returns the number of attempts made so far.
func (t Task) Tries() int {
	return t.tries
}

// Due reports whether the task may be attempted at now.
func (t Task) Due(now time.Time) bool {
	return !now.Before(t.notBefore)
}

// WithAttempt returns the task with one more attempt counted.
func (t Task) WithAttempt() Task {
	t.tries++
	return t
}

// Reschedule returns the task due again after the backoff for its current
// try count, measured from now.
func (t Task) Reschedule(now time.Time, base time.Duration) Task {
	t.notBefore = now.Add(Backoff(t.tries, base))
	return t
}

// Backoff returns base * 2^tries. The delay is not capped; only a result that
// would overflow time.Duration is clamped to the largest representable value.
func Backoff(tries int, base time.Duration) time.Duration {
	if tries < 0 {
		tries = 0
	}
	if base <= 0 {
		return 0
	}
	if tries >= 63 || base > time.Duration(math.MaxInt64>>uint(tries)) {
		return time.Duration(math.MaxInt64)
	}
	return base << uint(tries)
}

// QueueReader provides blocking removal of tasks for the worker.
type QueueReader interface {
	// Dequeue removes and returns the head task, blocking while the queue is empty.
	Dequeue(ctx context.Context) (Task, error)
}

// QueueWriter provides insertion of tasks for producers.
type QueueWriter interface {
	// Enqueue appends a task to the tail of the queue.
	// Returns an error if the queue is closed.
	Enqueue(task Task) error
}

// QueueReadWriter is the view of the queue used by the worker, which both
// consumes tasks and puts retries back.
type QueueReadWriter interface {
	QueueReader
	QueueWriter
}
