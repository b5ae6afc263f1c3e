package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.chromium.org/luci/common/clock"

	"github.com/phrazzld/elbship/internal/redact"
)

// Processor runs the fetch, transform and forward pipeline for one object.
type Processor interface {
	Process(ctx context.Context, url string) Result
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, url string) Result

// Process calls f(ctx, url).
func (f ProcessorFunc) Process(ctx context.Context, url string) Result {
	return f(ctx, url)
}

// GiveUpHandler is called once for every task dropped after exhausting its
// retry budget.
type GiveUpHandler func(task Task, err *ExhaustedError)

// RunnerConfig holds the retry policy of the worker.
type RunnerConfig struct {
	// MaxTries is the highest try count that is still rescheduled after a
	// failure. A task failing with more tries than this is dropped.
	MaxTries int

	// BackoffBase is multiplied by 2^tries to get the retry delay.
	BackoffBase time.Duration

	// IdlePause is the fixed pause after every cycle that did not ship an object.
	IdlePause time.Duration
}

// DefaultRunnerConfig returns the standard retry policy.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		MaxTries:    15,
		BackoffBase: time.Second,
		IdlePause:   10 * time.Second,
	}
}

// Runner is the single worker that consumes the task queue. Every object is
// processed to completion before the next task is dequeued.
type Runner struct {
	queue     QueueReadWriter
	processor Processor
	config    RunnerConfig
	logger    *slog.Logger
	giveUp    GiveUpHandler
}

// NewRunner creates a Runner. Nothing runs until Start is called.
func NewRunner(queue QueueReadWriter, processor Processor, config RunnerConfig, logger *slog.Logger) *Runner {
	return &Runner{
		queue:     queue,
		processor: processor,
		config:    config,
		logger:    logger.With("component", "task_runner"),
	}
}

// SetGiveUpHandler registers a callback for dropped tasks. It must be called
// before Start.
func (r *Runner) SetGiveUpHandler(handler GiveUpHandler) {
	r.giveUp = handler
}

// Handle controls a started Runner.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop asks the worker to exit and waits until it has. An attempt already in
// progress sees its context cancelled.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed when the worker has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Start spawns the worker goroutine. It runs until ctx ends, Stop is called,
// or the queue is closed and drained.
func (r *Runner) Start(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		r.run(ctx)
	}()

	r.logger.Info("task runner started",
		"max_tries", r.config.MaxTries,
		"backoff_base", r.config.BackoffBase,
		"idle_pause", r.config.IdlePause)
	return h
}

func (r *Runner) run(ctx context.Context) {
	for {
		t, err := r.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) {
				r.logger.Info("task queue closed, runner exiting")
			} else {
				r.logger.Info("task runner stopping", "reason", err)
			}
			return
		}
		// Dequeue hands out a ready task even after cancellation.
		if ctx.Err() != nil {
			r.putBack(t)
			r.logger.Info("task runner stopping", "reason", ctx.Err())
			return
		}

		if r.step(ctx, t) {
			continue
		}

		if res := clock.Sleep(ctx, r.config.IdlePause); res.Incomplete() {
			r.logger.Info("task runner stopping", "reason", ctx.Err())
			return
		}
	}
}

// step handles one dequeued task and reports whether its object was shipped.
func (r *Runner) step(ctx context.Context, t Task) bool {
	now := clock.Now(ctx)
	if !t.Due(now) {
		r.requeue(t)
		return false
	}

	t = t.WithAttempt()
	started := clock.Now(ctx)
	result := r.attempt(ctx, t.URL())
	elapsed := clock.Now(ctx).Sub(started)

	if result.IsSuccess() {
		r.logger.Info("log object shipped",
			"url", t.URL(),
			"chain_id", t.ChainID(),
			"tries", t.Tries(),
			"records", result.Records,
			"duration", elapsed)
		return true
	}

	next := t.Reschedule(clock.Now(ctx), r.config.BackoffBase)
	if t.Tries() > r.config.MaxTries {
		exhausted := &ExhaustedError{
			URL:      t.URL(),
			Tries:    t.Tries(),
			MaxTries: r.config.MaxTries,
			Last:     result.Err,
		}
		r.logger.Error("giving up on log object",
			"url", t.URL(),
			"chain_id", t.ChainID(),
			"tries", t.Tries(),
			"max_tries", r.config.MaxTries,
			"stage", result.Stage(),
			"error", redact.Error(result.Err))
		if r.giveUp != nil {
			r.giveUp(t, exhausted)
		}
		return false
	}

	r.logger.Warn("log object failed, rescheduling",
		"url", t.URL(),
		"chain_id", t.ChainID(),
		"tries", t.Tries(),
		"stage", result.Stage(),
		"error", redact.Error(result.Err),
		"next_attempt", next.NotBefore(),
		"duration", elapsed)
	r.requeue(next)
	return false
}

// attempt runs the processor, turning a panic into a retryable failure.
func (r *Runner) attempt(ctx context.Context, url string) (result Result) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("processor panicked", "url", url, "panic", p)
			result = Failure(StagePanic, fmt.Errorf("%w: %v", ErrProcessorPanic, p))
		}
	}()

	return r.processor.Process(ctx, url)
}

func (r *Runner) requeue(t Task) {
	if err := r.queue.Enqueue(t); err != nil {
		r.logger.Error("failed to requeue task, task lost",
			"url", t.URL(),
			"chain_id", t.ChainID(),
			"tries", t.Tries(),
			"error", err)
	}
}

// putBack returns an unattempted task to the queue on shutdown so it is
// counted as pending. A closed queue loses it.
func (r *Runner) putBack(t Task) {
	if err := r.queue.Enqueue(t); err != nil {
		r.logger.Debug("task not returned to closed queue",
			"url", t.URL(),
			"chain_id", t.ChainID(),
			"tries", t.Tries())
	}
}
