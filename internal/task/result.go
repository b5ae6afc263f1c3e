package task

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step that produced a failure.
type Stage string

// Pipeline stages.
const (
	StageFetch   Stage = "fetch"
	StageParse   Stage = "parse"
	StageForward Stage = "forward"
	StagePanic   Stage = "panic"
)

var (
	// ErrRetriesExhausted marks a task dropped after its retry budget ran out.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrProcessorPanic marks a failure recovered from a panicking processor.
	ErrProcessorPanic = errors.New("processor panicked")
)

// Result is the outcome of one processing attempt. A zero Err means every
// record of the object was forwarded.
type Result struct {
	// Records is the number of records forwarded on success.
	Records int

	// Err is a *RetryableError on failure.
	Err error
}

// Success builds the result of a fully shipped object.
func Success(records int) Result {
	return Result{Records: records}
}

// Failure builds a retryable result for an error at stage.
func Failure(stage Stage, err error) Result {
	return Result{Err: &RetryableError{Stage: stage, Err: err}}
}

// IsSuccess reports whether the attempt shipped the object.
func (r Result) IsSuccess() bool {
	return r.Err == nil
}

// Stage returns the failing stage, or "" on success.
func (r Result) Stage() Stage {
	var re *RetryableError
	if errors.As(r.Err, &re) {
		return re.Stage
	}
	return ""
}

// RetryableError is any fetch, parse or forward failure. All of them are
// retried the same way until the budget is exhausted.
type RetryableError struct {
	Stage Stage
	Err   error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// ExhaustedError reports a task dropped because its try count passed the maximum.
type ExhaustedError struct {
	URL      string
	Tries    int
	MaxTries int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up on %s after %d tries (max %d): %v", e.URL, e.Tries, e.MaxTries, e.Last)
}

// Unwrap exposes both ErrRetriesExhausted and the last failure.
func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrRetriesExhausted, e.Last}
}
