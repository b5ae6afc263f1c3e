// Package task manages the retry-driven processing of access log objects.
// It provides the immutable Task value, an unbounded FIFO queue shared by the
// notification receiver and the worker, and the single Runner goroutine that
// attempts each task and reschedules failures with exponential backoff until
// the retry budget is exhausted.
//
// Throughput is strictly serial: one object is fetched, transformed and
// forwarded before the next task is dequeued.
package task
