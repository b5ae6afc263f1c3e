// Package events decouples the notification receiver from the task queue.
//
// The receiver emits one LogObject event per storage object announced in a
// notification; handlers registered on the emitter turn those events into
// queued work. Neither side imports the other.
package events
