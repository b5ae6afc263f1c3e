// Package service holds the two use cases of the shipper.
//
// LogShipper runs the per-object pipeline for the task runner: fetch the
// object, parse and render its records, forward them as one batch. Every
// failure comes back as a retryable task.Result rather than a panic or a
// bare error.
//
// NotificationService interprets an SNS delivery for the HTTP layer:
// confirming subscriptions and emitting one event per announced object.
package service
