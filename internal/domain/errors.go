package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrMalformedRecord is returned when an access log line cannot be split
	// into the fixed field layout, or a compound field has an unexpected shape.
	ErrMalformedRecord = errors.New("malformed access log record")

	// ErrInvalidTimestamp is returned when a record timestamp is not in the
	// ISO-8601 form written by the load balancer.
	ErrInvalidTimestamp = errors.New("invalid record timestamp")
)
