package service

import "errors"

// Sentinel errors returned by NotificationService. The API layer maps them
// to HTTP status codes.
var (
	// ErrMalformedDelivery indicates a body that is not a decodable SNS
	// delivery, or a notification whose message is not an S3 event.
	ErrMalformedDelivery = errors.New("malformed sns delivery")

	// ErrConfirmation indicates the subscription could not be confirmed.
	ErrConfirmation = errors.New("subscription confirmation failed")

	// ErrNotAccepted indicates announced objects could not be queued, e.g.
	// during shutdown. The delivery should be retried by the sender.
	ErrNotAccepted = errors.New("notification not accepted")
)
