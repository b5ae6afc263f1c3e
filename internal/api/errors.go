package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/elbship/internal/service"
)

// MapErrorToStatusCode maps notification service errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrMalformedDelivery):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConfirmation):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrNotAccepted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message that carries no
// internal detail such as subscribe URLs or queue state.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMalformedDelivery):
		return "Malformed SNS delivery"
	case errors.Is(err, service.ErrConfirmation):
		return "Subscription could not be confirmed"
	case errors.Is(err, service.ErrNotAccepted):
		return "Notification not accepted, retry later"
	default:
		return "An unexpected error occurred"
	}
}
