package s3

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed wraps every failure to retrieve an object.
	ErrFetchFailed = errors.New("failed to fetch log object")

	// ErrInvalidConfig is returned by NewFetcher for unusable settings.
	ErrInvalidConfig = errors.New("invalid storage configuration")
)

// maxSnippet bounds the response body kept in a StatusError.
const maxSnippet = 512

// StatusError reports a non-success response from storage.
type StatusError struct {
	StatusCode int
	// Body is the start of the response body, usually an S3 XML error.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
