package errors

import (
	"errors"
	"fmt"
)

// This package defines a centralized set of sentinel errors for the application.
// Using sentinel errors allows services to return specific, recognizable error types
// without coupling them to implementation details like HTTP status codes. The API
// layer can then use `errors.Is()` to check for these specific errors and map
// them to the correct HTTP responses.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")

	// ErrUpstreamUnavailable signifies a transport-level failure talking to the
	// generation upstream: the request could not be sent, or the stream body
	// broke mid-read. This class of error is retryable; retrying is the
	// reconnection layer's decision, never the stream controller's.
	ErrUpstreamUnavailable = errors.New("generation upstream unavailable")

	// ErrMaxRetriesExceeded signifies that the reconnection budget for a
	// streaming session has been exhausted. It is user-visible and is never
	// cleared automatically.
	ErrMaxRetriesExceeded = errors.New("maximum reconnection attempts exceeded")
)

// ProtocolError is returned when the generation upstream rejects a request
// with a non-success HTTP status. It carries the server-provided message and
// is terminal: the stream controller surfaces it as an Errored state and
// never retries it.
type ProtocolError struct {
	StatusCode int
	Message    string
}

func (e *ProtocolError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}
