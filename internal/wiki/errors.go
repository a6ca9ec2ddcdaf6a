package wiki

import (
	"errors"
	"fmt"
)

// Sentinel errors for the content path.
//
// Design decision: We use package-level sentinel errors for conditions the
// caller branches on with errors.Is, and small typed errors where the caller
// needs the status code or API message.
var (
	// ErrNoTitle is returned when the source URL carries no recognizable
	// /wiki/ path marker, or the marker is followed by nothing.
	ErrNoTitle = errors.New("no article title found in URL: missing /wiki/ path segment")

	// ErrNotFound is returned when the API response carried neither a
	// parse object nor an error payload.
	ErrNotFound = errors.New("API response contained no parseable page data")
)

// StatusError reports a non-2xx transport status from the content API.
type StatusError struct {
	// StatusCode is the HTTP status returned by the endpoint.
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status code %d", e.StatusCode)
}

// APIError reports an API-level error payload ("error" object in the JSON
// response body).
type APIError struct {
	// Code is the machine-readable error code.
	Code string

	// Info is the human-readable error message.
	Info string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	info := e.Info
	if info == "" {
		info = "unknown error"
	}
	return fmt.Sprintf("API error: %s", info)
}
