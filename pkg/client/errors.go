package client

import (
	"errors"
	"fmt"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
	// APIError is the message the API put in its error payload, if any.
	APIError string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsHTTP reports whether err carries an HTTP response from the API,
// as opposed to a transport or decoding failure.
func IsHTTP(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// APIMessage returns the API-supplied error message carried by err, or "".
func APIMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.APIError
	}
	return ""
}
