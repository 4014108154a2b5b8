package api

import (
	"errors"
	"fmt"
)

// ErrUnsupportedMethod is returned for a Method outside get, post, put and delete.
var ErrUnsupportedMethod = errors.New("unsupported method")

// StatusError reports a response whose status failed validation.
// The full response is kept so callers can inspect the body.
type StatusError struct {
	Response *Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.Response.StatusCode)
}

// StatusCode returns the HTTP status of the rejected response.
func (e *StatusError) StatusCode() int {
	return e.Response.StatusCode
}
