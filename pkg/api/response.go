package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is what the backend answered, passed through without reshaping.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte

	// Request is the request that produced this response.
	Request *http.Request
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
