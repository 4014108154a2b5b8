package auth

import (
	"errors"
	"fmt"

	"github.com/go-openapi/jsonpointer"
)

// ErrPointerNotFound is returned when a JSON pointer does not resolve.
var ErrPointerNotFound = errors.New("json pointer not found")

// resolvePointer looks up an RFC 6901 pointer in doc (as produced by
// encoding/json into an any).
func resolvePointer(doc any, ptr string) (any, error) {
	p, err := jsonpointer.New(ptr)
	if err != nil {
		return nil, fmt.Errorf("invalid json pointer %q: %w", ptr, err)
	}
	v, _, err := p.Get(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPointerNotFound, ptr, err)
	}
	return v, nil
}
