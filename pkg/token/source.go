package token

import "time"

// Source provides the current Authorization header value.
// An empty string means no token is available.
type Source interface {
	Value() string
}

// Store is a Source that can be written by an auth provider.
type Store interface {
	Source

	// Set replaces the token. A zero expiresAt means it never expires.
	Set(value string, expiresAt time.Time) error

	// Clear removes the token.
	Clear() error
}

// Static is a Source that always returns the same value.
type Static string

// Value returns the static token.
func (s Static) Value() string { return string(s) }

// Func adapts a getter function to Source.
type Func func() string

// Value calls f.
func (f Func) Value() string {
	if f == nil {
		return ""
	}
	return f()
}
