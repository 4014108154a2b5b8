package auth

import (
	"time"

	"github.com/bft-labs/apishell/pkg/api"
)

// Endpoint is a backend route used by the provider.
type Endpoint struct {
	Path   string
	Method api.Method
}

// Config describes the backend's auth routes and token format.
type Config struct {
	SignIn     Endpoint
	SignOut    Endpoint
	GetSession Endpoint

	// TokenPointer locates the token in the sign-in response body.
	TokenPointer string

	// TokenType prefixes the stored token ("Bearer" gives "Bearer <token>").
	// Empty stores the raw token.
	TokenType string

	// MaxAge caps the token lifetime. A JWT exp claim that comes earlier wins.
	MaxAge time.Duration
}

// DefaultConfig returns the routes and token format of the backend.
func DefaultConfig() Config {
	return Config{
		SignIn:       Endpoint{Path: "/auth/login", Method: api.MethodPost},
		SignOut:      Endpoint{Path: "/auth/logout", Method: api.MethodPost},
		GetSession:   Endpoint{Path: "/user/me", Method: api.MethodGet},
		TokenPointer: "/access_token",
		TokenType:    "Bearer",
		MaxAge:       24 * time.Hour,
	}
}
