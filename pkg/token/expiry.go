package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the exp claim of a JWT without verifying its signature.
// A leading auth scheme such as "Bearer " is ignored. The boolean is false
// when raw is not a JWT or carries no exp claim.
func Expiry(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = strings.TrimSpace(raw[i+1:])
	}
	if raw == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
