package token

import (
	"sync"
	"time"
)

// Cell is an in-memory token holder safe for concurrent use.
// Once its expiry has passed, Value reports an empty token.
type Cell struct {
	mu        sync.RWMutex
	value     string
	expiresAt time.Time
	now       func() time.Time
}

// NewCell creates a Cell holding value with no expiry.
func NewCell(value string) *Cell {
	return &Cell{value: value, now: time.Now}
}

// Value returns the current token, or "" if unset or expired.
func (c *Cell) Value() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.expiredLocked() {
		return ""
	}
	return c.value
}

// ExpiresAt returns the expiry of the current token (zero if none).
func (c *Cell) ExpiresAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiresAt
}

// Set replaces the token. It never fails; the error satisfies Store.
func (c *Cell) Set(value string, expiresAt time.Time) error {
	c.mu.Lock()
	c.value = value
	c.expiresAt = expiresAt
	c.mu.Unlock()
	return nil
}

// Clear removes the token.
func (c *Cell) Clear() error {
	return c.Set("", time.Time{})
}

func (c *Cell) expiredLocked() bool {
	if c.expiresAt.IsZero() {
		return false
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return !now().Before(c.expiresAt)
}
