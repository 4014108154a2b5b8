package token

import (
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestStaticAndFunc(t *testing.T) {
	if got := Static("Bearer abc").Value(); got != "Bearer abc" {
		t.Errorf("Static.Value() = %q", got)
	}

	calls := 0
	f := Func(func() string {
		calls++
		return "Bearer x"
	})
	f.Value()
	f.Value()
	if calls != 2 {
		t.Errorf("Func called %d times, want 2", calls)
	}

	var nilFunc Func
	if got := nilFunc.Value(); got != "" {
		t.Errorf("nil Func.Value() = %q, want empty", got)
	}
}

func TestCell_SetClear(t *testing.T) {
	c := NewCell("first")
	if got := c.Value(); got != "first" {
		t.Fatalf("Value() = %q, want first", got)
	}

	if err := c.Set("second", time.Time{}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := c.Value(); got != "second" {
		t.Errorf("Value() = %q, want second", got)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := c.Value(); got != "" {
		t.Errorf("Value() after Clear = %q, want empty", got)
	}
}

func TestCell_Expiry(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	c := NewCell("")
	c.now = func() time.Time { return now }

	c.Set("Bearer t", now.Add(time.Minute))
	if got := c.Value(); got != "Bearer t" {
		t.Fatalf("Value() before expiry = %q", got)
	}

	now = now.Add(time.Minute)
	if got := c.Value(); got != "" {
		t.Errorf("Value() at expiry = %q, want empty", got)
	}
	if c.ExpiresAt().IsZero() {
		t.Error("ExpiresAt() should still report the expiry")
	}
}

func TestCell_ZeroValue(t *testing.T) {
	var c Cell
	if got := c.Value(); got != "" {
		t.Errorf("zero Cell Value() = %q", got)
	}
	c.Set("x", time.Now().Add(time.Hour))
	if got := c.Value(); got != "x" {
		t.Errorf("Value() = %q, want x", got)
	}
}

func TestCell_Concurrent(t *testing.T) {
	c := NewCell("a")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set("b", time.Time{})
		}()
		go func() {
			defer wg.Done()
			_ = c.Value()
		}()
	}
	wg.Wait()
	if got := c.Value(); got != "b" {
		t.Errorf("Value() = %q, want b", got)
	}
}

func TestExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name   string
		raw    string
		want   time.Time
		wantOK bool
	}{
		{name: "bare jwt", raw: signed, want: exp, wantOK: true},
		{name: "bearer prefix", raw: "Bearer " + signed, want: exp, wantOK: true},
		{name: "no exp claim", raw: noExp},
		{name: "opaque token", raw: "Bearer abc123"},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Expiry(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Expiry() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Expiry() = %v, want %v", got, tt.want)
			}
		})
	}
}
