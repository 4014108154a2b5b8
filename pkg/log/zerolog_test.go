package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf))

	z.Error("timeout",
		String("method", "get"),
		Int("status", 0),
		Bool("retried", false),
		Duration("elapsed", 2*time.Second),
		Err(errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{
		`"level":"error"`,
		`"message":"timeout"`,
		`"method":"get"`,
		`"status":0`,
		`"retried":false`,
		`"error":"boom"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	z.Debug("hidden")
	z.Info("hidden")
	z.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level messages leaked: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Info("hello")
	r.Error("request failed: timeout", String("method", "get"))
	r.Error("other")

	if got := r.Count(LevelError); got != 2 {
		t.Errorf("Count(error) = %d, want 2", got)
	}
	if got := r.Contains(LevelError, "timeout"); got != 1 {
		t.Errorf("Contains(timeout) = %d, want 1", got)
	}

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	v, ok := entries[1].Field("method")
	if !ok || v != "get" {
		t.Errorf("Field(method) = %v, %v", v, ok)
	}

	r.Reset()
	if len(r.Entries()) != 0 {
		t.Error("Reset did not clear entries")
	}
}

func TestLevelString(t *testing.T) {
	tests := map[Level]string{
		LevelDebug: "debug",
		LevelInfo:  "info",
		LevelWarn:  "warn",
		LevelError: "error",
		Level(42):  "unknown",
	}
	for lvl, want := range tests {
		if got := lvl.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", lvl, got, want)
		}
	}
}
