package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bft-labs/apishell/pkg/api"
	"github.com/bft-labs/apishell/pkg/token"
)

// fakeBackend serves the auth routes and records the Authorization header
// seen on /user/me.
type fakeBackend struct {
	mu          sync.Mutex
	accessToken string
	sessionAuth []string
	logoutCalls int
	logoutCode  int
	loginBody   map[string]string
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("login method = %s", r.Method)
		}
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		json.Unmarshal(data, &b.loginBody)
		tok := b.accessToken
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"access_token": tok, "token_type": "bearer"})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.logoutCalls++
		code := b.logoutCode
		b.mu.Unlock()
		if code == 0 {
			code = http.StatusNoContent
		}
		w.WriteHeader(code)
	})
	mux.HandleFunc("/user/me", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.sessionAuth = append(b.sessionAuth, r.Header.Get("Authorization"))
		b.mu.Unlock()
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, `{"id":"u-1"}`)
	})
	return mux
}

func (b *fakeBackend) snapshot() (login map[string]string, logouts int, sessionAuth []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loginBody, b.logoutCalls, append([]string(nil), b.sessionAuth...)
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func setup(t *testing.T, backend *fakeBackend) (*Provider, *api.Client, *token.Cell) {
	t.Helper()
	ts := httptest.NewServer(backend.handler(t))
	t.Cleanup(ts.Close)

	cell := token.NewCell("")
	client := api.New(api.StaticConfig(ts.URL), cell)
	return NewProvider(client, cell, DefaultConfig(), nil), client, cell
}

func TestProvider_SignInSessionSignOut(t *testing.T) {
	jwtExp := time.Now().Add(time.Hour).Truncate(time.Second)
	backend := &fakeBackend{accessToken: signedJWT(t, jwtExp)}
	p, client, cell := setup(t, backend)
	ctx := context.Background()

	if st := p.Status(); st.SignedIn {
		t.Fatal("Status() signed in before SignIn")
	}

	if _, err := p.SignIn(ctx, map[string]string{"username": "ana", "password": "pw"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if login, _, _ := backend.snapshot(); login["username"] != "ana" {
		t.Errorf("login body = %v", login)
	}

	want := "Bearer " + backend.accessToken
	if got := cell.Value(); got != want {
		t.Errorf("stored token = %q, want %q", got, want)
	}
	if !cell.ExpiresAt().Equal(jwtExp) {
		t.Errorf("ExpiresAt = %v, want jwt exp %v", cell.ExpiresAt(), jwtExp)
	}
	st := p.Status()
	if !st.SignedIn || !st.ExpiresAt.Equal(jwtExp) {
		t.Errorf("Status() = %+v", st)
	}

	resp, err := p.Session(ctx)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if string(resp.Body) != `{"id":"u-1"}` {
		t.Errorf("session body = %s", resp.Body)
	}

	if err := p.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, logouts, _ := backend.snapshot(); logouts != 1 {
		t.Errorf("logout calls = %d, want 1", logouts)
	}
	if cell.Value() != "" {
		t.Error("token still stored after SignOut")
	}

	var se *api.StatusError
	if _, err := client.Get(ctx, "/user/me"); !errors.As(err, &se) || se.StatusCode() != http.StatusUnauthorized {
		t.Errorf("Get after SignOut err = %v, want 401", err)
	}

	_, _, sessionAuth := backend.snapshot()
	if len(sessionAuth) != 2 || sessionAuth[0] != want || sessionAuth[1] != "" {
		t.Errorf("session Authorization headers = %q", sessionAuth)
	}
}

func TestProvider_MaxAgeCapsLongToken(t *testing.T) {
	backend := &fakeBackend{accessToken: signedJWT(t, time.Now().Add(30*24*time.Hour))}
	p, _, cell := setup(t, backend)

	now := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	if _, err := p.SignIn(context.Background(), nil); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if want := now.Add(24 * time.Hour); !cell.ExpiresAt().Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", cell.ExpiresAt(), want)
	}
}

func TestProvider_OpaqueToken(t *testing.T) {
	backend := &fakeBackend{accessToken: "opaque-123"}
	p, _, cell := setup(t, backend)

	cfg := DefaultConfig()
	cfg.TokenType = ""
	cfg.MaxAge = 0
	p.cfg = cfg

	if _, err := p.SignIn(context.Background(), nil); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if got := cell.Value(); got != "opaque-123" {
		t.Errorf("stored token = %q, want raw token", got)
	}
	if !cell.ExpiresAt().IsZero() {
		t.Errorf("ExpiresAt = %v, want none", cell.ExpiresAt())
	}
}

func TestProvider_SignInWithoutToken(t *testing.T) {
	backend := &fakeBackend{accessToken: ""}
	p, _, cell := setup(t, backend)

	if _, err := p.SignIn(context.Background(), nil); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("err = %v, want ErrTokenNotFound", err)
	}
	if cell.Value() != "" {
		t.Error("token stored despite failure")
	}
}

func TestProvider_SignInPointerMisses(t *testing.T) {
	backend := &fakeBackend{accessToken: "abc"}
	p, _, cell := setup(t, backend)
	p.cfg.TokenPointer = "/data/token"

	if _, err := p.SignIn(context.Background(), nil); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("err = %v, want ErrTokenNotFound", err)
	}
	if cell.Value() != "" {
		t.Error("token stored despite failure")
	}
}

func TestProvider_SignOutClearsOnFailure(t *testing.T) {
	backend := &fakeBackend{logoutCode: http.StatusInternalServerError}
	p, _, cell := setup(t, backend)
	cell.Set("Bearer stale", time.Time{})

	err := p.SignOut(context.Background())
	var se *api.StatusError
	if !errors.As(err, &se) || se.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("err = %v, want 500 status error", err)
	}
	if cell.Value() != "" {
		t.Error("token kept after failed sign-out")
	}
}

func TestProvider_SignOutWithoutRoute(t *testing.T) {
	backend := &fakeBackend{}
	p, _, cell := setup(t, backend)
	p.cfg.SignOut = Endpoint{}
	cell.Set("Bearer x", time.Time{})

	if err := p.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, logouts, _ := backend.snapshot(); logouts != 0 {
		t.Errorf("logout calls = %d, want 0", logouts)
	}
	if cell.Value() != "" {
		t.Error("token not cleared")
	}
}

func TestResolvePointer(t *testing.T) {
	var doc any
	if err := json.Unmarshal([]byte(`{
		"access_token": "t",
		"data": {"tokens": [{"value": "nested"}]},
		"a/b": {"m~n": 1}
	}`), &doc); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		ptr      string
		want     any
		wantErr  bool
		notFound bool
	}{
		{ptr: "/access_token", want: "t"},
		{ptr: "/data/tokens/0/value", want: "nested"},
		{ptr: "/a~1b/m~0n", want: float64(1)},
		{ptr: "/missing", wantErr: true, notFound: true},
		{ptr: "/data/tokens/5", wantErr: true, notFound: true},
		{ptr: "/access_token/deeper", wantErr: true, notFound: true},
		{ptr: "no-slash", wantErr: true},
	}
	for _, tt := range tests {
		got, err := resolvePointer(doc, tt.ptr)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolvePointer(%q) expected error", tt.ptr)
			}
			if got := errors.Is(err, ErrPointerNotFound); got != tt.notFound {
				t.Errorf("resolvePointer(%q) errors.Is(ErrPointerNotFound) = %v, want %v", tt.ptr, got, tt.notFound)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolvePointer(%q): %v", tt.ptr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolvePointer(%q) = %v, want %v", tt.ptr, got, tt.want)
		}
	}

	if got, err := resolvePointer(doc, ""); err != nil || got == nil {
		t.Errorf("empty pointer should return the whole document")
	}
}
