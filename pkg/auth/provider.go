package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bft-labs/apishell/pkg/api"
	"github.com/bft-labs/apishell/pkg/log"
	"github.com/bft-labs/apishell/pkg/token"
)

// ErrTokenNotFound is returned when the sign-in response carries no token.
var ErrTokenNotFound = errors.New("no token in sign-in response")

// Requester issues backend calls. *api.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, method api.Method, url string, data any, opts ...api.Options) (*api.Response, error)
}

// Status describes the stored token.
type Status struct {
	SignedIn  bool
	ExpiresAt time.Time
}

// Provider signs in and out against the backend and owns the token store.
type Provider struct {
	cfg    Config
	client Requester
	store  token.Store
	logger log.Logger
	now    func() time.Time
}

// NewProvider creates a Provider. A nil logger discards output.
func NewProvider(client Requester, store token.Store, cfg Config, logger log.Logger) *Provider {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Provider{
		cfg:    cfg,
		client: client,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SignIn posts credentials and stores the returned token.
func (p *Provider) SignIn(ctx context.Context, credentials any) (*api.Response, error) {
	resp, err := p.client.Do(ctx, p.cfg.SignIn.Method, p.cfg.SignIn.Path, credentials)
	if err != nil {
		return nil, err
	}

	raw, err := p.extractToken(resp)
	if err != nil {
		return nil, err
	}

	value := raw
	if p.cfg.TokenType != "" {
		value = p.cfg.TokenType + " " + raw
	}

	expiresAt := p.expiry(raw)
	if err := p.store.Set(value, expiresAt); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	if expiresAt.IsZero() {
		p.logger.Info("signed in")
	} else {
		p.logger.Info("signed in", log.Time("expires_at", expiresAt))
	}
	return resp, nil
}

// SignOut calls the sign-out route (if any) and always clears the stored
// token. The call's error, if any, is returned.
func (p *Provider) SignOut(ctx context.Context) error {
	var callErr error
	if p.cfg.SignOut.Path != "" {
		_, callErr = p.client.Do(ctx, p.cfg.SignOut.Method, p.cfg.SignOut.Path, nil)
	}

	if err := p.store.Clear(); err != nil {
		return errors.Join(callErr, fmt.Errorf("clear token: %w", err))
	}
	p.logger.Info("signed out")
	return callErr
}

// Session fetches the current session from the backend.
func (p *Provider) Session(ctx context.Context) (*api.Response, error) {
	return p.client.Do(ctx, p.cfg.GetSession.Method, p.cfg.GetSession.Path, nil)
}

// Status reports whether a usable token is stored.
func (p *Provider) Status() Status {
	st := Status{SignedIn: p.store.Value() != ""}
	if e, ok := p.store.(interface{ ExpiresAt() time.Time }); ok && st.SignedIn {
		st.ExpiresAt = e.ExpiresAt()
	}
	return st
}

func (p *Provider) extractToken(resp *api.Response) (string, error) {
	var doc any
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return "", fmt.Errorf("decode sign-in response: %w", err)
	}
	v, err := resolvePointer(doc, p.cfg.TokenPointer)
	if err != nil {
		if errors.Is(err, ErrPointerNotFound) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", ErrTokenNotFound
	}
	return s, nil
}

// expiry picks the earlier of MaxAge and the JWT exp claim.
func (p *Provider) expiry(raw string) time.Time {
	var expiresAt time.Time
	if p.cfg.MaxAge > 0 {
		expiresAt = p.now().Add(p.cfg.MaxAge)
	}
	if exp, ok := token.Expiry(raw); ok && (expiresAt.IsZero() || exp.Before(expiresAt)) {
		expiresAt = exp
	}
	return expiresAt
}
