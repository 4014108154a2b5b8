package cliconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bft-labs/apishell/pkg/auth"
	"github.com/bft-labs/apishell/pkg/token"
)

// Config holds CLI configuration for apishell.
type Config struct {
	// BaseURL is the backend root. Empty falls back to api.DefaultBaseURL.
	BaseURL string `validate:"omitempty,url"`

	// Token, when set, is sent verbatim and the token file is not used.
	Token     string
	TokenFile string

	HTTPTimeout time.Duration `validate:"gte=0"`
	LogLevel    string        `validate:"omitempty,oneof=trace debug info warn error disabled"`

	SignInPath   string        `validate:"required"`
	SignOutPath  string
	SessionPath  string        `validate:"required"`
	TokenPointer string        `validate:"omitempty,startswith=/"`
	TokenType    string
	TokenMaxAge  time.Duration `validate:"gte=0"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	a := auth.DefaultConfig()
	return Config{
		TokenFile:    token.DefaultPath(),
		HTTPTimeout:  30 * time.Second,
		LogLevel:     "info",
		SignInPath:   a.SignIn.Path,
		SignOutPath:  a.SignOut.Path,
		SessionPath:  a.GetSession.Path,
		TokenPointer: a.TokenPointer,
		TokenType:    a.TokenType,
		TokenMaxAge:  a.MaxAge,
	}
}

var validate = validator.New()

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.LogLevel = strings.ToLower(c.LogLevel)

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Token == "" && c.TokenFile == "" {
		c.TokenFile = token.DefaultPath()
		if c.TokenFile == "" {
			return fmt.Errorf("token-file is required (home directory unknown)")
		}
	}
	return nil
}

// PublicBaseURL makes Config an api.ConfigProvider.
func (c *Config) PublicBaseURL() string {
	return c.BaseURL
}

// AuthConfig returns the auth provider settings carried by c.
func (c *Config) AuthConfig() auth.Config {
	a := auth.DefaultConfig()
	a.SignIn.Path = c.SignInPath
	a.SignOut.Path = c.SignOutPath
	a.GetSession.Path = c.SessionPath
	a.TokenPointer = c.TokenPointer
	a.TokenType = c.TokenType
	a.MaxAge = c.TokenMaxAge
	return a
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}
