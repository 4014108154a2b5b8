package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	BaseURL      string `toml:"base_url"`
	Token        string `toml:"token"`
	TokenFile    string `toml:"token_file"`
	HTTPTimeout  string `toml:"http_timeout"`
	LogLevel     string `toml:"log_level"`
	SignInPath   string `toml:"sign_in_path"`
	SignOutPath  string `toml:"sign_out_path"`
	SessionPath  string `toml:"session_path"`
	TokenPointer string `toml:"token_pointer"`
	TokenType    string `toml:"token_type"`
	TokenMaxAge  string `toml:"token_max_age"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.apishell/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".apishell", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", fc.BaseURL, &cfg.BaseURL)
	s.setString("token", fc.Token, &cfg.Token)
	s.setString("token-file", fc.TokenFile, &cfg.TokenFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("sign-in-path", fc.SignInPath, &cfg.SignInPath)
	s.setString("sign-out-path", fc.SignOutPath, &cfg.SignOutPath)
	s.setString("session-path", fc.SessionPath, &cfg.SessionPath)
	s.setString("token-pointer", fc.TokenPointer, &cfg.TokenPointer)
	s.setString("token-type", fc.TokenType, &cfg.TokenType)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("token-max-age", fc.TokenMaxAge, &cfg.TokenMaxAge); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
