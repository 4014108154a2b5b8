package cliconfig

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// ApplyEnvConfig applies APISHELL_* variables, plus API_URL for the base
// URL, to cfg. Flags in changed keep their values.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", os.Getenv("API_URL"), &cfg.BaseURL)
	s.setString("base-url", os.Getenv("APISHELL_BASE_URL"), &cfg.BaseURL)
	s.setString("token", os.Getenv("APISHELL_TOKEN"), &cfg.Token)
	s.setString("token-file", os.Getenv("APISHELL_TOKEN_FILE"), &cfg.TokenFile)
	s.setString("log-level", os.Getenv("APISHELL_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("sign-in-path", os.Getenv("APISHELL_SIGN_IN_PATH"), &cfg.SignInPath)
	s.setString("sign-out-path", os.Getenv("APISHELL_SIGN_OUT_PATH"), &cfg.SignOutPath)
	s.setString("session-path", os.Getenv("APISHELL_SESSION_PATH"), &cfg.SessionPath)
	s.setString("token-pointer", os.Getenv("APISHELL_TOKEN_POINTER"), &cfg.TokenPointer)
	s.setString("token-type", os.Getenv("APISHELL_TOKEN_TYPE"), &cfg.TokenType)

	if err := s.setDuration("timeout", os.Getenv("APISHELL_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("token-max-age", os.Getenv("APISHELL_TOKEN_MAX_AGE"), &cfg.TokenMaxAge); err != nil {
		return err
	}

	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" || !FileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
