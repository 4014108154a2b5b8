package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/apishell/internal/cliconfig"
	"github.com/bft-labs/apishell/pkg/api"
	"github.com/bft-labs/apishell/pkg/auth"
	logAdapter "github.com/bft-labs/apishell/pkg/log"
	"github.com/bft-labs/apishell/pkg/token"
)

const helpDescription = `
Call your backend's JSON API from the shell with the same base URL and
Authorization handling the web client uses.

Highlights:
  - Base URL from --base-url, API_URL, or the config file (default http://localhost:5000/).
  - Signs in against the local auth routes and keeps the token in ~/.apishell/token.toml.
  - The token is read fresh for every request, so rotation by another process is picked up.
`

var exampleUsage = strings.TrimSpace(`
  apishell login --username alice --password secret
  apishell get /user/me
  apishell post /items -d '{"name":"x"}'
  apishell delete /items/42 --base-url https://api.example.com/
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app is the state shared by every subcommand once configuration is resolved.
type app struct {
	cfg    cliconfig.Config
	log    zerolog.Logger
	client *api.Client
	store  *token.FileStore
	auth   *auth.Provider
}

func main() {
	root := newApp().rootCmd()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// reportError prints err without logging it again; request failures were
// already logged by the client.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
}

func newApp() *app {
	a := &app{cfg: cliconfig.DefaultConfig()}
	a.log = cliconfig.Logger(a.cfg.LogLevel)
	return a
}

// rootCmd builds the command tree bound to a's configuration.
func (a *app) rootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "apishell",
		Short:         "Authenticated HTTP calls against your backend API",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, cfgPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.store != nil {
				return a.store.Close()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.apishell/config.toml)")
	flags.StringVar(&a.cfg.BaseURL, "base-url", a.cfg.BaseURL, fmt.Sprintf("backend base URL (default %s)", api.DefaultBaseURL))
	flags.StringVar(&a.cfg.Token, "token", a.cfg.Token, "Authorization header value; bypasses the token file")
	flags.StringVar(&a.cfg.TokenFile, "token-file", a.cfg.TokenFile, "where the signed-in token is kept")
	flags.DurationVar(&a.cfg.HTTPTimeout, "timeout", a.cfg.HTTPTimeout, "HTTP timeout")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (trace, debug, info, warn, error, disabled)")

	flags.StringVar(&a.cfg.SignInPath, "sign-in-path", a.cfg.SignInPath, "sign-in route")
	flags.StringVar(&a.cfg.SignOutPath, "sign-out-path", a.cfg.SignOutPath, "sign-out route (empty skips the call)")
	flags.StringVar(&a.cfg.SessionPath, "session-path", a.cfg.SessionPath, "session route")
	flags.StringVar(&a.cfg.TokenPointer, "token-pointer", a.cfg.TokenPointer, "JSON pointer to the token in the sign-in response")
	flags.StringVar(&a.cfg.TokenType, "token-type", a.cfg.TokenType, "prefix stored before the token")
	flags.DurationVar(&a.cfg.TokenMaxAge, "token-max-age", a.cfg.TokenMaxAge, "upper bound on a stored token's lifetime")
	for _, name := range []string{"sign-in-path", "sign-out-path", "session-path", "token-pointer", "token-type", "token-max-age"} {
		if err := flags.MarkHidden(name); err != nil {
			a.log.Info().Err(err).Str("flag", name).Msg("failed to hide flag")
		}
	}

	root.AddCommand(
		a.requestCmd(api.MethodGet),
		a.requestCmd(api.MethodPost),
		a.requestCmd(api.MethodPut),
		a.requestCmd(api.MethodDelete, "del"),
		a.loginCmd(),
		a.logoutCmd(),
		a.sessionCmd(),
		a.tokenCmd(),
	)
	return root
}

// setup resolves configuration (flags > env > file > defaults) and builds the
// client, token store and auth provider.
func (a *app) setup(cmd *cobra.Command, cfgPath string) error {
	if err := cliconfig.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.log = cliconfig.Logger(a.cfg.LogLevel)

	// Log configuration (masking the token)
	logCfg := a.cfg
	if len(logCfg.Token) > 0 {
		logCfg.Token = "*****"
	}
	a.log.Debug().Interface("config", logCfg).Msg("configuration")

	logger := logAdapter.NewZerologAdapterWithLogger(a.log)

	var source token.Source
	if a.cfg.TokenFile != "" {
		a.store = token.NewFileStore(a.cfg.TokenFile, logger)
		if err := a.store.Load(); err != nil {
			return fmt.Errorf("load token: %w", err)
		}
		if err := a.store.Watch(cmd.Context()); err != nil {
			a.log.Warn().Err(err).Msg("token file watch disabled")
		}
		source = a.store
	}
	if a.cfg.Token != "" {
		source = token.Static(a.cfg.Token)
	}

	a.client = api.New(&a.cfg, source,
		api.WithHTTPClient(&http.Client{Timeout: a.cfg.HTTPTimeout}),
		api.WithLogger(logger),
	)

	if a.store != nil {
		a.auth = auth.NewProvider(a.client, a.store, a.cfg.AuthConfig(), logger)
	}
	return nil
}
