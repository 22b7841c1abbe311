package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/crud"
	"github.com/marcus/empdesk/internal/csrf"
	"github.com/marcus/empdesk/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// session bundles what every command needs
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	client *crud.Client
	closer io.Closer
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

// openSession resolves config, sets up logging and builds the client.
// logFallback receives warnings when no log file is configured.
func openSession(cmd *cobra.Command, logFallback io.Writer) (*session, error) {
	cfg, err := config.Resolve(getBaseDir())
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, cmd.Flags()); err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{
		File:     cfg.LogFile,
		BaseDir:  getBaseDir(),
		Debug:    cfg.Debug,
		Fallback: logFallback,
	})
	if err != nil {
		return nil, err
	}

	opts := crud.OptionsFromConfig(cfg)
	opts.Logger = logger
	client, err := crud.New(opts)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	logger.Debug("session opened", "base_url", cfg.BaseURL, "timeout", time.Duration(cfg.Timeout).String())
	return &session{cfg: cfg, logger: logger, client: client, closer: closer}, nil
}

// applyFlags overrides config values with flags the user set, then
// re-checks the result.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("timeout") {
		d, _ := flags.GetDuration("timeout")
		cfg.Timeout = config.Duration(d)
	}
	if flags.Changed("cookie") {
		cfg.Cookie, _ = flags.GetString("cookie")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	cfg.Sanitize()
	return cfg.Validate()
}

// ensureToken loads the list page when the jar holds no CSRF token yet
func ensureToken(ctx context.Context, client *crud.Client) error {
	_, err := client.Tokens().Token()
	if err == nil {
		return nil
	}
	if !errors.Is(err, csrf.ErrMissingToken) {
		return err
	}
	if err := client.Prime(ctx); err != nil {
		return err
	}
	_, err = client.Tokens().Token()
	return err
}
