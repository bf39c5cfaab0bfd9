// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/meo-custom/cliparse"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	verbose bool
	baseURL string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "intake",
		Short: "Submit MEO custom intakes from the command line",
		Long: `intake drives the whole customisation workflow headlessly: it walks the
welcome and notice steps, uploads the head-shot, replays a WAV file as the
voice recording, validates the form and saves it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				slog.Warn("failed to load .env", "error", err)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "API base URL (or set MEO_API_BASE_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout (or set MEO_API_TIMEOUT)")

	root.AddCommand(
		newSubmitCmd(opts),
		newValidateCmd(opts),
		newGetCmd(opts),
	)
	return root
}

// clientConfig reads the environment and applies flag overrides.
func (o *options) clientConfig() (cliparse.ClientConfig, error) {
	cfg, err := cliparse.ParseClientEnv()
	if err != nil {
		return cliparse.ClientConfig{}, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}
	return cfg, nil
}
