package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/app"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/config"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/errors"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/logging"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/system"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/tilt"
)

// current is the application built by setupApp for the running command.
var current *app.App

// setupApp configures logging, resolves the config file and applies flag
// overrides before any command runs.
func setupApp(cmd *cobra.Command, args []string) error {
	logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())

	cfg, err := config.Resolve(system.DefaultFS(), configPath)
	if err != nil {
		return errors.ConfigError("failed to load config", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = tiltPort
		if err := cfg.Validate(); err != nil {
			return errors.ConfigError("invalid --port", err)
		}
	}

	current = app.New(app.WithConfig(cfg), app.WithExecutor(system.DefaultExecutor()))
	logging.Debug("configured", "tilt", cfg.Tilt, "port", cfg.Port, "query_timeout", cfg.QueryTimeout)
	return nil
}

// tiltClient returns a client for the configured tilt instance.
func tiltClient() (*tilt.Client, error) {
	if current == nil {
		current = app.New()
	}
	return current.Tilt()
}
