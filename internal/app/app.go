package app

import (
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/config"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/errors"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/system"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/tilt"
)

// App holds the application dependencies
type App struct {
	// Config is the loaded configuration
	Config *config.Config

	// Executor runs external commands
	Executor system.CommandExecutor
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets the configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// New creates a new App with the given options.
// Missing dependencies fall back to config.Default() and system.DefaultExecutor().
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		app.Config = config.Default()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}

	return app
}

// Tilt returns a client for the configured tilt instance.
func (a *App) Tilt() (*tilt.Client, error) {
	command, err := a.Config.Command()
	if err != nil {
		return nil, errors.ConfigError("invalid tilt command", err)
	}
	return tilt.NewClient(a.Executor,
		tilt.WithCommand(command),
		tilt.WithPort(a.Config.Port),
		tilt.WithQueryTimeout(a.Config.QueryTimeout.Duration),
	), nil
}
