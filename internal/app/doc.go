// Package app provides the application context for tilt-healthcheck.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
//	type App struct {
//	    Config   *config.Config          // Loaded configuration
//	    Executor system.CommandExecutor  // Runs the tilt binary
//	}
//
// # Creating an App
//
//	// Production usage
//	a := app.New(app.WithConfig(cfg))
//
//	// Testing with a scripted tilt
//	a := app.New(app.WithExecutor(mockExecutor))
//
//	client, err := a.Tilt()
package app
