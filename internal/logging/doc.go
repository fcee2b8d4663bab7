// Package logging provides logging utilities for tilt-healthcheck.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("running tilt", "args", args)
//	logging.Warn("tilt query failed", "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Waiting for %d resources...", n)
//	logging.UserSuccess("All %d resources healthy", n)
//	logging.UserWarning("Resource %s is pending", name)
//	logging.UserError("waiting for tilt: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
