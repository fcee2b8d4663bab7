// Package errors provides typed errors with exit codes for tilt-healthcheck.
//
// # Error Types
//
// CheckError is the base error type that wraps an error with an exit code:
//
//	type CheckError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess = 0 // Healthy
//	ExitFailure = 1 // Tilt unreachable, bad output, unhealthy resource, bad config
//
// Kubernetes exec probes treat any non-zero status as failure, so the
// constructors below differ in message, not in code.
//
// # Error Constructors
//
//	errors.TiltUnavailable(err)
//	errors.DecodeFailed("uiresources", err)
//	errors.SessionUnreachable(err)
//	errors.Unhealthy([]string{"api", "web"})
//	errors.ConfigError("failed to load config", err)
//	errors.Timeout("timed out waiting for tilt", err)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
