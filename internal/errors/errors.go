package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for tilt-healthcheck. Probe consumers only distinguish zero
// from non-zero, so every failure maps to ExitFailure.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// CheckError is the base error type for tilt-healthcheck
type CheckError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CheckError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CheckError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CheckError) ExitCode() int {
	return e.Code
}

// New creates a new CheckError
func New(code int, message string) *CheckError {
	return &CheckError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CheckError
func Wrap(code int, message string, cause error) *CheckError {
	return &CheckError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// TiltUnavailable returns an error for a tilt query that could not be run
func TiltUnavailable(cause error) *CheckError {
	return Wrap(ExitFailure, "waiting for tilt", cause)
}

// DecodeFailed returns an error for tilt output that could not be parsed
func DecodeFailed(what string, cause error) *CheckError {
	return Wrap(ExitFailure, fmt.Sprintf("failed to decode %s", what), cause)
}

// SessionUnreachable returns an error for a failed uisession query
func SessionUnreachable(cause error) *CheckError {
	return Wrap(ExitFailure, "tilt session unreachable", cause)
}

// Unhealthy returns an error naming the resources that failed their checks
func Unhealthy(names []string) *CheckError {
	noun := "resources"
	if len(names) == 1 {
		noun = "resource"
	}
	return New(ExitFailure, fmt.Sprintf("%d %s unhealthy: %s", len(names), noun, strings.Join(names, ", ")))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CheckError {
	return Wrap(ExitFailure, message, cause)
}

// Timeout returns an error for a wait that gave up
func Timeout(message string, cause error) *CheckError {
	return Wrap(ExitFailure, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var checkErr *CheckError
	if errors.As(err, &checkErr) {
		return checkErr.ExitCode()
	}
	return ExitFailure
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
