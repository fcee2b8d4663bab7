package system

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// CommandError reports a command that failed to start or exited non-zero.
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

// CommandLine returns the command as a shell-quoted string.
func (e *CommandError) CommandLine() string {
	return shellquote.Join(append([]string{e.Name}, e.Args...)...)
}

func (e *CommandError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.CommandLine(), e.Err, stderr)
	}
	return fmt.Sprintf("%s: %v", e.CommandLine(), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

// Execute keeps stdout and stderr apart so callers can decode stdout.
func (e *osExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), &CommandError{Name: name, Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}
