package system

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestOSExecutor_Stdout(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := DefaultExecutor().Execute(context.Background(), "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if string(out) != "out\n" {
		t.Errorf("Output = %q, want stdout only", string(out))
	}
}

func TestOSExecutor_FailureCarriesStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	_, err := DefaultExecutor().Execute(context.Background(), "sh", "-c", "echo 'connection refused' >&2; exit 3")
	if err == nil {
		t.Fatal("Execute should fail for non-zero exit")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error %T should be *CommandError", err)
	}
	if !strings.Contains(cmdErr.Stderr, "connection refused") {
		t.Errorf("Stderr = %q, want it to contain %q", cmdErr.Stderr, "connection refused")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, want stderr included", err.Error())
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Errorf("wrapped error should be *exec.ExitError with code 3, got %v", err)
	}
}

func TestOSExecutor_MissingBinary(t *testing.T) {
	_, err := DefaultExecutor().Execute(context.Background(), "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("Execute should fail for a missing binary")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error = %v, want exec.ErrNotFound in chain", err)
	}
}

func TestCommandError_CommandLine(t *testing.T) {
	err := &CommandError{Name: "tilt", Args: []string{"get", "uiresources", "-o=json"}, Err: errors.New("exit status 1")}

	if got := err.CommandLine(); got != "tilt get uiresources -o=json" {
		t.Errorf("CommandLine() = %q", got)
	}
	if got := err.Error(); got != "tilt get uiresources -o=json: exit status 1" {
		t.Errorf("Error() = %q", got)
	}

	quoted := &CommandError{Name: "sh", Args: []string{"-c", "echo hi"}, Err: errors.New("boom")}
	if got := quoted.CommandLine(); got != "sh -c 'echo hi'" {
		t.Errorf("CommandLine() = %q, want quoted argument", got)
	}
}
