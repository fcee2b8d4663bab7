package cmd

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/audit"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/config"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/errors"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/logging"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/system"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/testutil"
)

// resetFlags restores every flag to its default so tests do not leak
// state through the package-level command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the command tree with args against exec and returns what
// was written to stdout and stderr.
func execute(t *testing.T, exec system.CommandExecutor, args ...string) (string, string, error) {
	t.Helper()

	system.SetDefaultExecutor(exec)
	t.Setenv(config.EnvConfigPath, "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	logging.SetUserOutput(&stdout, &stderr)

	t.Cleanup(func() {
		system.ResetDefaults()
		logging.SetUserOutput(nil, nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
		current = nil
	})

	rootCmd.SetArgs(append([]string{}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func tableRow(cells ...string) string {
	var b strings.Builder
	for _, c := range cells {
		fmt.Fprintf(&b, "%-20s", c)
	}
	return b.String() + "\n"
}

func TestReport_Healthy(t *testing.T) {
	stdout, _, err := execute(t, testutil.NewTiltExecutor(t, testutil.HealthyResources))
	if err != nil {
		t.Fatalf("report error: %v", err)
	}

	want := tableRow("Name", "Update", "Runtime", "Overall") +
		tableRow("(Tiltfile)", "ok", "not_applicable", "PASS") +
		tableRow("api", "ok", "ok", "PASS") +
		tableRow("uncategorized", "not_applicable", "not_applicable", "PASS") +
		tableRow("web", "ok", "ok", "PASS")
	if stdout != want {
		t.Errorf("stdout =\n%q\nwant\n%q", stdout, want)
	}
}

func TestReport_Failing(t *testing.T) {
	stdout, _, err := execute(t, testutil.NewTiltExecutor(t, testutil.FailingResources))
	if err == nil {
		t.Fatal("report should fail when a resource is unhealthy")
	}
	if errors.GetExitCode(err) != errors.ExitFailure {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitFailure)
	}
	if err.Error() != "3 resources unhealthy: api, web, worker" {
		t.Errorf("error = %q", err.Error())
	}

	want := tableRow("Name", "Update", "Runtime", "Overall") +
		tableRow("api", "error", "ok", "FAIL") +
		tableRow("db", "ok", "ok", "PASS") +
		tableRow("web", "ok", "pending", "FAIL") +
		tableRow("worker", "", "", "FAIL")
	if stdout != want {
		t.Errorf("stdout =\n%q\nwant\n%q", stdout, want)
	}
}

func TestReport_Empty(t *testing.T) {
	stdout, _, err := execute(t, testutil.NewTiltExecutor(t, testutil.EmptyResources))
	if err != nil {
		t.Fatalf("empty list should be healthy: %v", err)
	}
	if stdout != tableRow("Name", "Update", "Runtime", "Overall") {
		t.Errorf("stdout = %q, want header only", stdout)
	}
}

func TestReport_TiltDown(t *testing.T) {
	down := stderrors.New("connection refused")
	stdout, _, err := execute(t, testutil.NewDownExecutor(down))
	if err == nil {
		t.Fatal("report should fail when tilt is down")
	}
	if stdout != "" {
		t.Errorf("no table should be printed, got %q", stdout)
	}
	if err.Error() != "waiting for tilt: connection refused" {
		t.Errorf("error = %q", err.Error())
	}
	if errors.GetExitCode(err) != errors.ExitFailure {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitFailure)
	}
}

func TestReport_MalformedOutput(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse(testutil.UIResourcesPattern, []byte("null"), nil)

	stdout, _, err := execute(t, exec)
	if err == nil {
		t.Fatal("report should fail on malformed tilt output")
	}
	if stdout != "" {
		t.Errorf("no table should be printed, got %q", stdout)
	}
	if errors.GetExitCode(err) != errors.ExitFailure {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitFailure)
	}
}

func TestReport_RejectsArgs(t *testing.T) {
	exec := testutil.NewTiltExecutor(t, testutil.HealthyResources)
	if _, _, err := execute(t, exec, "bogus"); err == nil {
		t.Error("unexpected positional argument should fail")
	}
	if got := exec.CallCount(testutil.UIResourcesPattern); got != 0 {
		t.Errorf("uiresources calls = %d, want 0", got)
	}
}

func TestPortFlag(t *testing.T) {
	exec := testutil.NewTiltExecutor(t, testutil.HealthyResources)
	if _, _, err := execute(t, exec, "--port", "10351"); err != nil {
		t.Fatalf("report error: %v", err)
	}

	cmd, ok := exec.LastCommand()
	if !ok {
		t.Fatal("No command recorded")
	}
	if cmd.String() != "tilt get uiresources -o=json --port=10351" {
		t.Errorf("command = %q", cmd.String())
	}
}

func TestPortFlag_Invalid(t *testing.T) {
	_, _, err := execute(t, testutil.NewTiltExecutor(t, testutil.HealthyResources), "--port", "70000")
	if err == nil {
		t.Fatal("out of range port should fail")
	}
	if !strings.Contains(err.Error(), "invalid --port") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthcheck.toml")
	content := "tilt = \"kubectl exec env-1 -- tilt\"\nport = 10351\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	exec := system.NewMockExecutor()
	exec.AddResponse("kubectl exec env-1 -- tilt get uiresources",
		testutil.MustFixture(t, testutil.HealthyResources), nil)

	if _, _, err := execute(t, exec, "--config", path); err != nil {
		t.Fatalf("report error: %v", err)
	}

	cmd, _ := exec.LastCommand()
	if cmd.String() != "kubectl exec env-1 -- tilt get uiresources -o=json --port=10351" {
		t.Errorf("command = %q", cmd.String())
	}
}

func TestConfigFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthcheck.toml")
	if err := os.WriteFile(path, []byte("prot = 1\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	exec := testutil.NewTiltExecutor(t, testutil.HealthyResources)
	_, _, err := execute(t, exec, "--config", path)
	if err == nil {
		t.Fatal("unknown config key should fail")
	}
	if !strings.HasPrefix(err.Error(), "failed to load config") {
		t.Errorf("error = %q", err.Error())
	}
	if len(exec.Commands) != 0 {
		t.Errorf("tilt should not be queried, got %v", exec.Commands)
	}
}

func TestSession(t *testing.T) {
	exec := testutil.NewTiltExecutor(t, testutil.HealthyResources)
	stdout, _, err := execute(t, exec, "session")
	if err != nil {
		t.Fatalf("session error: %v", err)
	}
	if stdout != "" {
		t.Errorf("session should print nothing, got %q", stdout)
	}
	if got := exec.CallCount(testutil.UISessionPattern); got != 1 {
		t.Errorf("uisession calls = %d, want 1", got)
	}
}

func TestSession_Down(t *testing.T) {
	stdout, _, err := execute(t, testutil.NewDownExecutor(stderrors.New("exit status 1")), "session")
	if err == nil {
		t.Fatal("session should fail when tilt is down")
	}
	if stdout != "" {
		t.Errorf("session should print nothing, got %q", stdout)
	}
	if errors.GetExitCode(err) != errors.ExitFailure {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitFailure)
	}
}

func TestPorts(t *testing.T) {
	stdout, _, err := execute(t, testutil.NewTiltExecutor(t, testutil.EndpointsResources), "ports")
	if err != nil {
		t.Fatalf("ports error: %v", err)
	}

	want := "" +
		"NAME        PORT\n" +
		"frontend    3000\n" +
		"frontend-2  3001\n" +
		"tilt-2      9000\n" +
		"tilt        10350\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestPorts_TiltDown(t *testing.T) {
	stdout, _, err := execute(t, testutil.NewDownExecutor(stderrors.New("connection refused")), "ports")
	if err == nil {
		t.Fatal("ports should fail when tilt is down")
	}
	if stdout != "" {
		t.Errorf("no output expected, got %q", stdout)
	}
}

func TestWait_Healthy(t *testing.T) {
	exec := testutil.NewTiltExecutor(t, testutil.HealthyResources)
	stdout, _, err := execute(t, exec, "wait", "--interval", "10ms", "--timeout", "5s")
	if err != nil {
		t.Fatalf("wait error: %v", err)
	}
	if got := exec.CallCount(testutil.UIResourcesPattern); got != 1 {
		t.Errorf("uiresources calls = %d, want 1", got)
	}
	if !strings.HasPrefix(stdout, "ℹ Waiting up to 5s for tilt resources (checking every 10ms)\n") {
		t.Errorf("stdout should start with the wait banner, got %q", stdout)
	}
	if !strings.Contains(stdout, tableRow("web", "ok", "ok", "PASS")) {
		t.Errorf("final table missing, got %q", stdout)
	}
	if !strings.HasSuffix(stdout, "✓ All 4 resources healthy\n") {
		t.Errorf("stdout should end with the success line, got %q", stdout)
	}
}

func TestWait_Timeout(t *testing.T) {
	auditDir := t.TempDir()
	exec := testutil.NewTiltExecutor(t, testutil.FailingResources)

	stdout, _, err := execute(t, exec, "wait", "--interval", "10ms", "--timeout", "50ms", "--audit-dir", auditDir)
	if err == nil {
		t.Fatal("wait should time out")
	}
	if errors.GetExitCode(err) != errors.ExitFailure {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitFailure)
	}
	if !strings.HasPrefix(err.Error(), "gave up waiting for healthy resources") {
		t.Errorf("error = %q", err.Error())
	}
	if !strings.Contains(stdout, tableRow("api", "error", "ok", "FAIL")) {
		t.Errorf("last table missing, got %q", stdout)
	}
	if strings.Contains(stdout, "✓") {
		t.Errorf("no success line expected on timeout, got %q", stdout)
	}

	events, err := audit.NewLogger(auditDir).Events("api")
	if err != nil {
		t.Fatalf("Events error: %v", err)
	}
	if len(events) == 0 || events[len(events)-1].Type != audit.EventTimeout {
		t.Errorf("api events = %+v, want a trailing timeout event", events)
	}
}

func TestWait_TiltNeverUp(t *testing.T) {
	_, stderr, err := execute(t, testutil.NewDownExecutor(stderrors.New("connection refused")),
		"wait", "--interval", "10ms", "--timeout", "30ms")
	if err == nil {
		t.Fatal("wait should time out")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error should carry the last fetch error, got %q", err.Error())
	}
	if !strings.Contains(stderr, "No resource list was obtained from tilt") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestWait_InvalidInterval(t *testing.T) {
	exec := testutil.NewTiltExecutor(t, testutil.HealthyResources)
	if _, _, err := execute(t, exec, "wait", "--interval", "0s"); err == nil {
		t.Error("zero interval should fail")
	}
	if len(exec.Commands) != 0 {
		t.Errorf("tilt should not be queried, got %v", exec.Commands)
	}
}
