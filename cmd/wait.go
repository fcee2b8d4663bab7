package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/audit"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/errors"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/health"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/monitor"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait until every Tilt resource is healthy",
	Long: `Checks resource health immediately and then on every interval until all
resources pass or the timeout elapses. Errors reaching tilt are logged and
retried. The last table obtained is printed either way.

With --audit-dir, every change in a resource's overall status is appended
to <dir>/<resource>.events.jsonl.`,
	Args: cobra.NoArgs,
	RunE: runWait,
}

var (
	waitInterval time.Duration
	waitTimeout  time.Duration
	waitAuditDir string
)

func init() {
	waitCmd.Flags().DurationVar(&waitInterval, "interval", 5*time.Second, "Time between checks")
	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", 5*time.Minute, "Give up after this long (0 waits forever)")
	waitCmd.Flags().StringVar(&waitAuditDir, "audit-dir", "", "Directory for per-resource status change events")
	rootCmd.AddCommand(waitCmd)
}

func runWait(cmd *cobra.Command, args []string) error {
	cfg := current.Config.Wait
	interval, timeout, auditDir := cfg.Interval.Duration, cfg.Timeout.Duration, cfg.AuditDir
	if cmd.Flags().Changed("interval") {
		interval = waitInterval
	}
	if cmd.Flags().Changed("timeout") {
		timeout = waitTimeout
	}
	if cmd.Flags().Changed("audit-dir") {
		auditDir = waitAuditDir
	}
	if interval <= 0 {
		return errors.ConfigError("--interval must be positive", nil)
	}
	if timeout < 0 {
		return errors.ConfigError("--timeout cannot be negative", nil)
	}

	client, err := tiltClient()
	if err != nil {
		return err
	}

	var opts []monitor.Option
	if auditDir != "" {
		opts = append(opts, monitor.WithAuditLogger(audit.NewLogger(auditDir)))
	}
	mon := monitor.New(interval, client, opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if timeout > 0 {
		logInfo("Waiting up to %s for tilt resources (checking every %s)", timeout, interval)
	} else {
		logInfo("Waiting for tilt resources (checking every %s)", interval)
	}

	report, err := mon.WaitHealthy(ctx)
	if report != nil {
		if werr := health.NewTableWriter(cmd.OutOrStdout()).Write(report); werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
	}
	if err != nil {
		var stopped *monitor.StoppedError
		if errors.As(err, &stopped) {
			if report == nil {
				logWarning("No resource list was obtained from tilt")
			}
			return errors.Timeout("gave up waiting for healthy resources", err)
		}
		return err
	}

	logSuccess("All %d resources healthy", len(report.Rows))
	return nil
}
