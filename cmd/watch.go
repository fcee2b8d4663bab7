package cmd

import (
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/errors"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/health"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/monitor"
	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a live table of Tilt resource health",
	Long: `Opens an interactive table of resource health refreshed on every interval.
Press q to quit. On exit the last table is printed and the exit code follows
it, so the command can also be used in scripts.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchInterval time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "Time between refreshes")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchInterval <= 0 {
		return errors.ConfigError("--interval must be positive", nil)
	}

	client, err := tiltClient()
	if err != nil {
		return err
	}
	mon := monitor.New(watchInterval, client)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	final, err := tui.RunWatch(
		tui.NewWatch(ctx, mon.Check, watchInterval),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	if err != nil {
		return err
	}

	report := final.Report()
	if report == nil {
		if final.Err() != nil {
			return final.Err()
		}
		return errors.New(errors.ExitFailure, "no resource list was obtained from tilt")
	}

	if err := health.NewTableWriter(cmd.OutOrStdout()).Write(report); err != nil {
		return err
	}
	if final.Err() != nil {
		return final.Err()
	}
	return report.Err()
}
