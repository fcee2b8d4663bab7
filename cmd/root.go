package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
	tiltPort   int
)

var rootCmd = &cobra.Command{
	Use:   "tilt-healthcheck",
	Short: "Report the health of a running Tilt instance",
	Long: `tilt-healthcheck queries a local Tilt instance and reports pass/fail health.

Run without a subcommand it prints one row per UI resource and exits 1 if any
resource's update or runtime status is not ok (or not applicable). Use it as
the readiness probe of a container running 'tilt up', and 'session' as its
liveness probe.`,
	Args:              cobra.NoArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
	RunE:              runReport,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file (default $TILT_HEALTHCHECK_CONFIG)")
	rootCmd.PersistentFlags().IntVar(&tiltPort, "port", 0, "Tilt API port passed to tilt as --port")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
