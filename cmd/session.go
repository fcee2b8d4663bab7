package cmd

import (
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Check that the Tilt session is reachable",
	Long: `Runs 'tilt get uisession' once. Exits 0 with no output when the Tilt API
server answers and 1 otherwise. Intended as a liveness probe.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	client, err := tiltClient()
	if err != nil {
		return err
	}
	return client.Session(cmd.Context())
}
