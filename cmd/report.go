package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/health"
)

// runReport prints the status table for every UI resource. A failed fetch
// prints no table.
func runReport(cmd *cobra.Command, args []string) error {
	client, err := tiltClient()
	if err != nil {
		return err
	}

	list, err := client.UIResources(cmd.Context())
	if err != nil {
		return err
	}

	report := health.Evaluate(list)
	if err := health.NewTableWriter(cmd.OutOrStdout()).Write(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return report.Err()
}
