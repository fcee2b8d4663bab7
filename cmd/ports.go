package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tilt-dev/ephemerator/tilt-healthcheck/internal/port"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List the ports exposed by the Tilt instance",
	Long: `Lists the Tilt API port and every port a resource publishes through an
http://0.0.0.0:<port>/ endpoint link, sorted by port.`,
	Args: cobra.NoArgs,
	RunE: runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	client, err := tiltClient()
	if err != nil {
		return err
	}

	list, err := client.UIResources(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPORT")
	for _, p := range port.Exposed(list) {
		fmt.Fprintf(w, "%s\t%d\n", p.Name, p.Port)
	}
	return w.Flush()
}
