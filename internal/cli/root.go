// Package cli implements the fleetwatch command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fleetwatch",
	Short: "Driver app-deployment compliance dashboard",
	Long: `fleetwatch pulls the vehicle schedule and trip datasets from Metabase and
turns them into driver compliance reports: who has not deployed the app,
grouped by customer, driver, hub and SPOC over daily and weekly windows.

Run the web dashboard with "fleetwatch serve" or print a one-shot report
with "fleetwatch report".`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
