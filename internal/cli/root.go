// Package cli implements the planwise command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planwise",
	Short: "Track client projects and payments",
	Long: `PlanWise tracks client projects for freelancers and contractors:
client details, advance and total payments, completion and payment status.
Data lives in a local SQLite database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
