package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "civiclens",
	Short: "CivicLens elected-officials data pipeline",
	Long: `CivicLens keeps a local record of elected officials reconciled against
the federal and state registries. Running with no arguments performs a full
interactive sync across all jurisdictions.`,
	Run: runSync,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
