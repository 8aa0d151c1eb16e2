// Package cli implements the ritual command-line interface using Cobra.
// Each subcommand maps to one gamification surface (points, streaks,
// level, achievements, freeze).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ritual",
	Short: "ritual — habit tracking that keeps score",
	Long: `ritual turns your daily logs into points, streaks, and levels.
Everything lives in a local SQLite database; no accounts, no sync.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
