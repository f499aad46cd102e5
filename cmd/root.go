package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var rootLogLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vinyl",
	Short: "Local music library player",
	Long: `vinyl is a local music library player built around four structures:
a playlist with linear and bag-shuffle navigation, a play history for
back-navigation, a prefix index for search-as-you-type, and a play-count
ranking for the top-played list.

Scan a directory once, then browse, search, and play from the terminal:

  vinyl scan ~/Music
  vinyl search bohem
  vinyl top 5
  vinyl tui`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}
