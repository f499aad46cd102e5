package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kstrand/vinyl/internal/config"
	"github.com/kstrand/vinyl/internal/tui"
)

var tuiLogFile string

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and play the library interactively",
	Long: `Open the interactive terminal screen: playlist, search-as-you-type,
now playing, top played and recent plays.

Keys: enter plays the selected song, n/p move next/previous, b goes
back through the play history, s toggles shuffle, / focuses search,
q quits. State is saved on exit.

With auto_advance configured, the playlist advances by itself as if
each track finished after that interval.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Log file path (default: discard)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to a file or nowhere; stderr belongs to the screen.
	logFile := tuiLogFile
	if logFile == "" {
		logFile = "/dev/null"
	}
	logger := setupLogger(logFile, rootLogLevel)

	ctx := context.Background()
	engine, s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.New(engine, tui.Config{AutoAdvance: cfg.AutoAdvance}, logger)
	if err := app.Run(ctx); err != nil {
		return err
	}

	return saveSession(ctx, engine, s)
}
