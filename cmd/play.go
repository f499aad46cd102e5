package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kstrand/vinyl/internal/config"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <prefix>",
	Short: "Record a play of the best-matching song",
	Long: `Record a play of the song best matching the given title prefix.

The playlist cursor jumps to the song, the play lands in the history,
and the play count goes up, exactly as when playing from the TUI. The
actual audio output is whatever player you point at the printed path.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := setupLogger("", rootLogLevel)

	ctx := context.Background()
	engine, s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	matches, err := engine.SearchTitles(args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no song matches %q", args[0])
	}

	song, err := engine.PlaySong(matches[0].ID)
	if err != nil {
		return fmt.Errorf("failed to play %q: %w", matches[0].Title, err)
	}

	if err := saveSession(ctx, engine, s); err != nil {
		return err
	}

	fmt.Printf("Playing: %s (%d plays)\n%s\n", song.Title, engine.CountOf(song.ID), song.Path)
	return nil
}
