package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kstrand/vinyl/internal/config"
	"github.com/kstrand/vinyl/internal/library"
	"github.com/kstrand/vinyl/internal/store"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a directory and rebuild the song library",
	Long: `Scan a directory for audio files and rebuild the song library.

Metadata is read from embedded tags where possible, falling back to
file names. Songs already in the library keep their identity (and so
their play counts) as long as their path is unchanged.

Without an argument the configured music directory is scanned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := setupLogger("", rootLogLevel)

	dir := cfg.MusicDir
	if len(args) > 0 {
		dir = args[0]
	}

	s, err := store.New(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer s.Close()

	ctx := context.Background()

	previous, err := s.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load existing catalog: %w", err)
	}

	scanner := library.NewScanner(cfg.Extensions, logger)
	songs, err := scanner.Scan(dir)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	// Keep IDs stable across rescans so play counts survive.
	byPath := make(map[string]string, len(previous))
	for _, song := range previous {
		byPath[song.Path] = song.ID
	}
	for i, song := range songs {
		if id, ok := byPath[song.Path]; ok {
			songs[i].ID = id
		}
	}

	if err := s.SaveCatalog(ctx, songs); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	fmt.Printf("Scanned %s: %d songs\n", dir, len(songs))
	return nil
}
