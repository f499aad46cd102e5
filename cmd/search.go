package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kstrand/vinyl/internal/config"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <prefix>",
	Short: "Find songs whose title starts with a prefix",
	Long: `Find songs whose title starts with the given prefix.

Matching is case-insensitive. Results are ordered by relevance: an
exact title match first, then shorter titles, then alphabetically.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	songs, err := engine.SearchTitles(args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(songs) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, song := range songs {
		line := padToWidth(song.Title, titleColumnWidth)
		if song.Artist != "" {
			line += "  " + song.Artist
		}
		fmt.Println(line)
	}
	return nil
}
