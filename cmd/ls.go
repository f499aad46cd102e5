package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kstrand/vinyl/internal/config"
)

const titleColumnWidth = 40

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the song library in playlist order",
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
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

	songs := engine.Songs()
	if len(songs) == 0 {
		fmt.Println("Library is empty. Run 'vinyl scan' first.")
		return nil
	}

	current, _ := engine.CurrentSong()
	for _, song := range songs {
		marker := "  "
		if song.ID == current.ID {
			marker = "> "
		}
		line := marker + padToWidth(song.Title, titleColumnWidth)
		if song.Artist != "" {
			line += "  " + song.Artist
		}
		if count := engine.CountOf(song.ID); count > 0 {
			line += fmt.Sprintf("  (%d plays)", count)
		}
		fmt.Println(line)
	}
	return nil
}
