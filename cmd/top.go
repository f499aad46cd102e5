package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kstrand/vinyl/internal/config"
)

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top [k]",
	Short: "Show the most played songs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)
}

func runTop(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := setupLogger("", rootLogLevel)

	k := cfg.TopK
	if len(args) > 0 {
		k, err = strconv.Atoi(args[0])
		if err != nil || k < 0 {
			return fmt.Errorf("invalid k: %s", args[0])
		}
	}

	ctx := context.Background()
	engine, s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	top, err := engine.TopPlayed(k)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}
	if len(top) == 0 {
		fmt.Println("No plays recorded yet.")
		return nil
	}

	for i, entry := range top {
		fmt.Printf("%2d. %s %d\n", i+1, padToWidth(entry.Title, titleColumnWidth), entry.Count)
	}
	return nil
}
