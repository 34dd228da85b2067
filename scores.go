package main

import (
	"fmt"

	"github.com/decker502/farm/pkg/storage"
	"github.com/spf13/cobra"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 sessions and overall statistics.

Examples:
  farm scores
  farm scores --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func runScores(cmd *cobra.Command, args []string) error {
	if flagDBPath == "" {
		return fmt.Errorf("no scores database configured")
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores - Farm")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'farm play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-8s  %-4s  %-6s  %s\n", "Rank", "Score", "Chickens", "Cows", "Chests", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-8s  %-4s  %-6s  %s\n", "----", "-----", "--------", "----", "------", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-6d  %-8d  %-4d  %-6d  %s\n",
			i+1, entry.Score, entry.Chickens, entry.Cows, entry.ChestsOpened,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	highScore, err := store.HighScore()
	if err != nil {
		return fmt.Errorf("retrieving high score: %w", err)
	}
	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d  Games: %d  Average: %.1f\n", highScore, stats.Sessions, stats.AvgScore)
	return nil
}
