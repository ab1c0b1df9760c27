package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/highscore"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var flagRounds int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and round history",
	Long: `Display the high-score list, totals over all finished rounds, and the
most recent rounds.

Examples:
  blocks scores
  blocks scores --rounds 20
  blocks scores --db ./blocks.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRounds, "rounds", 10, "Number of recent rounds to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	top := highscore.NewTable(store, cfg.HighScores.Key, cfg.HighScores.Limit, nil).Load()

	fmt.Println("High Scores")
	fmt.Println()
	if len(top) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blocks play' to set the first high score!")
		return nil
	}
	for i, s := range top {
		fmt.Printf("  %d. %d\n", i+1, s)
	}

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return nil
	}
	fmt.Println()
	if stats.Rounds == 0 {
		fmt.Println("No finished rounds yet.")
		return nil
	}
	fmt.Printf("Rounds: %d  Best: %d  Average: %.1f  Lines: %d  Last: %s\n",
		stats.Rounds, stats.BestScore, stats.AvgScore, stats.TotalLines,
		stats.LastPlayed.Format("2006-01-02 15:04"))

	rounds, err := store.RecentRounds(flagRounds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-6s  %-6s  %s\n", "Score", "Lines", "Date")
	fmt.Printf("  %-6s  %-6s  %s\n", "-----", "-----", "----")
	for _, r := range rounds {
		fmt.Printf("  %-6d  %-6d  %s\n", r.Score, r.Lines, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
