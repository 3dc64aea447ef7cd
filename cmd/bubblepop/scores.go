package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/storage"
)

var flagScoreLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [campaign|endless]",
	Short: "Show high scores and recent sessions",
	Long: `Display the top scores and the most recent play sessions for a mode.

Examples:
  bubblepop scores
  bubblepop scores endless --limit 20`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"campaign", "endless"},
	RunE:      runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := "campaign"
	if len(args) == 1 {
		mode = args[0]
	}
	gameID, ok := modes[mode]
	if !ok {
		return fmt.Errorf("unknown mode %q, expected campaign or endless", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'bubblepop play %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		level := entry.Level
		if level == "" {
			level = "-"
		}
		fmt.Printf("  %-4d  %-10d  %-10s  %s\n", i+1, entry.Score, level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.0f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}

	sessions, err := store.RecentSessions(gameID, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent sessions:")
	fmt.Println()
	fmt.Printf("  %-16s  %-6s  %-6s  %-7s  %s\n", "Started", "Rounds", "Popped", "Dropped", "Score")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-6d  %-6d  %-7d  %d\n",
			s.StartedAt.Format("2006-01-02 15:04"), s.Rounds, s.Popped, s.Dropped, s.Score)
	}
	return nil
}
