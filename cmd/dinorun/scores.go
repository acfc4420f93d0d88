package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/registry"
	"github.com/vovakirdan/dinorun/internal/storage"
)

var (
	flagScoresDifficulty string
	flagScoresLimit      int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores per difficulty",
	Long: `Display the top scores of a variant (default: dino), one table per
difficulty. Use --difficulty to show a single tier.

Examples:
  dinorun scores
  dinorun scores dino_classic
  dinorun scores --difficulty insane --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only this difficulty: easy, medium, hard, insane")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Scores per difficulty")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := variantArg(args)
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID, registry.Options{})
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	tiers := config.Tiers
	if flagScoresDifficulty != "" {
		tiers = []config.DifficultyTier{config.ParseTier(flagScoresDifficulty)}
	}

	fmt.Printf("High Scores - %s\n", game.Title())

	empty := true
	for _, tier := range tiers {
		scores, err := store.TopScores(gameID, string(tier), flagScoresLimit)
		if err != nil {
			return fmt.Errorf("cannot retrieve scores: %w", err)
		}
		if len(scores) == 0 {
			continue
		}
		empty = false

		fmt.Println()
		fmt.Printf("%s (best %d)\n", tier, scores[0].Score)
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if empty {
		fmt.Println()
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'dinorun play %s' to set the first high score!\n", gameID)
	}
	return nil
}
