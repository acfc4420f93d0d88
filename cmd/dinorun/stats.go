package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/achievements"
	"github.com/vovakirdan/dinorun/internal/storage"
)

var (
	flagStatsRecent int
	flagStatsAll    bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [variant]",
	Short: "Show cumulative stats, recent runs and achievements",
	Long: `Display the cumulative totals, the latest runs and the achievement
progress of a variant (default: dino). With --all, prints one summary line
per played variant instead.

Examples:
  dinorun stats
  dinorun stats --recent 20
  dinorun stats --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsRecent, "recent", 5, "Number of recent runs to show")
	statsCmd.Flags().BoolVar(&flagStatsAll, "all", false, "Summarize every played variant")
}

func runStats(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagStatsAll {
		return printAllStats(store)
	}

	gameID, err := variantArg(args)
	if err != nil {
		return err
	}

	summary, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	snap, err := store.LoadSnapshot(gameID)
	if err != nil {
		return err
	}
	runs, err := store.RecentRuns(gameID, flagStatsRecent)
	if err != nil {
		return err
	}

	t := snap.Totals
	fmt.Printf("Stats - %s\n\n", gameID)
	fmt.Printf("  Games played:      %d\n", t.GamesPlayed)
	fmt.Printf("  Best score:        %d\n", summary.HighScore)
	fmt.Printf("  Average score:     %.0f\n", summary.AvgScore)
	fmt.Printf("  Total score:       %d\n", t.TotalScore)
	fmt.Printf("  Jumps / ducks:     %d / %d\n", t.Jumps, t.Ducks)
	fmt.Printf("  Obstacles avoided: %d\n", t.ObstaclesAvoided)
	fmt.Printf("  Longest combo:     %d\n", t.LongestCombo)
	fmt.Printf("  Play time:         %s\n", time.Duration(t.PlayTimeSeconds)*time.Second)
	if !summary.LastPlayed.IsZero() {
		fmt.Printf("  Last played:       %s\n", summary.LastPlayed.Format("2006-01-02 15:04"))
	}

	if len(runs) > 0 {
		fmt.Println()
		fmt.Println("Recent runs:")
		fmt.Printf("  %-16s  %-8s  %-7s  %-6s  %-7s  %s\n", "Date", "Tier", "Score", "Combo", "Avoided", "Power-ups")
		for _, r := range runs {
			fmt.Printf("  %-16s  %-8s  %-7d  %-6d  %-7d  %d\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.Difficulty, r.Stats.Score,
				r.Stats.MaxCombo, r.Stats.ObstaclesAvoided, r.Stats.PowerUpsCollected)
		}
	}

	tracker := achievements.NewTracker(flagFPS)
	tracker.Restore(snap)

	fmt.Println()
	fmt.Printf("Achievements (%d/%d):\n", tracker.UnlockedCount(), tracker.TotalCount())
	for _, a := range tracker.Achievements() {
		mark := " "
		if a.Unlocked {
			mark = "x"
		}
		fmt.Printf("  [%s] %-16s %5d/%-5d  %s\n", mark, a.Title, a.Progress, a.Target, a.Description)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %-6s  %-6s  %-8s  %s\n", "Variant", "Games", "Best", "Average", "Last played")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-14s  %-6d  %-6d  %-8.0f  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
