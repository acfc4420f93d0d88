package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the runner variants",
	Long:  `Shows the registered runner variants and the difficulty tiers.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-6s  %-9s  %s\n", "Tier", "Speed", "Spawn", "Power-up", "Points")
	for _, d := range loadTuning().Difficulties {
		fmt.Printf("  %-8s  x%-5.1f  x%-5.1f  %-9s  x%.1f\n",
			d.Tier, d.SpeedMultiplier, d.ObstacleSpawnRate,
			fmt.Sprintf("%.0f%%", d.PowerUpChance*100), d.ScoreMultiplier)
	}

	fmt.Println()
	fmt.Println("Run 'dinorun play <id>' to play.")
}
