package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
	"github.com/vovakirdan/dinorun/internal/platform/tui"
	"github.com/vovakirdan/dinorun/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive picker",
	Long: `Start in interactive menu mode.

Pick the variant, difficulty and character, then play. After a run you
return to the menu to play again.

Controls:
  Up/Down/j/k   - Choose variant
  Left/Right    - Choose difficulty
  C             - Cycle character
  Enter/Space   - Play
  Tab           - Scoreboard
  O             - Settings
  Q             - Quit

Examples:
  dinorun menu
  dinorun menu --fps 30
  dinorun menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	settings := loadSettings(store)
	tuning := loadTuning()

	cfg := terminalConfig()
	selection := tui.MenuSelection{
		GameID:     dino.GameID,
		Difficulty: config.DifficultyMedium,
		Character:  sim.CharacterDino,
	}

	for {
		result, err := tui.RunMenu(store, cfg, tuning.Difficulties, selection, tui.ThemeFor(settings))
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Keep size changes and the last pick
		cfg = result.Config
		selection = result.Selection

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}
			continue

		case result.WantsSettings:
			updated, quit, err := tui.RunSettings(store, settings, cfg)
			if err != nil {
				return fmt.Errorf("settings: %w", err)
			}
			if quit {
				return nil
			}
			settings = updated
			continue
		}

		game, err := registry.Create(selection.GameID, registry.Options{
			ConfigPath: flagConfig,
			Difficulty: string(selection.Difficulty),
			Character:  string(selection.Character),
			Settings:   settings,
			Progress:   store.Progress(),
			Logger:     logger,
		})
		if err != nil {
			logger.Error("cannot create game", "game", selection.GameID, "err", err)
			continue
		}

		run := cfg
		if flagSeed == 0 {
			run.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, run, tui.ModelOptions{
			Store:    store,
			Settings: settings,
			Logger:   logger,
			Embedded: true,
		}); err != nil {
			logger.Error("error running game", "err", err)
		}

		// Loop back to menu
	}
}
