// dinoweb plays the runner in a desktop window, or in a browser when built
// for js/wasm. Settings, best scores and achievements are kept with gdata.
//
// Usage:
//
//	dinoweb [--difficulty hard] [--character robot] [--classic]
//
// Keys: Space/Up jump, Down duck, P pause, F toggle FPS, Esc quit.
// After game over: R restart, D next difficulty, C next character.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
	"github.com/vovakirdan/dinorun/internal/platform/window"
	"github.com/vovakirdan/dinorun/internal/platform/window/savedata"
)

const appName = "dinorun"

var (
	flagConfig     string
	flagDifficulty string
	flagCharacter  string
	flagClassic    bool
	flagFPS        int
	flagSeed       int64
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "dinoweb",
	Short:        "Dino Run in a window",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", string(config.DifficultyMedium), "Difficulty: easy, medium, hard, insane")
	rootCmd.Flags().StringVar(&flagCharacter, "character", string(sim.CharacterDino), "Character: dino, robot, ninja")
	rootCmd.Flags().BoolVar(&flagClassic, "classic", false, "Play the classic variant")
	rootCmd.Flags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dinoweb",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	save, err := savedata.Open(appName)
	if err != nil {
		// Play on without persistence
		logger.Warn("save data unavailable", "err", err)
	}

	gameID := dino.GameID
	if flagClassic {
		gameID = dino.ClassicGameID
	}

	game, err := window.New(window.Options{
		GameID:     gameID,
		ConfigPath: flagConfig,
		Difficulty: config.ParseTier(flagDifficulty),
		Character:  sim.ParseCharacter(flagCharacter),
		TickRate:   flagFPS,
		Seed:       flagSeed,
		Save:       save,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	return window.Run(game, "Dino Run")
}
