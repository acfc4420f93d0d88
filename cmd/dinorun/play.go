package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/platform/tui"
	"github.com/vovakirdan/dinorun/internal/registry"
)

var (
	flagDifficulty string
	flagCharacter  string
	flagClassic    bool
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a run",
	Long: `Start a run of the given variant (default: dino).

Controls:
  Space/Up/W   - Jump
  Down/S       - Duck
  P            - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - slower start, more power-ups
  medium  - the reference tuning
  hard    - faster, denser, spiky obstacles
  insane  - fastest, rare power-ups, double points

Examples:
  dinorun play
  dinorun play --difficulty insane --character robot
  dinorun play --classic
  dinorun play --config ./my-dino.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", string(config.DifficultyMedium), "Difficulty: easy, medium, hard, insane")
	playCmd.Flags().StringVar(&flagCharacter, "character", "dino", "Character: dino, robot, ninja")
	playCmd.Flags().BoolVar(&flagClassic, "classic", false, "Play the classic variant")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the tuning YAML when it changes")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := variantArg(args)
	if err != nil {
		return err
	}
	if flagClassic && len(args) == 0 {
		gameID = dino.ClassicGameID
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	settings := loadSettings(store)

	game, err := registry.Create(gameID, registry.Options{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		Character:  flagCharacter,
		Settings:   settings,
		Progress:   store.Progress(),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	opts := tui.ModelOptions{
		Store:    store,
		Settings: settings,
		Logger:   logger,
	}

	if flagWatch {
		path := config.ResolvePath(flagConfig)
		if path == "" {
			logger.Warn("nothing to watch, the built-in tuning is in use")
		} else if w, werr := config.NewWatcher(path); werr != nil {
			logger.Warn("cannot watch config", "path", path, "err", werr)
		} else {
			defer w.Close()
			opts.Watcher = w
			logger.Debug("watching config", "path", w.Path())
		}
	}

	if err := tui.Run(game, terminalConfig(), opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
