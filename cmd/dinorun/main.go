// dinorun is an endless runner for the terminal, for SSH sessions and for a
// desktop window.
//
// Usage:
//
//	dinorun list               - List runner variants
//	dinorun play [variant]     - Play a run
//	dinorun menu               - Pick variant, difficulty and character interactively
//	dinorun serve              - Start SSH server for remote play
//	dinorun scores [variant]   - Show high scores per difficulty
//	dinorun stats [variant]    - Show cumulative stats, recent runs and achievements
//	dinorun settings           - Show or change player settings
//	dinorun simulate           - Run headless games driven by the autopilot
//
// Global flags:
//
//	--config <path>    - Tuning YAML (default: search order)
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.dinorun/scores.db)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/registry"
	"github.com/vovakirdan/dinorun/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dinorun",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dinorun",
	Short: "Dino Run - an endless runner in your terminal",
	Long: `Dino Run is an endless runner: jump over cacti, duck under birds,
collect power-ups and chain combos while the world speeds up.

Available commands:
  list      - Show the runner variants
  play      - Play a run directly
  menu      - Interactive picker (variant, difficulty, character)
  serve     - Start SSH server for remote play
  scores    - View high scores
  stats     - View cumulative stats and achievements
  settings  - Show or change player settings
  simulate  - Run headless games with the autopilot

Examples:
  dinorun play
  dinorun play --difficulty hard --character ninja
  dinorun play dino_classic
  dinorun menu
  dinorun serve --ssh :2222
  dinorun simulate --runs 20 --difficulty insane`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dinorun/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(simulateCmd)
}

// openStore opens the scores database. Playing works without it, so a
// failure is only logged.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// loadSettings returns the stored player settings or the defaults.
func loadSettings(store *storage.Store) config.Settings {
	if store == nil {
		return config.DefaultSettings()
	}
	settings, err := store.LoadSettings()
	if err != nil {
		logger.Warn("could not load settings", "err", err)
		return config.DefaultSettings()
	}
	return settings
}

// variantArg resolves the optional variant argument, defaulting to dino.
func variantArg(args []string) (string, error) {
	gameID := dino.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return "", fmt.Errorf("unknown variant %q, run 'dinorun list' to see them", gameID)
	}
	return gameID, nil
}

// loadTuning loads the tuning YAML named by --config, falling back to the
// built-in defaults when it cannot be read.
func loadTuning() config.DinoConfig {
	cfg, err := config.LoadDino(flagConfig)
	if err != nil {
		logger.Warn("using default tuning", "err", err)
		return config.DefaultDinoConfig()
	}
	return cfg
}
