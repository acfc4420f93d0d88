package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/registry"
	"github.com/vovakirdan/dinorun/internal/storage"
)

var (
	flagSimRuns       int
	flagSimMaxTicks   int
	flagSimDifficulty string
	flagSimCharacter  string
	flagSimSave       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [variant]",
	Short: "Run headless games driven by the autopilot",
	Long: `Play runs without a terminal UI. The autopilot jumps over ground
obstacles and ducks under low flyers; each run ends at game over or after
--max-ticks. Runs are seeded from --seed (or the clock) plus the run index,
so a fixed --seed reproduces the whole batch.

Examples:
  dinorun simulate
  dinorun simulate --runs 50 --difficulty hard --seed 42
  dinorun simulate dino_classic --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of runs")
	simulateCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 60*60*10, "Tick limit per run")
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "medium", "Difficulty: easy, medium, hard, insane")
	simulateCmd.Flags().StringVar(&flagSimCharacter, "character", "dino", "Character: dino, robot, ninja")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the runs in the scores database")
}

// simResult summarizes one headless run.
type simResult struct {
	score    int
	ticks    int
	finished bool
}

func runSimulate(_ *cobra.Command, args []string) error {
	gameID, err := variantArg(args)
	if err != nil {
		return err
	}

	opts := registry.Options{
		ConfigPath: flagConfig,
		Difficulty: flagSimDifficulty,
		Character:  flagSimCharacter,
		Logger:     logger,
	}
	if flagSimSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open scores database: %w", err)
		}
		defer store.Close()
		opts.Progress = store.Progress()
	}

	created, err := registry.Create(gameID, opts)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	game, ok := created.(*dino.Game)
	if !ok {
		return fmt.Errorf("variant %q cannot be simulated", gameID)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var best, total int
	start := time.Now()
	for i := range flagSimRuns {
		res := simulateRun(game, core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  24,
			TickRate: flagFPS,
			Seed:     seed + int64(i),
		})
		best = max(best, res.score)
		total += res.score

		st := game.Sim().Stats()
		logger.Info("run finished",
			"run", i+1,
			"score", res.score,
			"ticks", res.ticks,
			"crashed", res.finished,
			"avoided", st.ObstaclesAvoided,
			"max_combo", st.MaxCombo,
			"power_ups", st.PowerUpsCollected,
		)
	}

	if flagSimRuns > 0 {
		logger.Info("simulation done",
			"runs", flagSimRuns,
			"best", best,
			"mean", total/flagSimRuns,
			"achievements", fmt.Sprintf("%d/%d", game.Tracker().UnlockedCount(), game.Tracker().TotalCount()),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}
	return nil
}

// simulateRun plays one run with the autopilot.
func simulateRun(game *dino.Game, cfg core.RuntimeConfig) simResult {
	game.Reset(cfg)
	pilot := dino.NewAutopilot(game.Sim().Config())

	for tick := 1; tick <= flagSimMaxTicks; tick++ {
		step := game.Step(pilot.Frame(game.Sim()))
		for _, notice := range step.Notices {
			logger.Debug(notice, "tick", tick)
		}
		if step.State.GameOver {
			return simResult{score: step.State.Score, ticks: tick, finished: true}
		}
	}
	return simResult{score: game.State().Score, ticks: flagSimMaxTicks}
}
