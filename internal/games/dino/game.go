// Package dino adapts the dino runner simulation to the arcade platform.
// It maps platform actions to simulation commands and draws the playfield
// into a character screen.
package dino

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinorun/internal/achievements"
	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
	"github.com/vovakirdan/dinorun/internal/registry"
)

// Game identifiers.
const (
	GameID        = "dino"
	ClassicGameID = "dino_classic"
)

// Terminals report no key release, so a duck ends this many ticks after the
// last duck key repeat.
const duckHoldTicks = 30

// noticeTicks is how long HUD messages stay visible.
const noticeTicks = 120

// Game implements registry.Game on top of sim.Simulation.
type Game struct {
	id      string
	title   string
	classic bool
	opts    registry.Options
	logger  *log.Logger

	cfg      config.DinoConfig
	cfgSet   bool // cfg came from Reconfigure and must not be reloaded
	sim      *sim.Simulation
	tracker  *achievements.Tracker
	runtime  core.RuntimeConfig
	restored bool

	duckHold  int
	legFrame  int
	notice    string
	noticeTTL int
	view      viewport
}

// New creates a Dino Runner game instance.
func New(opts registry.Options) *Game {
	return newGame(GameID, "Dino Runner", false, opts)
}

// NewClassic creates the simpler game variant: rarer flying obstacles,
// ungated power-ups and no scripted patterns.
func NewClassic(opts registry.Options) *Game {
	return newGame(ClassicGameID, "Dino Runner Classic", true, opts)
}

func newGame(id, title string, classic bool, opts registry.Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		id:      id,
		title:   title,
		classic: classic,
		opts:    opts,
		logger:  logger,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.cfgSet {
		cfg, err := config.LoadDino(g.opts.ConfigPath)
		if err != nil {
			g.logger.Warn("using default config", "err", err)
			cfg = config.DefaultDinoConfig()
		}
		g.cfg = cfg
	}
	if g.classic {
		config.ApplyClassicVariant(&g.cfg)
	}

	if g.tracker == nil {
		g.tracker = achievements.NewTracker(runtime.TickRate)
	}
	if !g.restored {
		g.restored = true
		if err := achievements.Load(g.opts.Progress, g.id, g.tracker); err != nil {
			g.logger.Warn("cannot load achievements", "err", err)
		}
	}

	events := achievements.Attach(g.tracker, g.opts.Progress, g.id, g.logger)
	g.sim = sim.New(g.cfg, g.opts.Difficulty, g.opts.Character, sim.NewSource(runtime.Seed), events)

	g.duckHold = 0
	g.legFrame = 0
	g.notice = ""
	g.noticeTTL = 0
	g.view = newViewport(g.cfg.Field, runtime.ScreenW, runtime.ScreenH)
}

// Reconfigure swaps the tuning and restarts the run.
func (g *Game) Reconfigure(cfg config.DinoConfig) {
	g.cfg = cfg
	g.cfgSet = true
	g.Reset(g.runtime)
	g.setNotice("Config reloaded")
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.sim.TogglePause()
	}
	if g.sim.IsGameOver() || g.sim.IsPaused() {
		return core.StepResult{State: g.State()}
	}

	g.applyInput(in)

	res := g.sim.Tick()
	g.legFrame = (g.legFrame + 1) % 10 // Animation cycle
	if g.noticeTTL > 0 {
		g.noticeTTL--
	}

	var notices []string
	if res.PatternWarning != "" {
		notices = append(notices, res.PatternWarning)
	}
	for _, id := range res.NewlyUnlocked {
		if d, ok := achievements.Lookup(id); ok {
			notices = append(notices, "Achievement unlocked: "+d.Title)
		}
	}
	if len(notices) > 0 {
		g.setNotice(notices[len(notices)-1])
	}

	return core.StepResult{State: g.State(), Notices: notices}
}

func (g *Game) applyInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionJump):
		g.sim.Jump()
		g.duckHold = 0
	case in.Has(core.ActionDuck):
		g.sim.StartDuck()
		g.duckHold = duckHoldTicks
	case in.Has(core.ActionDuckRelease):
		g.sim.EndDuck()
		g.duckHold = 0
	case g.duckHold > 0:
		g.duckHold--
		if g.duckHold == 0 {
			g.sim.EndDuck()
		}
	}
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeTTL = noticeTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:      g.sim.Score(),
		GameOver:   g.sim.IsGameOver(),
		Paused:     g.sim.IsPaused(),
		Difficulty: string(g.sim.Difficulty().Tier),
	}
}

// Sim exposes the running simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Tracker exposes the achievement tracker.
func (g *Game) Tracker() *achievements.Tracker {
	return g.tracker
}

// Summary returns the end-of-run lines shown on the game over box.
func (g *Game) Summary() []string {
	st := g.sim.Stats()
	return []string{
		fmt.Sprintf("Score: %d", st.Score),
		fmt.Sprintf("Jumps: %d  Ducks: %d", st.Jumps, st.Ducks),
		fmt.Sprintf("Avoided: %d  Max combo: %d", st.ObstaclesAvoided, st.MaxCombo),
		fmt.Sprintf("Power-ups: %d  Difficulty: %s", st.PowerUpsCollected, g.sim.Difficulty().Name),
	}
}

// Register the game variants with the registry
func init() {
	registry.Register(GameID, func(opts registry.Options) registry.Game {
		return New(opts)
	})
	registry.Register(ClassicGameID, func(opts registry.Options) registry.Game {
		return NewClassic(opts)
	})
}
