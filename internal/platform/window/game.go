// Package window runs the runner in a desktop window or a browser tab with
// Ebitengine. The simulation is the same one the terminal plays; this
// package only maps keys and draws rectangles in field units.
package window

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
	"github.com/vovakirdan/dinorun/internal/platform/window/savedata"
	"github.com/vovakirdan/dinorun/internal/registry"
)

// hudHeight is the band above the field reserved for the HUD, in field units.
const hudHeight = 40

// noticeTicks is how long a notice stays on screen.
const noticeTicks = 150

// Options configure a window game.
type Options struct {
	GameID     string
	ConfigPath string
	Difficulty config.DifficultyTier
	Character  sim.Character
	TickRate   int
	Seed       int64 // 0 reseeds from the clock on every run
	Save       *savedata.SaveData
	Logger     *log.Logger
}

// Game implements ebiten.Game.
type Game struct {
	opts     Options
	logger   *log.Logger
	save     *savedata.SaveData
	settings config.Settings

	game      *dino.Game
	field     config.DinoField
	highScore int
	recorded  bool

	notice    string
	noticeTTL int
}

// New creates the window game and starts the first run.
func New(opts Options) (*Game, error) {
	if opts.GameID == "" {
		opts.GameID = dino.GameID
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Save == nil {
		opts.Save = savedata.New(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	settings, err := opts.Save.LoadSettings()
	if err != nil {
		logger.Warn("cannot load settings", "err", err)
	}

	g := &Game{
		opts:     opts,
		logger:   logger,
		save:     opts.Save,
		settings: settings,
	}
	if err := g.newRun(); err != nil {
		return nil, err
	}
	return g, nil
}

// newRun creates a fresh game for the current difficulty and character.
// The game is recreated rather than reset so a menu change takes effect.
func (g *Game) newRun() error {
	created, err := registry.Create(g.opts.GameID, registry.Options{
		ConfigPath: g.opts.ConfigPath,
		Difficulty: string(g.opts.Difficulty),
		Character:  string(g.opts.Character),
		Settings:   g.settings,
		Progress:   g.save,
		Logger:     g.logger,
	})
	if err != nil {
		return err
	}
	game, ok := created.(*dino.Game)
	if !ok {
		return errors.New("window: variant is not a runner")
	}

	seed := g.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: g.opts.TickRate, Seed: seed})

	g.game = game
	g.field = game.Sim().Config().Field
	g.recorded = false
	g.refreshHighScore()
	return nil
}

func (g *Game) refreshHighScore() {
	hi, err := g.save.HighScore(g.opts.GameID, g.game.Sim().Difficulty().Tier)
	if err != nil {
		g.logger.Warn("cannot load high score", "err", err)
		return
	}
	g.highScore = hi
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeTTL = noticeTicks
}

// Update advances one tick. Escape ends the program.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.toggleFPS()
	}

	s := g.game.Sim()
	if s.IsGameOver() {
		return g.updateGameOver()
	}

	res := g.game.Step(readFrame())
	if n := len(res.Notices); n > 0 {
		g.setNotice(res.Notices[n-1])
	} else if g.noticeTTL > 0 {
		g.noticeTTL--
	}

	if res.State.GameOver && !g.recorded {
		// The run was stored by the game's recorder
		g.recorded = true
		g.refreshHighScore()
	}
	return nil
}

// updateGameOver handles the between-runs keys: restart and the difficulty
// and character pickers.
func (g *Game) updateGameOver() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		return g.newRun()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.opts.Difficulty = nextTier(g.game.Sim().Difficulty().Tier)
		g.setNotice("Difficulty: " + string(g.opts.Difficulty))
		return g.newRun()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.opts.Character = nextCharacter(g.game.Sim().Character())
		g.setNotice("Character: " + string(g.opts.Character))
		return g.newRun()
	}
	return nil
}

func (g *Game) toggleFPS() {
	g.settings.ShowFPS = !g.settings.ShowFPS
	if err := g.save.SaveSettings(g.settings); err != nil {
		g.logger.Warn("cannot save settings", "err", err)
	}
}

// readFrame maps the keyboard to platform actions. Windows report key
// release, so a duck lasts exactly as long as the key is held: Duck repeats
// every tick while held and DuckRelease ends it.
func readFrame() core.InputFrame {
	in := core.NewInputFrame()
	if justPressed(ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW) {
		in.Set(core.ActionJump)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Set(core.ActionDuck)
	}
	if justReleased(ebiten.KeyArrowDown, ebiten.KeyS) {
		in.Set(core.ActionDuckRelease)
	}
	if justPressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}
	return in
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func justReleased(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

func nextTier(t config.DifficultyTier) config.DifficultyTier {
	for i, tier := range config.Tiers {
		if tier == t {
			return config.Tiers[(i+1)%len(config.Tiers)]
		}
	}
	return config.DifficultyMedium
}

func nextCharacter(c sim.Character) sim.Character {
	for i, ch := range sim.Characters {
		if ch == c {
			return sim.Characters[(i+1)%len(sim.Characters)]
		}
	}
	return sim.CharacterDino
}

// Layout keeps the logical screen in field units; Ebitengine scales it to
// the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.field.Width), int(g.field.Height) + hudHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w*3/2, h*3/2)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.opts.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
