package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/registry"
	"github.com/vovakirdan/dinorun/internal/storage"
)

// noticeTicks is how long a status bar notice stays visible.
const noticeTicks = 180

// ModelOptions are the collaborators of a game model. All are optional.
type ModelOptions struct {
	Store    *storage.Store
	Watcher  *config.Watcher // pushes config changes into the running game
	Settings config.Settings
	Logger   *log.Logger
	Embedded bool // running inside a session; Back returns to the menu
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	watcher    *config.Watcher
	settings   config.Settings
	theme      Theme
	logger     *log.Logger
	config     core.RuntimeConfig
	fixedSeed  bool
	embedded   bool
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	tickID     uint64

	highScore  int
	hiLoaded   bool
	notice     string
	noticeTTL  int
	lastTick   time.Time
	fps        float64
	quitting   bool
	backToMenu bool
	quitOnBack bool // standalone program: Back ends it so the caller's menu resumes
}

// NewModel creates a new Bubble Tea model for the given game.
// The bottom row of the terminal is kept for the status bar.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	fixed := cfg.Seed != 0
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		store:      opts.Store,
		watcher:    opts.Watcher,
		settings:   opts.Settings.Normalize(),
		theme:      ThemeFor(opts.Settings),
		logger:     logger,
		config:     cfg,
		fixedSeed:  fixed,
		embedded:   opts.Embedded,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		tickID:     nextTickID(),
	}
}

func gameRows(screenH int) int {
	return core.Max(1, screenH-1)
}

// gameConfig is the runtime config handed to the game, minus the status bar.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameRows(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	// Note: gameState will be set on first tick (value receiver limitation)

	return tea.Batch(tickCmd(m.config.TickRate, m.tickID), watchCmd(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick(msg.At)

	case ConfigReloadedMsg:
		if r, ok := m.game.(registry.Reconfigurable); ok {
			r.Reconfigure(msg.Config)
			m.gameState = m.game.State()
			m.hiLoaded = false
		}
		m.logger.Info("config reloaded", "path", m.watcher.Path())
		m.setNotice("Config reloaded")
		return m, watchCmd(m.watcher)

	case ConfigErrorMsg:
		m.logger.Warn("config reload failed", "err", msg.Err)
		m.setNotice("Config error: " + msg.Err.Error())
		return m, watchCmd(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.setNotice("Saved " + filepath.Base(path))
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only makes sense while the run is halted
	if m.embedded && m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleResize processes window resize events. The game scales the field
// to the new size so the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if !m.lastTick.IsZero() {
		if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
			m.fps = m.fps*0.9 + 0.1/dt
		}
	}
	m.lastTick = now

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.inputFrame = core.NewInputFrame()
		return m, tickCmd(m.config.TickRate, m.tickID)
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	// A fresh frame per tick; the game may hold on to the one it was given
	m.inputFrame = core.NewInputFrame()

	if n := len(result.Notices); n > 0 {
		m.setNotice(result.Notices[n-1])
	} else if m.noticeTTL > 0 {
		m.noticeTTL--
	}

	// The finished run is stored by the game itself; refresh the best score
	if !m.hiLoaded || (m.gameState.GameOver && !wasOver) {
		m.refreshHighScore()
	}

	return m, tickCmd(m.config.TickRate, m.tickID)
}

func (m *Model) refreshHighScore() {
	m.hiLoaded = true
	if m.store == nil {
		m.highScore = core.Max(m.highScore, m.gameState.Score)
		return
	}
	hi, err := m.store.HighScore(m.game.ID(), m.gameState.Difficulty)
	if err != nil {
		m.logger.Warn("cannot load high score", "err", err)
		return
	}
	m.highScore = hi
}

func (m *Model) setNotice(msg string) {
	m.notice = msg
	m.noticeTTL = noticeTicks
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".dinorun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	best := core.Max(m.highScore, m.gameState.Score)
	items := []StatusItem{{Label: "HI", Value: strconv.Itoa(best)}}
	if m.settings.ShowFPS {
		items = append(items, StatusItem{Label: "FPS", Value: fmt.Sprintf("%.0f", m.fps)})
	}

	hint := "Space jump  S duck  P pause  Q quit"
	if m.gameState.GameOver {
		hint = "R restart  Q quit"
	}
	if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
		hint = "R restart  B menu  Q quit"
	}

	notice := ""
	if m.noticeTTL > 0 {
		notice = m.notice
	}
	return RenderStatusBar(m.theme, m.config.ScreenW, items, hint, notice)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game. With
// opts.Embedded set, Back on a halted run ends the program too.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, cfg, opts)
	model.quitOnBack = opts.Embedded

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
