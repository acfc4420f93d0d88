package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
	"github.com/vovakirdan/dinorun/internal/registry"
	"github.com/vovakirdan/dinorun/internal/storage"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
}

// MenuSelection is the run the player picked.
type MenuSelection struct {
	GameID     string
	Difficulty config.DifficultyTier
	Character  sim.Character
}

// MenuModel is the Bubble Tea model for the game picker menu.
// Left/Right cycles the difficulty and C cycles the character.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	difficulties   []config.DifficultyProfile
	diffCursor     int
	charCursor     int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	theme          Theme
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuSelection // Set when user selects a game
	openScoreboard bool           // True if user pressed Tab for scoreboard
	openSettings   bool
}

// NewMenuModel creates a new menu model. The difficulty table comes from the
// loaded config; initial is the preselected run.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, difficulties []config.DifficultyProfile, initial MenuSelection, theme Theme) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}
	if len(difficulties) == 0 {
		difficulties = config.DefaultDifficulties()
	}

	m := MenuModel{
		items:        items,
		difficulties: difficulties,
		width:        cfg.ScreenW,
		height:       cfg.ScreenH,
		store:        store,
		config:       cfg,
		theme:        theme,
		keyMapper:    NewKeyMapper(),
	}
	for i, it := range items {
		if it.GameID == initial.GameID {
			m.cursor = i
		}
	}
	for i, d := range difficulties {
		if d.Tier == initial.Difficulty {
			m.diffCursor = i
		}
	}
	for i, c := range sim.Characters {
		if c == initial.Character {
			m.charCursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "c" {
		m.charCursor = (m.charCursor + 1) % len(sim.Characters)
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.diffCursor = (m.diffCursor + len(m.difficulties) - 1) % len(m.difficulties)

	case MenuActionRight:
		m.diffCursor = (m.diffCursor + 1) % len(m.difficulties)

	case MenuActionSelect:
		if len(m.items) > 0 {
			sel := m.current()
			m.selected = &sel
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSettings:
		m.openSettings = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) current() MenuSelection {
	sel := MenuSelection{
		Difficulty: m.difficulties[m.diffCursor].Tier,
		Character:  sim.Characters[m.charCursor],
	}
	if len(m.items) > 0 {
		sel.GameID = m.items[m.cursor].GameID
	}
	return sel
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	t := m.theme

	b.WriteString("\n")
	b.WriteString(centerStyled(t.MenuTitle, "  D I N O   R U N  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(t.MenuDescription, "Select a game", m.width))
	b.WriteString("\n\n")

	sel := m.current()
	for i, item := range m.items {
		cursor := "  "
		style := t.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = t.MenuItemActive
		}

		line := cursor + item.Title
		if best := m.bestScore(item.GameID, sel.Difficulty); best > 0 {
			line += fmt.Sprintf("  (best %d)", best)
		}
		b.WriteString(centerStyled(style, line, m.width))
		b.WriteString("\n")
	}

	d := m.difficulties[m.diffCursor]
	b.WriteString("\n")
	b.WriteString(centerStyled(t.MenuItemActive, fmt.Sprintf("< Difficulty: %s >", d.Name), m.width))
	b.WriteString("\n")
	b.WriteString(centerStyled(t.MenuDescription, fmt.Sprintf(
		"speed x%.1f  spawn x%.1f  power-ups %.0f%%  points x%.1f",
		d.SpeedMultiplier, d.ObstacleSpawnRate, d.PowerUpChance*100, d.ScoreMultiplier), m.width))
	b.WriteString("\n")
	b.WriteString(centerStyled(t.MenuItemNormal, fmt.Sprintf("Character: %s", sel.Character), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Game  |  Left/Right: Difficulty  |  C: Character  |  Enter: Play"
	b.WriteString(centerStyled(t.MenuControls, controls, m.width))
	b.WriteString("\n")
	b.WriteString(centerStyled(t.MenuControls, "Tab: Scores  |  O: Settings  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) bestScore(gameID string, tier config.DifficultyTier) int {
	if m.store == nil {
		return 0
	}
	best, err := m.store.HighScore(gameID, string(tier))
	if err != nil {
		return 0
	}
	return best
}

// Selected returns the selected run, or nil if none selected.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// WantsSettings returns true if user requested the settings screen.
func (m MenuModel) WantsSettings() bool {
	return m.openSettings
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// centerStyled centers plain text and styles only the text itself.
func centerStyled(style lipgloss.Style, text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return style.Render(text)
	}
	return strings.Repeat(" ", (width-n)/2) + style.Render(text)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       MenuSelection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	WantsSettings   bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, difficulties []config.DifficultyProfile, initial MenuSelection, theme Theme) (MenuResult, error) {
	model := NewMenuModel(store, cfg, difficulties, initial, theme)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config:    m.Config(),
		Selection: m.current(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.WantsSettings():
		result.WantsSettings = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	}

	return result, nil
}
