package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/storage"
)

// Settings rows
const (
	settingVolume = iota
	settingQuality
	settingFPS
	settingSave
	settingCount
)

const volumeStep = 10

var qualities = []string{config.QualityLow, config.QualityMedium, config.QualityHigh}

// SettingsModel edits the player settings.
type SettingsModel struct {
	cursor    int
	settings  config.Settings
	width     int
	height    int
	store     *storage.Store
	keyMapper *KeyMapper
	err       error
	saved     bool
	quitting  bool
	back      bool
}

// NewSettingsModel creates a settings editor starting from current.
func NewSettingsModel(store *storage.Store, current config.Settings, width, height int) SettingsModel {
	return SettingsModel{
		settings:  current.Normalize(),
		width:     width,
		height:    height,
		store:     store,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SettingsModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < settingCount-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.adjust(-1)
	case MenuActionRight:
		m.adjust(1)
	case MenuActionSelect:
		if m.cursor != settingSave {
			m.adjust(1)
			return m, nil
		}
		if m.store != nil {
			if err := m.store.SaveSettings(m.settings); err != nil {
				m.err = err
				return m, nil
			}
		}
		m.saved = true
		return m, tea.Quit
	}
	return m, nil
}

// adjust changes the value under the cursor by one step in direction dir.
func (m *SettingsModel) adjust(dir int) {
	switch m.cursor {
	case settingVolume:
		m.settings.Volume = core.Clamp(m.settings.Volume+dir*volumeStep, 0, 100)
	case settingQuality:
		i := 0
		for j, q := range qualities {
			if q == m.settings.GraphicsQuality {
				i = j
			}
		}
		m.settings.GraphicsQuality = qualities[(i+dir+len(qualities))%len(qualities)]
	case settingFPS:
		m.settings.ShowFPS = !m.settings.ShowFPS
	}
}

// View renders the settings editor.
func (m SettingsModel) View() string {
	if m.quitting || m.back || m.saved {
		return ""
	}

	theme := ThemeFor(m.settings)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(theme.MenuTitle, "S E T T I N G S", m.width))
	b.WriteString("\n\n")

	fps := "off"
	if m.settings.ShowFPS {
		fps = "on"
	}
	rows := []string{
		fmt.Sprintf("Volume:   < %3d >", m.settings.Volume),
		fmt.Sprintf("Graphics: < %s >", m.settings.GraphicsQuality),
		fmt.Sprintf("Show FPS: < %s >", fps),
		"Save",
	}
	for i, row := range rows {
		cursor := "  "
		style := theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.MenuItemActive
		}
		b.WriteString(centerStyled(style, cursor+row, m.width))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(centerStyled(theme.Error, "Cannot save: "+m.err.Error(), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(theme.MenuControls, "Left/Right: Change  |  Enter: Save  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Settings returns the edited settings.
func (m SettingsModel) Settings() config.Settings {
	return m.settings
}

// Saved returns true if the settings were stored.
func (m SettingsModel) Saved() bool {
	return m.saved
}

// IsQuitting returns true if user wants to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}

// RunSettings runs the settings editor. It returns the settings in effect
// afterwards and whether the user asked to quit entirely.
func RunSettings(store *storage.Store, current config.Settings, cfg core.RuntimeConfig) (config.Settings, bool, error) {
	model := NewSettingsModel(store, current, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return current, false, err
	}

	m, ok := finalModel.(SettingsModel)
	if !ok {
		return current, true, nil
	}
	if m.Saved() {
		return m.Settings(), false, nil
	}
	return current, m.IsQuitting(), nil
}
