package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinorun/internal/config"
)

// Theme contains the styles used around the playfield: menus, the status
// bar and notices.
type Theme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuControls    lipgloss.Style

	// Status bar styles
	StatusLabel lipgloss.Style
	StatusValue lipgloss.Style
	StatusHint  lipgloss.Style
	Notice      lipgloss.Style
	Error       lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true), // Lime green
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuControls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		StatusLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusValue: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		StatusHint:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// NeonTheme returns a brighter theme for high graphics quality.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true)      // Neon green
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true) // Neon pink
	theme.Notice = lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true)          // Neon cyan
	return theme
}

// MonochromeTheme returns a grayscale theme for low graphics quality.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Notice = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Underline(true)
	return theme
}

// ThemeFor picks the theme matching the graphics quality setting.
func ThemeFor(settings config.Settings) Theme {
	switch settings.Normalize().GraphicsQuality {
	case config.QualityHigh:
		return NeonTheme()
	case config.QualityLow:
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}
