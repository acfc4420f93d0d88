// Package tui provides the Bubble Tea integration for the runner.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dinorun/internal/config"
)

// TickMsg is sent to trigger a game simulation tick. ID names the model
// that scheduled it so a stale tick chain from a closed game is dropped.
type TickMsg struct {
	At time.Time
	ID uint64
}

var tickIDs atomic.Uint64

func nextTickID() uint64 {
	return tickIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, id uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, ID: id}
	})
}

// ConfigReloadedMsg carries a config file change picked up by the watcher.
type ConfigReloadedMsg struct {
	Config config.DinoConfig
}

// ConfigErrorMsg reports a config file that failed to load.
type ConfigErrorMsg struct {
	Err error
}

// watchCmd waits for the next watcher event. It returns nil once the
// watcher is closed.
func watchCmd(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Configs:
			if !ok {
				return nil
			}
			return ConfigReloadedMsg{Config: cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		case <-w.Done():
			return nil
		}
	}
}
