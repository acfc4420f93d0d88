package sim

import "github.com/vovakirdan/dinorun/internal/config"

// Events receives semantic signals from the simulation. Hooks are called
// synchronously from inside Tick and the command methods and must not call
// back into the simulation.
type Events interface {
	OnSessionStarted(difficulty config.DifficultyProfile)
	OnJump()
	OnDuck()
	OnObstacleAvoided()
	OnComboChanged(value int)
	OnScoreChanged(value int)
	OnPowerUpCollected(kind PowerUpKind)
	OnMaxSpeedReached()
	OnNightModeEntered()
	OnPerfectPatternCompleted()
	OnGameOver(stats SessionStats, difficulty config.DifficultyProfile)
}

// UnlockSource is implemented by collaborators that unlock achievements.
// The simulation drains it once per tick into TickResult.NewlyUnlocked.
type UnlockSource interface {
	TakeUnlocked() []string
}

// NopEvents ignores every signal. Embed it to implement a subset of hooks.
type NopEvents struct{}

func (NopEvents) OnSessionStarted(config.DifficultyProfile)         {}
func (NopEvents) OnJump()                                           {}
func (NopEvents) OnDuck()                                           {}
func (NopEvents) OnObstacleAvoided()                                {}
func (NopEvents) OnComboChanged(int)                                {}
func (NopEvents) OnScoreChanged(int)                                {}
func (NopEvents) OnPowerUpCollected(PowerUpKind)                    {}
func (NopEvents) OnMaxSpeedReached()                                {}
func (NopEvents) OnNightModeEntered()                               {}
func (NopEvents) OnPerfectPatternCompleted()                        {}
func (NopEvents) OnGameOver(SessionStats, config.DifficultyProfile) {}

// Multi fans every signal out to each receiver in order.
func Multi(events ...Events) Events {
	out := make(multi, 0, len(events))
	for _, e := range events {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

type multi []Events

func (m multi) OnSessionStarted(d config.DifficultyProfile) {
	for _, e := range m {
		e.OnSessionStarted(d)
	}
}

func (m multi) OnJump() {
	for _, e := range m {
		e.OnJump()
	}
}

func (m multi) OnDuck() {
	for _, e := range m {
		e.OnDuck()
	}
}

func (m multi) OnObstacleAvoided() {
	for _, e := range m {
		e.OnObstacleAvoided()
	}
}

func (m multi) OnComboChanged(v int) {
	for _, e := range m {
		e.OnComboChanged(v)
	}
}

func (m multi) OnScoreChanged(v int) {
	for _, e := range m {
		e.OnScoreChanged(v)
	}
}

func (m multi) OnPowerUpCollected(k PowerUpKind) {
	for _, e := range m {
		e.OnPowerUpCollected(k)
	}
}

func (m multi) OnMaxSpeedReached() {
	for _, e := range m {
		e.OnMaxSpeedReached()
	}
}

func (m multi) OnNightModeEntered() {
	for _, e := range m {
		e.OnNightModeEntered()
	}
}

func (m multi) OnPerfectPatternCompleted() {
	for _, e := range m {
		e.OnPerfectPatternCompleted()
	}
}

func (m multi) OnGameOver(s SessionStats, d config.DifficultyProfile) {
	for _, e := range m {
		e.OnGameOver(s, d)
	}
}

// TakeUnlocked drains every member that is an UnlockSource.
func (m multi) TakeUnlocked() []string {
	var ids []string
	for _, e := range m {
		if src, ok := e.(UnlockSource); ok {
			ids = append(ids, src.TakeUnlocked()...)
		}
	}
	return ids
}

// SessionStats are the per-run counters, reset by Reset.
type SessionStats struct {
	Score             int `yaml:"score"`
	Jumps             int `yaml:"jumps"`
	Ducks             int `yaml:"ducks"`
	ObstaclesAvoided  int `yaml:"obstacles_avoided"`
	PowerUpsCollected int `yaml:"power_ups_collected"`
	MaxCombo          int `yaml:"max_combo"`
	FinalCombo        int `yaml:"final_combo"`
	Ticks             int `yaml:"ticks"`
}
