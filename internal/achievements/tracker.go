package achievements

import (
	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
)

// Achievement is a catalog entry with its progress.
type Achievement struct {
	Definition
	Progress int
	Unlocked bool
}

// Totals are the cumulative statistics across every run.
type Totals struct {
	GamesPlayed      int `yaml:"games_played"`
	TotalScore       int `yaml:"total_score"`
	Jumps            int `yaml:"jumps"`
	Ducks            int `yaml:"ducks"`
	ObstaclesAvoided int `yaml:"obstacles_avoided"`
	LongestCombo     int `yaml:"longest_combo"`
	PlayTimeSeconds  int `yaml:"play_time_seconds"`
}

// Add folds another set of totals in. LongestCombo keeps the larger value.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		GamesPlayed:      t.GamesPlayed + o.GamesPlayed,
		TotalScore:       t.TotalScore + o.TotalScore,
		Jumps:            t.Jumps + o.Jumps,
		Ducks:            t.Ducks + o.Ducks,
		ObstaclesAvoided: t.ObstaclesAvoided + o.ObstaclesAvoided,
		LongestCombo:     max(t.LongestCombo, o.LongestCombo),
		PlayTimeSeconds:  t.PlayTimeSeconds + o.PlayTimeSeconds,
	}
}

// Progress is the persisted state of one achievement.
type Progress struct {
	Progress int  `yaml:"progress"`
	Unlocked bool `yaml:"unlocked"`
}

// Snapshot is everything the tracker needs to resume.
type Snapshot struct {
	Achievements map[string]Progress `yaml:"achievements"`
	Totals       Totals              `yaml:"totals"`
}

// Tracker turns simulation events into achievement progress. Progress only
// grows while an achievement is locked and is capped at its target.
type Tracker struct {
	items    map[string]*Achievement
	totals   Totals
	tickRate int

	difficulty      config.DifficultyProfile
	sessionPowerUps int
	unlocked        []string
}

var _ sim.Events = (*Tracker)(nil)
var _ sim.UnlockSource = (*Tracker)(nil)

// NewTracker creates a tracker with nothing unlocked. tickRate converts
// simulated ticks into play time.
func NewTracker(tickRate int) *Tracker {
	if tickRate <= 0 {
		tickRate = 60
	}
	t := &Tracker{
		items:    make(map[string]*Achievement, len(Catalog)),
		tickRate: tickRate,
	}
	for _, d := range Catalog {
		t.items[d.ID] = &Achievement{Definition: d}
	}
	return t
}

// update raises progress for id and records an unlock when the target is met.
func (t *Tracker) update(id string, value int) {
	a, ok := t.items[id]
	if !ok || a.Unlocked {
		return
	}
	if value > a.Target {
		value = a.Target
	}
	if value > a.Progress {
		a.Progress = value
	}
	if a.Progress >= a.Target {
		a.Unlocked = true
		t.unlocked = append(t.unlocked, id)
	}
}

func (t *Tracker) OnSessionStarted(d config.DifficultyProfile) {
	t.difficulty = d
	t.sessionPowerUps = 0
}

func (t *Tracker) OnJump() {
	t.totals.Jumps++
	t.update(FirstJump, 1)
	t.update(Jumper, t.totals.Jumps)
}

func (t *Tracker) OnDuck() {
	t.totals.Ducks++
	t.update(Ducker, t.totals.Ducks)
}

func (t *Tracker) OnObstacleAvoided() {
	t.totals.ObstaclesAvoided++
	t.update(Survivor, t.totals.ObstaclesAvoided)
}

func (t *Tracker) OnComboChanged(value int) {
	t.update(Combo10, value)
	t.update(Combo25, value)
}

func (t *Tracker) OnScoreChanged(value int) {
	t.update(Score100, value)
	t.update(Score500, value)
	t.update(Score1000, value)
	t.update(Score5000, value)
}

func (t *Tracker) OnPowerUpCollected(sim.PowerUpKind) {
	t.sessionPowerUps++
	t.update(PowerUser, t.sessionPowerUps)
}

func (t *Tracker) OnMaxSpeedReached()         { t.update(SpeedDemon, 1) }
func (t *Tracker) OnNightModeEntered()        { t.update(NightRunner, 1) }
func (t *Tracker) OnPerfectPatternCompleted() { t.update(PerfectPattern, 1) }

// OnGameOver folds the run into the totals and checks the end-of-run
// achievements.
func (t *Tracker) OnGameOver(stats sim.SessionStats, d config.DifficultyProfile) {
	run := t.RunTotals(stats)
	// Per-event counters were already folded in as they happened
	t.totals.GamesPlayed += run.GamesPlayed
	t.totals.TotalScore += run.TotalScore
	t.totals.PlayTimeSeconds += run.PlayTimeSeconds
	t.totals.LongestCombo = max(t.totals.LongestCombo, run.LongestCombo)

	switch {
	case d.Tier == config.DifficultyHard:
		t.update(HardcoreGamer, 1)
	case d.Tier == config.DifficultyInsane && stats.Score >= 1000:
		t.update(InsanePlayer, stats.Score)
	}
	t.update(Marathoner, t.totals.PlayTimeSeconds)
}

// RunTotals is the share of one finished run in the cumulative totals.
func (t *Tracker) RunTotals(stats sim.SessionStats) Totals {
	return Totals{
		GamesPlayed:      1,
		TotalScore:       stats.Score,
		Jumps:            stats.Jumps,
		Ducks:            stats.Ducks,
		ObstaclesAvoided: stats.ObstaclesAvoided,
		LongestCombo:     stats.MaxCombo,
		PlayTimeSeconds:  stats.Ticks / t.tickRate,
	}
}

// TakeUnlocked returns the ids unlocked since the last call.
func (t *Tracker) TakeUnlocked() []string {
	ids := t.unlocked
	t.unlocked = nil
	return ids
}

// Progress returns the state of one achievement.
func (t *Tracker) Progress(id string) (Achievement, bool) {
	a, ok := t.items[id]
	if !ok {
		return Achievement{}, false
	}
	return *a, true
}

// Achievements returns every achievement in catalog order.
func (t *Tracker) Achievements() []Achievement {
	out := make([]Achievement, 0, len(Catalog))
	for _, d := range Catalog {
		out = append(out, *t.items[d.ID])
	}
	return out
}

// UnlockedCount returns how many achievements are unlocked.
func (t *Tracker) UnlockedCount() int {
	n := 0
	for _, a := range t.items {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// TotalCount returns the catalog size.
func (t *Tracker) TotalCount() int {
	return len(Catalog)
}

// Totals returns the cumulative statistics.
func (t *Tracker) Totals() Totals {
	return t.totals
}

// Snapshot captures progress and totals for persistence.
func (t *Tracker) Snapshot() Snapshot {
	snap := Snapshot{
		Achievements: make(map[string]Progress, len(t.items)),
		Totals:       t.totals,
	}
	for id, a := range t.items {
		if a.Progress == 0 && !a.Unlocked {
			continue
		}
		snap.Achievements[id] = Progress{Progress: a.Progress, Unlocked: a.Unlocked}
	}
	return snap
}

// Restore replaces progress and totals with a snapshot. Unknown ids are
// ignored; a restored unlock is not reported by TakeUnlocked.
func (t *Tracker) Restore(snap Snapshot) {
	for _, a := range t.items {
		a.Progress = 0
		a.Unlocked = false
	}
	for id, p := range snap.Achievements {
		a, ok := t.items[id]
		if !ok {
			continue
		}
		a.Progress = min(p.Progress, a.Target)
		a.Unlocked = p.Unlocked || a.Progress >= a.Target
	}
	t.totals = snap.Totals
	t.unlocked = nil
}

// Merge catches up with progress saved elsewhere, such as another session
// sharing the store. Progress keeps the larger value, unlocks are kept and
// the totals are taken from snap. Merged unlocks are not reported.
func (t *Tracker) Merge(snap Snapshot) {
	for id, p := range snap.Achievements {
		a, ok := t.items[id]
		if !ok {
			continue
		}
		a.Progress = max(a.Progress, min(p.Progress, a.Target))
		a.Unlocked = a.Unlocked || p.Unlocked || a.Progress >= a.Target
	}
	t.totals = snap.Totals
}
