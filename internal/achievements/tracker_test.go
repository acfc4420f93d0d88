package achievements

import (
	"errors"
	"testing"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
)

func quietConfig() config.DinoConfig {
	cfg := config.DefaultDinoConfig()
	cfg.Spawn.BaseInterval = 1e9
	cfg.Spawn.MinInterval = 1e9
	cfg.Patterns.Enabled = false
	return cfg
}

func TestScore100UnlocksOnceOnEasy(t *testing.T) {
	tracker := NewTracker(60)
	s := sim.New(quietConfig(), "easy", "dino", sim.NewSource(1), tracker)

	unlocks := 0
	for s.Score() < 200 {
		res := s.Tick()
		for _, id := range res.NewlyUnlocked {
			if id == Score100 {
				unlocks++
				if res.Score != 100 {
					t.Errorf("score100 unlocked at score %d", res.Score)
				}
			}
		}
	}
	if unlocks != 1 {
		t.Fatalf("score100 unlock signals = %d, expected 1", unlocks)
	}

	a, ok := tracker.Progress(Score100)
	if !ok {
		t.Fatal("score100 missing from tracker")
	}
	if a.Progress != 100 || a.Target != 100 || !a.Unlocked {
		t.Errorf("score100 = progress %d target %d unlocked %v", a.Progress, a.Target, a.Unlocked)
	}
}

func TestProgressIsMonotonicAndCapped(t *testing.T) {
	tracker := NewTracker(60)
	tracker.OnComboChanged(7)
	tracker.OnComboChanged(0)

	a, _ := tracker.Progress(Combo10)
	if a.Progress != 7 {
		t.Errorf("combo10 progress = %d after reset, expected 7", a.Progress)
	}

	tracker.OnComboChanged(12)
	a, _ = tracker.Progress(Combo10)
	if !a.Unlocked || a.Progress != 10 {
		t.Errorf("combo10 = %+v, expected unlocked at 10", a)
	}
	b, _ := tracker.Progress(Combo25)
	if b.Unlocked || b.Progress != 12 {
		t.Errorf("combo25 = %+v, expected locked at 12", b)
	}
}

func TestCumulativeCounters(t *testing.T) {
	tracker := NewTracker(60)
	for i := 0; i < 100; i++ {
		tracker.OnJump()
	}
	got := tracker.TakeUnlocked()
	want := []string{FirstJump, Jumper}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("TakeUnlocked() = %v, expected %v", got, want)
	}
	if again := tracker.TakeUnlocked(); len(again) != 0 {
		t.Errorf("second TakeUnlocked() = %v, expected empty", again)
	}
	if tracker.Totals().Jumps != 100 {
		t.Errorf("Totals().Jumps = %d", tracker.Totals().Jumps)
	}
}

func TestPowerUserCountsPerSession(t *testing.T) {
	tracker := NewTracker(60)
	medium := config.DefaultDinoConfig().Difficulty("medium")

	tracker.OnSessionStarted(medium)
	for i := 0; i < 6; i++ {
		tracker.OnPowerUpCollected(sim.PowerUpShield)
	}
	tracker.OnSessionStarted(medium)
	for i := 0; i < 6; i++ {
		tracker.OnPowerUpCollected(sim.PowerUpShield)
	}
	a, _ := tracker.Progress(PowerUser)
	if a.Unlocked || a.Progress != 6 {
		t.Errorf("powerUser = %+v, expected locked at 6", a)
	}
}

func TestGameOverAchievements(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	tests := []struct {
		name   string
		tier   string
		score  int
		unlock string
	}{
		{"hard completes", "hard", 10, HardcoreGamer},
		{"insane 1000", "insane", 1200, InsanePlayer},
		{"insane short", "insane", 999, ""},
		{"medium", "medium", 5000, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker(60)
			tracker.OnGameOver(sim.SessionStats{Score: tt.score, Ticks: 120, MaxCombo: 4}, cfg.Difficulty(tt.tier))

			got := tracker.TakeUnlocked()
			if tt.unlock == "" {
				if len(got) != 0 {
					t.Errorf("unexpected unlocks %v", got)
				}
			} else if len(got) != 1 || got[0] != tt.unlock {
				t.Errorf("unlocks = %v, expected [%s]", got, tt.unlock)
			}

			totals := tracker.Totals()
			if totals.GamesPlayed != 1 || totals.TotalScore != tt.score || totals.PlayTimeSeconds != 2 || totals.LongestCombo != 4 {
				t.Errorf("totals = %+v", totals)
			}
		})
	}
}

func TestMarathonerFromPlayTime(t *testing.T) {
	tracker := NewTracker(60)
	medium := config.DefaultDinoConfig().Difficulty("medium")
	for i := 0; i < 10; i++ {
		tracker.OnGameOver(sim.SessionStats{Ticks: 60 * 60}, medium)
	}
	a, _ := tracker.Progress(Marathoner)
	if !a.Unlocked {
		t.Errorf("marathoner = %+v after 600s", a)
	}
}

func TestSnapshotRestore(t *testing.T) {
	tracker := NewTracker(60)
	tracker.OnJump()
	tracker.OnDuck()
	tracker.OnNightModeEntered()
	snap := tracker.Snapshot()

	restored := NewTracker(60)
	restored.Restore(snap)

	if restored.UnlockedCount() != 2 {
		t.Errorf("UnlockedCount() = %d, expected 2", restored.UnlockedCount())
	}
	if restored.TotalCount() != len(Catalog) || restored.TotalCount() != 17 {
		t.Errorf("TotalCount() = %d", restored.TotalCount())
	}
	if restored.Totals() != tracker.Totals() {
		t.Errorf("totals = %+v, expected %+v", restored.Totals(), tracker.Totals())
	}
	if ids := restored.TakeUnlocked(); len(ids) != 0 {
		t.Errorf("restore reported unlocks %v", ids)
	}
	d, _ := restored.Progress(Ducker)
	if d.Progress != 1 || d.Unlocked {
		t.Errorf("ducker = %+v", d)
	}

	// Already unlocked achievements do not fire again.
	restored.OnJump()
	if ids := restored.TakeUnlocked(); len(ids) != 0 {
		t.Errorf("re-unlocked %v", ids)
	}
}

func TestMergeNeverLowersProgress(t *testing.T) {
	tracker := NewTracker(60)
	for range 30 {
		tracker.OnJump()
	}

	tracker.Merge(Snapshot{
		Achievements: map[string]Progress{
			Jumper: {Progress: 10},
			Ducker: {Progress: 100, Unlocked: true},
		},
		Totals: Totals{GamesPlayed: 5, Jumps: 90},
	})

	if a, _ := tracker.Progress(Jumper); a.Progress != 30 {
		t.Errorf("jumper progress = %d, expected 30", a.Progress)
	}
	if a, _ := tracker.Progress(Ducker); !a.Unlocked {
		t.Error("merged unlock was lost")
	}
	if got := tracker.Totals(); got.GamesPlayed != 5 || got.Jumps != 90 {
		t.Errorf("totals = %+v, expected the stored totals", got)
	}
	if ids := tracker.TakeUnlocked(); len(ids) != 1 || ids[0] != FirstJump {
		t.Errorf("TakeUnlocked() = %v, expected only the local firstJump", ids)
	}
}

func TestRunTotals(t *testing.T) {
	tracker := NewTracker(30)
	got := tracker.RunTotals(sim.SessionStats{Score: 80, Jumps: 2, Ducks: 1, ObstaclesAvoided: 6, MaxCombo: 4, Ticks: 95})
	expected := Totals{GamesPlayed: 1, TotalScore: 80, Jumps: 2, Ducks: 1, ObstaclesAvoided: 6, LongestCombo: 4, PlayTimeSeconds: 3}
	if got != expected {
		t.Errorf("RunTotals() = %+v, expected %+v", got, expected)
	}

	sum := Totals{GamesPlayed: 1, LongestCombo: 9}.Add(got)
	if sum.GamesPlayed != 2 || sum.LongestCombo != 9 || sum.TotalScore != 80 {
		t.Errorf("Add() = %+v", sum)
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup(Marathoner)
	if !ok || d.Target != 600 {
		t.Errorf("Lookup(marathoner) = %+v, %v", d, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup found unknown id")
	}
}

type memStore struct {
	snap    Snapshot
	runs    []sim.SessionStats
	tiers   []config.DifficultyTier
	saveErr error
}

func (m *memStore) LoadSnapshot(string) (Snapshot, error) { return m.snap, nil }

func (m *memStore) SaveRun(_ string, run Run, snap Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, run.Stats)
	m.tiers = append(m.tiers, run.Difficulty)
	totals := m.snap.Totals.Add(run.Totals)
	m.snap = snap
	m.snap.Totals = totals
	return nil
}

func TestRecorderSavesAfterTracker(t *testing.T) {
	store := &memStore{}
	tracker := NewTracker(60)
	events := Attach(tracker, store, "dino", nil)
	hard := config.DefaultDinoConfig().Difficulty("hard")

	events.OnGameOver(sim.SessionStats{Score: 42, Ticks: 60}, hard)

	if len(store.runs) != 1 || store.runs[0].Score != 42 || store.tiers[0] != config.DifficultyHard {
		t.Fatalf("runs = %+v tiers = %v", store.runs, store.tiers)
	}
	if store.snap.Totals.GamesPlayed != 1 {
		t.Errorf("saved snapshot predates the run: %+v", store.snap.Totals)
	}
	if !store.snap.Achievements[HardcoreGamer].Unlocked {
		t.Error("saved snapshot missing hardcoreGamer")
	}

	restored := NewTracker(60)
	if err := Load(store, "dino", restored); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if restored.UnlockedCount() != 1 {
		t.Errorf("UnlockedCount() = %d after Load", restored.UnlockedCount())
	}
}

func TestRecorderSwallowsSaveErrors(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	r := NewRecorder(store, NewTracker(60), "dino", nil)
	r.OnGameOver(sim.SessionStats{Score: 1}, config.DefaultDinoConfig().Difficulty("easy"))
	if len(store.runs) != 0 {
		t.Error("failed save recorded a run")
	}
}
