package savedata

import (
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/vovakirdan/dinorun/internal/achievements"
	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
)

func TestSettingsDefaultsAndRoundTrip(t *testing.T) {
	s := New(nil)

	got, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if got != config.DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, expected defaults", got)
	}

	want := config.Settings{Volume: 150, GraphicsQuality: "ultra", ShowFPS: true}
	if err := s.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}
	got, err = s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	expected := config.Settings{Volume: 100, GraphicsQuality: config.QualityMedium, ShowFPS: true}
	if got != expected {
		t.Errorf("LoadSettings() = %+v, expected %+v", got, expected)
	}
}

func TestSaveRunHighScorePerDifficulty(t *testing.T) {
	s := New(nil)

	runs := []struct {
		tier  config.DifficultyTier
		score int
	}{
		{config.DifficultyEasy, 120},
		{config.DifficultyEasy, 80},
		{config.DifficultyHard, 300},
		{config.DifficultyEasy, 200},
	}
	for _, r := range runs {
		if err := s.SaveRun("dino", runOf(r.tier, sim.SessionStats{Score: r.score}), achievements.Snapshot{}); err != nil {
			t.Fatalf("SaveRun() error: %v", err)
		}
	}

	tests := []struct {
		tier     config.DifficultyTier
		expected int
	}{
		{config.DifficultyEasy, 200},
		{config.DifficultyHard, 300},
		{config.DifficultyInsane, 0},
	}
	for _, tt := range tests {
		got, err := s.HighScore("dino", tt.tier)
		if err != nil {
			t.Fatalf("HighScore(%s) error: %v", tt.tier, err)
		}
		if got != tt.expected {
			t.Errorf("HighScore(%s) = %d, expected %d", tt.tier, got, tt.expected)
		}
	}

	if got, _ := s.HighScore("dino_classic", config.DifficultyEasy); got != 0 {
		t.Errorf("HighScore(dino_classic) = %d, expected 0", got)
	}
}

func TestSaveRunNeverRegressesProgress(t *testing.T) {
	s := New(nil)

	first := achievements.Snapshot{
		Achievements: map[string]achievements.Progress{
			achievements.Jumper:    {Progress: 60},
			achievements.FirstJump: {Progress: 1, Unlocked: true},
		},
	}
	second := achievements.Snapshot{
		Achievements: map[string]achievements.Progress{
			achievements.Jumper: {Progress: 20},
			achievements.Ducker: {Progress: 5},
		},
	}
	for _, snap := range []achievements.Snapshot{first, second} {
		if err := s.SaveRun("dino", runOf(config.DifficultyMedium, sim.SessionStats{}), snap); err != nil {
			t.Fatalf("SaveRun() error: %v", err)
		}
	}

	got, err := s.LoadSnapshot("dino")
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	expected := map[string]achievements.Progress{
		achievements.Jumper:    {Progress: 60},
		achievements.FirstJump: {Progress: 1, Unlocked: true},
		achievements.Ducker:    {Progress: 5},
	}
	for id, want := range expected {
		if got.Achievements[id] != want {
			t.Errorf("Achievements[%s] = %+v, expected %+v", id, got.Achievements[id], want)
		}
	}
}

func TestSaveRunAddsTotals(t *testing.T) {
	s := New(nil)

	// Two sessions with their own trackers share the save data
	first := achievements.NewTracker(60)
	second := achievements.NewTracker(60)
	medium := config.DefaultDinoConfig().Difficulty("medium")
	achievements.Attach(first, s, "dino", nil).OnGameOver(sim.SessionStats{Score: 100, Jumps: 3, Ticks: 600, MaxCombo: 4}, medium)
	achievements.Attach(second, s, "dino", nil).OnGameOver(sim.SessionStats{Score: 50, Jumps: 2, Ticks: 120, MaxCombo: 2}, medium)

	got, err := s.LoadSnapshot("dino")
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	expected := achievements.Totals{GamesPlayed: 2, TotalScore: 150, Jumps: 5, LongestCombo: 4, PlayTimeSeconds: 12}
	if got.Totals != expected {
		t.Errorf("Totals = %+v, expected %+v", got.Totals, expected)
	}
}

func TestLoadSnapshotEmpty(t *testing.T) {
	snap, err := New(nil).LoadSnapshot("dino")
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	if snap.Achievements == nil || len(snap.Achievements) != 0 {
		t.Errorf("LoadSnapshot() achievements = %v, expected empty map", snap.Achievements)
	}
}

func TestTrackerResumesFromSaveData(t *testing.T) {
	s := New(nil)

	tracker := achievements.NewTracker(60)
	tracker.OnJump()
	if err := s.SaveRun("dino", runOf(config.DifficultyMedium, sim.SessionStats{Jumps: 1}), tracker.Snapshot()); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}

	resumed := achievements.NewTracker(60)
	if err := achievements.Load(s, "dino", resumed); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	a, ok := resumed.Progress(achievements.FirstJump)
	if !ok || !a.Unlocked {
		t.Errorf("Progress(%s) = %+v, expected unlocked", achievements.FirstJump, a)
	}
}

func TestPersistentRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	m, err := gdata.Open(gdata.Config{AppName: "dinorun_savedata_test"})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	s := New(m)
	if !s.Persistent() {
		t.Fatal("Persistent() = false, expected true")
	}

	if err := s.SaveRun("dino", runOf(config.DifficultyInsane, sim.SessionStats{Score: 1234}), achievements.Snapshot{}); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}

	reopened := New(m)
	got, err := reopened.HighScore("dino", config.DifficultyInsane)
	if err != nil {
		t.Fatalf("HighScore() error: %v", err)
	}
	if got != 1234 {
		t.Errorf("HighScore() = %d, expected 1234", got)
	}
}

func runOf(tier config.DifficultyTier, stats sim.SessionStats) achievements.Run {
	return achievements.Run{Difficulty: tier, Stats: stats, Totals: achievements.NewTracker(60).RunTotals(stats)}
}
