package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/dinorun/internal/achievements"
	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []struct {
		diff  string
		score int
	}{
		{"easy", 100},
		{"easy", 50},
		{"hard", 200},
		{"medium", 75},
	} {
		if _, err := store.SaveScore("dino", e.diff, e.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("dino_classic", "easy", 999); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	all, err := store.TopScores("dino", "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(all))
	}
	if all[0].Score != 200 || all[0].Difficulty != "hard" {
		t.Errorf("Expected highest score 200 on hard, got %d on %s", all[0].Score, all[0].Difficulty)
	}

	easy, err := store.TopScores("dino", "easy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(easy) != 2 || easy[0].Score != 100 || easy[1].Score != 50 {
		t.Errorf("easy scores = %+v", easy)
	}

	limited, err := store.TopScores("dino", "", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("dino", "")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}

	store.SaveScore("dino", "easy", 300)
	store.SaveScore("dino", "insane", 120)

	tests := []struct {
		diff string
		want int
	}{
		{"", 300},
		{"easy", 300},
		{"insane", 120},
		{"hard", 0},
	}
	for _, tt := range tests {
		got, err := store.HighScore("dino", tt.diff)
		if err != nil {
			t.Fatalf("HighScore(%q) failed: %v", tt.diff, err)
		}
		if got != tt.want {
			t.Errorf("HighScore(%q) = %d, expected %d", tt.diff, got, tt.want)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("dino", "easy", 100)
	store.SaveScore("dino_classic", "easy", 100)

	if err := store.ClearScores("dino"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("dino", "", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	other, _ := store.TopScores("dino_classic", "", 10)
	if len(other) != 1 {
		t.Errorf("Clear removed scores of another game")
	}
}

func TestStoreRunsAndSnapshot(t *testing.T) {
	store := openTestStore(t)

	tracker := achievements.NewTracker(60)
	tracker.OnJump()
	tracker.OnGameOver(sim.SessionStats{Score: 150, Jumps: 1, Ticks: 600, MaxCombo: 3}, config.DefaultDinoConfig().Difficulty("hard"))

	stats := sim.SessionStats{Score: 150, Jumps: 1, ObstaclesAvoided: 4, MaxCombo: 3, Ticks: 600}
	run := achievements.Run{Difficulty: config.DifficultyHard, Stats: stats, Totals: tracker.RunTotals(stats)}
	if err := store.SaveRun("dino", run, tracker.Snapshot()); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("dino", 5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Stats != stats || runs[0].Difficulty != "hard" {
		t.Fatalf("runs = %+v", runs)
	}

	high, _ := store.HighScore("dino", "hard")
	if high != 150 {
		t.Errorf("SaveRun should record the score, high = %d", high)
	}

	snap, err := store.LoadSnapshot("dino")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if !snap.Achievements[achievements.FirstJump].Unlocked || !snap.Achievements[achievements.HardcoreGamer].Unlocked {
		t.Errorf("snapshot achievements = %+v", snap.Achievements)
	}
	if snap.Totals != run.Totals {
		t.Errorf("totals = %+v, expected %+v", snap.Totals, run.Totals)
	}
}

func TestStoreSnapshotNeverRegresses(t *testing.T) {
	store := openTestStore(t)
	medium := config.DifficultyMedium

	first := achievements.Snapshot{Achievements: map[string]achievements.Progress{
		achievements.Jumper: {Progress: 40},
		achievements.Ducker: {Progress: 50, Unlocked: true},
	}}
	second := achievements.Snapshot{Achievements: map[string]achievements.Progress{
		achievements.Jumper: {Progress: 10},
		achievements.Ducker: {Progress: 3},
	}}
	run := achievements.Run{Difficulty: medium}
	if err := store.SaveRun("dino", run, first); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.SaveRun("dino", run, second); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	snap, err := store.LoadSnapshot("dino")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if snap.Achievements[achievements.Jumper].Progress != 40 {
		t.Errorf("jumper progress regressed to %d", snap.Achievements[achievements.Jumper].Progress)
	}
	if !snap.Achievements[achievements.Ducker].Unlocked {
		t.Error("ducker unlock was lost")
	}
}

func TestStoreTotalsAccumulateAcrossSessions(t *testing.T) {
	store := openTestStore(t)
	medium := config.DefaultDinoConfig().Difficulty("medium")

	// Two sessions load the same store, then finish one run each
	first := achievements.NewTracker(60)
	second := achievements.NewTracker(60)
	for _, tr := range []*achievements.Tracker{first, second} {
		if err := achievements.Load(store, "dino", tr); err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
	}
	firstEvents := achievements.Attach(first, store, "dino", nil)
	secondEvents := achievements.Attach(second, store, "dino", nil)
	firstEvents.OnGameOver(sim.SessionStats{Score: 100, Jumps: 4, Ticks: 600, MaxCombo: 7}, medium)
	secondEvents.OnGameOver(sim.SessionStats{Score: 50, Ducks: 2, Ticks: 300, MaxCombo: 3}, medium)

	totals, err := store.Totals("dino")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	expected := achievements.Totals{GamesPlayed: 2, TotalScore: 150, Jumps: 4, Ducks: 2, LongestCombo: 7, PlayTimeSeconds: 15}
	if totals != expected {
		t.Errorf("Totals() = %+v, expected %+v", totals, expected)
	}

	// The next session of the first player sees both runs
	firstEvents.OnSessionStarted(medium)
	if got := first.Totals(); got != expected {
		t.Errorf("tracker totals after session start = %+v, expected %+v", got, expected)
	}
}

func TestStoreEmptySnapshot(t *testing.T) {
	store := openTestStore(t)
	snap, err := store.LoadSnapshot("dino")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if len(snap.Achievements) != 0 || snap.Totals != (achievements.Totals{}) {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestStoreSettings(t *testing.T) {
	store := openTestStore(t)

	got, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != config.DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, expected defaults", got)
	}

	want := config.Settings{Volume: 80, GraphicsQuality: config.QualityHigh, ShowFPS: true}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() overwrite failed: %v", err)
	}
	got, err = store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, expected %+v", got, want)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("dino", "easy", 100)
	store.SaveScore("dino", "hard", 200)
	store.SaveScore("dino", "hard", 300)

	stats, err := store.GetGameStats("dino")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}

	if stats.GamesCount != 3 {
		t.Errorf("Expected 3 games, got %d", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("Expected high score 300, got %d", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected avg score 200, got %f", stats.AvgScore)
	}
	if stats.TotalScore != 600 {
		t.Errorf("Expected total score 600, got %d", stats.TotalScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["dino"].GamesCount != 3 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
}
