// Package savedata keeps the window front-end's persistent state (player
// settings, best scores and achievement progress) in gdata, which maps to
// files on desktop and to localStorage in a browser.
package savedata

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dinorun/internal/achievements"
	"github.com/vovakirdan/dinorun/internal/config"
)

// Storage layout: object -> property.
const (
	settingsObject     = "settings"
	settingsProperty   = "player"
	scoresObject       = "scores"
	achievementsObject = "achievements"
)

var _ achievements.Store = (*SaveData)(nil)

// SaveData reads and writes YAML payloads through a gdata manager. With a
// nil manager everything lives in memory for the lifetime of the process.
type SaveData struct {
	mu      sync.Mutex
	manager *gdata.Manager
	mem     map[string][]byte
}

// Open opens the save data of appName. When the platform storage cannot be
// opened the returned SaveData works in memory and the error says why.
func Open(appName string) (*SaveData, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return New(nil), fmt.Errorf("savedata: cannot open %s: %w", appName, err)
	}
	return New(m), nil
}

// New wraps a gdata manager. A nil manager selects memory-only mode.
func New(m *gdata.Manager) *SaveData {
	return &SaveData{manager: m, mem: make(map[string][]byte)}
}

// Persistent reports whether data survives the process.
func (s *SaveData) Persistent() bool {
	return s.manager != nil
}

func (s *SaveData) load(object, prop string, out any) (bool, error) {
	var data []byte
	if s.manager == nil {
		var ok bool
		if data, ok = s.mem[object+"/"+prop]; !ok {
			return false, nil
		}
	} else {
		if !s.manager.ObjectPropExists(object, prop) {
			return false, nil
		}
		var err error
		if data, err = s.manager.LoadObjectProp(object, prop); err != nil {
			return false, fmt.Errorf("savedata: cannot load %s/%s: %w", object, prop, err)
		}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("savedata: cannot decode %s/%s: %w", object, prop, err)
	}
	return true, nil
}

func (s *SaveData) save(object, prop string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("savedata: cannot encode %s/%s: %w", object, prop, err)
	}
	if s.manager == nil {
		s.mem[object+"/"+prop] = data
		return nil
	}
	if err := s.manager.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("savedata: cannot save %s/%s: %w", object, prop, err)
	}
	return nil
}

// LoadSettings returns the saved settings, or the defaults when none exist.
func (s *SaveData) LoadSettings() (config.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := config.DefaultSettings()
	if _, err := s.load(settingsObject, settingsProperty, &settings); err != nil {
		return config.DefaultSettings(), err
	}
	return settings.Normalize(), nil
}

// SaveSettings stores the player settings.
func (s *SaveData) SaveSettings(settings config.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(settingsObject, settingsProperty, settings.Normalize())
}

// HighScore returns the best score of a game on a difficulty.
func (s *SaveData) HighScore(gameID string, tier config.DifficultyTier) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.scores(gameID)
	if err != nil {
		return 0, err
	}
	return scores[tier], nil
}

func (s *SaveData) scores(gameID string) (map[config.DifficultyTier]int, error) {
	scores := make(map[config.DifficultyTier]int)
	if _, err := s.load(scoresObject, gameID, &scores); err != nil {
		return scores, err
	}
	return scores, nil
}

// LoadSnapshot returns the saved achievement progress of a game.
func (s *SaveData) LoadSnapshot(gameID string) (achievements.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(gameID)
}

func (s *SaveData) snapshot(gameID string) (achievements.Snapshot, error) {
	var snap achievements.Snapshot
	if _, err := s.load(achievementsObject, gameID, &snap); err != nil {
		return achievements.Snapshot{Achievements: make(map[string]achievements.Progress)}, err
	}
	if snap.Achievements == nil {
		snap.Achievements = make(map[string]achievements.Progress)
	}
	return snap, nil
}

// SaveRun raises the best score of the run's difficulty, merges the
// snapshot's progress into the saved one and adds the run to the totals.
// Saved progress never goes down.
func (s *SaveData) SaveRun(gameID string, run achievements.Run, snap achievements.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, difficulty := run.Stats, run.Difficulty

	scores, err := s.scores(gameID)
	if err != nil {
		return err
	}
	if stats.Score > scores[difficulty] {
		scores[difficulty] = stats.Score
		if err := s.save(scoresObject, gameID, scores); err != nil {
			return err
		}
	}

	saved, err := s.snapshot(gameID)
	if err != nil {
		return err
	}
	for id, p := range snap.Achievements {
		old := saved.Achievements[id]
		saved.Achievements[id] = achievements.Progress{
			Progress: max(old.Progress, p.Progress),
			Unlocked: old.Unlocked || p.Unlocked,
		}
	}
	saved.Totals = saved.Totals.Add(run.Totals)
	return s.save(achievementsObject, gameID, saved)
}
