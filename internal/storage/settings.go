package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dinorun/internal/config"
)

const settingsKey = "player"

// LoadSettings returns the saved player settings, or the defaults when none
// were saved.
func (s *Store) LoadSettings() (config.Settings, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", settingsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return config.DefaultSettings(), nil
	}
	if err != nil {
		return config.DefaultSettings(), fmt.Errorf("storage: cannot query settings: %w", err)
	}

	settings := config.DefaultSettings()
	if err := yaml.Unmarshal([]byte(raw), &settings); err != nil {
		return config.DefaultSettings(), fmt.Errorf("storage: cannot decode settings: %w", err)
	}
	return settings.Normalize(), nil
}

// SaveSettings stores the player settings.
func (s *Store) SaveSettings(settings config.Settings) error {
	data, err := yaml.Marshal(settings.Normalize())
	if err != nil {
		return fmt.Errorf("storage: cannot encode settings: %w", err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		settingsKey, string(data),
	); err != nil {
		return fmt.Errorf("storage: cannot save settings: %w", err)
	}
	return nil
}
