package config

// Graphics quality levels.
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
)

// Settings are the player preferences persisted between sessions.
type Settings struct {
	Volume          int    `yaml:"volume"` // 0..100
	GraphicsQuality string `yaml:"graphics_quality"`
	ShowFPS         bool   `yaml:"show_fps"`
}

// DefaultSettings returns the default player preferences.
func DefaultSettings() Settings {
	return Settings{
		Volume:          30,
		GraphicsQuality: QualityMedium,
		ShowFPS:         false,
	}
}

// Normalize clamps the volume and replaces an unknown quality with medium.
func (s Settings) Normalize() Settings {
	if s.Volume < 0 {
		s.Volume = 0
	}
	if s.Volume > 100 {
		s.Volume = 100
	}
	switch s.GraphicsQuality {
	case QualityLow, QualityMedium, QualityHigh:
	default:
		s.GraphicsQuality = QualityMedium
	}
	return s
}

// ShowParticles reports whether cosmetic particles should be drawn.
func (s Settings) ShowParticles() bool {
	return s.GraphicsQuality != QualityLow
}
