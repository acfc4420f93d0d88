// Package config provides YAML-based game configuration loading and
// the difficulty table for the dino runner.
package config

// DinoConfig contains all tuning for the Dino Runner simulation.
// Units are simulation units (pixels of the original playfield) and ticks.
type DinoConfig struct {
	Physics      DinoPhysics         `yaml:"physics"`
	Field        DinoField           `yaml:"field"`
	Player       DinoPlayer          `yaml:"player"`
	Spawn        DinoSpawn           `yaml:"spawn"`
	PowerUps     DinoPowerUps        `yaml:"power_ups"`
	Combo        DinoCombo           `yaml:"combo"`
	DayNight     DinoDayNight        `yaml:"day_night"`
	Patterns     DinoPatterns        `yaml:"patterns"`
	Difficulties []DifficultyProfile `yaml:"difficulties"`
	Variant      string              `yaml:"variant"` // "advanced" or "classic"
}

// DinoPhysics defines player and world motion.
type DinoPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpStrength float64 `yaml:"jump_strength"`
	BaseSpeed    float64 `yaml:"base_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"`
}

// DinoField defines the playfield dimensions. Entities spawn at x = Width.
type DinoField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DinoPlayer defines the player sprite placement and size.
type DinoPlayer struct {
	X          float64 `yaml:"x"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	DuckHeight float64 `yaml:"duck_height"`
}

// DinoSpawn defines obstacle and power-up spawn cadence.
type DinoSpawn struct {
	BaseInterval    float64 `yaml:"base_interval"`
	MinInterval     float64 `yaml:"min_interval"`
	SpeedFactor     float64 `yaml:"speed_factor"`
	FlyingChance    float64 `yaml:"flying_chance"`
	FlyingMinScore  int     `yaml:"flying_min_score"`
	FlyingWidth     float64 `yaml:"flying_width"`
	FlyingHeight    float64 `yaml:"flying_height"`
	PowerUpAttempt  float64 `yaml:"power_up_attempt"`
	PowerUpMinScore int     `yaml:"power_up_min_score"`

	// DifficultyGatedPowerUps applies the difficulty's power-up chance as a
	// second draw after PowerUpAttempt succeeds.
	DifficultyGatedPowerUps bool `yaml:"difficulty_gated_power_ups"`
}

// DinoPowerUps defines power-up size, placement and duration.
type DinoPowerUps struct {
	Duration int     `yaml:"duration"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	MinY     float64 `yaml:"min_y"`
	YRange   float64 `yaml:"y_range"`
}

// DinoCombo defines combo decay and score bonus.
type DinoCombo struct {
	DecayTicks  int     `yaml:"decay_ticks"`
	BonusFactor float64 `yaml:"bonus_factor"`
}

// DinoDayNight defines the day/night toggle period.
type DinoDayNight struct {
	CycleTicks int `yaml:"cycle_ticks"`
}

// DinoPatterns defines scripted obstacle sequences.
type DinoPatterns struct {
	Enabled       bool      `yaml:"enabled"`
	TriggerScore  int       `yaml:"trigger_score"`
	TriggerChance float64   `yaml:"trigger_chance"`
	Catalog       []Pattern `yaml:"catalog"`
}

// Pattern is a named, fixed sequence of obstacles.
type Pattern struct {
	Name    string        `yaml:"name"`
	Warning string        `yaml:"warning"`
	Steps   []PatternStep `yaml:"steps"`
}

// PatternStep is one obstacle of a pattern. Delay counts ticks from the
// pattern start.
type PatternStep struct {
	Kind   string  `yaml:"kind"` // "ground" or "flying"
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Y      float64 `yaml:"y"`
	Delay  int     `yaml:"delay"`
}

// Variant names.
const (
	VariantAdvanced = "advanced"
	VariantClassic  = "classic"
)

// ApplyClassicVariant switches the tuning to the simpler game variant:
// flying obstacles are rarer, power-ups ignore the difficulty chance and
// there are no scripted patterns.
func ApplyClassicVariant(cfg *DinoConfig) {
	cfg.Variant = VariantClassic
	cfg.Spawn.FlyingChance = 0.25
	cfg.Spawn.DifficultyGatedPowerUps = false
	cfg.Patterns.Enabled = false
}
