package config

import "strings"

// DifficultyTier names one of the four difficulty profiles.
type DifficultyTier string

const (
	DifficultyEasy   DifficultyTier = "easy"
	DifficultyMedium DifficultyTier = "medium"
	DifficultyHard   DifficultyTier = "hard"
	DifficultyInsane DifficultyTier = "insane"
)

// Tiers lists the difficulty tiers in menu order.
var Tiers = []DifficultyTier{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane}

// ParseTier resolves a tag to a tier. Unknown tags fall back to medium.
func ParseTier(tag string) DifficultyTier {
	switch DifficultyTier(strings.ToLower(strings.TrimSpace(tag))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	case DifficultyInsane:
		return DifficultyInsane
	default:
		return DifficultyMedium
	}
}

// DifficultyProfile is the immutable tuning record of one tier.
type DifficultyProfile struct {
	Tier              DifficultyTier `yaml:"tier"`
	Name              string         `yaml:"name"`
	SpeedMultiplier   float64        `yaml:"speed_multiplier"`
	ObstacleSpawnRate float64        `yaml:"obstacle_spawn_rate"`
	PowerUpChance     float64        `yaml:"power_up_chance"`
	ScoreMultiplier   float64        `yaml:"score_multiplier"`
}

// DefaultDifficulties returns the built-in difficulty table.
func DefaultDifficulties() []DifficultyProfile {
	return []DifficultyProfile{
		{Tier: DifficultyEasy, Name: "Easy", SpeedMultiplier: 0.8, ObstacleSpawnRate: 1.2, PowerUpChance: 0.15, ScoreMultiplier: 1.0},
		{Tier: DifficultyMedium, Name: "Medium", SpeedMultiplier: 1.0, ObstacleSpawnRate: 1.0, PowerUpChance: 0.1, ScoreMultiplier: 1.2},
		{Tier: DifficultyHard, Name: "Hard", SpeedMultiplier: 1.3, ObstacleSpawnRate: 0.8, PowerUpChance: 0.05, ScoreMultiplier: 1.5},
		{Tier: DifficultyInsane, Name: "Insane", SpeedMultiplier: 1.6, ObstacleSpawnRate: 0.6, PowerUpChance: 0.02, ScoreMultiplier: 2.0},
	}
}

// Difficulty looks up the profile for a tag in the config's table.
// Unknown tags and tiers missing from the table resolve to medium, and a
// table without medium falls back to the built-in profiles.
func (c DinoConfig) Difficulty(tag string) DifficultyProfile {
	tier := ParseTier(tag)
	if p, ok := lookupTier(c.Difficulties, tier); ok {
		return p
	}
	if p, ok := lookupTier(c.Difficulties, DifficultyMedium); ok {
		return p
	}
	p, _ := lookupTier(DefaultDifficulties(), tier)
	return p
}

func lookupTier(table []DifficultyProfile, tier DifficultyTier) (DifficultyProfile, bool) {
	for _, p := range table {
		if p.Tier == tier {
			return p, true
		}
	}
	return DifficultyProfile{}, false
}
