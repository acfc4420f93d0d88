package config

import (
	_ "embed"
)

//go:embed defaults/dino.yaml
var defaultDinoYAML []byte

// DefaultDinoConfig returns the default Dino Runner configuration.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Variant: VariantAdvanced,
		Physics: DinoPhysics{
			Gravity:      1.5,
			JumpStrength: 23,
			BaseSpeed:    5,
			MaxSpeed:     18,
			Acceleration: 0.001,
		},
		Field: DinoField{
			Width:  800,
			Height: 300,
		},
		Player: DinoPlayer{
			X:          60,
			Width:      44,
			Height:     47,
			DuckHeight: 26,
		},
		Spawn: DinoSpawn{
			BaseInterval:            120,
			MinInterval:             35,
			SpeedFactor:             5,
			FlyingChance:            0.3,
			FlyingMinScore:          150,
			FlyingWidth:             50,
			FlyingHeight:            35,
			PowerUpAttempt:          0.2,
			PowerUpMinScore:         300,
			DifficultyGatedPowerUps: true,
		},
		PowerUps: DinoPowerUps{
			Duration: 500,
			Width:    30,
			Height:   30,
			MinY:     50,
			YRange:   100,
		},
		Combo: DinoCombo{
			DecayTicks:  180,
			BonusFactor: 0.1,
		},
		DayNight: DinoDayNight{
			CycleTicks: 1800,
		},
		Patterns: DinoPatterns{
			Enabled:       true,
			TriggerScore:  200,
			TriggerChance: 0.15,
			Catalog:       DefaultPatterns(),
		},
		Difficulties: DefaultDifficulties(),
	}
}

// DefaultPatterns returns the built-in obstacle pattern catalog.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:    "Jump Sequence",
			Warning: "Triple Jump!",
			Steps: []PatternStep{
				{Kind: "ground", Width: 30, Height: 40, Delay: 0},
				{Kind: "ground", Width: 25, Height: 45, Delay: 80},
				{Kind: "ground", Width: 35, Height: 35, Delay: 160},
			},
		},
		{
			Name:    "Duck Sequence",
			Warning: "Duck Storm!",
			Steps: []PatternStep{
				{Kind: "flying", Width: 50, Height: 35, Y: 40, Delay: 0},
				{Kind: "flying", Width: 50, Height: 35, Y: 45, Delay: 100},
				{Kind: "flying", Width: 50, Height: 35, Y: 35, Delay: 200},
			},
		},
		{
			Name:    "Mixed Challenge",
			Warning: "Mixed Challenge!",
			Steps: []PatternStep{
				{Kind: "ground", Width: 30, Height: 50, Delay: 0},
				{Kind: "flying", Width: 50, Height: 35, Y: 60, Delay: 120},
				{Kind: "ground", Width: 25, Height: 40, Delay: 240},
			},
		},
		{
			Name:    "Speed Test",
			Warning: "Speed Test!",
			Steps: []PatternStep{
				{Kind: "ground", Width: 20, Height: 30, Delay: 0},
				{Kind: "ground", Width: 20, Height: 35, Delay: 60},
				{Kind: "ground", Width: 20, Height: 40, Delay: 120},
				{Kind: "ground", Width: 20, Height: 30, Delay: 180},
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDinoYAML
}
