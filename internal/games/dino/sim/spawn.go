package sim

import "github.com/vovakirdan/dinorun/internal/config"

// Flying obstacle heights relative to the player's current height, which is
// the duck height while ducking: low must be ducked, mid can be run under,
// high catches a jump.
var flyingHeights = []float64{0.5, 1.2, 1.8}

func (s *Simulation) spawnObstacle() {
	sp := s.cfg.Spawn
	x := s.cfg.Field.Width

	if s.rng.Float64() < sp.FlyingChance && s.score > sp.FlyingMinScore {
		y := flyingHeights[s.rng.Intn(len(flyingHeights))] * s.player.Height
		s.obstacles.Add(Obstacle{
			Kind:   ObstacleFlying,
			X:      x,
			Y:      y,
			Width:  sp.FlyingWidth,
			Height: sp.FlyingHeight,
		})
		return
	}

	spiky := false
	switch s.difficulty.Tier {
	case config.DifficultyHard, config.DifficultyInsane:
		spiky = s.rng.Float64() < 0.3
	}

	var w, h float64
	switch class := s.rng.Float64(); {
	case class < 0.4: // short
		w = between(s.rng, 30, 50)
		h = between(s.rng, 30, 40)
	case class < 0.7: // tall
		w = between(s.rng, 20, 30)
		h = between(s.rng, 45, 70)
	default: // multi-spike cluster of one or two
		w = between(s.rng, 15, 20)
		w *= float64(s.rng.Intn(2) + 1)
		h = between(s.rng, 25, 35)
	}

	s.obstacles.Add(Obstacle{
		Kind:   ObstacleGround,
		X:      x,
		Width:  w,
		Height: h,
		Spiky:  spiky,
	})
}

func (s *Simulation) spawnPatternStep(step config.PatternStep) {
	o := Obstacle{
		Kind:    ObstacleGround,
		X:       s.cfg.Field.Width,
		Width:   step.Width,
		Height:  step.Height,
		Pattern: true,
	}
	if ObstacleKind(step.Kind) == ObstacleFlying {
		o.Kind = ObstacleFlying
		o.Y = step.Y
	}
	s.obstacles.Add(o)
}

// spawnPowerUp places a power-up once the score allows it. With gating on,
// the difficulty's chance is a second draw.
func (s *Simulation) spawnPowerUp() {
	pc := s.cfg.PowerUps
	if s.score < s.cfg.Spawn.PowerUpMinScore {
		return
	}
	if s.cfg.Spawn.DifficultyGatedPowerUps && s.rng.Float64() > s.difficulty.PowerUpChance {
		return
	}
	kind := PowerUpKinds[s.rng.Intn(len(PowerUpKinds))]
	s.powerUps.Add(PowerUp{
		Kind:   kind,
		X:      s.cfg.Field.Width,
		Y:      pc.MinY + s.rng.Float64()*pc.YRange,
		Width:  pc.Width,
		Height: pc.Height,
	})
}
