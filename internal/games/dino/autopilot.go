package dino

import (
	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
)

// duckLeadTicks is how early the autopilot ducks under a low flyer.
const duckLeadTicks = 8

// Autopilot plays the runner from the simulation state. It jumps over
// ground obstacles so the crossing falls in the middle of the airborne
// window and ducks under flyers that would hit a standing player.
// It is deterministic and keeps no state between ticks.
type Autopilot struct {
	physics config.DinoPhysics
	player  config.DinoPlayer
}

// NewAutopilot creates an autopilot tuned to the given config.
func NewAutopilot(cfg config.DinoConfig) Autopilot {
	return Autopilot{physics: cfg.Physics, player: cfg.Player}
}

// Frame returns the input for the next tick.
func (a Autopilot) Frame(s *sim.Simulation) core.InputFrame {
	in := core.NewInputFrame()
	if s.IsGameOver() || s.IsPaused() {
		return in
	}

	p := s.Player()
	if p.Jumping {
		return in
	}

	box := p.Hitbox()
	standTop := p.StandHeight() * 0.9
	duckTop := a.player.DuckHeight * 0.8
	speed := s.GameSpeed()

	duck := false
	for _, o := range s.Obstacles() {
		hb := o.Hitbox()
		if hb.Right() <= box.X {
			continue // Already behind the player
		}
		gap := hb.X - box.Right()

		switch {
		case o.Kind == sim.ObstacleFlying && hb.Y >= standTop:
			// Passes overhead
		case o.Kind == sim.ObstacleFlying && hb.Y >= duckTop:
			if gap <= speed*duckLeadTicks {
				duck = true
			}
		default:
			if gap >= 0 && a.shouldJump(gap, box.Width+hb.Width, hb.Top(), speed) {
				in.Set(core.ActionJump)
				return in
			}
		}
	}

	switch {
	case duck:
		in.Set(core.ActionDuck)
	case p.Ducking:
		in.Set(core.ActionDuckRelease)
	}
	return in
}

// shouldJump reports whether jumping now centres the overlap of length
// span in the window where the feet clear the obstacle top.
func (a Autopilot) shouldJump(gap, span, clearance, speed float64) bool {
	if speed <= 0 {
		return false
	}
	first, last, ok := airWindow(a.physics.JumpStrength, a.physics.Gravity, clearance)
	if !ok {
		return false
	}
	mid := float64(first+last) / 2
	return (gap+span/2)/speed <= mid
}

// airWindow returns the first and last tick after a jump on which the
// player is higher than clearance.
func airWindow(strength, gravity, clearance float64) (first, last int, ok bool) {
	if gravity <= 0 {
		return 0, 0, false
	}
	y, v := 0.0, strength
	for k := 1; ; k++ {
		y += v
		v -= gravity
		if y <= 0 {
			break
		}
		if y > clearance {
			if first == 0 {
				first = k
			}
			last = k
		}
	}
	return first, last, first > 0
}
