package sim

import (
	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
)

// Player is the runner. Y is the displacement above the ground line.
type Player struct {
	X         float64
	Y         float64
	VelocityY float64
	Width     float64
	Height    float64 // current height, reduced while ducking
	Jumping   bool
	Ducking   bool

	standHeight float64
	duckHeight  float64
}

func newPlayer(cfg config.DinoPlayer) Player {
	return Player{
		X:           cfg.X,
		Width:       cfg.Width,
		Height:      cfg.Height,
		standHeight: cfg.Height,
		duckHeight:  cfg.DuckHeight,
	}
}

// Grounded reports whether the player is standing or ducking on the ground.
func (p Player) Grounded() bool {
	return !p.Jumping
}

// StandHeight returns the height of the player when not ducking.
func (p Player) StandHeight() float64 {
	return p.standHeight
}

// Hitbox returns the collision box, inset from the sprite so near misses
// are forgiven. Ducking lowers the box and raises its bottom slightly.
func (p Player) Hitbox() core.RectF {
	box := core.RectF{
		X:      p.X + p.Width*0.1,
		Y:      p.Y,
		Width:  p.Width * 0.8,
		Height: p.Height * 0.9,
	}
	if p.Ducking {
		box.Y = p.Y + p.Height*0.1
		box.Height = p.Height * 0.7
	}
	return box
}

// Center returns the sprite centre.
func (p Player) Center() (x, y float64) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

func (p *Player) jump(strength float64) {
	p.endDuck()
	p.Jumping = true
	p.VelocityY = strength
}

// integrate advances one tick of the jump arc and reports whether the
// player landed on this tick.
func (p *Player) integrate(gravity float64) (landed bool) {
	if !p.Jumping {
		return false
	}
	p.Y += p.VelocityY
	p.VelocityY -= gravity
	if p.Y <= 0 {
		p.Y = 0
		p.VelocityY = 0
		p.Jumping = false
		return true
	}
	return false
}

func (p *Player) startDuck() bool {
	if p.Ducking {
		return false
	}
	p.Ducking = true
	p.Height = p.duckHeight
	return true
}

func (p *Player) endDuck() bool {
	if !p.Ducking {
		return false
	}
	p.Ducking = false
	p.Height = p.standHeight
	return true
}
