package sim

import (
	"math"

	"github.com/vovakirdan/dinorun/internal/core"
)

// ObstacleKind distinguishes ground obstacles from flying ones.
type ObstacleKind string

const (
	ObstacleGround ObstacleKind = "ground"
	ObstacleFlying ObstacleKind = "flying"
)

// Obstacle is a hazard scrolling toward the player.
type Obstacle struct {
	Kind    ObstacleKind
	X, Y    float64
	Width   float64
	Height  float64
	Spiky   bool // cosmetic, hard and insane ground obstacles
	Pattern bool // emitted by a scripted pattern
}

// Rect returns the sprite rectangle.
func (o Obstacle) Rect() core.RectF {
	return core.RectF{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// Hitbox returns the collision box: 80% of the width centred horizontally
// and the lower 80% of the height.
func (o Obstacle) Hitbox() core.RectF {
	return core.RectF{
		X:      o.X + o.Width*0.1,
		Y:      o.Y,
		Width:  o.Width * 0.8,
		Height: o.Height * 0.8,
	}
}

// PowerUp is a collectible scrolling toward the player.
type PowerUp struct {
	Kind   PowerUpKind
	X, Y   float64
	Width  float64
	Height float64
}

// Rect returns the collection rectangle. Power-ups are not inset.
func (p PowerUp) Rect() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// BurstKind tags what produced a particle so front-ends can color it.
type BurstKind uint8

const (
	BurstDust BurstKind = iota
	BurstSpark
	BurstExplosion
)

// Particle is a cosmetic effect with no gameplay influence.
type Particle struct {
	Kind    BurstKind
	X, Y    float64
	VX, VY  float64
	Size    float64
	Gravity float64
	Life    float64
}

const (
	jumpBurst      = 5
	landBurst      = 8
	collectBurst   = 10
	explosionBurst = 20

	particleGravity = 0.1
)

// newParticle launches a particle at a random angle with speed in [1,4),
// size in [2,6) and a lifetime of [30,50) ticks.
func newParticle(rng Source, kind BurstKind, x, y float64) Particle {
	angle := rng.Float64() * math.Pi * 2
	speed := between(rng, 1, 4)
	size := between(rng, 2, 6)
	life := between(rng, 30, 50)
	return Particle{
		Kind:    kind,
		X:       x,
		Y:       y,
		VX:      math.Cos(angle) * speed,
		VY:      math.Sin(angle) * speed,
		Size:    size,
		Gravity: particleGravity,
		Life:    life,
	}
}

func moveParticle(p *Particle) {
	p.X += p.VX
	p.Y += p.VY
	p.VY -= p.Gravity
	p.Life--
}

func particleExpired(p *Particle) bool {
	return p.Life <= 0
}
