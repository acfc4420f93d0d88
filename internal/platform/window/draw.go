package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
)

var (
	dayColor       = color.RGBA{247, 247, 247, 255}
	nightColor     = color.RGBA{32, 33, 36, 255}
	groundColor    = color.RGBA{83, 83, 83, 255}
	cactusColor    = color.RGBA{46, 125, 50, 255}
	spikeColor     = color.RGBA{198, 40, 40, 255}
	patternColor   = color.RGBA{239, 108, 0, 255}
	birdColor      = color.RGBA{123, 31, 162, 255}
	dustColor      = color.RGBA{150, 150, 150, 255}
	sparkColor     = color.RGBA{255, 214, 0, 255}
	explosionColor = color.RGBA{229, 57, 53, 255}
	overlayColor   = color.RGBA{0, 0, 0, 140}
)

var characterColors = map[sim.Character]color.RGBA{
	sim.CharacterDino:  {83, 83, 83, 255},
	sim.CharacterRobot: {96, 125, 139, 255},
	sim.CharacterNinja: {49, 27, 146, 255},
}

var powerUpColors = map[sim.PowerUpKind]color.RGBA{
	sim.PowerUpShield:        {0, 188, 212, 255},
	sim.PowerUpSlowMotion:    {63, 81, 181, 255},
	sim.PowerUpInvincibility: {255, 193, 7, 255},
	sim.PowerUpDoublePoints:  {76, 175, 80, 255},
}

// groundY is the screen row of the ground line.
func (g *Game) groundY() float64 {
	return hudHeight + g.field.Height - 10
}

// fillRect draws a simulation rectangle. Simulation Y grows upward from the
// ground line, screen Y grows downward.
func (g *Game) fillRect(dst *ebiten.Image, r core.RectF, clr color.Color) {
	top := g.groundY() - r.Top()
	vector.DrawFilledRect(dst, float32(r.X), float32(top), float32(r.Width), float32(r.Height), clr, false)
}

// Draw renders the current state.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.game.Sim()

	if s.IsNight() {
		screen.Fill(nightColor)
	} else {
		screen.Fill(dayColor)
	}
	vector.DrawFilledRect(screen, 0, float32(g.groundY()), float32(g.field.Width), 2, groundColor, false)

	for _, p := range s.PowerUps() {
		g.fillRect(screen, p.Rect(), powerUpColors[p.Kind])
	}
	for _, o := range s.Obstacles() {
		g.drawObstacle(screen, o)
	}
	g.drawPlayer(screen, s)

	if g.settings.ShowParticles() {
		for _, p := range s.Particles() {
			g.fillRect(screen, core.RectF{X: p.X, Y: p.Y, Width: p.Size, Height: p.Size}, particleColor(p.Kind))
		}
	}

	g.drawHUD(screen, s)

	switch {
	case s.IsGameOver():
		g.drawOverlay(screen, append([]string{"GAME OVER", ""}, g.game.Summary()...),
			"R restart  D difficulty  C character  Esc quit")
	case s.IsPaused():
		g.drawOverlay(screen, []string{"PAUSED"}, "P resume")
	}
}

func (g *Game) drawObstacle(dst *ebiten.Image, o sim.Obstacle) {
	clr := cactusColor
	switch {
	case o.Pattern:
		clr = patternColor
	case o.Kind == sim.ObstacleFlying:
		clr = birdColor
	}
	g.fillRect(dst, o.Rect(), clr)
	if o.Spiky {
		g.fillRect(dst, core.RectF{X: o.X, Y: o.Y + o.Height - 4, Width: o.Width, Height: 4}, spikeColor)
	}
}

func (g *Game) drawPlayer(dst *ebiten.Image, s *sim.Simulation) {
	p := s.Player()
	clr := characterColors[s.Character()]
	switch kind, remaining := s.ActivePowerUp(); kind {
	case sim.PowerUpShield:
		clr = powerUpColors[kind]
	case sim.PowerUpInvincibility:
		// Blink
		if remaining/8%2 == 0 {
			clr = powerUpColors[kind]
		}
	}
	g.fillRect(dst, core.RectF{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}, clr)
}

func particleColor(kind sim.BurstKind) color.RGBA {
	switch kind {
	case sim.BurstSpark:
		return sparkColor
	case sim.BurstExplosion:
		return explosionColor
	}
	return dustColor
}

func (g *Game) drawHUD(dst *ebiten.Image, s *sim.Simulation) {
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Score: %d  HI: %d  Combo: x%d", s.Score(), max(g.highScore, s.Score()), s.Combo()), 8, 4)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%s  Speed: %.1f  %s", s.Difficulty().Name, s.GameSpeed(), s.Character()), 8, 20)

	right := fmt.Sprintf("Achievements %d/%d", g.game.Tracker().UnlockedCount(), g.game.Tracker().TotalCount())
	if kind, remaining := s.ActivePowerUp(); kind != sim.PowerUpNone {
		right = fmt.Sprintf("%s %ds  ", kind.Label(), (remaining+g.opts.TickRate-1)/g.opts.TickRate) + right
	}
	if g.settings.ShowFPS {
		right = fmt.Sprintf("FPS %.0f  ", ebiten.ActualFPS()) + right
	}
	ebitenutil.DebugPrintAt(dst, right, int(g.field.Width)-len(right)*6-8, 4)

	msg := ""
	if g.noticeTTL > 0 {
		msg = g.notice
	} else if p, ok := s.Pattern(); ok {
		msg = p.Name
	}
	if msg != "" {
		ebitenutil.DebugPrintAt(dst, msg, (int(g.field.Width)-len(msg)*6)/2, 20)
	}
}

// drawOverlay darkens the field and centres lines of text on it.
func (g *Game) drawOverlay(dst *ebiten.Image, lines []string, hint string) {
	w, h := g.Layout(0, 0)
	vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), overlayColor, false)

	// The debug font is 6x16
	y := h/2 - (len(lines)+2)*16/2
	for _, line := range append(lines, "", hint) {
		ebitenutil.DebugPrintAt(dst, line, (w-len(line)*6)/2, y)
		y += 16
	}
}
