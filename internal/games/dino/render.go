package dino

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino/sim"
)

// Visual constants
const (
	GroundChar    = '═'
	ObstacleChar  = '█'
	SpikeChar     = '▲'
	FlyingChar    = '◄'
	WingChar      = '≈'
	DinoHead      = '◆'
	DinoLeg1      = '╱'
	DinoLeg2      = '╲'
	DustChar      = '·'
	SparkChar     = '*'
	ExplosionChar = '✶'
)

// hudRows are reserved above the playfield.
const hudRows = 2

// viewport maps simulation units (Y up) to screen cells (Y down).
type viewport struct {
	sx, sy  float64
	groundY int // screen row of the ground line
	w, h    int
}

func newViewport(field config.DinoField, screenW, screenH int) viewport {
	groundY := screenH - 2
	rows := groundY - hudRows
	if rows < 1 {
		rows = 1
	}
	v := viewport{groundY: groundY, w: screenW, h: screenH}
	if field.Width > 0 {
		v.sx = float64(screenW) / field.Width
	}
	if field.Height > 0 {
		v.sy = float64(rows) / field.Height
	}
	return v
}

// cells converts a simulation rectangle to the screen cells it covers.
// Every visible entity covers at least one cell.
func (v viewport) cells(r core.RectF) core.Rect {
	x0 := int(math.Floor(r.X * v.sx))
	x1 := int(math.Ceil(r.Right() * v.sx))
	bottom := v.groundY - 1 - int(math.Floor(r.Y*v.sy))
	top := v.groundY - int(math.Ceil(r.Top()*v.sy))
	if top > bottom {
		top = bottom
	}
	return core.NewRect(x0, top, core.Max(1, x1-x0), bottom-top+1)
}

// point converts a simulation point to a screen cell.
func (v viewport) point(x, y float64) (int, int) {
	return int(math.Floor(x * v.sx)), v.groundY - 1 - int(math.Floor(y*v.sy))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	if g.view.w != dst.Width() || g.view.h != dst.Height() {
		g.view = newViewport(g.cfg.Field, dst.Width(), dst.Height())
	}

	night := g.sim.IsNight()
	groundColor := core.ColorYellow
	if night {
		groundColor = groundColor.Night()
	}
	dst.DrawHLine(0, g.view.groundY, dst.Width(), GroundChar, groundColor)

	for _, p := range g.sim.PowerUps() {
		g.drawPowerUp(dst, p)
	}
	for _, o := range g.sim.Obstacles() {
		g.drawObstacle(dst, o, night)
	}
	g.drawPlayer(dst)
	if g.opts.Settings.ShowParticles() {
		for _, p := range g.sim.Particles() {
			g.drawParticle(dst, p)
		}
	}

	g.drawHUD(dst)

	if g.sim.IsPaused() {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.sim.IsGameOver() {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.sim.Score()))
	}
}

func (g *Game) drawObstacle(dst *core.Screen, o sim.Obstacle, night bool) {
	r := g.view.cells(o.Rect())
	if o.Kind == sim.ObstacleFlying {
		color := core.ColorMagenta
		if o.Pattern {
			color = core.ColorBrightMagenta
		}
		dst.DrawRect(r, WingChar, color)
		dst.SetColored(r.X, r.Y, FlyingChar, color)
		return
	}

	color := core.ColorGreen
	if night {
		color = color.Night()
	}
	if o.Pattern {
		color = core.ColorOrange
	}
	dst.DrawRect(r, ObstacleChar, color)
	if o.Spiky {
		dst.DrawHLine(r.X, r.Y, r.W, SpikeChar, core.ColorRed)
	}
}

func (g *Game) drawPowerUp(dst *core.Screen, p sim.PowerUp) {
	r := g.view.cells(p.Rect())
	glyph, color := powerUpGlyph(p.Kind)
	dst.DrawRect(r, glyph, color)
}

func powerUpGlyph(kind sim.PowerUpKind) (rune, core.Color) {
	switch kind {
	case sim.PowerUpShield:
		return 'S', core.ColorBrightCyan
	case sim.PowerUpSlowMotion:
		return '~', core.ColorBrightBlue
	case sim.PowerUpInvincibility:
		return 'I', core.ColorBrightYellow
	case sim.PowerUpDoublePoints:
		return '2', core.ColorBrightGreen
	}
	return '?', core.ColorDefault
}

// drawPlayer renders the runner sprite scaled to its rectangle. The top row
// carries the head, the bottom row the legs.
func (g *Game) drawPlayer(dst *core.Screen) {
	p := g.sim.Player()
	r := g.view.cells(core.RectF{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height})

	body, color := characterGlyph(g.sim.Character())
	switch kind, remaining := g.sim.ActivePowerUp(); kind {
	case sim.PowerUpShield:
		color = core.ColorBrightCyan
	case sim.PowerUpInvincibility:
		// Blink
		if remaining/8%2 == 0 {
			color = core.ColorBrightYellow
		}
	}

	dst.DrawRect(r, body, color)
	dst.SetColored(r.Right()-1, r.Y, DinoHead, color)

	if r.H < 2 {
		return
	}
	legs := r.Bottom() - 1
	dst.DrawHLine(r.X, legs, r.W, ' ', color)
	switch {
	case p.Jumping:
		// In air - legs tucked
		dst.SetColored(r.X, legs, DinoLeg1, color)
		dst.SetColored(r.X+1, legs, DinoLeg2, color)
	case g.legFrame < 5:
		dst.SetColored(r.X, legs, DinoLeg1, color)
		dst.SetColored(r.Right()-1, legs, DinoLeg2, color)
	default:
		dst.SetColored(r.X+1, legs, DinoLeg1, color)
		dst.SetColored(r.Right()-1, legs, DinoLeg2, color)
	}
}

func characterGlyph(c sim.Character) (rune, core.Color) {
	switch c {
	case sim.CharacterRobot:
		return '▣', core.ColorGray
	case sim.CharacterNinja:
		return '▒', core.ColorMagenta
	}
	return '█', core.ColorGreen
}

func (g *Game) drawParticle(dst *core.Screen, p sim.Particle) {
	x, y := g.view.point(p.X, p.Y)
	if y >= g.view.groundY || y < hudRows {
		return
	}
	switch p.Kind {
	case sim.BurstSpark:
		dst.SetColored(x, y, SparkChar, core.ColorBrightYellow)
	case sim.BurstExplosion:
		dst.SetColored(x, y, ExplosionChar, core.ColorRed)
	default:
		dst.SetColored(x, y, DustChar, core.ColorGray)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.sim
	left := fmt.Sprintf(" Score: %d  Combo: x%d ", s.Score(), s.Combo())
	dst.DrawText(1, 0, left)

	right := fmt.Sprintf(" %s  Spd: %.1f ", s.Difficulty().Name, s.GameSpeed())
	if s.IsNight() {
		right = " ☾" + right
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)

	if kind, remaining := s.ActivePowerUp(); kind != sim.PowerUpNone {
		_, color := powerUpGlyph(kind)
		tick := g.runtime.TickRate
		if tick <= 0 {
			tick = 60
		}
		dst.DrawTextColored(1, 1, fmt.Sprintf(" %s %ds ", kind.Label(), (remaining+tick-1)/tick), color)
	}

	if g.tracker != nil {
		ach := fmt.Sprintf(" Achievements %d/%d ", g.tracker.UnlockedCount(), g.tracker.TotalCount())
		dst.DrawText(dst.Width()-len(ach)-1, 1, ach)
	}

	msg := g.notice
	if g.noticeTTL == 0 {
		msg = ""
		if p, ok := s.Pattern(); ok {
			msg = p.Name
		}
	}
	if msg != "" {
		dst.DrawTextColored((dst.Width()-len([]rune(msg)))/2, 1, msg, core.ColorBrightWhite)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	lines := []string{title, subtitle}
	if g.sim.IsGameOver() {
		lines = append(lines, g.Summary()...)
	}

	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 3
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+2, subtitle)
	for i, l := range lines[2:] {
		dst.DrawText(boxX+2, boxY+4+i, l)
	}
}
