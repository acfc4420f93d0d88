// Package sim is the dino runner simulation: a fixed-step pipeline of player
// physics, obstacle and power-up fields, combo and day/night timers, scripted
// obstacle patterns, scoring and AABB collision. It performs no I/O; hosts
// drive it with Tick and the command methods and observe it through
// TickResult and the Events hooks.
//
// A Simulation is not safe for concurrent use. Hosts with several goroutines
// must hold a single lock across each Tick or command call.
package sim

import (
	"math"
	"strings"

	"github.com/vovakirdan/dinorun/internal/config"
)

// Character is the cosmetic player skin.
type Character string

const (
	CharacterDino  Character = "dino"
	CharacterRobot Character = "robot"
	CharacterNinja Character = "ninja"
)

// Characters lists the known skins.
var Characters = []Character{CharacterDino, CharacterRobot, CharacterNinja}

// ParseCharacter resolves a tag to a skin. Unknown tags fall back to dino.
func ParseCharacter(tag string) Character {
	switch c := Character(strings.ToLower(strings.TrimSpace(tag))); c {
	case CharacterRobot, CharacterNinja:
		return c
	default:
		return CharacterDino
	}
}

// TickResult summarises one tick for the host.
type TickResult struct {
	Tick             int
	Score            int
	ScoreDelta       int
	IsGameOver       bool
	Combo            int
	ActivePowerUp    PowerUpKind
	PowerUpRemaining int
	IsNight          bool
	GameSpeed        float64
	NewlyUnlocked    []string
	PatternName      string // active pattern, empty when none
	PatternWarning   string // set only on the tick a pattern starts
}

// Simulation owns the whole state of one run.
type Simulation struct {
	cfg        config.DinoConfig
	difficulty config.DifficultyProfile
	character  Character
	rng        Source
	events     Events

	player    Player
	obstacles Field[Obstacle]
	powerUps  Field[PowerUp]
	particles Field[Particle]
	powerUp   PowerUpController
	combo     Combo
	dayNight  DayNight
	planner   *Planner

	score         int
	gameSpeed     float64
	spawnTimer    int
	spawnInterval float64
	ticks         int
	gameOver      bool
	paused        bool
	maxSpeedHit   bool
	stats         SessionStats
}

// New creates a simulation and starts the first run.
// A nil rng is seeded from the clock; nil events are ignored.
func New(cfg config.DinoConfig, difficulty, character string, rng Source, events Events) *Simulation {
	if rng == nil {
		rng = NewSource(0)
	}
	if events == nil {
		events = NopEvents{}
	}
	s := &Simulation{
		cfg:     cfg,
		rng:     rng,
		events:  events,
		planner: NewPlanner(cfg.Patterns),
	}
	s.Reset(difficulty, character)
	return s
}

// Reset starts a fresh run on the given difficulty and character.
func (s *Simulation) Reset(difficulty, character string) {
	s.difficulty = s.cfg.Difficulty(difficulty)
	s.character = ParseCharacter(character)

	s.player = newPlayer(s.cfg.Player)
	s.obstacles.Clear()
	s.powerUps.Clear()
	s.particles.Clear()
	s.powerUp = newPowerUpController(s.cfg.PowerUps.Duration)
	s.combo = newCombo(s.cfg.Combo.DecayTicks)
	s.dayNight = newDayNight(s.cfg.DayNight.CycleTicks)
	s.planner.Reset()

	s.score = 0
	s.gameSpeed = s.cfg.Physics.BaseSpeed * s.difficulty.SpeedMultiplier
	s.spawnTimer = 0
	s.spawnInterval = s.cfg.Spawn.BaseInterval * s.difficulty.ObstacleSpawnRate
	s.ticks = 0
	s.gameOver = false
	s.paused = false
	s.maxSpeedHit = false
	s.stats = SessionStats{}

	s.events.OnSessionStarted(s.difficulty)
}

// Jump launches the player. No-op while airborne, paused or over.
// Ducking is cancelled.
func (s *Simulation) Jump() {
	if s.player.Jumping || s.gameOver || s.paused {
		return
	}
	s.player.jump(s.cfg.Physics.JumpStrength)
	s.stats.Jumps++
	s.burst(jumpBurst, BurstDust, s.player.X+s.player.Width/2, s.player.Y)
	s.events.OnJump()
}

// StartDuck lowers the player. No-op while airborne, paused or over.
func (s *Simulation) StartDuck() {
	if s.player.Jumping || s.gameOver || s.paused {
		return
	}
	if s.player.startDuck() {
		s.stats.Ducks++
		s.events.OnDuck()
	}
}

// EndDuck stands the player back up.
func (s *Simulation) EndDuck() {
	if s.player.Jumping || s.gameOver || s.paused {
		return
	}
	s.player.endDuck()
}

// TogglePause freezes or resumes the run. No-op after game over.
func (s *Simulation) TogglePause() {
	if s.gameOver {
		return
	}
	s.paused = !s.paused
}

// Tick advances the run by one step. While paused or over it only reports
// the current state.
func (s *Simulation) Tick() TickResult {
	if s.gameOver || s.paused {
		return s.result(0, "")
	}
	s.ticks++

	s.updatePlayer()
	s.updateObstacles()
	s.updatePowerUps()
	s.particles.Advance(moveParticle, particleExpired, nil)
	if s.dayNight.Advance() {
		s.events.OnNightModeEntered()
	}
	warning := s.updatePatterns()

	if s.collides() {
		s.endRun()
		return s.result(0, warning)
	}

	delta := s.updateScore()
	return s.result(delta, warning)
}

func (s *Simulation) updatePlayer() {
	if s.player.integrate(s.cfg.Physics.Gravity) {
		s.burst(landBurst, BurstDust, s.player.X+s.player.Width/2, 0)
	}
}

func (s *Simulation) updateObstacles() {
	speed := s.gameSpeed
	s.obstacles.Advance(
		func(o *Obstacle) { o.X -= speed },
		func(o *Obstacle) bool { return o.X+o.Width < 0 },
		func(Obstacle) { s.obstacleAvoided() },
	)

	if s.combo.Decay() {
		s.events.OnComboChanged(0)
	}

	s.spawnTimer++
	if s.planner.Active() {
		s.spawnTimer = 0
		return
	}
	if float64(s.spawnTimer) >= s.spawnInterval {
		s.spawnTimer = 0
		s.spawnObstacle()
		if s.rng.Float64() < s.cfg.Spawn.PowerUpAttempt {
			s.spawnPowerUp()
		}
	}
}

func (s *Simulation) obstacleAvoided() {
	value := s.combo.Increment()
	s.stats.ObstaclesAvoided++
	if value > s.stats.MaxCombo {
		s.stats.MaxCombo = value
	}
	s.events.OnObstacleAvoided()
	s.events.OnComboChanged(value)
}

func (s *Simulation) updatePowerUps() {
	speed := s.gameSpeed
	s.powerUps.Advance(
		func(p *PowerUp) { p.X -= speed },
		func(p *PowerUp) bool { return p.X+p.Width < 0 },
		nil,
	)

	hitbox := s.player.Hitbox()
	items := s.powerUps.Items()
	for i := len(items) - 1; i >= 0; i-- {
		p := items[i]
		if !hitbox.Intersects(p.Rect()) {
			continue
		}
		s.powerUps.RemoveAt(i)
		items = s.powerUps.Items()
		s.gameSpeed *= s.powerUp.Activate(p.Kind)
		s.stats.PowerUpsCollected++
		s.burst(collectBurst, BurstSpark, p.X+p.Width/2, p.Y+p.Height/2)
		s.events.OnPowerUpCollected(p.Kind)
	}

	factor, _ := s.powerUp.Countdown()
	s.gameSpeed *= factor
}

// updatePatterns advances the planner and returns the warning of a pattern
// that started this tick.
func (s *Simulation) updatePatterns() string {
	res := s.planner.Advance(s.score, s.rng)
	if res.Completed {
		s.events.OnPerfectPatternCompleted()
	}
	if res.Step != nil {
		s.spawnPatternStep(*res.Step)
	}
	if res.Started != nil {
		return res.Started.Warning
	}
	return ""
}

func (s *Simulation) collides() bool {
	if s.powerUp.Protects() {
		return false
	}
	hitbox := s.player.Hitbox()
	for _, o := range s.obstacles.Items() {
		if hitbox.Intersects(o.Hitbox()) {
			return true
		}
	}
	return false
}

// updateScore credits one tick of survival, ramps the speed and re-derives
// the spawn interval. It returns the points earned.
func (s *Simulation) updateScore() int {
	const basePoints = 1
	difficultyBonus := int(math.Floor(basePoints * s.difficulty.ScoreMultiplier))
	comboBonus := int(math.Floor(float64(s.combo.Value()) * s.cfg.Combo.BonusFactor))
	powerUpBonus := 0
	if s.powerUp.DoublesPoints() {
		powerUpBonus = difficultyBonus
	}
	delta := basePoints + difficultyBonus + comboBonus + powerUpBonus
	s.score += delta
	s.stats.Score = s.score
	s.events.OnScoreChanged(s.score)

	s.gameSpeed = math.Min(s.cfg.Physics.MaxSpeed, s.gameSpeed+s.cfg.Physics.Acceleration*s.difficulty.SpeedMultiplier)
	if s.gameSpeed >= s.cfg.Physics.MaxSpeed && !s.maxSpeedHit {
		s.maxSpeedHit = true
		s.events.OnMaxSpeedReached()
	}

	s.spawnInterval = SpawnInterval(s.cfg.Spawn.BaseInterval, s.gameSpeed, s.difficulty, s.cfg.Spawn.MinInterval, s.cfg.Spawn.SpeedFactor)
	return delta
}

func (s *Simulation) endRun() {
	s.gameOver = true
	s.gameSpeed *= s.powerUp.Deactivate()
	cx, cy := s.player.Center()
	s.burst(explosionBurst, BurstExplosion, cx, cy)

	s.stats.Score = s.score
	s.stats.FinalCombo = s.combo.Value()
	s.stats.Ticks = s.ticks
	s.events.OnGameOver(s.stats, s.difficulty)
}

func (s *Simulation) burst(n int, kind BurstKind, x, y float64) {
	for range n {
		s.particles.Add(newParticle(s.rng, kind, x, y))
	}
}

func (s *Simulation) result(delta int, warning string) TickResult {
	kind, remaining := s.powerUp.Active()
	res := TickResult{
		Tick:             s.ticks,
		Score:            s.score,
		ScoreDelta:       delta,
		IsGameOver:       s.gameOver,
		Combo:            s.combo.Value(),
		ActivePowerUp:    kind,
		PowerUpRemaining: remaining,
		IsNight:          s.dayNight.Night(),
		GameSpeed:        s.gameSpeed,
		PatternWarning:   warning,
	}
	if p, ok := s.planner.Current(); ok {
		res.PatternName = p.Name
	}
	if src, ok := s.events.(UnlockSource); ok {
		res.NewlyUnlocked = src.TakeUnlocked()
	}
	return res
}

// SpawnInterval returns the ticks between regular obstacle spawns:
// base × spawn rate − speed × factor, never below floor.
func SpawnInterval(base, speed float64, profile config.DifficultyProfile, floor, factor float64) float64 {
	return math.Max(floor, base*profile.ObstacleSpawnRate-speed*factor)
}

// Config returns the tuning the simulation runs on.
func (s *Simulation) Config() config.DinoConfig { return s.cfg }

// Difficulty returns the profile of the current run.
func (s *Simulation) Difficulty() config.DifficultyProfile { return s.difficulty }

// Character returns the skin of the current run.
func (s *Simulation) Character() Character { return s.character }

// Score returns the current score.
func (s *Simulation) Score() int { return s.score }

// Player returns a copy of the player state.
func (s *Simulation) Player() Player { return s.player }

// Obstacles returns the live obstacles. Do not retain across ticks.
func (s *Simulation) Obstacles() []Obstacle { return s.obstacles.Items() }

// PowerUps returns the uncollected power-ups. Do not retain across ticks.
func (s *Simulation) PowerUps() []PowerUp { return s.powerUps.Items() }

// Particles returns the live particles. Do not retain across ticks.
func (s *Simulation) Particles() []Particle { return s.particles.Items() }

// Stats returns the session counters so far.
func (s *Simulation) Stats() SessionStats { return s.stats }

// GameSpeed returns the current scroll speed in units per tick.
func (s *Simulation) GameSpeed() float64 { return s.gameSpeed }

// SpawnInterval returns the current regular spawn interval in ticks.
func (s *Simulation) SpawnInterval() float64 { return s.spawnInterval }

// Combo returns the current combo.
func (s *Simulation) Combo() int { return s.combo.Value() }

// ActivePowerUp returns the active power-up and its remaining ticks.
func (s *Simulation) ActivePowerUp() (PowerUpKind, int) { return s.powerUp.Active() }

// IsNight reports whether the night flag is set.
func (s *Simulation) IsNight() bool { return s.dayNight.Night() }

// IsGameOver reports whether the run ended.
func (s *Simulation) IsGameOver() bool { return s.gameOver }

// IsPaused reports whether the run is paused.
func (s *Simulation) IsPaused() bool { return s.paused }

// Ticks returns the number of simulated ticks in this run.
func (s *Simulation) Ticks() int { return s.ticks }

// Pattern returns the running pattern, if any.
func (s *Simulation) Pattern() (config.Pattern, bool) { return s.planner.Current() }
