package sim

import (
	"testing"

	"github.com/vovakirdan/dinorun/internal/config"
)

// fixedSource returns the same draws forever.
type fixedSource struct {
	f float64
	n int
}

func (r fixedSource) Float64() float64 { return r.f }

func (r fixedSource) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

// recorder counts hook invocations.
type recorder struct {
	NopEvents
	started     int
	jumps       int
	ducks       int
	avoided     int
	comboResets int
	lastCombo   int
	maxSpeed    int
	nights      int
	perfect     int
	gameOvers   int
	collected   []PowerUpKind
	final       SessionStats
}

func (r *recorder) OnSessionStarted(config.DifficultyProfile) { r.started++ }
func (r *recorder) OnJump()                                   { r.jumps++ }
func (r *recorder) OnDuck()                                   { r.ducks++ }
func (r *recorder) OnObstacleAvoided()                        { r.avoided++ }
func (r *recorder) OnMaxSpeedReached()                        { r.maxSpeed++ }
func (r *recorder) OnNightModeEntered()                       { r.nights++ }
func (r *recorder) OnPerfectPatternCompleted()                { r.perfect++ }

func (r *recorder) OnComboChanged(v int) {
	r.lastCombo = v
	if v == 0 {
		r.comboResets++
	}
}

func (r *recorder) OnPowerUpCollected(k PowerUpKind) {
	r.collected = append(r.collected, k)
}

func (r *recorder) OnGameOver(s SessionStats, _ config.DifficultyProfile) {
	r.gameOvers++
	r.final = s
}

// quietConfig disables every spawn source so tests place entities by hand.
func quietConfig() config.DinoConfig {
	cfg := config.DefaultDinoConfig()
	cfg.Spawn.BaseInterval = 1e9
	cfg.Spawn.MinInterval = 1e9
	cfg.Patterns.Enabled = false
	return cfg
}

func newQuietSim(difficulty string) (*Simulation, *recorder) {
	rec := &recorder{}
	s := New(quietConfig(), difficulty, "dino", fixedSource{f: 0.99}, rec)
	return s, rec
}

func TestJumpLandsOnDeterministicTick(t *testing.T) {
	s, rec := newQuietSim("medium")

	s.Jump()
	if rec.jumps != 1 {
		t.Fatalf("OnJump calls = %d, expected 1", rec.jumps)
	}

	// 23 up, 1.5 gravity: still airborne after 31 ticks, lands on the 32nd.
	for i := 0; i < 31; i++ {
		s.Tick()
	}
	p := s.Player()
	if !p.Jumping {
		t.Fatal("player landed early")
	}
	if p.Y != 15.5 {
		t.Errorf("Y after 31 ticks = %v, expected 15.5", p.Y)
	}

	s.Tick()
	p = s.Player()
	if p.Y != 0 || p.VelocityY != 0 || p.Jumping {
		t.Errorf("after landing Y=%v vel=%v jumping=%v, expected 0 0 false", p.Y, p.VelocityY, p.Jumping)
	}

	// 5 take-off particles are still alive, 8 landing particles were added.
	if got := len(s.Particles()); got != jumpBurst+landBurst {
		t.Errorf("particles = %d, expected %d", got, jumpBurst+landBurst)
	}
}

func TestJumpIsNoOpWhenIllegal(t *testing.T) {
	s, rec := newQuietSim("medium")

	s.Jump()
	s.Tick()
	s.Jump() // airborne
	if rec.jumps != 1 {
		t.Errorf("jumps while airborne counted: %d", rec.jumps)
	}

	s.StartDuck() // airborne
	if s.Player().Ducking {
		t.Error("ducking allowed while airborne")
	}

	for s.Player().Jumping {
		s.Tick()
	}
	s.TogglePause()
	s.Jump()
	if rec.jumps != 1 {
		t.Errorf("jump while paused counted: %d", rec.jumps)
	}
	if s.Stats().Jumps != 1 {
		t.Errorf("Stats().Jumps = %d, expected 1", s.Stats().Jumps)
	}
}

func TestDuckChangesHitbox(t *testing.T) {
	s, rec := newQuietSim("medium")
	cfg := s.Config()

	standing := s.Player().Hitbox()
	s.StartDuck()
	s.StartDuck()
	if rec.ducks != 1 || s.Stats().Ducks != 1 {
		t.Errorf("ducks = %d/%d, expected a single duck", rec.ducks, s.Stats().Ducks)
	}

	p := s.Player()
	if p.Height != cfg.Player.DuckHeight {
		t.Errorf("duck height = %v, expected %v", p.Height, cfg.Player.DuckHeight)
	}
	ducked := p.Hitbox()
	if ducked.Top() >= standing.Top() {
		t.Errorf("ducked hitbox top %v not below standing top %v", ducked.Top(), standing.Top())
	}
	if ducked.Y <= 0 {
		t.Errorf("ducked hitbox should be raised off the ground, got y=%v", ducked.Y)
	}

	s.Jump()
	p = s.Player()
	if p.Ducking || p.Height != cfg.Player.Height {
		t.Error("jump should cancel ducking")
	}
}

func TestEndDuckRestoresHeight(t *testing.T) {
	s, _ := newQuietSim("medium")
	s.StartDuck()
	s.EndDuck()
	if p := s.Player(); p.Ducking || p.Height != s.Config().Player.Height {
		t.Errorf("EndDuck left ducking=%v height=%v", p.Ducking, p.Height)
	}
}

func TestCollisionInset(t *testing.T) {
	const w = 30.0
	tests := []struct {
		name    string
		overlap float64 // how far the obstacle sprite reaches into the player hitbox
		want    bool
	}{
		{"outer margin only", 0.05 * w, false},
		{"just past margin", 0.15 * w, true},
		{"deep", 0.5 * w, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newQuietSim("medium")
			hb := s.Player().Hitbox()
			s.obstacles.Add(Obstacle{Kind: ObstacleGround, X: hb.Right() - tt.overlap, Width: w, Height: 20})
			if got := s.collides(); got != tt.want {
				t.Errorf("collides() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestObstacleHitboxIsInset(t *testing.T) {
	o := Obstacle{X: 100, Y: 10, Width: 50, Height: 40}
	hb := o.Hitbox()
	if hb.X != 105 || hb.Width != 40 || hb.Y != 10 || hb.Height != 32 {
		t.Errorf("Hitbox() = %+v, expected {105 10 40 32}", hb)
	}
}

func TestProtectivePowerUpsPreventGameOver(t *testing.T) {
	for _, kind := range []PowerUpKind{PowerUpShield, PowerUpInvincibility} {
		t.Run(string(kind), func(t *testing.T) {
			s, rec := newQuietSim("medium")
			s.powerUp.Activate(kind)

			for i := 0; i < 100; i++ {
				s.obstacles.Clear()
				s.obstacles.Add(Obstacle{Kind: ObstacleGround, X: s.Player().X, Width: 40, Height: 40})
				if res := s.Tick(); res.IsGameOver {
					t.Fatalf("game over on tick %d with %s active", i, kind)
				}
			}
			if rec.gameOvers != 0 {
				t.Errorf("OnGameOver called %d times", rec.gameOvers)
			}
		})
	}
}

func TestCollisionEndsRun(t *testing.T) {
	s, rec := newQuietSim("hard")
	s.powerUp.Activate(PowerUpDoublePoints)
	s.Jump()
	s.obstacles.Add(Obstacle{Kind: ObstacleGround, X: s.Player().X + 5, Width: 40, Height: 200})

	res := s.Tick()
	if !res.IsGameOver || !s.IsGameOver() {
		t.Fatal("expected game over")
	}
	if res.ScoreDelta != 0 || res.Score != 0 {
		t.Errorf("no score on the losing tick, got delta=%d score=%d", res.ScoreDelta, res.Score)
	}
	if kind, _ := s.ActivePowerUp(); kind != PowerUpNone {
		t.Errorf("power-up %s still active after game over", kind)
	}
	if rec.gameOvers != 1 {
		t.Errorf("OnGameOver calls = %d, expected 1", rec.gameOvers)
	}
	if rec.final.Jumps != 1 || rec.final.Ticks != 1 {
		t.Errorf("final stats = %+v", rec.final)
	}

	explosions := 0
	for _, p := range s.Particles() {
		if p.Kind == BurstExplosion {
			explosions++
		}
	}
	if explosions != explosionBurst {
		t.Errorf("explosion particles = %d, expected %d", explosions, explosionBurst)
	}

	// Further ticks and pause toggles do nothing.
	after := s.Tick()
	if after.Tick != res.Tick || rec.gameOvers != 1 {
		t.Error("tick after game over advanced the run")
	}
	s.TogglePause()
	if s.IsPaused() {
		t.Error("TogglePause should be a no-op after game over")
	}
}

func TestPauseFreezesTick(t *testing.T) {
	s, _ := newQuietSim("medium")
	s.Tick()
	s.TogglePause()
	before := s.Score()
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	if s.Score() != before || s.Ticks() != 1 {
		t.Errorf("paused run advanced: score %d->%d ticks=%d", before, s.Score(), s.Ticks())
	}
	s.TogglePause()
	s.Tick()
	if s.Ticks() != 2 {
		t.Errorf("Ticks() = %d after resume, expected 2", s.Ticks())
	}
}

func TestScoring(t *testing.T) {
	tests := []struct {
		name       string
		difficulty string
		combo      int
		double     bool
		want       int
	}{
		{"easy", "easy", 0, false, 2},
		{"medium", "medium", 0, false, 2},
		{"insane", "insane", 0, false, 3},
		{"combo bonus", "medium", 25, false, 4},
		{"double points", "medium", 0, true, 3},
		{"insane double points", "insane", 10, true, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newQuietSim(tt.difficulty)
			if tt.combo > 0 {
				s.combo.value = tt.combo
				s.combo.timer = 100
			}
			if tt.double {
				s.powerUp.Activate(PowerUpDoublePoints)
			}
			res := s.Tick()
			if res.ScoreDelta != tt.want {
				t.Errorf("ScoreDelta = %d, expected %d", res.ScoreDelta, tt.want)
			}
		})
	}
}

func TestResetScalesWithDifficulty(t *testing.T) {
	tests := []struct {
		tag      string
		speed    float64
		interval float64
	}{
		{"easy", 4, 144},
		{"medium", 5, 120},
		{"hard", 6.5, 96},
		{"bogus", 5, 120},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			s := New(config.DefaultDinoConfig(), tt.tag, "dino", fixedSource{f: 0.99}, nil)
			if s.GameSpeed() != tt.speed {
				t.Errorf("GameSpeed() = %v, expected %v", s.GameSpeed(), tt.speed)
			}
			if s.SpawnInterval() != tt.interval {
				t.Errorf("SpawnInterval() = %v, expected %v", s.SpawnInterval(), tt.interval)
			}
		})
	}
}

func TestResetClearsRun(t *testing.T) {
	s, rec := newQuietSim("medium")
	s.Jump()
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	s.obstacles.Add(Obstacle{X: 300, Width: 20, Height: 20})
	s.powerUp.Activate(PowerUpSlowMotion)

	s.Reset("insane", "ninja")
	if rec.started != 2 {
		t.Errorf("OnSessionStarted calls = %d, expected 2", rec.started)
	}
	if s.Score() != 0 || s.Ticks() != 0 || len(s.Obstacles()) != 0 || len(s.Particles()) != 0 {
		t.Error("Reset left run state behind")
	}
	if s.Player().Jumping || s.Stats() != (SessionStats{}) {
		t.Error("Reset left player or stats behind")
	}
	if kind, _ := s.ActivePowerUp(); kind != PowerUpNone {
		t.Errorf("Reset left power-up %s active", kind)
	}
	if s.Difficulty().Tier != config.DifficultyInsane || s.Character() != CharacterNinja {
		t.Errorf("Reset selected %s/%s", s.Difficulty().Tier, s.Character())
	}
	if s.GameSpeed() != 8 {
		t.Errorf("GameSpeed() = %v, expected 8", s.GameSpeed())
	}
}

func TestParseCharacter(t *testing.T) {
	tests := map[string]Character{
		"robot":  CharacterRobot,
		"NINJA":  CharacterNinja,
		"dino":   CharacterDino,
		"dragon": CharacterDino,
		"":       CharacterDino,
	}
	for in, want := range tests {
		if got := ParseCharacter(in); got != want {
			t.Errorf("ParseCharacter(%q) = %s, expected %s", in, got, want)
		}
	}
}

func TestSpeedRampCapsAndSignalsOnce(t *testing.T) {
	s, rec := newQuietSim("medium")
	s.gameSpeed = s.cfg.Physics.MaxSpeed - 0.0005

	for i := 0; i < 5; i++ {
		s.Tick()
	}
	if s.GameSpeed() != s.cfg.Physics.MaxSpeed {
		t.Errorf("GameSpeed() = %v, expected cap %v", s.GameSpeed(), s.cfg.Physics.MaxSpeed)
	}
	if rec.maxSpeed != 1 {
		t.Errorf("OnMaxSpeedReached calls = %d, expected 1", rec.maxSpeed)
	}
}

func TestSpawnInterval(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	tests := []struct {
		name  string
		tier  string
		speed float64
		want  float64
	}{
		{"medium at base speed", "medium", 5, 95},
		{"easy at base speed", "easy", 4, 124},
		{"insane at max speed floors", "insane", 18, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpawnInterval(120, tt.speed, cfg.Difficulty(tt.tier), 35, 5)
			if got != tt.want {
				t.Errorf("SpawnInterval() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestSpawnIntervalRecomputedAfterScoring(t *testing.T) {
	s := New(config.DefaultDinoConfig(), "medium", "dino", fixedSource{f: 0.99}, nil)
	s.Tick()
	want := SpawnInterval(120, s.GameSpeed(), s.Difficulty(), 35, 5)
	if s.SpawnInterval() != want {
		t.Errorf("SpawnInterval() = %v, expected %v", s.SpawnInterval(), want)
	}
}

func TestRegularSpawnAtFieldEdge(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	cfg.Patterns.Enabled = false
	s := New(cfg, "medium", "dino", fixedSource{f: 0.99}, nil)

	for len(s.Obstacles()) == 0 && s.Ticks() < 200 {
		s.Tick()
	}
	obs := s.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("obstacles = %d, expected 1", len(obs))
	}
	if obs[0].Kind != ObstacleGround {
		t.Errorf("kind = %s before flying score threshold", obs[0].Kind)
	}
	// Spawned at the field edge this tick, not yet moved.
	if obs[0].X != cfg.Field.Width {
		t.Errorf("X = %v, expected %v", obs[0].X, cfg.Field.Width)
	}
	if len(s.PowerUps()) != 0 {
		t.Error("power-up spawned below the score threshold")
	}
}

func TestFlyingObstacleHeights(t *testing.T) {
	cfg := quietConfig()
	for i, mult := range flyingHeights {
		s := New(cfg, "medium", "dino", fixedSource{f: 0, n: i}, nil)
		s.score = 500
		s.spawnObstacle()
		o := s.Obstacles()[0]
		if o.Kind != ObstacleFlying {
			t.Fatalf("kind = %s, expected flying", o.Kind)
		}
		if want := mult * cfg.Player.Height; o.Y != want {
			t.Errorf("height option %d: Y = %v, expected %v", i, o.Y, want)
		}
	}
}

func TestFlyingHeightFollowsDuck(t *testing.T) {
	cfg := quietConfig()
	s := New(cfg, "medium", "dino", fixedSource{f: 0, n: 0}, nil)
	s.score = 500
	s.StartDuck()
	if !s.Player().Ducking {
		t.Fatal("player should be ducking")
	}

	s.spawnObstacle()
	o := s.Obstacles()[0]
	if want := flyingHeights[0] * cfg.Player.DuckHeight; o.Y != want {
		t.Errorf("Y while ducking = %v, expected %v", o.Y, want)
	}
}

func TestPowerUpSpawnGating(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		draw   float64
		gated  bool
		spawns bool
	}{
		{"below score", 299, 0, true, false},
		{"draw under chance", 300, 0.05, true, true},
		{"draw over chance", 300, 0.5, true, false},
		{"ungated", 300, 0.5, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Spawn.DifficultyGatedPowerUps = tt.gated
			s := New(cfg, "medium", "dino", fixedSource{f: tt.draw}, nil)
			s.score = tt.score
			s.spawnPowerUp()
			if got := len(s.PowerUps()) == 1; got != tt.spawns {
				t.Errorf("spawned = %v, expected %v", got, tt.spawns)
			}
		})
	}
}

func TestCollectPowerUp(t *testing.T) {
	s, rec := newQuietSim("medium")
	p := s.Player()
	s.powerUps.Add(PowerUp{Kind: PowerUpSlowMotion, X: p.X, Y: 10, Width: 30, Height: 30})
	speed := s.GameSpeed()

	res := s.Tick()
	if res.ActivePowerUp != PowerUpSlowMotion {
		t.Fatalf("ActivePowerUp = %q, expected slow-motion", res.ActivePowerUp)
	}
	if res.PowerUpRemaining != s.cfg.PowerUps.Duration-1 {
		t.Errorf("PowerUpRemaining = %d, expected %d", res.PowerUpRemaining, s.cfg.PowerUps.Duration-1)
	}
	if len(s.PowerUps()) != 0 {
		t.Error("collected power-up still on the field")
	}
	if len(rec.collected) != 1 || s.Stats().PowerUpsCollected != 1 {
		t.Errorf("collection not recorded: %v", rec.collected)
	}
	// Halved, then one tick of ramp.
	want := speed*0.5 + s.cfg.Physics.Acceleration
	if diff := s.GameSpeed() - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("GameSpeed() = %v, expected %v", s.GameSpeed(), want)
	}
}

func TestPowerUpExpires(t *testing.T) {
	cfg := quietConfig()
	cfg.PowerUps.Duration = 3
	s := New(cfg, "medium", "dino", fixedSource{f: 0.99}, nil)
	s.powerUp.Activate(PowerUpShield)

	for i := 0; i < 2; i++ {
		s.Tick()
	}
	if kind, left := s.ActivePowerUp(); kind != PowerUpShield || left != 1 {
		t.Errorf("after 2 ticks = %s/%d, expected shield/1", kind, left)
	}
	s.Tick()
	if kind, left := s.ActivePowerUp(); kind != PowerUpNone || left != 0 {
		t.Errorf("after expiry = %s/%d, expected none/0", kind, left)
	}
}

func TestObstacleCulling(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		culled bool
	}{
		{"right edge still on screen", -1, false},
		{"fully past", -31, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Field[Obstacle]
			f.Add(Obstacle{X: tt.x, Width: 30, Height: 30})
			avoided := 0
			f.Advance(func(*Obstacle) {}, func(o *Obstacle) bool { return o.X+o.Width < 0 }, func(Obstacle) { avoided++ })
			if got := f.Len() == 0; got != tt.culled {
				t.Errorf("culled = %v, expected %v", got, tt.culled)
			}
			if tt.culled && avoided != 1 {
				t.Errorf("culled callback calls = %d, expected 1", avoided)
			}
		})
	}
}

func TestFieldCullsAdjacentEntities(t *testing.T) {
	var f Field[Obstacle]
	for _, x := range []float64{-100, -90, 10, -80, 20} {
		f.Add(Obstacle{X: x, Width: 30})
	}
	f.Advance(func(*Obstacle) {}, func(o *Obstacle) bool { return o.X+o.Width < 0 }, nil)

	items := f.Items()
	if len(items) != 2 || items[0].X != 10 || items[1].X != 20 {
		t.Errorf("survivors = %+v, expected x=10 and x=20 in order", items)
	}
}

func TestComboMonotonicityAndDecay(t *testing.T) {
	s, rec := newQuietSim("medium")
	decay := s.cfg.Combo.DecayTicks

	for n := 1; n <= 5; n++ {
		s.obstacles.Add(Obstacle{X: -500, Width: 30, Height: 30})
		res := s.Tick()
		if res.Combo != n {
			t.Fatalf("combo after avoid %d = %d", n, res.Combo)
		}
		if n < 5 {
			// Gap of decay-1 ticks keeps the chain alive.
			for i := 0; i < decay-2; i++ {
				s.Tick()
			}
		}
	}
	if s.Stats().MaxCombo != 5 || s.Stats().ObstaclesAvoided != 5 {
		t.Errorf("stats = %+v", s.Stats())
	}

	for i := 0; i < decay-2; i++ {
		s.Tick()
	}
	if s.Combo() != 5 {
		t.Fatalf("combo decayed early: %d", s.Combo())
	}
	s.Tick()
	if s.Combo() != 0 || s.combo.Timer() != 0 {
		t.Fatalf("combo = %d timer = %d after decay window", s.Combo(), s.combo.Timer())
	}
	for i := 0; i < 2*decay; i++ {
		s.Tick()
	}
	if rec.comboResets != 1 {
		t.Errorf("combo reset signalled %d times, expected 1", rec.comboResets)
	}
}

func TestComboInvariant(t *testing.T) {
	c := newCombo(3)
	check := func() {
		t.Helper()
		if (c.Value() > 0) != (c.Timer() > 0) {
			t.Fatalf("combo=%d timer=%d breaks invariant", c.Value(), c.Timer())
		}
	}
	check()
	c.Increment()
	check()
	for i := 0; i < 5; i++ {
		c.Decay()
		check()
	}
}

func TestPowerUpReactivationIsIdempotent(t *testing.T) {
	c := newPowerUpController(500)
	speed := 10.0

	speed *= c.Activate(PowerUpSlowMotion)
	for i := 0; i < 100; i++ {
		c.Countdown()
	}
	speed *= c.Activate(PowerUpSlowMotion)

	if speed != 5 {
		t.Errorf("speed = %v, expected 5 (single halving)", speed)
	}
	if kind, left := c.Active(); kind != PowerUpSlowMotion || left != 500 {
		t.Errorf("Active() = %s/%d, expected slow-motion/500", kind, left)
	}
}

func TestPowerUpReplacement(t *testing.T) {
	c := newPowerUpController(500)
	speed := 10.0

	speed *= c.Activate(PowerUpSlowMotion)
	speed *= c.Activate(PowerUpShield)
	if speed != 10 {
		t.Errorf("speed = %v after replacing slow motion, expected 10", speed)
	}
	if !c.Protects() {
		t.Error("shield should protect")
	}
	speed *= c.Activate(PowerUpDoublePoints)
	if c.Protects() || !c.DoublesPoints() {
		t.Error("double points should replace shield")
	}
}

func TestDayNightCycle(t *testing.T) {
	cfg := quietConfig()
	cfg.DayNight.CycleTicks = 3
	rec := &recorder{}
	s := New(cfg, "medium", "dino", fixedSource{f: 0.99}, rec)

	var res TickResult
	for i := 0; i < 3; i++ {
		res = s.Tick()
	}
	if !res.IsNight || rec.nights != 1 {
		t.Errorf("after one cycle night=%v signals=%d", res.IsNight, rec.nights)
	}
	for i := 0; i < 3; i++ {
		res = s.Tick()
	}
	if res.IsNight || rec.nights != 1 {
		t.Errorf("after two cycles night=%v signals=%d", res.IsNight, rec.nights)
	}
}

func TestPatternSubstitutesRegularSpawns(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	cfg.Patterns.TriggerScore = 0
	cfg.Patterns.TriggerChance = 1
	cfg.Patterns.Catalog = []config.Pattern{{
		Name:    "Pair",
		Warning: "Pair!",
		Steps: []config.PatternStep{
			{Kind: "ground", Width: 20, Height: 30, Delay: 0},
			{Kind: "flying", Width: 50, Height: 35, Y: 40, Delay: 2},
		},
	}}
	rec := &recorder{}
	s := New(cfg, "medium", "dino", fixedSource{f: 0.5}, rec)
	s.score = 1

	res := s.Tick()
	if res.PatternWarning != "Pair!" || res.PatternName != "Pair" {
		t.Fatalf("start tick warning=%q name=%q", res.PatternWarning, res.PatternName)
	}
	if len(s.Obstacles()) != 1 || !s.Obstacles()[0].Pattern {
		t.Fatalf("first step not emitted on the start tick")
	}

	s.Tick()
	res = s.Tick()
	if res.PatternWarning != "" {
		t.Errorf("warning repeated: %q", res.PatternWarning)
	}
	obs := s.Obstacles()
	if len(obs) != 2 || obs[1].Kind != ObstacleFlying || obs[1].Y != 40 {
		t.Fatalf("second step = %+v", obs)
	}
	if s.spawnTimer != 0 {
		t.Errorf("regular spawn timer ran during a pattern: %d", s.spawnTimer)
	}

	// Clears one tick after the last emission. The trigger fires again on
	// the same tick because the chance is 1.
	s.Tick()
	if rec.perfect != 1 {
		t.Errorf("OnPerfectPatternCompleted calls = %d, expected 1", rec.perfect)
	}
}

func TestPlannerLifecycle(t *testing.T) {
	p := NewPlanner(config.DinoPatterns{
		Enabled:       true,
		TriggerScore:  200,
		TriggerChance: 0.15,
		Catalog: []config.Pattern{{Name: "A", Steps: []config.PatternStep{
			{Kind: "ground", Delay: 0},
			{Kind: "ground", Delay: 3},
		}}},
	})
	rng := fixedSource{f: 0.1}

	if res := p.Advance(200, rng); res.Started != nil {
		t.Fatal("pattern started at the trigger score, expected strictly greater")
	}

	res := p.Advance(201, rng)
	if res.Started == nil || res.Step == nil {
		t.Fatalf("start tick = %+v", res)
	}

	emitted := 1
	ticks := 0
	for !res.Completed {
		res = p.Advance(0, rng)
		ticks++
		if res.Step != nil {
			emitted++
		}
		if ticks > 10 {
			t.Fatal("pattern never completed")
		}
	}
	if emitted != 2 {
		t.Errorf("steps emitted = %d, expected 2", emitted)
	}
	// Step two at timer 3, completion on the following tick.
	if ticks != 4 {
		t.Errorf("completed after %d ticks, expected 4", ticks)
	}
	if p.Active() {
		t.Error("planner still active after completion")
	}
}

func TestPlannerDisabled(t *testing.T) {
	cfg := config.DefaultDinoConfig().Patterns
	cfg.Enabled = false
	p := NewPlanner(cfg)
	if res := p.Advance(10_000, fixedSource{f: 0}); res.Started != nil {
		t.Error("disabled planner started a pattern")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (TickResult, SessionStats) {
		s := New(config.DefaultDinoConfig(), "hard", "robot", NewSource(42), nil)
		var res TickResult
		for i := 0; i < 3000 && !res.IsGameOver; i++ {
			if i%37 == 0 {
				s.Jump()
			}
			res = s.Tick()
		}
		return res, s.Stats()
	}

	r1, s1 := run()
	r2, s2 := run()
	if r1.Score != r2.Score || r1.Tick != r2.Tick {
		t.Errorf("runs diverged: score %d vs %d, tick %d vs %d", r1.Score, r2.Score, r1.Tick, r2.Tick)
	}
	if s1 != s2 {
		t.Errorf("stats diverged: %+v vs %+v", s1, s2)
	}
}

func TestMultiFansOutAndDrainsUnlocks(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	src := &unlockStub{ids: []string{"firstJump"}}
	ev := Multi(a, nil, b, src)

	ev.OnJump()
	if a.jumps != 1 || b.jumps != 1 {
		t.Errorf("fan out jumps = %d/%d", a.jumps, b.jumps)
	}
	ids := ev.(UnlockSource).TakeUnlocked()
	if len(ids) != 1 || ids[0] != "firstJump" {
		t.Errorf("TakeUnlocked() = %v", ids)
	}
}

type unlockStub struct {
	NopEvents
	ids []string
}

func (u *unlockStub) TakeUnlocked() []string {
	ids := u.ids
	u.ids = nil
	return ids
}
