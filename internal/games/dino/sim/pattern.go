package sim

import "github.com/vovakirdan/dinorun/internal/config"

// PlanResult is what the planner produced on one tick.
type PlanResult struct {
	Step      *config.PatternStep // obstacle to emit, nil if none
	Started   *config.Pattern     // pattern that began this tick
	Completed bool                // a pattern finished this tick
}

// Planner runs scripted obstacle patterns. While a pattern is active it
// replaces the regular spawner.
type Planner struct {
	cfg      config.DinoPatterns
	current  int // index into cfg.Catalog, -1 when idle
	progress int // steps already emitted
	timer    int // ticks since the pattern started
}

// NewPlanner creates an idle planner over the given catalog.
func NewPlanner(cfg config.DinoPatterns) *Planner {
	return &Planner{cfg: cfg, current: -1}
}

// Reset drops any active pattern.
func (p *Planner) Reset() {
	p.current = -1
	p.progress = 0
	p.timer = 0
}

// Active reports whether a pattern is running.
func (p *Planner) Active() bool {
	return p.current >= 0
}

// Current returns the running pattern.
func (p *Planner) Current() (config.Pattern, bool) {
	if !p.Active() {
		return config.Pattern{}, false
	}
	return p.cfg.Catalog[p.current], true
}

// Progress returns the emitted step count and ticks since start.
func (p *Planner) Progress() (emitted, ticks int) {
	return p.progress, p.timer
}

// Advance runs one planner tick:
//  1. an active pattern ages; if every step was already emitted it clears
//     and reports completion
//  2. an idle planner may start a pattern once score passes the trigger
//  3. the next step is emitted when its delay has elapsed
//
// A new pattern emits its zero-delay first step on the tick it starts.
func (p *Planner) Advance(score int, rng Source) PlanResult {
	var res PlanResult

	if p.Active() {
		p.timer++
		if p.progress >= len(p.cfg.Catalog[p.current].Steps) {
			p.Reset()
			res.Completed = true
		}
	}

	if !p.Active() && p.shouldTrigger(score, rng) {
		p.current = rng.Intn(len(p.cfg.Catalog))
		p.progress = 0
		p.timer = 0
		started := p.cfg.Catalog[p.current]
		res.Started = &started
	}

	if p.Active() {
		steps := p.cfg.Catalog[p.current].Steps
		if p.progress < len(steps) && p.timer >= steps[p.progress].Delay {
			step := steps[p.progress]
			p.progress++
			res.Step = &step
		}
	}

	return res
}

func (p *Planner) shouldTrigger(score int, rng Source) bool {
	if !p.cfg.Enabled || len(p.cfg.Catalog) == 0 {
		return false
	}
	return score > p.cfg.TriggerScore && rng.Float64() < p.cfg.TriggerChance
}
