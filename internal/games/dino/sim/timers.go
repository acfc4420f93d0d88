package sim

// Combo counts consecutive avoided obstacles. The count survives while its
// decay timer is running; combo > 0 exactly when timer > 0.
type Combo struct {
	value      int
	timer      int
	decayTicks int
}

func newCombo(decayTicks int) Combo {
	return Combo{decayTicks: decayTicks}
}

// Value returns the current combo.
func (c *Combo) Value() int { return c.value }

// Timer returns the ticks left before the combo resets.
func (c *Combo) Timer() int { return c.timer }

// Increment adds one avoided obstacle and restarts the decay timer.
func (c *Combo) Increment() int {
	c.value++
	c.timer = c.decayTicks
	return c.value
}

// Decay counts the timer down and reports whether the combo reset on this
// tick. A combo of zero does not decay.
func (c *Combo) Decay() bool {
	if c.value == 0 {
		return false
	}
	c.timer--
	if c.timer <= 0 {
		c.value = 0
		c.timer = 0
		return true
	}
	return false
}

// DayNight toggles between day and night every cycle ticks.
type DayNight struct {
	timer int
	cycle int
	night bool
}

func newDayNight(cycle int) DayNight {
	return DayNight{cycle: cycle}
}

// Night reports whether it is currently night.
func (d *DayNight) Night() bool { return d.night }

// Advance counts one tick and reports whether night began on it.
func (d *DayNight) Advance() (nightFell bool) {
	if d.cycle <= 0 {
		return false
	}
	d.timer++
	if d.timer < d.cycle {
		return false
	}
	d.timer = 0
	d.night = !d.night
	return d.night
}
