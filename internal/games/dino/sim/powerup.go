package sim

// PowerUpKind names a timed modifier.
type PowerUpKind string

const (
	PowerUpNone          PowerUpKind = ""
	PowerUpShield        PowerUpKind = "shield"
	PowerUpSlowMotion    PowerUpKind = "slow-motion"
	PowerUpInvincibility PowerUpKind = "invincibility"
	PowerUpDoublePoints  PowerUpKind = "double-points"
)

// PowerUpKinds lists every kind in spawn draw order.
var PowerUpKinds = []PowerUpKind{PowerUpShield, PowerUpSlowMotion, PowerUpInvincibility, PowerUpDoublePoints}

// Label returns a HUD label for the kind.
func (k PowerUpKind) Label() string {
	switch k {
	case PowerUpShield:
		return "Shield Active"
	case PowerUpSlowMotion:
		return "Slow Motion"
	case PowerUpInvincibility:
		return "Invincible"
	case PowerUpDoublePoints:
		return "Double Points"
	default:
		return ""
	}
}

const (
	slowFactor    = 0.5
	restoreFactor = 2.0
)

// PowerUpController holds at most one active power-up and its remaining
// ticks. Speed effects are returned as multipliers for the caller to apply
// to the game speed.
type PowerUpController struct {
	active    PowerUpKind
	remaining int
	duration  int
}

func newPowerUpController(duration int) PowerUpController {
	return PowerUpController{duration: duration}
}

// Active returns the active kind and its remaining ticks.
func (c *PowerUpController) Active() (PowerUpKind, int) {
	return c.active, c.remaining
}

// Activate replaces any active power-up with kind at full duration.
// The current power-up is deactivated first, so re-entering slow motion
// nets a single halving.
func (c *PowerUpController) Activate(kind PowerUpKind) (speedFactor float64) {
	speedFactor = c.Deactivate()
	c.active = kind
	c.remaining = c.duration
	if kind == PowerUpSlowMotion {
		speedFactor *= slowFactor
	}
	return speedFactor
}

// Deactivate clears the active power-up. Ending slow motion doubles the
// speed rather than restoring the pre-activation value.
func (c *PowerUpController) Deactivate() (speedFactor float64) {
	speedFactor = 1
	if c.active == PowerUpSlowMotion {
		speedFactor = restoreFactor
	}
	c.active = PowerUpNone
	c.remaining = 0
	return speedFactor
}

// Countdown consumes one tick and expires the power-up at zero.
func (c *PowerUpController) Countdown() (speedFactor float64, expired bool) {
	if c.active == PowerUpNone {
		return 1, false
	}
	c.remaining--
	if c.remaining <= 0 {
		return c.Deactivate(), true
	}
	return 1, false
}

// Protects reports whether terminal collisions are suppressed.
func (c *PowerUpController) Protects() bool {
	return c.active == PowerUpShield || c.active == PowerUpInvincibility
}

// DoublesPoints reports whether the scoring bonus path is enabled.
func (c *PowerUpController) DoublesPoints() bool {
	return c.active == PowerUpDoublePoints
}
