package combat

// DefaultCooldown is the attack cooldown in seconds.
const DefaultCooldown = 0.5

// tickEpsilon absorbs the drift of summing many fractional frame steps.
const tickEpsilon = 1e-9

// Cooldown is a non-repeating timer. It starts un-elapsed.
type Cooldown struct {
	Duration  float64
	Remaining float64
}

// NewCooldown returns a cooldown that needs a full duration to elapse.
func NewCooldown(duration float64) *Cooldown {
	return &Cooldown{Duration: duration, Remaining: duration}
}

// Tick advances the timer by dt seconds, stopping at zero.
func (c *Cooldown) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	c.Remaining -= dt
	if c.Remaining < tickEpsilon {
		c.Remaining = 0
	}
}

// Ready returns true once the full duration has elapsed.
func (c *Cooldown) Ready() bool {
	return c.Remaining <= 0
}

// Reset restarts the timer.
func (c *Cooldown) Reset() {
	c.Remaining = c.Duration
}
