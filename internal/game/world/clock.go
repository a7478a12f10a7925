package world

import "time"

// Clock measures frame time from the wall clock. Long stalls, such as a
// debugger pause or a dragged window, are clamped to MaxStep so props never
// jump.
type Clock struct {
	MaxStep time.Duration

	now  func() time.Time
	last time.Time
}

// NewClock creates a clock. A non-positive maxStep disables clamping.
func NewClock(maxStep time.Duration) *Clock {
	return &Clock{MaxStep: maxStep, now: time.Now}
}

// Tick returns the seconds elapsed since the previous Tick. The first call
// returns 0.
func (c *Clock) Tick() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		return 0
	}
	if c.MaxStep > 0 && elapsed > c.MaxStep {
		elapsed = c.MaxStep
	}
	return elapsed.Seconds()
}
