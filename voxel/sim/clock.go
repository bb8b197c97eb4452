package sim

import "time"

// Clock converts wall-clock time into a whole number of fixed simulation
// ticks. Excess time beyond MaxCatchUp ticks is dropped so a stalled host does
// not cause a burst of catch-up ticks.
type Clock struct {
	Rate       int
	MaxCatchUp int

	acc time.Duration
}

func NewClock(rate int) *Clock {
	if rate <= 0 {
		rate = 60
	}
	return &Clock{Rate: rate, MaxCatchUp: 5}
}

// Interval is the duration of one tick.
func (c *Clock) Interval() time.Duration { return time.Second / time.Duration(c.Rate) }

// Advance accumulates dt and returns how many ticks to run now.
func (c *Clock) Advance(dt time.Duration) int {
	if dt < 0 {
		return 0
	}
	c.acc += dt
	iv := c.Interval()
	n := int(c.acc / iv)
	c.acc -= time.Duration(n) * iv
	if c.MaxCatchUp > 0 && n > c.MaxCatchUp {
		n = c.MaxCatchUp
	}
	return n
}
