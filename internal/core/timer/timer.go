// Package timer provides tick-driven countdowns for delayed transitions.
//
// A Countdown replaces a coroutine wait: the owner stores it as a field and a
// system advances it once per tick with that tick's delta. Cancel clears the
// field, so an expiry can only ever be observed from the Advance call that
// crossed zero while the countdown was still armed.
package timer

import (
	"math"
	"time"
)

// Countdown is a one-shot timer. The zero value is idle.
type Countdown struct {
	remaining time.Duration
	armed     bool
}

// Start arms the countdown for d, replacing any pending run.
// A non-positive d expires on the next Advance, even with a zero delta.
func (c *Countdown) Start(d time.Duration) {
	c.remaining = d
	c.armed = true
}

// Cancel disarms the countdown. Safe to call when idle.
func (c *Countdown) Cancel() {
	if !c.armed {
		return
	}
	c.remaining = 0
	c.armed = false
}

// Advance subtracts dt and reports whether the countdown expired during this
// call. It reports true at most once per Start.
func (c *Countdown) Advance(dt time.Duration) bool {
	if !c.armed {
		return false
	}
	c.remaining -= dt
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.armed = false
	return true
}

// Armed reports whether an expiry is pending.
func (c *Countdown) Armed() bool { return c.armed }

// Remaining returns the time left, zero when idle.
func (c *Countdown) Remaining() time.Duration { return c.remaining }

// Scale converts a tick delta into participant-local time.
// Non-positive and NaN scales yield zero.
func Scale(dt time.Duration, scale float64) time.Duration {
	if math.IsNaN(scale) || scale <= 0 {
		return 0
	}
	return time.Duration(float64(dt) * scale)
}
