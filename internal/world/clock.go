package world

import "time"

// Clock is the run's play-time clock. It counts minutes and fires a single
// time-up once the clear time is reached.
type Clock struct {
	elapsed   time.Duration
	minute    time.Duration
	clearTime time.Duration
	minutes   int
	paused    bool
	timeUp    bool
}

// NewClock returns a running clock. A non-positive clearTime never expires.
func NewClock(minute, clearTime time.Duration) *Clock {
	if minute <= 0 {
		minute = time.Minute
	}
	return &Clock{minute: minute, clearTime: clearTime}
}

// Advance adds dt and reports how many minute marks were crossed and whether
// time ran out during this call.
func (c *Clock) Advance(dt time.Duration) (minutes int, timeUp bool) {
	if c.paused || c.timeUp || dt <= 0 {
		return 0, false
	}
	c.elapsed += dt
	for c.elapsed >= time.Duration(c.minutes+1)*c.minute {
		c.minutes++
		minutes++
	}
	if c.clearTime > 0 && c.elapsed >= c.clearTime {
		c.timeUp = true
		timeUp = true
	}
	return minutes, timeUp
}

func (c *Clock) Pause()  { c.paused = true }
func (c *Clock) Resume() { c.paused = false }

func (c *Clock) Reset() {
	c.elapsed = 0
	c.minutes = 0
	c.timeUp = false
	c.paused = false
}

func (c *Clock) Elapsed() time.Duration { return c.elapsed }
func (c *Clock) Minutes() int           { return c.minutes }
func (c *Clock) Paused() bool           { return c.paused }
func (c *Clock) TimeUp() bool           { return c.timeUp }
