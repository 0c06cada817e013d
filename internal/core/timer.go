package core

import "time"

// Timer is a repeating countdown driven by elapsed simulated time.
// When the countdown reaches zero the timer fires and restarts from the
// full period; any overshoot is discarded, so two fires are always at
// least one period of accumulated time apart.
type Timer struct {
	period    time.Duration
	remaining time.Duration
}

// NewTimer creates a timer that fires every period.
// A non-positive period fires on every tick.
func NewTimer(period time.Duration) *Timer {
	t := &Timer{period: period}
	t.Reset()
	return t
}

// Tick advances the timer by dt and reports whether it fired.
func (t *Timer) Tick(dt time.Duration) bool {
	if dt < 0 {
		dt = 0
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return false
	}
	t.remaining = t.period
	return true
}

// Reset restarts the countdown from the full period.
func (t *Timer) Reset() {
	t.remaining = t.period
}

// Remaining returns the time left until the next fire.
func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// Period returns the configured period.
func (t *Timer) Period() time.Duration {
	return t.period
}
