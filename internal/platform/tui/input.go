package tui

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// DefaultHoldWindow is how long one key press keeps an action held.
// Terminals only report presses, so a held key shows up as a stream of
// auto-repeat presses that the window bridges.
const DefaultHoldWindow = 150 * time.Millisecond

// HoldSampler turns discrete key events into per-tick held actions.
type HoldSampler struct {
	window time.Duration
	until  map[core.Action]time.Time
	latch  map[core.Action]bool
	pulses map[core.Action]bool
}

// NewHoldSampler creates a sampler with the given hold window.
func NewHoldSampler(window time.Duration) *HoldSampler {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldSampler{
		window: window,
		until:  make(map[core.Action]time.Time),
		latch:  make(map[core.Action]bool),
		pulses: make(map[core.Action]bool),
	}
}

// Press holds a until the window after at has passed.
func (h *HoldSampler) Press(a core.Action, at time.Time) {
	h.until[a] = at.Add(h.window)
}

// Latch holds a until Release, for inputs that report their release.
func (h *HoldSampler) Latch(a core.Action) {
	h.latch[a] = true
}

// Release ends a hold immediately.
func (h *HoldSampler) Release(a core.Action) {
	delete(h.until, a)
	delete(h.latch, a)
}

// Tap makes a present in exactly the next sample.
func (h *HoldSampler) Tap(a core.Action) {
	h.pulses[a] = true
}

// Sample returns the actions held at the given time and consumes taps.
func (h *HoldSampler) Sample(at time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for a, until := range h.until {
		if at.Before(until) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	for a := range h.latch {
		frame.Set(a)
	}
	for a := range h.pulses {
		frame.Set(a)
		delete(h.pulses, a)
	}
	return frame
}
