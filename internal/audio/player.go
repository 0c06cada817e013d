// Package audio plays the game's sound effects through the system speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Nop discards every sound.
type Nop struct{}

// Play does nothing.
func (Nop) Play(core.Sound) {}

// BeepPlayer mixes library clips onto the speaker.
type BeepPlayer struct {
	mu          sync.Mutex
	lib         *Library
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewBeepPlayer creates a player over lib. Volume is a linear gain in 0..1.
func NewBeepPlayer(lib *Library, volume float64) *BeepPlayer {
	return &BeepPlayer{
		lib:    lib,
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the speaker and starts the mixer.
func (p *BeepPlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Play queues a sound. Unloaded clips and an uninitialized speaker are ignored.
func (p *BeepPlayer) Play(s core.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.lib.Ready() {
		return
	}
	st := p.lib.Streamer(s)
	if st == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(withVolume(st, p.volume))
	speaker.Unlock()
}

// withVolume wraps s with a linear gain; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
