package audio

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

var allSounds = []core.Sound{core.SoundHit, core.SoundPoint, core.SoundFlap}

// Library loads sound clips in the background and reports readiness.
// It satisfies core.AssetProbe.
type Library struct {
	mu      sync.RWMutex
	clips   map[core.Sound]*beep.Buffer
	ready   atomic.Bool
	err     error
	done    chan struct{}
	started atomic.Bool
	seed    int64
}

// NewLibrary creates an empty library. Noise clips are seeded for reproducible output.
func NewLibrary(seed int64) *Library {
	return &Library{
		clips: make(map[core.Sound]*beep.Buffer, len(allSounds)),
		done:  make(chan struct{}),
		seed:  seed,
	}
}

// Load starts synthesizing every clip on a separate goroutine.
// Calling Load more than once has no effect.
func (l *Library) Load() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	go l.load()
}

func (l *Library) load() {
	defer close(l.done)
	rng := rand.New(rand.NewSource(l.seed))

	clips := make(map[core.Sound]*beep.Buffer, len(allSounds))
	for _, s := range allSounds {
		clip := synthesize(s, rng)
		if len(clip) == 0 {
			l.fail(fmt.Errorf("audio: synthesize %s: empty clip", s))
			return
		}
		clips[s] = toBuffer(clip)
	}

	l.mu.Lock()
	l.clips = clips
	l.mu.Unlock()
	l.ready.Store(true)
}

func (l *Library) fail(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

// Ready reports whether all clips are loaded.
func (l *Library) Ready() bool {
	return l.ready.Load()
}

// Err returns the load error, if any.
func (l *Library) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Wait blocks until loading finishes or ctx is done.
func (l *Library) Wait(ctx context.Context) error {
	if !l.started.Load() {
		return errors.New("audio: library not loading")
	}
	select {
	case <-l.done:
		return l.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Streamer returns a fresh streamer over the clip for s, or nil if not loaded.
func (l *Library) Streamer(s core.Sound) beep.StreamSeeker {
	l.mu.RLock()
	buf, ok := l.clips[s]
	l.mu.RUnlock()
	if !ok {
		return nil
	}
	return buf.Streamer(0, buf.Len())
}
