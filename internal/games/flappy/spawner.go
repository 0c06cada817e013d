package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Spawn describes one obstacle set: two pipes and the passage between them.
// All three bodies share X and VelocityX.
type Spawn struct {
	X         float64
	VelocityX float64
	GapCenter float64
	GapHeight float64
}

// Layout holds the vertical centres of an obstacle set.
type Layout struct {
	UpperY float64 // Centre of the pipe above the gap
	LowerY float64 // Centre of the pipe below the gap
	GapY   float64 // Centre of the passage sensor
}

// Layout places the pipes so that their inner edges sit exactly on the gap edges.
func (s Spawn) Layout(pipeHeight float64) Layout {
	offset := s.GapHeight/2 + pipeHeight/2
	return Layout{
		UpperY: s.GapCenter - offset,
		LowerY: s.GapCenter + offset,
		GapY:   s.GapCenter,
	}
}

// Spawner emits an obstacle set every period.
type Spawner struct {
	cfg   config.FlappySpawner
	timer *core.Timer
	rng   *rand.Rand
}

// NewSpawner creates a spawner with a fresh countdown and a seeded random source.
func NewSpawner(cfg config.FlappySpawner, seed int64) *Spawner {
	return &Spawner{
		cfg:   cfg,
		timer: core.NewTimer(cfg.Period),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Reset restarts the countdown and reseeds the random source.
func (s *Spawner) Reset(seed int64) {
	s.timer.Reset()
	s.rng.Seed(seed)
}

// Tick advances the countdown by dt and returns a spawn when it fires.
func (s *Spawner) Tick(dt time.Duration) (Spawn, bool) {
	if !s.timer.Tick(dt) {
		return Spawn{}, false
	}
	return s.Next(), true
}

// Next draws an obstacle set without touching the countdown.
func (s *Spawner) Next() Spawn {
	sp := Spawn{
		X:         s.cfg.StartX,
		VelocityX: s.cfg.PipeSpeed,
		GapCenter: s.uniform(s.cfg.GapCenterMin, s.cfg.GapCenterMax),
		GapHeight: s.cfg.GapHeight,
	}
	if s.cfg.GapMode == config.GapRandom {
		sp.GapHeight = s.uniform(s.cfg.GapMin, s.cfg.GapMax)
	}
	return sp
}

func (s *Spawner) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
