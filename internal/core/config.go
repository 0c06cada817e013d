package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the simulated time covered by one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	Best     int    // Best score since the process started
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
	Phase    string // Name of the current game phase
}

// EventKind classifies notable things that happened during a tick.
type EventKind int

const (
	EventPhaseChanged EventKind = iota // Game phase transitioned
	EventFatalHit                      // Bird touched a pipe
	EventPass                          // Bird flew through a gap
	EventSpawn                         // A new obstacle set entered the field
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPhaseChanged:
		return "phase"
	case EventFatalHit:
		return "fatal"
	case EventPass:
		return "pass"
	case EventSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Event is a notable occurrence reported back to the platform.
type Event struct {
	Kind   EventKind
	Detail string
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
