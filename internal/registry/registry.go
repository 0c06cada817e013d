// Package registry maps game variant IDs to factories.
// Variants register themselves in init(), so the CLI, the TUI and the SSH
// server can start a session by name without importing game packages directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game is a fixed-tick simulation driven by the platform layer.
// Implementations hold no terminal or network state; the platform maps keys
// to actions, paces ticks and draws the screen buffer.
type Game interface {
	// ID returns the variant identifier used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a fresh process-level game: phase machine back to its
	// initial state, RNG reseeded from cfg.Seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick of 1/cfg.TickRate seconds.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst. dst is cleared beforehand.
	Render(dst *core.Screen)

	// State returns a snapshot of score and phase.
	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new, unreset game instance.
type Factory func() Game

type entry struct {
	title   string
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a variant. Panics on an empty or duplicate ID.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" || f == nil {
		panic("registry: empty id or nil factory")
	}
	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns all registered variants sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a variant by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
