// Package config provides YAML-based game configuration loading and
// difficulty presets for the flappy game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Gap modes for the obstacle spawner.
const (
	GapFixed  = "fixed"
	GapRandom = "random"
)

// FlappyConfig contains all configuration for the Flappy Bird game.
// Distances are world units; the playfield is centred on the origin and y grows down.
type FlappyConfig struct {
	Playfield FlappyPlayfield `yaml:"playfield"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Spawner   FlappySpawner   `yaml:"spawner"`
	Bird      FlappyBird      `yaml:"bird"`
	Audio     AudioConfig     `yaml:"audio"`
}

// FlappyPlayfield defines the visible area.
type FlappyPlayfield struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// FlappyPhysics defines physics parameters for Flappy Bird.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`        // Downward acceleration, units/s²
	GravityScale float64 `yaml:"gravity_scale"`  // Multiplier applied to the bird
	FlapVelocity float64 `yaml:"flap_velocity"`  // Upward speed while the action is held
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal velocity, zero for none
}

// FlappySpawner defines obstacle spawning parameters.
type FlappySpawner struct {
	Period       time.Duration `yaml:"period"`
	StartX       float64       `yaml:"start_x"`
	PipeSpeed    float64       `yaml:"pipe_speed"` // Horizontal velocity, negative = leftward
	GapCenterMin float64       `yaml:"gap_center_min"`
	GapCenterMax float64       `yaml:"gap_center_max"`
	GapMode      string        `yaml:"gap_mode"`
	GapHeight    float64       `yaml:"gap_height"` // Used in fixed mode
	GapMin       float64       `yaml:"gap_min"`    // Used in random mode
	GapMax       float64       `yaml:"gap_max"`
	PipeWidth    float64       `yaml:"pipe_width"`
	PipeHeight   float64       `yaml:"pipe_height"`
}

// FlappyBird defines the bird's placement and collider.
type FlappyBird struct {
	X      float64 `yaml:"x"`
	Radius float64 `yaml:"radius"`
}

// AudioConfig toggles sound effects.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Linear gain, 0..1
}

// Validate checks the configuration for values the game cannot run with.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Playfield.Width > 0 && c.Playfield.Height > 0, "playfield size must be positive, got %vx%v", c.Playfield.Width, c.Playfield.Height)
	check(c.Physics.GravityScale >= 0, "physics.gravity_scale must not be negative")
	check(c.Physics.FlapVelocity > 0, "physics.flap_velocity must be positive, got %v", c.Physics.FlapVelocity)
	check(c.Spawner.Period > 0, "spawner.period must be positive, got %v", c.Spawner.Period)
	check(c.Spawner.PipeSpeed < 0, "spawner.pipe_speed must be negative (leftward), got %v", c.Spawner.PipeSpeed)
	check(c.Spawner.GapCenterMin <= c.Spawner.GapCenterMax, "spawner.gap_center_min %v > gap_center_max %v", c.Spawner.GapCenterMin, c.Spawner.GapCenterMax)
	check(c.Spawner.PipeWidth > 0 && c.Spawner.PipeHeight > 0, "pipe size must be positive")
	check(c.Bird.Radius > 0, "bird.radius must be positive")

	switch c.Spawner.GapMode {
	case GapFixed:
		check(c.Spawner.GapHeight > 0, "spawner.gap_height must be positive, got %v", c.Spawner.GapHeight)
	case GapRandom:
		check(c.Spawner.GapMin > 0 && c.Spawner.GapMin <= c.Spawner.GapMax, "spawner gap range [%v, %v] is invalid", c.Spawner.GapMin, c.Spawner.GapMax)
	default:
		errs = append(errs, fmt.Errorf("spawner.gap_mode must be %q or %q, got %q", GapFixed, GapRandom, c.Spawner.GapMode))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}
