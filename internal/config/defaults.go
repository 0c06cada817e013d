package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Playfield: FlappyPlayfield{
			Width:        280,
			Height:       500,
			GroundHeight: 20,
		},
		Physics: FlappyPhysics{
			Gravity:      600,
			GravityScale: 1.5,
			FlapVelocity: 250,
			MaxFallSpeed: 400,
		},
		Spawner: FlappySpawner{
			Period:       1500 * time.Millisecond,
			StartX:       500,
			PipeSpeed:    -150,
			GapCenterMin: -100,
			GapCenterMax: 100,
			GapMode:      GapFixed,
			GapHeight:    150,
			GapMin:       80,
			GapMax:       150,
			PipeWidth:    48,
			PipeHeight:   320,
		},
		Bird: FlappyBird{
			X:      -60,
			Radius: 16,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.4,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFlappyYAML
}
