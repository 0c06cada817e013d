package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseFlappy(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("embedded YAML and DefaultFlappyConfig() differ:\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
	if cfg.Spawner.Period != 1500*time.Millisecond {
		t.Errorf("period = %v, expected 1.5s", cfg.Spawner.Period)
	}
}

func TestLoadFlappyCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := "spawner:\n  gap_mode: random\n  period: 2s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Spawner.GapMode != GapRandom || cfg.Spawner.Period != 2*time.Second {
		t.Errorf("overrides not applied: %+v", cfg.Spawner)
	}
	if cfg.Spawner.PipeHeight != 320 {
		t.Errorf("unset keys should keep defaults, pipe_height = %v", cfg.Spawner.PipeHeight)
	}
}

func TestLoadFlappyMissingCustomPath(t *testing.T) {
	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
		errSub string
	}{
		{"defaults ok", func(*FlappyConfig) {}, ""},
		{"zero period", func(c *FlappyConfig) { c.Spawner.Period = 0 }, "period"},
		{"rightward pipes", func(c *FlappyConfig) { c.Spawner.PipeSpeed = 150 }, "pipe_speed"},
		{"inverted centre range", func(c *FlappyConfig) { c.Spawner.GapCenterMin = 200 }, "gap_center_min"},
		{"bad gap mode", func(c *FlappyConfig) { c.Spawner.GapMode = "wobbly" }, "gap_mode"},
		{"bad random range", func(c *FlappyConfig) {
			c.Spawner.GapMode = GapRandom
			c.Spawner.GapMin = 200
		}, "gap range"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errSub == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errSub) {
				t.Errorf("error = %v, expected mention of %q", err, tc.errSub)
			}
		})
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyHard)
	if cfg.Spawner.GapMode != GapRandom {
		t.Errorf("hard preset should randomize gaps, got %q", cfg.Spawner.GapMode)
	}

	cfg = DefaultFlappyConfig()
	cfg.Spawner.GapHeight = 100
	ApplyFlappyPreset(&cfg, DifficultyEasy)
	if cfg.Spawner.GapMode != GapFixed || cfg.Spawner.GapHeight != cfg.Spawner.GapMax {
		t.Errorf("easy preset should use the widest fixed gap, got %+v", cfg.Spawner)
	}

	cfg = DefaultFlappyConfig()
	cfg.Spawner.GapMode = GapRandom
	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Spawner.GapMode != GapRandom {
		t.Error("fixed preset must keep the loaded config")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should yield empty")
	}
}
