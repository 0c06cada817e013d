package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Bird sprite names, matched to vertical motion.
const (
	SpriteUpFlap   = "upflap"   // Ascending
	SpriteMidFlap  = "midflap"  // Level
	SpriteDownFlap = "downflap" // Descending
)

// BirdController applies the flap input to the bird's velocity.
// Gravity is left to the physics body's gravity scale.
type BirdController struct {
	FlapVelocity float64 // Upward speed, positive
}

// Apply returns the bird velocity for this tick. While the action is held the
// vertical component is replaced by the flap velocity; y grows down, so
// upward is negative.
func (c BirdController) Apply(vel core.Vec2, held bool) core.Vec2 {
	if held {
		vel.Y = -c.FlapVelocity
	}
	return vel
}

// SpriteFor picks the sprite for a vertical velocity (y-down).
func SpriteFor(vy float64) string {
	switch {
	case vy < 0:
		return SpriteUpFlap
	case vy > 0:
		return SpriteDownFlap
	default:
		return SpriteMidFlap
	}
}
