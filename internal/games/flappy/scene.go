package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// Scene owns the entity table and the physics world and keeps them in sync.
type Scene struct {
	cfg      config.FlappyConfig
	entities *ecs.World
	bodies   *physics.World
}

// NewScene creates an empty scene with gravity from cfg.
func NewScene(cfg config.FlappyConfig) *Scene {
	return &Scene{
		cfg:      cfg,
		entities: ecs.NewWorld(),
		bodies:   physics.NewWorld(core.V2(0, cfg.Physics.Gravity)),
	}
}

// Entities exposes the entity table.
func (s *Scene) Entities() *ecs.World { return s.entities }

// Bodies exposes the physics world.
func (s *Scene) Bodies() *physics.World { return s.bodies }

func (s *Scene) spawn(tag ecs.Tag, b physics.Body) ecs.EntityID {
	id := s.entities.Create(tag, ecs.ScopeSession)
	s.bodies.Insert(id, b)
	return id
}

// SpawnSession creates the bird, the ground, the ceiling and the score text.
func (s *Scene) SpawnSession() ecs.EntityID {
	pf := s.cfg.Playfield
	// Solid strips extend far beyond the sides so the bird can never slip past them.
	stripW := pf.Width * 4
	half := pf.Height / 2

	s.spawn(ecs.TagGround, physics.Body{
		Kind:  physics.Static,
		Shape: physics.Box(stripW, pf.GroundHeight),
		Pos:   core.V2(0, half-pf.GroundHeight/2),
	})
	s.spawn(ecs.TagGround, physics.Body{
		Kind:  physics.Static,
		Shape: physics.Box(stripW, pf.GroundHeight),
		Pos:   core.V2(0, -half-pf.GroundHeight/2),
	})

	bird := s.spawn(ecs.TagBird, physics.Body{
		Kind:         physics.Dynamic,
		Shape:        physics.Circle(s.cfg.Bird.Radius),
		Pos:          core.V2(s.cfg.Bird.X, 0),
		GravityScale: s.cfg.Physics.GravityScale,
		MaxFallSpeed: s.cfg.Physics.MaxFallSpeed,
		Events:       true,
	})
	s.entities.SetSprite(bird, SpriteMidFlap)

	s.entities.Create(ecs.TagScoreUI, ecs.ScopeSession)
	return bird
}

// SpawnObstacles creates the two pipes and the passage sensor for sp.
func (s *Scene) SpawnObstacles(sp Spawn) (upper, lower, passage ecs.EntityID) {
	w, h := s.cfg.Spawner.PipeWidth, s.cfg.Spawner.PipeHeight
	lay := sp.Layout(h)
	vel := core.V2(sp.VelocityX, 0)

	upper = s.spawn(ecs.TagPipe, physics.Body{
		Kind:  physics.Kinematic,
		Shape: physics.Box(w, h),
		Pos:   core.V2(sp.X, lay.UpperY),
		Vel:   vel,
	})
	s.entities.SetSprite(upper, "pipe_down")

	lower = s.spawn(ecs.TagPipe, physics.Body{
		Kind:  physics.Kinematic,
		Shape: physics.Box(w, h),
		Pos:   core.V2(sp.X, lay.LowerY),
		Vel:   vel,
	})
	s.entities.SetSprite(lower, "pipe_up")

	passage = s.spawn(ecs.TagPassage, physics.Body{
		Kind:   physics.Kinematic,
		Shape:  physics.Box(w, sp.GapHeight),
		Pos:    core.V2(sp.X, lay.GapY),
		Vel:    vel,
		Sensor: true,
	})
	return upper, lower, passage
}

// ShowMarker creates the game-over marker.
func (s *Scene) ShowMarker() ecs.EntityID {
	return s.entities.Create(ecs.TagMarker, ecs.ScopeSession)
}

// Teardown removes every session-scoped entity and its body at once and
// discards any contact events still queued for them.
func (s *Scene) Teardown() int {
	ids := s.entities.DestroyScope(ecs.ScopeSession)
	for _, id := range ids {
		s.bodies.Remove(id)
	}
	s.bodies.DrainBegin()
	s.bodies.DrainEnd()
	return len(ids)
}

// Cull removes pipes and passages that have scrolled past the left edge.
func (s *Scene) Cull() int {
	left := -s.cfg.Playfield.Width / 2
	for _, tag := range []ecs.Tag{ecs.TagPipe, ecs.TagPassage} {
		for _, id := range s.entities.Query(tag) {
			b, ok := s.bodies.Body(id)
			if !ok {
				continue
			}
			hw, _ := b.Shape.HalfExtents()
			if b.Pos.X+hw < left {
				s.entities.Destroy(id)
			}
		}
	}
	removed := s.entities.Flush()
	for _, id := range removed {
		s.bodies.Remove(id)
	}
	return len(removed)
}
