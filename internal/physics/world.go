// Package physics is a small rigid-body collaborator for the game: it moves
// bodies, keeps dynamic bodies out of solid static ones and reports when
// event-enabled colliders start and stop overlapping.
package physics

import (
	"sort"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
)

// Kind selects how a body is integrated.
type Kind int

const (
	Dynamic   Kind = iota // Affected by gravity and velocity
	Kinematic             // Moves with its velocity only
	Static                // Never moves
)

// Body is the physics component of an entity.
type Body struct {
	Kind         Kind
	Shape        Shape
	Pos          core.Vec2
	Vel          core.Vec2
	GravityScale float64 // Dynamic only
	MaxFallSpeed float64 // Dynamic only; zero means unlimited
	Sensor       bool    // Detects overlaps but is never solid
	Events       bool    // Overlap begin/end events are reported for this body
}

// World owns all bodies, keyed by entity.
type World struct {
	Gravity core.Vec2

	bodies   map[ecs.EntityID]*Body
	ids      []ecs.EntityID // ascending, for deterministic iteration
	touching map[Contact]bool
	begin    queue
	end      queue
}

// NewWorld creates a world with the given gravity acceleration.
func NewWorld(gravity core.Vec2) *World {
	return &World{
		Gravity:  gravity,
		bodies:   make(map[ecs.EntityID]*Body),
		touching: make(map[Contact]bool),
	}
}

// Insert adds or replaces the body of an entity.
func (w *World) Insert(id ecs.EntityID, b Body) {
	if _, exists := w.bodies[id]; !exists {
		i := sort.Search(len(w.ids), func(i int) bool { return w.ids[i] >= id })
		w.ids = append(w.ids, 0)
		copy(w.ids[i+1:], w.ids[i:])
		w.ids[i] = id
	}
	body := b
	w.bodies[id] = &body
}

// Remove deletes the body of an entity. Overlaps involving it are dropped
// without an end event.
func (w *World) Remove(id ecs.EntityID) {
	if _, ok := w.bodies[id]; !ok {
		return
	}
	delete(w.bodies, id)
	i := sort.Search(len(w.ids), func(i int) bool { return w.ids[i] >= id })
	w.ids = append(w.ids[:i], w.ids[i+1:]...)

	for c := range w.touching {
		if c.A == id || c.B == id {
			delete(w.touching, c)
		}
	}
}

// Body returns a copy of an entity's body.
func (w *World) Body(id ecs.EntityID) (Body, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return Body{}, false
	}
	return *b, true
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// SetVelocity overrides an entity's velocity.
func (w *World) SetVelocity(id ecs.EntityID, v core.Vec2) bool {
	b, ok := w.bodies[id]
	if ok {
		b.Vel = v
	}
	return ok
}

// SetPosition overrides an entity's position.
func (w *World) SetPosition(id ecs.EntityID, p core.Vec2) bool {
	b, ok := w.bodies[id]
	if ok {
		b.Pos = p
	}
	return ok
}

// Step advances the simulation by dt and queues overlap events.
func (w *World) Step(dt time.Duration) {
	secs := dt.Seconds()
	if secs <= 0 {
		return
	}

	for _, id := range w.ids {
		b := w.bodies[id]
		switch b.Kind {
		case Dynamic:
			b.Vel = b.Vel.Add(w.Gravity.Scale(b.GravityScale * secs))
			if b.MaxFallSpeed > 0 && b.Vel.Y > b.MaxFallSpeed {
				b.Vel.Y = b.MaxFallSpeed
			}
			b.Pos = b.Pos.Add(b.Vel.Scale(secs))
		case Kinematic:
			b.Pos = b.Pos.Add(b.Vel.Scale(secs))
		}
	}

	w.resolve()
	w.detect()
}

// resolve pushes dynamic bodies out of solid static bodies.
func (w *World) resolve() {
	for _, id := range w.ids {
		a := w.bodies[id]
		if a.Kind != Dynamic || a.Sensor {
			continue
		}
		for _, other := range w.ids {
			b := w.bodies[other]
			if b.Kind != Static || b.Sensor {
				continue
			}
			n, depth, ok := penetration(a.Shape, a.Pos, b.Shape, b.Pos)
			if !ok {
				continue
			}
			a.Pos = a.Pos.Add(n.Scale(depth))
			if vn := a.Vel.Dot(n); vn < 0 {
				a.Vel = a.Vel.Sub(n.Scale(vn))
			}
		}
	}
}

// detect diffs the current overlap set against the previous one.
func (w *World) detect() {
	current := make(map[Contact]bool)
	var started []Contact

	for i, id := range w.ids {
		a := w.bodies[id]
		for _, other := range w.ids[i+1:] {
			b := w.bodies[other]
			if !a.Events && !b.Events {
				continue
			}
			if !overlaps(a.Shape, a.Pos, b.Shape, b.Pos) {
				continue
			}
			c := pairOf(id, other)
			current[c] = true
			if !w.touching[c] {
				started = append(started, c)
			}
		}
	}

	var ended []Contact
	for c := range w.touching {
		if !current[c] {
			ended = append(ended, c)
		}
	}
	sort.Slice(ended, func(i, j int) bool {
		if ended[i].A != ended[j].A {
			return ended[i].A < ended[j].A
		}
		return ended[i].B < ended[j].B
	})

	for _, c := range started {
		w.begin.push(c)
	}
	for _, c := range ended {
		w.end.push(c)
	}
	w.touching = current
}

// DrainBegin returns the overlap-begin events queued since the last drain.
func (w *World) DrainBegin() []Contact {
	return w.begin.drain()
}

// DrainEnd returns the overlap-end events queued since the last drain.
func (w *World) DrainEnd() []Contact {
	return w.end.drain()
}
