package physics

import "github.com/vovakirdan/tui-flappy/internal/ecs"

// Contact names the two entities whose colliders started or stopped overlapping.
// A is always the lower entity id.
type Contact struct {
	A, B ecs.EntityID
}

// Other returns the entity on the other side of the contact from id.
// It reports false when id is on neither side.
func (c Contact) Other(id ecs.EntityID) (ecs.EntityID, bool) {
	switch id {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

// queue is a FIFO of contacts drained once per tick.
type queue struct {
	items []Contact
}

func (q *queue) push(c Contact) {
	q.items = append(q.items, c)
}

// drain returns all queued contacts and clears the queue.
func (q *queue) drain() []Contact {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func pairOf(a, b ecs.EntityID) Contact {
	if a > b {
		a, b = b, a
	}
	return Contact{A: a, B: b}
}
