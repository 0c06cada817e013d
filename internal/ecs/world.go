// Package ecs keeps the entity table for the game: every entity has an id,
// a capability tag and a lifetime scope. Physics bodies and sprites live in
// their own tables keyed by the same EntityID.
package ecs

import "sort"

// EntityID uniquely identifies an entity. Zero is never issued.
type EntityID uint64

// Tag is the capability marker of an entity.
type Tag int

const (
	TagNone    Tag = iota
	TagBird        // The player-controlled bird (singleton while playing)
	TagPipe        // Solid obstacle; touching it is fatal
	TagPassage     // Invisible sensor spanning the gap between two pipes
	TagGround      // Solid floor/ceiling; not fatal
	TagScoreUI     // Score text node
	TagMarker      // Game-over marker
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagBird:
		return "bird"
	case TagPipe:
		return "pipe"
	case TagPassage:
		return "passage"
	case TagGround:
		return "ground"
	case TagScoreUI:
		return "score_ui"
	case TagMarker:
		return "marker"
	default:
		return "none"
	}
}

// Scope controls bulk teardown.
type Scope int

const (
	ScopePersistent Scope = iota // Lives until explicitly destroyed
	ScopeSession                 // Torn down when a play session ends
)

type entity struct {
	tag    Tag
	scope  Scope
	sprite string
}

// World is the entity table.
type World struct {
	nextID    EntityID
	entities  map[EntityID]*entity
	toDestroy []EntityID
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		nextID:   1,
		entities: make(map[EntityID]*entity),
	}
}

// Create adds a new entity and returns its id.
func (w *World) Create(tag Tag, scope Scope) EntityID {
	id := w.nextID
	w.nextID++
	w.entities[id] = &entity{tag: tag, scope: scope}
	return id
}

// Has reports whether the entity exists.
func (w *World) Has(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Tag returns the tag of an entity.
func (w *World) Tag(id EntityID) (Tag, bool) {
	e, ok := w.entities[id]
	if !ok {
		return TagNone, false
	}
	return e.tag, true
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Query returns all entities with the given tag in ascending id order.
func (w *World) Query(tag Tag) []EntityID {
	var out []EntityID
	for id, e := range w.entities {
		if e.tag == tag {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Single returns the only entity with the given tag.
// It reports false when there is none or more than one.
func (w *World) Single(tag Tag) (EntityID, bool) {
	ids := w.Query(tag)
	if len(ids) != 1 {
		return 0, false
	}
	return ids[0], true
}

// SetSprite attaches a sprite name to an entity.
func (w *World) SetSprite(id EntityID, sprite string) {
	if e, ok := w.entities[id]; ok {
		e.sprite = sprite
	}
}

// Sprite returns the sprite attached to an entity.
func (w *World) Sprite(id EntityID) string {
	if e, ok := w.entities[id]; ok {
		return e.sprite
	}
	return ""
}

// Destroy marks an entity for removal at the next Flush.
func (w *World) Destroy(id EntityID) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	for _, pending := range w.toDestroy {
		if pending == id {
			return
		}
	}
	w.toDestroy = append(w.toDestroy, id)
}

// Flush removes every entity marked by Destroy and returns their ids.
func (w *World) Flush() []EntityID {
	if len(w.toDestroy) == 0 {
		return nil
	}
	removed := make([]EntityID, 0, len(w.toDestroy))
	for _, id := range w.toDestroy {
		if _, ok := w.entities[id]; ok {
			delete(w.entities, id)
			removed = append(removed, id)
		}
	}
	w.toDestroy = w.toDestroy[:0]
	return removed
}

// DestroyScope removes every entity in the scope at once and returns their
// ids in ascending order. Pending deferred removals for those entities are dropped.
func (w *World) DestroyScope(scope Scope) []EntityID {
	var removed []EntityID
	for id, e := range w.entities {
		if e.scope == scope {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		delete(w.entities, id)
	}

	pending := w.toDestroy[:0]
	for _, id := range w.toDestroy {
		if _, ok := w.entities[id]; ok {
			pending = append(pending, id)
		}
	}
	w.toDestroy = pending

	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	return removed
}
