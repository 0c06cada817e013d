package flappy

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/ecs"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// OutcomeKind is the logical result of a bird contact.
type OutcomeKind int

const (
	OutcomeFatal OutcomeKind = iota // Bird started touching a pipe
	OutcomePass                     // Bird left a passage sensor
)

func (k OutcomeKind) String() string {
	if k == OutcomeFatal {
		return "fatal"
	}
	return "pass"
}

// Outcome is a classified contact.
type Outcome struct {
	Kind  OutcomeKind
	Other ecs.EntityID
}

// TagLookup resolves entity tags. *ecs.World satisfies it.
type TagLookup interface {
	Tag(id ecs.EntityID) (ecs.Tag, bool)
}

// Classifier turns raw contact events into outcomes.
type Classifier struct {
	Logger *log.Logger // optional
}

// Classify walks begin events and then end events, in order. A begin against
// a pipe is fatal and an end against a passage is a pass; everything else
// yields nothing. Events that do not involve the bird exactly once are
// dropped.
func (c Classifier) Classify(bird ecs.EntityID, begins, ends []physics.Contact, tags TagLookup) []Outcome {
	var out []Outcome
	for _, ev := range begins {
		if other, ok := c.other(bird, ev, tags); ok && other.tag == ecs.TagPipe {
			out = append(out, Outcome{Kind: OutcomeFatal, Other: other.id})
		}
	}
	for _, ev := range ends {
		if other, ok := c.other(bird, ev, tags); ok && other.tag == ecs.TagPassage {
			out = append(out, Outcome{Kind: OutcomePass, Other: other.id})
		}
	}
	return out
}

type tagged struct {
	id  ecs.EntityID
	tag ecs.Tag
}

func (c Classifier) other(bird ecs.EntityID, ev physics.Contact, tags TagLookup) (tagged, bool) {
	id, ok := ev.Other(bird)
	if !ok {
		c.debug("contact without bird", "a", ev.A, "b", ev.B)
		return tagged{}, false
	}
	if id == bird {
		c.debug("contact with bird on both sides", "id", bird)
		return tagged{}, false
	}
	tag, ok := tags.Tag(id)
	if !ok {
		c.debug("contact with unknown entity", "id", id)
		return tagged{}, false
	}
	return tagged{id: id, tag: tag}, true
}

func (c Classifier) debug(msg string, keyvals ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, keyvals...)
	}
}
