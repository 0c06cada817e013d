package physics

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
)

const tick = time.Second / 60

func TestDynamicBodyFallsUnderScaledGravity(t *testing.T) {
	w := NewWorld(core.V2(0, 600))
	w.Insert(1, Body{Kind: Dynamic, Shape: Circle(16), GravityScale: 1.5})

	w.Step(time.Second)

	b, _ := w.Body(1)
	if math.Abs(b.Vel.Y-900) > 1e-9 {
		t.Errorf("velocity after 1s = %v, expected 900", b.Vel.Y)
	}
	if b.Pos.Y <= 0 {
		t.Errorf("body should move down (y grows down), got y=%v", b.Pos.Y)
	}
}

func TestMaxFallSpeed(t *testing.T) {
	w := NewWorld(core.V2(0, 600))
	w.Insert(1, Body{Kind: Dynamic, Shape: Circle(16), GravityScale: 1, MaxFallSpeed: 100})

	for i := 0; i < 60; i++ {
		w.Step(tick)
	}
	b, _ := w.Body(1)
	if b.Vel.Y > 100 {
		t.Errorf("fall speed %v exceeds limit", b.Vel.Y)
	}
}

func TestKinematicBodyIgnoresGravity(t *testing.T) {
	w := NewWorld(core.V2(0, 600))
	w.Insert(1, Body{Kind: Kinematic, Shape: Box(48, 320), Pos: core.V2(500, 0), Vel: core.V2(-150, 0)})

	w.Step(time.Second)

	b, _ := w.Body(1)
	if b.Pos != core.V2(350, 0) {
		t.Errorf("kinematic position = %+v, expected (350, 0)", b.Pos)
	}
}

func TestStaticBodyStopsDynamicBody(t *testing.T) {
	w := NewWorld(core.V2(0, 600))
	w.Insert(1, Body{Kind: Static, Shape: Box(1000, 20), Pos: core.V2(0, 240)})
	w.Insert(2, Body{Kind: Dynamic, Shape: Circle(16), Pos: core.V2(0, 200), GravityScale: 1})

	for i := 0; i < 120; i++ {
		w.Step(tick)
	}

	b, _ := w.Body(2)
	if b.Pos.Y > 230-16+1e-6 {
		t.Errorf("bird sank into the ground: y=%v", b.Pos.Y)
	}
}

func TestOverlapBeginAndEndEvents(t *testing.T) {
	w := NewWorld(core.Vec2{})
	bird := ecs.EntityID(1)
	sensor := ecs.EntityID(2)
	w.Insert(bird, Body{Kind: Dynamic, Shape: Circle(16), Events: true})
	w.Insert(sensor, Body{Kind: Kinematic, Shape: Box(48, 150), Pos: core.V2(60, 0), Vel: core.V2(-60, 0), Sensor: true})

	var begins, ends []Contact
	for i := 0; i < 180; i++ {
		w.Step(tick)
		begins = append(begins, w.DrainBegin()...)
		ends = append(ends, w.DrainEnd()...)
	}

	want := Contact{A: bird, B: sensor}
	if len(begins) != 1 || begins[0] != want {
		t.Errorf("begins = %v, expected [%v]", begins, want)
	}
	if len(ends) != 1 || ends[0] != want {
		t.Errorf("ends = %v, expected [%v]", ends, want)
	}
}

func TestBodiesWithoutEventsDoNotCollide(t *testing.T) {
	w := NewWorld(core.Vec2{})
	w.Insert(1, Body{Kind: Kinematic, Shape: Box(48, 320)})
	w.Insert(2, Body{Kind: Kinematic, Shape: Box(48, 150), Sensor: true})

	w.Step(tick)

	if got := w.DrainBegin(); len(got) != 0 {
		t.Errorf("pipe and passage must not report overlaps, got %v", got)
	}
}

func TestRemoveDropsContactsSilently(t *testing.T) {
	w := NewWorld(core.Vec2{})
	w.Insert(1, Body{Kind: Dynamic, Shape: Circle(16), Events: true})
	w.Insert(2, Body{Kind: Kinematic, Shape: Box(48, 320)})

	w.Step(tick)
	if len(w.DrainBegin()) != 1 {
		t.Fatal("expected a begin event")
	}

	w.Remove(2)
	w.Step(tick)
	if got := w.DrainEnd(); len(got) != 0 {
		t.Errorf("removal must not produce end events, got %v", got)
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", w.Len())
	}
}

func TestDrainClearsQueue(t *testing.T) {
	w := NewWorld(core.Vec2{})
	w.Insert(1, Body{Kind: Dynamic, Shape: Circle(16), Events: true})
	w.Insert(2, Body{Kind: Static, Shape: Box(10, 10), Sensor: true})

	w.Step(tick)
	if len(w.DrainBegin()) != 1 {
		t.Fatal("expected one begin event")
	}
	if w.DrainBegin() != nil {
		t.Error("drained queue should be empty")
	}
}

func TestOverlapShapes(t *testing.T) {
	tests := []struct {
		name   string
		sa     Shape
		pa     core.Vec2
		sb     Shape
		pb     core.Vec2
		expect bool
	}{
		{"circle inside box", Circle(16), core.V2(0, 0), Box(48, 320), core.V2(0, 0), true},
		{"circle touching box edge", Circle(16), core.V2(40, 0), Box(48, 320), core.V2(0, 0), false},
		{"circle near box corner", Circle(16), core.V2(40, 175), Box(48, 320), core.V2(0, 0), false},
		{"circles overlap", Circle(5), core.V2(0, 0), Circle(5), core.V2(9, 0), true},
		{"boxes apart", Box(10, 10), core.V2(0, 0), Box(10, 10), core.V2(10, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := overlaps(tc.sa, tc.pa, tc.sb, tc.pb); got != tc.expect {
				t.Errorf("overlaps = %v, expected %v", got, tc.expect)
			}
			if got := overlaps(tc.sb, tc.pb, tc.sa, tc.pa); got != tc.expect {
				t.Errorf("overlaps (reversed) = %v, expected %v", got, tc.expect)
			}
		})
	}
}

func TestContactOther(t *testing.T) {
	c := pairOf(7, 3)
	if c.A != 3 || c.B != 7 {
		t.Fatalf("pairOf should order ids, got %+v", c)
	}
	if o, ok := c.Other(3); !ok || o != 7 {
		t.Errorf("Other(3) = %d, %v", o, ok)
	}
	if _, ok := c.Other(99); ok {
		t.Error("Other should fail for an unrelated id")
	}
}
