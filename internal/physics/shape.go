package physics

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ShapeKind distinguishes collider geometries.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

// Shape is a collider centred on its body's position.
type Shape struct {
	Kind   ShapeKind
	Radius float64 // Circle only
	W, H   float64 // Box only
}

// Circle returns a circular collider.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Box returns an axis-aligned rectangular collider.
func Box(w, h float64) Shape {
	return Shape{Kind: ShapeBox, W: w, H: h}
}

// HalfExtents returns half the width and height of the shape's bounding box.
func (s Shape) HalfExtents() (float64, float64) {
	if s.Kind == ShapeCircle {
		return s.Radius, s.Radius
	}
	return s.W / 2, s.H / 2
}

// overlaps reports whether two shapes at the given positions strictly overlap.
// Shapes that only touch along an edge do not overlap.
func overlaps(sa Shape, pa core.Vec2, sb Shape, pb core.Vec2) bool {
	switch {
	case sa.Kind == ShapeCircle && sb.Kind == ShapeCircle:
		r := sa.Radius + sb.Radius
		d := pa.Sub(pb)
		return d.Dot(d) < r*r
	case sa.Kind == ShapeBox && sb.Kind == ShapeBox:
		return math.Abs(pa.X-pb.X) < (sa.W+sb.W)/2 && math.Abs(pa.Y-pb.Y) < (sa.H+sb.H)/2
	case sa.Kind == ShapeCircle:
		return circleBox(pa, sa.Radius, pb, sb)
	default:
		return circleBox(pb, sb.Radius, pa, sa)
	}
}

func closestOnBox(p core.Vec2, centre core.Vec2, box Shape) core.Vec2 {
	hw, hh := box.W/2, box.H/2
	return core.Vec2{
		X: core.ClampF(p.X, centre.X-hw, centre.X+hw),
		Y: core.ClampF(p.Y, centre.Y-hh, centre.Y+hh),
	}
}

func circleBox(c core.Vec2, r float64, centre core.Vec2, box Shape) bool {
	d := c.Sub(closestOnBox(c, centre, box))
	return d.Dot(d) < r*r
}

// penetration returns the direction to move shape a out of shape b and how far.
// It reports false when the shapes do not overlap.
func penetration(sa Shape, pa core.Vec2, sb Shape, pb core.Vec2) (core.Vec2, float64, bool) {
	if !overlaps(sa, pa, sb, pb) {
		return core.Vec2{}, 0, false
	}

	if sa.Kind == ShapeCircle && sb.Kind == ShapeBox {
		closest := closestOnBox(pa, pb, sb)
		d := pa.Sub(closest)
		if dist := d.Len(); dist > 0 {
			return d.Scale(1 / dist), sa.Radius - dist, true
		}
		// Centre inside the box: push out along the shallowest axis.
		return boxAxisPush(pa, sa.Radius, sa.Radius, pb, sb)
	}

	if sa.Kind == ShapeCircle && sb.Kind == ShapeCircle {
		d := pa.Sub(pb)
		dist := d.Len()
		if dist == 0 {
			return core.V2(0, -1), sa.Radius + sb.Radius, true
		}
		return d.Scale(1 / dist), sa.Radius + sb.Radius - dist, true
	}

	hw, hh := sa.HalfExtents()
	return boxAxisPush(pa, hw, hh, pb, sb)
}

func boxAxisPush(pa core.Vec2, hw, hh float64, pb core.Vec2, box Shape) (core.Vec2, float64, bool) {
	dx := pa.X - pb.X
	dy := pa.Y - pb.Y
	ox := hw + box.W/2 - math.Abs(dx)
	oy := hh + box.H/2 - math.Abs(dy)

	if ox < oy {
		return core.V2(sign(dx), 0), ox, true
	}
	return core.V2(0, sign(dy)), oy, true
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
