package geometry

import (
	"image"
	"math"
)

// Edge names one side of a rectangle. EdgeNone means the axis is not grabbed.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Vertex identifies a grabbed corner by its edge pair. One axis may be
// EdgeNone when only a single edge is within reach, which resizes that edge alone.
type Vertex struct {
	X Edge // EdgeNone, EdgeLeft or EdgeRight
	Y Edge // EdgeNone, EdgeTop or EdgeBottom
}

// IsZero reports whether no edge is grabbed.
func (v Vertex) IsZero() bool { return v.X == EdgeNone && v.Y == EdgeNone }

func (v Vertex) String() string {
	switch {
	case v.IsZero():
		return "none"
	case v.Y == EdgeNone:
		return v.X.String()
	case v.X == EdgeNone:
		return v.Y.String()
	default:
		return v.X.String() + "+" + v.Y.String()
	}
}

// DefaultDragZoneFraction is the share of the box, centred, that starts a body drag.
const DefaultDragZoneFraction = 0.5

// HitTestVertex reports which edges of r are within radius of p. The point must
// lie inside r grown by radius; interior points further than radius from every
// edge are not a hit. Zero-area rectangles never hit.
func HitTestVertex(p image.Point, r image.Rectangle, radius int) (Vertex, bool) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return Vertex{}, false
	}
	if radius < 0 {
		radius = 0
	}
	if p.X < r.Min.X-radius || p.X > r.Max.X+radius || p.Y < r.Min.Y-radius || p.Y > r.Max.Y+radius {
		return Vertex{}, false
	}
	var v Vertex
	dl, dr := absInt(p.X-r.Min.X), absInt(p.X-r.Max.X)
	if dl <= radius || dr <= radius {
		v.X = EdgeLeft
		if dr < dl {
			v.X = EdgeRight
		}
	}
	dt, db := absInt(p.Y-r.Min.Y), absInt(p.Y-r.Max.Y)
	if dt <= radius || db <= radius {
		v.Y = EdgeTop
		if db < dt {
			v.Y = EdgeBottom
		}
	}
	return v, !v.IsZero()
}

// HitTestDragZone reports whether p falls in the centred sub-rectangle of r
// scaled by fraction. Non-positive fractions use DefaultDragZoneFraction.
func HitTestDragZone(p image.Point, r image.Rectangle, fraction float64) bool {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return false
	}
	if fraction <= 0 {
		fraction = DefaultDragZoneFraction
	}
	if fraction > 1 {
		fraction = 1
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	hw := float64(r.Dx()) * fraction / 2
	hh := float64(r.Dy()) * fraction / 2
	return math.Abs(float64(p.X)-cx) <= hw && math.Abs(float64(p.Y)-cy) <= hh
}

// HitTestContainment reports strict containment of p in r.
func HitTestContainment(p image.Point, r image.Rectangle) bool {
	return r.Min.X < p.X && p.X < r.Max.X && r.Min.Y < p.Y && p.Y < r.Max.Y
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
