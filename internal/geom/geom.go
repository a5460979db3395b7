// Package geom provides the logical-coordinate primitives shared by the
// layout engine: points, sizes and rectangles in global compositor space.
package geom

import "math"

// Point is a position in logical coordinates.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Size is a width/height pair in logical coordinates.
type Size struct {
	W, H int
}

// IsEmpty reports whether either dimension is non-positive.
func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis-aligned rectangle located at Loc with extent Size.
type Rect struct {
	Loc  Point
	Size Size
}

// FromLocAndSize builds a Rect from raw coordinates.
func FromLocAndSize(x, y, w, h int) Rect {
	return Rect{Loc: Point{x, y}, Size: Size{w, h}}
}

// Translate returns r moved by offset.
func (r Rect) Translate(offset Point) Rect {
	r.Loc = r.Loc.Add(offset)
	return r
}

// Shrink returns r inset by gap on all four sides. The result is clamped so
// the extent never goes negative.
func (r Rect) Shrink(gap int) Rect {
	r.Loc.X += gap
	r.Loc.Y += gap
	r.Size.W = max(r.Size.W-gap*2, 0)
	r.Size.H = max(r.Size.H-gap*2, 0)
	return r
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Loc.X && p.X < r.Loc.X+r.Size.W &&
		p.Y >= r.Loc.Y && p.Y < r.Loc.Y+r.Size.H
}

// ContainsRect reports whether inner lies fully inside r.
func (r Rect) ContainsRect(inner Rect) bool {
	return inner.Loc.X >= r.Loc.X && inner.Loc.Y >= r.Loc.Y &&
		inner.Loc.X+inner.Size.W <= r.Loc.X+r.Size.W &&
		inner.Loc.Y+inner.Size.H <= r.Loc.Y+r.Size.H
}

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool {
	return r.Size.IsEmpty()
}
