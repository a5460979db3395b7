// Package layout implements the automatic tiling engine of the compositor:
// one partition tree per output that divides the output's usable area into
// nested, non-overlapping rectangles, plus the operations that keep those
// trees consistent as windows and outputs come and go.
//
// All structural operations are invoked serially from the compositor control
// thread; the trees themselves carry no locks. The only cross-thread state is
// the back-reference slot on each window handle, which implementations of
// Element guard with their own mutex.
package layout

import "github.com/Gaurav-Gosain/mosaic/internal/geom"

// Orientation is the axis along which a group lays out its children.
// A Horizontal group stacks children top to bottom (sizes are heights),
// a Vertical group places them side by side (sizes are widths).
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the lowercase name of the orientation.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// length returns the extent of geo along the orientation's split axis.
func (o Orientation) length(geo geom.Rect) int {
	if o == Vertical {
		return geo.Size.W
	}
	return geo.Size.H
}

// FocusDirection identifies a directional focus-navigation request.
type FocusDirection int

const (
	FocusLeft FocusDirection = iota
	FocusRight
	FocusUp
	FocusDown
	// FocusOut targets the enclosing group instead of a sibling window.
	FocusOut
)

// String returns the lowercase name of the direction.
func (d FocusDirection) String() string {
	switch d {
	case FocusLeft:
		return "left"
	case FocusRight:
		return "right"
	case FocusUp:
		return "up"
	case FocusDown:
		return "down"
	default:
		return "out"
	}
}

// matches reports whether movement in direction d travels along the split
// axis of a group with orientation o.
func (d FocusDirection) matches(o Orientation) bool {
	switch d {
	case FocusUp, FocusDown:
		return o == Horizontal
	case FocusLeft, FocusRight:
		return o == Vertical
	default:
		return false
	}
}

// forward reports whether d moves toward higher sibling indices.
func (d FocusDirection) forward() bool {
	return d == FocusDown || d == FocusRight
}

// edgeMidpoint returns the midpoint of the edge of geo that faces in
// direction d. It anchors the nearest-neighbor descent of the focus search.
func (d FocusDirection) edgeMidpoint(geo geom.Rect) geom.Point {
	x, y := geo.Loc.X, geo.Loc.Y
	w, h := geo.Size.W, geo.Size.H
	switch d {
	case FocusUp:
		return geom.Point{X: x + w/2, Y: y}
	case FocusDown:
		return geom.Point{X: x + w/2, Y: y + h}
	case FocusLeft:
		return geom.Point{X: x, Y: y + h/2}
	default: // FocusRight
		return geom.Point{X: x + w, Y: y + h/2}
	}
}

// opposite returns the reverse lateral direction.
func (d FocusDirection) opposite() FocusDirection {
	switch d {
	case FocusUp:
		return FocusDown
	case FocusDown:
		return FocusUp
	case FocusLeft:
		return FocusRight
	default:
		return FocusLeft
	}
}
