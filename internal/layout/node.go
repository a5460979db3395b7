package layout

import (
	"math"
	"sync/atomic"

	"github.com/Gaurav-Gosain/mosaic/internal/geom"
)

// Liveness is the shareable marker proving a group node has not been removed
// from its tree. Holders of weak group handles keep a pointer to the marker
// and must check OK before dereferencing the group identifier.
type Liveness struct {
	gone atomic.Bool
}

// OK reports whether the owning group is still present in a tree.
func (l *Liveness) OK() bool {
	return l != nil && !l.gone.Load()
}

func (l *Liveness) kill() {
	if l != nil {
		l.gone.Store(true)
	}
}

// Kind discriminates the partition-node variants.
type Kind int

const (
	// KindGroup is an ordered split of a rectangle along one axis.
	KindGroup Kind = iota
	// KindLeaf directly represents one tiled window.
	KindLeaf
)

// Data is the payload stored at every tree position: either a split group
// (orientation, per-child sizes, cached geometry, liveness marker) or a leaf
// (window handle, cached geometry).
type Data struct {
	kind         Kind
	orientation  Orientation
	sizes        []int
	alive        *Liveness
	window       Element
	lastGeometry geom.Rect
}

// Sizes are seeded as two equal halves of a placeholder rectangle; the first
// propagation pass replaces both the geometry and the absolute sizes.
var placeholderGeometry = geom.FromLocAndSize(0, 0, 100, 100)

func newGroupData(orientation Orientation, geo geom.Rect) *Data {
	half := orientation.length(geo) / 2
	return &Data{
		kind:         KindGroup,
		orientation:  orientation,
		sizes:        []int{half, half},
		alive:        &Liveness{},
		lastGeometry: geo,
	}
}

func newLeafData(window Element) *Data {
	return &Data{
		kind:         KindLeaf,
		window:       window,
		lastGeometry: placeholderGeometry,
	}
}

// Kind returns the node variant.
func (d *Data) Kind() Kind {
	return d.kind
}

// IsGroup reports whether d is a split group.
func (d *Data) IsGroup() bool {
	return d.kind == KindGroup
}

// IsLeaf reports whether d is a leaf; if window is non-nil it additionally
// requires the leaf to represent that window.
func (d *Data) IsLeaf(window Element) bool {
	if d.kind != KindLeaf {
		return false
	}
	return window == nil || sameElement(d.window, window)
}

// Window returns the element represented by a leaf.
func (d *Data) Window() Element {
	if d.kind != KindLeaf {
		panic("layout: Window on a group node")
	}
	return d.window
}

// Orientation returns a group's split axis.
func (d *Data) Orientation() Orientation {
	if d.kind != KindGroup {
		panic("layout: Orientation on a leaf node")
	}
	return d.orientation
}

// Sizes returns a copy of a group's per-child sizes.
func (d *Data) Sizes() []int {
	if d.kind != KindGroup {
		panic("layout: Sizes on a leaf node")
	}
	out := make([]int, len(d.sizes))
	copy(out, d.sizes)
	return out
}

// Alive returns the group's liveness marker.
func (d *Data) Alive() *Liveness {
	if d.kind != KindGroup {
		panic("layout: Alive on a leaf node")
	}
	return d.alive
}

// Geometry returns the last-computed rectangle for this node.
func (d *Data) Geometry() geom.Rect {
	return d.lastGeometry
}

// Len returns the child count of a group, or 1 for a leaf.
func (d *Data) Len() int {
	if d.kind == KindGroup {
		return len(d.sizes)
	}
	return 1
}

// addSize grows a group's child count by one at idx: the new child gets an
// equal share of the group's extent, existing sizes are scaled down by the
// remaining-length ratio, and the new entry absorbs the rounding remainder so
// the sum stays exactly the group extent.
func (d *Data) addSize(idx int) {
	if d.kind != KindGroup {
		panic("layout: addSize on a leaf node")
	}
	length := d.orientation.length(d.lastGeometry)
	equal := length / (len(d.sizes) + 1)
	if length <= 0 {
		// Degenerate cached extent; fall back to equal shares.
		for i := range d.sizes {
			d.sizes[i] = equal
		}
	} else {
		remainder := length - equal
		for i, size := range d.sizes {
			d.sizes[i] = int(math.Round(float64(size) / float64(length) * float64(remainder)))
		}
	}
	used := 0
	for _, size := range d.sizes {
		used += size
	}
	d.sizes = append(d.sizes[:idx], append([]int{length - used}, d.sizes[idx:]...)...)
}

// removeSize shrinks a group's child count by one at idx: the departing size
// is redistributed across the remaining children proportional to their own
// weight, with rounding drift pushed onto the last entry so the sum again
// matches the group extent exactly.
func (d *Data) removeSize(idx int) {
	if d.kind != KindGroup {
		panic("layout: removeSize on a leaf node")
	}
	length := d.orientation.length(d.lastGeometry)
	old := d.sizes[idx]
	d.sizes = append(d.sizes[:idx], d.sizes[idx+1:]...)
	if length <= 0 {
		// Degenerate cached extent; fall back to equal shares.
		equal := length / len(d.sizes)
		for i := range d.sizes {
			d.sizes[i] = equal
		}
	} else {
		for i, size := range d.sizes {
			d.sizes[i] = size + int(math.Round(float64(old)/float64(length)*float64(size)))
		}
	}
	d.correctDrift(length)
}

// updateGeometry assigns a new rectangle. For groups, sizes are rescaled by
// the ratio of new to previous extent along the split axis, drift-corrected
// on the last entry.
func (d *Data) updateGeometry(geo geom.Rect) {
	if d.kind == KindLeaf {
		d.lastGeometry = geo
		return
	}
	previous := d.orientation.length(d.lastGeometry)
	next := d.orientation.length(geo)
	d.rescale(previous, next)
	d.lastGeometry = geo
}

// setOrientation toggles a group's split axis, rescaling sizes from the old
// axis extent to the new one.
func (d *Data) setOrientation(orientation Orientation) {
	if d.kind != KindGroup {
		panic("layout: setOrientation on a leaf node")
	}
	previous := d.orientation.length(d.lastGeometry)
	next := orientation.length(d.lastGeometry)
	d.rescale(previous, next)
	d.orientation = orientation
}

func (d *Data) rescale(previous, next int) {
	if previous == next {
		return
	}
	if previous <= 0 {
		// Degenerate cached extent; fall back to equal shares.
		equal := next / len(d.sizes)
		for i := range d.sizes {
			d.sizes[i] = equal
		}
	} else {
		for i, size := range d.sizes {
			d.sizes[i] = int(math.Round(float64(size) / float64(previous) * float64(next)))
		}
	}
	d.correctDrift(next)
}

func (d *Data) correctDrift(length int) {
	sum := 0
	for _, size := range d.sizes {
		sum += size
	}
	if sum != length {
		d.sizes[len(d.sizes)-1] += length - sum
	}
}

// clone returns a copy of d for tree merging. The window handle and liveness
// marker are shared with the original; the sizes slice is not.
func (d *Data) clone() *Data {
	c := *d
	c.sizes = make([]int, len(d.sizes))
	copy(c.sizes, d.sizes)
	return &c
}

func (d *Data) kill() {
	if d.kind == KindGroup {
		d.alive.kill()
	}
}

func sameElement(a, b Element) bool {
	return a == b || a.ID() == b.ID()
}
