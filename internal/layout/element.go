package layout

import "github.com/Gaurav-Gosain/mosaic/internal/geom"

// Element is the opaque window handle the engine tiles. The engine never
// owns elements; it shares them with the surface-management side and only
// writes through the tiling-node slot, which implementations must guard with
// their own lock so other subsystems can query it without tree-wide
// synchronization.
type Element interface {
	// ID is a stable identity used for equality.
	ID() string
	// Alive reports whether the underlying window still exists. Dead
	// elements are swept out of the trees on the next Refresh.
	Alive() bool
	// IsFullscreen reports whether the window is fullscreen. Fullscreen
	// windows keep their leaf but are exempt from tiled sizing.
	IsFullscreen() bool
	// HandleFocus reports whether the element consumed a directional focus
	// request internally (e.g. a stack of sub-elements).
	HandleFocus(dir FocusDirection) bool
	// SetTiled toggles the window's tiled state.
	SetTiled(tiled bool)
	// SetSize requests a new size for the window.
	SetSize(size geom.Size)
	// Configure commits any pending size request.
	Configure()
	// Subsurfaces enumerates the constituent surfaces of the element with
	// their offsets relative to the element origin, for rendering.
	Subsurfaces() []Subsurface

	// TilingNode returns the identifier of the leaf currently representing
	// this window, if tiled.
	TilingNode() (NodeID, bool)
	// SetTilingNode records the leaf identifier representing this window.
	SetTilingNode(id NodeID)
	// ClearTilingNode clears the back-reference when the window leaves the
	// tree.
	ClearTilingNode()
}

// Surface is a renderable constituent of an element.
type Surface interface {
	ID() string
}

// Subsurface pairs a surface with its offset inside the owning element.
type Subsurface struct {
	Surface Surface
	Offset  geom.Point
}

// Output is the display abstraction the registry keys its trees by.
type Output interface {
	// ID is a stable identity used for equality.
	ID() string
	// Geometry is the full output rectangle in logical coordinates.
	Geometry() geom.Rect
	// Scale is the output scale factor, forwarded to render elements.
	Scale() float64
	// UsableZone is the output area minus externally reserved regions
	// (panels, docks), in output-local coordinates.
	UsableZone() geom.Rect
}

// Seat exposes the one piece of seat state the engine reads.
type Seat interface {
	ActiveOutput() Output
}
