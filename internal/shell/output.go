package shell

import (
	"github.com/Gaurav-Gosain/mosaic/internal/geom"
)

// Insets is externally reserved space on the four edges of an output
// (panels, docks), excluded from the tiled area.
type Insets struct {
	Top, Bottom, Left, Right int
}

// Output is a display output. Geometry is output-local (origin zero); the
// layout registry supplies the global placement offset.
type Output struct {
	id       string
	size     geom.Size
	scale    float64
	reserved Insets
}

// NewOutput creates an output with the given identity and mode.
func NewOutput(id string, size geom.Size, scale float64) *Output {
	return &Output{id: id, size: size, scale: scale}
}

// ID returns the output's stable identity.
func (o *Output) ID() string {
	return o.id
}

// Geometry returns the full output rectangle.
func (o *Output) Geometry() geom.Rect {
	return geom.Rect{Size: o.size}
}

// Scale returns the output scale factor.
func (o *Output) Scale() float64 {
	return o.scale
}

// Resize changes the output mode.
func (o *Output) Resize(size geom.Size) {
	o.size = size
}

// Reserve records externally reserved edge zones.
func (o *Output) Reserve(insets Insets) {
	o.reserved = insets
}

// UsableZone returns the output area minus reserved zones.
func (o *Output) UsableZone() geom.Rect {
	r := geom.FromLocAndSize(
		o.reserved.Left,
		o.reserved.Top,
		o.size.W-o.reserved.Left-o.reserved.Right,
		o.size.H-o.reserved.Top-o.reserved.Bottom,
	)
	if r.Size.W < 0 {
		r.Size.W = 0
	}
	if r.Size.H < 0 {
		r.Size.H = 0
	}
	return r
}
