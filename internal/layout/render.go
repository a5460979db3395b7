package layout

import (
	"errors"
	"iter"

	"github.com/Gaurav-Gosain/mosaic/internal/geom"
)

// ErrOutputNotMapped is returned by render and query operations that
// reference an output the registry has no tree for. It is the only
// recoverable failure the engine reports.
var ErrOutputNotMapped = errors.New("layout: output not mapped")

// Tile is one tiled window with its owning output and its position in
// global (placement-adjusted) coordinates.
type Tile struct {
	Output   Output
	Element  Element
	Position geom.Point
}

// SurfaceTile is one renderable surface with its owning output and global
// position.
type SurfaceTile struct {
	Output   Output
	Surface  Surface
	Position geom.Point
}

// RenderElement is a surface ready for compositing on a specific output.
type RenderElement struct {
	Surface  Surface
	Position geom.Point
	Scale    float64
}

// Mapped yields every tiled window across all outputs, each exactly once,
// in registry and tree order. The sequence is lazy and restartable; the
// registry must not be mutated while iterating.
func (l *TilingLayout) Mapped() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for _, e := range l.entries {
			rootID, ok := e.tree.Root()
			if !ok {
				continue
			}
			for id := range e.tree.PreOrder(rootID) {
				data := e.tree.Get(id)
				if !data.IsLeaf(nil) {
					continue
				}
				tile := Tile{
					Output:   e.output,
					Element:  data.Window(),
					Position: e.location.Add(data.Geometry().Loc),
				}
				if !yield(tile) {
					return
				}
			}
		}
	}
}

// Windows yields every constituent surface of every tiled window with its
// global position, for downstream rendering.
func (l *TilingLayout) Windows() iter.Seq[SurfaceTile] {
	return func(yield func(SurfaceTile) bool) {
		for tile := range l.Mapped() {
			for _, sub := range tile.Element.Subsurfaces() {
				st := SurfaceTile{
					Output:   tile.Output,
					Surface:  sub.Surface,
					Position: tile.Position.Add(sub.Offset),
				}
				if !yield(st) {
					return
				}
			}
		}
	}
}

// RenderOutput collects the render elements of every surface tiled on
// output, or ErrOutputNotMapped for an unregistered output.
func (l *TilingLayout) RenderOutput(output Output) ([]RenderElement, error) {
	if l.entryFor(output) == nil {
		return nil, ErrOutputNotMapped
	}
	scale := output.Scale()
	var elements []RenderElement
	for st := range l.Windows() {
		if st.Output.ID() != output.ID() {
			continue
		}
		elements = append(elements, RenderElement{
			Surface:  st.Surface,
			Position: st.Position,
			Scale:    scale,
		})
	}
	return elements, nil
}

// ElementGeometry returns the window's tiled rectangle in global
// coordinates, or false if the window is not tiled.
func (l *TilingLayout) ElementGeometry(window Element) (geom.Rect, bool) {
	id, ok := window.TilingNode()
	if !ok {
		return geom.Rect{}, false
	}
	for _, e := range l.entries {
		if e.tree.Contains(id) && e.tree.Get(id).IsLeaf(window) {
			return e.tree.Get(id).Geometry().Translate(e.location), true
		}
	}
	return geom.Rect{}, false
}

// OutputForElement returns the output whose tree holds the window's leaf.
func (l *TilingLayout) OutputForElement(window Element) (Output, bool) {
	id, ok := window.TilingNode()
	if !ok {
		return nil, false
	}
	for _, e := range l.entries {
		if e.tree.Contains(id) && e.tree.Get(id).IsLeaf(window) {
			return e.output, true
		}
	}
	return nil, false
}
