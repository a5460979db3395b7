package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-Gosain/mosaic/internal/geom"
	"github.com/Gaurav-Gosain/mosaic/internal/layout"
	"github.com/Gaurav-Gosain/mosaic/internal/shell"
)

// gridHarness tiles four windows into a 2x2 grid:
//
//	a | b
//	c | d
func gridHarness() (*harness, [4]*shell.Window) {
	h := newHarness()
	a := h.mapWindow("a")
	b := h.mapWindow("b")
	h.stack.Raise(a)
	c := h.mapWindow("c")
	h.stack.Raise(b)
	d := h.mapWindow("d")
	return h, [4]*shell.Window{a, b, c, d}
}

func (h *harness) focusFrom(w *shell.Window, dir layout.FocusDirection) (layout.FocusTarget, bool) {
	h.stack.Raise(w)
	return h.engine.NextFocus(dir, h.seat, h.stack.Iter())
}

func TestNextFocusAcrossTheGrid(t *testing.T) {
	h, ws := gridHarness()
	a, b, c, d := ws[0], ws[1], ws[2], ws[3]

	tests := []struct {
		name string
		from *shell.Window
		dir  layout.FocusDirection
		want *shell.Window
	}{
		{"a right to b", a, layout.FocusRight, b},
		{"a down to c", a, layout.FocusDown, c},
		{"b left to a", b, layout.FocusLeft, a},
		{"b down to d", b, layout.FocusDown, d},
		{"c up to a", c, layout.FocusUp, a},
		{"c right to d", c, layout.FocusRight, d},
		{"d up to b", d, layout.FocusUp, b},
		{"d left to c", d, layout.FocusLeft, c},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, ok := h.focusFrom(tt.from, tt.dir)
			require.True(t, ok)
			require.NotNil(t, target.Element)
			assert.Equal(t, tt.want.ID(), target.Element.ID())
		})
	}
}

func TestNextFocusAtLayoutEdge(t *testing.T) {
	h, ws := gridHarness()
	a, d := ws[0], ws[3]

	for _, tt := range []struct {
		name string
		from *shell.Window
		dir  layout.FocusDirection
	}{
		{"a left", a, layout.FocusLeft},
		{"a up", a, layout.FocusUp},
		{"d right", d, layout.FocusRight},
		{"d down", d, layout.FocusDown},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := h.focusFrom(tt.from, tt.dir)
			assert.False(t, ok)
		})
	}
}

func TestNextFocusDescendsToNearestLeaf(t *testing.T) {
	h := newHarness()
	a := h.mapWindow("a")
	b := h.mapWindow("b")
	h.stack.Raise(a)
	c := h.mapWindow("c") // a over c on the left
	h.stack.Raise(b)
	e := h.mapWindow("e") // b over e on the right

	// c sits at (0,300..600); its right edge midpoint is (400,450), closest
	// to e's left edge midpoint (400,450).
	target, ok := h.focusFrom(c, layout.FocusRight)
	require.True(t, ok)
	require.NotNil(t, target.Element)
	assert.Equal(t, e.ID(), target.Element.ID())

	// b sits at (400,0..300); moving left lands on a, not c.
	target, ok = h.focusFrom(b, layout.FocusLeft)
	require.True(t, ok)
	require.NotNil(t, target.Element)
	assert.Equal(t, a.ID(), target.Element.ID())
}

func TestNextFocusOutReturnsGroupHandle(t *testing.T) {
	h, ws := gridHarness()
	a, c := ws[0], ws[2]

	target, ok := h.focusFrom(a, layout.FocusOut)
	require.True(t, ok)
	require.NotNil(t, target.Group)
	assert.Nil(t, target.Element)
	assert.True(t, target.Group.Valid())
	assert.Equal(t, h.output.ID(), target.Group.Output.ID())

	// Collapsing the group invalidates outstanding handles.
	require.True(t, h.engine.Unmap(c))
	assert.False(t, target.Group.Valid())
}

func TestGroupGeometryTracksHandle(t *testing.T) {
	h, ws := gridHarness()
	a, c := ws[0], ws[2]

	target, ok := h.focusFrom(a, layout.FocusOut)
	require.True(t, ok)
	require.NotNil(t, target.Group)

	// a and c stack in the left column, so their group spans it.
	rect, ok := h.engine.GroupGeometry(target.Group)
	require.True(t, ok)
	assert.Equal(t, geom.FromLocAndSize(0, 0, 400, 600), rect)

	// Closing c collapses the group; the handle resolves to nothing.
	require.True(t, h.engine.Unmap(c))
	_, ok = h.engine.GroupGeometry(target.Group)
	assert.False(t, ok)
}

func TestGroupGeometryRejectsReusedNodeID(t *testing.T) {
	h := newHarness()
	second := shell.NewOutput("out-1", geom.Size{W: 640, H: 480}, 1.0)
	h.engine.MapOutput(second, geom.Point{X: 800, Y: 0})

	a := h.mapWindow("a")
	h.mapWindow("b")
	target, ok := h.focusFrom(a, layout.FocusOut)
	require.True(t, ok)
	require.NotNil(t, target.Group)

	// The a/b group survives the merge onto out-1, so its marker stays
	// alive. Remapping out-0 and splitting twice mints a fresh group whose
	// per-tree identifier collides with the handle's.
	h.engine.UnmapOutput(h.output)
	h.engine.MapOutput(h.output, geom.Point{})
	h.mapWindow("c")
	h.mapWindow("d")

	require.True(t, target.Group.Valid())
	_, ok = h.engine.GroupGeometry(target.Group)
	assert.False(t, ok, "stale handle must not resolve to an unrelated group")
}

func TestNextFocusOutAtRoot(t *testing.T) {
	h := newHarness()
	a := h.mapWindow("only")

	_, ok := h.focusFrom(a, layout.FocusOut)
	assert.False(t, ok, "a root leaf has no enclosing group")
}

func TestNextFocusConsumedByWindow(t *testing.T) {
	h, ws := gridHarness()
	a := ws[0]
	a.SetFocusHandler(func(layout.FocusDirection) bool { return true })

	_, ok := h.focusFrom(a, layout.FocusRight)
	assert.False(t, ok, "internally handled directions produce no target")
}

func TestNextFocusNoTiledWindows(t *testing.T) {
	h := newHarness()
	_, ok := h.engine.NextFocus(layout.FocusRight, h.seat, h.stack.Iter())
	assert.False(t, ok)
}

func TestNextFocusUnregisteredOutput(t *testing.T) {
	h, _ := gridHarness()
	h.seat.SetActiveOutput(shell.NewOutput("elsewhere", geom.Size{W: 100, H: 100}, 1.0))

	_, ok := h.engine.NextFocus(layout.FocusRight, h.seat, h.stack.Iter())
	assert.False(t, ok)
}
