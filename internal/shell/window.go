// Package shell provides the concrete window, output and seat types the
// layout engine consumes through its interfaces. The engine itself never
// depends on these; they are the surface-management side of the compositor
// and the harness the demo and tests drive the engine with.
package shell

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/mosaic/internal/geom"
	"github.com/Gaurav-Gosain/mosaic/internal/layout"
)

// Window is a mapped toplevel window. It is shared between the compositor
// control thread and other subsystems, so the tiling back-reference slot is
// guarded by its own mutex: readers can ask "is this window tiled and where"
// without any tree-wide synchronization.
type Window struct {
	id    string
	Title string

	mu         sync.Mutex
	tilingNode layout.NodeID
	hasNode    bool
	tiled      bool
	fullscreen bool
	closed     bool

	requestedSize  geom.Size
	committedSize  geom.Size
	configureCount int

	// focusHandler, when set, lets the window consume directional focus
	// requests internally (e.g. a tabbed stack of sub-windows).
	focusHandler func(layout.FocusDirection) bool
}

// NewWindow creates a window with a fresh identity.
func NewWindow(title string) *Window {
	return &Window{
		id:    uuid.New().String(),
		Title: title,
	}
}

// ID returns the window's stable identity.
func (w *Window) ID() string {
	return w.id
}

// Alive reports whether the window still exists. Closed windows are swept
// out of the layout on the next refresh.
func (w *Window) Alive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed
}

// Close marks the window dead.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

// IsFullscreen reports whether the window is fullscreen.
func (w *Window) IsFullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

// SetFullscreen toggles fullscreen state.
func (w *Window) SetFullscreen(fullscreen bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fullscreen = fullscreen
}

// HandleFocus reports whether the window consumed the focus direction
// internally.
func (w *Window) HandleFocus(dir layout.FocusDirection) bool {
	if w.focusHandler == nil {
		return false
	}
	return w.focusHandler(dir)
}

// SetFocusHandler installs an internal directional-focus handler.
func (w *Window) SetFocusHandler(fn func(layout.FocusDirection) bool) {
	w.focusHandler = fn
}

// SetTiled records whether the window is currently tiled.
func (w *Window) SetTiled(tiled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tiled = tiled
}

// IsTiled reports whether the window is currently tiled.
func (w *Window) IsTiled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tiled
}

// SetSize requests a new window size. The size takes effect on Configure.
func (w *Window) SetSize(size geom.Size) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.requestedSize = size
}

// Configure commits the pending size request. Requests that do not change
// the committed size are not counted as reconfigurations.
func (w *Window) Configure() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.requestedSize == w.committedSize {
		return
	}
	w.committedSize = w.requestedSize
	w.configureCount++
}

// Size returns the last committed size.
func (w *Window) Size() geom.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.committedSize
}

// ConfigureCount returns how many size changes have been committed.
func (w *Window) ConfigureCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.configureCount
}

// Subsurfaces returns the window's renderable surfaces; a plain toplevel is
// its own single surface at the origin.
func (w *Window) Subsurfaces() []layout.Subsurface {
	return []layout.Subsurface{{Surface: w, Offset: geom.Point{}}}
}

// TilingNode returns the identifier of the leaf currently representing this
// window, if tiled.
func (w *Window) TilingNode() (layout.NodeID, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tilingNode, w.hasNode
}

// SetTilingNode records the leaf representing this window.
func (w *Window) SetTilingNode(id layout.NodeID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tilingNode = id
	w.hasNode = true
}

// ClearTilingNode clears the back-reference.
func (w *Window) ClearTilingNode() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tilingNode = 0
	w.hasNode = false
}
