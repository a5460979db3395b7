// Package app implements the interactive mosaic demo: a bubbletea program
// that drives the tiling engine with a simulated output, seat and windows,
// rendering the resulting layout as bordered boxes.
package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/Gaurav-Gosain/mosaic/internal/geom"
	"github.com/Gaurav-Gosain/mosaic/internal/layout"
	"github.com/Gaurav-Gosain/mosaic/internal/shell"
)

// Compositor is the demo model. It owns the layout engine plus the shell
// state a real compositor would: outputs, a seat and the focus stack.
type Compositor struct {
	Layout *layout.TilingLayout
	Config *config.UserConfig

	output     *shell.Output
	seat       *shell.Seat
	focusStack *shell.FocusStack

	// focusedGroup is set when directional focus escalated to a group.
	// The handle is weak: the group may collapse at any time, so every use
	// goes through the engine's liveness-checked lookup.
	focusedGroup *layout.GroupHandle

	width, height int
	nextWindow    int
	status        string
	log           *log.Logger
}

// CompositorOptions configures a new demo compositor.
type CompositorOptions struct {
	Config *config.UserConfig
	Logger *log.Logger
}

// NewCompositor creates the demo model with a single terminal-sized output.
func NewCompositor(opts CompositorOptions) *Compositor {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("demo")
	}

	output := shell.NewOutput("demo-0", geom.Size{W: 80, H: 24}, 1.0)
	seat := shell.NewSeat(output)

	engineOpts := []layout.Option{
		layout.WithGaps(cfg.Gaps.Outer, cfg.Gaps.Inner),
		layout.WithMergePolicy(cfg.MergePolicy()),
		layout.WithLogger(logger.WithPrefix("layout")),
	}
	if o, ok := cfg.InsertOrientation(); ok {
		engineOpts = append(engineOpts, layout.WithInsertOrientation(o))
	}
	engine := layout.New(engineOpts...)
	engine.MapOutput(output, geom.Point{})

	return &Compositor{
		Layout:     engine,
		Config:     cfg,
		output:     output,
		seat:       seat,
		focusStack: &shell.FocusStack{},
		log:        logger,
	}
}

// FocusedWindow returns the window at the top of the focus stack.
func (m *Compositor) FocusedWindow() *shell.Window {
	return m.focusStack.Top()
}

// OpenWindow maps a new window into the layout and focuses it.
func (m *Compositor) OpenWindow() {
	m.nextWindow++
	w := shell.NewWindow(fmt.Sprintf("window %d", m.nextWindow))
	m.Layout.Map(w, m.seat, m.focusStack.Iter())
	m.focusStack.Raise(w)
	m.focusedGroup = nil
	m.status = fmt.Sprintf("opened %s", w.Title)
}

// CloseFocused closes the focused window and removes it from the layout.
func (m *Compositor) CloseFocused() {
	w := m.FocusedWindow()
	if w == nil {
		return
	}
	w.Close()
	m.Layout.Unmap(w)
	m.focusStack.Remove(w)
	m.focusedGroup = nil
	m.status = fmt.Sprintf("closed %s", w.Title)
}

// MoveFocus asks the engine for the next focus target in direction.
func (m *Compositor) MoveFocus(direction layout.FocusDirection) {
	target, ok := m.Layout.NextFocus(direction, m.seat, m.focusStack.Iter())
	if !ok {
		m.status = fmt.Sprintf("focus %s: nothing there", direction)
		return
	}
	if target.Element != nil {
		if w, ok := target.Element.(*shell.Window); ok {
			m.focusStack.Raise(w)
			m.focusedGroup = nil
			m.status = fmt.Sprintf("focused %s", w.Title)
		}
		return
	}
	m.focusedGroup = target.Group
	m.status = "focused group"
}

// FocusedGroupRect returns the rectangle of the group selected via FocusOut,
// if that group still exists.
func (m *Compositor) FocusedGroupRect() (geom.Rect, bool) {
	if m.focusedGroup == nil {
		return geom.Rect{}, false
	}
	return m.Layout.GroupGeometry(m.focusedGroup)
}

// ToggleOrientation flips the orientation of the focused window's group.
func (m *Compositor) ToggleOrientation() {
	w := m.FocusedWindow()
	if w == nil {
		return
	}
	next := layout.Horizontal
	if geo, ok := m.Layout.ElementGeometry(w); ok && geo.Size.W >= geo.Size.H {
		next = layout.Vertical
	}
	m.Layout.UpdateOrientation(next, m.seat, m.focusStack.Iter())
	m.status = fmt.Sprintf("orientation %s", next)
}

// ToggleFullscreen toggles fullscreen on the focused window.
func (m *Compositor) ToggleFullscreen() {
	w := m.FocusedWindow()
	if w == nil {
		return
	}
	w.SetFullscreen(!w.IsFullscreen())
	m.Layout.Refresh()
	if w.IsFullscreen() {
		m.status = fmt.Sprintf("%s fullscreen", w.Title)
	} else {
		m.status = fmt.Sprintf("%s tiled", w.Title)
	}
}

// ApplyConfig applies a reloaded configuration to the running layout.
func (m *Compositor) ApplyConfig(cfg *config.UserConfig) {
	m.Config = cfg
	m.Layout.SetGaps(cfg.Gaps.Outer, cfg.Gaps.Inner)
	m.Layout.Refresh()
	m.status = "config reloaded"
	m.log.Info("config reloaded", "outer", cfg.Gaps.Outer, "inner", cfg.Gaps.Inner)
}

// Resize updates the demo output to the new terminal size.
func (m *Compositor) Resize(width, height int) {
	m.width, m.height = width, height
	// Reserve one row for the status bar.
	m.output.Resize(geom.Size{W: width, H: max(height-1, 0)})
	m.Layout.Refresh()
}
