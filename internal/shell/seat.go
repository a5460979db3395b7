package shell

import (
	"iter"
	"slices"

	"github.com/Gaurav-Gosain/mosaic/internal/layout"
)

// Seat tracks the currently active output, the one piece of seat state the
// layout engine reads.
type Seat struct {
	active *Output
}

// NewSeat creates a seat focused on output.
func NewSeat(output *Output) *Seat {
	return &Seat{active: output}
}

// ActiveOutput returns the output the seat is focused on.
func (s *Seat) ActiveOutput() layout.Output {
	return s.active
}

// SetActiveOutput moves the seat to another output.
func (s *Seat) SetActiveOutput(output *Output) {
	s.active = output
}

// FocusStack is the recency-ordered window stack, most recently focused
// first. The layout engine borrows it per call and never stores it.
type FocusStack struct {
	windows []*Window
}

// Raise moves window to the front of the stack, appending it if new.
func (s *FocusStack) Raise(window *Window) {
	s.Remove(window)
	s.windows = append([]*Window{window}, s.windows...)
}

// Remove drops window from the stack.
func (s *FocusStack) Remove(window *Window) {
	s.windows = slices.DeleteFunc(s.windows, func(w *Window) bool {
		return w == window
	})
}

// Top returns the most recently focused window, or nil.
func (s *FocusStack) Top() *Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[0]
}

// Len returns the stack depth.
func (s *FocusStack) Len() int {
	return len(s.windows)
}

// Iter yields the stack in recency order for the layout engine.
func (s *FocusStack) Iter() iter.Seq[layout.Element] {
	return func(yield func(layout.Element) bool) {
		for _, w := range s.windows {
			if !yield(w) {
				return
			}
		}
	}
}
