package layout

import (
	"iter"
	"math"

	"github.com/Gaurav-Gosain/mosaic/internal/geom"
)

// GroupHandle is a weak reference to a group node, handed out by FocusOut
// navigation. The group may be collapsed at any time after the handle is
// created; holders must check Valid before acting on it.
type GroupHandle struct {
	Node   NodeID
	Output Output
	Alive  *Liveness
}

// Valid reports whether the referenced group still exists.
func (h *GroupHandle) Valid() bool {
	return h != nil && h.Alive.OK()
}

// FocusTarget is the result of a directional focus search: either a window
// element or, for FocusOut, a handle to the enclosing group. Exactly one of
// the two fields is set.
type FocusTarget struct {
	Element Element
	Group   *GroupHandle
}

// NextFocus answers a directional focus-navigation request relative to the
// most recently focused window on the seat's active output.
//
// The search walks up through ancestor groups looking for one whose
// orientation matches the direction and which has a sibling on that side,
// then descends into the selected subtree toward the leaf nearest the edge
// the focus leaves from. It returns false when the walk reaches the root
// without a candidate, when the active window handles the direction
// internally, or when no window is tiled on the active output.
func (l *TilingLayout) NextFocus(direction FocusDirection, seat Seat, focusStack iter.Seq[Element]) (FocusTarget, bool) {
	e := l.entryFor(seat.ActiveOutput())
	if e == nil {
		return FocusTarget{}, false
	}
	tree := e.tree

	window, leafID, ok := lastActiveLeaf(tree, focusStack)
	if !ok {
		return FocusTarget{}, false
	}
	// Stacks and similar composites may consume the direction themselves.
	if window.HandleFocus(direction) {
		return FocusTarget{}, false
	}

	child := leafID
	for {
		group, hasParent := tree.Parent(child)
		if !hasParent {
			return FocusTarget{}, false
		}
		groupData := tree.Get(group)

		if direction == FocusOut {
			return FocusTarget{Group: &GroupHandle{
				Node:   group,
				Output: e.output,
				Alive:  groupData.Alive(),
			}}, true
		}

		mainOrientation := groupData.Orientation()
		idx := tree.ChildIndex(group, child)
		if direction.matches(mainOrientation) {
			var neighbor NodeID
			found := false
			if direction.forward() && idx < groupData.Len()-1 {
				neighbor = tree.Children(group)[idx+1]
				found = true
			} else if !direction.forward() && idx > 0 {
				neighbor = tree.Children(group)[idx-1]
				found = true
			}
			if found {
				origin := direction.edgeMidpoint(tree.Get(leafID).Geometry())
				return FocusTarget{Element: l.descend(tree, neighbor, direction, mainOrientation, origin)}, true
			}
		}
		child = group
	}
}

// GroupGeometry resolves a group handle to the group's current rectangle in
// global coordinates. It reports false when the group has been collapsed,
// its output unmapped, or the handle is stale. Node identifiers are per-tree
// counters and can be reused by a later group (after an output unmap/remap
// cycle, or a merge that moved the group to a new identifier), so the
// resolved node must also carry the handle's own liveness marker.
func (l *TilingLayout) GroupGeometry(handle *GroupHandle) (geom.Rect, bool) {
	if !handle.Valid() {
		return geom.Rect{}, false
	}
	e := l.entryFor(handle.Output)
	if e == nil || !e.tree.Contains(handle.Node) {
		return geom.Rect{}, false
	}
	data := e.tree.Get(handle.Node)
	if !data.IsGroup() || data.Alive() != handle.Alive {
		return geom.Rect{}, false
	}
	return data.Geometry().Translate(e.location), true
}

// descend resolves a selected neighbor subtree to a concrete leaf. Groups
// laid out along the travel axis contribute their first or last child
// deterministically; groups on the other axis contribute the child whose
// facing edge midpoint is nearest the origin point.
func (l *TilingLayout) descend(tree *Tree, id NodeID, direction FocusDirection, mainOrientation Orientation, origin geom.Point) Element {
	for {
		data := tree.Get(id)
		switch {
		case data.IsGroup() && data.Orientation() == mainOrientation:
			children := tree.Children(id)
			if direction.forward() {
				id = children[0]
			} else {
				id = children[len(children)-1]
			}
		case data.IsGroup():
			children := tree.Children(id)
			best := children[0]
			bestDist := math.Inf(1)
			for _, c := range children {
				facing := direction.opposite().edgeMidpoint(tree.Get(c).Geometry())
				if d := origin.Dist(facing); d < bestDist {
					best, bestDist = c, d
				}
			}
			id = best
		default:
			return data.Window()
		}
	}
}
