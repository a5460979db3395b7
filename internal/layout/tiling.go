package layout

import (
	"iter"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/mosaic/internal/geom"
)

// MergePolicy selects which remaining output inherits the tree of an output
// being unmapped when more than one candidate exists.
type MergePolicy string

const (
	// MergeFirst merges into the earliest-registered remaining output.
	MergeFirst MergePolicy = "first"
	// MergeLargest merges into the remaining output with the largest area.
	MergeLargest MergePolicy = "largest"
	// MergeNone drops the orphaned tree; its windows become untiled.
	MergeNone MergePolicy = "none"
)

type registryEntry struct {
	output   Output
	location geom.Point
	tree     *Tree
	// dirty forces the next propagation pass to visit this tree even when
	// its root geometry is unchanged. Structural edits below the root,
	// orientation toggles and gap changes all leave the root rectangle
	// intact.
	dirty bool
}

// TilingLayout is the layout registry plus the engine operating on it: one
// partition tree per mapped output, with the output's logical placement
// offset for global-coordinate translation.
//
// All methods must be called from the single compositor control thread.
type TilingLayout struct {
	outerGap    int
	innerGap    int
	mergePolicy MergePolicy
	// insertOrientation, when set, pins the split axis for new windows
	// instead of the aspect-ratio heuristic.
	insertOrientation *Orientation
	entries           []*registryEntry
	log               *log.Logger
}

// Option configures a TilingLayout.
type Option func(*TilingLayout)

// WithGaps sets the outer gap (around each output's tree) and inner gap
// (around each window), in logical pixels.
func WithGaps(outer, inner int) Option {
	return func(l *TilingLayout) {
		l.outerGap = outer
		l.innerGap = inner
	}
}

// WithMergePolicy sets the output-unmap merge policy.
func WithMergePolicy(p MergePolicy) Option {
	return func(l *TilingLayout) {
		l.mergePolicy = p
	}
}

// WithInsertOrientation pins the split axis used when inserting windows,
// overriding the aspect-ratio heuristic.
func WithInsertOrientation(o Orientation) Option {
	return func(l *TilingLayout) {
		l.insertOrientation = &o
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *TilingLayout) {
		l.log = logger
	}
}

// New returns an empty layout registry. Default gaps are 0 outer, 4 inner;
// the default merge policy is MergeFirst.
func New(opts ...Option) *TilingLayout {
	l := &TilingLayout{
		outerGap:    0,
		innerGap:    4,
		mergePolicy: MergeFirst,
		log:         log.Default().WithPrefix("layout"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetGaps changes the gap sizes. Geometries are recomputed on the next
// Refresh even where root geometry is unchanged.
func (l *TilingLayout) SetGaps(outer, inner int) {
	if outer == l.outerGap && inner == l.innerGap {
		return
	}
	l.outerGap = outer
	l.innerGap = inner
	for _, e := range l.entries {
		e.dirty = true
	}
}

// MapOutput registers output with its placement offset, or updates the
// placement of an already-registered output. Tree contents are untouched.
func (l *TilingLayout) MapOutput(output Output, location geom.Point) {
	if e := l.entryFor(output); e != nil {
		e.output = output
		e.location = location
		return
	}
	l.entries = append(l.entries, &registryEntry{
		output:   output,
		location: location,
		tree:     NewTree(),
	})
}

// UnmapOutput removes output from the registry. Its tree is merged into the
// output chosen by the merge policy; with no remaining output (or policy
// MergeNone) the tree is dropped and its windows become untiled.
func (l *TilingLayout) UnmapOutput(output Output) {
	idx := l.entryIndex(output)
	if idx < 0 {
		return
	}
	src := l.entries[idx]
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	if src.tree.Empty() {
		return
	}

	dst := l.mergeTarget()
	if dst == nil {
		l.log.Warn("dropping layout tree of unmapped output",
			"output", src.output.ID(), "windows", src.tree.Len())
		dropTree(src.tree)
		return
	}
	l.log.Debug("merging tree of unmapped output",
		"source", src.output.ID(), "destination", dst.output.ID())
	dst.tree = mergeTrees(src.tree, dst.tree, orientationFor(dst.output))
	dst.dirty = true
	l.Refresh()
}

// Map tiles window on the seat's active output, splitting the most recently
// focused window there (or the tree root), and re-propagates geometry.
func (l *TilingLayout) Map(window Element, seat Seat, focusStack iter.Seq[Element]) {
	l.mapInternal(window, seat.ActiveOutput(), focusStack)
	l.Refresh()
}

func (l *TilingLayout) mapInternal(window Element, output Output, focusStack iter.Seq[Element]) {
	e := l.entryFor(output)
	if e == nil {
		panic("layout: Map on unregistered output " + output.ID())
	}
	tree := e.tree
	leaf := newLeafData(window)

	var leafID NodeID
	if _, refID, ok := lastActiveLeaf(tree, focusStack); ok {
		leafID = wrapIntoGroup(tree, refID, leaf, l.orientationForInsert(tree.Get(refID).Geometry()))
	} else if rootID, ok := tree.Root(); ok {
		leafID = wrapIntoGroup(tree, rootID, leaf, l.orientationForInsert(output.Geometry()))
	} else {
		leafID = tree.InsertRoot(leaf)
	}
	window.SetTilingNode(leafID)
	e.dirty = true
}

// Unmap removes window from its tree, reporting whether it was tiled. On
// success the window's back-reference is cleared, its tiled flag unset, and
// geometry re-propagated.
func (l *TilingLayout) Unmap(window Element) bool {
	if !l.unmapInternal(window) {
		return false
	}
	window.SetTiled(false)
	l.Refresh()
	return true
}

func (l *TilingLayout) unmapInternal(window Element) bool {
	id, ok := window.TilingNode()
	if !ok {
		return false
	}
	var owner *registryEntry
	for _, e := range l.entries {
		if e.tree.Contains(id) && e.tree.Get(id).IsLeaf(window) {
			owner = e
			break
		}
	}
	if owner == nil {
		return false
	}
	tree := owner.tree

	parent, hasParent := tree.Parent(id)
	pos := 0
	var grandparent NodeID
	hasGrandparent := false
	if hasParent {
		pos = tree.ChildIndex(parent, id)
		grandparent, hasGrandparent = tree.Parent(parent)
	}

	l.log.Debug("remove window", "window", window.ID())
	tree.RemoveLeaf(id)

	if hasParent {
		group := tree.Get(parent)
		if group.Len() > 2 {
			group.removeSize(pos)
		} else {
			// Binary group reduced to one child: splice the survivor into
			// the group's former position.
			l.log.Debug("removing group")
			survivor := tree.Children(parent)[0]
			forkPos := -1
			if hasGrandparent {
				forkPos = tree.ChildIndex(grandparent, parent)
			}
			tree.RemoveOrphaning(parent)
			if hasGrandparent {
				tree.MoveToParent(survivor, grandparent)
				tree.MakeNthSibling(survivor, forkPos)
			} else {
				tree.MoveToRoot(survivor)
			}
		}
	}

	window.ClearTilingNode()
	owner.dirty = true
	return true
}

// Refresh sweeps windows whose liveness check fails, then re-propagates
// geometry on every output. Safe to call whenever state may be stale.
func (l *TilingLayout) Refresh() {
	var dead []Element
	for tile := range l.Mapped() {
		if !tile.Element.Alive() {
			dead = append(dead, tile.Element)
		}
	}
	for _, window := range dead {
		l.log.Debug("sweeping dead window", "window", window.ID())
		l.unmapInternal(window)
	}
	l.updateSpacePositions()
}

// UpdateOrientation toggles the orientation of the last-active window's
// parent group, rescaling its sizes, and re-propagates.
func (l *TilingLayout) UpdateOrientation(orientation Orientation, seat Seat, focusStack iter.Seq[Element]) {
	if e := l.entryFor(seat.ActiveOutput()); e != nil {
		if _, id, ok := lastActiveLeaf(e.tree, focusStack); ok {
			if parent, hasParent := e.tree.Parent(id); hasParent {
				group := e.tree.Get(parent)
				if group.Orientation() != orientation {
					group.setOrientation(orientation)
					e.dirty = true
				}
			}
		}
	}
	l.Refresh()
}

// Merge folds every tree of other into this registry, matching by output.
// Outputs unknown to this registry are mapped first. The merged layout owns
// all windows afterwards; other must not be used again.
func (l *TilingLayout) Merge(other *TilingLayout) {
	for _, src := range other.entries {
		e := l.entryFor(src.output)
		if e == nil {
			l.MapOutput(src.output, src.location)
			e = l.entryFor(src.output)
		}
		e.tree = mergeTrees(src.tree, e.tree, orientationFor(src.output))
		e.dirty = true
	}
	other.entries = nil
	l.Refresh()
}

// mergeTrees deep-copies src into dst under a fresh top-level split and
// returns the resulting tree. An empty dst adopts src wholesale (node
// identifiers survive, so back-references stay valid); otherwise every copied
// node receives a new identifier and each copied leaf's window back-reference
// is rewritten to it.
func mergeTrees(src, dst *Tree, orientation Orientation) *Tree {
	srcRoot, ok := src.Root()
	if !ok {
		return dst
	}
	dstRoot, ok := dst.Root()
	if !ok {
		return src
	}

	copyNode := func(id NodeID, insert func(*Data) NodeID) NodeID {
		data := src.Get(id).clone()
		newID := insert(data)
		if data.IsLeaf(nil) {
			data.Window().SetTilingNode(newID)
		}
		return newID
	}

	groupID := dst.Wrap(dstRoot, newGroupData(orientation, placeholderGeometry))
	intoID := copyNode(srcRoot, func(d *Data) NodeID { return dst.InsertUnder(groupID, d) })

	stack := [][2]NodeID{{srcRoot, intoID}}
	for len(stack) > 0 {
		pair := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, childID := range src.Children(pair[0]) {
			newID := copyNode(childID, func(d *Data) NodeID { return dst.InsertUnder(pair[1], d) })
			stack = append(stack, [2]NodeID{childID, newID})
		}
	}
	return dst
}

// updateSpacePositions is the top-down geometry propagation pass: each tree
// root is seeded with the output's usable area shrunk by the outer gap, and
// every group divides its rectangle among its children along its orientation.
// A clean tree whose root geometry already matches the target is skipped
// entirely.
func (l *TilingLayout) updateSpacePositions() {
	type workItem struct {
		id  NodeID
		geo geom.Rect
	}
	for _, e := range l.entries {
		rootID, ok := e.tree.Root()
		if !ok {
			continue
		}
		target := e.output.UsableZone().Shrink(l.outerGap)
		if !e.dirty && e.tree.Get(rootID).Geometry() == target {
			continue
		}

		sawFullscreen := false
		queue := []workItem{{rootID, target}}
		for len(queue) > 0 {
			item := queue[0]
			queue = queue[1:]
			data := e.tree.Get(item.id)
			data.updateGeometry(item.geo)

			if data.IsGroup() {
				offset := 0
				for i, child := range e.tree.Children(item.id) {
					size := data.sizes[i]
					var sub geom.Rect
					if data.orientation == Horizontal {
						sub = geom.FromLocAndSize(item.geo.Loc.X, item.geo.Loc.Y+offset, item.geo.Size.W, size)
					} else {
						sub = geom.FromLocAndSize(item.geo.Loc.X+offset, item.geo.Loc.Y, size, item.geo.Size.H)
					}
					queue = append(queue, workItem{child, sub})
					offset += size
				}
				continue
			}

			window := data.Window()
			if window.IsFullscreen() {
				// Fullscreen windows keep their leaf but manage their own
				// size. Hold the dirty flag so the tile is re-committed on
				// the pass after they exit.
				sawFullscreen = true
				continue
			}
			window.SetTiled(true)
			window.SetSize(item.geo.Shrink(l.innerGap).Size)
			window.Configure()
		}
		e.dirty = sawFullscreen
	}
}

// lastActiveLeaf resolves the reference position for insertion and focus
// navigation: the first window in the recency stack whose leaf still exists
// in tree.
func lastActiveLeaf(tree *Tree, focusStack iter.Seq[Element]) (Element, NodeID, bool) {
	if focusStack == nil {
		return nil, 0, false
	}
	for window := range focusStack {
		if id, ok := window.TilingNode(); ok && tree.Contains(id) && tree.Get(id).IsLeaf(window) {
			return window, id, true
		}
	}
	return nil, 0, false
}

// wrapIntoGroup replaces the node at refID with a fresh binary group holding
// the old node and data, and returns data's new identifier.
func wrapIntoGroup(tree *Tree, refID NodeID, data *Data, orientation Orientation) NodeID {
	groupID := tree.Wrap(refID, newGroupData(orientation, placeholderGeometry))
	return tree.InsertUnder(groupID, data)
}

// orientationForInsert picks the split axis for a new window: the pinned
// orientation if configured, else wider than tall splits side by side,
// otherwise stacked.
func (l *TilingLayout) orientationForInsert(geo geom.Rect) Orientation {
	if l.insertOrientation != nil {
		return *l.insertOrientation
	}
	if geo.Size.W > geo.Size.H {
		return Vertical
	}
	return Horizontal
}

// orientationFor picks the top-level split axis when merging into output.
func orientationFor(output Output) Orientation {
	geo := output.Geometry()
	if geo.Size.W >= geo.Size.H {
		return Horizontal
	}
	return Vertical
}

func (l *TilingLayout) mergeTarget() *registryEntry {
	if len(l.entries) == 0 || l.mergePolicy == MergeNone {
		return nil
	}
	switch l.mergePolicy {
	case MergeLargest:
		best := l.entries[0]
		bestArea := area(best.output)
		for _, e := range l.entries[1:] {
			if a := area(e.output); a > bestArea {
				best, bestArea = e, a
			}
		}
		return best
	default:
		return l.entries[0]
	}
}

func area(output Output) int {
	geo := output.Geometry()
	return geo.Size.W * geo.Size.H
}

// dropTree unties every window of a tree that is being discarded.
func dropTree(tree *Tree) {
	rootID, ok := tree.Root()
	if !ok {
		return
	}
	for id := range tree.PreOrder(rootID) {
		data := tree.Get(id)
		if data.IsLeaf(nil) {
			data.Window().ClearTilingNode()
			data.Window().SetTiled(false)
		} else {
			data.kill()
		}
	}
}

func (l *TilingLayout) entryFor(output Output) *registryEntry {
	if idx := l.entryIndex(output); idx >= 0 {
		return l.entries[idx]
	}
	return nil
}

func (l *TilingLayout) entryIndex(output Output) int {
	for i, e := range l.entries {
		if e.output.ID() == output.ID() {
			return i
		}
	}
	return -1
}
