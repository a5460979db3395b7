package layout

import (
	"slices"
	"testing"

	"github.com/Gaurav-Gosain/mosaic/internal/geom"
)

// stubElement is the minimal Element used by structural tree tests.
type stubElement struct {
	id     string
	node   NodeID
	has    bool
	tiled  bool
	closed bool
}

func (s *stubElement) ID() string                      { return s.id }
func (s *stubElement) Alive() bool                     { return !s.closed }
func (s *stubElement) IsFullscreen() bool              { return false }
func (s *stubElement) HandleFocus(FocusDirection) bool { return false }
func (s *stubElement) SetTiled(tiled bool)             { s.tiled = tiled }
func (s *stubElement) SetSize(geom.Size)               {}
func (s *stubElement) Configure()                      {}
func (s *stubElement) Subsurfaces() []Subsurface       { return nil }
func (s *stubElement) TilingNode() (NodeID, bool)      { return s.node, s.has }
func (s *stubElement) SetTilingNode(id NodeID)         { s.node, s.has = id, true }
func (s *stubElement) ClearTilingNode()                { s.node, s.has = 0, false }

func TestInsertAndLookup(t *testing.T) {
	tree := NewTree()
	if !tree.Empty() {
		t.Fatal("new tree should be empty")
	}

	root := tree.InsertRoot(newGroupData(Horizontal, placeholderGeometry))
	a := tree.InsertUnder(root, newLeafData(&stubElement{id: "a"}))
	b := tree.InsertUnder(root, newLeafData(&stubElement{id: "b"}))

	if tree.Len() != 3 {
		t.Errorf("Len = %d, want 3", tree.Len())
	}
	if got := tree.Children(root); !slices.Equal(got, []NodeID{a, b}) {
		t.Errorf("children = %v, want [%d %d]", got, a, b)
	}
	if p, ok := tree.Parent(a); !ok || p != root {
		t.Errorf("Parent(a) = %d,%v, want %d,true", p, ok, root)
	}
	if _, ok := tree.Parent(root); ok {
		t.Error("root should have no parent")
	}
	if tree.ChildIndex(root, b) != 1 {
		t.Errorf("ChildIndex(b) = %d, want 1", tree.ChildIndex(root, b))
	}
}

func TestWrapReplacesRootPosition(t *testing.T) {
	tree := NewTree()
	leaf := tree.InsertRoot(newLeafData(&stubElement{id: "a"}))

	group := tree.Wrap(leaf, newGroupData(Vertical, placeholderGeometry))

	root, ok := tree.Root()
	if !ok || root != group {
		t.Fatalf("root = %d, want wrapping group %d", root, group)
	}
	if got := tree.Children(group); !slices.Equal(got, []NodeID{leaf}) {
		t.Errorf("group children = %v, want [%d]", got, leaf)
	}
	if p, _ := tree.Parent(leaf); p != group {
		t.Errorf("leaf parent = %d, want %d", p, group)
	}
}

func TestWrapPreservesSiblingSlot(t *testing.T) {
	tree := NewTree()
	root := tree.InsertRoot(newGroupData(Horizontal, placeholderGeometry))
	a := tree.InsertUnder(root, newLeafData(&stubElement{id: "a"}))
	b := tree.InsertUnder(root, newLeafData(&stubElement{id: "b"}))
	c := tree.InsertUnder(root, newLeafData(&stubElement{id: "c"}))

	group := tree.Wrap(b, newGroupData(Vertical, placeholderGeometry))

	if got := tree.Children(root); !slices.Equal(got, []NodeID{a, group, c}) {
		t.Errorf("root children = %v, want [%d %d %d]", got, a, group, c)
	}
	if got := tree.Children(group); !slices.Equal(got, []NodeID{b}) {
		t.Errorf("group children = %v, want [%d]", got, b)
	}
}

func TestMakeNthSibling(t *testing.T) {
	tree := NewTree()
	root := tree.InsertRoot(newGroupData(Horizontal, placeholderGeometry))
	a := tree.InsertUnder(root, newLeafData(&stubElement{id: "a"}))
	b := tree.InsertUnder(root, newLeafData(&stubElement{id: "b"}))
	c := tree.InsertUnder(root, newLeafData(&stubElement{id: "c"}))

	tree.MakeNthSibling(c, 0)

	if got := tree.Children(root); !slices.Equal(got, []NodeID{c, a, b}) {
		t.Errorf("children = %v, want [%d %d %d]", got, c, a, b)
	}
}

func TestRemoveOrphaningKillsGroupMarker(t *testing.T) {
	tree := NewTree()
	root := tree.InsertRoot(newGroupData(Horizontal, placeholderGeometry))
	leaf := tree.InsertUnder(root, newLeafData(&stubElement{id: "a"}))
	marker := tree.Get(root).Alive()

	tree.RemoveOrphaning(root)

	if marker.OK() {
		t.Error("group marker should be dead after removal")
	}
	if tree.Contains(root) {
		t.Error("removed group should be gone from the arena")
	}
	if !tree.Contains(leaf) {
		t.Error("orphaned child should remain in the arena")
	}
	if _, ok := tree.Parent(leaf); ok {
		t.Error("orphaned child should have no parent")
	}
}

func TestRemoveLeafClearsRoot(t *testing.T) {
	tree := NewTree()
	leaf := tree.InsertRoot(newLeafData(&stubElement{id: "a"}))

	tree.RemoveLeaf(leaf)

	if !tree.Empty() {
		t.Error("tree should be empty after removing the root leaf")
	}
}

func TestNodeIDsNotReused(t *testing.T) {
	tree := NewTree()
	first := tree.InsertRoot(newLeafData(&stubElement{id: "a"}))
	tree.RemoveLeaf(first)

	second := tree.InsertRoot(newLeafData(&stubElement{id: "b"}))
	if second == first {
		t.Errorf("identifier %d was reused", first)
	}
	if tree.Contains(first) {
		t.Error("stale identifier should not resolve")
	}
}

func TestPreOrderVisitsDepthFirst(t *testing.T) {
	tree := NewTree()
	root := tree.InsertRoot(newGroupData(Horizontal, placeholderGeometry))
	left := tree.InsertUnder(root, newGroupData(Vertical, placeholderGeometry))
	a := tree.InsertUnder(left, newLeafData(&stubElement{id: "a"}))
	b := tree.InsertUnder(left, newLeafData(&stubElement{id: "b"}))
	c := tree.InsertUnder(root, newLeafData(&stubElement{id: "c"}))

	var got []NodeID
	for id := range tree.PreOrder(root) {
		got = append(got, id)
	}

	want := []NodeID{root, left, a, b, c}
	if !slices.Equal(got, want) {
		t.Errorf("preorder = %v, want %v", got, want)
	}
}

func TestUnknownNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown node")
		}
	}()
	tree := NewTree()
	tree.Get(NodeID(42))
}
