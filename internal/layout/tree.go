package layout

import (
	"fmt"
	"iter"
)

// NodeID is a stable handle into a partition tree's node arena. The zero
// value never names a node. Identifiers are not reused for the lifetime of a
// tree, so a stale handle can be detected instead of silently aliasing a new
// node.
type NodeID uint64

type treeNode struct {
	parent   NodeID
	children []NodeID
	data     *Data
}

// Tree is the per-output partition tree: an ordered, rooted arena of nodes
// addressed by NodeID. The registry is the sole owner and mutator; lookup
// failures on engine-constructed identifiers are invariant violations and
// panic rather than surface as errors.
type Tree struct {
	nodes  map[NodeID]*treeNode
	root   NodeID
	nextID NodeID
}

// NewTree returns an empty partition tree.
func NewTree() *Tree {
	return &Tree{nodes: make(map[NodeID]*treeNode)}
}

// Empty reports whether the tree has no nodes.
func (t *Tree) Empty() bool {
	return t.root == 0
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the root node identifier, or false if the tree is empty.
func (t *Tree) Root() (NodeID, bool) {
	return t.root, t.root != 0
}

// Contains reports whether id names a node in this tree.
func (t *Tree) Contains(id NodeID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Get returns the data stored at id.
func (t *Tree) Get(id NodeID) *Data {
	return t.node(id).data
}

// Parent returns the parent of id, or false for the root.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.node(id).parent
	return p, p != 0
}

// Children returns the ordered child identifiers of id. The returned slice
// is owned by the tree and must not be mutated.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.node(id).children
}

// ChildIndex returns the sibling position of child under parent.
func (t *Tree) ChildIndex(parent, child NodeID) int {
	for i, c := range t.node(parent).children {
		if c == child {
			return i
		}
	}
	panic(fmt.Sprintf("layout: node %d is not a child of %d", child, parent))
}

// InsertRoot places data as the root of an empty tree.
func (t *Tree) InsertRoot(data *Data) NodeID {
	if t.root != 0 {
		panic("layout: tree already has a root")
	}
	id := t.alloc(data)
	t.root = id
	return id
}

// InsertUnder appends data as the last child of parent.
func (t *Tree) InsertUnder(parent NodeID, data *Data) NodeID {
	p := t.node(parent)
	id := t.alloc(data)
	t.nodes[id].parent = parent
	p.children = append(p.children, id)
	return id
}

// MoveToParent detaches id from its current position and appends it as the
// last child of newParent.
func (t *Tree) MoveToParent(id, newParent NodeID) {
	t.detach(id)
	t.nodes[id].parent = newParent
	p := t.node(newParent)
	p.children = append(p.children, id)
}

// MoveToRoot detaches id and promotes it to be the tree root.
func (t *Tree) MoveToRoot(id NodeID) {
	t.detach(id)
	t.nodes[id].parent = 0
	t.root = id
}

// MakeNthSibling repositions id at index idx among its siblings, preserving
// the relative order of the others.
func (t *Tree) MakeNthSibling(id NodeID, idx int) {
	n := t.node(id)
	if n.parent == 0 {
		return
	}
	siblings := t.node(n.parent).children
	cur := -1
	for i, c := range siblings {
		if c == id {
			cur = i
			break
		}
	}
	if cur < 0 {
		panic(fmt.Sprintf("layout: node %d missing from its parent's children", id))
	}
	if idx < 0 || idx >= len(siblings) || idx == cur {
		return
	}
	siblings = append(siblings[:cur], siblings[cur+1:]...)
	siblings = append(siblings[:idx], append([]NodeID{id}, siblings[idx:]...)...)
	t.node(n.parent).children = siblings
}

// Wrap inserts data at the exact tree position of id (same parent, same
// sibling index, or the root) and reparents id as its first child. Sibling
// ordering elsewhere is unaffected.
func (t *Tree) Wrap(id NodeID, data *Data) NodeID {
	n := t.node(id)
	parent := n.parent
	wrapID := t.alloc(data)
	w := t.nodes[wrapID]
	if parent == 0 {
		t.root = wrapID
	} else {
		siblings := t.node(parent).children
		for i, c := range siblings {
			if c == id {
				siblings[i] = wrapID
				break
			}
		}
		w.parent = parent
	}
	n.parent = wrapID
	w.children = append(w.children, id)
	return wrapID
}

// RemoveLeaf deletes a node that has no children.
func (t *Tree) RemoveLeaf(id NodeID) {
	n := t.node(id)
	if len(n.children) != 0 {
		panic(fmt.Sprintf("layout: RemoveLeaf on node %d with %d children", id, len(n.children)))
	}
	t.detach(id)
	n.data.kill()
	delete(t.nodes, id)
	if t.root == id {
		t.root = 0
	}
}

// RemoveOrphaning deletes a node, leaving its children in the arena with no
// parent. Callers reattach the orphans before the operation completes.
func (t *Tree) RemoveOrphaning(id NodeID) {
	n := t.node(id)
	for _, c := range n.children {
		t.nodes[c].parent = 0
	}
	t.detach(id)
	n.data.kill()
	delete(t.nodes, id)
	if t.root == id {
		t.root = 0
	}
}

// PreOrder yields the identifiers of the subtree rooted at start in
// depth-first pre-order, children in sibling order. The sequence is
// restartable and must not observe structural mutation mid-iteration.
func (t *Tree) PreOrder(start NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		stack := []NodeID{start}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(id) {
				return
			}
			children := t.node(id).children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

func (t *Tree) node(id NodeID) *treeNode {
	n, ok := t.nodes[id]
	if !ok {
		panic(fmt.Sprintf("layout: unknown node %d", id))
	}
	return n
}

func (t *Tree) alloc(data *Data) NodeID {
	t.nextID++
	id := t.nextID
	t.nodes[id] = &treeNode{data: data}
	return id
}

func (t *Tree) detach(id NodeID) {
	n := t.node(id)
	if n.parent == 0 {
		return
	}
	siblings := t.node(n.parent).children
	for i, c := range siblings {
		if c == id {
			t.node(n.parent).children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = 0
}
