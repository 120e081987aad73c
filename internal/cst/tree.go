package cst

import (
	"sort"

	"jaiparse/internal/source"
)

// Tree is a finished, immutable parse of one buffer. Node ids are only valid
// for the tree that produced them.
type Tree struct {
	Source []byte
	File   source.FileID
	Root   NodeID
	// Extras holds Comment and Note nodes in source order.
	Extras []NodeID

	nodes    *Arena[Node]
	attached map[NodeID][]NodeID
}

// Node returns a copy of the node header. The Children slice is shared with
// the tree and must not be modified.
func (t *Tree) Node(id NodeID) (Node, bool) {
	n := t.nodes.Get(uint32(id))
	if n == nil {
		return Node{}, false
	}
	return *n, true
}

func (t *Tree) node(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

// Kind is KindInvalid for NoNodeID.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

func (t *Tree) Span(id NodeID) source.Span {
	if n := t.node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.node(id); n != nil {
		return n.Children
	}
	return nil
}

// Text returns the source bytes covered by the node.
func (t *Tree) Text(id NodeID) string {
	n := t.node(id)
	if n == nil || int(n.Span.End) > len(t.Source) {
		return ""
	}
	return string(t.Source[n.Span.Start:n.Span.End])
}

// ChildByField returns the first child carrying field f.
func (t *Tree) ChildByField(id NodeID, f Field) NodeID {
	for _, c := range t.Children(id) {
		if t.node(c).Field == f {
			return c
		}
	}
	return NoNodeID
}

// ChildrenByField returns every child carrying field f, in order.
func (t *Tree) ChildrenByField(id NodeID, f Field) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.node(c).Field == f {
			out = append(out, c)
		}
	}
	return out
}

// NamedChildren skips Token leaves.
func (t *Tree) NamedChildren(id NodeID) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.node(c).Kind.Named() {
			out = append(out, c)
		}
	}
	return out
}

// Len is the number of nodes, extras included.
func (t *Tree) Len() int {
	return t.nodes.Len()
}

// Walk visits id and its descendants in preorder. Returning false from fn
// skips the children of that node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	n := t.node(id)
	if n == nil || !fn(id, depth) {
		return
	}
	for _, c := range n.Children {
		t.walk(c, depth+1, fn)
	}
}

// Find returns every node of kind k under the root, in preorder.
func (t *Tree) Find(k Kind) []NodeID {
	var out []NodeID
	t.Walk(t.Root, func(id NodeID, _ int) bool {
		if t.node(id).Kind == k {
			out = append(out, id)
		}
		return true
	})
	return out
}

// HasErrors reports whether any Error node exists.
func (t *Tree) HasErrors() bool {
	return len(t.Find(Error)) > 0
}

// NodeAt returns the smallest node (extras excluded) whose span contains off.
func (t *Tree) NodeAt(off uint32) NodeID {
	cur := t.Root
	for {
		children := t.Children(cur)
		i := sort.Search(len(children), func(i int) bool {
			return t.node(children[i]).Span.End > off
		})
		if i == len(children) {
			return cur
		}
		sp := t.node(children[i]).Span
		if sp.Start > off {
			return cur
		}
		cur = children[i]
	}
}
