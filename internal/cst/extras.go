package cst

import "sort"

// AttachExtras assigns every comment and note to the smallest node whose
// span contains it. Extras between two siblings go to their parent. Finish
// already calls it; later calls are no-ops.
func (t *Tree) AttachExtras() {
	if t.attached != nil || len(t.Extras) == 0 {
		return
	}
	t.attached = make(map[NodeID][]NodeID)
	for _, ex := range t.Extras {
		owner := t.containing(t.node(ex).Span.Start, t.node(ex).Span.End)
		t.node(ex).Parent = owner
		t.attached[owner] = append(t.attached[owner], ex)
	}
}

func (t *Tree) containing(start, end uint32) NodeID {
	cur := t.Root
	for {
		children := t.node(cur).Children
		i := sort.Search(len(children), func(i int) bool {
			return t.node(children[i]).Span.End >= end
		})
		if i == len(children) {
			return cur
		}
		sp := t.node(children[i]).Span
		if sp.Start > start || sp.Empty() {
			return cur
		}
		cur = children[i]
	}
}

// ExtrasOf returns the comments and notes attached to id, in source order.
func (t *Tree) ExtrasOf(id NodeID) []NodeID {
	return t.attached[id]
}

// AttachedExtras reports how many extras are attached anywhere; it equals
// len(Extras) for every finished tree.
func (t *Tree) AttachedExtras() int {
	n := 0
	for _, v := range t.attached {
		n += len(v)
	}
	return n
}
