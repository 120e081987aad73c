package dag

import "slices"

type Topo struct {
	Order   []NodeID   // imported files come after their importers
	Batches [][]NodeID // waves of files with no remaining importers
	Cyclic  bool
	Cycles  []NodeID // files left with importers after the sort
}

// ToposortKahn orders the present files. Each batch is sorted, so the result
// depends only on the graph.
func ToposortKahn(g Graph) *Topo {
	n := len(g.Edges)
	indeg := slices.Clone(g.Indeg)
	topo := &Topo{Order: make([]NodeID, 0, n)}

	active := 0
	var current []NodeID
	for i := range n {
		if !g.Present[i] {
			continue
		}
		active++
		if indeg[i] == 0 {
			current = append(current, NodeID(i)) // #nosec G115 -- i < len(index)
		}
	}

	for len(current) > 0 {
		topo.Batches = append(topo.Batches, current)
		var next []NodeID
		for _, id := range current {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[id] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != active {
		topo.Cyclic = true
		topo.Cycles = cyclicCore(g, indeg)
	}
	return topo
}

// cyclicCore takes the files Kahn could not order and drops, repeatedly,
// those that import nothing else in the remainder. What is left lies on a
// cycle or between two cycles.
func cyclicCore(g Graph, indeg []int) []NodeID {
	n := len(g.Edges)
	left := make([]bool, n)
	for i := range n {
		left[i] = g.Present[i] && indeg[i] > 0
	}
	for changed := true; changed; {
		changed = false
		for i := range n {
			if !left[i] {
				continue
			}
			if !slices.ContainsFunc(g.Edges[i], func(to NodeID) bool { return left[to] }) {
				left[i] = false
				changed = true
			}
		}
	}
	var out []NodeID
	for i := range n {
		if left[i] {
			out = append(out, NodeID(i)) // #nosec G115 -- i < len(index)
		}
	}
	return out
}
