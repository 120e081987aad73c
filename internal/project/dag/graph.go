package dag

import (
	"fmt"
	"slices"
	"strings"

	"jaiparse/internal/diag"
	"jaiparse/internal/project"
)

type Graph struct {
	Edges   [][]NodeID // Edges[from] = imported files
	Indeg   []int      // counts only edges between present files
	Present []bool     // the path was parsed, not only imported
}

// Node is a parsed file and the reporter its import problems go to.
type Node struct {
	Meta     project.FileMeta
	Reporter diag.Reporter
	FirstErr *diag.Diagnostic
}

type Slot struct {
	Meta     project.FileMeta
	Reporter diag.Reporter
	Present  bool
	FirstErr *diag.Diagnostic
}

// BuildGraph adds an edge for every import. Imports of files that were not
// parsed are reported as missing; self imports are reported and dropped.
func BuildGraph(idx Index, nodes []Node) (Graph, []Slot) {
	n := len(idx.IDToPath)
	g := Graph{
		Edges:   make([][]NodeID, n),
		Indeg:   make([]int, n),
		Present: make([]bool, n),
	}
	slots := make([]Slot, n)
	for i, p := range idx.IDToPath {
		slots[i].Meta.Path = p
	}
	for _, node := range nodes {
		id, ok := idx.PathToID[node.Meta.Path]
		if !ok {
			continue
		}
		slots[id] = Slot{Meta: node.Meta, Reporter: node.Reporter, Present: true, FirstErr: node.FirstErr}
		g.Present[id] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present {
			continue
		}
		seen := make(map[NodeID]struct{}, len(slot.Meta.Imports))
		for _, imp := range slot.Meta.Imports {
			to, ok := idx.PathToID[imp.Path]
			if !ok {
				continue
			}
			if int(to) == from {
				report(slot.Reporter, diag.ProjSelfImport, imp,
					fmt.Sprintf("%q imports itself", slot.Meta.Path), nil)
				continue
			}
			if !g.Present[to] {
				report(slot.Reporter, diag.ProjMissingImport, imp,
					fmt.Sprintf("imported file %q not found", imp.Raw), nil)
				continue
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			g.Edges[from] = append(g.Edges[from], to)
			g.Indeg[to]++
		}
		slices.Sort(g.Edges[from])
	}
	return g, slots
}

func report(r diag.Reporter, code diag.Code, imp project.ImportRef, msg string, notes []diag.Note) {
	if r == nil {
		return
	}
	r.Report(code, diag.SevError, imp.Span, msg, notes, nil)
}

// ReportCycles reports PRJ5004 on every import that stays inside the
// cyclic remainder of topo.
func ReportCycles(idx Index, slots []Slot, topo *Topo) {
	if !topo.Cyclic {
		return
	}
	inCycle := make(map[string]struct{}, len(topo.Cycles))
	names := make([]string, 0, len(topo.Cycles))
	for _, id := range topo.Cycles {
		inCycle[idx.IDToPath[id]] = struct{}{}
		names = append(names, idx.IDToPath[id])
	}
	summary := strings.Join(names, ", ")

	for _, id := range topo.Cycles {
		slot := slots[id]
		for _, imp := range slot.Meta.Imports {
			if _, ok := inCycle[imp.Path]; !ok || imp.Path == slot.Meta.Path {
				continue
			}
			report(slot.Reporter, diag.ProjImportCycle, imp,
				fmt.Sprintf("import of %q is part of a cycle", imp.Raw),
				[]diag.Note{{Span: slot.Meta.Span, Msg: "files in the cycle: " + summary}})
		}
	}
}

// ReportBrokenImports reports PRJ5007 on imports of files that have errors.
func ReportBrokenImports(idx Index, slots []Slot) {
	for i := range slots {
		from := &slots[i]
		if !from.Present {
			continue
		}
		for _, imp := range from.Meta.Imports {
			to, ok := idx.PathToID[imp.Path]
			if !ok || int(to) == i || !slots[to].Present || !slots[to].Meta.Broken {
				continue
			}
			var notes []diag.Note
			if fe := slots[to].FirstErr; fe != nil {
				notes = append(notes, diag.Note{Span: fe.Primary, Msg: "first error: " + fe.Message})
			}
			if from.Reporter != nil {
				from.Reporter.Report(diag.ProjDependencyFailed, diag.SevWarning, imp.Span,
					fmt.Sprintf("imported file %q has errors", imp.Raw), notes, nil)
			}
		}
	}
}
