package driver

import (
	"os"
	"path/filepath"
	"slices"

	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/project"
	"jaiparse/internal/project/dag"
)

// collectImports lists the `file` imports of tree, resolved against rel.
// Module and directory imports name things outside the run and are skipped.
func collectImports(tree *cst.Tree, rel string) []project.ImportRef {
	var out []project.ImportRef
	for _, id := range tree.Statements() {
		imp, ok := tree.ImportDecl(id)
		if !ok || imp.Modifier() != "file" || imp.Path() == cst.NoNodeID {
			continue
		}
		raw := imp.PathValue()
		out = append(out, project.ImportRef{
			Path: project.ResolveImport(rel, raw),
			Raw:  raw,
			Span: tree.Span(imp.Path()),
		})
	}
	return out
}

// GraphFile is one file offered to BuildImportGraph.
type GraphFile struct {
	Path    string
	Imports []project.ImportRef
	Bag     *diag.Bag // receives PRJ diagnostics for imports written in this file
}

type ImportGraph struct {
	Order   []string   // importers before the files they import
	Batches [][]string // files in one batch do not import each other
	Cycles  []string   // files on or between import cycles
}

// BuildImportGraph links the files of a directory run. Imports of files that
// exist under dir but were not part of the run are ignored; imports of files
// that do not exist are PRJ5002.
func BuildImportGraph(dir string, files []GraphFile) *ImportGraph {
	inRun := make(map[string]struct{}, len(files))
	for _, f := range files {
		inRun[f.Path] = struct{}{}
	}

	metas := make([]project.FileMeta, 0, len(files))
	nodes := make([]dag.Node, 0, len(files))
	for _, f := range files {
		meta := project.FileMeta{Path: f.Path}
		for _, imp := range f.Imports {
			if _, ok := inRun[imp.Path]; !ok && exists(dir, imp.Path) {
				continue
			}
			meta.Imports = append(meta.Imports, imp)
		}
		var first *diag.Diagnostic
		if f.Bag != nil {
			items := f.Bag.Items()
			if i := slices.IndexFunc(items, func(d diag.Diagnostic) bool { return d.Severity >= diag.SevError }); i >= 0 {
				meta.Broken = true
				first = &items[i]
			}
		}
		if len(meta.Imports) > 0 {
			meta.Span = meta.Imports[0].Span
		}
		metas = append(metas, meta)
		node := dag.Node{Meta: meta, FirstErr: first}
		if f.Bag != nil {
			node.Reporter = diag.BagReporter{Bag: f.Bag}
		}
		nodes = append(nodes, node)
	}

	idx := dag.BuildIndex(metas)
	graph, slots := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(graph)
	dag.ReportCycles(idx, slots, topo)
	dag.ReportBrokenImports(idx, slots)

	out := &ImportGraph{Order: pathsOf(idx, topo.Order), Cycles: pathsOf(idx, topo.Cycles)}
	for _, batch := range topo.Batches {
		out.Batches = append(out.Batches, pathsOf(idx, batch))
	}
	for _, f := range files {
		if f.Bag != nil {
			f.Bag.Sort()
		}
	}
	return out
}

func exists(dir, rel string) bool {
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	return err == nil
}

func pathsOf(idx dag.Index, ids []dag.NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToPath[id]
	}
	return out
}
