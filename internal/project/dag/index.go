package dag

import (
	"slices"

	"jaiparse/internal/project"
)

type NodeID uint32

// Index numbers every path that appears in the graph, either as a parsed
// file or only as an import target, in sorted order.
type Index struct {
	PathToID map[string]NodeID
	IDToPath []string
}

func BuildIndex(files []project.FileMeta) Index {
	uniq := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f.Path != "" {
			uniq[f.Path] = struct{}{}
		}
		for _, imp := range f.Imports {
			if imp.Path != "" {
				uniq[imp.Path] = struct{}{}
			}
		}
	}
	paths := make([]string, 0, len(uniq))
	for p := range uniq {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	pathToID := make(map[string]NodeID, len(paths))
	for i, p := range paths {
		pathToID[p] = NodeID(i) // #nosec G115 -- bounded by the file count
	}
	return Index{PathToID: pathToID, IDToPath: paths}
}
