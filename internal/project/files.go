package project

import (
	"path"
	"path/filepath"
	"strings"

	"jaiparse/internal/source"
)

// ImportRef is one `#import, file "x"` found in a file.
type ImportRef struct {
	Path string // normalized, relative to the graph root
	Raw  string // as written
	Span source.Span
}

// FileMeta describes a parsed file as a node of the import graph.
type FileMeta struct {
	Path    string // normalized, relative to the graph root
	Span    source.Span
	Imports []ImportRef
	Hash    Digest
	Broken  bool // the file has error diagnostics
}

// NormalizePath turns an OS path into the slash-separated form used as a
// graph key.
func NormalizePath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// ResolveImport resolves raw, as written in importer, to a graph key.
// Relative imports are taken against the importer's directory; a leading
// slash anchors the path at the graph root.
func ResolveImport(importer, raw string) string {
	raw = filepath.ToSlash(raw)
	if strings.HasPrefix(raw, "/") {
		return path.Clean(strings.TrimLeft(raw, "/"))
	}
	return path.Join(path.Dir(NormalizePath(importer)), raw)
}
