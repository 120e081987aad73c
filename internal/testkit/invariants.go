package testkit

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/hashicorp/go-multierror"

	"jaiparse/internal/cst"
	"jaiparse/internal/source"
)

// CheckSpanInvariants checks the structural span invariants of a parsed file:
// 1) the root spans the whole content
// 2) every node lies inside the file and carries its id
// 3) a parent's span is exactly the cover of its children
// 4) siblings are ordered and do not overlap
// 5) every byte that is not whitespace belongs to exactly one leaf or extra
//
// All violations are returned together.
func CheckSpanInvariants(tree *cst.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var result *multierror.Error
	root := tree.Span(tree.Root)
	if root.Start != 0 || root.End != size {
		result = multierror.Append(result, fmt.Errorf("root span %v does not cover [0,%d)", root, size))
	}

	owner := make([]cst.NodeID, size)
	claim := func(id cst.NodeID, sp source.Span) {
		for off := sp.Start; off < sp.End && off < size; off++ {
			if prev := owner[off]; prev.IsValid() {
				result = multierror.Append(result, fmt.Errorf("byte %d claimed by %v and %v",
					off, tree.Kind(prev), tree.Kind(id)))
				continue
			}
			owner[off] = id
		}
	}

	tree.Walk(tree.Root, func(id cst.NodeID, _ int) bool {
		sp := tree.Span(id)
		if sp.File != sf.ID {
			result = multierror.Append(result, fmt.Errorf("%v span file %d, want %d", tree.Kind(id), sp.File, sf.ID))
		}
		if sp.Start > sp.End || sp.End > size {
			result = multierror.Append(result, fmt.Errorf("%v span %v out of bounds", tree.Kind(id), sp))
			return false
		}
		children := tree.Children(id)
		if len(children) == 0 {
			// an empty root leaves its bytes to the extras
			if id != tree.Root {
				claim(id, sp)
			}
			return true
		}
		cover := tree.Span(children[0])
		for i, c := range children {
			csp := tree.Span(c)
			cover = cover.Cover(csp)
			if i > 0 && tree.Span(children[i-1]).End > csp.Start {
				result = multierror.Append(result, fmt.Errorf("%v children overlap at %v", tree.Kind(id), csp))
			}
		}
		if id != tree.Root && cover != sp {
			result = multierror.Append(result, fmt.Errorf("%v span %v, children cover %v", tree.Kind(id), sp, cover))
		}
		return true
	})
	for _, ex := range tree.Extras {
		claim(ex, tree.Span(ex))
	}

	for off := 0; off < len(sf.Content); {
		r, w := utf8.DecodeRune(sf.Content[off:])
		if !owner[off].IsValid() && !unicode.IsSpace(r) {
			result = multierror.Append(result, fmt.Errorf("byte %d (%q) is not covered", off, r))
		}
		off += w
	}
	return result.ErrorOrNil()
}
