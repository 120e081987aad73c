package parser_test

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/parser"
	"jaiparse/internal/source"
	"jaiparse/internal/testkit"
)

func parse(t *testing.T, src string) (*cst.Tree, []diag.Diagnostic) {
	t.Helper()
	tree, diags := parser.Parse([]byte(src), parser.Options{})
	if err := testkit.CheckSpanInvariants(tree, &source.File{Content: []byte(src)}); err != nil {
		t.Fatalf("span invariants for %q:\n%v", src, err)
	}
	return tree, diags
}

// parseClean parses src and fails on any diagnostic.
func parseClean(t *testing.T, src string) *cst.Tree {
	t.Helper()
	tree, diags := parse(t, src)
	for _, d := range diags {
		t.Errorf("%q: unexpected %s: %s", src, d.Code.ID(), d.Message)
	}
	return tree
}

func wantSExpr(t *testing.T, tree *cst.Tree, want string) {
	t.Helper()
	got := tree.String()
	if got == want {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	t.Fatalf("tree mismatch\nwant: %s\n got: %s\ndiff: %s", want, got, dmp.DiffPrettyText(diffs))
}

func codes(diags []diag.Diagnostic) string {
	ids := make([]string, 0, len(diags))
	for _, d := range diags {
		ids = append(ids, d.Code.ID())
	}
	return strings.Join(ids, ",")
}

func hasNote(d diag.Diagnostic, text string) bool {
	for _, n := range d.Notes {
		if strings.Contains(n.Msg, text) {
			return true
		}
	}
	return false
}
