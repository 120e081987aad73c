package testkit_test

import (
	"strings"
	"testing"

	"jaiparse/internal/cst"
	"jaiparse/internal/parser"
	"jaiparse/internal/source"
	"jaiparse/internal/testkit"
)

func TestExtrasOnlyFiles(t *testing.T) {
	for _, src := range []string{
		"",
		"   ",
		"// c",
		"@note",
		"/* outer /* inner */ still outer */",
		"/* /* */",
	} {
		t.Run(src, func(t *testing.T) {
			tree, _ := parser.Parse([]byte(src), parser.Options{})
			if err := testkit.CheckSpanInvariants(tree, &source.File{Content: []byte(src)}); err != nil {
				t.Fatalf("%q: %v", src, err)
			}
		})
	}
}

func TestEmptyRootLeavesBytesUncovered(t *testing.T) {
	src := []byte("abc")
	tree := cst.NewBuilder(src, 0, 0).Finish()
	err := testkit.CheckSpanInvariants(tree, &source.File{Content: src})
	if err == nil || !strings.Contains(err.Error(), "not covered") {
		t.Fatalf("err = %v, want uncovered bytes", err)
	}
}
