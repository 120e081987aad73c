package fuzz

import (
	"context"
	"testing"
	"time"

	"jaiparse/internal/parser"
	"jaiparse/internal/source"
	"jaiparse/internal/testkit"
)

// parseTimeout bounds a single parse; a parse that runs longer is a hang.
const parseTimeout = 5 * time.Second

func FuzzParse(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.jai", input))

		tree, diags := parser.ParseFile(context.Background(), file, parser.Options{MaxDiagnostics: 32})
		if err := testkit.CheckSpanInvariants(tree, file); err != nil {
			t.Fatalf("input %q:\n%v", truncateForLog(input, 200), err)
		}
		if len(diags) > 32 {
			t.Fatalf("%d diagnostics past the cap of 32", len(diags))
		}
	})
}

func FuzzParseNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)
		done := make(chan struct{})
		go func() {
			defer close(done)
			parser.Parse(input, parser.Options{MaxNestingDepth: 8})
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parse took longer than %v on %d bytes: %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, limit int) []byte {
	if len(input) <= limit {
		return input
	}
	return append(clamp(input, limit), "..."...)
}
