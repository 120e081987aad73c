package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"jaiparse/internal/diag"
	"jaiparse/internal/source"
)

func loadTemp(t *testing.T, content string) (*source.FileSet, source.FileID, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.jai")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return fs, id, path
}

func replace(id source.FileID, start, end uint32, text string) diag.Diagnostic {
	sp := source.Span{File: id, Start: start, End: end}
	return diag.NewError(diag.SynUnexpectedToken, sp, "unexpected directive").
		WithFix("replace with "+text, diag.FixEdit{Span: sp, NewText: text})
}

func TestApplyModes(t *testing.T) {
	const src = "#improt \"a\"\n#improt \"b\"\n"
	tests := []struct {
		name    string
		mode    ApplyMode
		want    string
		applied int
	}{
		{"once", ApplyModeOnce, "#import \"a\"\n#improt \"b\"\n", 1},
		{"all", ApplyModeAll, "#import \"a\"\n#import \"b\"\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, id, path := loadTemp(t, src)
			// reversed order; fixes are applied by position
			diags := []diag.Diagnostic{replace(id, 12, 19, "#import"), replace(id, 0, 7, "#import")}
			res, err := Apply(fs, diags, ApplyOptions{Mode: tt.mode})
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if len(res.Applied) != tt.applied {
				t.Fatalf("applied %d, want %d", len(res.Applied), tt.applied)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			if len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != tt.applied {
				t.Fatalf("file changes = %+v", res.FileChanges)
			}
		})
	}
}

func TestApplySkipsConflicts(t *testing.T) {
	fs, id, _ := loadTemp(t, "#improt \"a\"\n")
	diags := []diag.Diagnostic{replace(id, 0, 7, "#import"), replace(id, 1, 4, "xyz")}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || len(res.Skipped) != 1 {
		t.Fatalf("applied %d skipped %d, want 1 and 1", len(res.Applied), len(res.Skipped))
	}
	if got := string(res.FileChanges[0].Content); got != "#import \"a\"\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyDryRunLeavesFile(t *testing.T) {
	const src = "#improt \"a\"\n"
	fs, id, path := loadTemp(t, src)
	if _, err := Apply(fs, []diag.Diagnostic{replace(id, 0, 7, "#import")}, ApplyOptions{DryRun: true}); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != src {
		t.Fatalf("dry run wrote %q", got)
	}
}

func TestApplyKeepsBOM(t *testing.T) {
	fs, id, path := loadTemp(t, "\xEF\xBB\xBF#improt \"a\"\n")
	if _, err := Apply(fs, []diag.Diagnostic{replace(id, 0, 7, "#import")}, ApplyOptions{}); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "\xEF\xBB\xBF#import \"a\"\n" {
		t.Fatalf("got %q", got)
	}
}

func TestApplyNothing(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.jai", []byte("#improt \"a\"\n"))
	res, err := Apply(fs, []diag.Diagnostic{replace(id, 0, 7, "#import")}, ApplyOptions{})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if _, err := Apply(fs, nil, ApplyOptions{}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("empty: err = %v", err)
	}
}

func TestSpansConflict(t *testing.T) {
	sp := func(a, b uint32) source.Span { return source.Span{Start: a, End: b} }
	tests := []struct {
		a, b source.Span
		want bool
	}{
		{sp(0, 3), sp(3, 5), false},
		{sp(0, 3), sp(2, 5), true},
		{sp(2, 2), sp(2, 2), false},
		{sp(2, 2), sp(0, 5), true},
		{sp(0, 2), sp(2, 2), false},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("spansConflict(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
