package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"jaiparse/internal/diag"
	"jaiparse/internal/source"
)

func fixture() (*source.FileSet, source.FileID) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.jai", []byte("x :: .{1}\ny :: 2\n"))
	return fs, id
}

func TestPrettyPrimary(t *testing.T) {
	fs, id := fixture()
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 5, End: 7}, "boom"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	want := "a.jai:1:6: ERROR SYN2001: boom\n" +
		"1 | x :: .{1}\n" +
		"  |      ^~\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, id := fixture()
	sp := source.Span{File: id, Start: 5, End: 7}
	d := diag.NewError(diag.SynUnexpectedToken, sp, "boom").
		WithNote(source.Span{File: id, Start: 10, End: 11}, "second").
		WithFix("replace with .[", diag.FixEdit{Span: sp, NewText: ".["})
	bag := diag.NewBag(10)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true, ShowPreview: true})
	for _, want := range []string{
		"note: a.jai:2:1: second\n",
		"fix #1: replace with .[\n",
		"  edit a.jai:1:6 apply=\".[\"\n",
		"  - x :: .{1}\n",
		"  + x :: .[1}\n",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in:\n%s", want, buf.String())
		}
	}
}

func TestPrettyContextAndDropped(t *testing.T) {
	fs, id := fixture()
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.SynUnexpectedToken, source.Span{File: id, Start: 15, End: 16}, "w"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id}, "dropped"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	out := buf.String()
	if !strings.HasPrefix(out, "a.jai:2:6: WARNING SYN2001: w\n1 | x :: .{1}\n2 | y :: 2\n") {
		t.Fatalf("unexpected context:\n%s", out)
	}
	if !strings.HasSuffix(out, "... 1 more diagnostics not shown\n") {
		t.Fatalf("missing dropped line:\n%s", out)
	}
}

func TestUnderlineWidth(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "^"},
		{"x", "^"},
		{"abc", "^~~"},
		{"日本", "^~~~"},
	}
	for _, tc := range cases {
		if got := underline(tc.in); got != tc.want {
			t.Errorf("underline(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := padTo("\tab"); got != "\t  " {
		t.Errorf("padTo kept %q", got)
	}
}

func TestEditPreviewOutOfRange(t *testing.T) {
	fs, id := fixture()
	if _, err := buildEditPreview(fs, diag.FixEdit{Span: source.Span{File: id, Start: 3, End: 400}}); err == nil {
		t.Fatal("expected an error for a span past the file end")
	}
	if _, err := buildEditPreview(fs, diag.FixEdit{Span: source.Span{File: 9}}); err == nil {
		t.Fatal("expected an error for an unknown file")
	}
}
