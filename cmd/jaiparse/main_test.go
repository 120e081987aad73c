package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jaiparse/internal/diag"
	"jaiparse/internal/diagfmt"
	"jaiparse/internal/driver"
	"jaiparse/internal/observ"
	"jaiparse/internal/project"
	"jaiparse/internal/version"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit ui modes ignored")
	}
}

func TestRenderVersion(t *testing.T) {
	var buf bytes.Buffer
	renderVersion(&buf, version.Info{Version: "weird", GitCommit: "1234567890abcdef", Modified: true}, true)
	want := "jaiparse weird\ncommit:  1234567890ab (modified)\nmessage: unknown\nbuilt:   unknown\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRenderTreesDirectory(t *testing.T) {
	dir := t.TempDir()
	for name, src := range map[string]string{"a.jai": "a :: 1\n", "b.jai": "b := 2\n"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	fs, results, err := driver.ParseDir(t.Context(), dir, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var files []parsedFile
	for _, r := range results {
		files = append(files, parsedFile{path: r.Path, tree: r.Tree})
	}

	var buf bytes.Buffer
	if err := renderTrees(&buf, files, fs, "sexp", diagfmt.CSTOpts{}, true); err != nil {
		t.Fatal(err)
	}
	want := "== a.jai ==\n(SourceFile (ConstDeclaration name: (Identifier) value: (IntLiteral)))\n\n" +
		"== b.jai ==\n(SourceFile (VarDeclaration name: (Identifier) value: (IntLiteral)))\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := renderTrees(&buf, files, fs, "json", diagfmt.CSTOpts{}, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"path": "b.jai"`) {
		t.Errorf("json lacks paths:\n%s", buf.String())
	}
}

func TestRenderDiagnosticsShort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.jai")
	if err := os.WriteFile(path, []byte("x :: .{1}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := driver.Diagnose(t.Context(), path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s := &settings{quiet: true}
	if err := renderDiagnostics(&buf, res.Bag, res.FileSet, s, diagFlags{format: "short"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "SYN") || !strings.Contains(buf.String(), "bad.jai:1:6") {
		t.Errorf("short output: %q", buf.String())
	}

	buf.Reset()
	empty := diag.NewBag(1)
	if err := renderDiagnostics(&buf, empty, res.FileSet, &settings{}, diagFlags{format: "pretty"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "no diagnostics\n" {
		t.Errorf("empty pretty output: %q", buf.String())
	}
}

func TestLoadSettingsMergesManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := "[parse]\nmax_nesting_depth = 12\nmax_diagnostics = 7\n[cache]\nenabled = false\n"
	if err := os.WriteFile(filepath.Join(dir, "jaiparse.toml"), []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}
	pf := rootCmd.PersistentFlags()
	if err := pf.Set("max-depth", "30"); err != nil {
		t.Fatal(err)
	}
	if err := pf.Set("color", "off"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = pf.Set("max-depth", "0")
		pf.Lookup("max-depth").Changed = false
		_ = pf.Set("color", "auto")
	})

	s, err := loadSettings(diagCmd, dir)
	if err != nil {
		t.Fatal(err)
	}
	if s.opts.MaxDiagnostics != 7 || s.opts.MaxNestingDepth != 30 {
		t.Errorf("opts = %+v", s.opts)
	}
	if s.manifest.CacheEnabled() || s.color {
		t.Errorf("cache %v color %v", s.manifest.CacheEnabled(), s.color)
	}
}

func TestApplyFixesRewritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typo.jai")
	if err := os.WriteFile(path, []byte("#improt \"Basic\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := driver.Diagnose(t.Context(), path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s := &settings{timer: observ.NewTimer()}
	if err := applyFixes(&buf, res.FileSet, res.Bag, s, "all"); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "#import \"Basic\"\n" {
		t.Errorf("file = %q", got)
	}
	if !strings.Contains(buf.String(), "fixed SYN2001") {
		t.Errorf("output = %q", buf.String())
	}

	res, err = driver.Diagnose(t.Context(), path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := applyFixes(&buf, res.FileSet, res.Bag, s, "once"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "no fixes to apply\n" {
		t.Errorf("second run = %q", buf.String())
	}
}

func TestOpenCacheClears(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "diag", "ab", "abcd.mp")
	if err := os.MkdirAll(filepath.Dir(entry), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(entry, []byte{0x80}, 0o600); err != nil {
		t.Fatal(err)
	}
	m := project.DefaultManifest()
	m.Cache.Dir = dir
	s := &settings{manifest: m, quiet: true}

	cache, err := openCache(s, diagFlags{})
	if err != nil || cache == nil {
		t.Fatalf("cache %v err %v", cache, err)
	}
	if _, err := os.Stat(entry); err != nil {
		t.Fatalf("entry removed without --clear-cache: %v", err)
	}

	if _, err := openCache(s, diagFlags{clearCache: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(entry); !os.IsNotExist(err) {
		t.Fatalf("entry still present: %v", err)
	}

	off := false
	m.Cache.Enabled = &off
	if cache, err := openCache(s, diagFlags{}); err != nil || cache != nil {
		t.Fatalf("disabled cache = %v, %v", cache, err)
	}
}
