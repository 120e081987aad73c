package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"jaiparse/internal/diag"
	"jaiparse/internal/source"
)

const ManifestName = "jaiparse.toml"

type Manifest struct {
	Parse ParseSection `toml:"parse"`
	Files FilesSection `toml:"files"`
	Cache CacheSection `toml:"cache"`

	Path string `toml:"-"` // where it was loaded from; empty for defaults
}

type ParseSection struct {
	MaxNestingDepth int `toml:"max_nesting_depth"`
	MaxDiagnostics  int `toml:"max_diagnostics"`
}

type FilesSection struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
}

type CacheSection struct {
	Enabled *bool  `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// DefaultManifest is used when no jaiparse.toml is found. Zero parse limits
// mean the library defaults.
func DefaultManifest() *Manifest {
	return &Manifest{Files: FilesSection{Extensions: []string{".jai"}}}
}

// knownKeys lists every dotted key the manifest accepts.
var knownKeys = []string{
	"parse", "parse.max_nesting_depth", "parse.max_diagnostics",
	"files", "files.extensions", "files.exclude",
	"cache", "cache.enabled", "cache.dir",
}

// FindManifest walks up from startDir looking for jaiparse.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadManifest decodes the manifest at path. The file is added to fs so
// that unknown keys can be reported through rep with a source location.
// Syntax errors are returned as errors.
func LoadManifest(fs *source.FileSet, path string, rep diag.Reporter) (*Manifest, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	file := fs.Get(id)

	m := DefaultManifest()
	md, err := toml.Decode(string(file.Content), m)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	m.Path = path
	for _, key := range md.Undecoded() {
		reportUnknownKey(rep, file, key)
	}
	for _, ext := range m.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			diag.ReportError(rep, diag.ProjInvalidManifest, keySpan(file, "extensions"),
				fmt.Sprintf("file extension %q must start with '.'", ext)).Emit()
		}
	}
	if m.Parse.MaxNestingDepth < 0 || m.Parse.MaxDiagnostics < 0 {
		diag.ReportError(rep, diag.ProjInvalidManifest, keySpan(file, "parse"),
			"parse limits must not be negative").Emit()
	}
	return m, nil
}

func reportUnknownKey(rep diag.Reporter, file *source.File, key toml.Key) {
	name := key.String()
	sp := keySpan(file, key[len(key)-1])
	b := diag.ReportWarning(rep, diag.ProjUnknownConfigKey, sp, fmt.Sprintf("unknown manifest key %q", name))
	if hint := diag.DidYouMean(name, knownKeys); hint != "" {
		b = b.WithNote(sp, hint)
	}
	b.Emit()
}

// keySpan finds the first line that defines name, as a key or a table
// header. It falls back to the start of the file.
func keySpan(file *source.File, name string) source.Span {
	content := file.Content
	var off int
	for line := range bytes.Lines(content) {
		trimmed := bytes.TrimLeft(line, " \t[")
		if bytes.HasPrefix(trimmed, []byte(name)) {
			rest := bytes.TrimLeft(trimmed[len(name):], " \t")
			if len(rest) > 0 && (rest[0] == '=' || rest[0] == ']') {
				start := off + len(line) - len(trimmed)
				return spanOf(file.ID, start, start+len(name))
			}
		}
		off += len(line)
	}
	return source.Span{File: file.ID}
}

func spanOf(id source.FileID, start, end int) source.Span {
	s, errS := safecast.Conv[uint32](start)
	e, errE := safecast.Conv[uint32](end)
	if errS != nil || errE != nil {
		return source.Span{File: id}
	}
	return source.Span{File: id, Start: s, End: e}
}

// Includes reports whether rel, a slash-separated path relative to the
// scanned directory, is selected by the [files] section.
func (m *Manifest) Includes(rel string) bool {
	rel = NormalizePath(rel)
	for _, ex := range m.Files.Exclude {
		ex = strings.TrimSuffix(NormalizePath(ex), "/")
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return false
		}
		if ok, _ := filepath.Match(ex, rel); ok {
			return false
		}
	}
	exts := m.Files.Extensions
	if len(exts) == 0 {
		exts = DefaultManifest().Files.Extensions
	}
	return slices.Contains(exts, filepath.Ext(rel))
}

// CacheEnabled defaults to true when the manifest does not say.
func (m *Manifest) CacheEnabled() bool {
	return m.Cache.Enabled == nil || *m.Cache.Enabled
}
