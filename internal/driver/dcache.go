package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"jaiparse/internal/diag"
	"jaiparse/internal/project"
	"jaiparse/internal/source"
)

// Bump when DiskPayload changes shape or the parser changes its output.
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps the diagnostics of files already checked, keyed by content
// hash and parse options. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what is stored per file. Spans are file-relative offsets;
// the file id is restored on load.
type DiskPayload struct {
	Schema      uint16
	Nodes       int
	Diagnostics []cachedDiagnostic
	Imports     []cachedImport
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
}

type cachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type cachedImport struct {
	Raw   string
	Start uint32
	End   uint32
}

// OpenDiskCache opens (creating if needed) the cache directory. An empty
// dir means $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("locate cache directory: %w", err)
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	name := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "diag", name[:2], name+".mp")
}

// Put writes payload atomically: a temp file in the target directory is
// renamed over the entry.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*.mp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the entry for key. Entries written by another schema version
// are reported as misses.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "diag"))
}

// cacheKey covers everything that changes the diagnostics of a file.
func cacheKey(file *source.File, opts Options) project.Digest {
	return project.Combine(file.Hash,
		fmt.Appendf(nil, "schema=%d depth=%d max=%d", diskCacheSchemaVersion, opts.maxDepth(), opts.maxDiagnostics()))
}

func toPayload(nodes int, items []diag.Diagnostic, imports []project.ImportRef) *DiskPayload {
	p := &DiskPayload{Nodes: nodes}
	for _, d := range items {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	for _, imp := range imports {
		p.Imports = append(p.Imports, cachedImport{Raw: imp.Raw, Start: imp.Span.Start, End: imp.Span.End})
	}
	return p
}

// restore replays a payload for file, whose path relative to the run is rel.
func (p *DiskPayload) restore(file source.FileID, rel string, bag *diag.Bag) []project.ImportRef {
	for _, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: file, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: file, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		bag.Add(d)
	}
	var imports []project.ImportRef
	for _, ci := range p.Imports {
		imports = append(imports, project.ImportRef{
			Path: project.ResolveImport(rel, ci.Raw),
			Raw:  ci.Raw,
			Span: source.Span{File: file, Start: ci.Start, End: ci.End},
		})
	}
	return imports
}
