package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"jaiparse/internal/diag"
	"jaiparse/internal/source"
)

// ErrNoFixes is returned when nothing could be applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects which suggested fixes are applied.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix of the earliest diagnostic.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies the first fix of every diagnostic that does not
	// overlap an edit already taken.
	ApplyModeAll
)

// ParseApplyMode maps "once" and "all" to their modes.
func ParseApplyMode(s string) (ApplyMode, error) {
	switch s {
	case "once":
		return ApplyModeOnce, nil
	case "all":
		return ApplyModeAll, nil
	}
	return 0, fmt.Errorf("unknown fix mode %q (expected once|all)", s)
}

type ApplyOptions struct {
	Mode ApplyMode
	// DryRun computes the new contents without writing them.
	DryRun bool
}

type AppliedFix struct {
	Title       string
	Code        diag.Code
	PrimaryPath string
	EditCount   int
}

type SkippedFix struct {
	Title  string
	Reason string
}

type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag diag.Diagnostic
	fix  diag.Fix
}

// Apply picks fixes from diagnostics according to opts and rewrites the
// affected files. Edits of one fix are applied together or not at all.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, errors.New("fix: FileSet is nil")
	}

	cands := gatherCandidates(diagnostics)
	if len(cands) == 0 {
		return result, ErrNoFixes
	}
	if opts.Mode == ApplyModeOnce {
		cands = cands[:1]
	}

	taken := make(map[source.FileID][]diag.FixEdit)
	for _, c := range cands {
		if reason := check(fs, taken, c.fix); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{Title: c.fix.Title, Reason: reason})
			continue
		}
		for _, e := range c.fix.Edits {
			taken[e.Span.File] = append(taken[e.Span.File], e)
		}
		result.Applied = append(result.Applied, AppliedFix{
			Title:       c.fix.Title,
			Code:        c.diag.Code,
			PrimaryPath: formatFilePath(fs, c.diag.Primary.File),
			EditCount:   len(c.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	ids := make([]source.FileID, 0, len(taken))
	for id := range taken {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		file := fs.Get(id)
		content := rewrite(file.Content, taken[id])
		if !opts.DryRun {
			if err := writeFile(file, content); err != nil {
				return result, err
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      file.FormatPath("relative", fs.BaseDir()),
			EditCount: len(taken[id]),
			Content:   content,
		})
	}
	return result, nil
}

// gatherCandidates takes the first fix of each diagnostic, ordered by file
// and position. Later fixes of a diagnostic are alternatives.
func gatherCandidates(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	for _, d := range diagnostics {
		if len(d.Fixes) == 0 || len(d.Fixes[0].Edits) == 0 {
			continue
		}
		cands = append(cands, candidate{diag: d, fix: d.Fixes[0]})
	}
	slices.SortStableFunc(cands, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		if pa.File != pb.File {
			return int(pa.File) - int(pb.File)
		}
		if pa.Start != pb.Start {
			return int(pa.Start) - int(pb.Start)
		}
		return int(pa.End) - int(pb.End)
	})
	return cands
}

// check returns why f cannot be applied on top of taken, or "".
func check(fs *source.FileSet, taken map[source.FileID][]diag.FixEdit, f diag.Fix) string {
	for i, e := range f.Edits {
		if int(e.Span.File) >= fs.Len() {
			return "target file is unknown"
		}
		file := fs.Get(e.Span.File)
		if file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		for _, prev := range taken[e.Span.File] {
			if spansConflict(prev.Span, e.Span) {
				return "conflicts with a previously applied edit in " + file.FormatPath("auto", fs.BaseDir())
			}
		}
		for _, other := range f.Edits[:i] {
			if other.Span.File == e.Span.File && spansConflict(other.Span, e.Span) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// spansConflict reports whether two half-open spans overlap. Two insertions
// never conflict; an insertion conflicts with a span strictly containing it.
func spansConflict(a, b source.Span) bool {
	if a.Start == a.End && b.Start == b.End {
		return false
	}
	if a.Start == a.End {
		return b.Start < a.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// rewrite applies non-overlapping edits to content back to front.
func rewrite(content []byte, edits []diag.FixEdit) []byte {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b diag.FixEdit) int {
		if a.Span.Start != b.Span.Start {
			return int(b.Span.Start) - int(a.Span.Start)
		}
		return int(b.Span.End) - int(a.Span.End)
	})
	out := slices.Clone(content)
	for _, e := range sorted {
		out = slices.Concat(out[:e.Span.Start], []byte(e.NewText), out[e.Span.End:])
	}
	return out
}

// writeFile keeps the file mode and restores a byte order mark stripped on
// load.
func writeFile(file *source.File, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(file.Path); err == nil {
		mode = info.Mode()
	}
	if file.Flags&source.FileHadBOM != 0 {
		content = slices.Concat([]byte{0xEF, 0xBB, 0xBF}, content)
	}
	if err := os.WriteFile(file.Path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", file.Path, err)
	}
	return nil
}

func formatFilePath(fs *source.FileSet, id source.FileID) string {
	if int(id) >= fs.Len() {
		return ""
	}
	return fs.Get(id).FormatPath("auto", fs.BaseDir())
}
