package diagfmt

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"jaiparse/internal/diag"
	"jaiparse/internal/source"
)

type editPreview struct {
	before []string
	after  []string
}

// buildEditPreview applies one edit to the whole lines it touches.
func buildEditPreview(fs *source.FileSet, edit diag.FixEdit) (editPreview, error) {
	if !knownFile(fs, edit.Span) {
		return editPreview{}, fmt.Errorf("file %d not in the file set", edit.Span.File)
	}
	f := fs.Get(edit.Span.File)
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return editPreview{}, err
	}
	if edit.Span.Start > edit.Span.End || edit.Span.End > n {
		return editPreview{}, fmt.Errorf("edit span %v out of range", edit.Span)
	}

	blockStart := lineStart(f, edit.Span.Start)
	blockEnd := lineEnd(f, edit.Span.End)
	original := f.Content[blockStart:blockEnd]
	relStart := edit.Span.Start - blockStart
	relEnd := edit.Span.End - blockStart

	after := slices.Concat(original[:relStart], []byte(edit.NewText), original[relEnd:])
	return editPreview{before: splitLines(original), after: splitLines(after)}, nil
}

// lineStart is the offset of the first byte of the line containing off.
func lineStart(f *source.File, off uint32) uint32 {
	i, found := slices.BinarySearch(f.LineStarts, off)
	if found {
		return off
	}
	return f.LineStarts[max(i-1, 0)]
}

// lineEnd is the offset of the terminator ending the line containing off.
func lineEnd(f *source.File, off uint32) uint32 {
	end := off
	for int(end) < len(f.Content) && f.Content[end] != '\n' && f.Content[end] != '\r' {
		end++
	}
	return end
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	return strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n")
}
