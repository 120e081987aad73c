package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jaiparse/internal/diag"
	"jaiparse/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty renders bag (sorted beforehand) for a terminal:
//
//	path:line:col: ERROR SYN2001: message
//	   3 | x :: .{1}
//	     |      ^~
//	note: path:line:col: message
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostics not shown\n", n)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	loc := location(fs, d.Primary, opts.PathMode)
	if loc != "" {
		loc += ": "
	}
	fmt.Fprintf(w, "%s%s %s: %s\n", loc, p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
	if knownFile(fs, d.Primary) && d.Code != diag.IOLoadFileError {
		snippet(w, fs, d.Primary, opts.Context, p)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nloc := location(fs, n.Span, opts.PathMode)
			if nloc != "" {
				nloc += ": "
			}
			fmt.Fprintf(w, "%s %s%s\n", p.note.Sprint("note:"), nloc, n.Msg)
		}
	}

	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "%s %s\n", p.note.Sprintf("fix #%d:", i+1), fix.Title)
			for _, edit := range fix.Edits {
				fmt.Fprintf(w, "  edit %s apply=%q\n", location(fs, edit.Span, opts.PathMode), edit.NewText)
				if !opts.ShowPreview {
					continue
				}
				pv, err := buildEditPreview(fs, edit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "  preview:")
				for _, l := range pv.before {
					fmt.Fprintf(w, "  - %s\n", l)
				}
				for _, l := range pv.after {
					fmt.Fprintf(w, "  + %s\n", l)
				}
			}
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	if !knownFile(fs, sp) {
		return ""
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, fs.Get(sp.File), mode), start.Line, start.Col)
}

// snippet prints the primary line with context lines and underlines the
// span on it. Spans running past the line are underlined to its end.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, p palette) {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	first := max(int(start.Line)-context, 1)
	last := min(int(start.Line)+context, len(f.LineStarts))
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- bounded by LineStarts
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != int(start.Line) {
			continue
		}
		col := int(start.Col) - 1
		if col > len(text) {
			col = len(text)
		}
		end := col + int(sp.Len())
		if end > len(text) {
			end = len(text)
		}
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), padTo(text[:col]), p.caret.Sprint(underline(text[col:end])))
	}
}

// padTo returns blanks as wide as prefix, keeping tabs so the caret lines
// up under the same tab stops.
func padTo(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func underline(text string) string {
	width := runewidth.StringWidth(text)
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}
