package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"jaiparse/internal/cst"
	"jaiparse/internal/source"
)

// CSTOpts selects what the tree renderers include.
type CSTOpts struct {
	Extras bool // attached comments and notes
	Tokens bool // anonymous token leaves; tree and JSON forms only
}

func FormatCSTSExpr(w io.Writer, tree *cst.Tree, opts CSTOpts) error {
	_, err := fmt.Fprintln(w, tree.SExpr(tree.Root, cst.SExprOptions{Extras: opts.Extras}))
	return err
}

// FormatCSTTree prints an indented tree, one node per line:
//
//	SourceFile 1:1-3:1
//	└─ ConstDeclaration 1:1-1:7
//	   ├─ name: Identifier 1:1-1:2 "x"
func FormatCSTTree(w io.Writer, tree *cst.Tree, fs *source.FileSet, opts CSTOpts) error {
	var sb strings.Builder
	writeTreeNode(&sb, tree, fs, tree.Root, "", "", opts)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeNode(sb *strings.Builder, tree *cst.Tree, fs *source.FileSet, id cst.NodeID, lead, prefix string, opts CSTOpts) {
	n, _ := tree.Node(id)
	sb.WriteString(lead)
	if n.Field != cst.NoField && !n.Kind.IsExtra() {
		sb.WriteString(n.Field.String())
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind.String())
	if n.Kind == cst.Token {
		fmt.Fprintf(sb, "[%s]", n.Tok)
	}
	sb.WriteByte(' ')
	sb.WriteString(spanText(fs, n.Span))
	if n.IsLeaf() {
		fmt.Fprintf(sb, " %q", tree.Text(id))
	}
	if n.Has(cst.FlagInvalid) {
		sb.WriteString(" invalid")
	}
	if n.Has(cst.FlagUnterminated) {
		sb.WriteString(" unterminated")
	}
	sb.WriteByte('\n')

	kids := visibleChildren(tree, id, opts)
	for i, c := range kids {
		if i == len(kids)-1 {
			writeTreeNode(sb, tree, fs, c, prefix+"└─ ", prefix+"   ", opts)
		} else {
			writeTreeNode(sb, tree, fs, c, prefix+"├─ ", prefix+"│  ", opts)
		}
	}
}

func spanText(fs *source.FileSet, sp source.Span) string {
	if !knownFile(fs, sp) {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func visibleChildren(tree *cst.Tree, id cst.NodeID, opts CSTOpts) []cst.NodeID {
	var out []cst.NodeID
	if opts.Tokens {
		out = append(out, tree.Children(id)...)
	} else {
		out = append(out, tree.NamedChildren(id)...)
	}
	if opts.Extras {
		if ex := tree.ExtrasOf(id); len(ex) > 0 {
			out = append(out, ex...)
			slices.SortStableFunc(out, func(a, b cst.NodeID) int {
				return int(tree.Span(a).Start) - int(tree.Span(b).Start)
			})
		}
	}
	return out
}

type CSTNodeJSON struct {
	Kind     string        `json:"kind"`
	Field    string        `json:"field,omitempty"`
	Token    string        `json:"token,omitempty"`
	Start    uint32        `json:"start"`
	End      uint32        `json:"end"`
	Text     string        `json:"text,omitempty"`
	Flags    []string      `json:"flags,omitempty"`
	Children []CSTNodeJSON `json:"children,omitempty"`
}

// BuildCSTJSON converts the subtree at id to its JSON shape.
func BuildCSTJSON(tree *cst.Tree, id cst.NodeID, opts CSTOpts) CSTNodeJSON {
	n, _ := tree.Node(id)
	out := CSTNodeJSON{
		Kind:  n.Kind.String(),
		Start: n.Span.Start,
		End:   n.Span.End,
	}
	if !n.Kind.IsExtra() {
		out.Field = n.Field.String()
	}
	if n.Kind == cst.Token {
		out.Token = n.Tok.String()
	}
	if n.IsLeaf() {
		out.Text = tree.Text(id)
	}
	if n.Has(cst.FlagInvalid) {
		out.Flags = append(out.Flags, "invalid")
	}
	if n.Has(cst.FlagUnterminated) {
		out.Flags = append(out.Flags, "unterminated")
	}
	for _, c := range visibleChildren(tree, id, opts) {
		out.Children = append(out.Children, BuildCSTJSON(tree, c, opts))
	}
	return out
}

func FormatCSTJSON(w io.Writer, tree *cst.Tree, opts CSTOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildCSTJSON(tree, tree.Root, opts))
}
