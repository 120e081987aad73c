package cst

import (
	"sort"
	"strconv"
	"strings"
)

// SExprOptions tunes SExpr output.
type SExprOptions struct {
	// Extras prints attached comments and notes in source order among the
	// children of their owner.
	Extras bool
	// Text appends the quoted source text to named leaves.
	Text bool
}

// SExpr renders the subtree at id in tree-sitter notation:
//
//	(SourceFile (ConstDeclaration name: (Identifier) value: (IntLiteral)))
//
// Token leaves are omitted.
func (t *Tree) SExpr(id NodeID, opts SExprOptions) string {
	var b strings.Builder
	t.sexpr(&b, id, opts)
	return b.String()
}

// String is SExpr of the root with default options.
func (t *Tree) String() string {
	return t.SExpr(t.Root, SExprOptions{})
}

func (t *Tree) sexpr(b *strings.Builder, id NodeID, opts SExprOptions) {
	n := t.node(id)
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	if opts.Text && n.IsLeaf() {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(t.Text(id)))
	}
	for _, c := range t.printable(id, opts) {
		cn := t.node(c)
		b.WriteByte(' ')
		if cn.Field != NoField && !cn.Kind.IsExtra() {
			b.WriteString(cn.Field.String())
			b.WriteString(": ")
		}
		t.sexpr(b, c, opts)
	}
	b.WriteByte(')')
}

func (t *Tree) printable(id NodeID, opts SExprOptions) []NodeID {
	var out []NodeID
	for _, c := range t.node(id).Children {
		if t.node(c).Kind.Named() {
			out = append(out, c)
		}
	}
	if opts.Extras {
		if ex := t.attached[id]; len(ex) > 0 {
			out = append(out, ex...)
			sort.SliceStable(out, func(i, j int) bool {
				return t.node(out[i]).Span.Start < t.node(out[j]).Span.Start
			})
		}
	}
	return out
}
