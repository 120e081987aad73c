package cst

import (
	"fmt"

	"fortio.org/safecast"

	"jaiparse/internal/source"
	"jaiparse/internal/token"
)

// Builder assembles a tree bottom-up. Finished nodes wait on a pending list
// until a Close adopts everything pushed since its Mark.
type Builder struct {
	tree    *Tree
	pending []NodeID
	pos     uint32 // end of the last leaf
}

// Mark is a position in the pending list.
type Mark int

func NewBuilder(src []byte, file source.FileID, capHint uint) *Builder {
	return &Builder{
		tree: &Tree{
			Source: src,
			File:   file,
			nodes:  NewArena[Node](capHint),
		},
	}
}

// Leaf pushes a childless node.
func (b *Builder) Leaf(kind Kind, tok token.Kind, sp source.Span) NodeID {
	id := NodeID(b.tree.nodes.Allocate(Node{Kind: kind, Span: sp, Tok: tok}))
	b.pending = append(b.pending, id)
	b.pos = sp.End
	return id
}

// Extra records a Comment or Note outside the main tree.
func (b *Builder) Extra(kind Kind, sp source.Span) NodeID {
	id := NodeID(b.tree.nodes.Allocate(Node{Kind: kind, Span: sp}))
	b.tree.Extras = append(b.tree.Extras, id)
	return id
}

func (b *Builder) Open() Mark {
	return Mark(len(b.pending))
}

// Close wraps the nodes pushed since m into a new node of kind k, which takes
// their place on the pending list. With nothing pushed the node gets an
// empty span at the last leaf's end.
func (b *Builder) Close(m Mark, k Kind) NodeID {
	children := append([]NodeID(nil), b.pending[m:]...)
	sp := source.Span{File: b.tree.File, Start: b.pos, End: b.pos}
	if len(children) > 0 {
		sp = b.tree.node(children[0]).Span
		for _, c := range children[1:] {
			sp = sp.Cover(b.tree.node(c).Span)
		}
	}
	id := NodeID(b.tree.nodes.Allocate(Node{Kind: k, Span: sp, Children: children}))
	for _, c := range children {
		b.tree.node(c).Parent = id
	}
	b.pending = append(b.pending[:m], id)
	return id
}

// Pending reports how many nodes were pushed since m.
func (b *Builder) Pending(m Mark) int {
	return len(b.pending) - int(m)
}

// Last returns the most recently pushed pending node.
func (b *Builder) Last() NodeID {
	if len(b.pending) == 0 {
		return NoNodeID
	}
	return b.pending[len(b.pending)-1]
}

func (b *Builder) SetField(id NodeID, f Field) {
	if n := b.tree.node(id); n != nil {
		n.Field = f
	}
}

func (b *Builder) SetKind(id NodeID, k Kind) {
	if n := b.tree.node(id); n != nil {
		n.Kind = k
	}
}

func (b *Builder) AddFlags(id NodeID, f NodeFlags) {
	if n := b.tree.node(id); n != nil {
		n.Flags |= f
	}
}

func (b *Builder) Kind(id NodeID) Kind {
	return b.tree.Kind(id)
}

func (b *Builder) Span(id NodeID) source.Span {
	return b.tree.Span(id)
}

// Finish adopts all pending nodes under a SourceFile root spanning the whole
// buffer, attaches extras and returns the tree. The builder must not be used
// afterwards.
func (b *Builder) Finish() *Tree {
	root := b.Close(0, SourceFile)
	n := b.tree.node(root)
	end, err := safecast.Conv[uint32](len(b.tree.Source))
	if err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	n.Span = source.Span{File: b.tree.File, Start: 0, End: end}
	b.tree.Root = root
	b.tree.AttachExtras()
	t := b.tree
	b.tree = nil
	return t
}
