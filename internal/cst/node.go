package cst

import (
	"jaiparse/internal/source"
	"jaiparse/internal/token"
)

type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

type NodeFlags uint8

const (
	// FlagInvalid marks an escape sequence that does not match any escape form.
	FlagInvalid NodeFlags = 1 << iota
	// FlagUnterminated marks a string literal missing its closing quote.
	FlagUnterminated
)

// Node is one syntax node. Leaves have no children; Tok records the lexical
// kind for leaves built from a single token.
type Node struct {
	Kind     Kind
	Span     source.Span
	Field    Field
	Parent   NodeID
	Children []NodeID
	Tok      token.Kind
	Flags    NodeFlags
}

func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

func (n *Node) Has(f NodeFlags) bool { return n.Flags&f != 0 }
