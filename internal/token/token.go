package token

import "jaiparse/internal/source"

// Flags carries lexical facts the parser and tree builder need.
type Flags uint8

const (
	// FlagUnterminated marks a string literal with no closing quote.
	FlagUnterminated Flags = 1 << iota
)

// PartKind distinguishes the pieces of a string literal body.
type PartKind uint8

const (
	PartContent PartKind = iota
	PartEscape
)

// StringPart is a run of plain content or a single escape sequence inside a
// string literal. Span excludes the surrounding quotes.
type StringPart struct {
	Kind  PartKind
	Span  source.Span
	Valid bool // escapes only; false for short \x, \u and \U forms
}

type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
	Parts   []StringPart // StringLit only
	Flags   Flags
}

func (t Token) IsTerminator() bool { return t.Kind.IsTerminator() }

func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwNull, KwTrue, KwFalse:
		return true
	}
	return false
}

func (t Token) Unterminated() bool { return t.Flags&FlagUnterminated != 0 }
