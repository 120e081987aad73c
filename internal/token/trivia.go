package token

import "jaiparse/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaLineComment
	TriviaBlockComment
	TriviaNote
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaNote:
		return "Note"
	}
	return "TriviaKind(?)"
}

// IsExtra reports whether the trivia becomes a Comment or Note node in the tree.
func (k TriviaKind) IsExtra() bool {
	return k != TriviaSpace
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
