package parser

import "jaiparse/internal/token"

// Precedence levels. Operators other than the literal suffixes are not
// parsed yet but keep their slots so the ordering stays fixed.
const (
	precArrayLiteral   = -2 // T.[ ... ]
	precStructLiteral  = -1 // T.{ ... }
	precTerminator     = 0  // newline ending a statement
	precOr             = 1
	precAnd            = 2
	precComparative    = 3
	precAdditive       = 4
	precMultiplicative = 5
	precUnary          = 6
	precPrimary        = 7
)

// precNone is below every level: nothing separates the type and the suffix.
const precNone = precArrayLiteral - 1

// suffixPrec returns the precedence of a literal suffix token.
func suffixPrec(k token.Kind) (int, bool) {
	switch k {
	case token.DotLBrace:
		return precStructLiteral, true
	case token.DotLBracket:
		return precArrayLiteral, true
	}
	return 0, false
}

// literalFollows reports whether the suffix token binds to the type just
// parsed. A newline that ends a statement outranks both literal suffixes,
// so `T` on one line and `.{` on the next are two statements.
func (p *Parser) literalFollows(suffix token.Kind) bool {
	i := p.pos
	crossed := false
	for i < len(p.toks)-1 && p.toks[i].Kind == token.Newline {
		i++
		crossed = true
	}
	if p.toks[i].Kind != suffix {
		return false
	}
	prec, ok := suffixPrec(suffix)
	if !ok {
		return false
	}
	boundary := precNone
	if crossed && p.significant() {
		boundary = precTerminator
	}
	return prec > boundary
}
