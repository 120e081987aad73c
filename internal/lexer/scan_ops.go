package lexer

import (
	"jaiparse/internal/token"
)

// scanPunct is greedy: "::" and ":=" before ":", ".{" ".[" ".." before ".".
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	kind := token.Invalid
	switch b {
	case ':':
		switch {
		case lx.cursor.Eat(':'):
			kind = token.ColonColon
		case lx.cursor.Eat('='):
			kind = token.ColonAssign
		default:
			kind = token.Colon
		}
	case '.':
		switch {
		case lx.cursor.Eat('{'):
			kind = token.DotLBrace
		case lx.cursor.Eat('['):
			kind = token.DotLBracket
		case lx.cursor.Eat('.'):
			kind = token.DotDot
		default:
			kind = token.Dot
		}
	case '=':
		kind = token.Assign
	case ',':
		kind = token.Comma
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	default:
		lx.cursor.Reset(start)
		return lx.scanUnknown()
	}
	return lx.emit(kind, start)
}
