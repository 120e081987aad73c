package lexer

import (
	"fmt"
	"unicode/utf8"

	"jaiparse/internal/diag"
	"jaiparse/internal/token"
)

// scanNumber recognises
//
//	int:   0[bB]_?bin(_?bin)*  |  0[xXhH]_?hex(_?hex)*  |  dec(_?dec)*
//	float: dec(_?dec)* '.' [dec(_?dec)*] [exp]  |  dec(_?dec)* exp  |  '.' dec(_?dec)* [exp]
//	exp:   [eE][+-]?dec(_?dec)*
//
// A '.' after the integer part belongs to the number unless it starts "..",
// ".{" or ".[", and an identifier after a fraction-less '.' is left to the
// next token. Anything else that breaks these shapes, including identifier
// characters glued to the end, turns the whole run into one Invalid token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	ok := true
	kind := token.IntLit

	b0, b1, _ := lx.cursor.Peek2()
	switch {
	case b0 == '0' && (b1 == 'b' || b1 == 'B'):
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.cursor.Eat('_')
		ok = lx.scanDigits(isBin)
	case b0 == '0' && (b1 == 'x' || b1 == 'X' || b1 == 'h' || b1 == 'H'):
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.cursor.Eat('_')
		ok = lx.scanDigits(isHex)
	case b0 == '.':
		lx.cursor.Bump()
		kind = token.FloatLit
		ok = lx.scanDigits(isDec) && lx.scanExponent()
	default:
		ok = lx.scanDigits(isDec)
		if ok && lx.cursor.Peek() == '.' && !lx.dotStartsPunct() {
			lx.cursor.Bump()
			kind = token.FloatLit
			if isDec(lx.cursor.Peek()) {
				ok = lx.scanDigits(isDec)
			} else if lx.identAfterDot() {
				// 1.x is the float 1. followed by an identifier
				return lx.emit(kind, start)
			}
		}
		if ok {
			if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
				kind = token.FloatLit
			}
			ok = lx.scanExponent()
		}
	}

	if lx.eatGlued() {
		ok = false
	}
	if !ok {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexBadNumber, tok.Span, fmt.Sprintf("malformed number literal %q", tok.Text))
		return tok
	}
	return lx.emit(kind, start)
}

// scanDigits consumes d(_?d)*. It reports false if there is no leading digit
// or an underscore is not followed by a digit; the offending underscore is
// consumed either way.
func (lx *Lexer) scanDigits(class func(byte) bool) bool {
	if lx.cursor.EOF() || !class(lx.cursor.Peek()) {
		return false
	}
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if class(b) {
			lx.cursor.Bump()
			continue
		}
		if b != '_' {
			return true
		}
		lx.cursor.Bump()
		if lx.cursor.EOF() || !class(lx.cursor.Peek()) {
			return false
		}
	}
	return true
}

// scanExponent consumes an optional exponent.
func (lx *Lexer) scanExponent() bool {
	if b := lx.cursor.Peek(); lx.cursor.EOF() || (b != 'e' && b != 'E') {
		return true
	}
	lx.cursor.Bump()
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	return lx.scanDigits(isDec)
}

func (lx *Lexer) dotStartsPunct() bool {
	next, ok := lx.cursor.PeekAt(1)
	return ok && (next == '.' || next == '{' || next == '[')
}

// identAfterDot reports whether an identifier starts right after the '.' of
// a float without a fraction. '_' stays a misplaced separator and an
// exponent stays part of the number.
func (lx *Lexer) identAfterDot() bool {
	r, sz := lx.peekRune()
	if sz == 0 || r == '_' || !isIdentStartRune(r) {
		return false
	}
	if r != 'e' && r != 'E' {
		return true
	}
	b1, ok1 := lx.cursor.PeekAt(1)
	b2, ok2 := lx.cursor.PeekAt(2)
	exp := ok1 && (isDec(b1) || ((b1 == '+' || b1 == '-') && ok2 && isDec(b2)))
	return !exp
}

// eatGlued swallows identifier characters stuck to the literal.
func (lx *Lexer) eatGlued() bool {
	glued := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			glued = true
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
		glued = true
	}
	return glued
}
