package lexer

import (
	"fmt"
	"unicode/utf8"

	"jaiparse/internal/diag"
	"jaiparse/internal/token"
)

// scanIdentOrKeyword scans an identifier and checks it against the keyword
// table. Keywords are case-sensitive.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.scanIdentRunes()
	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanIdentRunes consumes one identifier; the caller has checked the start rune.
func (lx *Lexer) scanIdentRunes() {
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8.RuneSelf {
			if lx.cursor.EOF() || !isIdentContinueByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return
		}
		lx.bumpRune()
	}
}

// scanDirective scans '#' glued to an identifier. Anything else after '#' is
// an unknown character.
func (lx *Lexer) scanDirective() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if r, sz := lx.peekRune(); sz == 0 || !isIdentStartRune(r) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "'#' must be followed by a directive name")
		return lx.emit(token.Invalid, start)
	}
	lx.scanIdentRunes()
	return lx.emit(token.Directive, start)
}

// scanUnknown consumes one rune (or one byte of broken UTF-8) as Invalid.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, sz := lx.peekRune()
	var msg string
	if r == utf8.RuneError && sz <= 1 {
		msg = fmt.Sprintf("invalid UTF-8 byte 0x%02x", lx.cursor.Peek())
		lx.cursor.Bump()
	} else {
		msg = fmt.Sprintf("unexpected character %q", r)
		lx.bumpRune()
	}
	lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(start), msg)
	return lx.emit(token.Invalid, start)
}
