package lexer

import (
	"fmt"

	"jaiparse/internal/diag"
	"jaiparse/internal/token"
)

// scanString scans a double-quoted literal into content runs and escape
// sequences. A line break or EOF before the closing quote ends the token; the
// line break itself is left for the next token.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	var parts []token.StringPart
	closed := false

loop:
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			closed = true
			break loop
		case '\n', '\r':
			break loop
		case '\\':
			parts = append(parts, lx.scanEscape())
		default:
			runStart := lx.cursor.Mark()
			for !lx.cursor.EOF() {
				b := lx.cursor.Peek()
				if b == '"' || b == '\\' || b == '\n' || b == '\r' {
					break
				}
				lx.cursor.Bump()
			}
			parts = append(parts, token.StringPart{
				Kind: token.PartContent,
				Span: lx.cursor.SpanFrom(runStart),
			})
		}
	}

	tok := lx.emit(token.StringLit, start)
	tok.Parts = parts
	if !closed {
		tok.Flags |= token.FlagUnterminated
		lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	}
	return tok
}

// scanEscape consumes one escape sequence starting at '\':
//
//	\c         any character except x, u, U (a line break counts)
//	\dd \ddd   numeric escape
//	\xHH...    two or more hex digits
//	\uHHHH     exactly four hex digits
//	\UHHHHHHHH exactly eight hex digits
func (lx *Lexer) scanEscape() token.StringPart {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // backslash
	valid := true
	if lx.cursor.EOF() {
		valid = false
	} else {
		switch b := lx.cursor.Peek(); {
		case b == 'x':
			lx.cursor.Bump()
			valid = lx.countHex(-1) >= 2
		case b == 'u':
			lx.cursor.Bump()
			valid = lx.countHex(4) == 4
		case b == 'U':
			lx.cursor.Bump()
			valid = lx.countHex(8) == 8
		case isDec(b):
			for i := 0; i < 3 && isDec(lx.cursor.Peek()) && !lx.cursor.EOF(); i++ {
				lx.cursor.Bump()
			}
		case b == '\r':
			lx.cursor.Bump()
			lx.cursor.Eat('\n')
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if !valid {
		lx.errLex(diag.LexInvalidEscape, sp, fmt.Sprintf("invalid escape sequence %q", lx.text(sp)))
	}
	return token.StringPart{Kind: token.PartEscape, Span: sp, Valid: valid}
}

// countHex consumes up to limit hex digits (unbounded when limit < 0).
func (lx *Lexer) countHex(limit int) int {
	n := 0
	for !lx.cursor.EOF() && isHex(lx.cursor.Peek()) && (limit < 0 || n < limit) {
		lx.cursor.Bump()
		n++
	}
	return n
}
