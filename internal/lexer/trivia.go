package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"jaiparse/internal/diag"
	"jaiparse/internal/token"
)

// collectLeadingTrivia gathers extras that precede the next grammar token:
//   - runs of horizontal whitespace coalesce into one TriviaSpace
//   - "//" up to the line break is a TriviaLineComment
//   - "/* ... */" is a TriviaBlockComment; it nests
//   - "@word" and "@\"text\"" are TriviaNote
//
// Line breaks are not trivia.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if r, _ := lx.peekRune(); isSpaceRune(r) {
			for {
				r2, sz := lx.peekRune()
				if sz == 0 || !isSpaceRune(r2) {
					break
				}
				lx.bumpRune()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '/' && lx.scanComment() {
			continue
		}
		if b == '@' && lx.scanNote() {
			continue
		}
		break
	}
}

func (lx *Lexer) pushTrivia(k token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: k, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() {
			if c := lx.cursor.Peek(); c == '\n' || c == '\r' {
				break
			}
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		depth := 1
		limit := lx.opts.maxDepth()
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					if depth > limit {
						lx.cursor.Off = lx.cursor.Limit
						sp := lx.cursor.SpanFrom(start)
						lx.errLex(diag.LexCommentTooDeep, sp, fmt.Sprintf("block comment nested deeper than %d levels", limit))
						lx.pushTrivia(token.TriviaBlockComment, start)
						return true
					}
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return true
	}
	return false
}

// scanNote takes the longer of the bare and quoted note forms. A lone '@'
// is left for the token scanner to reject.
func (lx *Lexer) scanNote() bool {
	rest := lx.cursor.Rest()
	bare := noteBareLen(rest)
	quoted := noteQuotedLen(rest)
	n := max(bare, quoted)
	if n == 0 {
		return false
	}
	un, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("note length overflow: %w", err))
	}
	start := lx.cursor.Mark()
	lx.cursor.Off += un
	lx.pushTrivia(token.TriviaNote, start)
	return true
}

// noteBareLen measures "@" + [^\s;]+ and returns 0 when it does not match.
func noteBareLen(b []byte) int {
	i := 1
	for i < len(b) {
		r, sz := utf8.DecodeRune(b[i:])
		if r == ';' || r == '\n' || r == '\r' || isSpaceRune(r) {
			break
		}
		i += sz
	}
	if i == 1 {
		return 0
	}
	return i
}

// noteQuotedLen measures "@" + "[^"\\\n]*".
func noteQuotedLen(b []byte) int {
	if len(b) < 2 || b[1] != '"' {
		return 0
	}
	for i := 2; i < len(b); i++ {
		switch b[i] {
		case '"':
			return i + 1
		case '\\', '\n':
			return 0
		}
	}
	return 0
}
