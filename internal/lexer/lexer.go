package lexer

import (
	"fmt"
	"unicode/utf8"

	"jaiparse/internal/diag"
	"jaiparse/internal/source"
	"jaiparse/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // leading trivia collected for the next token
	done   bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes the whole file and returns every token up to and including EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next grammar token with its Leading trivia attached.
// Trivia before the end of input rides on the EOF token. After EOF it keeps
// returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		if !lx.done {
			tok.Leading = lx.takeHold()
			lx.done = true
		}
		return tok
	}

	tok := lx.scanToken()
	if int(tok.Span.Len()) > lx.opts.maxTokenLen() {
		lx.errLex(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token is %d bytes long, limit is %d", tok.Span.Len(), lx.opts.maxTokenLen()))
		tok.Kind = token.Invalid
		tok.Parts = nil
	}
	tok.Leading = lx.takeHold()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == '\n' || ch == '\r':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		if ch == '\r' {
			lx.cursor.Eat('\n')
		}
		return lx.emit(token.Newline, start)
	case ch == ';':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(token.Semicolon, start)
	case ch == 0:
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(token.Nul, start)
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case ch >= utf8.RuneSelf:
		if r, _ := lx.peekRune(); isIdentStartRune(r) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanUnknown()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '#':
		return lx.scanDirective()
	default:
		return lx.scanPunct()
	}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := lx.hold
	lx.hold = nil
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
