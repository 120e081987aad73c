package parser

import (
	"fmt"
	"strconv"

	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/source"
	"jaiparse/internal/token"
)

// frame remembers the context stack and nesting depth so recovery can
// unwind to it.
type frame struct {
	sig   int
	depth int
}

func (p *Parser) frame() frame {
	return frame{sig: len(p.sig), depth: p.depth}
}

func (p *Parser) push(significant bool) {
	p.sig = append(p.sig, significant)
}

func (p *Parser) pop() {
	if len(p.sig) > 1 {
		p.sig = p.sig[:len(p.sig)-1]
	}
}

// significant reports whether newlines terminate in the innermost context.
func (p *Parser) significant() bool {
	return p.sig[len(p.sig)-1]
}

// cur returns the current token. Inside brackets newlines are whitespace and
// are stepped over.
func (p *Parser) cur() token.Token {
	if !p.significant() {
		p.skipNewlines()
	}
	return p.toks[p.pos]
}

// skipNewlines steps over newlines where a terminator cannot appear, such as
// after an operator.
func (p *Parser) skipNewlines() {
	for p.toks[p.pos].Kind == token.Newline {
		p.pos++
	}
}

// peek returns the n-th token after the current one under the current
// newline rules.
func (p *Parser) peek(n int) token.Token {
	p.cur()
	i := p.pos
	for ; n > 0 && i < len(p.toks)-1; n-- {
		i++
		if !p.significant() {
			for i < len(p.toks)-1 && p.toks[i].Kind == token.Newline {
				i++
			}
		}
	}
	return p.toks[i]
}

// peekPast returns the n-th token after the current one, ignoring newlines.
func (p *Parser) peekPast(n int) token.Token {
	i := p.pos
	for ; n > 0 && i < len(p.toks)-1; n-- {
		i++
		for i < len(p.toks)-1 && p.toks[i].Kind == token.Newline {
			i++
		}
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) atTerminator() bool {
	return p.cur().Kind.IsTerminator()
}

// bump consumes the current token as a leaf of the given kind.
func (p *Parser) bump(kind cst.Kind) cst.NodeID {
	tok := p.cur()
	id := p.b.Leaf(kind, tok.Kind, tok.Span)
	if tok.Kind != token.EOF {
		p.pos++
	}
	p.taken = p.pos
	return id
}

func (p *Parser) bumpField(kind cst.Kind, f cst.Field) cst.NodeID {
	id := p.bump(kind)
	p.b.SetField(id, f)
	return id
}

// bumpString consumes a string literal and expands it into its quotes,
// content runs and escape sequences.
func (p *Parser) bumpString(f cst.Field) cst.NodeID {
	tok := p.cur()
	sp := tok.Span
	m := p.b.Open()
	p.b.Leaf(cst.Token, token.StringLit, source.Span{File: sp.File, Start: sp.Start, End: sp.Start + 1})
	for _, part := range tok.Parts {
		if part.Kind == token.PartEscape {
			id := p.b.Leaf(cst.EscapeSequence, token.StringLit, part.Span)
			if !part.Valid {
				p.b.AddFlags(id, cst.FlagInvalid)
			}
			continue
		}
		p.b.Leaf(cst.StringContent, token.StringLit, part.Span)
	}
	if !tok.Unterminated() {
		p.b.Leaf(cst.Token, token.StringLit, source.Span{File: sp.File, Start: sp.End - 1, End: sp.End})
	}
	id := p.b.Close(m, cst.InterpretedStringLiteral)
	if tok.Unterminated() {
		p.b.AddFlags(id, cst.FlagUnterminated)
	}
	p.b.SetField(id, f)
	p.pos++
	p.taken = p.pos
	return id
}

// expect consumes a token of kind k as an anonymous leaf.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) bool {
	if p.at(k) {
		p.bump(cst.Token)
		return true
	}
	p.unexpected(code, what)
	return false
}

// enter tracks nesting; past the limit the whole parse is aborted.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= p.opts.MaxNestingDepth {
		return true
	}
	if !p.aborted {
		p.aborted = true
		p.report(diag.SynMaxNesting, diag.SevError, p.cur().Span,
			fmt.Sprintf("nesting deeper than %d levels", p.opts.MaxNestingDepth))
	}
	return false
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) enough() bool {
	return p.errs >= p.opts.MaxDiagnostics
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes ...diag.Note) {
	if sev >= diag.SevError {
		if p.enough() {
			return
		}
		p.errs++
	}
	p.rep.Report(code, sev, sp, msg, notes, nil)
}

// errAt reports an error at tok. Invalid tokens were already reported by the
// lexer and stay quiet here.
func (p *Parser) errAt(code diag.Code, tok token.Token, msg string, notes ...diag.Note) {
	if tok.Kind == token.Invalid {
		return
	}
	p.report(code, diag.SevError, tok.Span, msg, notes...)
}

func (p *Parser) unexpected(code diag.Code, expected string) {
	tok := p.cur()
	p.errAt(code, tok, fmt.Sprintf("expected %s, found %s", expected, describe(tok)))
}

// closeErr reports a list that did not end with its closer.
func (p *Parser) closeErr(open token.Token, closer string) {
	tok := p.cur()
	if tok.Kind == token.EOF {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span,
			fmt.Sprintf("unclosed %q", open.Text),
			diag.Note{Span: tok.Span, Msg: "file ends here"})
		return
	}
	p.errAt(diag.SynUnexpectedToken, tok,
		fmt.Sprintf("expected ',' or %q, found %s", closer, describe(tok)),
		diag.Note{Span: open.Span, Msg: fmt.Sprintf("to match this %q", open.Text)})
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Nul:
		return "NUL byte"
	}
	return strconv.Quote(tok.Text)
}
