package parser

import (
	"jaiparse/internal/cst"
	"jaiparse/internal/token"
)

// recover wraps the nodes pushed since m and the tokens up to the next
// statement boundary into one Error node. Brackets left open by the failed
// item are counted so the scan does not stop inside them, unless a newline
// is followed by something that clearly starts a new declaration.
func (p *Parser) recover(m cst.Mark, fr frame, inBlock bool) {
	nest := len(p.sig) - fr.sig
	p.sig = p.sig[:fr.sig]
	p.depth = fr.depth
	if nest > 0 {
		// newlines skipped inside the open brackets are boundaries again
		p.pos = p.taken
	}

scan:
	for {
		tok := p.toks[p.pos]
		switch tok.Kind {
		case token.EOF:
			break scan
		case token.Newline:
			if nest == 0 || p.startsDecl(p.pos+1) {
				break scan
			}
			p.pos++
			continue
		case token.Semicolon, token.Nul:
			if nest == 0 {
				break scan
			}
		case token.RBrace:
			if nest == 0 && inBlock {
				break scan
			}
			if nest > 0 {
				nest--
			}
		case token.LParen, token.LBracket, token.LBrace, token.DotLBrace, token.DotLBracket:
			nest++
		case token.RParen, token.RBracket:
			if nest > 0 {
				nest--
			}
		}
		p.b.Leaf(cst.Token, tok.Kind, tok.Span)
		p.pos++
		p.taken = p.pos
	}

	if p.b.Pending(m) > 0 {
		id := p.b.Close(m, cst.Error)
		p.b.AddFlags(id, cst.FlagInvalid)
	}
}

// abortRest ends the parse after the nesting limit: the current item and
// every remaining token become a single Error node.
func (p *Parser) abortRest(m cst.Mark) {
	p.sig = p.sig[:1]
	p.depth = 0
	for ; p.toks[p.pos].Kind != token.EOF; p.pos++ {
		tok := p.toks[p.pos]
		if tok.Kind == token.Newline {
			continue
		}
		p.b.Leaf(cst.Token, tok.Kind, tok.Span)
	}
	if p.b.Pending(m) > 0 {
		id := p.b.Close(m, cst.Error)
		p.b.AddFlags(id, cst.FlagInvalid)
	}
}
