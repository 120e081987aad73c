package parser

import (
	"jaiparse/internal/source"
	"jaiparse/internal/token"
)

type declKind uint8

const (
	declNone declKind = iota
	declImport
	declConst
	declVar
	declTyped // name ':' ..., settled after the type
)

// classifyDecl decides what an item starting with an identifier declares.
// A newline between the name and its operator is whitespace: a bare name is
// never an item on its own.
func (p *Parser) classifyDecl() declKind {
	switch p.peekPast(1).Kind {
	case token.ColonColon:
		if p.peekPast(2).Kind == token.Directive {
			return declImport
		}
		return declConst
	case token.ColonAssign:
		return declVar
	case token.Colon:
		return declTyped
	}
	return declNone
}

// startsDecl reports whether toks[i:] opens a declaration or a struct field.
// Recovery stops at such a line.
func (p *Parser) startsDecl(i int) bool {
	for i < len(p.toks)-1 && p.toks[i].Kind == token.Newline {
		i++
	}
	switch p.toks[i].Kind {
	case token.Directive:
		return true
	case token.Ident:
		if i+1 >= len(p.toks) {
			return false
		}
		switch p.toks[i+1].Kind {
		case token.Colon, token.ColonColon, token.ColonAssign, token.Comma:
			return true
		}
	}
	return false
}

// collectAliases records every name bound by `name :: #import` at the start
// of a statement. Only these names may qualify a type as in `alias.Type`.
func collectAliases(toks []token.Token, in *source.Interner) {
	start := true
	for i, tok := range toks {
		if tok.Kind.IsTerminator() {
			start = true
			continue
		}
		if start && tok.Kind == token.Ident && i+2 < len(toks) &&
			toks[i+1].Kind == token.ColonColon &&
			toks[i+2].Kind == token.Directive && toks[i+2].Text == token.DirectiveImport {
			in.Intern(tok.Text)
		}
		start = false
	}
}

func (p *Parser) isAlias(name string) bool {
	_, ok := p.aliases.Find(name)
	return ok
}
