package parser

import (
	"fmt"
	"slices"

	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/token"
)

var importModifiers = []string{token.ModifierFile, token.ModifierDir, token.ModifierString}

// parseItem parses one top-level declaration into a node closed at m.
func (p *Parser) parseItem(m cst.Mark) bool {
	tok := p.cur()
	switch tok.Kind {
	case token.Directive:
		return p.parseImport(m, false)
	case token.Ident:
		switch p.classifyDecl() {
		case declImport:
			return p.parseImport(m, true)
		case declConst:
			return p.parseBound(m, cst.ConstDeclaration)
		case declVar:
			return p.parseBound(m, cst.VarDeclaration)
		case declTyped:
			return p.parseTypedDecl(m)
		}
		p.errAt(diag.SynUnexpectedToken, p.peekPast(1),
			fmt.Sprintf("expected ':', '::' or ':=' after %q, found %s", tok.Text, describe(p.peekPast(1))))
		return false
	}
	p.unexpected(diag.SynUnexpectedToken, "declaration or #import")
	return false
}

// parseBound parses `name :: values` and `name := values`.
func (p *Parser) parseBound(m cst.Mark, kind cst.Kind) bool {
	p.bumpField(cst.Identifier, cst.FieldName)
	p.skipNewlines()
	p.bump(cst.Token)
	p.skipNewlines()
	if !p.parseValueList() {
		return false
	}
	p.b.Close(m, kind)
	return true
}

// parseTypedDecl parses the forms that start with a single colon:
//
//	name : : values      name : type : values
//	name : = values      name : type = values
//	name :               name : type
func (p *Parser) parseTypedDecl(m cst.Mark) bool {
	p.bumpField(cst.Identifier, cst.FieldName)
	p.skipNewlines()
	p.bump(cst.Token)

	if !p.at(token.Colon) && !p.at(token.Assign) && !p.atTerminator() {
		if !p.parseType(cst.FieldType) {
			return false
		}
	}

	switch {
	case p.at(token.Colon):
		p.bump(cst.Token)
		p.skipNewlines()
		if !p.parseValueList() {
			return false
		}
		p.b.Close(m, cst.ConstDeclaration)
	case p.at(token.Assign):
		p.bump(cst.Token)
		p.skipNewlines()
		if !p.parseValueList() {
			return false
		}
		p.b.Close(m, cst.VarDeclaration)
	case p.atTerminator():
		p.b.Close(m, cst.VarDeclaration)
	default:
		p.unexpected(diag.SynUnexpectedToken, "':', '=' or end of declaration")
		return false
	}
	return true
}

func (p *Parser) parseValueList() bool {
	for {
		if !p.parseValue(cst.FieldValue, true) {
			return false
		}
		if !p.at(token.Comma) {
			return true
		}
		p.bump(cst.Token)
		p.skipNewlines()
	}
}

// parseImport parses
//
//	#import [, modifier] "path"
//	#import "module", modifier "path"
//
// optionally preceded by `name ::`.
func (p *Parser) parseImport(m cst.Mark, named bool) bool {
	if named {
		p.bumpField(cst.Identifier, cst.FieldName)
		p.skipNewlines()
		p.bump(cst.Token)
		p.skipNewlines()
	}

	dir := p.cur()
	if dir.Text != token.DirectiveImport {
		p.unknownDirective(dir, []string{token.DirectiveImport}, "only #import may start a declaration")
		return false
	}
	p.bump(cst.Directive)

	hasModifier := false
	if p.at(token.Comma) {
		if !p.parseImportModifier() {
			return false
		}
		hasModifier = true
	}
	if !p.at(token.StringLit) {
		p.unexpected(diag.SynExpectImportPath, "import path string")
		return false
	}
	first := p.bumpString(cst.FieldPath)

	if !hasModifier && p.at(token.Comma) {
		p.b.SetField(first, cst.FieldModule)
		if !p.parseImportModifier() {
			return false
		}
		if !p.at(token.StringLit) {
			p.unexpected(diag.SynExpectImportPath, "import path string")
			return false
		}
		p.bumpString(cst.FieldPath)
	}

	p.b.Close(m, cst.ImportDeclaration)
	return true
}

func (p *Parser) parseImportModifier() bool {
	p.bump(cst.Token)
	p.skipNewlines()
	tok := p.cur()
	if tok.Kind == token.Ident && slices.Contains(importModifiers, tok.Text) {
		p.bumpField(cst.Token, cst.FieldModifier)
		p.skipNewlines()
		return true
	}
	var notes []diag.Note
	if tok.Kind == token.Ident {
		if hint := diag.DidYouMean(tok.Text, importModifiers); hint != "" {
			notes = append(notes, diag.Note{Span: tok.Span, Msg: hint})
		}
	}
	p.errAt(diag.SynUnexpectedToken, tok,
		fmt.Sprintf("expected import modifier file, dir or string, found %s", describe(tok)), notes...)
	return false
}

// unknownDirective reports dir with a spelling hint against known.
func (p *Parser) unknownDirective(dir token.Token, known []string, why string) {
	b := diag.ReportError(p.rep, diag.SynUnexpectedToken, dir.Span,
		fmt.Sprintf("unexpected directive %s", describe(dir)))
	if c := diag.Closest(dir.Text, known, diag.MaxSuggestDistance); c != "" && c != dir.Text {
		b.WithNote(dir.Span, "did you mean "+c+"?").
			WithFix("replace with "+c, diag.FixEdit{Span: dir.Span, NewText: c})
	} else if why != "" {
		b.WithNote(dir.Span, why)
	}
	if !p.enough() {
		p.errs++
		b.Emit()
	}
}
