package parser

import (
	"fmt"
	"slices"

	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/token"
)

// structDirectives are the directives accepted between `struct` and its
// block.
var structDirectives = []string{
	"#type_info_none",
	"#type_info_procedures_are_void_pointers",
	"#type_info_no_size_complaint",
	"#no_padding",
}

func (p *Parser) parseType(f cst.Field) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	m := p.b.Open()
	switch p.cur().Kind {
	case token.Ident:
		switch next := p.peek(1); next.Kind {
		case token.LParen:
			return p.parseParamStruct(m, f)
		case token.Dot:
			if !p.isAlias(p.cur().Text) {
				p.errAt(diag.SynUnexpectedToken, next, "selector expressions are not supported; only an imported module can qualify a type")
				return false
			}
			return p.parseQualifiedType(m, f)
		}
		p.bumpField(cst.TypeIdentifier, f)
		return true
	case token.KwStruct:
		if !p.parseStructType(m) {
			return false
		}
		p.b.SetField(p.b.Last(), f)
		return true
	case token.LBracket:
		if !p.parseArrayType(m) {
			return false
		}
		p.b.SetField(p.b.Last(), f)
		return true
	}
	p.unexpected(diag.SynExpectType, "type")
	return false
}

// parseParamStruct parses a parameterized struct reference such as Pair(int, 4).
func (p *Parser) parseParamStruct(m cst.Mark, f cst.Field) bool {
	p.bumpField(cst.Identifier, cst.FieldType)
	if !p.parseArgumentList(cst.NoField) {
		return false
	}
	p.b.SetField(p.b.Close(m, cst.StructType), f)
	return true
}

// parseQualifiedType parses alias.Type.
func (p *Parser) parseQualifiedType(m cst.Mark, f cst.Field) bool {
	p.bumpField(cst.ImportIdentifier, cst.FieldImport)
	p.bump(cst.Token)
	p.skipNewlines()
	if !p.at(token.Ident) {
		p.unexpected(diag.SynExpectIdentifier, "type name after '.'")
		return false
	}
	p.bumpField(cst.TypeIdentifier, cst.FieldName)
	p.b.SetField(p.b.Close(m, cst.QualifiedType), f)
	return true
}

// parseStructType parses `struct [#directive] [(args)] { fields }` into a
// StructType closed at m.
func (p *Parser) parseStructType(m cst.Mark) bool {
	p.bump(cst.Token)
	p.skipNewlines()

	if tok := p.cur(); tok.Kind == token.Directive {
		if !slices.Contains(structDirectives, tok.Text) {
			b := diag.ReportWarning(p.rep, diag.SynUnexpectedToken, tok.Span,
				fmt.Sprintf("unknown struct directive %s", describe(tok)))
			if c := diag.Closest(tok.Text, structDirectives, diag.MaxSuggestDistance); c != "" {
				b.WithNote(tok.Span, "did you mean "+c+"?").
					WithFix("replace with "+c, diag.FixEdit{Span: tok.Span, NewText: c})
			}
			b.Emit()
		}
		p.bumpField(cst.DirectiveIdentifier, cst.FieldDirective)
		p.skipNewlines()
	}

	if p.at(token.LParen) {
		if !p.parseArgumentList(cst.FieldModifier) {
			return false
		}
		p.skipNewlines()
	}

	if !p.at(token.LBrace) {
		p.unexpected(diag.SynUnexpectedToken, "'{' to open the struct body")
		return false
	}
	if !p.parseStructBlock() {
		return false
	}
	p.b.Close(m, cst.StructType)
	return true
}

// parseStructBlock parses `{ field* }`. Newlines terminate fields inside.
// A broken field becomes an Error node and parsing resumes at the next one.
func (p *Parser) parseStructBlock() bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	m := p.b.Open()
	open := p.cur()
	p.bump(cst.Token)
	p.push(true)
	fr := p.frame()

	for {
		p.skipNewlines()
		switch p.cur().Kind {
		case token.RBrace:
			p.bump(cst.Token)
			p.pop()
			p.b.Close(m, cst.StructBlock)
			return true
		case token.EOF:
			p.closeErr(open, "}")
			return false
		case token.Semicolon, token.Nul:
			p.bump(cst.Token)
			continue
		}

		fm := p.b.Open()
		ok := p.parseFieldDecl(fm)
		if p.aborted {
			return false
		}
		if !ok {
			p.recover(fm, fr, true)
		}
	}
}

// parseFieldDecl parses `a, b: type [= value] terminator ["tag"]`. The
// terminator may be omitted before the closing brace.
func (p *Parser) parseFieldDecl(m cst.Mark) bool {
	for {
		if !p.at(token.Ident) {
			p.unexpected(diag.SynExpectIdentifier, "field name")
			return false
		}
		p.bumpField(cst.FieldIdentifier, cst.FieldName)
		if !p.at(token.Comma) {
			break
		}
		p.bump(cst.Token)
		p.skipNewlines()
	}

	if !p.expect(token.Colon, diag.SynUnexpectedToken, "':' after field name") {
		return false
	}
	p.skipNewlines()
	if !p.parseType(cst.FieldType) {
		return false
	}
	if p.at(token.Assign) {
		p.bump(cst.Token)
		p.skipNewlines()
		if !p.parseValue(cst.FieldValue, false) {
			return false
		}
	}

	switch p.cur().Kind {
	case token.Newline, token.Semicolon, token.Nul:
		p.bump(cst.Token)
		p.skipNewlines()
		if p.at(token.StringLit) {
			p.bumpString(cst.FieldTag)
		}
	case token.RBrace, token.EOF:
		// the block reports a missing '}'
	default:
		p.unexpected(diag.SynExpectTerminator, "newline or ';' after field")
		return false
	}
	p.b.Close(m, cst.FieldDeclaration)
	return true
}

// parseArrayType parses [N]T, []T and [..]T into a node closed at m.
func (p *Parser) parseArrayType(m cst.Mark) bool {
	open := p.cur()
	p.bump(cst.Token)
	p.push(false)

	kind := cst.ArrayType
	switch {
	case p.at(token.RBracket):
		kind = cst.ArrayViewType
	case p.at(token.DotDot):
		p.bump(cst.Token)
		kind = cst.ImplicitLengthArrayType
	default:
		if !p.parseValue(cst.FieldLength, false) {
			return false
		}
	}
	if !p.at(token.RBracket) {
		if p.at(token.EOF) {
			p.closeErr(open, "]")
		} else {
			p.unexpected(diag.SynUnclosedDelimiter, "']'")
		}
		return false
	}
	p.bump(cst.Token)
	p.pop()
	p.skipNewlines()

	if !p.parseType(cst.FieldElement) {
		return false
	}
	p.b.Close(m, kind)
	return true
}

// parseArgumentList parses `(value, ...)` with an optional trailing comma.
func (p *Parser) parseArgumentList(f cst.Field) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	m := p.b.Open()
	open := p.cur()
	p.bump(cst.Token)
	p.push(false)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if !p.parseValue(cst.NoField, false) {
			return false
		}
		if !p.at(token.Comma) {
			break
		}
		p.bump(cst.Token)
	}
	if !p.at(token.RParen) {
		p.closeErr(open, ")")
		return false
	}
	p.bump(cst.Token)
	p.pop()
	p.b.SetField(p.b.Close(m, cst.ArgumentList), f)
	return true
}
