package parser

import (
	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/token"
)

// parseValue parses one expression. With allowTypes a bare type is accepted
// as well, as on the right of `::`.
func (p *Parser) parseValue(f cst.Field, allowTypes bool) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	m := p.b.Open()
	tok := p.cur()
	switch tok.Kind {
	case token.IntLit:
		p.bumpField(cst.IntLiteral, f)
		return true
	case token.FloatLit:
		p.bumpField(cst.FloatLiteral, f)
		return true
	case token.KwNull:
		p.bumpField(cst.Null, f)
		return true
	case token.KwTrue:
		p.bumpField(cst.True, f)
		return true
	case token.KwFalse:
		p.bumpField(cst.False, f)
		return true
	case token.KwIota:
		p.bumpField(cst.Iota, f)
		return true
	case token.StringLit:
		p.bumpString(f)
		return true
	case token.Ident:
		return p.parseIdentValue(m, f, allowTypes)
	case token.KwStruct:
		if !p.parseStructType(m) {
			return false
		}
		return p.finishType(m, f, allowTypes)
	case token.LBracket:
		if !p.parseArrayType(m) {
			return false
		}
		return p.finishType(m, f, allowTypes)
	case token.DotLBracket:
		if !p.parseArrayValue() {
			return false
		}
		p.b.SetField(p.b.Close(m, cst.ArrayLiteral), f)
		return true
	case token.DotLBrace:
		p.errAt(diag.SynUntypedLiteral, tok, "struct literal needs a type before '.{'")
		return false
	}
	p.unexpected(diag.SynExpectExpression, "expression")
	return false
}

func (p *Parser) parseIdentValue(m cst.Mark, f cst.Field, allowTypes bool) bool {
	switch next := p.peek(1); next.Kind {
	case token.LParen:
		p.bumpField(cst.Identifier, cst.FieldType)
		if !p.parseArgumentList(cst.NoField) {
			return false
		}
		p.b.Close(m, cst.StructType)
		return p.finishType(m, f, allowTypes)
	case token.Dot:
		if !p.isAlias(p.cur().Text) {
			p.errAt(diag.SynUnexpectedToken, next, "selector expressions are not supported; only an imported module can qualify a type")
			return false
		}
		if !p.parseQualifiedType(m, cst.NoField) {
			return false
		}
		return p.finishType(m, f, allowTypes)
	}

	id := p.bump(cst.Identifier)
	if p.literalFollows(token.DotLBrace) {
		p.b.SetKind(id, cst.TypeIdentifier)
		p.b.SetField(id, cst.FieldType)
		if !p.parseStructValue() {
			return false
		}
		p.b.SetField(p.b.Close(m, cst.StructLiteral), f)
		return true
	}
	p.b.SetField(id, f)
	return true
}

// finishType completes a value that began with a type node, now the single
// node pending at m: either a literal of that type or the type itself.
func (p *Parser) finishType(m cst.Mark, f cst.Field, allowTypes bool) bool {
	typ := p.b.Last()
	suffix, lit := token.DotLBrace, cst.StructLiteral
	switch p.b.Kind(typ) {
	case cst.ArrayType, cst.ArrayViewType, cst.ImplicitLengthArrayType:
		suffix, lit = token.DotLBracket, cst.ArrayLiteral
	}

	if p.literalFollows(suffix) {
		p.b.SetField(typ, cst.FieldType)
		var ok bool
		if suffix == token.DotLBrace {
			ok = p.parseStructValue()
		} else {
			ok = p.parseArrayValue()
		}
		if !ok {
			return false
		}
		p.b.SetField(p.b.Close(m, lit), f)
		return true
	}

	if !allowTypes {
		p.report(diag.SynExpectExpression, diag.SevError, p.b.Span(typ), "expected expression, found type")
		return false
	}
	p.b.SetField(typ, f)
	return true
}

// parseStructValue parses `.{ key = value, ... }`.
func (p *Parser) parseStructValue() bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	m := p.b.Open()
	open := p.cur()
	p.bump(cst.Token)
	p.push(false)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		em := p.b.Open()
		if !p.parseValue(cst.FieldKey, false) {
			return false
		}
		if !p.at(token.Assign) {
			p.unexpected(diag.SynExpectKeyedElement, "'=' in keyed element")
			return false
		}
		p.bump(cst.Token)
		if !p.parseValue(cst.FieldValue, false) {
			return false
		}
		p.b.Close(em, cst.KeyedElement)
		if !p.at(token.Comma) {
			break
		}
		p.bump(cst.Token)
	}
	if !p.at(token.RBrace) {
		p.closeErr(open, "}")
		return false
	}
	p.bump(cst.Token)
	p.pop()
	p.b.SetField(p.b.Close(m, cst.StructValue), cst.FieldBody)
	return true
}

// parseArrayValue parses `.[ value, ... ]`.
func (p *Parser) parseArrayValue() bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	m := p.b.Open()
	open := p.cur()
	p.bump(cst.Token)
	p.push(false)
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if !p.parseValue(cst.NoField, false) {
			return false
		}
		if !p.at(token.Comma) {
			break
		}
		p.bump(cst.Token)
	}
	if !p.at(token.RBracket) {
		p.closeErr(open, "]")
		return false
	}
	p.bump(cst.Token)
	p.pop()
	p.b.SetField(p.b.Close(m, cst.ArrayValue), cst.FieldBody)
	return true
}
