package cst

import "strings"

type view struct {
	t  *Tree
	id NodeID
}

func (v view) ID() NodeID { return v.id }

func (v view) field(f Field) NodeID { return v.t.ChildByField(v.id, f) }

func (v view) fields(f Field) []NodeID { return v.t.ChildrenByField(v.id, f) }

func (t *Tree) viewOf(id NodeID, k Kind) (view, bool) {
	if t.Kind(id) != k {
		return view{}, false
	}
	return view{t: t, id: id}, true
}

// ConstDecl: name :: values  |  name : [type] : values
type ConstDecl struct{ view }

func (t *Tree) ConstDecl(id NodeID) (ConstDecl, bool) {
	v, ok := t.viewOf(id, ConstDeclaration)
	return ConstDecl{v}, ok
}

func (v ConstDecl) Name() NodeID     { return v.field(FieldName) }
func (v ConstDecl) Type() NodeID     { return v.field(FieldType) }
func (v ConstDecl) Values() []NodeID { return v.fields(FieldValue) }

// VarDecl: name := values  |  name : [type] [= values]
type VarDecl struct{ view }

func (t *Tree) VarDecl(id NodeID) (VarDecl, bool) {
	v, ok := t.viewOf(id, VarDeclaration)
	return VarDecl{v}, ok
}

func (v VarDecl) Name() NodeID     { return v.field(FieldName) }
func (v VarDecl) Type() NodeID     { return v.field(FieldType) }
func (v VarDecl) Values() []NodeID { return v.fields(FieldValue) }

type ImportDecl struct{ view }

func (t *Tree) ImportDecl(id NodeID) (ImportDecl, bool) {
	v, ok := t.viewOf(id, ImportDeclaration)
	return ImportDecl{v}, ok
}

func (v ImportDecl) Name() NodeID   { return v.field(FieldName) }
func (v ImportDecl) Module() NodeID { return v.field(FieldModule) }
func (v ImportDecl) Path() NodeID   { return v.field(FieldPath) }

// Modifier returns "file", "dir", "string" or "".
func (v ImportDecl) Modifier() string {
	if m := v.field(FieldModifier); m.IsValid() {
		return v.t.Text(m)
	}
	return ""
}

// PathValue is the path literal without quotes. Escapes are kept verbatim.
func (v ImportDecl) PathValue() string {
	return v.t.StringValue(v.Path())
}

// ModuleValue is the module literal of `#import "M", file "p"` without quotes.
func (v ImportDecl) ModuleValue() string {
	return v.t.StringValue(v.Module())
}

// StructType: struct [#directive] [(modifier)] { fields }  |  Name(args)
type StructTypeView struct{ view }

func (t *Tree) StructType(id NodeID) (StructTypeView, bool) {
	v, ok := t.viewOf(id, StructType)
	return StructTypeView{v}, ok
}

func (v StructTypeView) Directive() NodeID { return v.field(FieldDirective) }
func (v StructTypeView) Modifier() NodeID  { return v.field(FieldModifier) }
func (v StructTypeView) Block() NodeID {
	if blocks := v.t.childrenOfKind(v.id, StructBlock); len(blocks) > 0 {
		return blocks[0]
	}
	return NoNodeID
}

// TypeName is the identifier of a parameterized reference such as Pair(int).
func (v StructTypeView) TypeName() NodeID { return v.field(FieldType) }

// Arguments returns the argument list of a parameterized reference.
func (v StructTypeView) Arguments() NodeID {
	if !v.TypeName().IsValid() {
		return NoNodeID
	}
	for _, c := range v.t.Children(v.id) {
		if v.t.Kind(c) == ArgumentList {
			return c
		}
	}
	return NoNodeID
}

// Fields lists the FieldDeclaration nodes of the struct block.
func (v StructTypeView) Fields() []NodeID {
	var out []NodeID
	for _, c := range v.t.Children(v.Block()) {
		if v.t.Kind(c) == FieldDeclaration {
			out = append(out, c)
		}
	}
	return out
}

type FieldDecl struct{ view }

func (t *Tree) FieldDecl(id NodeID) (FieldDecl, bool) {
	v, ok := t.viewOf(id, FieldDeclaration)
	return FieldDecl{v}, ok
}

func (v FieldDecl) Names() []NodeID { return v.fields(FieldName) }
func (v FieldDecl) Type() NodeID    { return v.field(FieldType) }
func (v FieldDecl) Value() NodeID   { return v.field(FieldValue) }
func (v FieldDecl) Tag() NodeID     { return v.field(FieldTag) }

type StructLit struct{ view }

func (t *Tree) StructLiteral(id NodeID) (StructLit, bool) {
	v, ok := t.viewOf(id, StructLiteral)
	return StructLit{v}, ok
}

func (v StructLit) Type() NodeID { return v.field(FieldType) }
func (v StructLit) Body() NodeID { return v.field(FieldBody) }

// Elements lists the KeyedElement nodes of the body.
func (v StructLit) Elements() []NodeID {
	return v.t.childrenOfKind(v.Body(), KeyedElement)
}

type ArrayLit struct{ view }

func (t *Tree) ArrayLiteral(id NodeID) (ArrayLit, bool) {
	v, ok := t.viewOf(id, ArrayLiteral)
	return ArrayLit{v}, ok
}

// Type is NoNodeID for an untyped .[...] literal.
func (v ArrayLit) Type() NodeID { return v.field(FieldType) }
func (v ArrayLit) Body() NodeID { return v.field(FieldBody) }

// Elements lists the element expressions of the body.
func (v ArrayLit) Elements() []NodeID {
	return v.t.NamedChildren(v.Body())
}

// ArrayTypeView covers ArrayType, ArrayViewType and ImplicitLengthArrayType.
type ArrayTypeView struct{ view }

func (t *Tree) ArrayType(id NodeID) (ArrayTypeView, bool) {
	switch t.Kind(id) {
	case ArrayType, ArrayViewType, ImplicitLengthArrayType:
		return ArrayTypeView{view{t: t, id: id}}, true
	}
	return ArrayTypeView{}, false
}

func (v ArrayTypeView) Kind() Kind      { return v.t.Kind(v.id) }
func (v ArrayTypeView) Length() NodeID  { return v.field(FieldLength) }
func (v ArrayTypeView) Element() NodeID { return v.field(FieldElement) }

type KeyedElem struct{ view }

func (t *Tree) KeyedElement(id NodeID) (KeyedElem, bool) {
	v, ok := t.viewOf(id, KeyedElement)
	return KeyedElem{v}, ok
}

func (v KeyedElem) Key() NodeID   { return v.field(FieldKey) }
func (v KeyedElem) Value() NodeID { return v.field(FieldValue) }

// QualifiedTypeView is alias.Name where alias names an import.
type QualifiedTypeView struct{ view }

func (t *Tree) QualifiedType(id NodeID) (QualifiedTypeView, bool) {
	v, ok := t.viewOf(id, QualifiedType)
	return QualifiedTypeView{v}, ok
}

func (v QualifiedTypeView) Import() NodeID { return v.field(FieldImport) }
func (v QualifiedTypeView) Name() NodeID   { return v.field(FieldName) }

func (t *Tree) childrenOfKind(id NodeID, k Kind) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.Kind(c) == k {
			out = append(out, c)
		}
	}
	return out
}

// StringValue returns the body of an InterpretedStringLiteral without the
// surrounding quotes.
func (t *Tree) StringValue(id NodeID) string {
	if t.Kind(id) != InterpretedStringLiteral {
		return ""
	}
	var b strings.Builder
	for _, c := range t.Children(id) {
		if k := t.Kind(c); k == StringContent || k == EscapeSequence {
			b.WriteString(t.Text(c))
		}
	}
	return b.String()
}

// Statements returns the top-level items of the file: declarations, imports
// and error nodes, without terminator tokens.
func (t *Tree) Statements() []NodeID {
	return t.NamedChildren(t.Root)
}
