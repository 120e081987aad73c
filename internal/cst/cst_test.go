package cst

import (
	"testing"

	"jaiparse/internal/source"
	"jaiparse/internal/token"
)

func sp(s, e uint32) source.Span { return source.Span{Start: s, End: e} }

// buildConst hand-builds "x :: 5 // c\n".
func buildConst(t *testing.T) *Tree {
	t.Helper()
	src := []byte("x :: 5 // c\n")
	b := NewBuilder(src, 0, 8)
	decl := b.Open()
	b.SetField(b.Leaf(Identifier, token.Ident, sp(0, 1)), FieldName)
	b.Leaf(Token, token.ColonColon, sp(2, 4))
	b.SetField(b.Leaf(IntLiteral, token.IntLit, sp(5, 6)), FieldValue)
	b.Close(decl, ConstDeclaration)
	b.Extra(Comment, sp(7, 11))
	b.Leaf(Token, token.Newline, sp(11, 12))
	return b.Finish()
}

func TestBuilderSpansAndParents(t *testing.T) {
	tree := buildConst(t)
	root, ok := tree.Node(tree.Root)
	if !ok || root.Kind != SourceFile || root.Span != sp(0, 12) {
		t.Fatalf("root = %+v", root)
	}
	stmts := tree.Statements()
	if len(stmts) != 1 {
		t.Fatalf("statements = %v", stmts)
	}
	decl := stmts[0]
	if got := tree.Span(decl); got != sp(0, 6) {
		t.Fatalf("decl span = %v", got)
	}
	for _, c := range tree.Children(decl) {
		if tree.Parent(c) != decl {
			t.Fatalf("child %d has parent %d", c, tree.Parent(c))
		}
	}
	if got := tree.Text(decl); got != "x :: 5" {
		t.Fatalf("Text = %q", got)
	}
}

func TestExtrasAttachToSmallestContainingNode(t *testing.T) {
	tree := buildConst(t)
	if len(tree.Extras) != 1 {
		t.Fatalf("extras = %v", tree.Extras)
	}
	// The comment sits between the declaration and the newline: owned by the root.
	if got := tree.ExtrasOf(tree.Root); len(got) != 1 || got[0] != tree.Extras[0] {
		t.Fatalf("ExtrasOf(root) = %v", got)
	}
	if tree.AttachedExtras() != len(tree.Extras) {
		t.Fatal("unattached extras")
	}

	src := []byte("v := T.{ /* in */ }\n")
	b := NewBuilder(src, 0, 8)
	decl := b.Open()
	b.SetField(b.Leaf(Identifier, token.Ident, sp(0, 1)), FieldName)
	b.Leaf(Token, token.ColonAssign, sp(2, 4))
	lit := b.Open()
	b.SetField(b.Leaf(TypeIdentifier, token.Ident, sp(5, 6)), FieldType)
	body := b.Open()
	b.Leaf(Token, token.DotLBrace, sp(6, 8))
	b.Leaf(Token, token.RBrace, sp(18, 19))
	bodyID := b.Close(body, StructValue)
	b.SetField(bodyID, FieldBody)
	b.SetField(b.Close(lit, StructLiteral), FieldValue)
	b.Close(decl, VarDeclaration)
	b.Extra(Comment, sp(9, 17))
	b.Leaf(Token, token.Newline, sp(19, 20))
	tree = b.Finish()

	if got := tree.ExtrasOf(bodyID); len(got) != 1 {
		t.Fatalf("comment should attach to StructValue, got %v", got)
	}
	want := "(SourceFile (VarDeclaration name: (Identifier) value: (StructLiteral type: (TypeIdentifier) body: (StructValue (Comment)))))"
	if got := tree.SExpr(tree.Root, SExprOptions{Extras: true}); got != want {
		t.Fatalf("SExpr:\n got %s\nwant %s", got, want)
	}
	if got := tree.NodeAt(6); tree.Kind(got) != Token {
		t.Fatalf("NodeAt(6) = %v", tree.Kind(got))
	}
}

func TestSExprText(t *testing.T) {
	tree := buildConst(t)
	want := `(SourceFile (ConstDeclaration name: (Identifier "x") value: (IntLiteral "5")))`
	if got := tree.SExpr(tree.Root, SExprOptions{Text: true}); got != want {
		t.Fatalf("got %s", got)
	}
	if tree.String() != "(SourceFile (ConstDeclaration name: (Identifier) value: (IntLiteral)))" {
		t.Fatalf("String() = %s", tree.String())
	}
}

func TestViews(t *testing.T) {
	tree := buildConst(t)
	decl := tree.Statements()[0]
	v, ok := tree.ConstDecl(decl)
	if !ok {
		t.Fatal("ConstDecl view rejected a ConstDeclaration")
	}
	if tree.Text(v.Name()) != "x" || v.Type().IsValid() || len(v.Values()) != 1 {
		t.Fatalf("unexpected view contents")
	}
	if _, ok := tree.VarDecl(decl); ok {
		t.Fatal("VarDecl view accepted a ConstDeclaration")
	}
	if _, ok := tree.ArrayType(decl); ok {
		t.Fatal("ArrayType view accepted a ConstDeclaration")
	}
}

func TestEmptyCloseUsesLastPosition(t *testing.T) {
	b := NewBuilder([]byte("ab"), 0, 4)
	b.Leaf(Identifier, token.Ident, sp(0, 2))
	id := b.Close(b.Open(), Error)
	tree := b.Finish()
	if got := tree.Span(id); got != sp(2, 2) {
		t.Fatalf("empty node span = %v", got)
	}
	if !tree.HasErrors() {
		t.Fatal("HasErrors should see the Error node")
	}
}

func TestSupertypesAreDisjoint(t *testing.T) {
	groups := map[Supertype][]Kind{
		SuperType:       {TypeIdentifier, StructType, ArrayType, ArrayViewType, ImplicitLengthArrayType, QualifiedType},
		SuperExpression: {Identifier, StructLiteral, ArrayLiteral, InterpretedStringLiteral, IntLiteral, FloatLiteral, Null, True, False, Iota},
		SuperStatement:  {ConstDeclaration, VarDeclaration},
	}
	for s, want := range groups {
		got := s.Members()
		if len(got) != len(want) {
			t.Fatalf("%v members = %v", s, got)
		}
	}
	if Token.Named() || !Error.Named() {
		t.Fatal("Named() wrong")
	}
	if ImportDeclaration.Supertype() != SuperNone {
		t.Fatal("imports are top-level directives, not statements")
	}
}

func TestFieldNamesRoundTrip(t *testing.T) {
	for f := FieldName; f <= FieldDirective; f++ {
		got, ok := ParseField(f.String())
		if !ok || got != f {
			t.Errorf("ParseField(%q) = %v,%v", f.String(), got, ok)
		}
	}
	if _, ok := ParseField(""); ok {
		t.Fatal("empty field name must not parse")
	}
}
