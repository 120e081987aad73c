package parser_test

import (
	"strings"
	"testing"

	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/parser"
)

const str = "(InterpretedStringLiteral (StringContent))"

func TestDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"const", "x :: 5", "(SourceFile (ConstDeclaration name: (Identifier) value: (IntLiteral)))"},
		{"var inferred", "x := 5", "(SourceFile (VarDeclaration name: (Identifier) value: (IntLiteral)))"},
		{"var typed", "x: int = 5", "(SourceFile (VarDeclaration name: (Identifier) type: (TypeIdentifier) value: (IntLiteral)))"},
		{"var no value", "x: int\n", "(SourceFile (VarDeclaration name: (Identifier) type: (TypeIdentifier)))"},
		{"var split", "x : = 5", "(SourceFile (VarDeclaration name: (Identifier) value: (IntLiteral)))"},
		{"const split", "x : : 5", "(SourceFile (ConstDeclaration name: (Identifier) value: (IntLiteral)))"},
		{"const typed", "x : int : 5", "(SourceFile (ConstDeclaration name: (Identifier) type: (TypeIdentifier) value: (IntLiteral)))"},
		{"value list", "a :: 1,\n  2.5", "(SourceFile (ConstDeclaration name: (Identifier) value: (IntLiteral) value: (FloatLiteral)))"},
		{"keywords", "k :: null, true, false, iota", "(SourceFile (ConstDeclaration name: (Identifier) value: (Null) value: (True) value: (False) value: (Iota)))"},
		{"semicolons", "a :: 1; b :: 2;", "(SourceFile (ConstDeclaration name: (Identifier) value: (IntLiteral)) (ConstDeclaration name: (Identifier) value: (IntLiteral)))"},
		{"type alias", "T :: int", "(SourceFile (ConstDeclaration name: (Identifier) value: (Identifier)))"},
		{"empty", "\n\n", "(SourceFile)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := parse(t, tt.src)
			wantSExpr(t, tree, tt.want)
		})
	}
}

func TestDeclarationKindViews(t *testing.T) {
	tree := parseClean(t, "x :: 5\ny := 5\nz: int = 5\n")
	stmts := tree.Statements()
	if len(stmts) != 3 {
		t.Fatalf("statements = %d, want 3", len(stmts))
	}
	c, ok := tree.ConstDecl(stmts[0])
	if !ok || tree.Text(c.Name()) != "x" || len(c.Values()) != 1 || tree.Text(c.Values()[0]) != "5" {
		t.Fatalf("const view wrong: %s", tree.SExpr(stmts[0], cst.SExprOptions{Text: true}))
	}
	for i, wantTyped := range []bool{false, true} {
		v, ok := tree.VarDecl(stmts[i+1])
		if !ok {
			t.Fatalf("statement %d is %v", i+1, tree.Kind(stmts[i+1]))
		}
		if v.Type().IsValid() != wantTyped {
			t.Errorf("statement %d type presence = %v", i+1, v.Type().IsValid())
		}
		if vals := v.Values(); len(vals) != 1 || tree.Text(vals[0]) != "5" {
			t.Errorf("statement %d values = %v", i+1, vals)
		}
	}
}

func TestImports(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     string
		modifier string
		path     string
	}{
		{
			name: "plain",
			src:  `#import "Basic"`,
			want: "(SourceFile (ImportDeclaration (Directive) path: " + str + "))",
			path: "Basic",
		},
		{
			name:     "named with module and file",
			src:      `Foo :: #import "Foo", file "foo.jai"`,
			want:     "(SourceFile (ImportDeclaration name: (Identifier) (Directive) module: " + str + " path: " + str + "))",
			modifier: "file",
			path:     "foo.jai",
		},
		{
			name:     "dir modifier",
			src:      `#import, dir "modules/math"`,
			want:     "(SourceFile (ImportDeclaration (Directive) path: " + str + "))",
			modifier: "dir",
			path:     "modules/math",
		},
		{
			name:     "string modifier",
			src:      "M :: #import,\n  string \"x :: 1\"",
			want:     "(SourceFile (ImportDeclaration name: (Identifier) (Directive) path: " + str + "))",
			modifier: "string",
			path:     "x :: 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseClean(t, tt.src)
			wantSExpr(t, tree, tt.want)
			imp, ok := tree.ImportDecl(tree.Statements()[0])
			if !ok {
				t.Fatal("no import declaration")
			}
			if got := imp.Modifier(); got != tt.modifier {
				t.Errorf("modifier = %q, want %q", got, tt.modifier)
			}
			if got := imp.PathValue(); got != tt.path {
				t.Errorf("path = %q, want %q", got, tt.path)
			}
		})
	}
}

func TestStructs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "fields",
			src: `Vec2 :: struct {
    x, y: float;
    z: float = 1.0
    id: int; "json:id"
}
`,
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (StructType (StructBlock" +
				" (FieldDeclaration name: (FieldIdentifier) name: (FieldIdentifier) type: (TypeIdentifier))" +
				" (FieldDeclaration name: (FieldIdentifier) type: (TypeIdentifier) value: (FloatLiteral))" +
				" (FieldDeclaration name: (FieldIdentifier) type: (TypeIdentifier) tag: " + str + ")))))",
		},
		{
			name: "one line",
			src:  "S :: struct { a: int }",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (StructType (StructBlock (FieldDeclaration name: (FieldIdentifier) type: (TypeIdentifier))))))",
		},
		{
			name: "empty",
			src:  "S :: struct {}",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (StructType (StructBlock))))",
		},
		{
			name: "directive and modifier",
			src:  "S :: struct #no_padding (4) { a: u8 }",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (StructType directive: (DirectiveIdentifier) modifier: (ArgumentList (IntLiteral))" +
				" (StructBlock (FieldDeclaration name: (FieldIdentifier) type: (TypeIdentifier))))))",
		},
		{
			name: "nested struct field",
			src:  "S :: struct {\n  inner: struct { a: int }\n  b: [4]u8\n}",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (StructType (StructBlock" +
				" (FieldDeclaration name: (FieldIdentifier) type: (StructType (StructBlock (FieldDeclaration name: (FieldIdentifier) type: (TypeIdentifier)))))" +
				" (FieldDeclaration name: (FieldIdentifier) type: (ArrayType length: (IntLiteral) element: (TypeIdentifier)))))))",
		},
		{
			name: "parameterized reference",
			src:  "p: Pair(int, 4)",
			want: "(SourceFile (VarDeclaration name: (Identifier) type: (StructType type: (Identifier) (ArgumentList (Identifier) (IntLiteral)))))",
		},
		{
			name: "struct type literal",
			src:  "v :: struct { a: int }.{ a = 1 }",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (StructLiteral type: (StructType (StructBlock (FieldDeclaration name: (FieldIdentifier) type: (TypeIdentifier))))" +
				" body: (StructValue (KeyedElement key: (Identifier) value: (IntLiteral))))))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantSExpr(t, parseClean(t, tt.src), tt.want)
		})
	}
}

func TestStructViews(t *testing.T) {
	tree := parseClean(t, "S :: struct #no_padding { a, b: int = 3; \"tag\" }")
	c, _ := tree.ConstDecl(tree.Statements()[0])
	st, ok := tree.StructType(c.Values()[0])
	if !ok {
		t.Fatal("value is not a struct type")
	}
	if got := tree.Text(st.Directive()); got != "#no_padding" {
		t.Errorf("directive = %q", got)
	}
	fields := st.Fields()
	if len(fields) != 1 {
		t.Fatalf("fields = %d", len(fields))
	}
	fd, _ := tree.FieldDecl(fields[0])
	if names := fd.Names(); len(names) != 2 || tree.Text(names[1]) != "b" {
		t.Errorf("names = %v", names)
	}
	if got := tree.StringValue(fd.Tag()); got != "tag" {
		t.Errorf("tag = %q", got)
	}
	if got := tree.Text(fd.Value()); got != "3" {
		t.Errorf("default = %q", got)
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "struct literal",
			src:  "v :: Vec2.{ x = 1, y = 2 }",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (StructLiteral type: (TypeIdentifier) body: (StructValue" +
				" (KeyedElement key: (Identifier) value: (IntLiteral)) (KeyedElement key: (Identifier) value: (IntLiteral))))))",
		},
		{
			name: "array literal",
			src:  "a :: [3]int.[1,2,3]",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (ArrayLiteral type: (ArrayType length: (IntLiteral) element: (TypeIdentifier))" +
				" body: (ArrayValue (IntLiteral) (IntLiteral) (IntLiteral)))))",
		},
		{
			name: "implicit length",
			src:  `c :: [..]string.[ "a", ]`,
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (ArrayLiteral type: (ImplicitLengthArrayType element: (TypeIdentifier)) body: (ArrayValue " + str + "))))",
		},
		{
			name: "untyped array",
			src:  "d :: .[1, 2.5,]",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (ArrayLiteral body: (ArrayValue (IntLiteral) (FloatLiteral)))))",
		},
		{
			name: "array view type",
			src:  "b: []int",
			want: "(SourceFile (VarDeclaration name: (Identifier) type: (ArrayViewType element: (TypeIdentifier))))",
		},
		{
			name: "nested array type",
			src:  "m: [2][N]int",
			want: "(SourceFile (VarDeclaration name: (Identifier) type: (ArrayType length: (IntLiteral) element: (ArrayType length: (Identifier) element: (TypeIdentifier)))))",
		},
		{
			name: "multiline struct literal",
			src:  "v :: Foo.{\n  x = 1,\n  y = .[2,\n 3]\n}\n",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (StructLiteral type: (TypeIdentifier) body: (StructValue" +
				" (KeyedElement key: (Identifier) value: (IntLiteral))" +
				" (KeyedElement key: (Identifier) value: (ArrayLiteral body: (ArrayValue (IntLiteral) (IntLiteral))))))))",
		},
		{
			name: "suffix across newline inside brackets",
			src:  "a :: .[Vec2\n.{ x = 1 }]",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (ArrayLiteral body: (ArrayValue" +
				" (StructLiteral type: (TypeIdentifier) body: (StructValue (KeyedElement key: (Identifier) value: (IntLiteral))))))))",
		},
		{
			name: "qualified type",
			src:  "M :: #import \"m\"\nv: M.Vec = M.Vec.{ x = 1 }",
			want: "(SourceFile (ImportDeclaration name: (Identifier) (Directive) path: " + str + ")" +
				" (VarDeclaration name: (Identifier) type: (QualifiedType import: (ImportIdentifier) name: (TypeIdentifier))" +
				" value: (StructLiteral type: (QualifiedType import: (ImportIdentifier) name: (TypeIdentifier)) body: (StructValue (KeyedElement key: (Identifier) value: (IntLiteral))))))",
		},
		{
			name: "parameterized literal",
			src:  "p :: Pair(int).{ a = 1 }",
			want: "(SourceFile (ConstDeclaration name: (Identifier) value: (StructLiteral type: (StructType type: (Identifier) (ArgumentList (Identifier)))" +
				" body: (StructValue (KeyedElement key: (Identifier) value: (IntLiteral))))))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantSExpr(t, parseClean(t, tt.src), tt.want)
		})
	}
}

func TestLiteralViews(t *testing.T) {
	tree := parseClean(t, "a :: [3]int.[1,2,3]\nv :: Vec2.{ x = 1, y = 2 }")
	stmts := tree.Statements()

	c, _ := tree.ConstDecl(stmts[0])
	al, ok := tree.ArrayLiteral(c.Values()[0])
	if !ok {
		t.Fatal("not an array literal")
	}
	at, ok := tree.ArrayType(al.Type())
	if !ok || at.Kind() != cst.ArrayType || tree.Text(at.Length()) != "3" || tree.Text(at.Element()) != "int" {
		t.Fatalf("array type = %s", tree.SExpr(al.Type(), cst.SExprOptions{Text: true}))
	}
	if n := len(al.Elements()); n != 3 {
		t.Errorf("elements = %d", n)
	}

	c, _ = tree.ConstDecl(stmts[1])
	sl, ok := tree.StructLiteral(c.Values()[0])
	if !ok || tree.Text(sl.Type()) != "Vec2" {
		t.Fatal("not a Vec2 struct literal")
	}
	var keys []string
	for _, el := range sl.Elements() {
		kv, _ := tree.KeyedElement(el)
		keys = append(keys, tree.Text(kv.Key())+"="+tree.Text(kv.Value()))
	}
	if got := strings.Join(keys, ","); got != "x=1,y=2" {
		t.Errorf("keyed elements = %s", got)
	}
}

func TestLiteralDoesNotCrossTerminator(t *testing.T) {
	tree, diags := parse(t, "a :: Vec2\n.{ x = 1 }")
	wantSExpr(t, tree, "(SourceFile (ConstDeclaration name: (Identifier) value: (Identifier)) (Error))")
	if got := codes(diags); got != diag.SynUnexpectedToken.ID() {
		t.Errorf("codes = %s", got)
	}

	tree, _ = parse(t, "b :: [2]int\n.[1, 2]")
	wantSExpr(t, tree, "(SourceFile (ConstDeclaration name: (Identifier) value: (ArrayType length: (IntLiteral) element: (TypeIdentifier))) (Error))")
}

func TestStrings(t *testing.T) {
	tree := parseClean(t, `s :: "\x41\u0041\U00000041"`)
	wantSExpr(t, tree, "(SourceFile (ConstDeclaration name: (Identifier) value: (InterpretedStringLiteral (EscapeSequence) (EscapeSequence) (EscapeSequence))))")
	escapes := tree.Find(cst.EscapeSequence)
	want := []string{`\x41`, `\u0041`, `\U00000041`}
	for i, id := range escapes {
		n, _ := tree.Node(id)
		if n.Has(cst.FlagInvalid) || tree.Text(id) != want[i] {
			t.Errorf("escape %d = %q invalid=%v", i, tree.Text(id), n.Has(cst.FlagInvalid))
		}
	}
	if got := tree.StringValue(tree.Find(cst.InterpretedStringLiteral)[0]); got != `\x41\u0041\U00000041` {
		t.Errorf("value = %q", got)
	}

	tree, diags := parse(t, `s :: "a\x4"`)
	if got := codes(diags); got != diag.LexInvalidEscape.ID() {
		t.Fatalf("codes = %s", got)
	}
	n, _ := tree.Node(tree.Find(cst.EscapeSequence)[0])
	if !n.Has(cst.FlagInvalid) {
		t.Error("short \\x escape not flagged")
	}

	tree, diags = parse(t, "s :: \"abc\nt :: 1")
	if got := codes(diags); got != diag.LexUnterminatedString.ID() {
		t.Fatalf("codes = %s", got)
	}
	n, _ = tree.Node(tree.Find(cst.InterpretedStringLiteral)[0])
	if !n.Has(cst.FlagUnterminated) {
		t.Error("unterminated string not flagged")
	}
	if len(tree.Statements()) != 2 {
		t.Errorf("statements = %d, want 2", len(tree.Statements()))
	}
}

func TestErrorRecovery(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  string
		codes string
	}{
		{
			name:  "missing value",
			src:   "x :: )\ny :: 5",
			want:  "(SourceFile (Error name: (Identifier)) (ConstDeclaration name: (Identifier) value: (IntLiteral)))",
			codes: "SYN2004",
		},
		{
			name:  "broken literal",
			src:   "x :: Foo.{ a = }\ny :: 2",
			want:  "(SourceFile (Error name: (Identifier) type: (TypeIdentifier) key: (Identifier)) (ConstDeclaration name: (Identifier) value: (IntLiteral)))",
			codes: "SYN2004",
		},
		{
			name:  "unclosed bracket stops at next declaration",
			src:   "x :: .[1, 2\ny :: 3",
			want:  "(SourceFile (Error name: (Identifier) (IntLiteral) (IntLiteral)) (ConstDeclaration name: (Identifier) value: (IntLiteral)))",
			codes: "SYN2001",
		},
		{
			name:  "trailing junk",
			src:   "x :: 1 2\ny :: 3",
			want:  "(SourceFile (Error (ConstDeclaration name: (Identifier) value: (IntLiteral))) (ConstDeclaration name: (Identifier) value: (IntLiteral)))",
			codes: "SYN2006",
		},
		{
			name:  "bare identifier",
			src:   "x\ny :: 3",
			want:  "(SourceFile (Error) (ConstDeclaration name: (Identifier) value: (IntLiteral)))",
			codes: "SYN2001",
		},
		{
			name:  "broken field",
			src:   "S :: struct {\n  a: = 3\n  b: int\n}",
			want:  "(SourceFile (ConstDeclaration name: (Identifier) value: (StructType (StructBlock (Error name: (FieldIdentifier)) (FieldDeclaration name: (FieldIdentifier) type: (TypeIdentifier))))))",
			codes: "SYN2003",
		},
		{
			name:  "unclosed struct",
			src:   "S :: struct { a: int",
			want:  "(SourceFile (Error name: (Identifier) (FieldDeclaration name: (FieldIdentifier) type: (TypeIdentifier))))",
			codes: "SYN2002",
		},
		{
			name:  "missing key value separator",
			src:   "v :: V.{ a 1 }",
			want:  "(SourceFile (Error name: (Identifier) type: (TypeIdentifier) key: (Identifier)))",
			codes: "SYN2009",
		},
		{
			name:  "stray closer",
			src:   "}\nx :: 1",
			want:  "(SourceFile (Error) (ConstDeclaration name: (Identifier) value: (IntLiteral)))",
			codes: "SYN2001",
		},
		{
			name:  "unknown character",
			src:   "x :: $\ny :: 1",
			want:  "(SourceFile (Error name: (Identifier)) (ConstDeclaration name: (Identifier) value: (IntLiteral)))",
			codes: "LEX1001",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, diags := parse(t, tt.src)
			wantSExpr(t, tree, tt.want)
			if got := codes(diags); got != tt.codes {
				t.Errorf("codes = %s, want %s", got, tt.codes)
			}
			if !tree.HasErrors() {
				t.Error("HasErrors = false")
			}
		})
	}
}

func TestUnsupportedForms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"selector", "a :: b.c", diag.SynUnexpectedToken, "selector"},
		{"selector in type position", "x : a.B = 1", diag.SynUnexpectedToken, "selector"},
		{"untyped struct literal", "a :: .{ x = 1 }", diag.SynUntypedLiteral, "needs a type"},
		{"type as argument", "a :: Foo(1, [2]int)", diag.SynExpectExpression, "found type"},
		{"type as element", "a :: .[int, []int]", diag.SynExpectExpression, "found type"},
		{"missing type", "a : [3] = 1", diag.SynExpectType, "expected type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := parse(t, tt.src)
			if len(diags) != 1 {
				t.Fatalf("diagnostics = %s", codes(diags))
			}
			if diags[0].Code != tt.code || !strings.Contains(diags[0].Message, tt.msg) {
				t.Errorf("got %s %q", diags[0].Code.ID(), diags[0].Message)
			}
		})
	}
}

func TestSpellingHints(t *testing.T) {
	tests := []struct {
		name string
		src  string
		sev  diag.Severity
		hint string
		fix  string
	}{
		{"directive", `#improt "Basic"`, diag.SevError, "did you mean #import?", "#import"},
		{"modifier", `#import, fiel "a.jai"`, diag.SevError, "did you mean file?", ""},
		{"struct directive", "S :: struct #no_paddin { a: int }", diag.SevWarning, "did you mean #no_padding?", "#no_padding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := parse(t, tt.src)
			if len(diags) != 1 {
				t.Fatalf("diagnostics = %s", codes(diags))
			}
			if diags[0].Severity != tt.sev || !hasNote(diags[0], tt.hint) {
				t.Errorf("got %v %q notes=%v", diags[0].Severity, diags[0].Message, diags[0].Notes)
			}
			if tt.fix == "" {
				return
			}
			fixes := diags[0].Fixes
			if len(fixes) != 1 || len(fixes[0].Edits) != 1 || fixes[0].Edits[0].NewText != tt.fix {
				t.Errorf("fixes = %+v", fixes)
			}
		})
	}
}

func TestMaxNesting(t *testing.T) {
	src := "a :: " + strings.Repeat(".[", 40) + strings.Repeat("]", 40) + "\nb :: 1\n"
	tree, diags := parser.Parse([]byte(src), parser.Options{MaxNestingDepth: 16})
	if got := codes(diags); got != diag.SynMaxNesting.ID() {
		t.Fatalf("codes = %s", got)
	}
	wantSExpr(t, tree, "(SourceFile (Error name: (Identifier)))")
	errNode := tree.Find(cst.Error)[0]
	if sp := tree.Span(errNode); sp.Start != 0 || int(sp.End) != len(src)-1 {
		t.Errorf("error span = %v", sp)
	}
	if got := diags[0].Code.Kind(); got != diag.KindMaxNestingExceeded {
		t.Errorf("kind = %v", got)
	}

	// the default limit is far above ordinary nesting
	parseClean(t, "a :: "+strings.Repeat(".[", 40)+strings.Repeat("]", 40))
}

func TestExtras(t *testing.T) {
	tree := parseClean(t, "/* outer /* inner */ still outer */")
	if len(tree.Extras) != 1 || tree.Text(tree.Extras[0]) != "/* outer /* inner */ still outer */" {
		t.Fatalf("extras = %v", tree.Extras)
	}

	for _, src := range []string{"// c", "@note", "/* a */ /* b */"} {
		tree = parseClean(t, src)
		if len(tree.Children(tree.Root)) != 0 || len(tree.Extras) == 0 {
			t.Errorf("%q: tree %s extras %v", src, tree, tree.Extras)
		}
	}

	tree = parseClean(t, "v :: V.{ /* c */ x = 1 } // tail\nw :: 2 @note\n")
	got := tree.SExpr(tree.Root, cst.SExprOptions{Extras: true})
	want := "(SourceFile (ConstDeclaration name: (Identifier) value: (StructLiteral type: (TypeIdentifier) body: (StructValue (Comment)" +
		" (KeyedElement key: (Identifier) value: (IntLiteral))))) (Comment) (ConstDeclaration name: (Identifier) value: (IntLiteral)) (Note))"
	if got != want {
		t.Fatalf("extras tree\nwant: %s\n got: %s", want, got)
	}
	if n := tree.AttachedExtras(); n != 3 {
		t.Errorf("attached = %d", n)
	}
}

func TestMaxDiagnostics(t *testing.T) {
	src := strings.Repeat("x :: )\n", 20)
	_, diags := parser.Parse([]byte(src), parser.Options{MaxDiagnostics: 5})
	if len(diags) != 5 {
		t.Errorf("diagnostics = %d, want 5", len(diags))
	}
}

func TestReporterSeesDiagnostics(t *testing.T) {
	counter := &diag.CountingReporter{}
	_, diags := parser.Parse([]byte("x :: )\ny :: \"a\\x4\""), parser.Options{Reporter: counter})
	if counter.Total != len(diags) || counter.Errors != 2 {
		t.Errorf("counter = %+v, diags = %d", counter, len(diags))
	}
}
