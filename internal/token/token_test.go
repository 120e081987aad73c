package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"struct", KwStruct, true},
		{"null", KwNull, true},
		{"true", KwTrue, true},
		{"false", KwFalse, true},
		{"iota", KwIota, true},
		{"Struct", Invalid, false},
		{"int", Invalid, false},
		{"file", Invalid, false},
		{"string", Invalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := LookupKeyword(tt.in)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Fatalf("LookupKeyword(%q) = %v,%v; want %v,%v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := Invalid; k <= Nul; k++ {
		if s := k.String(); s == "" || s == "Kind(?)" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(200).String() != "Kind(?)" {
		t.Errorf("out-of-range kind should be Kind(?)")
	}
}

func TestTerminators(t *testing.T) {
	term := map[Kind]bool{Newline: true, Semicolon: true, Nul: true, EOF: true}
	for k := Invalid; k <= Nul; k++ {
		if got := k.IsTerminator(); got != term[k] {
			t.Errorf("%v.IsTerminator() = %v", k, got)
		}
	}
}

func TestTriviaIsExtra(t *testing.T) {
	if TriviaSpace.IsExtra() {
		t.Fatal("space is not an extra")
	}
	for _, k := range []TriviaKind{TriviaLineComment, TriviaBlockComment, TriviaNote} {
		if !k.IsExtra() {
			t.Errorf("%v should be an extra", k)
		}
	}
}

func TestTokenFlags(t *testing.T) {
	tok := Token{Kind: StringLit, Text: `"abc`, Flags: FlagUnterminated}
	if !tok.Unterminated() || !tok.IsLiteral() {
		t.Fatalf("unexpected flags for %+v", tok)
	}
	if (Token{Kind: Ident}).IsLiteral() {
		t.Fatal("ident is not a literal")
	}
}
