package source

import "testing"

func TestInternerDedup(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Basic")
	b := in.Intern("Basic")
	if a != b || a == NoStringID {
		t.Fatalf("Intern returned %d and %d", a, b)
	}
	if s, ok := in.Lookup(a); !ok || s != "Basic" {
		t.Fatalf("Lookup = %q,%v", s, ok)
	}
	if _, ok := in.Find("Math"); ok {
		t.Fatalf("Find must not insert")
	}
}

func TestNFCInternerFoldsCompositions(t *testing.T) {
	in := NewNFCInterner()
	composed := in.Intern("café")
	decomposed := in.Intern("café")
	if composed != decomposed {
		t.Fatalf("NFC interner produced %d and %d", composed, decomposed)
	}

	plain := NewInterner()
	if plain.Intern("café") == plain.Intern("café") {
		t.Fatalf("plain interner must keep compositions apart")
	}
}
