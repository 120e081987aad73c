package lexer

import (
	"testing"

	"jaiparse/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("c.jai", []byte("ab"))))

	m := c.Mark()
	if c.Peek() != 'a' || c.Bump() != 'a' {
		t.Fatal("Peek/Bump mismatch")
	}
	if b, ok := c.PeekAt(0); !ok || b != 'b' {
		t.Fatalf("PeekAt(0) = %q,%v", b, ok)
	}
	if _, ok := c.PeekAt(1); ok {
		t.Fatal("PeekAt past end should fail")
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatal("Peek2 needs two bytes")
	}
	if !c.Eat('b') || !c.EOF() || c.Bump() != 0 {
		t.Fatal("expected EOF after eating b")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 || string(c.Rest()) != "ab" {
		t.Fatal("Reset failed")
	}
}
