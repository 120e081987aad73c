// Package fuzz holds the native Go fuzz harnesses for the lexer and the
// parser. They check that arbitrary bytes never panic, never hang and always
// produce a tree that satisfies the span invariants.
//
//	go test ./internal/fuzz -run=^$ -fuzz=FuzzParse -fuzztime=30s
//
// Seeds come from testdata/ and from a fixed list of tricky inputs.
package fuzz
