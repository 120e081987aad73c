// Package token defines lexical token kinds and trivia for jaiparse.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Comments, notes and horizontal whitespace never appear in the token
//     stream; they travel as Leading trivia of the next token.
//   - Newline, ';', a NUL byte and EOF are all terminators. Whether a newline
//     actually ends a declaration is decided by the parser.
//   - Builtin type names (int, float32, string, ...) are identifiers.
//     "file", "dir" and "string" are only special after "#import ,".
package token
