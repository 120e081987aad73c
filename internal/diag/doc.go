// Package diag defines the diagnostic model shared by the lexer, the parser,
// the driver and project loading.
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier with a stable string form (LEX1002,
//     SYN2001, IO4001, PRJ5004). Code.Kind maps it onto the coarse ErrorKind
//     consumers switch on.
//   - Message: short, human oriented text.
//   - Primary: the source.Span the problem is about.
//   - Notes: secondary spans such as "did you mean" hints.
//
// Producers emit through a Reporter (BagReporter, DedupReporter,
// MultiReporter, CountingReporter) or a ReportBuilder when notes are attached.
// Rendering lives in internal/diagfmt; this package performs no I/O.
package diag
