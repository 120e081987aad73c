// Package trace records where jaiparse spends its time.
//
// Spans nest as driver > file > pass: a directory run opens one driver span,
// each file gets a file span, and lexing and parsing are pass spans inside
// it. Events go to a StreamTracer (written as they happen), a RingTracer
// (the last N events kept for a dump after a failure) or both.
//
//	jaiparse parse --trace=- --trace-level=pass ./src
//
// The tracer travels in a context.Context; code that finds none gets Nop and
// pays only for an interface call.
package trace
