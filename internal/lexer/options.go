package lexer

import (
	"jaiparse/internal/diag"
	"jaiparse/internal/source"
)

const (
	// DefaultMaxNestingDepth bounds block comment nesting.
	DefaultMaxNestingDepth = 256
	// DefaultMaxTokenLength bounds a single token, string literals included.
	DefaultMaxTokenLength = 1 << 20
)

type Options struct {
	// Reporter may be nil; errors are then dropped but lexing continues.
	Reporter diag.Reporter
	// MaxNestingDepth <= 0 means DefaultMaxNestingDepth.
	MaxNestingDepth int
	// MaxTokenLength <= 0 means DefaultMaxTokenLength.
	MaxTokenLength int
}

func (o Options) maxDepth() int {
	if o.MaxNestingDepth <= 0 {
		return DefaultMaxNestingDepth
	}
	return o.MaxNestingDepth
}

func (o Options) maxTokenLen() int {
	if o.MaxTokenLength <= 0 {
		return DefaultMaxTokenLength
	}
	return o.MaxTokenLength
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
