package parser

import (
	"jaiparse/internal/diag"
	"jaiparse/internal/lexer"
	"jaiparse/internal/source"
)

const (
	// DefaultMaxNestingDepth bounds nested types, literals, argument lists
	// and block comments.
	DefaultMaxNestingDepth = lexer.DefaultMaxNestingDepth
	// DefaultMaxDiagnostics caps the diagnostics returned by Parse.
	DefaultMaxDiagnostics = 100
)

type Options struct {
	// File is stamped on every span of the tree and the diagnostics.
	File source.FileID
	// MaxDiagnostics <= 0 means DefaultMaxDiagnostics.
	MaxDiagnostics int
	// MaxNestingDepth <= 0 means DefaultMaxNestingDepth.
	MaxNestingDepth int
	// Reporter, if set, also receives every diagnostic as it is produced.
	Reporter diag.Reporter
}

func (o Options) withDefaults() Options {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if o.MaxNestingDepth <= 0 {
		o.MaxNestingDepth = DefaultMaxNestingDepth
	}
	return o
}
