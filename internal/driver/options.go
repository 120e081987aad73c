package driver

import (
	"runtime"
	"time"

	"jaiparse/internal/parser"
	"jaiparse/internal/project"
)

type Options struct {
	// MaxDiagnostics <= 0 means parser.DefaultMaxDiagnostics, per file.
	MaxDiagnostics int
	// MaxNestingDepth <= 0 means parser.DefaultMaxNestingDepth.
	MaxNestingDepth int
	// Jobs bounds parallel workers in directory runs; <= 0 means GOMAXPROCS.
	Jobs int
	// Manifest selects files in directory runs. Nil means defaults.
	Manifest *project.Manifest
	// Cache is consulted by Diagnose and DiagnoseDir. Nil disables caching.
	Cache *DiskCache
	// Progress receives per-file events. It must be safe for concurrent use.
	Progress ProgressSink
	// Heartbeat, if positive, emits driver-scope trace heartbeats during
	// directory runs.
	Heartbeat time.Duration
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{
		MaxDiagnostics:  o.maxDiagnostics(),
		MaxNestingDepth: o.MaxNestingDepth,
	}
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return parser.DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) maxDepth() int {
	if o.MaxNestingDepth <= 0 {
		return parser.DefaultMaxNestingDepth
	}
	return o.MaxNestingDepth
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

func (o Options) manifest() *project.Manifest {
	if o.Manifest == nil {
		return project.DefaultManifest()
	}
	return o.Manifest
}
