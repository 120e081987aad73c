package driver

import (
	"context"

	"jaiparse/internal/diag"
	"jaiparse/internal/project"
	"jaiparse/internal/source"
	"jaiparse/internal/trace"
)

// DiagnoseResult is a parse whose tree was dropped: only what can be cached
// is kept.
type DiagnoseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Nodes   int
	Cached  bool
}

// Diagnose parses one file for its diagnostics, consulting opts.Cache.
func Diagnose(ctx context.Context, path string, opts Options) (*DiagnoseResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+path)
	defer span.End("diagnose")

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	bag := diag.NewBag(opts.maxDiagnostics())
	nodes, _, cached := diagnoseFile(ctx, file, project.NormalizePath(path), bag, opts)
	return &DiagnoseResult{FileSet: fs, File: file, Bag: bag, Nodes: nodes, Cached: cached}, nil
}

type DiagnoseDirResult struct {
	Path    string
	FileID  source.FileID
	Loaded  bool
	Bag     *diag.Bag
	Nodes   int
	Cached  bool
	Imports []project.ImportRef
}

// DiagnoseDir is ParseDir without trees, served from opts.Cache where the
// file content is unchanged.
func DiagnoseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []DiagnoseDirResult, error) {
	run, err := planDir(dir, StageParse, opts)
	if err != nil {
		return nil, nil, err
	}
	results := make([]DiagnoseDirResult, len(run.files))
	err = run.run(ctx, func(ctx context.Context, job fileJob) bool {
		res := DiagnoseDirResult{Path: job.Path, Bag: job.Bag}
		if job.File != nil {
			res.FileID = job.File.ID
			res.Loaded = true
			res.Nodes, res.Imports, res.Cached = diagnoseFile(ctx, job.File, job.Path, job.Bag, opts)
		}
		results[job.Index] = res
		return res.Cached
	})
	return run.fileSet, results, err
}

func diagnoseFile(ctx context.Context, file *source.File, rel string, bag *diag.Bag, opts Options) (nodes int, imports []project.ImportRef, cached bool) {
	key := cacheKey(file, opts)
	if opts.Cache != nil {
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache", err.Error())
		}
		if ok {
			imports = payload.restore(file.ID, rel, bag)
			return payload.Nodes, imports, true
		}
	}

	tree := parseInto(ctx, file, bag, opts)
	nodes = tree.Len()
	imports = collectImports(tree, rel)
	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toPayload(nodes, bag.Items(), imports)); err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache", err.Error())
		}
	}
	return nodes, imports, false
}
