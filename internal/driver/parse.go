package driver

import (
	"context"

	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/parser"
	"jaiparse/internal/project"
	"jaiparse/internal/source"
	"jaiparse/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *cst.Tree
	Bag     *diag.Bag
}

// Parse loads and parses one file. Trees are never cached.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+path)
	defer span.End("parse")

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	bag := diag.NewBag(opts.maxDiagnostics())
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    parseInto(ctx, file, bag, opts),
		Bag:     bag,
	}, nil
}

func parseInto(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) *cst.Tree {
	tree, diags := parser.ParseFile(ctx, file, opts.parserOptions())
	for _, d := range diags {
		bag.Add(d)
	}
	return tree
}

type ParseDirResult struct {
	Path    string // relative to the scanned directory
	FileID  source.FileID
	Tree    *cst.Tree // nil when the file failed to load
	Bag     *diag.Bag
	Imports []project.ImportRef
}

// ParseDir parses every selected file under dir in parallel. Results are in
// path order.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	run, err := planDir(dir, StageParse, opts)
	if err != nil {
		return nil, nil, err
	}
	results := make([]ParseDirResult, len(run.files))
	err = run.run(ctx, func(ctx context.Context, job fileJob) bool {
		res := ParseDirResult{Path: job.Path, Bag: job.Bag}
		if job.File != nil {
			res.FileID = job.File.ID
			res.Tree = parseInto(ctx, job.File, job.Bag, opts)
			res.Imports = collectImports(res.Tree, job.Path)
		}
		results[job.Index] = res
		return false
	})
	return run.fileSet, results, err
}
