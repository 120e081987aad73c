package driver

import (
	"context"

	"jaiparse/internal/diag"
	"jaiparse/internal/lexer"
	"jaiparse/internal/source"
	"jaiparse/internal/token"
	"jaiparse/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	_, span := trace.Start(ctx, trace.ScopeFile, "file:"+path)
	defer span.End("tokenize")

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	bag := diag.NewBag(opts.maxDiagnostics())
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokenize(file, bag, opts),
		Bag:     bag,
	}, nil
}

func tokenize(file *source.File, bag *diag.Bag, opts Options) []token.Token {
	toks := lexer.Tokenize(file, lexer.Options{
		Reporter:        diag.BagReporter{Bag: bag},
		MaxNestingDepth: opts.MaxNestingDepth,
	})
	bag.Sort()
	return toks
}

type TokenizeDirResult struct {
	Path   string // relative to the scanned directory
	FileID source.FileID
	Tokens []token.Token // nil when the file failed to load
	Bag    *diag.Bag
}

// TokenizeDir tokenizes every selected file under dir in parallel. Results
// are in path order.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	run, err := planDir(dir, StageTokenize, opts)
	if err != nil {
		return nil, nil, err
	}
	results := make([]TokenizeDirResult, len(run.files))
	err = run.run(ctx, func(_ context.Context, job fileJob) bool {
		res := TokenizeDirResult{Path: job.Path, Bag: job.Bag}
		if job.File != nil {
			res.FileID = job.File.ID
			res.Tokens = tokenize(job.File, job.Bag, opts)
		}
		// indexes are distinct per worker
		results[job.Index] = res
		return false
	})
	return run.fileSet, results, err
}
