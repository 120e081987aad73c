package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"jaiparse/internal/diag"
	"jaiparse/internal/project"
	"jaiparse/internal/source"
	"jaiparse/internal/trace"
)

// listSourceFiles returns the files under dir selected by m, as sorted
// slash-separated paths relative to dir.
func listSourceFiles(dir string, m *project.Manifest) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && (strings.HasPrefix(d.Name(), ".") || excluded(m, rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if m.Includes(rel) {
			files = append(files, project.NormalizePath(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	slices.Sort(files)
	return files, nil
}

// excluded reports whether the directory rel is named by an exclude entry.
func excluded(m *project.Manifest, rel string) bool {
	rel = project.NormalizePath(rel)
	return slices.ContainsFunc(m.Files.Exclude, func(ex string) bool {
		return strings.TrimSuffix(project.NormalizePath(ex), "/") == rel
	})
}

// fileJob is one file of a directory run. File is nil when loading failed;
// Bag then already holds the IO4001 diagnostic, anchored to an empty
// virtual file of the same path.
type fileJob struct {
	Index int
	Path  string
	File  *source.File
	Bag   *diag.Bag
}

type dirRun struct {
	dir     string
	stage   Stage
	opts    Options
	fileSet *source.FileSet
	files   []string
	ids     map[string]source.FileID
	failed  map[string]source.FileID
	loadErr error
}

// planDir lists and loads the files of dir. Files that cannot be read are
// kept in the plan; their errors are aggregated in loadErr.
func planDir(dir string, stage Stage, opts Options) (*dirRun, error) {
	files, err := listSourceFiles(dir, opts.manifest())
	if err != nil {
		return nil, err
	}
	run := &dirRun{
		dir:     dir,
		stage:   stage,
		opts:    opts,
		fileSet: source.NewFileSetWithBase(dir),
		files:   files,
	}
	paths := make([]string, len(files))
	for i, rel := range files {
		paths[i] = filepath.Join(dir, filepath.FromSlash(rel))
	}
	byPath, err := run.fileSet.LoadAll(paths)
	run.loadErr = err
	run.ids = make(map[string]source.FileID, len(files))
	run.failed = make(map[string]source.FileID)
	for i, rel := range files {
		if id, ok := byPath[paths[i]]; ok {
			run.ids[rel] = id
			continue
		}
		// an empty stand-in gives the IO4001 diagnostic a path to point at
		run.failed[rel] = run.fileSet.AddVirtual(paths[i], nil)
	}
	return run, nil
}

// loadFailure finds the error LoadAll recorded for path.
func loadFailure(loadErr error, path string) error {
	var merr *multierror.Error
	if !errors.As(loadErr, &merr) {
		return loadErr
	}
	for _, err := range merr.Errors {
		var perr *fs.PathError
		if errors.As(err, &perr) && perr.Path == path {
			return perr.Err
		}
	}
	return errors.New("unreadable file")
}

// jobFunc handles one file and reports whether the result came from the
// cache.
type jobFunc func(ctx context.Context, job fileJob) (cached bool)

// run calls fn for every file on a bounded pool of workers. Only context
// cancellation stops the run early; load failures reach fn as jobs without
// a file.
func (r *dirRun) run(ctx context.Context, fn jobFunc) error {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, string(r.stage)+"-dir")
	defer span.WithExtra("files", strconv.Itoa(len(r.files))).End(r.dir)

	for _, rel := range r.files {
		emit(r.opts.Progress, Event{File: rel, Stage: r.stage, Status: StatusQueued})
	}

	var finished atomic.Int64
	stop := trace.Heartbeat(ctx, trace.FromContext(ctx), r.opts.Heartbeat, func() string {
		return fmt.Sprintf("%d/%d files", finished.Load(), len(r.files))
	})
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.jobs(len(r.files)))
	for i, rel := range r.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.runOne(gctx, i, rel, fn)
			finished.Add(1)
			return nil
		})
	}
	return g.Wait()
}

func (r *dirRun) runOne(ctx context.Context, i int, rel string, fn jobFunc) {
	start := time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+rel)
	emit(r.opts.Progress, Event{File: rel, Stage: r.stage, Status: StatusWorking})

	job := fileJob{Index: i, Path: rel, Bag: diag.NewBag(r.opts.maxDiagnostics())}
	var err error
	if id, ok := r.ids[rel]; ok {
		job.File = r.fileSet.Get(id)
	} else {
		err = loadFailure(r.loadErr, filepath.Join(r.dir, filepath.FromSlash(rel)))
		job.Bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{File: r.failed[rel]},
			fmt.Sprintf("failed to load %s: %v", rel, err)))
	}
	cached := fn(ctx, job)

	status := StatusDone
	if job.Bag.HasErrors() {
		status = StatusError
	}
	span.WithExtra("diagnostics", strconv.Itoa(job.Bag.Len())).End(string(status))
	emit(r.opts.Progress, Event{File: rel, Stage: r.stage, Status: status, Cached: cached, Err: err, Elapsed: time.Since(start)})
}
