package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jaiparse/internal/diag"
	"jaiparse/internal/diagfmt"
	"jaiparse/internal/driver"
	"jaiparse/internal/fix"
	"jaiparse/internal/source"
	"jaiparse/internal/trace"
	"jaiparse/internal/ui"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.jai|directory>",
	Short: "Report diagnostics for a file or every file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	diagCmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
	diagCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	diagCmd.Flags().Bool("no-cache", false, "ignore the diagnostics disk cache")
	diagCmd.Flags().Bool("clear-cache", false, "drop every diagnostics cache entry before the run")
	diagCmd.Flags().Bool("imports", false, "check file imports across the directory")
	diagCmd.Flags().Bool("with-notes", true, "include diagnostic notes")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions")
	diagCmd.Flags().Bool("preview", false, "show each suggested edit applied to its line")
	diagCmd.Flags().Bool("fullpath", false, "print absolute file paths")
	diagCmd.Flags().String("fix", "", "apply suggested fixes to the files (once|all)")
}

type diagFlags struct {
	format     string
	jobs       int
	ui         uiMode
	noCache    bool
	clearCache bool
	imports    bool
	withNotes  bool
	suggest    bool
	preview    bool
	fullPath   bool
	fix        string
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var f diagFlags
	var err error
	flags := cmd.Flags()
	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format %q (expected pretty|short|json)", f.format)
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiStr); err != nil {
		return f, err
	}
	for name, dst := range map[string]*bool{
		"no-cache":    &f.noCache,
		"clear-cache": &f.clearCache,
		"imports":     &f.imports,
		"with-notes":  &f.withNotes,
		"suggest":     &f.suggest,
		"preview":     &f.preview,
		"fullpath":    &f.fullPath,
	} {
		if *dst, err = flags.GetBool(name); err != nil {
			return f, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if f.fix, err = flags.GetString("fix"); err != nil {
		return f, fmt.Errorf("failed to get fix flag: %w", err)
	}
	if f.fix != "" {
		if _, err := fix.ParseApplyMode(f.fix); err != nil {
			return f, err
		}
	}
	return f, nil
}

func runDiag(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	target := args[0]

	flags, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}
	st, err := os.Stat(target)
	if err != nil {
		return err
	}
	startDir := target
	if !st.IsDir() {
		startDir = filepath.Dir(target)
	}
	s, err := loadSettings(cmd, startDir)
	if err != nil {
		return err
	}
	defer s.finish()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	s.opts.Jobs = flags.jobs
	cache, err := openCache(s, flags)
	if err != nil {
		return err
	}
	// cached diagnostics carry no fixes
	if !flags.noCache && flags.fix == "" {
		s.opts.Cache = cache
	}

	var (
		fs  *source.FileSet
		bag *diag.Bag
	)
	if st.IsDir() {
		fs, bag, err = diagnoseDir(cmd.Context(), target, s, flags)
	} else {
		fs, bag, err = diagnoseFile(cmd.Context(), target, s)
	}
	if err != nil {
		return err
	}

	if flags.fix != "" {
		return applyFixes(os.Stdout, fs, bag, s, flags.fix)
	}

	phase := s.timer.Begin("render")
	err = renderDiagnostics(os.Stdout, bag, fs, s, flags)
	s.timer.End(phase, flags.format)
	if err != nil {
		return err
	}
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func diagnoseFile(ctx context.Context, path string, s *settings) (*source.FileSet, *diag.Bag, error) {
	phase := s.timer.Begin("diagnose")
	res, err := driver.Diagnose(ctx, path, s.opts)
	if err != nil {
		s.timer.End(phase, "")
		return nil, nil, fmt.Errorf("diagnose %s: %w", path, err)
	}
	note := strconv.Itoa(res.Nodes) + " nodes"
	if res.Cached {
		note += ", cached"
	}
	s.timer.End(phase, note)
	return res.FileSet, res.Bag, nil
}

func diagnoseDir(ctx context.Context, dir string, s *settings, flags diagFlags) (*source.FileSet, *diag.Bag, error) {
	var (
		fs      *source.FileSet
		results []driver.DiagnoseDirResult
	)
	work := func(sink driver.ProgressSink) error {
		opts := s.opts
		opts.Progress = sink
		var err error
		fs, results, err = driver.DiagnoseDir(ctx, dir, opts)
		return err
	}

	phase := s.timer.Begin("diagnose")
	var err error
	if flags.format == "pretty" && !s.quiet && shouldUseTUI(flags.ui) {
		err = ui.RunWithProgress(ctx, os.Stderr, "diagnosing "+dir, nil, work)
	} else {
		err = work(nil)
	}
	if err != nil {
		s.timer.End(phase, "")
		return nil, nil, err
	}
	var cached int
	for _, r := range results {
		if r.Cached {
			cached++
		}
	}
	s.timer.End(phase, fmt.Sprintf("%d files, %d cached", len(results), cached))

	if flags.imports {
		phase = s.timer.Begin("imports")
		graph := checkImports(ctx, dir, results)
		s.timer.End(phase, fmt.Sprintf("%d in cycles", len(graph.Cycles)))
		if flags.format == "pretty" && !s.quiet {
			printImportOrder(os.Stderr, graph)
		}
	}

	bag := diag.NewBag(0)
	for _, r := range results {
		bag.Merge(r.Bag)
	}
	return fs, bag, nil
}

// openCache opens the diagnostics cache when the manifest enables it and
// clears it on --clear-cache. An unusable cache only disables caching.
func openCache(s *settings, flags diagFlags) (*driver.DiskCache, error) {
	if !s.manifest.CacheEnabled() {
		return nil, nil
	}
	cache, err := driver.OpenDiskCache("jaiparse", s.manifest.Cache.Dir)
	if err != nil {
		if !s.quiet {
			fmt.Fprintf(os.Stderr, "warning: diagnostics cache disabled: %v\n", err)
		}
		return nil, nil
	}
	if flags.clearCache {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("clear cache %s: %w", cache.Dir(), err)
		}
	}
	return cache, nil
}

// applyFixes rewrites the files with the suggested fixes and reports what
// changed. Remaining errors are left for the next diag run.
func applyFixes(w io.Writer, fs *source.FileSet, bag *diag.Bag, s *settings, modeStr string) error {
	mode, err := fix.ParseApplyMode(modeStr)
	if err != nil {
		return err
	}
	phase := s.timer.Begin("fix")
	res, err := fix.Apply(fs, bag.Items(), fix.ApplyOptions{Mode: mode})
	s.timer.End(phase, fmt.Sprintf("%d applied", len(res.Applied)))
	if errors.Is(err, fix.ErrNoFixes) {
		if !s.quiet {
			fmt.Fprintln(w, "no fixes to apply")
		}
		return nil
	}
	if err != nil {
		return err
	}
	if s.quiet {
		return nil
	}
	for _, a := range res.Applied {
		fmt.Fprintf(w, "fixed %s %s: %s\n", a.Code.ID(), a.PrimaryPath, a.Title)
	}
	for _, sk := range res.Skipped {
		fmt.Fprintf(w, "skipped %s: %s\n", sk.Title, sk.Reason)
	}
	for _, fc := range res.FileChanges {
		fmt.Fprintf(w, "wrote %s (%d edits)\n", fc.Path, fc.EditCount)
	}
	return nil
}

// checkImports adds PRJ diagnostics for the file imports of every loaded file.
func checkImports(ctx context.Context, dir string, results []driver.DiagnoseDirResult) *driver.ImportGraph {
	_, span := trace.Start(ctx, trace.ScopeDriver, "imports")
	files := make([]driver.GraphFile, 0, len(results))
	for _, r := range results {
		if r.Loaded {
			files = append(files, driver.GraphFile{Path: r.Path, Imports: r.Imports, Bag: r.Bag})
		}
	}
	graph := driver.BuildImportGraph(dir, files)
	span.WithExtra("cycles", strconv.Itoa(len(graph.Cycles))).End(dir)
	return graph
}

func printImportOrder(w io.Writer, g *driver.ImportGraph) {
	if len(g.Batches) == 0 {
		return
	}
	fmt.Fprintln(w, "import order:")
	for i, batch := range g.Batches {
		fmt.Fprintf(w, "  %d: %s\n", i+1, strings.Join(batch, " "))
	}
	if len(g.Cycles) > 0 {
		fmt.Fprintf(w, "  cyclic: %s\n", strings.Join(g.Cycles, " "))
	}
}

func renderDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s *settings, flags diagFlags) error {
	pathMode := diagfmt.PathModeAuto
	if flags.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch flags.format {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     flags.withNotes,
			IncludeFixes:     flags.suggest,
		})
	case "short":
		if out := diag.FormatGoldenDiagnostics(bag.Items(), fs, flags.withNotes); out != "" {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		return nil
	}
	if bag.Len() == 0 {
		if !s.quiet {
			fmt.Fprintln(w, "no diagnostics")
		}
		return nil
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:       s.color && isTerminal(os.Stdout),
		Context:     1,
		PathMode:    pathMode,
		ShowNotes:   flags.withNotes,
		ShowFixes:   flags.suggest,
		ShowPreview: flags.preview,
	})
	return nil
}
