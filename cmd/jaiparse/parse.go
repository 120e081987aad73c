package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"jaiparse/internal/cst"
	"jaiparse/internal/diag"
	"jaiparse/internal/diagfmt"
	"jaiparse/internal/driver"
	"jaiparse/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.jai|directory>",
	Short: "Print the syntax tree of a file or of every file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "sexp", "output format (sexp|tree|json)")
	parseCmd.Flags().Bool("extras", false, "include comments and notes")
	parseCmd.Flags().Bool("tokens", false, "include anonymous token leaves (tree and json)")
	parseCmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
}

type parsedFile struct {
	path string
	tree *cst.Tree // nil when loading failed
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "sexp", "tree", "json":
	default:
		return fmt.Errorf("unknown format %q (expected sexp|tree|json)", format)
	}
	var copts diagfmt.CSTOpts
	if copts.Extras, err = cmd.Flags().GetBool("extras"); err != nil {
		return fmt.Errorf("failed to get extras flag: %w", err)
	}
	if copts.Tokens, err = cmd.Flags().GetBool("tokens"); err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
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
	s.opts.Jobs = jobs

	var (
		files []parsedFile
		fs    *source.FileSet
		bag   = diag.NewBag(0)
	)
	phase := s.timer.Begin("parse")
	if st.IsDir() {
		var results []driver.ParseDirResult
		fs, results, err = driver.ParseDir(cmd.Context(), target, s.opts)
		if err != nil {
			s.timer.End(phase, "")
			return err
		}
		for _, r := range results {
			files = append(files, parsedFile{path: r.Path, tree: r.Tree})
			bag.Merge(r.Bag)
		}
	} else {
		res, err := driver.Parse(cmd.Context(), target, s.opts)
		if err != nil {
			s.timer.End(phase, "")
			return fmt.Errorf("parse %s: %w", target, err)
		}
		fs = res.FileSet
		files = append(files, parsedFile{path: target, tree: res.Tree})
		bag.Merge(res.Bag)
	}
	s.timer.End(phase, strconv.Itoa(len(files))+" files")

	s.printDiagnostics(bag, fs)
	phase = s.timer.Begin("render")
	err = renderTrees(os.Stdout, files, fs, format, copts, st.IsDir())
	s.timer.End(phase, format)
	if err != nil {
		return err
	}
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

type treeJSON struct {
	Path string              `json:"path"`
	Tree diagfmt.CSTNodeJSON `json:"tree"`
}

// renderTrees prints each tree; directory runs get a header per file, or one
// JSON array.
func renderTrees(w io.Writer, files []parsedFile, fs *source.FileSet, format string, opts diagfmt.CSTOpts, dir bool) error {
	if format == "json" {
		if !dir {
			return diagfmt.FormatCSTJSON(w, files[0].tree, opts)
		}
		out := make([]treeJSON, 0, len(files))
		for _, f := range files {
			if f.tree != nil {
				out = append(out, treeJSON{Path: f.path, Tree: diagfmt.BuildCSTJSON(f.tree, f.tree.Root, opts)})
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, f := range files {
		if f.tree == nil {
			continue
		}
		if dir {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", f.path)
		}
		var err error
		if format == "tree" {
			err = diagfmt.FormatCSTTree(w, f.tree, fs, opts)
		} else {
			err = diagfmt.FormatCSTSExpr(w, f.tree, opts)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
