package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"jaiparse/internal/diagfmt"
	"jaiparse/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.jai>",
	Short: "Print the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("spaces", false, "list whitespace trivia in pretty output")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q (expected pretty|json)", format)
	}
	spaces, err := cmd.Flags().GetBool("spaces")
	if err != nil {
		return fmt.Errorf("failed to get spaces flag: %w", err)
	}

	s, err := loadSettings(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}
	defer s.finish()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var res *driver.TokenizeResult
	phase := s.timer.Begin("tokenize")
	res, err = driver.Tokenize(cmd.Context(), path, s.opts)
	if err != nil {
		s.timer.End(phase, "")
		return fmt.Errorf("tokenize %s: %w", path, err)
	}
	s.timer.End(phase, strconv.Itoa(len(res.Tokens))+" tokens")

	s.printDiagnostics(res.Bag, res.FileSet)
	if format == "json" {
		err = diagfmt.FormatTokensJSON(os.Stdout, res.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(os.Stdout, res.Tokens, res.FileSet, spaces)
	}
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
