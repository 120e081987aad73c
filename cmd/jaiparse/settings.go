package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jaiparse/internal/diag"
	"jaiparse/internal/diagfmt"
	"jaiparse/internal/driver"
	"jaiparse/internal/observ"
	"jaiparse/internal/prof"
	"jaiparse/internal/project"
	"jaiparse/internal/source"
)

// settings are the persistent flags merged over the manifest.
type settings struct {
	color    bool
	quiet    bool
	timings  bool
	timer    *observ.Timer
	profile  *prof.Session
	manifest *project.Manifest
	opts     driver.Options
}

// loadSettings reads the persistent flags and the jaiparse.toml found by
// walking up from startDir. Flags that were set win over the manifest.
func loadSettings(cmd *cobra.Command, startDir string) (*settings, error) {
	pf := cmd.Root().PersistentFlags()
	colorMode, err := pf.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	s := &settings{timer: observ.NewTimer()}
	switch strings.ToLower(colorMode) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto", "":
		s.color = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}
	color.NoColor = !s.color

	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	phase := s.timer.Begin("manifest")
	s.manifest, err = s.findManifest(startDir)
	s.timer.End(phase, s.manifest.Path)
	if err != nil {
		return nil, err
	}

	s.opts = driver.Options{
		MaxDiagnostics:  s.manifest.Parse.MaxDiagnostics,
		MaxNestingDepth: s.manifest.Parse.MaxNestingDepth,
		Manifest:        s.manifest,
	}
	if pf.Changed("max-diagnostics") {
		if s.opts.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if pf.Changed("max-depth") {
		if s.opts.MaxNestingDepth, err = pf.GetInt("max-depth"); err != nil {
			return nil, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
	}
	if s.opts.Heartbeat, err = pf.GetDuration("trace-heartbeat"); err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	var pcfg prof.Config
	for name, dst := range map[string]*string{
		"cpu-profile":   &pcfg.CPU,
		"mem-profile":   &pcfg.Mem,
		"runtime-trace": &pcfg.Trace,
	} {
		if *dst, err = pf.GetString(name); err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if pcfg.Enabled() {
		if s.profile, err = prof.Start(pcfg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// findManifest loads the nearest manifest, printing its diagnostics. A
// manifest with errors is rejected; warnings such as unknown keys are not.
func (s *settings) findManifest(startDir string) (*project.Manifest, error) {
	path, ok, err := project.FindManifest(startDir)
	if err != nil {
		return project.DefaultManifest(), err
	}
	if !ok {
		return project.DefaultManifest(), nil
	}
	fs := source.NewFileSet()
	bag := diag.NewBag(32)
	m, err := project.LoadManifest(fs, path, diag.BagReporter{Bag: bag})
	if err != nil {
		return project.DefaultManifest(), err
	}
	if bag.Len() > 0 && (!s.quiet || bag.HasErrors()) {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: s.color, ShowNotes: true})
	}
	if bag.HasErrors() {
		return project.DefaultManifest(), fmt.Errorf("invalid manifest %s", path)
	}
	return m, nil
}

// printDiagnostics writes a bag to stderr for commands whose stdout carries
// another result.
func (s *settings) printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 || (s.quiet && !bag.HasErrors()) {
		return
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: s.color, Context: 1, ShowNotes: true})
}

// finish stops profiling and prints timings; commands defer it.
func (s *settings) finish() {
	if err := s.profile.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	}
	if s.timings {
		fmt.Fprint(os.Stderr, s.timer.Summary())
	}
}
