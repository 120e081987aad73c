// Package prof wires the runtime profilers to command-line flags.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	rtrace "runtime/trace"

	"github.com/hashicorp/go-multierror"
)

// Config names the output file of each profiler; empty disables it.
type Config struct {
	CPU   string
	Mem   string // heap profile written by Stop
	Trace string // runtime execution trace
}

func (c Config) Enabled() bool {
	return c.CPU != "" || c.Mem != "" || c.Trace != ""
}

// Session is one run of the configured profilers.
type Session struct {
	cfg     Config
	cpu     *os.File
	trace   *os.File
	stopped bool
}

// Start opens every configured output and starts CPU profiling and tracing.
// On error nothing is left running.
func Start(cfg Config) (*Session, error) {
	s := &Session{cfg: cfg}
	if cfg.CPU != "" {
		f, err := os.Create(cfg.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpu = f
	}
	if cfg.Trace != "" {
		f, err := os.Create(cfg.Trace)
		if err != nil {
			s.abort()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		if err := rtrace.Start(f); err != nil {
			_ = f.Close()
			s.abort()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		s.trace = f
	}
	return s, nil
}

// Stop ends the profilers and writes the heap profile. Later calls do
// nothing.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true

	var result *multierror.Error
	if s.trace != nil {
		rtrace.Stop()
		if err := s.trace.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("runtime trace: %w", err))
		}
	}
	if s.cpu != nil {
		pprof.StopCPUProfile()
		if err := s.cpu.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("cpu profile: %w", err))
		}
	}
	if s.cfg.Mem != "" {
		if err := writeHeap(s.cfg.Mem); err != nil {
			result = multierror.Append(result, fmt.Errorf("heap profile: %w", err))
		}
	}
	return result.ErrorOrNil()
}

// abort stops what Start already began without writing a heap profile.
func (s *Session) abort() {
	s.cfg.Mem = ""
	_ = s.Stop()
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
