// Package prof wraps runtime/pprof and runtime/trace for the profiling
// flags of the CLI.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/cockroachdb/errors"
)

// Session is a set of active profilers.
type Session struct {
	cpuFile   *os.File
	traceFile *os.File
	memPath   string
}

// Options names the output files. Empty paths disable a profiler.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Start enables the requested profilers. On error nothing is left running.
func Start(opts Options) (*Session, error) {
	s := &Session{memPath: opts.Mem}
	if opts.CPU != "" {
		f, err := os.Create(opts.CPU)
		if err != nil {
			return nil, errors.Wrap(err, "cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrap(err, "cpu profile")
		}
		s.cpuFile = f
	}
	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err == nil {
			err = trace.Start(f)
			if err != nil {
				_ = f.Close()
			}
		}
		if err != nil {
			s.Stop()
			return nil, errors.Wrap(err, "runtime trace")
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop ends the CPU profile and runtime trace and writes the heap profile.
// Safe to call more than once.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		_ = s.cpuFile.Close()
		s.cpuFile = nil
	}
	if s.traceFile != nil {
		trace.Stop()
		_ = s.traceFile.Close()
		s.traceFile = nil
	}
	if s.memPath != "" {
		path := s.memPath
		s.memPath = ""
		return writeMem(path)
	}
	return nil
}

func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "heap profile")
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()
	runtime.GC()
	return errors.Wrap(pprof.WriteHeapProfile(f), "heap profile")
}
