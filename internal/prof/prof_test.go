package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	s, err := Start(opts)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, p := range []string{opts.CPU, opts.Mem, opts.Trace} {
		st, err := os.Stat(p)
		require.NoError(t, err, p)
		require.NotZero(t, st.Size(), p)
	}
}

func TestStartFailsCleanly(t *testing.T) {
	_, err := Start(Options{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	require.Error(t, err)

	// nothing is left running: a new profile can start
	s, err := Start(Options{CPU: filepath.Join(t.TempDir(), "cpu.pprof")})
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}

func TestNilSession(t *testing.T) {
	var s *Session
	require.NoError(t, s.Stop())
}
