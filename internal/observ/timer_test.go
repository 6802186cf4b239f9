package observ

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Record("cargo", 1500*time.Millisecond, "")
	tm.Record("unparse", 250*time.Millisecond, "2 placeholders")

	r := tm.Report()
	require.InDelta(t, 1750.0, r.TotalMS, 1e-9)
	require.Equal(t, []PhaseReport{
		{Name: "cargo", DurationMS: 1500},
		{Name: "unparse", DurationMS: 250, Note: "2 placeholders"},
	}, r.Phases)

	require.Equal(t, "timings:\n"+
		"  cargo                1500.00 ms\n"+
		"  unparse               250.00 ms  // 2 placeholders\n"+
		"  total                1750.00 ms\n", tm.Summary())
}

func TestEmptyTimer(t *testing.T) {
	tm := NewTimer()
	require.Empty(t, tm.Report().Phases)
	require.Equal(t, "timings:\n  total                   0.00 ms\n", tm.Summary())
}
