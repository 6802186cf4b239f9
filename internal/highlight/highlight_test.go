package highlight

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = "fn main() {\n\tlet x = 1;\n}\n"

func TestPrintPlain(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no color", Options{Theme: "monokai"}},
		{"none theme", Options{Theme: NoTheme, Color: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Print(&buf, sample, tt.opts))
			require.Equal(t, sample, buf.String())
		})
	}
}

func TestPrintHighlights(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, sample, Options{Color: true}))
	out := buf.String()
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, "main")
	require.NotContains(t, out, "\t")
}

func TestHighlightUnknownTheme(t *testing.T) {
	err := Highlight(&bytes.Buffer{}, sample, "no-such-theme")
	require.ErrorContains(t, err, `unknown theme "no-such-theme"`)
}

func TestThemes(t *testing.T) {
	require.Contains(t, Themes(), DefaultTheme)
}

func TestExpandTabs(t *testing.T) {
	require.Equal(t, "    a\nb   c", expandTabs("\ta\nb\tc"))
	require.Equal(t, "plain", expandTabs("plain"))
}

func TestPrintThroughPager(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "pager")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho paged\ncat\n"), 0o755))
	t.Setenv("PAGER", script)

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, sample, Options{Color: true, Pager: true}))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("paged\n")))
}

func TestPagerFallsBackWhenMissing(t *testing.T) {
	t.Setenv("PAGER", "/nonexistent/pager -x")
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, sample, Options{Color: true, Pager: true}))
	require.Contains(t, buf.String(), "main")
}
