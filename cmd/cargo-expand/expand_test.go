package main

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"cargo-expand/internal/cargo"
	"cargo-expand/internal/config"
	"cargo-expand/internal/filter"
	"cargo-expand/internal/highlight"
)

// isolate keeps the user's cargo config out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("CARGO_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestThemes(t *testing.T) {
	isolate(t)
	stdout, _, err := execute(t, "expand", "--themes")
	require.NoError(t, err)
	require.Contains(t, stdout, highlight.DefaultTheme+"\n")
}

func TestUglyWithItem(t *testing.T) {
	isolate(t)
	_, stderr, err := execute(t, "expand", "--ugly", "a::b")
	var ee *exitError
	require.True(t, errors.As(err, &ee))
	require.Equal(t, 1, ee.code)
	require.Contains(t, stderr, "cannot expand single item (a::b) in ugly mode.")
}

func TestInvalidItem(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "expand", "a::1b")
	require.True(t, errors.Is(err, filter.ErrInvalidSelector))
}

func TestInvalidColor(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "expand", "--color", "sometimes")
	require.ErrorContains(t, err, "must be auto, always, or never")
}

func TestFlagsFillArgs(t *testing.T) {
	cmd := newExpandCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--bin", "--example=demo", "-p", "--features", "a b",
		"-Z", "macro-backtrace", "-Z", "unstable-options",
		"--tests", "--release", "-j", "4", "--color=never", "--skip-auto-derived",
	}))
	got := optionsOf(t, cmd)

	require.Equal(t, cargo.Optional{Present: true}, got.cargo.Bin)
	require.Equal(t, cargo.Optional{Present: true, Value: "demo"}, got.cargo.Example)
	require.Equal(t, cargo.Optional{Present: true}, got.cargo.Package)
	require.False(t, got.cargo.Test.Present)
	require.Equal(t, "a b", got.cargo.Features)
	require.Equal(t, []string{"macro-backtrace", "unstable-options"}, got.cargo.Unstable)
	require.True(t, got.cargo.Tests)
	require.True(t, got.cargo.Release)
	require.Equal(t, 4, got.cargo.Jobs)
	require.Equal(t, config.Never, got.color)
	require.True(t, got.skipAutoDerived)
	require.True(t, cmd.Flags().Changed("color"))
}

// optionsOf recovers the expandOptions bound to cmd's flags.
func optionsOf(t *testing.T, cmd *cobra.Command) *expandOptions {
	t.Helper()
	opts := &expandOptions{}
	fl := cmd.Flags()
	opts.cargo.Bin = *fl.Lookup("bin").Value.(*cargo.Optional)
	opts.cargo.Example = *fl.Lookup("example").Value.(*cargo.Optional)
	opts.cargo.Test = *fl.Lookup("test").Value.(*cargo.Optional)
	opts.cargo.Package = *fl.Lookup("package").Value.(*cargo.Optional)
	opts.color = *fl.Lookup("color").Value.(*config.Coloring)

	var err error
	opts.cargo.Features, err = fl.GetString("features")
	require.NoError(t, err)
	opts.cargo.Unstable, err = fl.GetStringArray("unstable")
	require.NoError(t, err)
	opts.cargo.Tests, err = fl.GetBool("tests")
	require.NoError(t, err)
	opts.cargo.Release, err = fl.GetBool("release")
	require.NoError(t, err)
	opts.cargo.Jobs, err = fl.GetInt("jobs")
	require.NoError(t, err)
	opts.skipAutoDerived, err = fl.GetBool("skip-auto-derived")
	require.NoError(t, err)
	return opts
}

func TestCargoColor(t *testing.T) {
	require.Equal(t, "always", cargoColor(config.Always))
	require.Equal(t, "never", cargoColor(config.Never))
}
