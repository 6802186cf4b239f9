package cargo

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBuildLine(t *testing.T) {
	tail := []string{"--", "-o", "/tmp/out/expanded", "-Zunpretty=expanded"}
	tests := []struct {
		name string
		args Args
		want []string
	}{
		{
			name: "default",
			want: []string{"rustc", "--profile", "check", "--color", "never"},
		},
		{
			name: "release tests",
			args: Args{Tests: true, Release: true},
			want: []string{"rustc", "--profile", "bench", "--color", "never"},
		},
		{
			name: "tests with explicit test target",
			args: Args{Tests: true, Test: Optional{Present: true, Value: "it"}},
			want: []string{"rustc", "--profile", "check", "--test", "it", "--color", "never"},
		},
		{
			name: "explicit profile wins",
			args: Args{Profile: "dev", Release: true},
			want: []string{"rustc", "--profile", "dev", "--color", "never"},
		},
		{
			name: "bare bin and package",
			args: Args{Bin: Optional{Present: true}, Package: Optional{Present: true, Value: "core"}},
			want: []string{"rustc", "--profile", "check", "--bin", "--package", "core", "--color", "never"},
		},
		{
			name: "default-run only without explicit target",
			args: Args{DefaultRun: "app"},
			want: []string{"rustc", "--profile", "check", "--bin", "app", "--color", "never"},
		},
		{
			name: "default-run ignored with --lib",
			args: Args{Lib: true, DefaultRun: "app"},
			want: []string{"rustc", "--profile", "check", "--lib", "--color", "never"},
		},
		{
			name: "everything else",
			args: Args{
				Features: "a b", AllFeatures: true, NoDefaultFeatures: true,
				Target: "x86_64-unknown-linux-gnu", TargetDir: "t", ManifestPath: "Cargo.toml",
				Jobs: 4, Verbose: true, Frozen: true, Locked: true, Offline: true,
				Unstable: []string{"macro-backtrace"},
			},
			want: []string{
				"rustc", "--profile", "check",
				"--features", "a b", "--all-features", "--no-default-features",
				"--target", "x86_64-unknown-linux-gnu", "--target-dir", "t",
				"--manifest-path", "Cargo.toml", "--jobs", "4", "--verbose",
				"--color", "never", "--frozen", "--locked", "--offline",
				"-Z", "macro-backtrace",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := BuildLine("cargo", &tt.args, "never", "/tmp/out/expanded")
			require.Equal(t, "cargo", line.Bin)
			if diff := cmp.Diff(append(tt.want, tail...), line.Args); diff != "" {
				t.Fatalf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionalFlag(t *testing.T) {
	var o Optional
	require.NoError(t, o.Set(AnyValue))
	require.Equal(t, Optional{Present: true}, o)
	require.NoError(t, o.Set("bin"))
	require.Equal(t, Optional{Present: true, Value: "bin"}, o)
}

func TestLineString(t *testing.T) {
	line := NewLine("cargo")
	line.Arg("rustc")
	line.Arg("--features")
	line.Arg("a b")
	line.Arg("it's")
	line.Arg("")
	clone := line.Clone()
	clone.Insert(0, "+nightly")

	require.Equal(t, `cargo rustc --features 'a b' 'it'\''s' ''`, line.String())
	require.Equal(t, `cargo +nightly rustc --features 'a b' 'it'\''s' ''`, clone.String())
}

func TestIgnoreLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"\n", true},
		{"   \n", true},
		{"warning: 1 warning emitted\n", true},
		{"warning: `demo` (lib) generated 2 warnings\n", true},
		{"warning: ignoring --out-dir flag due to -o flag\n", true},
		{"error[E0425]: cannot find value `x` in this scope\n", false},
		{"   Compiling demo v0.1.0\n", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IgnoreLine(tt.line), tt.line)
	}
}

func TestRunFiltersStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh")
	}
	cmd := exec.Command("sh", "-c", `echo "1 warning emitted" >&2; echo "" >&2; echo "   Compiling demo" >&2; printf tail >&2; exit 3`)
	var stderr bytes.Buffer
	code, err := Run(cmd, &stderr)
	require.NoError(t, err)
	require.Equal(t, 3, code)
	require.Equal(t, "   Compiling demo\ntail", stderr.String())
}

func TestDefaultRun(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(p, []byte("[package]\nname = \"demo\"\ndefault-run = \"app\"\n"), 0o644))

	got, err := DefaultRun(p)
	require.NoError(t, err)
	require.Equal(t, "app", got)

	ws := filepath.Join(dir, "ws.toml")
	require.NoError(t, os.WriteFile(ws, []byte("[workspace]\nmembers = []\n"), 0o644))
	got, err = DefaultRun(ws)
	require.NoError(t, err)
	require.Empty(t, got)

	t.Chdir(dir)
	found, err := FindManifest()
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(found, "Cargo.toml"))
}

func TestPrintCommand(t *testing.T) {
	var buf bytes.Buffer
	line := NewLine("cargo")
	line.Arg("rustc")
	PrintCommand(&buf, line, false)
	require.Equal(t, "     Running `cargo rustc`\n", buf.String())

	buf.Reset()
	PrintCommand(&buf, line, true)
	require.Contains(t, buf.String(), "\x1b[")
	require.Contains(t, buf.String(), "Running")
}
