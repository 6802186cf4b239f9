package rustfmt

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestFindFromEnv(t *testing.T) {
	t.Setenv("RUSTFMT", `/opt/rust/bin/rustfmt --config "max_width=80"`)
	r, err := Find()
	require.NoError(t, err)
	require.Equal(t, []string{"/opt/rust/bin/rustfmt", "--config", "max_width=80"}, r.Argv)

	t.Setenv("RUSTFMT", "")
	_, err = Find()
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteConfig(dir))

	var got map[string]bool
	_, err := toml.DecodeFile(filepath.Join(dir, "rustfmt.toml"), &got)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{
		"normalize_doc_attributes": true,
		"reorder_imports":          false,
		"reorder_modules":          false,
	}, got)
}

// fakeRustfmt writes a script that accepts only the given edition and
// appends a marker line to the file it formats.
func fakeRustfmt(t *testing.T, edition string) *Rustfmt {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh")
	}
	script := filepath.Join(t.TempDir(), "rustfmt")
	body := "#!/bin/sh\n[ \"$2\" = \"" + edition + "\" ] || exit 1\necho \"// edition $2\" >> \"$3\"\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return &Rustfmt{Argv: []string{script}}
}

func TestFormatFallsBackThroughEditions(t *testing.T) {
	r := fakeRustfmt(t, "2018")
	out, err := r.Format(context.Background(), t.TempDir(), "fn main() {}\n")
	require.NoError(t, err)
	require.Equal(t, "fn main() {}\n// edition 2018\n", out)
}

func TestFormatFails(t *testing.T) {
	r := fakeRustfmt(t, "2024")
	_, err := r.Format(context.Background(), t.TempDir(), "fn main() {}\n")
	require.True(t, errors.Is(err, ErrFailed))
}
