package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestKey(t *testing.T) {
	a := Key("fn main() {}", "pretty")
	require.Equal(t, a, Key("fn main() {}", "pretty"))
	require.NotEqual(t, a, Key("fn main() {}", "rustfmt"))
	require.NotEqual(t, a, Key("fn main() {} ", "pretty"))
	// part boundaries matter
	require.NotEqual(t, Key("", "ab", "c"), Key("", "a", "bc"))
	require.Len(t, a.String(), 64)
}

func TestPutGet(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	require.NoError(t, err)

	key := Key("src")
	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Put(key, &Entry{Stage: 1, Formatted: "fn main() {}\n", Placeholders: 2}))
	got, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, &Entry{Schema: schemaVersion, Stage: 1, Formatted: "fn main() {}\n", Placeholders: 2}, got)
}

func TestGetIgnoresOtherSchema(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenDir(dir)
	require.NoError(t, err)

	key := Key("src")
	data, err := msgpack.Marshal(&Entry{Schema: schemaVersion + 1, Formatted: "x"})
	require.NoError(t, err)
	p := c.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cargo-expand")
	c, err := OpenDir(dir)
	require.NoError(t, err)
	key := Key("src")
	require.NoError(t, c.Put(key, &Entry{Formatted: "x"}))

	require.NoError(t, c.DropAll())
	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, c.DropAll())
}

func TestNilCache(t *testing.T) {
	var c *Cache
	require.NoError(t, c.Put(Key("x"), &Entry{}))
	_, ok, err := c.Get(Key("x"))
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, c.DropAll())
}

func TestOpenUsesXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	c, err := Open("cargo-expand")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "cargo-expand"), c.dir)
}
