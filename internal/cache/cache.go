// Package cache stores formatted expansions on disk, keyed by the raw
// compiler output and the options that shaped the rendering.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Entry format changes
const schemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Entry is one cached rendering.
type Entry struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Stage     uint8
	Formatted string
	// Placeholders is how many subtrees the renderer had to elide.
	Placeholders int
}

// Cache is an on-disk store of entries. A nil *Cache is a valid cache that
// never hits. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the cache under $XDG_CACHE_HOME/app, or ~/.cache/app.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "cache directory")
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir uses dir as the cache root.
func OpenDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create cache directory")
	}
	return &Cache{dir: dir}, nil
}

// Key hashes the raw content together with the option fingerprint parts.
func Key(content string, parts ...string) Digest {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	h.Write([]byte(content))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "expand", key.String()+".mp")
}

// Put serializes and writes an entry.
func (c *Cache) Put(key Digest, e *Entry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "create cache directory")
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Wrap(err, "create cache entry")
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	e.Schema = schemaVersion
	if err := msgpack.NewEncoder(f).Encode(e); err != nil {
		return errors.Wrap(err, "encode cache entry")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "write cache entry")
	}
	// atomic replace
	return errors.Wrap(os.Rename(f.Name(), p), "commit cache entry")
}

// Get reads an entry. Entries written under another schema are misses.
func (c *Cache) Get(key Digest) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read cache entry")
	}
	var e Entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, false, errors.Wrapf(err, "decode cache entry %s", key)
	}
	if e.Schema != schemaVersion {
		return nil, false, nil
	}
	return &e, true, nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "drop cache")
	}
	return errors.Wrap(os.RemoveAll(old), "drop cache")
}
