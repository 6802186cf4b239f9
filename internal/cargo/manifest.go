package cargo

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

type manifest struct {
	Package *struct {
		DefaultRun string `toml:"default-run"`
	} `toml:"package"`
}

// DefaultRun reads `package.default-run` from the manifest at path, or from
// the nearest Cargo.toml above the working directory when path is empty.
func DefaultRun(path string) (string, error) {
	if path == "" {
		var err error
		if path, err = FindManifest(); err != nil {
			return "", err
		}
	}
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return "", errors.Wrapf(err, "%s", path)
	}
	if m.Package == nil {
		return "", nil
	}
	return m.Package.DefaultRun, nil
}

// FindManifest walks up from the working directory to the first Cargo.toml.
func FindManifest() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "current directory")
	}
	for {
		p := filepath.Join(dir, "Cargo.toml")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("Cargo.toml not found")
		}
		dir = parent
	}
}
