// Package config reads the `[expand]` section of cargo's configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Config is the `[expand]` table of $CARGO_HOME/config.toml.
type Config struct {
	Theme   string `toml:"theme"`
	Color   string `toml:"color"`
	Pager   bool   `toml:"pager"`
	Rustfmt bool   `toml:"rustfmt"`
	Cache   bool   `toml:"cache"`
}

type sections struct {
	Expand Config `toml:"expand"`
}

// Load finds and decodes the configuration. A missing file yields the zero
// Config and no error; a malformed one yields the zero Config and an error
// naming the file, which callers report as a warning.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile decodes the `[expand]` section of path.
func LoadFile(path string) (Config, error) {
	var s sections
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return s.Expand, nil
}

// Path returns the first existing cargo config file, or "".
func Path() string {
	for _, home := range cargoHomes() {
		for _, name := range []string{"config.toml", "config"} {
			p := filepath.Join(home, name)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p
			}
		}
	}
	return ""
}

func cargoHomes() []string {
	var homes []string
	if h := os.Getenv("CARGO_HOME"); h != "" {
		homes = append(homes, h)
	}
	if h, err := os.UserHomeDir(); err == nil {
		homes = append(homes, filepath.Join(h, ".cargo"))
	}
	return homes
}
