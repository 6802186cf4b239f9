package config

import (
	"github.com/cockroachdb/errors"
)

// Coloring is the `--color` choice.
type Coloring uint8

const (
	Auto Coloring = iota
	Always
	Never
)

func (c Coloring) String() string {
	switch c {
	case Always:
		return "always"
	case Never:
		return "never"
	default:
		return "auto"
	}
}

// ParseColoring accepts exactly auto, always or never.
func ParseColoring(s string) (Coloring, error) {
	switch s {
	case "auto":
		return Auto, nil
	case "always":
		return Always, nil
	case "never":
		return Never, nil
	default:
		return Auto, errors.Newf("must be auto, always, or never, but found `%s`", s)
	}
}

// Set and Type let Coloring be used as a pflag.Value.
func (c *Coloring) Set(s string) error {
	v, err := ParseColoring(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (*Coloring) Type() string { return "WHEN" }

// ResolveColoring picks the effective coloring: an explicit flag wins, then
// NO_COLOR, then the config file. An invalid config value is reported
// through warn and ignored.
func ResolveColoring(flag *Coloring, noColorEnv bool, cfg Config, warn func(error)) Coloring {
	if flag != nil {
		return *flag
	}
	if noColorEnv {
		return Never
	}
	if cfg.Color != "" {
		c, err := ParseColoring(cfg.Color)
		if err == nil {
			return c
		}
		if warn != nil {
			warn(errors.Wrap(err, "invalid color in cargo config"))
		}
	}
	return Auto
}
