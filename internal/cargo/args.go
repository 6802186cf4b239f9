// Package cargo builds and runs the `cargo rustc -Zunpretty=expanded`
// invocation behind `cargo expand`.
package cargo

import (
	"strconv"
)

// AnyValue is the pflag NoOptDefVal of Optional flags given without a value.
const AnyValue = "\x00"

// Optional is a flag that may be given bare or with a value, like
// `--bin` and `--bin=name`.
type Optional struct {
	Present bool
	Value   string
}

func (o *Optional) String() string { return o.Value }

func (o *Optional) Set(s string) error {
	o.Present = true
	if s != AnyValue {
		o.Value = s
	}
	return nil
}

func (*Optional) Type() string { return "NAME" }

// Args are the cargo-facing options of `cargo expand`.
type Args struct {
	Features          string
	AllFeatures       bool
	NoDefaultFeatures bool
	Lib               bool
	Bin               Optional
	Example           Optional
	Test              Optional
	Tests             bool
	Bench             Optional
	Target            string
	TargetDir         string
	ManifestPath      string
	Package           Optional
	Release           bool
	Profile           string
	Jobs              int
	Verbose           bool
	Frozen            bool
	Locked            bool
	Offline           bool
	Unstable          []string

	// DefaultRun is the manifest's `default-run` binary, used when no
	// target is selected explicitly.
	DefaultRun string
}

// HasExplicitTarget reports whether a build target flag was given.
func (a *Args) HasExplicitTarget() bool {
	return a.Lib || a.Bin.Present || a.Example.Present || a.Test.Present || a.Bench.Present
}

// profile picks `--profile`: explicit, then test/bench for --tests, then
// release, then check.
func (a *Args) profile() string {
	switch {
	case a.Profile != "":
		return a.Profile
	case a.Tests && !a.Test.Present:
		if a.Release {
			return "bench"
		}
		return "test"
	case a.Release:
		return "release"
	default:
		return "check"
	}
}

// BuildLine assembles the cargo command line. color is the value passed to
// cargo's own --color; outfile receives the expanded source.
func BuildLine(cargo string, a *Args, color, outfile string) *Line {
	line := NewLine(cargo)
	line.Arg("rustc")
	line.Arg("--profile")
	line.Arg(a.profile())

	if a.Features != "" {
		line.Arg("--features")
		line.Arg(a.Features)
	}
	if a.AllFeatures {
		line.Arg("--all-features")
	}
	if a.NoDefaultFeatures {
		line.Arg("--no-default-features")
	}

	if a.Lib {
		line.Arg("--lib")
	}
	for _, t := range []struct {
		flag string
		opt  Optional
	}{
		{"--bin", a.Bin},
		{"--example", a.Example},
		{"--test", a.Test},
		{"--bench", a.Bench},
	} {
		if t.opt.Present {
			line.Arg(t.flag)
			line.Opt(t.opt)
		}
	}
	if !a.HasExplicitTarget() && a.DefaultRun != "" {
		line.Arg("--bin")
		line.Arg(a.DefaultRun)
	}

	if a.Target != "" {
		line.Arg("--target")
		line.Arg(a.Target)
	}
	if a.TargetDir != "" {
		line.Arg("--target-dir")
		line.Arg(a.TargetDir)
	}
	if a.ManifestPath != "" {
		line.Arg("--manifest-path")
		line.Arg(a.ManifestPath)
	}
	if a.Package.Present {
		line.Arg("--package")
		line.Opt(a.Package)
	}
	if a.Jobs > 0 {
		line.Arg("--jobs")
		line.Arg(strconv.Itoa(a.Jobs))
	}
	if a.Verbose {
		line.Arg("--verbose")
	}

	line.Arg("--color")
	line.Arg(color)

	if a.Frozen {
		line.Arg("--frozen")
	}
	if a.Locked {
		line.Arg("--locked")
	}
	if a.Offline {
		line.Arg("--offline")
	}
	for _, z := range a.Unstable {
		line.Arg("-Z")
		line.Arg(z)
	}

	line.Arg("--")
	line.Arg("-o")
	line.Arg(outfile)
	line.Arg("-Zunpretty=expanded")
	return line
}
