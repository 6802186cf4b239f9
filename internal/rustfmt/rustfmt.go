// Package rustfmt runs rustfmt over expanded source as a fallback
// formatter.
package rustfmt

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/google/shlex"

	"cargo-expand/internal/trace"
)

// ErrNotFound is returned by Find when no rustfmt is available.
var ErrNotFound = errors.New("rustfmt is not found")

// ErrFailed means rustfmt rejected the input under every edition.
var ErrFailed = errors.New("rustfmt failed")

// Editions are tried newest first.
var Editions = []string{"2021", "2018", "2015"}

// Rustfmt is a resolved rustfmt command.
type Rustfmt struct {
	Argv []string
}

// Find resolves rustfmt from $RUSTFMT (split like a shell word list; set
// but empty disables rustfmt) or from PATH.
func Find() (*Rustfmt, error) {
	if v, ok := os.LookupEnv("RUSTFMT"); ok {
		if v == "" {
			return nil, ErrNotFound
		}
		argv, err := shlex.Split(v)
		if err != nil {
			return nil, errors.Wrap(err, "parse $RUSTFMT")
		}
		if len(argv) == 0 {
			return nil, ErrNotFound
		}
		return &Rustfmt{Argv: argv}, nil
	}
	path, err := exec.LookPath("rustfmt")
	if err != nil {
		return nil, errors.WithHint(ErrNotFound,
			"Install rustfmt by running `rustup component add rustfmt --toolchain nightly`.")
	}
	return &Rustfmt{Argv: []string{path}}, nil
}

type config struct {
	NormalizeDocAttributes bool `toml:"normalize_doc_attributes"`
	ReorderImports         bool `toml:"reorder_imports"`
	ReorderModules         bool `toml:"reorder_modules"`
}

// WriteConfig writes the rustfmt.toml used for expanded code into dir.
func WriteConfig(dir string) error {
	var buf bytes.Buffer
	err := toml.NewEncoder(&buf).Encode(config{NormalizeDocAttributes: true})
	if err != nil {
		return errors.Wrap(err, "encode rustfmt.toml")
	}
	return errors.Wrap(os.WriteFile(filepath.Join(dir, "rustfmt.toml"), buf.Bytes(), 0o644), "write rustfmt.toml")
}

// Format writes src to dir and runs rustfmt over it, trying each edition
// until one succeeds.
func (r *Rustfmt) Format(ctx context.Context, dir, src string) (string, error) {
	sp, ctx := trace.Start(ctx, trace.ScopePass, "rustfmt")
	defer sp.End("")

	path := filepath.Join(dir, "expanded.rs")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return "", errors.Wrap(err, "write rustfmt input")
	}
	if err := WriteConfig(dir); err != nil {
		return "", err
	}

	tr := trace.FromContext(ctx)
	for _, edition := range Editions {
		args := append(append([]string(nil), r.Argv[1:]...), "--edition", edition, path)
		cmd := exec.CommandContext(ctx, r.Argv[0], args...)
		if err := cmd.Run(); err != nil {
			trace.Point(tr, trace.ScopeNode, "rustfmt.edition", edition+": "+err.Error(), sp.ID())
			continue
		}
		sp.WithExtra("edition", edition)
		out, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(err, "read rustfmt output")
		}
		return string(out), nil
	}
	return "", ErrFailed
}
