// Package driver runs the rendering pipeline over rustc's expanded output:
// parse, sanitize, select, render, and rustfmt as a fallback.
package driver

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/cache"
	"cargo-expand/internal/edit"
	"cargo-expand/internal/fault"
	"cargo-expand/internal/filter"
	"cargo-expand/internal/format"
	"cargo-expand/internal/parser"
	"cargo-expand/internal/trace"
	"cargo-expand/internal/unparse"
)

// ErrNoSuchItem is returned when the selector matches nothing.
var ErrNoSuchItem = errors.New("no such item")

// DollarCrate stands in for `$crate` while parsing and formatting. It has
// the same display width so alignment survives.
const DollarCrate = "Ξcrate"

// Stage is how far formatting got.
type Stage uint8

const (
	// Questionable means the source could not be parsed; the raw text is
	// kept.
	Questionable Stage = iota
	// Unformatted means the tree was printed on one line and still needs
	// rustfmt.
	Unformatted
	// Formatted is final.
	Formatted
)

func (s Stage) String() string {
	switch s {
	case Formatted:
		return "formatted"
	case Unformatted:
		return "unformatted"
	default:
		return "questionable"
	}
}

// Formatter is an external formatter used when the built-in printer is
// bypassed or fails. *rustfmt.Rustfmt implements it.
type Formatter interface {
	Format(ctx context.Context, dir, src string) (string, error)
}

// Options selects the pipeline stages.
type Options struct {
	// Item narrows the output to one declaration.
	Item *filter.Selector
	// Ugly returns the compiler output untouched.
	Ugly bool
	// SkipAutoDerived drops impls generated by derive macros.
	SkipAutoDerived bool
	// PreferRustfmt skips the built-in printer and formats with Rustfmt.
	PreferRustfmt bool
	// Rustfmt formats what the built-in printer could not. May be nil.
	Rustfmt Formatter
	// TempDir is the scratch directory handed to Rustfmt.
	TempDir string
	// Cache stores formatted results. May be nil.
	Cache *cache.Cache
	// Observer receives phase timings. May be nil.
	Observer PhaseObserver
}

func (o *Options) fingerprint() []string {
	item := ""
	if o.Item != nil {
		item = o.Item.String()
	}
	return []string{
		"item=" + item,
		"skip-auto-derived=" + strconv.FormatBool(o.SkipAutoDerived),
		"rustfmt=" + strconv.FormatBool(o.PreferRustfmt),
	}
}

// Result is the text to print.
type Result struct {
	Text  string
	Stage Stage
	// Placeholders counts subtrees replaced by `...`.
	Placeholders int
	Cached       bool
}

// Format turns the compiler's expanded output into the text to print. The
// only error is a selector that matches nothing; parse and render failures
// degrade the Stage instead. A broken fault boundary panics.
func Format(ctx context.Context, content string, opts Options) (Result, error) {
	if opts.Ugly {
		return Result{Text: content, Stage: Questionable}, nil
	}

	sp, ctx := trace.Start(ctx, trace.ScopeDriver, "format")
	res, err := run(ctx, content, &opts)
	sp.WithExtra("stage", res.Stage.String()).
		WithExtra("placeholders", strconv.Itoa(res.Placeholders)).
		End(errDetail(err))
	return res, err
}

func run(ctx context.Context, content string, opts *Options) (Result, error) {
	tr := trace.FromContext(ctx)
	key := cache.Key(content, opts.fingerprint()...)
	if e, ok, err := opts.Cache.Get(key); err != nil {
		trace.Point(tr, trace.ScopePass, "cache.error", err.Error(), 0)
	} else if ok {
		return Result{Text: e.Formatted, Stage: Stage(e.Stage), Placeholders: e.Placeholders, Cached: true}, nil
	}

	wip := strings.ReplaceAll(content, "$crate", DollarCrate)
	res := Result{Stage: Questionable}
	var text string

	pctx, done := startPhase(ctx, opts.Observer, "parse")
	file, err := parser.ParseString(wip)
	done(errDetail(err))
	if err != nil {
		trace.Point(trace.FromContext(pctx), trace.ScopePass, "parse.error", err.Error(), 0)
	}

	if file != nil {
		_, done = startPhase(ctx, opts.Observer, "sanitize")
		edit.Sanitize(file)
		if opts.SkipAutoDerived {
			edit.SkipAutoDerived(file)
		}
		done("")

		if opts.Item != nil {
			_, done = startPhase(ctx, opts.Observer, "filter")
			opts.Item.Apply(file)
			done(strconv.Itoa(len(file.Items)) + " items")
			if len(file.Items) == 0 {
				return Result{}, errors.Mark(errors.Newf("no such item: %s", opts.Item), ErrNoSuchItem)
			}
		}

		uctx, done := startPhase(ctx, opts.Observer, "unparse")
		if !opts.PreferRustfmt {
			if out, err := fault.Catch(func() string { return unparse.Maximal(uctx, file, format.Unparse) }); err == nil {
				res.Stage, text = Formatted, out
			}
		}
		if res.Stage == Questionable {
			if out, err := fault.Catch(func() string { return unparse.Maximal(uctx, file, format.Tokens) }); err == nil {
				res.Stage, text = Unformatted, out
			}
		}
		res.Placeholders = ast.CountPlaceholders(file)
		done(res.Stage.String())
	}

	if res.Stage != Formatted && opts.Rustfmt != nil {
		src := wip
		if res.Stage == Unformatted {
			src = text
		}
		rctx, done := startPhase(ctx, opts.Observer, "rustfmt")
		out, err := opts.Rustfmt.Format(rctx, opts.TempDir, src)
		done(errDetail(err))
		if err == nil {
			res.Stage, text = Formatted, out
		}
	}

	if res.Stage != Formatted {
		res.Text = content
		return res, nil
	}
	res.Text = strings.ReplaceAll(text, DollarCrate, "$crate")

	err = opts.Cache.Put(key, &cache.Entry{Stage: uint8(res.Stage), Formatted: res.Text, Placeholders: res.Placeholders})
	if err != nil {
		trace.Point(tr, trace.ScopePass, "cache.error", err.Error(), 0)
	}
	return res, nil
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
