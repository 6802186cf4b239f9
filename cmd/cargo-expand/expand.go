package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cargo-expand/internal/cache"
	"cargo-expand/internal/cargo"
	"cargo-expand/internal/config"
	"cargo-expand/internal/driver"
	"cargo-expand/internal/filter"
	"cargo-expand/internal/highlight"
	"cargo-expand/internal/observ"
	"cargo-expand/internal/rustfmt"
	"cargo-expand/internal/version"
)

type expandOptions struct {
	cargo cargo.Args

	color           config.Coloring
	ugly            bool
	theme           string
	themes          bool
	skipAutoDerived bool
	noCache         bool
}

func newExpandCmd() *cobra.Command {
	var opts expandOptions
	cmd := &cobra.Command{
		Use:   "expand [ITEM]",
		Short: "Show the result of macro expansion",
		Long: "Show the result of macro expansion.\n\n" +
			"ITEM is a local path to a module or other named item to expand, e.g. os::unix::ffi",
		Version: version.Long(),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var item *filter.Selector
			if len(args) == 1 {
				sel, err := filter.Parse(args[0])
				if err != nil {
					return errors.Wrapf(err, "invalid value '%s' for '[ITEM]'", args[0])
				}
				item = &sel
			}
			colorFlag := (*config.Coloring)(nil)
			if cmd.Flags().Changed("color") {
				colorFlag = &opts.color
			}
			return runExpand(cmd, &opts, item, colorFlag)
		},
	}

	f := cmd.Flags()
	c := &opts.cargo
	f.StringVar(&c.Features, "features", "", "Space-separated list of features to activate")
	f.BoolVar(&c.AllFeatures, "all-features", false, "Activate all available features")
	f.BoolVar(&c.NoDefaultFeatures, "no-default-features", false, "Do not activate the `default` feature")
	f.BoolVar(&c.Lib, "lib", false, "Expand only this package's library")
	optional(f, &c.Bin, "bin", "", "Expand only the specified binary")
	optional(f, &c.Example, "example", "", "Expand only the specified example")
	optional(f, &c.Test, "test", "", "Expand only the specified test target")
	f.BoolVar(&c.Tests, "tests", false, "Include tests when expanding the lib or bin")
	optional(f, &c.Bench, "bench", "", "Expand only the specified bench target")
	f.StringVar(&c.Target, "target", "", "Target triple which compiles will be for")
	f.StringVar(&c.TargetDir, "target-dir", "", "Directory for all generated artifacts")
	f.StringVar(&c.ManifestPath, "manifest-path", "", "Path to Cargo.toml")
	optional(f, &c.Package, "package", "p", "Package to expand")
	f.BoolVar(&c.Release, "release", false, "Build artifacts in release mode, with optimizations")
	f.StringVar(&c.Profile, "profile", "", "Build artifacts with the specified profile")
	f.IntVarP(&c.Jobs, "jobs", "j", 0, "Number of parallel jobs, defaults to # of CPUs")
	f.BoolVar(&c.Verbose, "verbose", false, "Print command lines as they are executed")
	f.Var(&opts.color, "color", "Coloring: auto, always, never")
	f.BoolVar(&c.Frozen, "frozen", false, "Require Cargo.lock and cache are up to date")
	f.BoolVar(&c.Locked, "locked", false, "Require Cargo.lock is up to date")
	f.BoolVar(&c.Offline, "offline", false, "Run without accessing the network")
	f.StringArrayVarP(&c.Unstable, "unstable", "Z", nil, "Unstable (nightly-only) flags to Cargo")
	f.BoolVar(&opts.ugly, "ugly", false, "Do not attempt to run rustfmt")
	f.StringVar(&opts.theme, "theme", "", "Select syntax highlighting theme")
	f.BoolVar(&opts.themes, "themes", false, "Print available syntax highlighting theme names")
	f.BoolVar(&opts.skipAutoDerived, "skip-auto-derived", false, "Omit impls generated by derive macros")
	f.BoolVar(&opts.noCache, "no-cache", false, "Do not read or write the render cache")
	return cmd
}

// optional registers a flag that may be given without a value.
func optional(f *pflag.FlagSet, o *cargo.Optional, name, short, usage string) {
	fl := f.VarPF(o, name, short, usage)
	fl.NoOptDefVal = cargo.AnyValue
}

func runExpand(cmd *cobra.Command, opts *expandOptions, item *filter.Selector, colorFlag *config.Coloring) (err error) {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		warnf(cmd, "%v", cfgErr)
	}

	if opts.themes {
		for _, theme := range highlight.Themes() {
			fmt.Fprintln(stdout, theme)
		}
		return nil
	}

	if item != nil && opts.ugly {
		errorf(cmd, "cannot expand single item (%s) in ugly mode.", item)
		return exit(1)
	}

	var fmtr *rustfmt.Rustfmt
	if cfg.Rustfmt {
		fmtr, err = rustfmt.Find()
		if err != nil {
			errorf(cmd, "cargo-expand configuration sets rustfmt=true, but rustfmt is not found. "+
				"Install rustfmt by running `rustup component add rustfmt --toolchain nightly`.")
			return exit(1)
		}
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	defer func() {
		if r := recover(); r != nil {
			dumpRing(cmd)
			panic(r)
		}
	}()
	ctx := cmd.Context()

	outdir, err := os.MkdirTemp("", "cargo-expand")
	if err != nil {
		return errors.Wrap(err, "failed to create tmp dir")
	}
	defer os.RemoveAll(outdir)
	outfile := filepath.Join(outdir, "expanded")

	coloring := config.ResolveColoring(colorFlag, os.Getenv("NO_COLOR") != "", cfg, func(err error) {
		warnf(cmd, "%v", err)
	})

	args := opts.cargo
	if !args.HasExplicitTarget() {
		run, err := cargo.DefaultRun(args.ManifestPath)
		if err != nil {
			warnf(cmd, "read cargo manifest fail: %v", err)
		}
		args.DefaultRun = run
	}

	line := cargo.BuildLine(cargo.Binary(), &args, cargoColor(coloring), outfile)
	if args.Verbose {
		display := line.Clone()
		display.Insert(0, "+nightly")
		cargo.PrintCommand(stderr, display, stderrColor(coloring))
	}

	var timer *observ.Timer
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		timer = observ.NewTimer()
		defer func() { fmt.Fprint(stderr, timer.Summary()) }()
	}

	started := time.Now()
	code, err := cargo.Run(cargo.Command(ctx, line), stderr)
	if err != nil {
		return err
	}
	if timer != nil {
		timer.Record("cargo", time.Since(started), "exit "+strconv.Itoa(code))
	}

	data, err := os.ReadFile(outfile)
	if errors.Is(err, os.ErrNotExist) {
		return exit(1)
	}
	if err != nil {
		return errors.Wrap(err, "read expanded output")
	}
	if len(data) == 0 {
		errorf(cmd, "rustc produced no expanded output")
		if code == 0 {
			return exit(1)
		}
		return exit(code)
	}

	dopts := driver.Options{
		Item:            item,
		Ugly:            opts.ugly,
		SkipAutoDerived: opts.skipAutoDerived,
		PreferRustfmt:   cfg.Rustfmt,
		TempDir:         outdir,
	}
	if fmtr == nil {
		fmtr, _ = rustfmt.Find()
	}
	if fmtr != nil {
		dopts.Rustfmt = fmtr
	}
	if cfg.Cache && !opts.noCache {
		c, err := cache.Open("cargo-expand")
		if err != nil {
			warnf(cmd, "cache disabled: %v", err)
		}
		dopts.Cache = c
	}
	if timer != nil {
		dopts.Observer = timingObserver(timer)
	}

	res, err := driver.Format(ctx, string(data), dopts)
	if errors.Is(err, driver.ErrNoSuchItem) {
		warnf(cmd, "%v", err)
		return exit(1)
	}
	if err != nil {
		return err
	}

	theme := opts.theme
	if theme == "" {
		theme = cfg.Theme
	}
	doColor := false
	switch coloring {
	case config.Always:
		doColor = true
	case config.Auto:
		doColor = theme != highlight.NoTheme && isTerminal(os.Stdout)
	}

	fmt.Fprintln(stderr)
	// output errors are ignored, as cargo-expand's own are
	_ = highlight.Print(stdout, res.Text, highlight.Options{Theme: theme, Color: doColor, Pager: cfg.Pager})
	return nil
}

// cargoColor is the --color passed to cargo itself.
func cargoColor(c config.Coloring) string {
	if c != config.Auto {
		return c.String()
	}
	if runtime.GOOS != "windows" && isTerminal(os.Stderr) {
		return "always"
	}
	return "never"
}

func stderrColor(c config.Coloring) bool {
	return cargoColor(c) == "always"
}
