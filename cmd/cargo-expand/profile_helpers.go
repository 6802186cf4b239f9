package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"cargo-expand/internal/prof"
)

// setupProfiling inspects persistent profiling flags and enables the
// corresponding profilers. It returns a cleanup function that is safe to call
// multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, errors.Wrap(err, "failed to get cpu-profile flag")
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, errors.Wrap(err, "failed to get mem-profile flag")
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, errors.Wrap(err, "failed to get runtime-trace flag")
	}

	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to write heap profile: %v\n", err)
		}
	}, nil
}
