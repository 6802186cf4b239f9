package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cargo-expand/internal/trace"
	"cargo-expand/internal/version"
)

// exitError carries a process exit code. Its message, if any, has already
// been printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func exit(code int) error {
	if code == 0 {
		return nil
	}
	return &exitError{code: code}
}

var (
	warnPrefix  = color.New(color.FgYellow, color.Bold)
	errorPrefix = color.New(color.FgRed, color.Bold)
)

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", warnPrefix.Sprint("WARNING:"), fmt.Sprintf(format, args...))
}

func errorf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", errorPrefix.Sprint("ERROR:"), fmt.Sprintf(format, args...))
}

// newRootCmd builds `cargo expand`. Cargo runs subcommands as
// `cargo-expand expand ARGS`, so the root stands in for `cargo`.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cargo",
		Short:         "Show result of macro expansion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("trace", "", "write trace events to file ('-' for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring|both")
	root.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(newExpandCmd())
	return root
}

func main() {
	root := newRootCmd()
	root.Version = version.Long()

	err := root.Execute()
	if err == nil {
		return
	}
	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", errorPrefix.Sprint("ERROR:"), err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
	os.Exit(1)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// dumpRing writes the ring buffer of the context's tracer to stderr. Used
// when the pipeline panics.
func dumpRing(cmd *cobra.Command) {
	ring := trace.RingOf(trace.FromContext(cmd.Context()))
	if ring == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "trace ring buffer:")
	_ = ring.Dump(os.Stderr, trace.FormatText)
}
