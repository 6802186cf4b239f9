package cargo

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
)

// Binary is the cargo executable: $CARGO, else `cargo`.
func Binary() string {
	if c := os.Getenv("CARGO"); c != "" {
		return c
	}
	return "cargo"
}

// Command prepares line for execution. RUSTC_BOOTSTRAP lets a stable
// toolchain accept -Zunpretty.
func Command(ctx context.Context, line *Line) *exec.Cmd {
	cmd := exec.CommandContext(ctx, line.Bin, line.Args...)
	cmd.Env = append(os.Environ(), "RUSTC_BOOTSTRAP=1")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	return cmd
}

// Run starts cmd, copies its stderr to stderr minus the lines IgnoreLine
// drops, and returns the exit code. A child killed by a signal reports 1.
func Run(cmd *exec.Cmd, stderr io.Writer) (int, error) {
	pipe, err := cmd.StderrPipe()
	if err != nil {
		return 0, errors.Wrap(err, "stderr pipe")
	}
	if err := cmd.Start(); err != nil {
		return 0, errors.Wrapf(err, "failed to run %s", cmd.Path)
	}

	var g errgroup.Group
	g.Go(func() error {
		return filterLines(pipe, stderr)
	})
	copyErr := g.Wait()

	err = cmd.Wait()
	var exit *exec.ExitError
	switch {
	case errors.As(err, &exit):
		if code := exit.ExitCode(); code >= 0 {
			return code, copyErr
		}
		return 1, copyErr
	case err != nil:
		return 0, errors.Wrap(err, "waiting for cargo")
	}
	return 0, copyErr
}

func filterLines(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && !IgnoreLine(line) {
			if _, werr := io.WriteString(w, line); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

var discarded = []string{
	"ignoring specified output filename because multiple outputs were requested",
	"ignoring specified output filename for 'link' output because multiple outputs were requested",
	"ignoring --out-dir flag due to -o flag",
	"ignoring -C extra-filename flag due to -o flag",
	"due to multiple output types requested, the explicitly specified output file name will be adapted for each output type",
	"warning emitted",
	"warnings emitted",
	") generated ",
}

// IgnoreLine reports whether a line of cargo/rustc stderr is noise caused by
// `-o` with `-Zunpretty`, a warning summary, or blank.
func IgnoreLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	for _, s := range discarded {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// PrintCommand writes cargo's `     Running `...`` status line.
func PrintCommand(w io.Writer, line *Line, color bool) {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	status := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("2")).
		Width(12).
		Align(lipgloss.Right).
		Render("Running")
	_, _ = io.WriteString(w, status+" `"+line.String()+"`\n")
}
