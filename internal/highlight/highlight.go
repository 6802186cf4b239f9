// Package highlight prints expanded source with Rust syntax highlighting.
package highlight

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/cockroachdb/errors"
	"github.com/google/shlex"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "monokai"

// NoTheme disables highlighting.
const NoTheme = "none"

// DefaultPager is run when $PAGER is unset. -F quits if the output fits on
// one screen.
const DefaultPager = "less -FRX"

// Options controls Print.
type Options struct {
	Theme string
	Color bool
	Pager bool
}

// Themes lists the theme names Print accepts.
func Themes() []string {
	return styles.Names()
}

// Print writes content to w, highlighted when opts.Color is set and the
// theme is not "none". Highlighted output goes through the pager when
// opts.Pager is set and one can be started.
func Print(w io.Writer, content string, opts Options) error {
	if !opts.Color || opts.Theme == NoTheme {
		_, err := io.WriteString(w, content)
		return err
	}

	var buf bytes.Buffer
	if err := Highlight(&buf, content, opts.Theme); err != nil {
		return err
	}
	if opts.Pager {
		if ok, err := page(w, buf.Bytes()); ok {
			return err
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Highlight writes content as 256-color terminal output using theme.
func Highlight(w io.Writer, content, theme string) error {
	if theme == "" {
		theme = DefaultTheme
	}
	style, ok := styles.Registry[strings.ToLower(theme)]
	if !ok {
		style = lookupStyle(theme)
	}
	if style == nil {
		return errors.WithHint(errors.Newf("unknown theme %q", theme), "run `cargo expand --themes` to list themes")
	}

	lexer := chroma.Coalesce(lexers.Get("rust"))
	it, err := lexer.Tokenise(nil, expandTabs(content))
	if err != nil {
		return errors.Wrap(err, "tokenise")
	}
	return formatters.TTY256.Format(w, style, it)
}

func lookupStyle(name string) *chroma.Style {
	for n, s := range styles.Registry {
		if strings.EqualFold(n, name) || strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// expandTabs replaces tabs with spaces up to the next multiple of 4 columns.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := 4 - col%4
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}

// pagerArgv splits $PAGER, falling back to DefaultPager.
func pagerArgv() ([]string, error) {
	p := os.Getenv("PAGER")
	if p == "" {
		p = DefaultPager
	}
	return shlex.Split(p)
}

// page pipes out through the pager. ok is false when no pager could be
// started, in which case nothing was written.
func page(w io.Writer, out []byte) (ok bool, err error) {
	argv, err := pagerArgv()
	if err != nil || len(argv) == 0 {
		return false, nil
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return false, nil
	}
	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = bytes.NewReader(out)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return false, nil
	}
	return true, errors.Wrap(cmd.Wait(), "pager")
}
