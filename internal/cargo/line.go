package cargo

import (
	"slices"
	"strings"
)

// Line is a command line: a program followed by its arguments.
type Line struct {
	Bin  string
	Args []string
}

func NewLine(bin string) *Line {
	return &Line{Bin: bin}
}

func (l *Line) Arg(a string) {
	l.Args = append(l.Args, a)
}

// Opt appends the value of an optional-valued flag when there is one.
func (l *Line) Opt(o Optional) {
	if o.Value != "" {
		l.Args = append(l.Args, o.Value)
	}
}

func (l *Line) Insert(i int, a string) {
	l.Args = slices.Insert(l.Args, i, a)
}

func (l *Line) Clone() *Line {
	return &Line{Bin: l.Bin, Args: slices.Clone(l.Args)}
}

// String renders the line for display, quoting words the shell would split.
func (l *Line) String() string {
	words := make([]string, 0, len(l.Args)+1)
	words = append(words, quote(l.Bin))
	for _, a := range l.Args {
		words = append(words, quote(a))
	}
	return strings.Join(words, " ")
}

const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_=+.,/:@%"

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.Trim(s, shellSafe) == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
