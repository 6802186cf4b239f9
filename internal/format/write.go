package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer accumulates formatted output and tracks indentation and the display
// width of the current line.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
	col         int
}

// NewWriter creates a new formatting writer.
func NewWriter(opt Options) *Writer {
	return &Writer{
		opt:         opt.withDefaults(),
		atLineStart: true,
	}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// String returns the accumulated formatted output.
func (w *Writer) String() string {
	return string(w.buf)
}

// Col returns the display width of the current line.
func (w *Writer) Col() int {
	return w.col
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	w.atLineStart = false
	if w.opt.OneLine {
		return
	}
	n := w.indentLevel * w.opt.IndentWidth
	for range n {
		w.buf = append(w.buf, ' ')
	}
	w.col += n
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.col = runewidth.StringWidth(s[i+1:])
	} else {
		w.col += runewidth.StringWidth(s)
	}
	w.atLineStart = s[len(s)-1] == '\n'
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 || w.atLineStart {
		return
	}
	if last := w.buf[len(w.buf)-1]; last == ' ' || last == '\n' {
		return
	}
	w.buf = append(w.buf, ' ')
	w.col++
}

// Newline ends the current line. In one-line mode it writes a space instead.
func (w *Writer) Newline() {
	if w.opt.OneLine {
		w.Space()
		return
	}
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
	w.col = 0
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// Finish trims trailing spaces and terminates the output with a newline.
func (w *Writer) Finish() string {
	out := strings.TrimRight(string(w.buf), " \n")
	if out == "" {
		return ""
	}
	return out + "\n"
}
