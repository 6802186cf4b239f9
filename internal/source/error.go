package source

import "fmt"

// Error is a syntax error anchored at a position of a File.
type Error struct {
	Path string
	Pos  LineCol
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s:%s: %s", e.Path, e.Pos, e.Msg)
}

// Errorf builds an Error located at the start of span.
func (f *File) Errorf(span Span, format string, args ...any) *Error {
	return &Error{
		Path: f.Path,
		Pos:  f.Position(span.Start),
		Msg:  fmt.Sprintf(format, args...),
	}
}
