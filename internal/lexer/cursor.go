package lexer

import (
	"unicode/utf8"

	"cargo-expand/internal/source"
)

// Cursor is a byte position inside a file.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	return Cursor{
		File:  f,
		Off:   0,
		Limit: f.Len(),
	}
}

// EOF reports whether the cursor reached the end of the file.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt returns the byte n positions ahead or 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// PeekRune decodes the rune n bytes ahead.
func (c *Cursor) PeekRune(n uint32) (rune, int) {
	if c.Off+n >= c.Limit {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(c.File.Content[c.Off+n : c.Limit])
}

// HasPrefix reports whether the remaining input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.File.Content[c.Off:c.Limit]
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// Bump advances one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// BumpN advances n bytes.
func (c *Cursor) BumpN(n int) {
	for range n {
		c.Bump()
	}
}

// BumpRune advances over one UTF-8 encoded rune.
func (c *Cursor) BumpRune() rune {
	r, size := c.PeekRune(0)
	c.BumpN(max(size, 1))
	return r
}

// Mark returns the current offset.
func (c *Cursor) Mark() uint32 {
	return c.Off
}

// SpanFrom returns the span from start to the current offset.
func (c *Cursor) SpanFrom(start uint32) source.Span {
	return source.Span{Start: start, End: c.Off}
}
