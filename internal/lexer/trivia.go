package lexer

import (
	"strings"

	"cargo-expand/internal/token"
)

// skipTrivia consumes whitespace and comments. Doc comments are not trivia:
// they are pushed as DocComment tokens so the parser can turn them into
// `doc` attributes.
func (lx *Lexer) skipTrivia() error {
	c := &lx.cursor
	for !c.EOF() {
		r, size := c.PeekRune(0)
		switch {
		case isWhitespace(r):
			c.BumpN(size)
			lx.space = true
		case c.HasPrefix("//"):
			lx.lineComment()
		case c.HasPrefix("/*"):
			if err := lx.blockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *Lexer) lineComment() {
	c := &lx.cursor
	start := c.Mark()
	for !c.EOF() && c.Peek() != '\n' {
		c.Bump()
	}
	text := lx.file.Text(c.SpanFrom(start))
	switch {
	case strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////"):
		lx.pushDoc(start, strings.TrimSuffix(text[3:], "\r"), false)
	case strings.HasPrefix(text, "//!"):
		lx.pushDoc(start, strings.TrimSuffix(text[3:], "\r"), true)
	}
	lx.space = true
}

func (lx *Lexer) blockComment() error {
	c := &lx.cursor
	start := c.Mark()
	c.BumpN(2)
	depth := 1
	for depth > 0 {
		if c.EOF() {
			return lx.file.Errorf(c.SpanFrom(start), "unterminated block comment")
		}
		switch {
		case c.HasPrefix("/*"):
			c.BumpN(2)
			depth++
		case c.HasPrefix("*/"):
			c.BumpN(2)
			depth--
		default:
			c.Bump()
		}
	}
	text := lx.file.Text(c.SpanFrom(start))
	switch {
	case len(text) < 5:
		// `/**/`
	case strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***"):
		lx.pushDoc(start, text[3:len(text)-2], false)
	case strings.HasPrefix(text, "/*!"):
		lx.pushDoc(start, text[3:len(text)-2], true)
	}
	lx.space = true
	return nil
}

func (lx *Lexer) pushDoc(start uint32, body string, inner bool) {
	lx.push(token.Token{
		Kind:  token.DocComment,
		Text:  token.QuoteString(body),
		Inner: inner,
		Span:  lx.cursor.SpanFrom(start),
	})
}
