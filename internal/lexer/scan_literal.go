package lexer

import (
	"cargo-expand/internal/token"
)

// afterFieldDot reports whether the previous token is a lone `.`, in which case
// a following number is a tuple index and never takes a fractional part:
// `x.0.1` is two field accesses, not `x.` followed by `0.1`.
func (lx *Lexer) afterFieldDot() bool {
	n := len(lx.toks)
	if n == 0 || lx.space || !lx.toks[n-1].IsPunct('.') {
		return false
	}
	return n < 2 || !(lx.toks[n-2].IsPunct('.') && lx.toks[n-2].Joint)
}

func (lx *Lexer) scanNumber(start uint32) error {
	c := &lx.cursor
	kind := token.LitInt

	if c.Peek() == '0' && (c.PeekAt(1) == 'x' || c.PeekAt(1) == 'o' || c.PeekAt(1) == 'b') {
		hex := c.PeekAt(1) == 'x'
		c.BumpN(2)
		for {
			b := c.Peek()
			if isDec(b) || b == '_' || hex && (b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F') {
				c.Bump()
				continue
			}
			break
		}
		lx.scanSuffix()
		lx.pushLit(start, kind)
		return nil
	}

	lx.scanDigits()
	if !lx.afterFieldDot() && c.Peek() == '.' && c.PeekAt(1) != '.' {
		next, size := c.PeekRune(1)
		if size == 0 || !isIdentStart(next) {
			c.Bump()
			kind = token.LitFloat
			if isDec(c.Peek()) {
				lx.scanDigits()
			}
		}
	}
	if b := c.Peek(); b == 'e' || b == 'E' {
		off := uint32(1)
		if s := c.PeekAt(1); s == '+' || s == '-' {
			off = 2
		}
		if isDec(c.PeekAt(off)) || c.PeekAt(off) == '_' {
			c.BumpN(int(off))
			lx.scanDigits()
			kind = token.LitFloat
		}
	}
	lx.scanSuffix()
	if kind == token.LitInt {
		text := lx.file.Text(c.SpanFrom(start))
		if len(text) > 3 && (text[len(text)-3:] == "f32" || text[len(text)-3:] == "f64") {
			kind = token.LitFloat
		}
	}
	lx.pushLit(start, kind)
	return nil
}

func (lx *Lexer) scanDigits() {
	for b := lx.cursor.Peek(); isDec(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

// scanQuote handles `'`: a char literal or a lifetime.
func (lx *Lexer) scanQuote(start uint32) error {
	c := &lx.cursor
	if c.PeekAt(1) == '\\' {
		return lx.scanChar(start, token.LitChar)
	}
	r, size := c.PeekRune(1)
	if size > 0 && c.PeekAt(1+uint32(size)) == '\'' {
		return lx.scanChar(start, token.LitChar)
	}
	if size > 0 && isIdentStart(r) {
		c.Bump()
		if c.HasPrefix("r#") {
			c.BumpN(2)
		}
		for !c.EOF() {
			r, size := c.PeekRune(0)
			if size == 0 || !isIdentContinue(r) {
				break
			}
			c.BumpN(size)
		}
		span := c.SpanFrom(start)
		lx.push(token.Token{Kind: token.Lifetime, Text: lx.file.Text(span), Span: span})
		return nil
	}
	c.Bump()
	return lx.file.Errorf(c.SpanFrom(start), "unterminated character literal")
}

// scanChar scans `'x'` with the cursor on the opening quote.
func (lx *Lexer) scanChar(start uint32, kind token.LitKind) error {
	c := &lx.cursor
	c.Bump() // opening '
	if c.Peek() == '\\' {
		c.Bump()
		switch c.Bump() {
		case 'x':
			c.BumpN(2)
		case 'u':
			for !c.EOF() && c.Peek() != '}' && c.Peek() != '\'' {
				c.Bump()
			}
			if c.Peek() == '}' {
				c.Bump()
			}
		}
	} else {
		c.BumpRune()
	}
	if c.Peek() != '\'' {
		return lx.file.Errorf(c.SpanFrom(start), "unterminated character literal")
	}
	c.Bump()
	lx.scanSuffix()
	lx.pushLit(start, kind)
	return nil
}

// scanString scans `"..."` with the cursor on the opening quote.
func (lx *Lexer) scanString(start uint32, kind token.LitKind) error {
	c := &lx.cursor
	c.Bump() // opening "
	for !c.EOF() {
		switch c.Peek() {
		case '"':
			c.Bump()
			lx.scanSuffix()
			lx.pushLit(start, kind)
			return nil
		case '\\':
			c.Bump()
			if c.EOF() {
				break
			}
			c.BumpRune()
		default:
			c.BumpRune()
		}
	}
	return lx.file.Errorf(c.SpanFrom(start), "unterminated double quote string")
}

// scanRawString scans `#*"..."#*` with the cursor on the first `#` or quote.
func (lx *Lexer) scanRawString(start uint32, kind token.LitKind) error {
	c := &lx.cursor
	hashes := uint32(0)
	for c.Peek() == '#' {
		c.Bump()
		hashes++
	}
	c.Bump() // opening "
	for !c.EOF() {
		if c.Bump() != '"' {
			continue
		}
		n := uint32(0)
		for n < hashes && c.PeekAt(n) == '#' {
			n++
		}
		if n == hashes {
			c.BumpN(int(hashes))
			lx.scanSuffix()
			lx.pushLit(start, kind)
			return nil
		}
	}
	return lx.file.Errorf(c.SpanFrom(start), "unterminated raw string")
}
