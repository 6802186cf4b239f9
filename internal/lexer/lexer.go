package lexer

import (
	"golang.org/x/text/unicode/norm"

	"cargo-expand/internal/source"
	"cargo-expand/internal/token"
)

// Result is the token stream of one file plus its optional shebang line.
type Result struct {
	Shebang string
	Tokens  token.Stream
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	toks   token.Stream
	stack  []token.Token // open delimiters awaiting their close
	space  bool          // whitespace or comment since the previous token
}

// New creates a lexer over file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Lex tokenizes the whole file. Delimiters are checked for balance.
func Lex(file *source.File) (Result, error) {
	return New(file).Run()
}

// Tokens tokenizes a snippet of source text, for building token streams
// programmatically (macro bodies, attribute arguments).
func Tokens(src string) (token.Stream, error) {
	res, err := Lex(source.NewFile("", []byte(src)))
	if err != nil {
		return nil, err
	}
	return res.Tokens, nil
}

// Run consumes the input and returns all tokens.
func (lx *Lexer) Run() (Result, error) {
	var res Result
	res.Shebang = lx.scanShebang()
	for {
		if err := lx.skipTrivia(); err != nil {
			return Result{}, err
		}
		if lx.cursor.EOF() {
			break
		}
		if err := lx.scanToken(); err != nil {
			return Result{}, err
		}
	}
	if n := len(lx.stack); n > 0 {
		open := lx.stack[n-1]
		return Result{}, lx.file.Errorf(open.Span, "unclosed delimiter `%s`", open.Text)
	}
	res.Tokens = lx.toks
	return res, nil
}

func (lx *Lexer) scanShebang() string {
	if !lx.cursor.HasPrefix("#!") {
		return ""
	}
	// `#![attr]` is an inner attribute, not a shebang.
	off := uint32(2)
	for {
		r, size := lx.cursor.PeekRune(off)
		if size == 0 || !isWhitespace(r) {
			if r == '[' {
				return ""
			}
			break
		}
		off += uint32(size)
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return string(lx.file.Content[start:lx.cursor.Off])
}

func (lx *Lexer) push(tok token.Token) {
	tok.Space = lx.space
	lx.space = false
	lx.toks = append(lx.toks, tok)
}

func (lx *Lexer) scanToken() error {
	c := &lx.cursor
	start := c.Mark()
	ch := c.Peek()

	switch {
	case ch == 'r' && c.PeekAt(1) == '#' && lx.identStartsAt(2):
		c.BumpN(2)
		return lx.scanIdent(start)
	case ch == 'r' && lx.rawStringAt(1):
		c.Bump()
		return lx.scanRawString(start, token.LitRawStr)
	case ch == 'b' && c.PeekAt(1) == '\'':
		c.Bump()
		return lx.scanChar(start, token.LitByte)
	case ch == 'b' && c.PeekAt(1) == '"':
		c.Bump()
		return lx.scanString(start, token.LitByteStr)
	case ch == 'b' && c.PeekAt(1) == 'r' && lx.rawStringAt(2):
		c.BumpN(2)
		return lx.scanRawString(start, token.LitRawByteStr)
	case ch == 'c' && c.PeekAt(1) == '"':
		c.Bump()
		return lx.scanString(start, token.LitCStr)
	case ch == 'c' && c.PeekAt(1) == 'r' && lx.rawStringAt(2):
		c.BumpN(2)
		return lx.scanRawString(start, token.LitRawCStr)
	case lx.identStartsAt(0):
		return lx.scanIdent(start)
	case isDec(ch):
		return lx.scanNumber(start)
	case ch == '\'':
		return lx.scanQuote(start)
	case ch == '"':
		return lx.scanString(start, token.LitStr)
	case ch == '(' || ch == '[' || ch == '{':
		c.Bump()
		tok := token.Token{Kind: token.Open, Text: string(ch), Delim: delimOf(ch), Span: c.SpanFrom(start)}
		lx.stack = append(lx.stack, tok)
		lx.push(tok)
		return nil
	case ch == ')' || ch == ']' || ch == '}':
		c.Bump()
		tok := token.Token{Kind: token.Close, Text: string(ch), Delim: delimOf(ch), Span: c.SpanFrom(start)}
		n := len(lx.stack)
		if n == 0 {
			return lx.file.Errorf(tok.Span, "unexpected closing delimiter `%c`", ch)
		}
		if open := lx.stack[n-1]; open.Delim != tok.Delim {
			return lx.file.Errorf(tok.Span, "mismatched closing delimiter `%c` for `%s`", ch, open.Text)
		}
		lx.stack = lx.stack[:n-1]
		lx.push(tok)
		return nil
	case isPunctByte(ch):
		c.Bump()
		lx.push(token.Token{
			Kind:  token.Punct,
			Text:  string(ch),
			Joint: isPunctByte(c.Peek()),
			Span:  c.SpanFrom(start),
		})
		return nil
	default:
		r := c.BumpRune()
		return lx.file.Errorf(c.SpanFrom(start), "unknown start of token: %q", r)
	}
}

func delimOf(ch byte) token.Delim {
	switch ch {
	case '(', ')':
		return token.Paren
	case '[', ']':
		return token.Bracket
	default:
		return token.Brace
	}
}

func (lx *Lexer) identStartsAt(off uint32) bool {
	r, size := lx.cursor.PeekRune(off)
	return size > 0 && isIdentStart(r)
}

// rawStringAt reports whether `#*"` starts off bytes ahead.
func (lx *Lexer) rawStringAt(off uint32) bool {
	for lx.cursor.PeekAt(off) == '#' {
		off++
	}
	return lx.cursor.PeekAt(off) == '"'
}

func (lx *Lexer) scanIdent(start uint32) error {
	c := &lx.cursor
	ascii := true
	for !c.EOF() {
		r, size := c.PeekRune(0)
		if size == 0 || !isIdentContinue(r) {
			break
		}
		if r >= 0x80 {
			ascii = false
		}
		c.BumpN(size)
	}
	span := c.SpanFrom(start)
	text := lx.file.Text(span)
	if !ascii {
		text = norm.NFC.String(text)
	}
	lx.push(token.Token{Kind: token.Ident, Text: text, Span: span})
	return nil
}

// scanSuffix consumes an identifier-like literal suffix (`u8`, `f32`).
func (lx *Lexer) scanSuffix() {
	if !lx.identStartsAt(0) {
		return
	}
	for !lx.cursor.EOF() {
		r, size := lx.cursor.PeekRune(0)
		if size == 0 || !isIdentContinue(r) {
			return
		}
		lx.cursor.BumpN(size)
	}
}

func (lx *Lexer) pushLit(start uint32, kind token.LitKind) {
	span := lx.cursor.SpanFrom(start)
	lx.push(token.Token{Kind: token.Literal, Lit: kind, Text: lx.file.Text(span), Span: span})
}
