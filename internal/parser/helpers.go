package parser

import (
	"cargo-expand/internal/source"
	"cargo-expand/internal/token"
)

var knownOps = map[string]bool{
	"<<=": true, ">>=": true, "..=": true, "...": true,
	"::": true, "->": true, "=>": true, "==": true, "!=": true, "<=": true, ">=": true,
	"&&": true, "||": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"^=": true, "&=": true, "|=": true, "<<": true, ">>": true, "..": true,
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	end := uint32(len(p.file.Content))
	return token.Token{Kind: token.EOF, Span: source.Span{Start: end, End: end}}
}

// advance — съедает следующий токен.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.toks)
}

// op returns the longest operator spelled by joint punctuation at the
// cursor, or the single punctuation character when no longer operator
// matches. It returns "" when the cursor is not on punctuation.
func (p *Parser) op() string {
	return p.opAt(0)
}

func (p *Parser) opAt(n int) string {
	t0 := p.peekN(n)
	if t0.Kind != token.Punct {
		return ""
	}
	s := t0.Text
	if !t0.Joint {
		return s
	}
	t1 := p.peekN(n + 1)
	if t1.Kind != token.Punct {
		return s
	}
	s2 := s + t1.Text
	if t1.Joint {
		if t2 := p.peekN(n + 2); t2.Kind == token.Punct && knownOps[s2+t2.Text] {
			return s2 + t2.Text
		}
	}
	if knownOps[s2] {
		return s2
	}
	return s
}

func (p *Parser) atOp(s string) bool {
	return p.op() == s
}

func (p *Parser) eatOp(s string) bool {
	if p.op() != s {
		return false
	}
	p.pos += len(s)
	return true
}

func (p *Parser) expectOp(s string) {
	if !p.eatOp(s) {
		p.errorf("expected `%s`, found %s", s, describeTok(p.peek()))
	}
}

// atPunct checks a single punctuation character regardless of what follows
// it, so `>` matches the first half of `>>`.
func (p *Parser) atPunct(ch byte) bool {
	return p.peek().IsPunct(ch)
}

func (p *Parser) eatPunct(ch byte) bool {
	if p.atPunct(ch) {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) expectPunct(ch byte) {
	if !p.eatPunct(ch) {
		p.errorf("expected `%c`, found %s", ch, describeTok(p.peek()))
	}
}

func (p *Parser) atKw(kw string) bool {
	return p.peek().IsIdent(kw)
}

func (p *Parser) atKwN(n int, kw string) bool {
	return p.peekN(n).IsIdent(kw)
}

func (p *Parser) eatKw(kw string) bool {
	if p.atKw(kw) {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) expectKw(kw string) {
	if !p.eatKw(kw) {
		p.errorf("expected `%s`, found %s", kw, describeTok(p.peek()))
	}
}

func (p *Parser) atOpen(d token.Delim) bool {
	tok := p.peek()
	return tok.Kind == token.Open && tok.Delim == d
}

func (p *Parser) atClose(d token.Delim) bool {
	tok := p.peek()
	return tok.Kind == token.Close && tok.Delim == d
}

func (p *Parser) expectOpen(d token.Delim) {
	if !p.atOpen(d) {
		p.errorf("expected `%s`, found %s", d.Open(), describeTok(p.peek()))
	}
	p.pos++
}

func (p *Parser) expectClose(d token.Delim) {
	if !p.atClose(d) {
		p.errorf("expected `%s`, found %s", d.Close(), describeTok(p.peek()))
	}
	p.pos++
}

// isIdentTok reports whether tok is an identifier that is neither a reserved
// keyword nor `_`. Raw identifiers always qualify.
func isIdentTok(tok token.Token) bool {
	if tok.Kind != token.Ident || tok.Text == "_" {
		return false
	}
	return token.IsRaw(tok.Text) || !token.IsKeyword(tok.Text)
}

func (p *Parser) atIdent() bool {
	return isIdentTok(p.peek())
}

// parseIdent — ожидает идентификатор (не ключевое слово).
func (p *Parser) parseIdent() string {
	if !p.atIdent() {
		p.errorf("expected identifier, found %s", describeTok(p.peek()))
	}
	return p.advance().Text
}

// parseIdentOrUnderscore accepts `_` where Rust allows an anonymous name.
func (p *Parser) parseIdentOrUnderscore() string {
	if p.atKw("_") {
		return p.advance().Text
	}
	return p.parseIdent()
}

// delimited consumes a balanced token tree and returns its delimiter and
// the tokens between the delimiters.
func (p *Parser) delimited() (token.Delim, token.Stream) {
	open := p.peek()
	if open.Kind != token.Open {
		p.errorf("expected one of `(`, `[`, `{`, found %s", describeTok(open))
	}
	start := p.pos + 1
	depth := 0
	for {
		tok := p.advance()
		switch tok.Kind {
		case token.Open:
			depth++
		case token.Close:
			depth--
			if depth == 0 {
				return open.Delim, p.toks[start : p.pos-1].Clone()
			}
		case token.EOF:
			p.errorf("unclosed delimiter `%s`", open.Text)
		}
	}
}

func describeTok(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.DocComment:
		return "doc comment"
	default:
		return "`" + tok.Text + "`"
	}
}
