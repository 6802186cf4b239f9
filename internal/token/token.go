package token

import (
	"strings"

	"cargo-expand/internal/source"
)

// Token represents a single source token with its location and spacing.
type Token struct {
	Kind  Kind
	Text  string
	Lit   LitKind // Literal only
	Delim Delim   // Open and Close only
	Joint bool    // Punct immediately followed by another Punct
	Space bool    // preceded by whitespace or a comment
	Inner bool    // DocComment only: `//!` and `/*!`
	Span  source.Span
}

// IsPunct reports whether the token is the punctuation character ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsIdent reports whether the token is the identifier or keyword s.
func (t Token) IsIdent(s string) bool {
	return t.Kind == Ident && t.Text == s
}

// IsKeyword reports whether the token is a non-raw keyword.
func (t Token) IsKeyword() bool {
	return t.Kind == Ident && IsKeyword(t.Text)
}

// NewIdent builds an identifier token.
func NewIdent(name string) Token {
	return Token{Kind: Ident, Text: name}
}

// NewPunct builds a single punctuation token.
func NewPunct(ch byte, joint bool) Token {
	return Token{Kind: Punct, Text: string(ch), Joint: joint}
}

// Stream is a flat, delimiter-balanced sequence of tokens. Delimiters are
// kept as Open/Close tokens so a stream can be sliced into token trees.
type Stream []Token

// Ellipsis returns the stream `...`, the placeholder for elided content.
func Ellipsis() Stream {
	return Stream{
		NewPunct('.', true),
		NewPunct('.', true),
		NewPunct('.', false),
	}
}

// IsEllipsis reports whether s is exactly the `...` placeholder.
func (s Stream) IsEllipsis() bool {
	if len(s) != 3 {
		return false
	}
	return s[0].IsPunct('.') && s[0].Joint &&
		s[1].IsPunct('.') && s[1].Joint &&
		s[2].IsPunct('.')
}

// Clone returns a copy of the stream that shares no backing array with s.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}
	out := make(Stream, len(s))
	copy(out, s)
	return out
}

// String renders the stream on a single line. Tokens that were separated by
// whitespace in the source stay separated; synthetic tokens are separated
// unless they are joint punctuation or sit just inside a delimiter.
func (s Stream) String() string {
	var sb strings.Builder
	for i, tok := range s {
		if i > 0 && needsSpace(s[i-1], tok) {
			sb.WriteByte(' ')
		}
		writeToken(&sb, tok)
	}
	return sb.String()
}

func needsSpace(prev, cur Token) bool {
	if cur.Span != (source.Span{}) || prev.Span != (source.Span{}) {
		return cur.Space
	}
	switch {
	case prev.Kind == Punct && prev.Joint:
		return false
	case prev.Kind == Open || cur.Kind == Close:
		return false
	case cur.IsPunct(',') || cur.IsPunct(';'):
		return false
	}
	return true
}

func writeToken(sb *strings.Builder, tok Token) {
	if tok.Kind != DocComment {
		sb.WriteString(tok.Text)
		return
	}
	if tok.Inner {
		sb.WriteString("#![doc = ")
	} else {
		sb.WriteString("#[doc = ")
	}
	sb.WriteString(tok.Text)
	sb.WriteString("]")
}
