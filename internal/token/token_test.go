package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuoteString(t *testing.T) {
	require.Equal(t, `"a\"b\\\n\t\0é\u{1}"`, QuoteString("a\"b\\\n\t\x00é\x01"))
	require.Equal(t, `""`, QuoteString(""))
}

func TestUnquoteString(t *testing.T) {
	tests := []struct {
		lit  string
		want string
		ok   bool
	}{
		{`"plain"`, "plain", true},
		{`"a\x41\u{1F600}"`, "aA😀", true},
		{`r#"say "hi""#`, `say "hi"`, true},
		{`r"\n"`, `\n`, true},
		{"\"a\\\n     b\"", "ab", true},
		{`"bad\q"`, "", false},
		{`"\xff"`, "", false},
		{`b"bytes"`, "", false},
		{`"suffixed"u8`, "", false},
		{`r#"unterminated"`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, ok := UnquoteString(tt.lit)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, s := range []string{"", " doc comment", "tab\there", "quote \" and \\", "line\nbreak", "ünïcode"} {
		got, ok := UnquoteString(QuoteString(s))
		require.True(t, ok, s)
		require.Equal(t, s, got)
	}
}

func TestStreamString(t *testing.T) {
	tests := []struct {
		name string
		s    Stream
		want string
	}{
		{"ellipsis", Ellipsis(), "..."},
		{"list", Stream{NewIdent("a"), NewPunct(',', false), NewIdent("b")}, "a, b"},
		{"joint punctuation", Stream{NewPunct('-', true), NewPunct('>', false), NewIdent("T")}, "-> T"},
		{"inside delimiters", Stream{{Kind: Open, Text: "(", Delim: Paren}, NewIdent("x"), {Kind: Close, Text: ")", Delim: Paren}}, "(x)"},
		{"doc", Stream{{Kind: DocComment, Text: `" x"`}}, `#[doc = " x"]`},
		{"inner doc", Stream{{Kind: DocComment, Text: `" x"`, Inner: true}}, `#![doc = " x"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.s.String())
		})
	}
	require.True(t, Ellipsis().IsEllipsis())
	require.False(t, Stream{NewPunct('.', true), NewPunct('.', false)}.IsEllipsis())
}

func TestKeywords(t *testing.T) {
	require.True(t, IsKeyword("match"))
	require.False(t, IsKeyword("foo"))
	require.True(t, IsPathKeyword("super"))
	require.False(t, IsPathKeyword("match"))
	require.True(t, IsRaw("r#type"))
	require.Equal(t, "type", Unraw("r#type"))
	require.Equal(t, "plain", Unraw("plain"))
	require.True(t, Token{Kind: Ident, Text: "fn"}.IsKeyword())
}

func TestNames(t *testing.T) {
	require.Equal(t, "end of file", EOF.String())
	require.Equal(t, "unknown", Kind(200).String())
	require.Equal(t, "[", Bracket.Open())
	require.Equal(t, "}", Brace.Close())
	require.Empty(t, NoDelim.Open())
	require.True(t, LitRawCStr.IsString())
	require.False(t, LitChar.IsString())
}
