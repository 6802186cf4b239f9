package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cargo-expand/internal/source"
	"cargo-expand/internal/token"
)

func TestCheckTokenSpans(t *testing.T) {
	file := source.NewFile("a.rs", []byte("fn f"))
	good := token.Stream{
		{Kind: token.Ident, Text: "fn", Span: source.Span{Start: 0, End: 2}},
		{Kind: token.Ident, Text: "f", Span: source.Span{Start: 3, End: 4}},
	}
	require.NoError(t, CheckTokenSpans(file, good))

	tests := []struct {
		name string
		toks token.Stream
		want string
	}{
		{
			name: "empty span",
			toks: token.Stream{{Kind: token.Ident, Text: "", Span: source.Span{Start: 1, End: 1}}},
			want: "token 0 (identifier) has empty span 1-1",
		},
		{
			name: "out of bounds",
			toks: token.Stream{{Kind: token.Ident, Text: "f", Span: source.Span{Start: 3, End: 9}}},
			want: "token 0 span end beyond content: 9 > 4",
		},
		{
			name: "overlap",
			toks: token.Stream{good[0], {Kind: token.Ident, Text: "n", Span: source.Span{Start: 1, End: 2}}},
			want: "token 1 span 1-2 overlaps previous token ending at 2",
		},
		{
			name: "text mismatch",
			toks: token.Stream{{Kind: token.Ident, Text: "fx", Span: source.Span{Start: 0, End: 2}}},
			want: `token 0 text "fx" does not match source "fn"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.EqualError(t, CheckTokenSpans(file, tt.toks), tt.want)
		})
	}
}
