package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"cargo-expand/internal/source"
	"cargo-expand/internal/testkit"
	"cargo-expand/internal/token"
)

type tok struct {
	Kind token.Kind
	Text string
}

func lexAll(t *testing.T, src string) token.Stream {
	t.Helper()
	toks, err := Tokens(src)
	require.NoError(t, err)
	return toks
}

func simplify(toks token.Stream) []tok {
	out := make([]tok, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tok{tk.Kind, tk.Text})
	}
	return out
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tok
	}{
		{
			name: "raw ident and lifetimes",
			src:  "r#type 'a 'static",
			want: []tok{{token.Ident, "r#type"}, {token.Lifetime, "'a"}, {token.Lifetime, "'static"}},
		},
		{
			name: "tuple index",
			src:  "x.0.1",
			want: []tok{
				{token.Ident, "x"}, {token.Punct, "."}, {token.Literal, "0"},
				{token.Punct, "."}, {token.Literal, "1"},
			},
		},
		{
			name: "range is not a float",
			src:  "1..2",
			want: []tok{{token.Literal, "1"}, {token.Punct, "."}, {token.Punct, "."}, {token.Literal, "2"}},
		},
		{
			name: "method on integer",
			src:  "1.max(2)",
			want: []tok{
				{token.Literal, "1"}, {token.Punct, "."}, {token.Ident, "max"},
				{token.Open, "("}, {token.Literal, "2"}, {token.Close, ")"},
			},
		},
		{
			name: "strings",
			src:  `"a\"b" b"x" br#"y"# c"z" 'c' b'q' '\n'`,
			want: []tok{
				{token.Literal, `"a\"b"`}, {token.Literal, `b"x"`}, {token.Literal, `br#"y"#`},
				{token.Literal, `c"z"`}, {token.Literal, `'c'`}, {token.Literal, `b'q'`},
				{token.Literal, `'\n'`},
			},
		},
		{
			name: "plain comments vanish",
			src:  "a // one\n/* two /* nested */ */ //// three\n/**/ b",
			want: []tok{{token.Ident, "a"}, {token.Ident, "b"}},
		},
		{
			name: "doc comments",
			src:  "/// outer\n//! inner\n/** block */",
			want: []tok{{token.DocComment, `" outer"`}, {token.DocComment, `" inner"`}, {token.DocComment, `" block "`}},
		},
		{
			name: "identifiers are normalized",
			src:  "café",
			want: []tok{{token.Ident, "café"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := simplify(lexAll(t, tt.src))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLiteralKinds(t *testing.T) {
	tests := []struct {
		src  string
		want token.LitKind
	}{
		{"42", token.LitInt},
		{"0xff_u8", token.LitInt},
		{"0b1010", token.LitInt},
		{"1.0", token.LitFloat},
		{"1.", token.LitFloat},
		{"1e10", token.LitFloat},
		{"2.5E-3", token.LitFloat},
		{"2f32", token.LitFloat},
		{`"s"`, token.LitStr},
		{`r"s"`, token.LitRawStr},
		{`r##"a "# b"##`, token.LitRawStr},
		{`b"s"`, token.LitByteStr},
		{`br"s"`, token.LitRawByteStr},
		{`c"s"`, token.LitCStr},
		{`cr#"s"#`, token.LitRawCStr},
		{`'\u{1F600}'`, token.LitChar},
		{`b'\x7f'`, token.LitByte},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			require.Len(t, toks, 1)
			require.Equal(t, token.Literal, toks[0].Kind)
			require.Equal(t, tt.want, toks[0].Lit)
			require.Equal(t, tt.src, toks[0].Text)
		})
	}
}

func TestSpacingAndJoint(t *testing.T) {
	toks := lexAll(t, "a::b +c")
	require.Len(t, toks, 6)
	require.True(t, toks[1].Joint)
	require.False(t, toks[2].Joint)
	require.False(t, toks[3].Space)
	require.True(t, toks[4].Space)
	require.False(t, toks[5].Space)
}

func TestDocCommentStyle(t *testing.T) {
	toks := lexAll(t, "//! crate docs\n/// item docs\nfn f() {}")
	require.True(t, toks[0].Inner)
	require.False(t, toks[1].Inner)
	body, ok := token.UnquoteString(toks[0].Text)
	require.True(t, ok)
	require.Equal(t, " crate docs", body)
}

func TestShebang(t *testing.T) {
	res, err := Lex(source.NewFile("main.rs", []byte("#!/usr/bin/env run-cargo-script\nfn main() {}\n")))
	require.NoError(t, err)
	require.Equal(t, "#!/usr/bin/env run-cargo-script", res.Shebang)
	require.True(t, res.Tokens[0].IsIdent("fn"))

	res, err = Lex(source.NewFile("lib.rs", []byte("#![no_std]")))
	require.NoError(t, err)
	require.Empty(t, res.Shebang)
	require.True(t, res.Tokens[0].IsPunct('#'))
	require.True(t, res.Tokens[1].IsPunct('!'))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unterminated string", `x = "abc`, "1:5: unterminated double quote string"},
		{"unterminated raw string", `r#"abc"`, "1:1: unterminated raw string"},
		{"unterminated comment", "a /* b /* c */", "1:3: unterminated block comment"},
		{"unterminated char", "'", "1:1: unterminated character literal"},
		{"unclosed delimiter", "fn f() {", "1:8: unclosed delimiter `{`"},
		{"unexpected close", "a)", "1:2: unexpected closing delimiter `)`"},
		{"mismatched close", "(]", "1:2: mismatched closing delimiter `]` for `(`"},
		{"unknown start", "a §", "1:3: unknown start of token: '§'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokens(tt.src)
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestIsIdent(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"foo", true},
		{"_x1", true},
		{"r#type", true},
		{"r#self", false},
		{"r#_", false},
		{"1a", false},
		{"", false},
		{"not an ident", false},
		{"ünï", true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsIdent(tt.s), tt.s)
	}
}

func TestSpanInvariants(t *testing.T) {
	src := "#![feature(prelude_import)]\n/// doc\nfn café<'a>(x: &'a [u8; 2]) -> u8 { x.0.1 + b'q' as u8 /* c */ }\n"
	file := source.NewFile("lib.rs", []byte(src))
	res, err := Lex(file)
	require.NoError(t, err)
	require.NoError(t, testkit.CheckTokenSpans(file, res.Tokens))
}

const maxFuzzInput = 1 << 16

func FuzzTokens(f *testing.F) {
	for _, seed := range []string{
		"fn main() {}",
		"#![feature(prelude_import)]\nuse std::prelude::rust_2021::*;",
		`let s = r#"raw"#; let c = '\''; x.0.1`,
		"/* a /* b */ */ /// doc\n'a: loop {}",
	} {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		file := source.NewFile("fuzz.rs", append([]byte(nil), input...))
		res, err := Lex(file)
		if err != nil {
			return
		}
		if err := testkit.CheckTokenSpans(file, res.Tokens); err != nil {
			t.Fatal(err)
		}
	})
}
