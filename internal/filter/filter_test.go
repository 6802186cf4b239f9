package filter

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/format"
	"cargo-expand/internal/parser"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr string
	}{
		{in: "a", want: []string{"a"}},
		{in: "a::b::c", want: []string{"a", "b", "c"}},
		{in: "::a::b", want: []string{"a", "b"}},
		{in: "r#fn::x", want: []string{"r#fn", "x"}},
		{in: "", wantErr: "empty path"},
		{in: "::", wantErr: "empty path"},
		{in: "a::", wantErr: "`` is not an identifier"},
		{in: "a::1b", wantErr: "`1b` is not an identifier"},
		{in: "fn", wantErr: "`fn` is not an identifier"},
		{in: "self::a", wantErr: "`self` is not an identifier"},
		{in: "a b", wantErr: "`a b` is not an identifier"},
		{in: "_", wantErr: "`_` is not an identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sel, err := Parse(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidSelector))
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, sel.Segments())
		})
	}
}

func TestString(t *testing.T) {
	require.Equal(t, "a::b", MustParse("::a::b").String())
}

const sample = `#![allow(dead_code)]
extern crate std as stdlib;
macro_rules! mac { () => {}; }
mod outer {
    pub mod inner {
        pub fn f() {}
        pub fn g() {}
    }
    pub struct S;
    impl S {
        fn method() {}
    }
}
pub trait Tr {
    const C: u8 = 1;
    const D: u8;
    type T = u8;
    type U;
    fn with_body(&self) -> u8 {
        0
    }
    fn without_body(&self);
}
struct dup;
fn dup() {}
`

func names(items []ast.Item) []string {
	var out []string
	for _, it := range items {
		name, ok := ast.ItemName(it)
		if !ok {
			name = "?"
		}
		out = append(out, name)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"outer::inner", []string{"f", "g"}},
		{"outer::inner::f", []string{"f"}},
		{"outer", []string{"inner", "S", "?"}},
		{"outer::S", []string{"S"}},
		{"outer::S::method", nil},
		{"stdlib", []string{"stdlib"}},
		{"std", nil},
		{"mac", []string{"mac"}},
		{"Tr::C", []string{"C"}},
		{"Tr::D", nil},
		{"Tr::T", []string{"T"}},
		{"Tr::U", nil},
		{"Tr::with_body", []string{"with_body"}},
		{"Tr::without_body", nil},
		{"dup", []string{"dup", "dup"}},
		{"missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			file, err := parser.ParseString(sample)
			require.NoError(t, err)
			MustParse(tt.path).Apply(file)
			if diff := cmp.Diff(tt.want, names(file.Items)); diff != "" {
				t.Fatalf("items mismatch (-want +got):\n%s", diff)
			}
			require.Empty(t, file.Attrs)
		})
	}
}

func TestApplySynthesizesTraitDefaults(t *testing.T) {
	file, err := parser.ParseString(sample)
	require.NoError(t, err)
	MustParse("Tr::with_body").Apply(file)

	require.Len(t, file.Items, 1)
	fn, ok := file.Items[0].(*ast.ItemFn)
	require.True(t, ok)
	require.NotNil(t, fn.Body)
	require.Equal(t, "fn with_body(&self) -> u8 {\n    0\n}\n", format.Unparse(file))
}

func TestApplyClearsFileHeader(t *testing.T) {
	file, err := parser.ParseString("#!/usr/bin/env run-cargo-script\n#![no_std]\nfn main() {}\n")
	require.NoError(t, err)
	require.NotEmpty(t, file.Shebang)

	MustParse("main").Apply(file)
	require.Empty(t, file.Shebang)
	require.Equal(t, "fn main() {}\n", format.Unparse(file))
}
