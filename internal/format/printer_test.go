package format

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/parser"
	"cargo-expand/internal/token"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := parser.ParseString(src)
	require.NoError(t, err)
	return file
}

// catch runs fn and returns the error it panicked with, if any.
func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = r.(error)
		}
	}()
	fn()
	return nil
}

const derivedDebug = `#![feature(prelude_import)]
#[prelude_import]
use std::prelude::rust_2021::*;
#[macro_use]
extern crate std;
/// A single byte.
#[allow(dead_code)]
pub struct S {
    a: u8,
}
#[automatically_derived]
impl ::core::fmt::Debug for S {
    #[inline]
    fn fmt(&self, f: &mut ::core::fmt::Formatter) -> ::core::fmt::Result {
        ::core::fmt::Formatter::debug_struct_field1_finish(f, "S", "a", &&self.a)
    }
}
fn main() {}
`

func TestUnparseCanonical(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"derive output", derivedDebug},
		{"statements", "fn main() {\n    let x = 1;\n    println!(\"{}\", x);\n}\n"},
		{"match", "fn f(x: u8) {\n    match x {\n        1 => a,\n        _ => {}\n    }\n}\n"},
		{"where clause", "fn f<T>(x: T)\nwhere\n    T: Clone,\n{}\n"},
		{"enum", "enum E {\n    A,\n    B(u8, u16),\n    C {\n        x: i32,\n    },\n    D = 4,\n}\n"},
		{"let else", "fn f() {\n    let Some(x) = g() else {\n        return;\n    };\n}\n"},
		{"closure", "fn f() {\n    let g = move |a, b: u8| a + b;\n}\n"},
		{"trait", "pub trait T: Sized {\n    const N: usize;\n    type Out: Clone;\n    fn get(&self) -> Self::Out;\n}\n"},
		{"macro rules", "macro_rules! m { () => {}; }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.src, Unparse(mustParse(t, tt.src)))
		})
	}
}

func TestUnparseIsStable(t *testing.T) {
	src := "fn f(){if a{b}else if c{d}else{e} for x in 0..n{ v[x]+=1; } loop{break}}"
	once := Unparse(mustParse(t, src))
	twice := Unparse(mustParse(t, once))
	require.Equal(t, once, twice)
}

func TestUnparseWrapsLongLists(t *testing.T) {
	src := "fn f(first_argument: u32, second_argument: u32, third_argument: u32, fourth_argument: u32) {}"
	want := `fn f(
    first_argument: u32,
    second_argument: u32,
    third_argument: u32,
    fourth_argument: u32,
) {}
`
	require.Equal(t, want, Unparse(mustParse(t, src)))
}

func TestUnparseParenthesizes(t *testing.T) {
	path := func(name string) ast.Expr { return &ast.ExprPath{Path: ast.PathOf(name)} }
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{
			name: "sum inside product",
			expr: &ast.ExprBinary{
				Left:  &ast.ExprBinary{Left: path("a"), Op: ast.BinAdd, Right: path("b")},
				Op:    ast.BinMul,
				Right: path("c"),
			},
			want: "(a + b) * c",
		},
		{
			name: "right associated difference",
			expr: &ast.ExprBinary{
				Left:  path("a"),
				Op:    ast.BinSub,
				Right: &ast.ExprBinary{Left: path("b"), Op: ast.BinSub, Right: path("c")},
			},
			want: "a - (b - c)",
		},
		{
			name: "deref before method call",
			expr: &ast.ExprMethodCall{
				Receiver: &ast.ExprUnary{Op: ast.UnDeref, Expr: path("p")},
				Method:   "len",
			},
			want: "(*p).len()",
		},
		{
			name: "cast compared",
			expr: &ast.ExprBinary{
				Left:  &ast.ExprCast{Expr: path("x"), Type: ast.TypeName("usize")},
				Op:    ast.BinLt,
				Right: path("y"),
			},
			want: "(x as usize) < y",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &ast.File{Items: []ast.Item{&ast.ItemFn{
				Sig:  ast.Signature{Name: "f"},
				Body: &ast.Block{Stmts: []ast.Stmt{&ast.StmtExpr{Expr: tt.expr, Semi: true}}},
			}}}
			require.Equal(t, "fn f() {\n    "+tt.want+";\n}\n", Unparse(file))
		})
	}
}

func TestUnparseStructLiteralInCondition(t *testing.T) {
	file := mustParse(t, "fn f() { if x == y {} }")
	fn := file.Items[0].(*ast.ItemFn)
	cond := fn.Body.Stmts[0].(*ast.StmtExpr).Expr.(*ast.ExprIf).Cond.(*ast.ExprBinary)
	cond.Right = &ast.ExprStruct{Path: ast.PathOf("S")}

	out := Unparse(file)
	require.Equal(t, "fn f() {\n    if (x == S {}) {}\n}\n", out)
	mustParse(t, out)
}

func TestUnparsePlaceholders(t *testing.T) {
	file := &ast.File{Items: []ast.Item{
		&ast.ItemFn{
			Sig:  ast.Signature{Name: "f"},
			Body: &ast.Block{Stmts: []ast.Stmt{ast.PlaceholderStmt()}},
		},
		ast.PlaceholderItem(),
	}}
	require.Equal(t, "fn f() {\n    ...\n}\n...\n", Unparse(file))
}

func TestTokensOneLine(t *testing.T) {
	file := mustParse(t, "/// hi\nfn main() {\n    let x = 1;\n}\n")
	require.Equal(t, "#[doc = \" hi\"] fn main() { let x = 1; }\n", Tokens(file))
}

func TestUnsupportedTrees(t *testing.T) {
	tests := []struct {
		name string
		item ast.Item
	}{
		{"verbatim tokens", &ast.ItemVerbatim{Tokens: token.Stream{token.NewIdent("oops")}}},
		{"invalid identifier", &ast.ItemFn{Sig: ast.Signature{Name: "1abc"}, Body: &ast.Block{}}},
		{"invalid lifetime", &ast.ItemType{
			Name: "R",
			Type: &ast.TypeRef{Lifetime: "a", Elem: ast.TypeName("u8")},
		}},
		{"empty literal", &ast.ItemConst{
			Name: "C",
			Type: ast.TypeName("u8"),
			Expr: &ast.ExprLit{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &ast.File{Items: []ast.Item{tt.item}}
			err := catch(func() { Unparse(file) })
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrUnsupported), "got %v", err)

			err = catch(func() { Tokens(file) })
			require.True(t, errors.Is(err, ErrUnsupported), "got %v", err)
		})
	}
}
