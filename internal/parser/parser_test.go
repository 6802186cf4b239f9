package parser

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/source"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := ParseString(src)
	require.NoError(t, err)
	return file
}

// bodyOf returns the statements of the only function in src.
func bodyOf(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	file := mustParse(t, src)
	require.Len(t, file.Items, 1)
	fn, ok := file.Items[0].(*ast.ItemFn)
	require.True(t, ok, "want fn, got %T", file.Items[0])
	return fn.Body.Stmts
}

func initOf(t *testing.T, stmt ast.Stmt) ast.Expr {
	t.Helper()
	local, ok := stmt.(*ast.StmtLocal)
	require.True(t, ok, "want let, got %T", stmt)
	return local.Init
}

func TestParseItems(t *testing.T) {
	src := `#![allow(unused)]
//! crate docs
use std::prelude::rust_2021::*;
extern crate std;
/// A point.
pub struct P { x: i32 }
mod inner { fn f() {} }
impl P { fn new() -> Self { P { x: 0 } } }
macro_rules! m { () => {}; }
`
	file := mustParse(t, src)
	require.Len(t, file.Attrs, 2)
	require.Equal(t, ast.AttrInner, file.Attrs[1].Style)
	require.True(t, file.Attrs[1].IsDoc())

	require.Len(t, file.Items, 6)
	require.IsType(t, &ast.ItemUse{}, file.Items[0])
	require.IsType(t, &ast.ItemExternCrate{}, file.Items[1])

	st := file.Items[2].(*ast.ItemStruct)
	require.Equal(t, "P", st.Name)
	require.Equal(t, ast.VisPublic, st.Vis.Kind)
	require.Len(t, st.Attrs, 1)
	require.True(t, st.Attrs[0].IsDoc())

	mod := file.Items[3].(*ast.ItemMod)
	require.True(t, mod.Inline)
	require.Len(t, mod.Items, 1)

	impl := file.Items[4].(*ast.ItemImpl)
	require.Nil(t, impl.Trait)
	require.Len(t, impl.Items, 1)

	mac := file.Items[5].(*ast.ItemMacro)
	require.Equal(t, "m", mac.Name)
	require.True(t, mac.IsDefinition())
}

func TestParsePrecedence(t *testing.T) {
	stmts := bodyOf(t, "fn f() { let v = a + b * c == d; }")
	eq, ok := initOf(t, stmts[0]).(*ast.ExprBinary)
	require.True(t, ok)
	require.Equal(t, ast.BinEq, eq.Op)

	sum := eq.Left.(*ast.ExprBinary)
	require.Equal(t, ast.BinAdd, sum.Op)
	prod := sum.Right.(*ast.ExprBinary)
	require.Equal(t, ast.BinMul, prod.Op)
	require.True(t, prod.Left.(*ast.ExprPath).Path.IsIdent("b"))
}

func TestParseTupleIndex(t *testing.T) {
	stmts := bodyOf(t, "fn f() { let v = x.0.1; }")
	outer := initOf(t, stmts[0]).(*ast.ExprField)
	require.Equal(t, 1, outer.Member.Index)
	inner := outer.Base.(*ast.ExprField)
	require.Equal(t, 0, inner.Member.Index)
	require.True(t, inner.Base.(*ast.ExprPath).Path.IsIdent("x"))
}

func TestParseStructLiteralRestriction(t *testing.T) {
	stmts := bodyOf(t, "fn f() { if x {} let s = S { a: 1 }; match y {} }")
	require.Len(t, stmts, 3)

	cond := stmts[0].(*ast.StmtExpr).Expr.(*ast.ExprIf)
	require.IsType(t, &ast.ExprPath{}, cond.Cond)

	lit := initOf(t, stmts[1]).(*ast.ExprStruct)
	require.True(t, lit.Path.IsIdent("S"))
	require.Len(t, lit.Fields, 1)

	match := stmts[2].(*ast.StmtExpr).Expr.(*ast.ExprMatch)
	require.IsType(t, &ast.ExprPath{}, match.Expr)
	require.Empty(t, match.Arms)
}

func TestParseGlobalPath(t *testing.T) {
	stmts := bodyOf(t, "fn f() { let v = ::core::fmt::Formatter::new(); }")
	call := initOf(t, stmts[0]).(*ast.ExprCall)
	path := call.Func.(*ast.ExprPath).Path
	require.True(t, path.Global)
	require.Equal(t, "::core::fmt::Formatter::new", path.String())
}

func TestParseShebang(t *testing.T) {
	file := mustParse(t, "#!/usr/bin/env run-cargo-script\nfn main() {}\n")
	require.Equal(t, "#!/usr/bin/env run-cargo-script", file.Shebang)
	require.Len(t, file.Items, 1)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		pos  source.LineCol
	}{
		{
			name: "missing pattern",
			src:  "fn f() { let = 1; }",
			want: "expected pattern, found `=`",
			pos:  source.LineCol{Line: 1, Col: 14},
		},
		{
			name: "not an item",
			src:  "struct S;\n42",
			want: "expected item, found `42`",
			pos:  source.LineCol{Line: 2, Col: 1},
		},
		{
			name: "lexer error",
			src:  "fn f() {\n    \"open\n}",
			want: "unterminated double quote string",
			pos:  source.LineCol{Line: 2, Col: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := ParseFile(source.NewFile("expanded.rs", []byte(tt.src)))
			require.Nil(t, file)
			var serr *source.Error
			require.True(t, errors.As(err, &serr), "got %v", err)
			require.Equal(t, tt.want, serr.Msg)
			require.Equal(t, tt.pos, serr.Pos)
			require.Equal(t, "expanded.rs", serr.Path)
		})
	}
}

func TestParseNestingLimit(t *testing.T) {
	depth := 3 * maxNesting
	src := "fn f() { let v = " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) + "; }"
	_, err := ParseString(src)
	require.ErrorContains(t, err, "nesting too deep")
}

func FuzzParseFile(f *testing.F) {
	for _, seed := range []string{
		"fn main() {}",
		"#[derive(Debug)] struct S<T: Clone> where T: Copy { a: T }",
		"impl<'a> Tr for &'a [u8] { type Out = (); fn f(&self) -> Self::Out {} }",
		"fn f() { match x { Some(v) if v > 0 => v, _ => 0 }; }",
		"extern \"C\" { fn g(a: *const u8, ...) -> i32; }",
	} {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(_ *testing.T, input []byte) {
		if len(input) > 1<<16 {
			input = input[:1<<16]
		}
		_, _ = ParseFile(source.NewFile("fuzz.rs", append([]byte(nil), input...)))
	})
}
