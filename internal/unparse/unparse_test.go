package unparse

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/fault"
	"cargo-expand/internal/format"
	"cargo-expand/internal/lexer"
	"cargo-expand/internal/parser"
	"cargo-expand/internal/trace"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := parser.ParseString(src)
	require.NoError(t, err)
	return file
}

// breakExpr replaces the right operand of the first binary expression with
// a verbatim node the printer refuses.
func breakExpr(t *testing.T, file *ast.File) {
	t.Helper()
	bad, err := lexer.Tokens("bad")
	require.NoError(t, err)
	done := false
	ast.Inspect(file, func(n ast.Node) bool {
		if b, ok := n.(*ast.ExprBinary); ok && !done {
			b.Right = &ast.ExprVerbatim{Tokens: bad}
			done = true
		}
		return !done
	})
	require.True(t, done, "no binary expression")
}

// breakBinding gives the let binding named name an invalid identifier.
func breakBinding(t *testing.T, file *ast.File, name string) {
	t.Helper()
	done := false
	ast.Inspect(file, func(n ast.Node) bool {
		if l, ok := n.(*ast.StmtLocal); ok {
			if p, ok := l.Pat.(*ast.PatIdent); ok && p.Name == name {
				p.Name = "not an ident"
				done = true
			}
		}
		return !done
	})
	require.True(t, done, "no binding %s", name)
}

// renameFn gives the first function named from an invalid name, wherever it
// is declared.
func renameFn(t *testing.T, file *ast.File, from string) {
	t.Helper()
	done := false
	ast.Inspect(file, func(n ast.Node) bool {
		var sig *ast.Signature
		switch v := n.(type) {
		case *ast.ItemFn:
			sig = &v.Sig
		case *ast.TraitItemFn:
			sig = &v.Sig
		case *ast.ImplItemFn:
			sig = &v.Sig
		case *ast.ForeignItemFn:
			sig = &v.Sig
		}
		if sig != nil && sig.Name == from && !done {
			sig.Name = "1" + from
			done = true
		}
		return !done
	})
	require.True(t, done, "no fn %s", from)
}

func TestMaximalFastPath(t *testing.T) {
	src := "fn f() {\n    let a = 1;\n}\n"
	file := mustParse(t, src)
	require.Equal(t, src, Maximal(context.Background(), file, format.Unparse))
	require.Zero(t, ast.CountPlaceholders(file))
}

func TestMaximalReplacesOnlyFailingLeaf(t *testing.T) {
	file := mustParse(t, "fn f() { let a = 1; let b = 2 + x; }\nfn g() {}\n")
	breakExpr(t, file)

	got := Maximal(context.Background(), file, format.Unparse)
	require.Equal(t, "fn f() {\n    let a = 1;\n    let b = 2 + ...;\n}\nfn g() {}\n", got)
	require.Equal(t, 1, strings.Count(got, "..."))
}

func TestMaximalStatementPlaceholder(t *testing.T) {
	file := mustParse(t, "fn f() { let a = 1; let b = 2; }\n")
	breakBinding(t, file, "b")

	got := Maximal(context.Background(), file, format.Unparse)
	require.Equal(t, "fn f() {\n    let a = 1;\n    ...\n}\n", got)
}

func TestMaximalMembers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		fn   string
		keep string
	}{
		{"trait", "trait T { const A: u8; fn bad(); }\n", "bad", "const A: u8;"},
		{"impl", "impl S { const A: u8 = 0; fn bad() {} }\n", "bad", "const A: u8 = 0;"},
		{"foreign", "extern \"C\" { static A: u8; fn bad(); }\n", "bad", "static A: u8;"},
		{"nested item", "mod m { fn ok() {} fn bad() {} }\n", "bad", "fn ok() {}"},
		{"statement item", "fn f() { fn bad() {} g(); }\n", "bad", "g();"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := mustParse(t, tt.src)
			renameFn(t, file, tt.fn)

			got := Maximal(context.Background(), file, format.Unparse)
			require.Contains(t, got, tt.keep)
			require.Equal(t, 1, strings.Count(got, "..."), got)
			require.NotContains(t, got, tt.fn)
		})
	}
}

func TestMaximalIsTotal(t *testing.T) {
	srcs := []string{
		"const C: u8 = { let x = 1 + 2; x };\n",
		"fn f() { match v { Some(x) => x + 1, None => 0 } }\n",
		"fn f() { let c = |a: u8| a * 2; c(1 + 2) }\n",
		"static S: [u8; 1 + 2] = [1 + 2; 3];\n",
		"fn f() { if a + b > 0 { loop { break x + 1; } } }\n",
	}
	for _, src := range srcs {
		file := mustParse(t, src)
		breakExpr(t, file)
		var got string
		require.NotPanics(t, func() { got = Maximal(context.Background(), file, format.Unparse) }, src)
		require.Contains(t, got, "...")
	}
}

func TestMaximalDropsBrokenFileAttrs(t *testing.T) {
	file := mustParse(t, "#![allow(dead_code)]\n#![no_std]\nfn f() {\n    let a = 1;\n}\n")
	file.Attrs[0].Path.Segments[0].Ident = "not an ident"

	var got string
	require.NotPanics(t, func() { got = Maximal(context.Background(), file, format.Unparse) })
	require.Equal(t, "#![no_std]\nfn f() {\n    let a = 1;\n}\n", got)
	require.Len(t, file.Attrs, 1)
	require.Zero(t, ast.CountPlaceholders(file))
}

func TestMaximalSwapsPrimitive(t *testing.T) {
	file := mustParse(t, "fn f() { let a = 1; let b = 2 + x; }\n")
	breakExpr(t, file)

	got := Maximal(context.Background(), file, format.Tokens)
	require.Equal(t, 1, strings.Count(got, "\n"))
	require.Contains(t, got, "let b = 2 + ...;")
}

func TestMaximalIdempotent(t *testing.T) {
	build := func() *ast.File {
		file := mustParse(t, "fn f() { let a = 1; let b = 2 + x; }\nimpl S { fn bad() {} }\n")
		breakExpr(t, file)
		renameFn(t, file, "bad")
		return file
	}

	first := build()
	out1 := Maximal(context.Background(), first, format.Unparse)
	out2 := Maximal(context.Background(), build(), format.Unparse)
	require.Equal(t, out1, out2)

	// the repaired tree takes the fast path
	require.Equal(t, out1, Maximal(context.Background(), first, format.Unparse))
}

func TestMaximalPropagatesIntegrityViolation(t *testing.T) {
	prev := fault.SetHook(nil)
	t.Cleanup(func() { fault.SetHook(prev) })

	file := mustParse(t, "fn f() {}\n")
	hijack := func(f *ast.File) string {
		fault.SetHook(func(fault.Report) {})
		return format.Unparse(f)
	}

	var v any
	func() {
		defer func() { v = recover() }()
		Maximal(context.Background(), file, hijack)
	}()
	require.True(t, fault.IsIntegrityViolation(v), "%v", v)
}

func TestMaximalTracesFallback(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)

	file := mustParse(t, "fn f() { let b = 2 + x; }\n")
	breakExpr(t, file)
	Maximal(ctx, file, format.Unparse)

	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	require.Contains(t, names, "unparse.fallback")
	require.Contains(t, names, "unparse.descend")
	require.Contains(t, names, "unparse.placeholder")
	require.NotContains(t, names, "unparse.first")
}
