package edit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/format"
	"cargo-expand/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := parser.ParseString(src)
	require.NoError(t, err)
	return file
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "top level macro_rules",
			src:  "macro_rules! m { () => {}; }\nfn f() {}\n",
			want: "fn f() {}\n",
		},
		{
			name: "nested in modules",
			src:  "mod a { mod b { macro_rules! m { () => {}; } pub fn g() {} } }",
			want: "mod a {\n    mod b {\n        pub fn g() {}\n    }\n}\n",
		},
		{
			name: "statement position",
			src:  "fn f() { macro_rules! m { () => {}; } let x = 1; }",
			want: "fn f() {\n    let x = 1;\n}\n",
		},
		{
			name: "inside impl method bodies",
			src:  "impl S { fn f() { macro_rules! m { () => {}; } } }",
			want: "impl S {\n    fn f() {}\n}\n",
		},
		{
			name: "doc attributes on statements",
			src:  "fn f() {\n    /// binding\n    let x = 1;\n    /// call\n    g(x);\n}\n",
			want: "fn f() {\n    let x = 1;\n    g(x);\n}\n",
		},
		{
			name: "other attributes stay",
			src:  "fn f() {\n    #[allow(unused)]\n    let x = 1;\n}\n",
			want: "fn f() {\n    #[allow(unused)]\n    let x = 1;\n}\n",
		},
		{
			name: "item docs stay",
			src:  "/// documented\nfn f() {}\n",
			want: "/// documented\nfn f() {}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := mustParse(t, tt.src)
			Sanitize(file)
			require.Equal(t, tt.want, format.Unparse(file))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	src := `
macro_rules! outer { () => {}; }
mod m {
    macro_rules! inner { () => {}; }
    fn f() {
        /// doc
        let a = 1;
        macro_rules! local { () => {}; }
        /// doc
        a + 1
    }
}
`
	once := mustParse(t, src)
	Sanitize(once)
	twice := mustParse(t, src)
	Sanitize(twice)
	Sanitize(twice)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second Sanitize changed the tree (-once +twice):\n%s", diff)
	}
	require.Equal(t, 0, countDefinitions(twice))
}

func countDefinitions(file *ast.File) int {
	n := 0
	ast.Inspect(file, func(node ast.Node) bool {
		if m, ok := node.(*ast.ItemMacro); ok && m.IsDefinition() {
			n++
		}
		return true
	})
	return n
}

func TestSkipAutoDerived(t *testing.T) {
	src := `struct S;
#[automatically_derived]
impl Clone for S {
    fn clone(&self) -> S {
        S
    }
}
fn between() {}
impl S {
    fn new() -> S {
        S
    }
}
mod nested {
    #[automatically_derived]
    impl Copy for super::S {}
    fn f() {
        #[automatically_derived]
        impl Copy for T {}
    }
}
#[automatically_derived(extra)]
impl Eq for S {}
`
	want := `struct S;
fn between() {}
impl S {
    fn new() -> S {
        S
    }
}
mod nested {
    fn f() {}
}
#[automatically_derived(extra)]
impl Eq for S {}
`
	file := mustParse(t, src)
	SkipAutoDerived(file)
	require.Equal(t, want, format.Unparse(file))
}
