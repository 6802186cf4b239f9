package driver

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"cargo-expand/internal/cache"
	"cargo-expand/internal/filter"
)

type fakeFormatter struct {
	calls []string
	err   error
}

func (f *fakeFormatter) Format(_ context.Context, _ string, src string) (string, error) {
	f.calls = append(f.calls, src)
	if f.err != nil {
		return "", f.err
	}
	return "// rustfmt\n" + src, nil
}

func selector(s string) *filter.Selector {
	sel := filter.MustParse(s)
	return &sel
}

func TestFormat(t *testing.T) {
	const expanded = `#![feature(prelude_import)]
#[prelude_import]
use std::prelude::rust_2021::*;
#[macro_use]
extern crate std;
macro_rules! square { ($x:expr) => { $x * $x }; }
mod outer {
    pub mod inner {
        pub fn f() -> u8 { $crate::helper() }
        pub fn g() {}
    }
}
struct S;
#[automatically_derived]
impl ::core::clone::Clone for S {
    #[inline]
    fn clone(&self) -> S { S }
}
impl S {
    fn new() -> Self { S }
}
`
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "select module",
			opts: Options{Item: selector("outer::inner")},
			want: "pub fn f() -> u8 {\n    $crate::helper()\n}\npub fn g() {}\n",
		},
		{
			name: "select leading colons",
			opts: Options{Item: selector("::S")},
			want: "struct S;\n",
		},
		{
			name: "skip auto derived",
			opts: Options{Item: selector("outer"), SkipAutoDerived: true},
			want: "pub mod inner {\n    pub fn f() -> u8 {\n        $crate::helper()\n    }\n    pub fn g() {}\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Format(context.Background(), expanded, tt.opts)
			require.NoError(t, err)
			require.Equal(t, Formatted, res.Stage)
			require.Equal(t, tt.want, res.Text)
			require.Zero(t, res.Placeholders)
		})
	}
}

func TestFormatWholeFile(t *testing.T) {
	const expanded = "macro_rules! m { () => {} }\n#[automatically_derived]\nimpl Clone for S { fn clone(&self) -> S { S } }\nfn main() { let v = $crate::m(); }\n"

	res, err := Format(context.Background(), expanded, Options{SkipAutoDerived: true})
	require.NoError(t, err)
	require.Equal(t, "fn main() {\n    let v = $crate::m();\n}\n", res.Text)

	res, err = Format(context.Background(), expanded, Options{})
	require.NoError(t, err)
	require.Contains(t, res.Text, "#[automatically_derived]\nimpl Clone for S {")
	require.NotContains(t, res.Text, "macro_rules")
}

func TestFormatUgly(t *testing.T) {
	const raw = "fn  main ( ) { }"
	res, err := Format(context.Background(), raw, Options{Ugly: true, Rustfmt: &fakeFormatter{}})
	require.NoError(t, err)
	require.Equal(t, raw, res.Text)
}

func TestFormatNoSuchItem(t *testing.T) {
	_, err := Format(context.Background(), "fn main() {}\n", Options{Item: selector("a::b")})
	require.True(t, errors.Is(err, ErrNoSuchItem))
	require.EqualError(t, err, "no such item: a::b")
}

func TestFormatParseFailure(t *testing.T) {
	const raw = "fn main() { $crate::f( }\n"

	res, err := Format(context.Background(), raw, Options{})
	require.NoError(t, err)
	require.Equal(t, Questionable, res.Stage)
	require.Equal(t, raw, res.Text)

	fmtr := &fakeFormatter{}
	res, err = Format(context.Background(), raw, Options{Rustfmt: fmtr})
	require.NoError(t, err)
	require.Equal(t, Formatted, res.Stage)
	require.Equal(t, []string{"fn main() { Ξcrate::f( }\n"}, fmtr.calls)
	require.Equal(t, "// rustfmt\n"+raw, res.Text)

	res, err = Format(context.Background(), raw, Options{Rustfmt: &fakeFormatter{err: errors.New("rejected")}})
	require.NoError(t, err)
	require.Equal(t, Questionable, res.Stage)
	require.Equal(t, raw, res.Text)
}

func TestFormatPreferRustfmt(t *testing.T) {
	fmtr := &fakeFormatter{}
	res, err := Format(context.Background(), "fn main() { let x = 1; }\n", Options{PreferRustfmt: true, Rustfmt: fmtr})
	require.NoError(t, err)
	require.Equal(t, Formatted, res.Stage)
	require.Len(t, fmtr.calls, 1)
	require.Equal(t, 1, strings.Count(fmtr.calls[0], "\n"))
	require.Contains(t, fmtr.calls[0], "let x = 1;")

	// without a formatter the one-line rendering is not final and the
	// input is returned as is
	res, err = Format(context.Background(), "fn main() {}\n", Options{PreferRustfmt: true})
	require.NoError(t, err)
	require.Equal(t, Unformatted, res.Stage)
	require.Equal(t, "fn main() {}\n", res.Text)
}

func TestFormatUsesCache(t *testing.T) {
	c, err := cache.OpenDir(t.TempDir())
	require.NoError(t, err)
	opts := Options{Cache: c}

	first, err := Format(context.Background(), "fn main(){}", opts)
	require.NoError(t, err)
	require.False(t, first.Cached)

	second, err := Format(context.Background(), "fn main(){}", opts)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.Text, second.Text)

	opts.Item = selector("main")
	third, err := Format(context.Background(), "fn main(){}", opts)
	require.NoError(t, err)
	require.False(t, third.Cached)
}

func TestFormatReportsPhases(t *testing.T) {
	var got []string
	opts := Options{
		Item: selector("main"),
		Observer: func(ev PhaseEvent) {
			if ev.Status == PhaseEnd {
				got = append(got, ev.Name)
			}
		},
	}
	_, err := Format(context.Background(), "fn main() {}\n", opts)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"parse", "sanitize", "filter", "unparse"}, got); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}
