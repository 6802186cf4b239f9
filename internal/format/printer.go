package format

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-runewidth"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/lexer"
	"cargo-expand/internal/token"
)

// Margin is the line width Unparse tries to stay within.
const Margin = 89

// ErrUnsupported is the panic value (wrapped) raised for trees the printer
// cannot render.
var ErrUnsupported = errors.New("unsupported syntax tree")

type Options struct {
	IndentWidth int
	// OneLine prints everything on a single line and spells doc comments
	// as attributes.
	OneLine bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	w    *Writer
	opt  Options
	flat bool // measuring: every list stays inline
}

// Unparse pretty-prints file. It panics with an error wrapping
// ErrUnsupported when the tree holds a non-placeholder verbatim node, an
// invalid identifier or an empty literal.
func Unparse(file *ast.File) string {
	return render(file, Options{})
}

// Tokens prints file on a single line. It fails on the same inputs as
// Unparse.
func Tokens(file *ast.File) string {
	return render(file, Options{OneLine: true})
}

func render(file *ast.File, opt Options) string {
	opt = opt.withDefaults()
	p := &printer{w: NewWriter(opt), opt: opt}
	p.file(file)
	return p.w.Finish()
}

func unsupported(format string, args ...any) {
	panic(errors.Wrapf(ErrUnsupported, format, args...))
}

func (p *printer) word(s string) {
	p.w.WriteString(s)
}

func (p *printer) space() {
	p.w.Space()
}

func (p *printer) newline() {
	p.w.Newline()
}

func (p *printer) indent() {
	p.w.IndentPush()
}

func (p *printer) dedent() {
	p.w.IndentPop()
}

// ident writes an identifier, rejecting anything the lexer would not read
// back as one.
func (p *printer) ident(s string) {
	if s != "_" && !lexer.IsIdent(s) {
		unsupported("invalid identifier %q", s)
	}
	p.word(s)
}

func (p *printer) lifetime(s string) {
	if len(s) < 2 || s[0] != '\'' || !lexer.IsIdent(s[1:]) {
		unsupported("invalid lifetime %q", s)
	}
	p.word(s)
}

// measure renders fn into a scratch printer in flat mode and returns the
// text.
func (p *printer) measure(fn func(*printer)) string {
	sub := &printer{w: NewWriter(p.opt), opt: p.opt, flat: true}
	sub.w.indentLevel = p.w.indentLevel
	sub.w.atLineStart = false
	fn(sub)
	return sub.w.String()
}

// fits reports whether a list rendered as text can stay on the current line
// given tail more columns after it. A list whose only multi-line element is
// the last one also fits when its first line does.
func (p *printer) fits(parts []string, tail int) bool {
	width := p.w.Col()
	for i, s := range parts {
		if i > 0 {
			width += 2
		}
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			if i != len(parts)-1 {
				return false
			}
			return width+runewidth.StringWidth(s[:nl]) <= Margin
		}
		width += runewidth.StringWidth(s)
	}
	return width+tail <= Margin
}

// list prints n elements between open and close, separated by commas: on
// one line when they fit, otherwise one per line with a trailing comma.
func (p *printer) list(open, close string, n int, elem func(*printer, int)) {
	p.word(open)
	if n == 0 {
		p.word(close)
		return
	}
	if p.flat || p.opt.OneLine || p.listFits(n, elem, len(close)+1) {
		for i := range n {
			if i > 0 {
				p.word(", ")
			}
			elem(p, i)
		}
		p.word(close)
		return
	}
	p.newline()
	p.indent()
	for i := range n {
		elem(p, i)
		p.word(",")
		p.newline()
	}
	p.dedent()
	p.word(close)
}

func (p *printer) listFits(n int, elem func(*printer, int), tail int) bool {
	parts := make([]string, n)
	for i := range n {
		parts[i] = p.measure(func(sub *printer) { elem(sub, i) })
	}
	return p.fits(parts, tail)
}

// attrs prints outer or inner attributes, each on its own line.
func (p *printer) attrs(attrs []ast.Attribute, style ast.AttrStyle) {
	for i := range attrs {
		if attrs[i].Style != style {
			continue
		}
		p.attr(&attrs[i])
		p.newline()
	}
}

// inlineAttrs prints outer attributes followed by a space, for positions
// such as parameters, fields of a struct literal and expressions.
func (p *printer) inlineAttrs(attrs []ast.Attribute) {
	for i := range attrs {
		if attrs[i].Style != ast.AttrOuter {
			continue
		}
		if _, ok := attrs[i].DocText(); ok && !p.opt.OneLine {
			// a line comment would swallow the rest of the line
			p.attrSyntax(&attrs[i])
		} else {
			p.attr(&attrs[i])
		}
		p.space()
	}
}

func (p *printer) attr(a *ast.Attribute) {
	if text, ok := a.DocText(); ok && !p.opt.OneLine && !strings.Contains(text, "\n") {
		if a.Style == ast.AttrInner {
			p.word("//!" + text)
		} else {
			p.word("///" + text)
		}
		return
	}
	p.attrSyntax(a)
}

func (p *printer) attrSyntax(a *ast.Attribute) {
	if a.Style == ast.AttrInner {
		p.word("#![")
	} else {
		p.word("#[")
	}
	p.path(&a.Path, pathMod)
	switch a.Meta {
	case ast.MetaList:
		p.delimited(a.Delim, a.Tokens)
	case ast.MetaNameValue:
		p.word(" = ")
		p.tokens(a.Tokens)
	}
	p.word("]")
}

func (p *printer) delimited(d token.Delim, toks token.Stream) {
	p.word(d.Open())
	p.tokens(toks)
	p.word(d.Close())
}

// tokens prints a macro body or attribute argument.
func (p *printer) tokens(toks token.Stream) {
	for _, tok := range toks {
		if tok.Kind == token.Ident && !lexer.IsIdent(tok.Text) && !token.IsKeyword(tok.Text) {
			unsupported("invalid identifier %q in token stream", tok.Text)
		}
	}
	p.word(toks.String())
}

func (p *printer) vis(v *ast.Visibility) {
	switch v.Kind {
	case ast.VisPublic:
		p.word("pub ")
	case ast.VisCrate:
		p.word("pub(crate) ")
	case ast.VisRestricted:
		p.word("pub(")
		if v.In {
			p.word("in ")
		}
		p.path(&v.Path, pathMod)
		p.word(") ")
	}
}

// verbatim prints a verbatim node. Only the `...` placeholder is supported.
func (p *printer) verbatim(toks token.Stream) {
	if !toks.IsEllipsis() {
		unsupported("verbatim tokens `%s`", toks)
	}
	p.word("...")
}

func (p *printer) file(f *ast.File) {
	if f.Shebang != "" {
		p.word(f.Shebang + "\n")
	}
	p.attrs(f.Attrs, ast.AttrInner)
	for _, it := range f.Items {
		p.item(it)
		p.newline()
	}
}
