package ast

import (
	"cargo-expand/internal/token"
)

type AttrStyle uint8

const (
	AttrOuter AttrStyle = iota // #[...]
	AttrInner                  // #![...]
)

type MetaKind uint8

const (
	MetaPath      MetaKind = iota // #[path]
	MetaList                      // #[path(tokens)]
	MetaNameValue                 // #[path = tokens]
)

// Attribute is an outer or inner attribute. Arguments are kept as tokens.
type Attribute struct {
	Style  AttrStyle
	Path   Path
	Meta   MetaKind
	Delim  token.Delim  // MetaList only
	Tokens token.Stream // list body without delimiters, or the value after `=`
}

// IsDoc reports whether the attribute is a documentation attribute, the form
// doc comments take in the tree.
func (a *Attribute) IsDoc() bool {
	return a.Path.IsIdent("doc")
}

// IsWord reports whether the attribute is exactly `#[name]`: a bare,
// unqualified path without arguments.
func (a *Attribute) IsWord(name string) bool {
	return a.Meta == MetaPath && a.Path.IsIdent(name)
}

// DocText returns the text of a `#[doc = "..."]` attribute.
func (a *Attribute) DocText() (string, bool) {
	if !a.IsDoc() || a.Meta != MetaNameValue || len(a.Tokens) != 1 {
		return "", false
	}
	lit := a.Tokens[0]
	if lit.Kind != token.Literal || (lit.Lit != token.LitStr && lit.Lit != token.LitRawStr) {
		return "", false
	}
	return token.UnquoteString(lit.Text)
}

// DocAttr builds `#[doc = "text"]`.
func DocAttr(style AttrStyle, text string) Attribute {
	return Attribute{
		Style:  style,
		Path:   PathOf("doc"),
		Meta:   MetaNameValue,
		Tokens: token.Stream{{Kind: token.Literal, Lit: token.LitStr, Text: token.QuoteString(text)}},
	}
}

// WordAttr builds `#[name]`.
func WordAttr(name string) Attribute {
	return Attribute{Style: AttrOuter, Path: PathOf(name), Meta: MetaPath}
}

// RetainAttrs drops, in place, the attributes for which keep returns false.
func RetainAttrs(attrs []Attribute, keep func(*Attribute) bool) []Attribute {
	out := attrs[:0]
	for i := range attrs {
		if keep(&attrs[i]) {
			out = append(out, attrs[i])
		}
	}
	clear(attrs[len(out):])
	return out
}
