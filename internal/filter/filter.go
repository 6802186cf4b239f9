// Package filter narrows a syntax tree down to the item addressed by a
// `::`-separated path such as `a::b::c`.
package filter

import (
	"strings"

	"github.com/cockroachdb/errors"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/lexer"
	"cargo-expand/internal/token"
)

// ErrInvalidSelector is returned by Parse for paths that are empty or hold
// a segment that is not an identifier.
var ErrInvalidSelector = errors.New("invalid item path")

// Selector is a parsed item path.
type Selector struct {
	segments []string
}

// Parse reads a path of identifiers separated by `::`. A leading `::` is
// ignored.
func Parse(s string) (Selector, error) {
	s = strings.TrimPrefix(s, "::")
	if s == "" {
		return Selector{}, errors.Wrap(ErrInvalidSelector, "empty path")
	}
	segments := strings.Split(s, "::")
	for _, seg := range segments {
		if !isIdent(seg) {
			return Selector{}, errors.Wrapf(ErrInvalidSelector, "`%s` is not an identifier", seg)
		}
	}
	return Selector{segments: segments}, nil
}

// MustParse is Parse for paths known to be valid.
func MustParse(s string) Selector {
	sel, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// isIdent accepts plain and raw identifiers but not `_` or keywords.
func isIdent(s string) bool {
	return s != "_" && lexer.IsIdent(s) && !token.IsKeyword(s)
}

// Segments returns the path segments.
func (s Selector) Segments() []string {
	return s.segments
}

func (s Selector) String() string {
	return strings.Join(s.segments, "::")
}

// Apply replaces the items of file with the ones the selector addresses,
// starting from the file as an implicit root module. Each segment descends
// into the inline modules and traits selected so far and keeps the items
// with a matching name; trait members with a default become free-standing
// items. A single remaining inline module is unwrapped to its items. The
// shebang and inner attributes of the file are dropped. The result may be
// empty.
func (s Selector) Apply(file *ast.File) {
	file.Shebang = ""
	file.Attrs = nil

	items := []ast.Item{&ast.ItemMod{Name: "root", Inline: true, Items: file.Items}}
	for _, seg := range s.segments {
		var next []ast.Item
		for _, it := range items {
			for _, child := range enter(it) {
				if name, ok := ast.ItemName(child); ok && token.Unraw(name) == token.Unraw(seg) {
					next = append(next, child)
				}
			}
		}
		items = next
	}

	if len(items) == 1 {
		if mod, ok := items[0].(*ast.ItemMod); ok && mod.Inline {
			items = mod.Items
		}
	}
	file.Items = items
}

// enter returns the items nested in a container. Everything but inline
// modules and traits is opaque.
func enter(it ast.Item) []ast.Item {
	switch it := it.(type) {
	case *ast.ItemMod:
		return it.Items
	case *ast.ItemTrait:
		var out []ast.Item
		for _, member := range it.Items {
			if item := defaulted(member); item != nil {
				out = append(out, item)
			}
		}
		return out
	default:
		return nil
	}
}

// defaulted turns a trait member with a default into the equivalent free
// item, or returns nil.
func defaulted(member ast.TraitItem) ast.Item {
	switch m := member.(type) {
	case *ast.TraitItemConst:
		if m.Default == nil {
			return nil
		}
		return &ast.ItemConst{
			Attrs:    m.Attrs,
			Name:     m.Name,
			Generics: m.Generics,
			Type:     m.Type,
			Expr:     m.Default,
		}
	case *ast.TraitItemFn:
		if m.Default == nil {
			return nil
		}
		return &ast.ItemFn{Attrs: m.Attrs, Sig: m.Sig, Body: m.Default}
	case *ast.TraitItemType:
		if m.Default == nil {
			return nil
		}
		return &ast.ItemType{
			Attrs:    m.Attrs,
			Name:     m.Name,
			Generics: m.Generics,
			Type:     m.Default,
		}
	default:
		return nil
	}
}
