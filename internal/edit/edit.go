// Package edit removes macro expansion artifacts from a syntax tree before
// it is rendered.
package edit

import (
	"slices"

	"cargo-expand/internal/ast"
)

// DeriveMarker is the attribute rustc puts on impls generated by a derive.
const DeriveMarker = "automatically_derived"

// Sanitize removes every `macro_rules!` definition from the file, from
// inline modules and from blocks, and strips doc attributes from statement
// expressions and let bindings, where expansion sometimes leaves doc
// comments behind. The tree is modified in place. Sanitize is idempotent.
func Sanitize(file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.File:
			n.Items = retainItems(n.Items, isMacroDefinition)
		case *ast.ItemMod:
			n.Items = retainItems(n.Items, isMacroDefinition)
		case *ast.Block:
			n.Stmts = retainStmts(n.Stmts, isMacroDefinition)
		case *ast.StmtLocal:
			n.Attrs = stripDocs(n.Attrs)
		case *ast.StmtExpr:
			if attrs := ast.ExprAttrs(n.Expr); attrs != nil {
				*attrs = stripDocs(*attrs)
			}
		}
		return true
	})
}

// SkipAutoDerived removes every impl block marked #[automatically_derived],
// at any depth. The remaining items keep their order.
func SkipAutoDerived(file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.File:
			n.Items = retainItems(n.Items, isAutoDerived)
		case *ast.ItemMod:
			n.Items = retainItems(n.Items, isAutoDerived)
		case *ast.Block:
			n.Stmts = retainStmts(n.Stmts, isAutoDerived)
		}
		return true
	})
}

// isMacroDefinition matches `macro_rules!` items only. Other item-position
// macro invocations left in expanded output are kept and printed.
func isMacroDefinition(it ast.Item) bool {
	m, ok := it.(*ast.ItemMacro)
	return ok && m.IsDefinition()
}

func isAutoDerived(it ast.Item) bool {
	impl, ok := it.(*ast.ItemImpl)
	if !ok {
		return false
	}
	return slices.ContainsFunc(impl.Attrs, func(a ast.Attribute) bool {
		return a.Style == ast.AttrOuter && a.IsWord(DeriveMarker)
	})
}

func retainItems(items []ast.Item, drop func(ast.Item) bool) []ast.Item {
	return slices.DeleteFunc(items, drop)
}

func retainStmts(stmts []ast.Stmt, drop func(ast.Item) bool) []ast.Stmt {
	return slices.DeleteFunc(stmts, func(s ast.Stmt) bool {
		si, ok := s.(*ast.StmtItem)
		return ok && drop(si.Item)
	})
}

func stripDocs(attrs []ast.Attribute) []ast.Attribute {
	return ast.RetainAttrs(attrs, func(a *ast.Attribute) bool { return !a.IsDoc() })
}
