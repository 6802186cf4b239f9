package ast

import "cargo-expand/internal/token"

// Placeholders stand in for subtrees that could not be rendered. Each is a
// verbatim node holding exactly `...`.

func PlaceholderItem() Item {
	return &ItemVerbatim{Tokens: token.Ellipsis()}
}

func PlaceholderStmt() Stmt {
	return &StmtItem{Item: PlaceholderItem()}
}

func PlaceholderExpr() Expr {
	return &ExprVerbatim{Tokens: token.Ellipsis()}
}

func PlaceholderTraitItem() TraitItem {
	return &TraitItemVerbatim{Tokens: token.Ellipsis()}
}

func PlaceholderImplItem() ImplItem {
	return &ImplItemVerbatim{Tokens: token.Ellipsis()}
}

func PlaceholderForeignItem() ForeignItem {
	return &ForeignItemVerbatim{Tokens: token.Ellipsis()}
}

// IsPlaceholder reports whether n is one of the `...` placeholder nodes.
func IsPlaceholder(n Node) bool {
	switch v := n.(type) {
	case *ItemVerbatim:
		return v.Tokens.IsEllipsis()
	case *StmtItem:
		return IsPlaceholder(v.Item)
	case *ExprVerbatim:
		return v.Tokens.IsEllipsis()
	case *TraitItemVerbatim:
		return v.Tokens.IsEllipsis()
	case *ImplItemVerbatim:
		return v.Tokens.IsEllipsis()
	case *ForeignItemVerbatim:
		return v.Tokens.IsEllipsis()
	case *TypeVerbatim:
		return v.Tokens.IsEllipsis()
	case *PatVerbatim:
		return v.Tokens.IsEllipsis()
	default:
		return false
	}
}

// CountPlaceholders counts placeholder nodes anywhere under root.
func CountPlaceholders(root Node) int {
	n := 0
	Inspect(root, func(node Node) bool {
		if node == nil {
			return false
		}
		if IsPlaceholder(node) {
			n++
			return false
		}
		return true
	})
	return n
}
