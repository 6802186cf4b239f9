package ast

import (
	"fmt"
	"strings"
)

// Describe returns a short human-readable label for a node, for traces and
// diagnostics: "fn main", "impl", "let statement", "call expression".
func Describe(n Node) string {
	switch v := n.(type) {
	case *File:
		return "file"
	case *Block:
		return "block"
	case *ItemVerbatim, *TraitItemVerbatim, *ImplItemVerbatim, *ForeignItemVerbatim, *ExprVerbatim:
		if IsPlaceholder(n) {
			return "placeholder"
		}
		return "verbatim"
	case *ItemImpl:
		if v.Trait != nil {
			return "impl " + v.Trait.String()
		}
		return "impl"
	case *ItemForeignMod:
		return "extern block"
	case *ItemUse:
		return "use"
	case Item:
		if name, ok := ItemName(v); ok {
			return itemKeyword(v) + " " + name
		}
		return itemKeyword(v)
	case *TraitItemConst:
		return "trait const " + v.Name
	case *TraitItemFn:
		return "trait fn " + v.Sig.Name
	case *TraitItemType:
		return "trait type " + v.Name
	case *ImplItemConst:
		return "impl const " + v.Name
	case *ImplItemFn:
		return "impl fn " + v.Sig.Name
	case *ImplItemType:
		return "impl type " + v.Name
	case *ForeignItemFn:
		return "foreign fn " + v.Sig.Name
	case *ForeignItemStatic:
		return "foreign static " + v.Name
	case *ForeignItemType:
		return "foreign type " + v.Name
	case *TraitItemMacro, *ImplItemMacro, *ForeignItemMacro:
		return "macro invocation"
	case *StmtLocal:
		return "let statement"
	case *StmtItem:
		return "item statement"
	case *StmtExpr:
		return "expression statement"
	case Expr:
		return exprKind(v) + " expression"
	case Type:
		return "type"
	case Pat:
		return "pattern"
	default:
		return fmt.Sprintf("%T", n)
	}
}

func itemKeyword(it Item) string {
	switch v := it.(type) {
	case *ItemConst:
		return "const"
	case *ItemStatic:
		return "static"
	case *ItemFn:
		return "fn"
	case *ItemMod:
		return "mod"
	case *ItemType:
		return "type"
	case *ItemStruct:
		return "struct"
	case *ItemEnum:
		return "enum"
	case *ItemUnion:
		return "union"
	case *ItemTrait:
		return "trait"
	case *ItemExternCrate:
		return "extern crate"
	case *ItemMacro:
		if v.IsDefinition() {
			return "macro_rules!"
		}
		return v.Mac.Path.String() + "!"
	default:
		return "item"
	}
}

// exprKind turns *ast.ExprMethodCall into "method call".
func exprKind(e Expr) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", e), "*ast.Expr")
	var sb strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return strings.ToLower(sb.String())
}
