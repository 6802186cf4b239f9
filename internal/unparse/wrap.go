package unparse

import "cargo-expand/internal/ast"

// Minimal contexts in which a single node of each category is legal at the
// top level of a file.

func wrapItem(it ast.Item) ast.Item {
	return it
}

// fn main() { stmt }
func wrapStmt(s ast.Stmt) ast.Item {
	return &ast.ItemFn{
		Sig:  ast.Signature{Name: "main"},
		Body: &ast.Block{Stmts: []ast.Stmt{s}},
	}
}

// const _: _ = expr;
func wrapExpr(e ast.Expr) ast.Item {
	return &ast.ItemConst{
		Name: "_",
		Type: &ast.TypeInfer{},
		Expr: e,
	}
}

// extern { item }
func wrapForeignItem(it ast.ForeignItem) ast.Item {
	return &ast.ItemForeignMod{Items: []ast.ForeignItem{it}}
}

// trait Trait { item }
func wrapTraitItem(it ast.TraitItem) ast.Item {
	return &ast.ItemTrait{Name: "Trait", Items: []ast.TraitItem{it}}
}

// impl _ { item }
func wrapImplItem(it ast.ImplItem) ast.Item {
	return &ast.ItemImpl{SelfTy: &ast.TypeInfer{}, Items: []ast.ImplItem{it}}
}
