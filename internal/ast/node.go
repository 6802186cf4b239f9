package ast

// Node is any element of the tree that Inspect can visit.
type Node interface {
	aNode()
}

// Item is a declaration at module level or nested in a block.
type Item interface {
	Node
	itemNode()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Type is a type expression.
type Type interface {
	Node
	typeNode()
}

// Pat is a pattern.
type Pat interface {
	Node
	patNode()
}

// TraitItem is a member of a trait definition.
type TraitItem interface {
	Node
	traitItemNode()
}

// ImplItem is a member of an impl block.
type ImplItem interface {
	Node
	implItemNode()
}

// ForeignItem is a member of an extern block.
type ForeignItem interface {
	Node
	foreignItemNode()
}

// File is a compilation unit.
type File struct {
	Shebang string
	Attrs   []Attribute // inner attributes, `#![...]`
	Items   []Item
}

func (*File) aNode() {}
