package ast

// Block is a brace-delimited sequence of statements.
type Block struct {
	Stmts []Stmt
}

func (*Block) aNode() {}

type (
	// StmtLocal is `let pat: Type = init else { ... };`.
	StmtLocal struct {
		Attrs []Attribute
		Pat   Pat
		Type  Type
		Init  Expr
		Else  *Block
	}
	StmtItem struct {
		Item Item
	}
	// StmtExpr is an expression statement; Semi records the trailing `;`.
	StmtExpr struct {
		Expr Expr
		Semi bool
	}
)

func (*StmtLocal) aNode() {}
func (*StmtItem) aNode()  {}
func (*StmtExpr) aNode()  {}

func (*StmtLocal) stmtNode() {}
func (*StmtItem) stmtNode()  {}
func (*StmtExpr) stmtNode()  {}
