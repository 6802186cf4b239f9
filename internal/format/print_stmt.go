package format

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

// block prints `{ stmts }` over several lines, or `{}` when empty.
func (p *printer) block(b *ast.Block) {
	if b == nil || len(b.Stmts) == 0 {
		p.word("{}")
		return
	}
	p.word("{")
	p.newline()
	p.indent()
	p.stmts(b.Stmts)
	p.dedent()
	p.word("}")
}

func (p *printer) stmts(stmts []ast.Stmt) {
	for i, s := range stmts {
		p.stmt(s, i == len(stmts)-1)
		p.newline()
	}
}

func (p *printer) stmt(s ast.Stmt, last bool) {
	switch n := s.(type) {
	case *ast.StmtLocal:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.word("let ")
		p.pat(n.Pat)
		if n.Type != nil {
			p.word(": ")
			p.typ(n.Type)
		}
		if n.Init != nil {
			p.word(" = ")
			if n.Else != nil && endsWithBrace(n.Init) {
				p.paren(n.Init)
			} else {
				p.expr(n.Init)
			}
			if n.Else != nil {
				p.word(" else ")
				p.block(n.Else)
			}
		}
		p.word(";")
	case *ast.StmtItem:
		p.item(n.Item)
	case *ast.StmtExpr:
		if attrs := ast.ExprAttrs(n.Expr); attrs != nil {
			p.attrs(*attrs, ast.AttrOuter)
		}
		if !ast.IsBlockLike(n.Expr) && startsWithBlock(n.Expr) {
			p.word("(")
			p.exprBare(n.Expr)
			p.word(")")
		} else {
			p.exprBare(n.Expr)
		}
		if n.Semi || !last && !ast.IsBlockLike(n.Expr) {
			p.word(";")
		}
	default:
		unsupported("statement %T", s)
	}
}

// startsWithBlock reports whether the leftmost operand of e is a block-like
// expression, which would end a statement early.
func startsWithBlock(e ast.Expr) bool {
	for {
		if attrs := ast.ExprAttrs(e); attrs != nil && len(*attrs) > 0 {
			return false
		}
		switch n := e.(type) {
		case *ast.ExprBinary:
			e = n.Left
		case *ast.ExprAssign:
			e = n.Left
		case *ast.ExprCast:
			e = n.Expr
		case *ast.ExprRange:
			if n.Start == nil {
				return false
			}
			e = n.Start
		case *ast.ExprIndex:
			e = n.Expr
		case *ast.ExprCall:
			e = n.Func
		case *ast.ExprField:
			e = n.Base
		case *ast.ExprMethodCall:
			e = n.Receiver
		case *ast.ExprTry:
			e = n.Expr
		case *ast.ExprAwait:
			e = n.Base
		case *ast.ExprMacro:
			return false
		default:
			return ast.IsBlockLike(e)
		}
	}
}

// endsWithBrace reports whether e ends with `}`, which a let-else
// initializer may not.
func endsWithBrace(e ast.Expr) bool {
	for {
		switch n := e.(type) {
		case *ast.ExprBinary:
			if n.Op == ast.BinAnd || n.Op == ast.BinOr {
				return true
			}
			e = n.Right
		case *ast.ExprAssign:
			e = n.Right
		case *ast.ExprUnary:
			e = n.Expr
		case *ast.ExprReference:
			e = n.Expr
		case *ast.ExprRange:
			if n.End == nil {
				return false
			}
			e = n.End
		case *ast.ExprReturn:
			if n.Expr == nil {
				return false
			}
			e = n.Expr
		case *ast.ExprBreak:
			if n.Expr == nil {
				return false
			}
			e = n.Expr
		case *ast.ExprClosure:
			e = n.Body
		case *ast.ExprStruct, *ast.ExprAsync:
			return true
		case *ast.ExprMacro:
			return n.Mac.Delim == token.Brace
		default:
			return ast.IsBlockLike(e)
		}
	}
}
