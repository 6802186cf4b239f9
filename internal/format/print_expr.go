package format

import (
	"strings"

	"cargo-expand/internal/ast"
)

// prec returns how tightly e binds as printed. Attributes bind like a
// prefix operator.
func prec(e ast.Expr) ast.Prec {
	if attrs := ast.ExprAttrs(e); attrs != nil && len(*attrs) > 0 {
		return ast.PrecPrefix
	}
	switch n := e.(type) {
	case *ast.ExprClosure, *ast.ExprReturn, *ast.ExprBreak, *ast.ExprYield:
		return ast.PrecJump
	case *ast.ExprAssign:
		return ast.PrecAssign
	case *ast.ExprRange:
		return ast.PrecRange
	case *ast.ExprBinary:
		return n.Op.Prec()
	case *ast.ExprCast:
		return ast.PrecCast
	case *ast.ExprUnary, *ast.ExprReference:
		return ast.PrecPrefix
	case *ast.ExprLet:
		return ast.PrecCompare
	case *ast.ExprTry, *ast.ExprField, *ast.ExprMethodCall, *ast.ExprCall, *ast.ExprIndex, *ast.ExprAwait:
		return ast.PrecPostfix
	default:
		return ast.PrecUnambiguous
	}
}

func (p *printer) expr(e ast.Expr) {
	if attrs := ast.ExprAttrs(e); attrs != nil {
		p.inlineAttrs(*attrs)
	}
	p.exprBare(e)
}

// subexpr prints e, parenthesized when it binds looser than min.
func (p *printer) subexpr(e ast.Expr, min ast.Prec) {
	if prec(e) < min {
		p.paren(e)
		return
	}
	p.expr(e)
}

func (p *printer) paren(e ast.Expr) {
	p.word("(")
	p.expr(e)
	p.word(")")
}

// postfixBase prints the operand of a postfix operator. A float literal
// ending in `.` would run into the following dot.
func (p *printer) postfixBase(e ast.Expr) {
	if lit, ok := e.(*ast.ExprLit); ok && len(lit.Attrs) == 0 && strings.HasSuffix(lit.Lit.Text, ".") {
		p.paren(e)
		return
	}
	p.subexpr(e, ast.PrecPostfix)
}

// cond prints the condition of if/while or the scrutinee of match/for,
// where a struct literal would be read as the body.
func (p *printer) cond(e ast.Expr) {
	if exposesStruct(e) {
		p.paren(e)
		return
	}
	p.expr(e)
}

func exposesStruct(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.ExprStruct:
		return true
	case *ast.ExprBinary:
		return exposesStruct(n.Left) || exposesStruct(n.Right)
	case *ast.ExprAssign:
		return exposesStruct(n.Left) || exposesStruct(n.Right)
	case *ast.ExprRange:
		return n.Start != nil && exposesStruct(n.Start) || n.End != nil && exposesStruct(n.End)
	case *ast.ExprUnary:
		return exposesStruct(n.Expr)
	case *ast.ExprReference:
		return exposesStruct(n.Expr)
	case *ast.ExprCast:
		return exposesStruct(n.Expr)
	case *ast.ExprLet:
		return exposesStruct(n.Expr)
	case *ast.ExprTry:
		return exposesStruct(n.Expr)
	case *ast.ExprAwait:
		return exposesStruct(n.Base)
	case *ast.ExprField:
		return exposesStruct(n.Base)
	case *ast.ExprMethodCall:
		return exposesStruct(n.Receiver)
	case *ast.ExprCall:
		return exposesStruct(n.Func)
	case *ast.ExprIndex:
		return exposesStruct(n.Expr)
	case *ast.ExprReturn:
		return n.Expr != nil && exposesStruct(n.Expr)
	case *ast.ExprBreak:
		return n.Expr != nil && exposesStruct(n.Expr)
	case *ast.ExprClosure:
		return true
	default:
		return false
	}
}

func (p *printer) label(l string) {
	if l != "" {
		p.lifetime(l)
		p.word(": ")
	}
}

func (p *printer) exprBare(e ast.Expr) {
	switch n := e.(type) {
	case *ast.ExprArray:
		p.list("[", "]", len(n.Elems), func(p *printer, i int) { p.expr(n.Elems[i]) })
	case *ast.ExprAssign:
		p.subexpr(n.Left, ast.PrecAssign+1)
		p.word(" = ")
		p.subexpr(n.Right, ast.PrecAssign)
	case *ast.ExprAsync:
		p.word("async ")
		if n.Move {
			p.word("move ")
		}
		p.block(n.Block)
	case *ast.ExprAwait:
		p.postfixBase(n.Base)
		p.word(".await")
	case *ast.ExprBinary:
		p.binary(n)
	case *ast.ExprBlock:
		p.label(n.Label)
		p.block(n.Block)
	case *ast.ExprBreak:
		p.word("break")
		if n.Label != "" {
			p.space()
			p.lifetime(n.Label)
		}
		if n.Expr != nil {
			p.space()
			p.expr(n.Expr)
		}
	case *ast.ExprCall:
		p.postfixBase(n.Func)
		p.list("(", ")", len(n.Args), func(p *printer, i int) { p.expr(n.Args[i]) })
	case *ast.ExprCast:
		p.subexpr(n.Expr, ast.PrecCast)
		p.word(" as ")
		p.typ(n.Type)
	case *ast.ExprClosure:
		p.closure(n)
	case *ast.ExprConst:
		p.word("const ")
		p.block(n.Block)
	case *ast.ExprContinue:
		p.word("continue")
		if n.Label != "" {
			p.space()
			p.lifetime(n.Label)
		}
	case *ast.ExprField:
		p.postfixBase(n.Base)
		p.word(".")
		if n.Member.Name != "" {
			p.ident(n.Member.Name)
		} else {
			p.word(n.Member.String())
		}
	case *ast.ExprForLoop:
		p.label(n.Label)
		p.word("for ")
		p.pat(n.Pat)
		p.word(" in ")
		p.cond(n.Expr)
		p.space()
		p.block(n.Body)
	case *ast.ExprIf:
		p.ifExpr(n)
	case *ast.ExprIndex:
		p.postfixBase(n.Expr)
		p.word("[")
		p.expr(n.Index)
		p.word("]")
	case *ast.ExprInfer:
		p.word("_")
	case *ast.ExprLet:
		p.word("let ")
		p.pat(n.Pat)
		p.word(" = ")
		p.subexpr(n.Expr, ast.PrecCompare)
	case *ast.ExprLit:
		if n.Lit.Text == "" {
			unsupported("empty literal")
		}
		p.word(n.Lit.Text)
	case *ast.ExprLoop:
		p.label(n.Label)
		p.word("loop ")
		p.block(n.Body)
	case *ast.ExprMacro:
		p.macro(&n.Mac)
	case *ast.ExprMatch:
		p.match(n)
	case *ast.ExprMethodCall:
		p.postfixBase(n.Receiver)
		p.word(".")
		p.ident(n.Method)
		if n.Turbofish != nil {
			p.genericArgs(n.Turbofish, true)
		}
		p.list("(", ")", len(n.Args), func(p *printer, i int) { p.expr(n.Args[i]) })
	case *ast.ExprParen:
		p.paren(n.Expr)
	case *ast.ExprPath:
		p.qpath(n.QSelf, &n.Path, pathExpr)
	case *ast.ExprRange:
		if n.Start != nil {
			p.subexpr(n.Start, ast.PrecRange+1)
		}
		if n.Limits == ast.RangeClosed {
			p.word("..=")
		} else {
			p.word("..")
		}
		if n.End != nil {
			p.subexpr(n.End, ast.PrecRange+1)
		}
	case *ast.ExprReference:
		p.word("&")
		switch {
		case n.Raw && n.Mut:
			p.word("raw mut ")
		case n.Raw:
			p.word("raw const ")
		case n.Mut:
			p.word("mut ")
		}
		p.subexpr(n.Expr, ast.PrecPrefix)
	case *ast.ExprRepeat:
		p.word("[")
		p.expr(n.Expr)
		p.word("; ")
		p.expr(n.Len)
		p.word("]")
	case *ast.ExprReturn:
		p.word("return")
		if n.Expr != nil {
			p.space()
			p.expr(n.Expr)
		}
	case *ast.ExprStruct:
		p.structLit(n)
	case *ast.ExprTry:
		p.postfixBase(n.Expr)
		p.word("?")
	case *ast.ExprTryBlock:
		p.word("try ")
		p.block(n.Block)
	case *ast.ExprTuple:
		if len(n.Elems) == 1 {
			p.word("(")
			p.expr(n.Elems[0])
			p.word(",)")
			return
		}
		p.list("(", ")", len(n.Elems), func(p *printer, i int) { p.expr(n.Elems[i]) })
	case *ast.ExprUnary:
		p.word(n.Op.String())
		p.subexpr(n.Expr, ast.PrecPrefix)
	case *ast.ExprUnsafe:
		p.word("unsafe ")
		p.block(n.Block)
	case *ast.ExprWhile:
		p.label(n.Label)
		p.word("while ")
		p.cond(n.Cond)
		p.space()
		p.block(n.Body)
	case *ast.ExprYield:
		p.word("yield")
		if n.Expr != nil {
			p.space()
			p.expr(n.Expr)
		}
	case *ast.ExprVerbatim:
		p.verbatim(n.Tokens)
	default:
		unsupported("expression %T", e)
	}
}

func (p *printer) binary(n *ast.ExprBinary) {
	pr := n.Op.Prec()
	left, right := pr, pr+1
	switch {
	case n.Op.IsAssign():
		left, right = pr+1, pr
	case pr == ast.PrecCompare:
		// comparisons do not chain
		left = pr + 1
	}
	// `x as T < y` would read `T<` as the start of generic arguments.
	if _, ok := n.Left.(*ast.ExprCast); ok && (n.Op == ast.BinLt || n.Op == ast.BinShl) {
		left = ast.PrecPrefix
	}
	p.subexpr(n.Left, left)
	p.word(" " + n.Op.String() + " ")
	p.subexpr(n.Right, right)
}

func (p *printer) ifExpr(n *ast.ExprIf) {
	p.word("if ")
	p.cond(n.Cond)
	p.space()
	p.block(n.Then)
	switch els := n.Else.(type) {
	case nil:
	case *ast.ExprIf:
		p.word(" else ")
		p.ifExpr(els)
	case *ast.ExprBlock:
		p.word(" else ")
		p.block(els.Block)
	default:
		// Only blocks may follow else.
		p.word(" else {")
		p.newline()
		p.indent()
		p.expr(els)
		p.newline()
		p.dedent()
		p.word("}")
	}
}

func (p *printer) match(n *ast.ExprMatch) {
	p.word("match ")
	p.cond(n.Expr)
	p.word(" {")
	if len(n.Arms) == 0 {
		p.word("}")
		return
	}
	p.newline()
	p.indent()
	for i := range n.Arms {
		p.arm(&n.Arms[i])
		p.newline()
	}
	p.dedent()
	p.word("}")
}

func (p *printer) arm(a *ast.Arm) {
	p.attrs(a.Attrs, ast.AttrOuter)
	p.pat(a.Pat)
	if a.Guard != nil {
		p.word(" if ")
		p.expr(a.Guard)
	}
	p.word(" => ")
	switch {
	case ast.IsBlockLike(a.Body) && noAttrs(a.Body):
		p.expr(a.Body)
	case startsWithBlock(a.Body):
		p.paren(a.Body)
		p.word(",")
	default:
		p.expr(a.Body)
		p.word(",")
	}
}

func noAttrs(e ast.Expr) bool {
	attrs := ast.ExprAttrs(e)
	return attrs == nil || len(*attrs) == 0
}

func (p *printer) closure(n *ast.ExprClosure) {
	if n.Const {
		p.word("const ")
	}
	if n.Static {
		p.word("static ")
	}
	if n.Async {
		p.word("async ")
	}
	if n.Move {
		p.word("move ")
	}
	p.list("|", "|", len(n.Inputs), func(p *printer, i int) { p.patNoTopAlt(n.Inputs[i]) })
	p.space()
	if n.Output == nil {
		p.expr(n.Body)
		return
	}
	p.word("-> ")
	p.typ(n.Output)
	p.space()
	if b, ok := n.Body.(*ast.ExprBlock); ok && b.Label == "" && noAttrs(b) {
		p.block(b.Block)
		return
	}
	p.block(&ast.Block{Stmts: []ast.Stmt{&ast.StmtExpr{Expr: n.Body}}})
}

func (p *printer) structLit(n *ast.ExprStruct) {
	p.qpath(n.QSelf, &n.Path, pathExpr)
	count := len(n.Fields)
	if n.HasRest {
		count++
	}
	if count == 0 {
		p.word(" {}")
		return
	}
	elem := func(p *printer, i int) {
		if i == len(n.Fields) {
			p.word("..")
			if n.Rest != nil {
				p.expr(n.Rest)
			}
			return
		}
		fv := &n.Fields[i]
		p.inlineAttrs(fv.Attrs)
		if fv.Shorthand && shorthandOK(fv) {
			p.ident(fv.Member.Name)
			return
		}
		if fv.Member.Name != "" {
			p.ident(fv.Member.Name)
		} else {
			p.word(fv.Member.String())
		}
		p.word(": ")
		p.expr(fv.Expr)
	}
	if p.flat || p.opt.OneLine || p.listFits(count, elem, 2) {
		p.word(" { ")
		for i := range count {
			if i > 0 {
				p.word(", ")
			}
			elem(p, i)
		}
		p.word(" }")
		return
	}
	p.word(" {")
	p.newline()
	p.indent()
	for i := range count {
		elem(p, i)
		if i < len(n.Fields) {
			p.word(",")
		}
		p.newline()
	}
	p.dedent()
	p.word("}")
}

// shorthandOK reports whether the field value is still the bare path the
// shorthand stands for.
func shorthandOK(fv *ast.FieldValue) bool {
	path, ok := fv.Expr.(*ast.ExprPath)
	return ok && path.QSelf == nil && len(path.Attrs) == 0 && path.Path.IsIdent(fv.Member.Name)
}
