package format

import (
	"cargo-expand/internal/ast"
)

type pathMode uint8

const (
	pathMod  pathMode = iota // attributes, visibility
	pathExpr                 // generic arguments need `::<`
	pathType
)

func (p *printer) path(path *ast.Path, mode pathMode) {
	if path.Global {
		p.word("::")
	}
	for i := range path.Segments {
		if i > 0 {
			p.word("::")
		}
		p.segment(&path.Segments[i], mode)
	}
}

// qpath prints `<Type as Trait>::rest` or a plain path.
func (p *printer) qpath(q *ast.QSelf, path *ast.Path, mode pathMode) {
	if q == nil {
		p.path(path, mode)
		return
	}
	p.word("<")
	p.typ(q.Type)
	if q.Trait != nil {
		p.word(" as ")
		p.path(q.Trait, pathType)
	}
	p.word(">")
	for i := range path.Segments {
		p.word("::")
		p.segment(&path.Segments[i], mode)
	}
}

func (p *printer) segment(seg *ast.PathSegment, mode pathMode) {
	p.ident(seg.Ident)
	if seg.Args == nil {
		return
	}
	if mode == pathMod {
		unsupported("generic arguments in path segment `%s`", seg.Ident)
	}
	p.genericArgs(seg.Args, mode == pathExpr || seg.Args.Colon)
}

func (p *printer) genericArgs(args *ast.GenericArgs, turbofish bool) {
	if args.Paren {
		p.list("(", ")", len(args.Inputs), func(p *printer, i int) { p.typ(args.Inputs[i]) })
		if args.Output != nil {
			p.word(" -> ")
			p.typ(args.Output)
		}
		return
	}
	open := "<"
	if turbofish {
		open = "::<"
	}
	p.list(open, ">", len(args.Args), func(p *printer, i int) { p.genericArg(&args.Args[i]) })
}

func (p *printer) genericArg(a *ast.GenericArg) {
	switch a.Kind {
	case ast.ArgLifetime:
		p.lifetime(a.Lifetime)
	case ast.ArgType:
		p.typ(a.Type)
	case ast.ArgConst:
		p.constArg(a.Const)
	case ast.ArgAssocType:
		p.ident(a.Ident)
		p.word(" = ")
		p.typ(a.Type)
	case ast.ArgAssocConst:
		p.ident(a.Ident)
		p.word(" = ")
		p.constArg(a.Const)
	case ast.ArgConstraint:
		p.ident(a.Ident)
		p.word(": ")
		p.bounds(a.Bounds)
	}
}

// constArg prints a const generic argument. Anything but a literal, a
// negated literal or a block needs braces.
func (p *printer) constArg(e ast.Expr) {
	switch n := e.(type) {
	case *ast.ExprLit, *ast.ExprBlock:
		p.expr(e)
		return
	case *ast.ExprUnary:
		if _, ok := n.Expr.(*ast.ExprLit); ok && n.Op == ast.UnNeg {
			p.expr(e)
			return
		}
	}
	p.word("{ ")
	p.expr(e)
	p.word(" }")
}

func (p *printer) generics(g *ast.Generics) {
	if len(g.Params) == 0 {
		return
	}
	p.list("<", ">", len(g.Params), func(p *printer, i int) { p.genericParam(&g.Params[i]) })
}

func (p *printer) genericParam(gp *ast.GenericParam) {
	p.inlineAttrs(gp.Attrs)
	switch gp.Kind {
	case ast.ParamLifetime:
		p.lifetime(gp.Name)
		if len(gp.LifetimeBounds) > 0 {
			p.word(": ")
			p.lifetimes(gp.LifetimeBounds, " + ")
		}
	case ast.ParamType:
		p.ident(gp.Name)
		if len(gp.Bounds) > 0 {
			p.word(": ")
			p.bounds(gp.Bounds)
		}
		if gp.Default != nil {
			p.word(" = ")
			p.typ(gp.Default)
		}
	case ast.ParamConst:
		p.word("const ")
		p.ident(gp.Name)
		p.word(": ")
		p.typ(gp.Type)
		if gp.ConstDefault != nil {
			p.word(" = ")
			p.constArg(gp.ConstDefault)
		}
	}
}

func (p *printer) lifetimes(lts []string, sep string) {
	for i, lt := range lts {
		if i > 0 {
			p.word(sep)
		}
		p.lifetime(lt)
	}
}

func (p *printer) forLifetimes(lts []string) {
	if len(lts) == 0 {
		return
	}
	p.word("for<")
	p.lifetimes(lts, ", ")
	p.word("> ")
}

// whereClause prints the where clause of g on lines of its own. With brace
// set, it also leaves the writer ready for the opening brace of a body.
func (p *printer) whereClause(g *ast.Generics, brace bool) {
	if len(g.Where) == 0 {
		if brace {
			p.space()
		}
		return
	}
	if p.opt.OneLine {
		p.word(" where ")
		for i := range g.Where {
			p.wherePredicate(&g.Where[i])
			p.word(",")
			p.space()
		}
		return
	}
	p.newline()
	p.word("where")
	p.newline()
	p.indent()
	for i := range g.Where {
		p.wherePredicate(&g.Where[i])
		p.word(",")
		p.newline()
	}
	p.dedent()
}

func (p *printer) wherePredicate(wp *ast.WherePredicate) {
	if wp.Type == nil {
		p.lifetime(wp.Lifetime)
		p.word(": ")
		p.lifetimes(wp.LifetimeBounds, " + ")
		return
	}
	p.forLifetimes(wp.Lifetimes)
	p.typ(wp.Type)
	p.word(":")
	if len(wp.Bounds) > 0 {
		p.space()
		p.bounds(wp.Bounds)
	}
}

func (p *printer) bounds(bs []ast.TypeParamBound) {
	for i := range bs {
		if i > 0 {
			p.word(" + ")
		}
		p.bound(&bs[i])
	}
}

func (p *printer) bound(b *ast.TypeParamBound) {
	if b.Lifetime != "" {
		p.lifetime(b.Lifetime)
		return
	}
	if b.Maybe {
		p.word("?")
	}
	p.forLifetimes(b.Lifetimes)
	p.path(&b.Path, pathType)
}

func (p *printer) typ(t ast.Type) {
	switch n := t.(type) {
	case *ast.TypePath:
		p.qpath(n.QSelf, &n.Path, pathType)
	case *ast.TypeRef:
		p.word("&")
		if n.Lifetime != "" {
			p.lifetime(n.Lifetime)
			p.space()
		}
		if n.Mut {
			p.word("mut ")
		}
		p.typ(n.Elem)
	case *ast.TypePtr:
		if n.Mut {
			p.word("*mut ")
		} else {
			p.word("*const ")
		}
		p.typ(n.Elem)
	case *ast.TypeSlice:
		p.word("[")
		p.typ(n.Elem)
		p.word("]")
	case *ast.TypeArray:
		p.word("[")
		p.typ(n.Elem)
		p.word("; ")
		p.expr(n.Len)
		p.word("]")
	case *ast.TypeTuple:
		if len(n.Elems) == 1 {
			p.word("(")
			p.typ(n.Elems[0])
			p.word(",)")
			return
		}
		p.list("(", ")", len(n.Elems), func(p *printer, i int) { p.typ(n.Elems[i]) })
	case *ast.TypeNever:
		p.word("!")
	case *ast.TypeInfer:
		p.word("_")
	case *ast.TypeFn:
		p.forLifetimes(n.Lifetimes)
		if n.Unsafe {
			p.word("unsafe ")
		}
		if n.ABI != nil {
			p.abi(n.ABI)
		}
		p.word("fn")
		count := len(n.Inputs)
		if n.Variadic {
			count++
		}
		p.list("(", ")", count, func(p *printer, i int) {
			if i == len(n.Inputs) {
				p.word("...")
				return
			}
			if arg := &n.Inputs[i]; arg.Name != "" {
				p.ident(arg.Name)
				p.word(": ")
			}
			p.typ(n.Inputs[i].Type)
		})
		if n.Output != nil {
			p.word(" -> ")
			p.typ(n.Output)
		}
	case *ast.TypeImplTrait:
		p.word("impl ")
		p.bounds(n.Bounds)
	case *ast.TypeTraitObject:
		if n.Dyn {
			p.word("dyn ")
		}
		p.bounds(n.Bounds)
	case *ast.TypeParen:
		p.word("(")
		p.typ(n.Elem)
		p.word(")")
	case *ast.TypeMacro:
		p.macro(&n.Mac)
	case *ast.TypeVerbatim:
		p.verbatim(n.Tokens)
	default:
		unsupported("type %T", t)
	}
}

// macro prints an invocation in expression, type or pattern position.
func (p *printer) macro(mac *ast.Macro) {
	p.path(&mac.Path, pathMod)
	p.word("!")
	p.macroBody(mac, false)
}
