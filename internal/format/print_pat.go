package format

import (
	"cargo-expand/internal/ast"
)

func (p *printer) pat(pt ast.Pat) {
	switch n := pt.(type) {
	case *ast.PatIdent:
		if n.Ref {
			p.word("ref ")
		}
		if n.Mut {
			p.word("mut ")
		}
		p.ident(n.Name)
		if n.Sub != nil {
			p.word(" @ ")
			p.patNoTopAlt(n.Sub)
		}
	case *ast.PatWild:
		p.word("_")
	case *ast.PatRest:
		p.word("..")
	case *ast.PatLit:
		p.expr(n.Expr)
	case *ast.PatRange:
		if n.Lo != nil {
			p.expr(n.Lo)
		}
		if n.Inclusive {
			p.word("..=")
		} else {
			p.word("..")
		}
		if n.Hi != nil {
			p.expr(n.Hi)
		}
	case *ast.PatPath:
		p.qpath(n.QSelf, &n.Path, pathExpr)
	case *ast.PatTupleStruct:
		p.qpath(n.QSelf, &n.Path, pathExpr)
		p.list("(", ")", len(n.Elems), func(p *printer, i int) { p.pat(n.Elems[i]) })
	case *ast.PatStruct:
		p.structPat(n)
	case *ast.PatTuple:
		if len(n.Elems) == 1 {
			if _, rest := n.Elems[0].(*ast.PatRest); !rest {
				p.word("(")
				p.pat(n.Elems[0])
				p.word(",)")
				return
			}
		}
		p.list("(", ")", len(n.Elems), func(p *printer, i int) { p.pat(n.Elems[i]) })
	case *ast.PatSlice:
		p.list("[", "]", len(n.Elems), func(p *printer, i int) { p.pat(n.Elems[i]) })
	case *ast.PatRef:
		p.word("&")
		if n.Mut {
			p.word("mut ")
		}
		switch n.Pat.(type) {
		case *ast.PatRange, *ast.PatOr:
			p.word("(")
			p.pat(n.Pat)
			p.word(")")
		default:
			p.pat(n.Pat)
		}
	case *ast.PatOr:
		for i, c := range n.Cases {
			if i > 0 {
				p.word(" | ")
			}
			p.patNoTopAlt(c)
		}
	case *ast.PatParen:
		p.word("(")
		p.pat(n.Pat)
		p.word(")")
	case *ast.PatType:
		p.patNoTopAlt(n.Pat)
		p.word(": ")
		p.typ(n.Type)
	case *ast.PatMacro:
		p.macro(&n.Mac)
	case *ast.PatVerbatim:
		p.verbatim(n.Tokens)
	default:
		unsupported("pattern %T", pt)
	}
}

// patNoTopAlt prints a pattern where `|` would end it.
func (p *printer) patNoTopAlt(pt ast.Pat) {
	if _, ok := pt.(*ast.PatOr); ok {
		p.word("(")
		p.pat(pt)
		p.word(")")
		return
	}
	p.pat(pt)
}

func (p *printer) structPat(n *ast.PatStruct) {
	p.qpath(n.QSelf, &n.Path, pathExpr)
	count := len(n.Fields)
	if n.Rest {
		count++
	}
	if count == 0 {
		p.word(" {}")
		return
	}
	elem := func(p *printer, i int) {
		if i == len(n.Fields) {
			p.word("..")
			return
		}
		fp := &n.Fields[i]
		p.inlineAttrs(fp.Attrs)
		if id, ok := fp.Pat.(*ast.PatIdent); ok && fp.Shorthand && id.Sub == nil && id.Name == fp.Member.Name {
			p.pat(id)
			return
		}
		if fp.Member.Name != "" {
			p.ident(fp.Member.Name)
		} else {
			p.word(fp.Member.String())
		}
		p.word(": ")
		p.pat(fp.Pat)
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
