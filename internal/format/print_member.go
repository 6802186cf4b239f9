package format

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

func (p *printer) traitItem(ti ast.TraitItem) {
	switch n := ti.(type) {
	case *ast.TraitItemConst:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.word("const ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		p.word(": ")
		p.typ(n.Type)
		if n.Default != nil {
			p.word(" = ")
			p.expr(n.Default)
		}
		p.whereClause(&n.Generics, false)
		p.word(";")
	case *ast.TraitItemFn:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.signature(&n.Sig)
		p.fnBody(n.Default, n.Attrs, &n.Sig.Generics)
	case *ast.TraitItemType:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.word("type ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		if len(n.Bounds) > 0 {
			p.word(": ")
			p.bounds(n.Bounds)
		}
		if n.Default != nil {
			p.word(" = ")
			p.typ(n.Default)
		}
		p.whereClause(&n.Generics, false)
		p.word(";")
	case *ast.TraitItemMacro:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.memberMacro(&n.Mac, n.Semi)
	case *ast.TraitItemVerbatim:
		p.verbatim(n.Tokens)
	default:
		unsupported("trait item %T", ti)
	}
}

func (p *printer) implItem(ii ast.ImplItem) {
	switch n := ii.(type) {
	case *ast.ImplItemConst:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		if n.Default {
			p.word("default ")
		}
		p.word("const ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		p.word(": ")
		p.typ(n.Type)
		p.word(" = ")
		p.expr(n.Expr)
		p.whereClause(&n.Generics, false)
		p.word(";")
	case *ast.ImplItemFn:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		if n.Default {
			p.word("default ")
		}
		p.signature(&n.Sig)
		p.fnBody(n.Body, n.Attrs, &n.Sig.Generics)
	case *ast.ImplItemType:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		if n.Default {
			p.word("default ")
		}
		p.word("type ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		p.whereClause(&n.Generics, false)
		p.word(" = ")
		p.typ(n.Type)
		p.word(";")
	case *ast.ImplItemMacro:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.memberMacro(&n.Mac, n.Semi)
	case *ast.ImplItemVerbatim:
		p.verbatim(n.Tokens)
	default:
		unsupported("impl item %T", ii)
	}
}

func (p *printer) foreignItem(fi ast.ForeignItem) {
	switch n := fi.(type) {
	case *ast.ForeignItemFn:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.signature(&n.Sig)
		p.fnBody(nil, nil, &n.Sig.Generics)
	case *ast.ForeignItemStatic:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("static ")
		if n.Mut {
			p.word("mut ")
		}
		p.ident(n.Name)
		p.word(": ")
		p.typ(n.Type)
		p.word(";")
	case *ast.ForeignItemType:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("type ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		p.whereClause(&n.Generics, false)
		p.word(";")
	case *ast.ForeignItemMacro:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.memberMacro(&n.Mac, n.Semi)
	case *ast.ForeignItemVerbatim:
		p.verbatim(n.Tokens)
	default:
		unsupported("foreign item %T", fi)
	}
}

func (p *printer) memberMacro(mac *ast.Macro, semi bool) {
	p.macro(mac)
	if semi || mac.Delim != token.Brace {
		p.word(";")
	}
}
