package format

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

func (p *printer) item(it ast.Item) {
	switch n := it.(type) {
	case *ast.ItemConst:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("const ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		p.word(": ")
		p.typ(n.Type)
		if n.Expr != nil {
			p.word(" = ")
			p.expr(n.Expr)
		}
		p.whereClause(&n.Generics, false)
		p.word(";")
	case *ast.ItemStatic:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("static ")
		if n.Mut {
			p.word("mut ")
		}
		p.ident(n.Name)
		p.word(": ")
		p.typ(n.Type)
		if n.Expr != nil {
			p.word(" = ")
			p.expr(n.Expr)
		}
		p.word(";")
	case *ast.ItemFn:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.signature(&n.Sig)
		p.fnBody(n.Body, n.Attrs, &n.Sig.Generics)
	case *ast.ItemMod:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		if n.Unsafe {
			p.word("unsafe ")
		}
		p.word("mod ")
		p.ident(n.Name)
		if !n.Inline {
			p.word(";")
			return
		}
		p.word(" {")
		p.bodyItems(n.Attrs, len(n.Items), func(i int) { p.item(n.Items[i]) })
	case *ast.ItemType:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("type ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		p.whereClause(&n.Generics, false)
		p.word(" = ")
		p.typ(n.Type)
		p.word(";")
	case *ast.ItemStruct:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("struct ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		switch n.Fields.Kind {
		case ast.FieldsNamed:
			p.whereClause(&n.Generics, true)
			p.namedFields(&n.Fields)
		case ast.FieldsUnnamed:
			p.tupleFields(&n.Fields)
			p.whereClause(&n.Generics, false)
			p.word(";")
		default:
			p.whereClause(&n.Generics, false)
			p.word(";")
		}
	case *ast.ItemEnum:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("enum ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		p.whereClause(&n.Generics, true)
		p.word("{")
		if len(n.Variants) == 0 {
			p.word("}")
			return
		}
		p.newline()
		p.indent()
		for i := range n.Variants {
			p.variant(&n.Variants[i])
			p.word(",")
			p.newline()
		}
		p.dedent()
		p.word("}")
	case *ast.ItemUnion:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("union ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		p.whereClause(&n.Generics, true)
		p.namedFields(&n.Fields)
	case *ast.ItemTrait:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		if n.Unsafe {
			p.word("unsafe ")
		}
		if n.Auto {
			p.word("auto ")
		}
		p.word("trait ")
		p.ident(n.Name)
		p.generics(&n.Generics)
		if len(n.Supertraits) > 0 {
			p.word(": ")
			p.bounds(n.Supertraits)
		}
		p.whereClause(&n.Generics, true)
		p.word("{")
		p.bodyItems(n.Attrs, len(n.Items), func(i int) { p.traitItem(n.Items[i]) })
	case *ast.ItemImpl:
		p.attrs(n.Attrs, ast.AttrOuter)
		if n.Default {
			p.word("default ")
		}
		if n.Unsafe {
			p.word("unsafe ")
		}
		p.word("impl")
		p.generics(&n.Generics)
		p.space()
		if n.Trait != nil {
			if n.Negative {
				p.word("!")
			}
			p.path(n.Trait, pathType)
			p.word(" for ")
		}
		p.typ(n.SelfTy)
		p.whereClause(&n.Generics, true)
		p.word("{")
		p.bodyItems(n.Attrs, len(n.Items), func(i int) { p.implItem(n.Items[i]) })
	case *ast.ItemForeignMod:
		p.attrs(n.Attrs, ast.AttrOuter)
		if n.Unsafe {
			p.word("unsafe ")
		}
		p.abi(&n.ABI)
		p.word("{")
		p.bodyItems(n.Attrs, len(n.Items), func(i int) { p.foreignItem(n.Items[i]) })
	case *ast.ItemUse:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("use ")
		if n.Global {
			p.word("::")
		}
		p.useTree(&n.Tree)
		p.word(";")
	case *ast.ItemExternCrate:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.vis(&n.Vis)
		p.word("extern crate ")
		p.ident(n.Name)
		if n.Rename != "" {
			p.word(" as ")
			p.ident(n.Rename)
		}
		p.word(";")
	case *ast.ItemMacro:
		p.attrs(n.Attrs, ast.AttrOuter)
		p.path(&n.Mac.Path, pathMod)
		p.word("!")
		if n.Name != "" {
			p.word(" ")
			p.ident(n.Name)
		}
		p.macroBody(&n.Mac, n.Name != "")
		if n.Semi || n.Mac.Delim != token.Brace {
			p.word(";")
		}
	case *ast.ItemVerbatim:
		p.verbatim(n.Tokens)
	default:
		unsupported("item %T", it)
	}
}

// bodyItems prints the inside of a braced item body, starting right after
// the opening brace: inner attributes, then one member per line.
func (p *printer) bodyItems(attrs []ast.Attribute, n int, member func(int)) {
	if n == 0 && !hasStyle(attrs, ast.AttrInner) {
		p.word("}")
		return
	}
	p.newline()
	p.indent()
	p.attrs(attrs, ast.AttrInner)
	for i := range n {
		member(i)
		p.newline()
	}
	p.dedent()
	p.word("}")
}

func hasStyle(attrs []ast.Attribute, style ast.AttrStyle) bool {
	for i := range attrs {
		if attrs[i].Style == style {
			return true
		}
	}
	return false
}

// macroBody prints the delimited tokens of a macro. Brace bodies are set
// off by a space.
func (p *printer) macroBody(mac *ast.Macro, named bool) {
	if mac.Delim == token.Brace || named {
		p.space()
	}
	if mac.Delim == token.Brace && len(mac.Tokens) == 0 {
		p.word("{}")
		return
	}
	if mac.Delim == token.Brace {
		p.word("{ ")
		p.tokens(mac.Tokens)
		p.word(" }")
		return
	}
	p.delimited(mac.Delim, mac.Tokens)
}

func (p *printer) abi(abi *ast.ABI) {
	p.word("extern ")
	if abi.Name != "" {
		p.word(abi.Name)
		p.space()
	}
}

func (p *printer) signature(sig *ast.Signature) {
	if sig.Const {
		p.word("const ")
	}
	if sig.Async {
		p.word("async ")
	}
	if sig.Unsafe {
		p.word("unsafe ")
	}
	if sig.ABI != nil {
		p.abi(sig.ABI)
	}
	p.word("fn ")
	p.ident(sig.Name)
	p.generics(&sig.Generics)
	n := len(sig.Inputs)
	if sig.Variadic {
		n++
	}
	p.list("(", ")", n, func(p *printer, i int) {
		if i == len(sig.Inputs) {
			p.word("...")
			return
		}
		p.fnArg(&sig.Inputs[i])
	})
	if sig.Output != nil {
		p.word(" -> ")
		p.typ(sig.Output)
	}
}

func (p *printer) fnArg(arg *ast.FnArg) {
	p.inlineAttrs(arg.Attrs)
	if r := arg.Receiver; r != nil {
		if r.Ref {
			p.word("&")
			if r.Lifetime != "" {
				p.lifetime(r.Lifetime)
				p.space()
			}
		}
		if r.Mut {
			p.word("mut ")
		}
		p.word("self")
		if r.Type != nil {
			p.word(": ")
			p.typ(r.Type)
		}
		return
	}
	p.pat(arg.Pat)
	p.word(": ")
	p.typ(arg.Type)
}

// fnBody prints `;` or the body of a function, with the where clause of g
// in between. Inner attributes of the function go inside the body.
func (p *printer) fnBody(body *ast.Block, attrs []ast.Attribute, g *ast.Generics) {
	if body == nil {
		p.whereClause(g, false)
		p.word(";")
		return
	}
	p.whereClause(g, true)
	p.word("{")
	if len(body.Stmts) == 0 && !hasStyle(attrs, ast.AttrInner) {
		p.word("}")
		return
	}
	p.newline()
	p.indent()
	p.attrs(attrs, ast.AttrInner)
	p.stmts(body.Stmts)
	p.dedent()
	p.word("}")
}

func (p *printer) namedFields(f *ast.Fields) {
	p.word("{")
	if len(f.Fields) == 0 {
		p.word("}")
		return
	}
	p.newline()
	p.indent()
	for i := range f.Fields {
		fld := &f.Fields[i]
		p.attrs(fld.Attrs, ast.AttrOuter)
		p.vis(&fld.Vis)
		p.ident(fld.Name)
		p.word(": ")
		p.typ(fld.Type)
		p.word(",")
		p.newline()
	}
	p.dedent()
	p.word("}")
}

func (p *printer) tupleFields(f *ast.Fields) {
	p.list("(", ")", len(f.Fields), func(p *printer, i int) {
		fld := &f.Fields[i]
		p.inlineAttrs(fld.Attrs)
		p.vis(&fld.Vis)
		p.typ(fld.Type)
	})
}

func (p *printer) variant(v *ast.Variant) {
	p.attrs(v.Attrs, ast.AttrOuter)
	p.ident(v.Name)
	switch v.Fields.Kind {
	case ast.FieldsNamed:
		p.space()
		p.namedFields(&v.Fields)
	case ast.FieldsUnnamed:
		p.tupleFields(&v.Fields)
	}
	if v.Discriminant != nil {
		p.word(" = ")
		p.expr(v.Discriminant)
	}
}

func (p *printer) useTree(t *ast.UseTree) {
	switch t.Kind {
	case ast.UsePath:
		p.ident(t.Ident)
		p.word("::")
		p.useTree(t.Next)
	case ast.UseName:
		p.ident(t.Ident)
	case ast.UseRename:
		p.ident(t.Ident)
		p.word(" as ")
		p.ident(t.Rename)
	case ast.UseGlob:
		p.word("*")
	case ast.UseGroup:
		p.list("{", "}", len(t.Group), func(p *printer, i int) { p.useTree(&t.Group[i]) })
	}
}
