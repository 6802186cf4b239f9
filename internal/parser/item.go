package parser

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

// parseItem выбирает по первым токенам нужный распознаватель item.
func (p *Parser) parseItem() ast.Item {
	p.enter()
	defer p.leave()

	attrs := p.parseOuterAttrs()
	start := p.pos
	vis := p.parseVis()
	item := p.parseItemKind(attrs, vis)
	if vis.Kind != ast.VisInherited {
		switch item.(type) {
		case *ast.ItemImpl, *ast.ItemForeignMod, *ast.ItemMacro:
			p.pos = start
			p.errorf("visibility is not allowed here")
		}
	}
	return item
}

func (p *Parser) parseItemKind(attrs []ast.Attribute, vis ast.Visibility) ast.Item {
	tok := p.peek()
	switch {
	case tok.IsIdent("use"):
		p.advance()
		it := &ast.ItemUse{Attrs: attrs, Vis: vis}
		it.Global = p.eatOp("::")
		it.Tree = p.parseUseTree()
		p.expectPunct(';')
		return it
	case tok.IsIdent("extern") && p.atKwN(1, "crate"):
		p.pos += 2
		it := &ast.ItemExternCrate{Attrs: attrs, Vis: vis}
		if p.atKw("self") {
			it.Name = p.advance().Text
		} else {
			it.Name = p.parseIdent()
		}
		if p.eatKw("as") {
			it.Rename = p.parseIdentOrUnderscore()
		}
		p.expectPunct(';')
		return it
	case p.atForeignMod():
		return p.parseForeignMod(attrs)
	case tok.IsIdent("const") && (p.atIdentN(1) || p.atKwN(1, "_")) && p.opAt(2) == ":":
		p.advance()
		it := &ast.ItemConst{Attrs: attrs, Vis: vis}
		it.Name = p.parseIdentOrUnderscore()
		it.Generics = p.parseGenerics()
		p.expectPunct(':')
		it.Type = p.parseType()
		if p.eatPunct('=') {
			it.Expr = p.parseExpr()
		}
		p.parseWhere(&it.Generics)
		p.expectPunct(';')
		return it
	case tok.IsIdent("static") && !p.atPunctN(1, '|') && !p.atKwN(1, "move"):
		p.advance()
		it := &ast.ItemStatic{Attrs: attrs, Vis: vis}
		it.Mut = p.eatKw("mut")
		it.Name = p.parseIdent()
		p.expectPunct(':')
		it.Type = p.parseType()
		if p.eatPunct('=') {
			it.Expr = p.parseExpr()
		}
		p.expectPunct(';')
		return it
	case p.atFnStart():
		sig := p.parseSignature()
		it := &ast.ItemFn{Attrs: attrs, Vis: vis, Sig: sig}
		if !p.eatPunct(';') {
			it.Body = p.parseFnBody(&it.Attrs)
		}
		return it
	case tok.IsIdent("mod") || tok.IsIdent("unsafe") && p.atKwN(1, "mod"):
		it := &ast.ItemMod{Attrs: attrs, Vis: vis}
		it.Unsafe = p.eatKw("unsafe")
		p.expectKw("mod")
		it.Name = p.parseIdent()
		if p.eatPunct(';') {
			return it
		}
		it.Inline = true
		p.expectOpen(token.Brace)
		it.Attrs = append(it.Attrs, p.parseInnerAttrs()...)
		for !p.atClose(token.Brace) {
			if p.atEOF() {
				p.errorf("unclosed module `%s`", it.Name)
			}
			it.Items = append(it.Items, p.parseItem())
		}
		p.advance()
		return it
	case tok.IsIdent("type"):
		p.advance()
		it := &ast.ItemType{Attrs: attrs, Vis: vis}
		it.Name = p.parseIdent()
		it.Generics = p.parseGenerics()
		p.parseWhere(&it.Generics)
		p.expectPunct('=')
		it.Type = p.parseType()
		p.parseWhere(&it.Generics)
		p.expectPunct(';')
		return it
	case tok.IsIdent("struct"):
		p.advance()
		it := &ast.ItemStruct{Attrs: attrs, Vis: vis}
		it.Name = p.parseIdent()
		it.Generics = p.parseGenerics()
		it.Fields = p.parseStructBody(&it.Generics)
		return it
	case tok.IsIdent("union") && p.atIdentN(1):
		p.advance()
		it := &ast.ItemUnion{Attrs: attrs, Vis: vis}
		it.Name = p.parseIdent()
		it.Generics = p.parseGenerics()
		p.parseWhere(&it.Generics)
		it.Fields = p.parseNamedFields()
		return it
	case tok.IsIdent("enum"):
		p.advance()
		return p.parseEnum(attrs, vis)
	case p.atTraitStart():
		return p.parseTrait(attrs, vis)
	case p.atImplStart():
		return p.parseImpl(attrs)
	case tok.IsIdent("macro_rules") && p.atPunctN(1, '!') && p.atIdentN(2):
		p.advance()
		p.advance()
		it := &ast.ItemMacro{Attrs: attrs, Name: p.parseIdent()}
		it.Mac.Path = ast.PathOf("macro_rules")
		it.Mac.Delim, it.Mac.Tokens = p.delimited()
		it.Semi = p.eatPunct(';')
		return it
	case p.atPathStart():
		it := &ast.ItemMacro{Attrs: attrs}
		it.Mac = p.parseMacroInvocation()
		if it.Mac.Delim != token.Brace {
			p.expectPunct(';')
			it.Semi = true
		} else {
			it.Semi = p.eatPunct(';')
		}
		return it
	default:
		p.errorf("expected item, found %s", describeTok(tok))
		return nil
	}
}

func (p *Parser) atIdentN(n int) bool {
	return isIdentTok(p.peekN(n))
}

func (p *Parser) atPunctN(n int, ch byte) bool {
	return p.peekN(n).IsPunct(ch)
}

// parseMacroInvocation parses `path!(...)`.
func (p *Parser) parseMacroInvocation() ast.Macro {
	mac := ast.Macro{Path: p.parsePath(pathMod)}
	p.expectPunct('!')
	mac.Delim, mac.Tokens = p.delimited()
	return mac
}

func (p *Parser) parseVis() ast.Visibility {
	if !p.eatKw("pub") {
		return ast.Visibility{}
	}
	if !p.atOpen(token.Paren) {
		return ast.Public
	}
	next := p.peekN(1)
	switch {
	case next.IsIdent("crate") && p.peekN(2).Kind == token.Close:
		p.pos += 3
		return ast.Visibility{Kind: ast.VisCrate}
	case (next.IsIdent("self") || next.IsIdent("super")) && p.peekN(2).Kind == token.Close:
		p.pos += 3
		return ast.Visibility{Kind: ast.VisRestricted, Path: ast.PathOf(next.Text)}
	case next.IsIdent("in"):
		p.pos += 2
		vis := ast.Visibility{Kind: ast.VisRestricted, In: true, Path: p.parseModPath()}
		p.expectClose(token.Paren)
		return vis
	}
	// `pub (A, B)` in a tuple struct field: the parenthesis is the type.
	return ast.Public
}

func (p *Parser) parseUseTree() ast.UseTree {
	switch {
	case p.eatPunct('*'):
		return ast.UseTree{Kind: ast.UseGlob}
	case p.atOpen(token.Brace):
		p.advance()
		tree := ast.UseTree{Kind: ast.UseGroup}
		for !p.atClose(token.Brace) {
			p.eatOp("::")
			tree.Group = append(tree.Group, p.parseUseTree())
			if !p.eatPunct(',') {
				break
			}
		}
		p.expectClose(token.Brace)
		return tree
	}
	if !p.atPathSegment() {
		p.errorf("expected identifier, found %s", describeTok(p.peek()))
	}
	ident := p.advance().Text
	switch {
	case p.eatOp("::"):
		next := p.parseUseTree()
		return ast.UseTree{Kind: ast.UsePath, Ident: ident, Next: &next}
	case p.eatKw("as"):
		return ast.UseTree{Kind: ast.UseRename, Ident: ident, Rename: p.parseIdentOrUnderscore()}
	default:
		return ast.UseTree{Kind: ast.UseName, Ident: ident}
	}
}

// atFnStart reports whether the cursor is on `fn` with its qualifiers.
func (p *Parser) atFnStart() bool {
	n := 0
	for {
		tok := p.peekN(n)
		switch {
		case tok.IsIdent("fn"):
			return true
		case tok.IsIdent("const"), tok.IsIdent("async"), tok.IsIdent("unsafe"), tok.IsIdent("safe"):
			n++
		case tok.IsIdent("extern"):
			n++
			if lit := p.peekN(n); lit.Kind == token.Literal && lit.Lit.IsString() {
				n++
			}
		default:
			return false
		}
	}
}

func (p *Parser) atForeignMod() bool {
	n := 0
	if p.atKw("unsafe") {
		n++
	}
	if !p.atKwN(n, "extern") {
		return false
	}
	n++
	if lit := p.peekN(n); lit.Kind == token.Literal && lit.Lit.IsString() {
		n++
	}
	next := p.peekN(n)
	return next.Kind == token.Open && next.Delim == token.Brace
}

func (p *Parser) atTraitStart() bool {
	n := 0
	if p.atKw("unsafe") {
		n++
	}
	if p.atKwN(n, "auto") {
		n++
	}
	return p.atKwN(n, "trait")
}

func (p *Parser) atImplStart() bool {
	n := 0
	if p.atKw("default") {
		n++
	}
	if p.atKwN(n, "unsafe") {
		n++
	}
	return p.atKwN(n, "impl")
}

func (p *Parser) parseSignature() ast.Signature {
	var sig ast.Signature
	for {
		switch {
		case p.eatKw("const"):
			sig.Const = true
			continue
		case p.eatKw("async"):
			sig.Async = true
			continue
		case p.eatKw("unsafe"):
			sig.Unsafe = true
			continue
		case p.eatKw("safe"):
			continue
		case p.atKw("extern"):
			sig.ABI = p.parseABI()
			continue
		}
		break
	}
	p.expectKw("fn")
	sig.Name = p.parseIdent()
	sig.Generics = p.parseGenerics()
	p.expectOpen(token.Paren)
	for !p.atClose(token.Paren) {
		attrs := p.parseOuterAttrs()
		if p.eatOp("...") {
			sig.Variadic = true
			p.eatPunct(',')
			break
		}
		arg := p.parseFnArg()
		arg.Attrs = attrs
		sig.Inputs = append(sig.Inputs, arg)
		if !p.eatPunct(',') {
			break
		}
	}
	p.expectClose(token.Paren)
	if p.eatOp("->") {
		sig.Output = p.parseType()
	}
	p.parseWhere(&sig.Generics)
	return sig
}

func (p *Parser) parseFnArg() ast.FnArg {
	if recv, ok := p.parseReceiver(); ok {
		return ast.FnArg{Receiver: recv}
	}
	arg := ast.FnArg{Pat: p.parsePatNoTopAlt()}
	p.expectPunct(':')
	arg.Type = p.parseType()
	return arg
}

// parseReceiver parses `self`, `mut self`, `&'a mut self` or `self: T`.
func (p *Parser) parseReceiver() (*ast.Receiver, bool) {
	n := 0
	recv := &ast.Receiver{}
	if p.peekN(n).IsPunct('&') {
		recv.Ref = true
		n++
		if tok := p.peekN(n); tok.Kind == token.Lifetime {
			recv.Lifetime = tok.Text
			n++
		}
	}
	if p.atKwN(n, "mut") {
		recv.Mut = true
		n++
	}
	if !p.atKwN(n, "self") || p.opAt(n+1) == "::" {
		return nil, false
	}
	p.pos += n + 1
	if !recv.Ref && p.eatPunct(':') {
		recv.Type = p.parseType()
	}
	return recv, true
}

// parseFnBody parses a function body; its inner attributes are appended to
// attrs.
func (p *Parser) parseFnBody(attrs *[]ast.Attribute) *ast.Block {
	p.expectOpen(token.Brace)
	*attrs = append(*attrs, p.parseInnerAttrs()...)
	return p.parseBlockRest()
}

func (p *Parser) parseStructBody(g *ast.Generics) ast.Fields {
	p.parseWhere(g)
	switch {
	case p.eatPunct(';'):
		return ast.Fields{Kind: ast.FieldsUnit}
	case p.atOpen(token.Paren):
		fields := p.parseTupleFields()
		p.parseWhere(g)
		p.expectPunct(';')
		return fields
	default:
		return p.parseNamedFields()
	}
}

func (p *Parser) parseNamedFields() ast.Fields {
	fields := ast.Fields{Kind: ast.FieldsNamed}
	p.expectOpen(token.Brace)
	for !p.atClose(token.Brace) {
		f := ast.Field{Attrs: p.parseOuterAttrs()}
		f.Vis = p.parseVis()
		f.Name = p.parseIdentOrUnderscore()
		p.expectPunct(':')
		f.Type = p.parseType()
		fields.Fields = append(fields.Fields, f)
		if !p.eatPunct(',') {
			break
		}
	}
	p.expectClose(token.Brace)
	return fields
}

func (p *Parser) parseTupleFields() ast.Fields {
	fields := ast.Fields{Kind: ast.FieldsUnnamed}
	p.expectOpen(token.Paren)
	for !p.atClose(token.Paren) {
		f := ast.Field{Attrs: p.parseOuterAttrs()}
		f.Vis = p.parseVis()
		f.Type = p.parseType()
		fields.Fields = append(fields.Fields, f)
		if !p.eatPunct(',') {
			break
		}
	}
	p.expectClose(token.Paren)
	return fields
}

func (p *Parser) parseEnum(attrs []ast.Attribute, vis ast.Visibility) *ast.ItemEnum {
	it := &ast.ItemEnum{Attrs: attrs, Vis: vis}
	it.Name = p.parseIdent()
	it.Generics = p.parseGenerics()
	p.parseWhere(&it.Generics)
	p.expectOpen(token.Brace)
	for !p.atClose(token.Brace) {
		v := ast.Variant{Attrs: p.parseOuterAttrs()}
		p.parseVis()
		v.Name = p.parseIdent()
		switch {
		case p.atOpen(token.Paren):
			v.Fields = p.parseTupleFields()
		case p.atOpen(token.Brace):
			v.Fields = p.parseNamedFields()
		}
		if p.eatPunct('=') {
			v.Discriminant = p.parseExpr()
		}
		it.Variants = append(it.Variants, v)
		if !p.eatPunct(',') {
			break
		}
	}
	p.expectClose(token.Brace)
	return it
}

func (p *Parser) parseTrait(attrs []ast.Attribute, vis ast.Visibility) *ast.ItemTrait {
	it := &ast.ItemTrait{Attrs: attrs, Vis: vis}
	it.Unsafe = p.eatKw("unsafe")
	it.Auto = p.eatKw("auto")
	p.expectKw("trait")
	it.Name = p.parseIdent()
	it.Generics = p.parseGenerics()
	if p.eatPunct(':') {
		it.Supertraits = p.parseBounds()
	}
	p.parseWhere(&it.Generics)
	p.expectOpen(token.Brace)
	it.Attrs = append(it.Attrs, p.parseInnerAttrs()...)
	for !p.atClose(token.Brace) {
		if p.atEOF() {
			p.errorf("unclosed trait `%s`", it.Name)
		}
		it.Items = append(it.Items, p.parseTraitItem())
	}
	p.advance()
	return it
}

func (p *Parser) parseTraitItem() ast.TraitItem {
	p.enter()
	defer p.leave()

	attrs := p.parseOuterAttrs()
	switch {
	case p.atKw("const") && (p.atIdentN(1) || p.atKwN(1, "_")) && p.opAt(2) != "::":
		p.advance()
		it := &ast.TraitItemConst{Attrs: attrs}
		it.Name = p.parseIdentOrUnderscore()
		it.Generics = p.parseGenerics()
		p.expectPunct(':')
		it.Type = p.parseType()
		if p.eatPunct('=') {
			it.Default = p.parseExpr()
		}
		p.parseWhere(&it.Generics)
		p.expectPunct(';')
		return it
	case p.atKw("type"):
		p.advance()
		it := &ast.TraitItemType{Attrs: attrs}
		it.Name = p.parseIdent()
		it.Generics = p.parseGenerics()
		if p.eatPunct(':') {
			it.Bounds = p.parseBounds()
		}
		p.parseWhere(&it.Generics)
		if p.eatPunct('=') {
			it.Default = p.parseType()
		}
		p.parseWhere(&it.Generics)
		p.expectPunct(';')
		return it
	case p.atFnStart():
		it := &ast.TraitItemFn{Attrs: attrs, Sig: p.parseSignature()}
		if !p.eatPunct(';') {
			it.Default = p.parseFnBody(&it.Attrs)
		}
		return it
	case p.atPathStart():
		it := &ast.TraitItemMacro{Attrs: attrs, Mac: p.parseMacroInvocation()}
		it.Semi = p.eatPunct(';')
		return it
	default:
		p.errorf("expected trait item, found %s", describeTok(p.peek()))
		return nil
	}
}

func (p *Parser) parseImpl(attrs []ast.Attribute) *ast.ItemImpl {
	it := &ast.ItemImpl{Attrs: attrs}
	it.Default = p.eatKw("default")
	it.Unsafe = p.eatKw("unsafe")
	p.expectKw("impl")
	if p.atPunct('<') && !p.atGenericQPath() {
		it.Generics = p.parseGenerics()
	}
	p.eatKw("const")
	if p.atPunct('!') {
		p.advance()
		it.Negative = true
	}
	ty := p.parseType()
	if p.eatKw("for") {
		tp, ok := ty.(*ast.TypePath)
		if !ok || tp.QSelf != nil {
			p.errorf("expected a trait path before `for`")
		}
		trait := tp.Path
		it.Trait = &trait
		it.SelfTy = p.parseType()
	} else {
		if it.Negative {
			p.errorf("inherent impls cannot be negative")
		}
		it.SelfTy = ty
	}
	p.parseWhere(&it.Generics)
	p.expectOpen(token.Brace)
	it.Attrs = append(it.Attrs, p.parseInnerAttrs()...)
	for !p.atClose(token.Brace) {
		if p.atEOF() {
			p.errorf("unclosed impl")
		}
		it.Items = append(it.Items, p.parseImplItem())
	}
	p.advance()
	return it
}

// atGenericQPath distinguishes `impl <T as Trait>::X {}` from generics.
func (p *Parser) atGenericQPath() bool {
	next := p.peekN(1)
	if next.Kind == token.Lifetime || next.IsPunct('>') || next.IsIdent("const") || next.Kind == token.DocComment || next.IsPunct('#') {
		return false
	}
	if isIdentTok(next) {
		after := p.opAt(2)
		return after != ":" && after != "," && after != ">" && after != "="
	}
	return true
}

func (p *Parser) parseImplItem() ast.ImplItem {
	p.enter()
	defer p.leave()

	attrs := p.parseOuterAttrs()
	start := p.pos
	vis := p.parseVis()
	def := false
	if p.atKw("default") && !p.atPunctN(1, '!') {
		p.advance()
		def = true
	}
	switch {
	case p.atKw("const") && (p.atIdentN(1) || p.atKwN(1, "_")) && p.opAt(2) != "::":
		p.advance()
		it := &ast.ImplItemConst{Attrs: attrs, Vis: vis, Default: def}
		it.Name = p.parseIdentOrUnderscore()
		it.Generics = p.parseGenerics()
		p.expectPunct(':')
		it.Type = p.parseType()
		p.expectPunct('=')
		it.Expr = p.parseExpr()
		p.parseWhere(&it.Generics)
		p.expectPunct(';')
		return it
	case p.atKw("type"):
		p.advance()
		it := &ast.ImplItemType{Attrs: attrs, Vis: vis, Default: def}
		it.Name = p.parseIdent()
		it.Generics = p.parseGenerics()
		p.parseWhere(&it.Generics)
		p.expectPunct('=')
		it.Type = p.parseType()
		p.parseWhere(&it.Generics)
		p.expectPunct(';')
		return it
	case p.atFnStart():
		it := &ast.ImplItemFn{Attrs: attrs, Vis: vis, Default: def, Sig: p.parseSignature()}
		it.Body = p.parseFnBody(&it.Attrs)
		return it
	case p.atPathStart() && vis.Kind == ast.VisInherited && !def:
		it := &ast.ImplItemMacro{Attrs: attrs, Mac: p.parseMacroInvocation()}
		it.Semi = p.eatPunct(';')
		return it
	default:
		p.pos = start
		p.errorf("expected impl item, found %s", describeTok(p.peek()))
		return nil
	}
}

func (p *Parser) parseForeignMod(attrs []ast.Attribute) *ast.ItemForeignMod {
	it := &ast.ItemForeignMod{Attrs: attrs}
	it.Unsafe = p.eatKw("unsafe")
	it.ABI = *p.parseABI()
	p.expectOpen(token.Brace)
	it.Attrs = append(it.Attrs, p.parseInnerAttrs()...)
	for !p.atClose(token.Brace) {
		if p.atEOF() {
			p.errorf("unclosed extern block")
		}
		it.Items = append(it.Items, p.parseForeignItem())
	}
	p.advance()
	return it
}

func (p *Parser) parseForeignItem() ast.ForeignItem {
	attrs := p.parseOuterAttrs()
	vis := p.parseVis()
	switch {
	case p.atFnStart():
		it := &ast.ForeignItemFn{Attrs: attrs, Vis: vis, Sig: p.parseSignature()}
		p.expectPunct(';')
		return it
	case p.atKw("static") || p.atKw("safe") && p.atKwN(1, "static") || p.atKw("unsafe") && p.atKwN(1, "static"):
		p.eatKw("safe")
		p.eatKw("unsafe")
		p.advance()
		it := &ast.ForeignItemStatic{Attrs: attrs, Vis: vis}
		it.Mut = p.eatKw("mut")
		it.Name = p.parseIdent()
		p.expectPunct(':')
		it.Type = p.parseType()
		p.expectPunct(';')
		return it
	case p.atKw("type"):
		p.advance()
		it := &ast.ForeignItemType{Attrs: attrs, Vis: vis}
		it.Name = p.parseIdent()
		it.Generics = p.parseGenerics()
		p.parseWhere(&it.Generics)
		p.expectPunct(';')
		return it
	case p.atPathStart():
		it := &ast.ForeignItemMacro{Attrs: attrs, Mac: p.parseMacroInvocation()}
		it.Semi = p.eatPunct(';')
		return it
	default:
		p.errorf("expected foreign item, found %s", describeTok(p.peek()))
		return nil
	}
}
