package parser

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

// parseType parses a type, allowing `Trait + Trait` bare trait objects.
func (p *Parser) parseType() ast.Type {
	return p.parseTypeImpl(true)
}

// parseTypeNoBounds is used after `as`, `->` in bare fn types, and `&`.
func (p *Parser) parseTypeNoBounds() ast.Type {
	return p.parseTypeImpl(false)
}

func (p *Parser) parseTypeImpl(allowPlus bool) ast.Type {
	p.enter()
	defer p.leave()

	tok := p.peek()
	switch {
	case tok.Kind == token.Open && tok.Delim == token.Paren:
		return p.parseTupleType()
	case tok.Kind == token.Open && tok.Delim == token.Bracket:
		p.advance()
		elem := p.parseType()
		if p.eatPunct(';') {
			n := withStruct(p, true, p.parseExpr)
			p.expectClose(token.Bracket)
			return &ast.TypeArray{Elem: elem, Len: n}
		}
		p.expectClose(token.Bracket)
		return &ast.TypeSlice{Elem: elem}
	case tok.IsPunct('&'):
		p.advance()
		ref := &ast.TypeRef{}
		if p.peek().Kind == token.Lifetime {
			ref.Lifetime = p.advance().Text
		}
		ref.Mut = p.eatKw("mut")
		ref.Elem = p.parseTypeNoBounds()
		return ref
	case tok.IsPunct('*'):
		p.advance()
		ptr := &ast.TypePtr{}
		switch {
		case p.eatKw("mut"):
			ptr.Mut = true
		case p.eatKw("const"):
		default:
			p.errorf("expected `mut` or `const` in raw pointer type")
		}
		ptr.Elem = p.parseTypeNoBounds()
		return ptr
	case tok.IsPunct('!'):
		p.advance()
		return &ast.TypeNever{}
	case tok.IsIdent("_"):
		p.advance()
		return &ast.TypeInfer{}
	case tok.IsIdent("fn") || tok.IsIdent("unsafe") || tok.IsIdent("extern"):
		return p.parseFnType(nil)
	case tok.IsIdent("for"):
		lifetimes := p.parseForLifetimes()
		if p.atKw("fn") || p.atKw("unsafe") || p.atKw("extern") {
			return p.parseFnType(lifetimes)
		}
		// for<'a> Trait<'a> + Send
		bound := ast.TypeParamBound{Lifetimes: lifetimes, Path: p.parsePath(pathType)}
		bounds := []ast.TypeParamBound{bound}
		if allowPlus && p.eatPunct('+') {
			bounds = append(bounds, p.parseBounds()...)
		}
		return &ast.TypeTraitObject{Bounds: bounds}
	case tok.IsIdent("impl"):
		p.advance()
		return &ast.TypeImplTrait{Bounds: p.parseBoundsPlus(allowPlus)}
	case tok.IsIdent("dyn") && !p.peekN(1).IsPunct(':'):
		p.advance()
		return &ast.TypeTraitObject{Dyn: true, Bounds: p.parseBoundsPlus(allowPlus)}
	case tok.IsPunct('?'):
		return &ast.TypeTraitObject{Bounds: p.parseBoundsPlus(allowPlus)}
	case tok.IsPunct('<'):
		q, path := p.parseQPath(pathType)
		return &ast.TypePath{QSelf: q, Path: path}
	case p.atPathStart():
		path := p.parsePath(pathType)
		if p.atPunct('!') && !p.atOp("!=") {
			p.advance()
			mac := ast.Macro{Path: path}
			mac.Delim, mac.Tokens = p.delimited()
			return &ast.TypeMacro{Mac: mac}
		}
		if allowPlus && p.atPunct('+') {
			bounds := []ast.TypeParamBound{{Path: path}}
			p.advance()
			bounds = append(bounds, p.parseBounds()...)
			return &ast.TypeTraitObject{Bounds: bounds}
		}
		return &ast.TypePath{Path: path}
	default:
		p.errorf("expected type, found %s", describeTok(tok))
		return nil
	}
}

func (p *Parser) parseTupleType() ast.Type {
	p.expectOpen(token.Paren)
	if p.atClose(token.Paren) {
		p.advance()
		return &ast.TypeTuple{}
	}
	first := p.parseType()
	if p.atClose(token.Paren) {
		p.advance()
		return &ast.TypeParen{Elem: first}
	}
	elems := []ast.Type{first}
	for p.eatPunct(',') && !p.atClose(token.Paren) {
		elems = append(elems, p.parseType())
	}
	p.expectClose(token.Paren)
	return &ast.TypeTuple{Elems: elems}
}

// parseFnType parses `unsafe extern "C" fn(A, b: B, ...) -> R`.
func (p *Parser) parseFnType(lifetimes []string) ast.Type {
	fn := &ast.TypeFn{Lifetimes: lifetimes}
	fn.Unsafe = p.eatKw("unsafe")
	if p.atKw("extern") {
		fn.ABI = p.parseABI()
	}
	p.expectKw("fn")
	p.expectOpen(token.Paren)
	for !p.atClose(token.Paren) {
		p.parseOuterAttrs()
		if p.eatOp("...") {
			fn.Variadic = true
			p.eatPunct(',')
			break
		}
		var arg ast.BareFnArg
		if (p.atIdent() || p.atKw("_")) && p.opAt(1) == ":" {
			arg.Name = p.advance().Text
			p.advance()
		}
		arg.Type = p.parseType()
		fn.Inputs = append(fn.Inputs, arg)
		if !p.eatPunct(',') {
			break
		}
	}
	p.expectClose(token.Paren)
	if p.eatOp("->") {
		fn.Output = p.parseTypeNoBounds()
	}
	return fn
}

func (p *Parser) parseABI() *ast.ABI {
	p.expectKw("extern")
	abi := &ast.ABI{}
	if tok := p.peek(); tok.Kind == token.Literal && tok.Lit.IsString() {
		abi.Name = p.advance().Text
	}
	return abi
}

// parseForLifetimes parses `for<'a, 'b>`.
func (p *Parser) parseForLifetimes() []string {
	p.expectKw("for")
	p.expectPunct('<')
	var lts []string
	for !p.eatPunct('>') {
		if p.peek().Kind != token.Lifetime {
			p.errorf("expected lifetime, found %s", describeTok(p.peek()))
		}
		lts = append(lts, p.advance().Text)
		if !p.eatPunct(',') {
			p.expectPunct('>')
			break
		}
	}
	return lts
}

func (p *Parser) parseBoundsPlus(allowPlus bool) []ast.TypeParamBound {
	if allowPlus {
		return p.parseBounds()
	}
	return []ast.TypeParamBound{p.parseBound()}
}

// parseBounds parses `Bound + Bound + 'a`. A trailing `+` is accepted.
func (p *Parser) parseBounds() []ast.TypeParamBound {
	var bounds []ast.TypeParamBound
	for p.atBoundStart() {
		bounds = append(bounds, p.parseBound())
		if !p.eatPunct('+') {
			break
		}
	}
	return bounds
}

func (p *Parser) atBoundStart() bool {
	tok := p.peek()
	return tok.Kind == token.Lifetime || tok.IsPunct('?') || tok.IsPunct('~') ||
		tok.IsIdent("for") || tok.IsIdent("const") || tok.Kind == token.Open && tok.Delim == token.Paren ||
		p.atPathStart()
}

func (p *Parser) parseBound() ast.TypeParamBound {
	var b ast.TypeParamBound
	if tok := p.peek(); tok.Kind == token.Lifetime {
		b.Lifetime = p.advance().Text
		return b
	}
	if p.atOpen(token.Paren) {
		p.advance()
		b = p.parseBound()
		p.expectClose(token.Paren)
		return b
	}
	if p.atPunct('~') && p.atKwN(1, "const") {
		p.pos += 2
	} else if p.atKw("const") {
		p.advance()
	}
	if p.atKw("for") {
		b.Lifetimes = p.parseForLifetimes()
	}
	b.Maybe = p.eatPunct('?')
	b.Path = p.parsePath(pathType)
	return b
}
