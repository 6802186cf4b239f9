package parser

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

type pathMode uint8

const (
	pathMod  pathMode = iota // no generic arguments: attributes, visibility
	pathExpr                 // generic arguments only after `::<`
	pathType                 // `<` starts generic arguments directly
)

func (p *Parser) atPathSegment() bool {
	tok := p.peek()
	return isIdentTok(tok) || tok.Kind == token.Ident && token.IsPathKeyword(tok.Text)
}

func (p *Parser) atPathStart() bool {
	return p.atPathSegment() || p.atOp("::")
}

func (p *Parser) parseModPath() ast.Path {
	return p.parsePath(pathMod)
}

func (p *Parser) parsePath(mode pathMode) ast.Path {
	var path ast.Path
	if p.eatOp("::") {
		path.Global = true
	}
	for {
		if !p.atPathSegment() {
			p.errorf("expected identifier, found %s", describeTok(p.peek()))
		}
		seg := ast.PathSegment{Ident: p.advance().Text}
		switch {
		case mode == pathType && p.atPunct('<') && !p.atOp("<="):
			seg.Args = p.parseGenericArgs(false)
		case mode == pathType && p.atOpen(token.Paren):
			seg.Args = p.parseParenArgs()
		case mode != pathMod && p.atOp("::") && p.peekN(2).IsPunct('<'):
			p.pos += 2
			seg.Args = p.parseGenericArgs(true)
		}
		path.Segments = append(path.Segments, seg)
		if !p.atOp("::") || p.peekN(2).IsPunct('<') || !isPathSegmentTok(p.peekN(2)) {
			return path
		}
		p.pos += 2
	}
}

func isPathSegmentTok(tok token.Token) bool {
	return isIdentTok(tok) || tok.Kind == token.Ident && token.IsPathKeyword(tok.Text)
}

// parseGenericArgs parses `<...>` with the cursor on `<`.
func (p *Parser) parseGenericArgs(turbofish bool) *ast.GenericArgs {
	p.expectPunct('<')
	args := &ast.GenericArgs{Colon: turbofish}
	for !p.eatPunct('>') {
		args.Args = append(args.Args, p.parseGenericArg())
		if !p.eatPunct(',') {
			p.expectPunct('>')
			break
		}
	}
	return args
}

func (p *Parser) parseGenericArg() ast.GenericArg {
	tok := p.peek()
	switch {
	case tok.Kind == token.Lifetime:
		p.advance()
		return ast.GenericArg{Kind: ast.ArgLifetime, Lifetime: tok.Text}
	case tok.Kind == token.Literal || tok.IsPunct('-') || tok.Kind == token.Open && tok.Delim == token.Brace ||
		tok.IsIdent("true") || tok.IsIdent("false"):
		return ast.GenericArg{Kind: ast.ArgConst, Const: p.parseConstArg()}
	case isIdentTok(tok) && p.opAt(1) == "=":
		name := p.advance().Text
		p.advance()
		if p.atConstArgStart() {
			return ast.GenericArg{Kind: ast.ArgAssocConst, Ident: name, Const: p.parseConstArg()}
		}
		return ast.GenericArg{Kind: ast.ArgAssocType, Ident: name, Type: p.parseType()}
	case isIdentTok(tok) && p.opAt(1) == ":":
		name := p.advance().Text
		p.advance()
		return ast.GenericArg{Kind: ast.ArgConstraint, Ident: name, Bounds: p.parseBounds()}
	default:
		return ast.GenericArg{Kind: ast.ArgType, Type: p.parseType()}
	}
}

func (p *Parser) atConstArgStart() bool {
	tok := p.peek()
	return tok.Kind == token.Literal || tok.IsPunct('-') || tok.Kind == token.Open && tok.Delim == token.Brace ||
		tok.IsIdent("true") || tok.IsIdent("false")
}

// parseConstArg parses a const generic argument: a literal, a negated
// literal, or a block.
func (p *Parser) parseConstArg() ast.Expr {
	if p.atOpen(token.Brace) {
		return &ast.ExprBlock{Block: p.parseBlock()}
	}
	if p.eatPunct('-') {
		return &ast.ExprUnary{Op: ast.UnNeg, Expr: p.parseLit()}
	}
	return p.parseLit()
}

// parseParenArgs parses the `(A, B) -> C` arguments of the Fn traits.
func (p *Parser) parseParenArgs() *ast.GenericArgs {
	args := &ast.GenericArgs{Paren: true}
	p.expectOpen(token.Paren)
	for !p.atClose(token.Paren) {
		args.Inputs = append(args.Inputs, p.parseType())
		if !p.eatPunct(',') {
			break
		}
	}
	p.expectClose(token.Paren)
	if p.eatOp("->") {
		args.Output = p.parseTypeNoBounds()
	}
	return args
}

// parseQPath parses `<Type as Trait>::rest`.
func (p *Parser) parseQPath(mode pathMode) (*ast.QSelf, ast.Path) {
	p.expectPunct('<')
	q := &ast.QSelf{Type: p.parseType()}
	if p.eatKw("as") {
		trait := p.parsePath(pathType)
		q.Trait = &trait
	}
	p.expectPunct('>')
	if !p.atOp("::") {
		p.errorf("expected `::`, found %s", describeTok(p.peek()))
	}
	path := p.parsePath(mode)
	path.Global = false
	return q, path
}
