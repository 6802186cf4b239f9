package parser

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

func (p *Parser) parseGenerics() ast.Generics {
	var g ast.Generics
	if !p.atPunct('<') {
		return g
	}
	p.advance()
	for !p.eatPunct('>') {
		g.Params = append(g.Params, p.parseGenericParam())
		if !p.eatPunct(',') {
			p.expectPunct('>')
			break
		}
	}
	return g
}

func (p *Parser) parseGenericParam() ast.GenericParam {
	param := ast.GenericParam{Attrs: p.parseOuterAttrs()}
	switch tok := p.peek(); {
	case tok.Kind == token.Lifetime:
		param.Kind = ast.ParamLifetime
		param.Name = p.advance().Text
		if p.eatPunct(':') {
			param.LifetimeBounds = p.parseLifetimeBounds()
		}
	case tok.IsIdent("const"):
		p.advance()
		param.Kind = ast.ParamConst
		param.Name = p.parseIdent()
		p.expectPunct(':')
		param.Type = p.parseType()
		if p.eatPunct('=') {
			param.ConstDefault = p.parseConstArg()
		}
	default:
		param.Kind = ast.ParamType
		param.Name = p.parseIdent()
		if p.eatPunct(':') {
			param.Bounds = p.parseBounds()
		}
		if p.eatPunct('=') {
			param.Default = p.parseType()
		}
	}
	return param
}

// parseLifetimeBounds parses `'b + 'c` after a colon.
func (p *Parser) parseLifetimeBounds() []string {
	var lts []string
	for p.peek().Kind == token.Lifetime {
		lts = append(lts, p.advance().Text)
		if !p.eatPunct('+') {
			break
		}
	}
	return lts
}

// parseWhere parses an optional where clause into g.
func (p *Parser) parseWhere(g *ast.Generics) {
	if !p.eatKw("where") {
		return
	}
	for !p.atOpen(token.Brace) && !p.atPunct(';') && !p.atOp("=") && !p.atEOF() {
		var pred ast.WherePredicate
		if tok := p.peek(); tok.Kind == token.Lifetime {
			pred.Lifetime = p.advance().Text
			p.expectPunct(':')
			pred.LifetimeBounds = p.parseLifetimeBounds()
		} else {
			if p.atKw("for") {
				pred.Lifetimes = p.parseForLifetimes()
			}
			pred.Type = p.parseType()
			p.expectPunct(':')
			pred.Bounds = p.parseBounds()
		}
		g.Where = append(g.Where, pred)
		if !p.eatPunct(',') {
			break
		}
	}
}
