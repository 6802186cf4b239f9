package parser

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

func (p *Parser) parseOuterAttrs() []ast.Attribute {
	var attrs []ast.Attribute
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.DocComment && !tok.Inner:
			p.advance()
			attrs = append(attrs, docAttr(ast.AttrOuter, tok))
		case tok.IsPunct('#') && p.peekN(1).Kind == token.Open && p.peekN(1).Delim == token.Bracket:
			p.advance()
			attrs = append(attrs, p.parseAttrBody(ast.AttrOuter))
		default:
			return attrs
		}
	}
}

func (p *Parser) parseInnerAttrs() []ast.Attribute {
	var attrs []ast.Attribute
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.DocComment && tok.Inner:
			p.advance()
			attrs = append(attrs, docAttr(ast.AttrInner, tok))
		case tok.IsPunct('#') && p.peekN(1).IsPunct('!') && p.peekN(2).Kind == token.Open && p.peekN(2).Delim == token.Bracket:
			p.pos += 2
			attrs = append(attrs, p.parseAttrBody(ast.AttrInner))
		default:
			return attrs
		}
	}
}

// docAttr turns a doc comment token into `#[doc = "..."]`. The token text is
// already a quoted string literal.
func docAttr(style ast.AttrStyle, tok token.Token) ast.Attribute {
	return ast.Attribute{
		Style:  style,
		Path:   ast.PathOf("doc"),
		Meta:   ast.MetaNameValue,
		Tokens: token.Stream{{Kind: token.Literal, Lit: token.LitStr, Text: tok.Text}},
	}
}

// parseAttrBody parses `[path args]` after the `#` or `#!`.
func (p *Parser) parseAttrBody(style ast.AttrStyle) ast.Attribute {
	p.expectOpen(token.Bracket)
	attr := ast.Attribute{Style: style}
	if p.atKw("unsafe") && p.peekN(1).Kind == token.Open && p.peekN(1).Delim == token.Paren {
		// #[unsafe(no_mangle)]
		attr.Path = ast.PathOf(p.advance().Text)
		attr.Meta = ast.MetaList
		attr.Delim, attr.Tokens = p.delimited()
		p.expectClose(token.Bracket)
		return attr
	}
	attr.Path = p.parseModPath()
	switch {
	case p.peek().Kind == token.Open:
		attr.Meta = ast.MetaList
		attr.Delim, attr.Tokens = p.delimited()
	case p.eatPunct('='):
		attr.Meta = ast.MetaNameValue
		start := p.pos
		for depth := 0; depth > 0 || !p.atClose(token.Bracket); {
			switch tok := p.advance(); tok.Kind {
			case token.Open:
				depth++
			case token.Close:
				depth--
			case token.EOF:
				p.errorf("unclosed attribute")
			}
		}
		attr.Tokens = p.toks[start:p.pos].Clone()
	default:
		attr.Meta = ast.MetaPath
	}
	p.expectClose(token.Bracket)
	return attr
}
