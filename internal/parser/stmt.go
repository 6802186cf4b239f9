package parser

import (
	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

// parseBlock parses `{ stmts }`. Inner attributes of a plain block are
// accepted and dropped.
func (p *Parser) parseBlock() *ast.Block {
	p.expectOpen(token.Brace)
	p.parseInnerAttrs()
	return p.parseBlockRest()
}

// parseBlockRest parses statements after the opening brace up to and
// including the closing one.
func (p *Parser) parseBlockRest() *ast.Block {
	return withStruct(p, true, func() *ast.Block {
		b := &ast.Block{}
		for !p.atClose(token.Brace) {
			if p.atEOF() {
				p.errorf("unclosed block")
			}
			if p.eatPunct(';') {
				continue
			}
			b.Stmts = append(b.Stmts, p.parseStmt())
		}
		p.advance()
		return b
	})
}

func (p *Parser) parseStmt() ast.Stmt {
	p.enter()
	defer p.leave()

	start := p.pos
	attrs := p.parseOuterAttrs()
	switch {
	case p.atKw("let"):
		p.advance()
		return p.parseLocal(attrs)
	case p.atItemStart():
		p.pos = start
		return &ast.StmtItem{Item: p.parseItem()}
	}

	var e ast.Expr
	if p.atBlockLikeStart() {
		e = p.parseBlockLikeExpr()
		if p.atPunct('.') || p.atPunct('?') {
			e = p.parseBinary(p.parsePostfix(e), ast.PrecJump)
		} else if !p.atPunct(';') {
			// A block-like expression statement ends at its closing brace.
			setAttrs(p, e, attrs)
			return &ast.StmtExpr{Expr: e}
		}
	} else {
		e = p.parseExpr()
	}
	setAttrs(p, e, attrs)
	if p.eatPunct(';') {
		return &ast.StmtExpr{Expr: e, Semi: true}
	}
	if !p.atClose(token.Brace) {
		if mac, ok := e.(*ast.ExprMacro); ok && mac.Mac.Delim == token.Brace {
			return &ast.StmtExpr{Expr: e}
		}
		p.errorf("expected `;`, found %s", describeTok(p.peek()))
	}
	return &ast.StmtExpr{Expr: e}
}

func setAttrs(p *Parser, e ast.Expr, attrs []ast.Attribute) {
	if len(attrs) == 0 {
		return
	}
	ptr := ast.ExprAttrs(e)
	if ptr == nil {
		p.errorf("attributes are not allowed on this expression")
	}
	*ptr = append(attrs, *ptr...)
}

func (p *Parser) parseLocal(attrs []ast.Attribute) ast.Stmt {
	local := &ast.StmtLocal{Attrs: attrs, Pat: p.parsePat()}
	if p.eatPunct(':') {
		local.Type = p.parseType()
	}
	if p.eatPunct('=') {
		local.Init = p.parseExpr()
		if p.eatKw("else") {
			local.Else = p.parseBlock()
		}
	}
	p.expectPunct(';')
	return local
}

// atItemStart reports whether a statement starts with an item.
func (p *Parser) atItemStart() bool {
	tok := p.peek()
	if tok.Kind != token.Ident {
		return false
	}
	switch tok.Text {
	case "fn", "struct", "enum", "trait", "impl", "mod", "use", "type", "extern", "pub":
		return true
	case "static":
		return !p.atPunctN(1, '|') && !p.atKwN(1, "move") && !p.atKwN(1, "async")
	case "const":
		return !p.atOpenN(1, token.Brace) && !p.atPunctN(1, '|') && !p.atKwN(1, "move") && !p.atKwN(1, "async")
	case "unsafe":
		return !p.atOpenN(1, token.Brace)
	case "async":
		return p.atFnStart()
	case "macro_rules":
		return p.atPunctN(1, '!') && p.atIdentN(2)
	case "union":
		return p.atIdentN(1)
	case "auto":
		return p.atKwN(1, "trait")
	case "default":
		return p.atKwN(1, "impl") || p.atKwN(1, "unsafe") && p.atKwN(2, "impl")
	}
	return false
}

// atBlockLikeStart reports whether the expression at the cursor ends with a
// block and therefore needs no semicolon as a statement.
func (p *Parser) atBlockLikeStart() bool {
	tok := p.peek()
	switch {
	case tok.Kind == token.Open && tok.Delim == token.Brace:
		return true
	case tok.Kind == token.Lifetime && p.atPunctN(1, ':'):
		return true
	case tok.IsIdent("if"), tok.IsIdent("match"), tok.IsIdent("loop"), tok.IsIdent("while"), tok.IsIdent("for"):
		return true
	case tok.IsIdent("unsafe"), tok.IsIdent("const"), tok.IsIdent("try"):
		return p.atOpenN(1, token.Brace)
	case tok.IsIdent("async"):
		return p.atOpenN(1, token.Brace) || p.atKwN(1, "move") && p.atOpenN(2, token.Brace)
	}
	return false
}

func (p *Parser) parseBlockLikeExpr() ast.Expr {
	p.enter()
	defer p.leave()
	return p.parsePrimary()
}
