package parser

import (
	"strconv"
	"strings"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrec(ast.PrecJump)
}

// parseExprPrec реализует Pratt parsing: unary operand, then binary
// operators binding at least as tightly as min.
func (p *Parser) parseExprPrec(min ast.Prec) ast.Expr {
	p.enter()
	defer p.leave()
	return p.parseBinary(p.parseUnary(), min)
}

func (p *Parser) parseBinary(lhs ast.Expr, min ast.Prec) ast.Expr {
	for {
		op := p.op()
		switch {
		case op == "=":
			if min > ast.PrecAssign {
				return lhs
			}
			p.advance()
			lhs = &ast.ExprAssign{Left: lhs, Right: p.parseExprPrec(ast.PrecAssign)}
		case op == ".." || op == "..=":
			if min > ast.PrecRange {
				return lhs
			}
			p.pos += len(op)
			r := &ast.ExprRange{Start: lhs, Limits: rangeLimits(op)}
			if p.canBeginExpr() {
				r.End = p.parseExprPrec(ast.PrecRange + 1)
			}
			lhs = r
		case p.atKw("as"):
			if min > ast.PrecCast {
				return lhs
			}
			p.advance()
			lhs = &ast.ExprCast{Expr: lhs, Type: p.parseTypeNoBounds()}
		default:
			bop, ok := ast.BinOpOf(op)
			if !ok {
				return lhs
			}
			prec := bop.Prec()
			if prec < min {
				return lhs
			}
			p.pos += len(op)
			next := prec + 1
			if bop.IsAssign() {
				next = prec
			}
			lhs = &ast.ExprBinary{Left: lhs, Op: bop, Right: p.parseExprPrec(next)}
		}
	}
}

func rangeLimits(op string) ast.RangeLimits {
	if op == "..=" {
		return ast.RangeClosed
	}
	return ast.RangeHalfOpen
}

// canBeginExpr reports whether the current token may start an expression.
func (p *Parser) canBeginExpr() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.Literal, token.Lifetime:
		return true
	case token.Ident:
		switch tok.Text {
		case "as", "else", "in":
			return false
		}
		return true
	case token.Open:
		return tok.Delim != token.Brace || !p.noStruct
	case token.Punct:
		switch tok.Text {
		case "-", "!", "*", "&", "|", "<", "#":
			return true
		case ":":
			return p.atOp("::")
		case ".":
			return p.atOp("..") || p.atOp("..=")
		}
	}
	return false
}

// parseUnary handles outer attributes and prefix operators.
func (p *Parser) parseUnary() ast.Expr {
	if attrs := p.parseOuterAttrs(); len(attrs) > 0 {
		e := p.parseUnary()
		ptr := ast.ExprAttrs(e)
		if ptr == nil {
			p.errorf("attributes are not allowed on this expression")
		}
		*ptr = append(attrs, *ptr...)
		return e
	}
	p.enter()
	defer p.leave()

	switch tok := p.peek(); {
	case tok.IsPunct('&'):
		p.advance()
		ref := &ast.ExprReference{}
		if p.atKw("raw") && (p.atKwN(1, "const") || p.atKwN(1, "mut")) {
			p.advance()
			ref.Raw = true
			ref.Mut = p.advance().Text == "mut"
		} else {
			ref.Mut = p.eatKw("mut")
		}
		ref.Expr = p.parseUnary()
		return ref
	case tok.IsPunct('*'):
		p.advance()
		return &ast.ExprUnary{Op: ast.UnDeref, Expr: p.parseUnary()}
	case tok.IsPunct('!'):
		p.advance()
		return &ast.ExprUnary{Op: ast.UnNot, Expr: p.parseUnary()}
	case tok.IsPunct('-'):
		p.advance()
		return &ast.ExprUnary{Op: ast.UnNeg, Expr: p.parseUnary()}
	case p.atOp("..") || p.atOp("..="):
		op := p.op()
		p.pos += len(op)
		r := &ast.ExprRange{Limits: rangeLimits(op)}
		if p.canBeginExpr() {
			r.End = p.parseExprPrec(ast.PrecRange + 1)
		}
		return r
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(e ast.Expr) ast.Expr {
	for {
		switch {
		case p.atPunct('?'):
			p.advance()
			e = &ast.ExprTry{Expr: e}
		case p.atPunct('.') && !p.atOp("..") && !p.atOp("..."):
			p.advance()
			e = p.parseDotSuffix(e)
		case p.atOpen(token.Paren):
			p.advance()
			e = &ast.ExprCall{Func: e, Args: p.parseExprList(token.Paren)}
		case p.atOpen(token.Bracket):
			p.advance()
			idx := withStruct(p, true, p.parseExpr)
			p.expectClose(token.Bracket)
			e = &ast.ExprIndex{Expr: e, Index: idx}
		default:
			return e
		}
	}
}

// parseDotSuffix parses what follows `.`: await, a method call, a named
// field or a tuple index.
func (p *Parser) parseDotSuffix(base ast.Expr) ast.Expr {
	tok := p.peek()
	switch {
	case tok.IsIdent("await"):
		p.advance()
		return &ast.ExprAwait{Base: base}
	case tok.Kind == token.Literal && (tok.Lit == token.LitInt || tok.Lit == token.LitFloat):
		p.advance()
		// `x.0.1` may arrive as the float `0.1`.
		for _, part := range strings.Split(tok.Text, ".") {
			idx, err := strconv.Atoi(part)
			if err != nil {
				p.errorf("invalid tuple index `%s`", tok.Text)
			}
			base = &ast.ExprField{Base: base, Member: ast.Member{Index: idx}}
		}
		return base
	case isIdentTok(tok):
		name := p.advance().Text
		var turbofish *ast.GenericArgs
		if p.atOp("::") && p.peekN(2).IsPunct('<') {
			p.pos += 2
			turbofish = p.parseGenericArgs(true)
		}
		if turbofish != nil || p.atOpen(token.Paren) {
			p.expectOpen(token.Paren)
			return &ast.ExprMethodCall{Receiver: base, Method: name, Turbofish: turbofish, Args: p.parseExprList(token.Paren)}
		}
		return &ast.ExprField{Base: base, Member: ast.Member{Name: name}}
	default:
		p.errorf("expected field or method name, found %s", describeTok(tok))
		return nil
	}
}

// parseExprList parses comma separated expressions up to and including the
// closing delimiter.
func (p *Parser) parseExprList(close token.Delim) []ast.Expr {
	return withStruct(p, true, func() []ast.Expr {
		var list []ast.Expr
		for !p.atClose(close) {
			list = append(list, p.parseExpr())
			if !p.eatPunct(',') {
				break
			}
		}
		p.expectClose(close)
		return list
	})
}

func (p *Parser) parseLit() ast.Expr {
	tok := p.peek()
	switch {
	case tok.Kind == token.Literal:
		p.advance()
		return &ast.ExprLit{Lit: ast.Lit{Kind: tok.Lit, Text: tok.Text}}
	case tok.IsIdent("true"), tok.IsIdent("false"):
		p.advance()
		return &ast.ExprLit{Lit: ast.Lit{Kind: token.LitBool, Text: tok.Text}}
	default:
		p.errorf("expected literal, found %s", describeTok(tok))
		return nil
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch {
	case tok.Kind == token.Literal, tok.IsIdent("true"), tok.IsIdent("false"):
		return p.parseLit()
	case tok.Kind == token.Open && tok.Delim == token.Paren:
		return p.parseParenExpr()
	case tok.Kind == token.Open && tok.Delim == token.Bracket:
		return p.parseArrayExpr()
	case tok.Kind == token.Open && tok.Delim == token.Brace:
		return &ast.ExprBlock{Block: p.parseBlock()}
	case tok.Kind == token.Lifetime && p.atPunctN(1, ':'):
		label := p.advance().Text
		p.advance()
		return p.parseLabeled(label)
	case tok.IsIdent("if"):
		return p.parseIf()
	case tok.IsIdent("match"):
		return p.parseMatch()
	case tok.IsIdent("loop"), tok.IsIdent("while"), tok.IsIdent("for") && !p.atPunctN(1, '<'):
		return p.parseLabeled("")
	case tok.IsIdent("unsafe") && p.atOpenN(1, token.Brace):
		p.advance()
		return &ast.ExprUnsafe{Block: p.parseBlock()}
	case tok.IsIdent("const") && p.atOpenN(1, token.Brace):
		p.advance()
		return &ast.ExprConst{Block: p.parseBlock()}
	case tok.IsIdent("try") && p.atOpenN(1, token.Brace):
		p.advance()
		return &ast.ExprTryBlock{Block: p.parseBlock()}
	case tok.IsIdent("async") && (p.atOpenN(1, token.Brace) || p.atKwN(1, "move") && p.atOpenN(2, token.Brace)):
		p.advance()
		e := &ast.ExprAsync{Move: p.eatKw("move")}
		e.Block = p.parseBlock()
		return e
	case p.atClosureStart():
		return p.parseClosure()
	case tok.IsIdent("return"):
		p.advance()
		e := &ast.ExprReturn{}
		if p.canBeginExpr() {
			e.Expr = p.parseExpr()
		}
		return e
	case tok.IsIdent("yield"):
		p.advance()
		e := &ast.ExprYield{}
		if p.canBeginExpr() {
			e.Expr = p.parseExpr()
		}
		return e
	case tok.IsIdent("break"):
		p.advance()
		e := &ast.ExprBreak{}
		if p.peek().Kind == token.Lifetime {
			e.Label = p.advance().Text
		}
		if p.canBeginExpr() {
			e.Expr = p.parseExpr()
		}
		return e
	case tok.IsIdent("continue"):
		p.advance()
		e := &ast.ExprContinue{}
		if p.peek().Kind == token.Lifetime {
			e.Label = p.advance().Text
		}
		return e
	case tok.IsIdent("let"):
		p.advance()
		e := &ast.ExprLet{Pat: p.parsePat()}
		p.expectPunct('=')
		e.Expr = p.parseExprPrec(ast.PrecCompare)
		return e
	case tok.IsIdent("_"):
		p.advance()
		return &ast.ExprInfer{}
	case tok.IsPunct('<'):
		q, path := p.parseQPath(pathExpr)
		return &ast.ExprPath{QSelf: q, Path: path}
	case p.atPathStart():
		return p.parsePathExpr()
	default:
		p.errorf("expected expression, found %s", describeTok(tok))
		return nil
	}
}

func (p *Parser) parsePathExpr() ast.Expr {
	path := p.parsePath(pathExpr)
	switch {
	case p.atPunct('!') && !p.atOp("!=") && p.peekN(1).Kind == token.Open:
		p.advance()
		mac := ast.Macro{Path: path}
		mac.Delim, mac.Tokens = p.delimited()
		return &ast.ExprMacro{Mac: mac}
	case p.atOpen(token.Brace) && !p.noStruct:
		return p.parseStructExpr(nil, path)
	default:
		return &ast.ExprPath{Path: path}
	}
}

func (p *Parser) parseStructExpr(q *ast.QSelf, path ast.Path) ast.Expr {
	e := &ast.ExprStruct{QSelf: q, Path: path}
	p.expectOpen(token.Brace)
	withStruct(p, true, func() struct{} {
		for !p.atClose(token.Brace) {
			attrs := p.parseOuterAttrs()
			if p.eatOp("..") {
				e.HasRest = true
				if !p.atClose(token.Brace) {
					e.Rest = p.parseExpr()
				}
				break
			}
			fv := ast.FieldValue{Attrs: attrs}
			switch tok := p.peek(); {
			case tok.Kind == token.Literal && tok.Lit == token.LitInt:
				idx, err := strconv.Atoi(p.advance().Text)
				if err != nil {
					p.errorf("invalid tuple index")
				}
				fv.Member = ast.Member{Index: idx}
			case isIdentTok(tok):
				fv.Member = ast.Member{Name: p.advance().Text}
			default:
				p.errorf("expected field name, found %s", describeTok(tok))
			}
			if p.eatPunct(':') {
				fv.Expr = p.parseExpr()
			} else {
				if fv.Member.Name == "" {
					p.errorf("expected `:` after tuple index")
				}
				fv.Shorthand = true
				fv.Expr = &ast.ExprPath{Path: ast.PathOf(fv.Member.Name)}
			}
			e.Fields = append(e.Fields, fv)
			if !p.eatPunct(',') {
				break
			}
		}
		return struct{}{}
	})
	p.expectClose(token.Brace)
	return e
}

func (p *Parser) parseParenExpr() ast.Expr {
	p.expectOpen(token.Paren)
	return withStruct(p, true, func() ast.Expr {
		if p.atClose(token.Paren) {
			p.advance()
			return &ast.ExprTuple{}
		}
		first := p.parseExpr()
		if p.atClose(token.Paren) {
			p.advance()
			return &ast.ExprParen{Expr: first}
		}
		p.expectPunct(',')
		elems := append([]ast.Expr{first}, p.parseExprList(token.Paren)...)
		return &ast.ExprTuple{Elems: elems}
	})
}

func (p *Parser) parseArrayExpr() ast.Expr {
	p.expectOpen(token.Bracket)
	return withStruct(p, true, func() ast.Expr {
		if p.atClose(token.Bracket) {
			p.advance()
			return &ast.ExprArray{}
		}
		first := p.parseExpr()
		if p.eatPunct(';') {
			n := p.parseExpr()
			p.expectClose(token.Bracket)
			return &ast.ExprRepeat{Expr: first, Len: n}
		}
		elems := []ast.Expr{first}
		if p.eatPunct(',') {
			elems = append(elems, p.parseExprList(token.Bracket)...)
		} else {
			p.expectClose(token.Bracket)
		}
		return &ast.ExprArray{Elems: elems}
	})
}

// parseCond parses the condition of `if`/`while` and the scrutinee of
// `match`/`for`, where a struct literal is not allowed.
func (p *Parser) parseCond() ast.Expr {
	return withStruct(p, false, p.parseExpr)
}

func (p *Parser) parseIf() ast.Expr {
	p.expectKw("if")
	e := &ast.ExprIf{Cond: p.parseCond()}
	e.Then = p.parseBlock()
	if p.eatKw("else") {
		if p.atKw("if") {
			e.Else = p.parseIf()
		} else {
			e.Else = &ast.ExprBlock{Block: p.parseBlock()}
		}
	}
	return e
}

// parseLabeled parses a loop or block that may carry a label.
func (p *Parser) parseLabeled(label string) ast.Expr {
	switch {
	case p.eatKw("loop"):
		return &ast.ExprLoop{Label: label, Body: p.parseBlock()}
	case p.eatKw("while"):
		e := &ast.ExprWhile{Label: label, Cond: p.parseCond()}
		e.Body = p.parseBlock()
		return e
	case p.eatKw("for"):
		e := &ast.ExprForLoop{Label: label, Pat: p.parsePat()}
		p.expectKw("in")
		e.Expr = p.parseCond()
		e.Body = p.parseBlock()
		return e
	case p.atOpen(token.Brace) && label != "":
		return &ast.ExprBlock{Label: label, Block: p.parseBlock()}
	default:
		p.errorf("expected loop or block after label, found %s", describeTok(p.peek()))
		return nil
	}
}

func (p *Parser) parseMatch() ast.Expr {
	p.expectKw("match")
	e := &ast.ExprMatch{Expr: p.parseCond()}
	p.expectOpen(token.Brace)
	withStruct(p, true, func() struct{} {
		p.parseInnerAttrs()
		for !p.atClose(token.Brace) {
			e.Arms = append(e.Arms, p.parseArm())
		}
		return struct{}{}
	})
	p.expectClose(token.Brace)
	return e
}

func (p *Parser) parseArm() ast.Arm {
	arm := ast.Arm{Attrs: p.parseOuterAttrs()}
	arm.Pat = p.parsePat()
	if p.eatKw("if") {
		arm.Guard = p.parseExpr()
	}
	p.expectOp("=>")
	if p.atBlockLikeStart() {
		arm.Body = p.parseBlockLikeExpr()
		arm.Comma = p.eatPunct(',')
		return arm
	}
	arm.Body = p.parseExpr()
	if !p.atClose(token.Brace) {
		p.expectPunct(',')
		arm.Comma = true
	} else {
		arm.Comma = p.eatPunct(',')
	}
	return arm
}

func (p *Parser) atClosureStart() bool {
	n := 0
	for p.atKwN(n, "static") || p.atKwN(n, "async") || p.atKwN(n, "move") {
		n++
	}
	return p.peekN(n).IsPunct('|')
}

func (p *Parser) parseClosure() ast.Expr {
	c := &ast.ExprClosure{}
	c.Static = p.eatKw("static")
	c.Async = p.eatKw("async")
	c.Move = p.eatKw("move")
	if !p.eatOp("||") {
		p.expectPunct('|')
		for !p.atPunct('|') {
			p.parseOuterAttrs()
			pat := p.parsePatNoTopAlt()
			if p.eatPunct(':') {
				pat = &ast.PatType{Pat: pat, Type: p.parseTypeNoBounds()}
			}
			c.Inputs = append(c.Inputs, pat)
			if !p.eatPunct(',') {
				break
			}
		}
		p.expectPunct('|')
	}
	if p.eatOp("->") {
		c.Output = p.parseTypeNoBounds()
		if !p.atOpen(token.Brace) {
			p.errorf("expected `{` after closure return type")
		}
		c.Body = &ast.ExprBlock{Block: p.parseBlock()}
		return c
	}
	c.Body = p.parseExpr()
	return c
}
