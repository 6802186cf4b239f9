package parser

import (
	"strconv"

	"cargo-expand/internal/ast"
	"cargo-expand/internal/token"
)

// parsePat parses a pattern with top-level alternatives: `A | B`.
func (p *Parser) parsePat() ast.Pat {
	p.eatLeadingVert()
	first := p.parsePatNoTopAlt()
	if !p.atPunct('|') || p.atOp("||") || p.atOp("|=") {
		return first
	}
	or := &ast.PatOr{Cases: []ast.Pat{first}}
	for p.atPunct('|') && !p.atOp("||") && !p.atOp("|=") {
		p.advance()
		or.Cases = append(or.Cases, p.parsePatNoTopAlt())
	}
	return or
}

func (p *Parser) eatLeadingVert() {
	if p.atPunct('|') && !p.atOp("||") {
		p.advance()
	}
}

func (p *Parser) parsePatNoTopAlt() ast.Pat {
	p.enter()
	defer p.leave()

	tok := p.peek()
	switch {
	case tok.IsIdent("_"):
		p.advance()
		return &ast.PatWild{}
	case tok.IsPunct('&'):
		p.advance()
		ref := &ast.PatRef{}
		ref.Mut = p.eatKw("mut")
		ref.Pat = p.parsePatNoRange()
		return ref
	case tok.Kind == token.Open && tok.Delim == token.Paren:
		return p.parseTuplePat()
	case tok.Kind == token.Open && tok.Delim == token.Bracket:
		p.advance()
		slice := &ast.PatSlice{Elems: p.parsePatList(token.Bracket)}
		return slice
	case p.atOp("..="):
		p.pos += 3
		return &ast.PatRange{Hi: p.parseRangeBound(), Inclusive: true}
	case p.atOp(".."):
		p.pos += 2
		if p.atRangeBound() {
			return &ast.PatRange{Hi: p.parseRangeBound()}
		}
		return &ast.PatRest{}
	case tok.Kind == token.Literal || tok.IsPunct('-') || tok.IsIdent("true") || tok.IsIdent("false"):
		lit := p.parseLitPat()
		return p.parseRangeTail(lit, &ast.PatLit{Expr: lit})
	case tok.IsIdent("ref") || tok.IsIdent("mut"):
		return p.parseBindingPat()
	case tok.IsIdent("box"):
		p.errorf("box patterns are not supported")
		return nil
	case tok.IsPunct('<'):
		q, path := p.parseQPath(pathExpr)
		return p.parsePathPat(q, path)
	case isIdentTok(tok) && !p.atPathContinue(1):
		return p.parseBindingPat()
	case p.atPathStart():
		return p.parsePathPat(nil, p.parsePath(pathExpr))
	case tok.IsIdent("const") && p.atOpenN(1, token.Brace):
		p.errorf("inline const patterns are not supported")
		return nil
	default:
		p.errorf("expected pattern, found %s", describeTok(tok))
		return nil
	}
}

func (p *Parser) atOpenN(n int, d token.Delim) bool {
	tok := p.peekN(n)
	return tok.Kind == token.Open && tok.Delim == d
}

// atPathContinue reports whether the identifier n tokens ahead is followed
// by something that makes it a path rather than a binding.
func (p *Parser) atPathContinue(n int) bool {
	next := p.peekN(n)
	op := p.opAt(n)
	return op == "::" || op == "!" || op == ".." || op == "..=" || op == "..." ||
		next.Kind == token.Open && (next.Delim == token.Paren || next.Delim == token.Brace)
}

// parsePatNoRange is the operand of `&`, which binds tighter than ranges.
func (p *Parser) parsePatNoRange() ast.Pat {
	tok := p.peek()
	if tok.Kind == token.Literal || tok.IsPunct('-') {
		return &ast.PatLit{Expr: p.parseLitPat()}
	}
	return p.parsePatNoTopAlt()
}

func (p *Parser) parseBindingPat() ast.Pat {
	pat := &ast.PatIdent{}
	pat.Ref = p.eatKw("ref")
	pat.Mut = p.eatKw("mut")
	if !p.atIdent() && !p.atKw("self") {
		p.errorf("expected identifier, found %s", describeTok(p.peek()))
	}
	pat.Name = p.advance().Text
	if p.eatPunct('@') {
		pat.Sub = p.parsePatNoTopAlt()
	}
	return pat
}

func (p *Parser) parsePathPat(q *ast.QSelf, path ast.Path) ast.Pat {
	switch {
	case q == nil && p.atPunct('!'):
		p.advance()
		mac := ast.Macro{Path: path}
		mac.Delim, mac.Tokens = p.delimited()
		return &ast.PatMacro{Mac: mac}
	case p.atOpen(token.Paren):
		p.advance()
		return &ast.PatTupleStruct{QSelf: q, Path: path, Elems: p.parsePatList(token.Paren)}
	case p.atOpen(token.Brace):
		return p.parseStructPat(q, path)
	}
	expr := &ast.ExprPath{QSelf: q, Path: path}
	return p.parseRangeTail(expr, &ast.PatPath{QSelf: q, Path: path})
}

// parseRangeTail turns `lo` into `lo..=hi`, `lo..hi` or `lo..` when a range
// operator follows; otherwise it returns plain.
func (p *Parser) parseRangeTail(lo ast.Expr, plain ast.Pat) ast.Pat {
	switch {
	case p.atOp("..="), p.atOp("..."):
		p.pos += 3
		return &ast.PatRange{Lo: lo, Hi: p.parseRangeBound(), Inclusive: true}
	case p.atOp(".."):
		p.pos += 2
		r := &ast.PatRange{Lo: lo}
		if p.atRangeBound() {
			r.Hi = p.parseRangeBound()
		}
		return r
	default:
		return plain
	}
}

func (p *Parser) atRangeBound() bool {
	tok := p.peek()
	return tok.Kind == token.Literal || tok.IsPunct('-') || tok.IsPunct('<') || p.atPathStart()
}

func (p *Parser) parseRangeBound() ast.Expr {
	switch tok := p.peek(); {
	case tok.Kind == token.Literal || tok.IsPunct('-'):
		return p.parseLitPat()
	case tok.IsPunct('<'):
		q, path := p.parseQPath(pathExpr)
		return &ast.ExprPath{QSelf: q, Path: path}
	default:
		return &ast.ExprPath{Path: p.parsePath(pathExpr)}
	}
}

// parseLitPat parses a literal, optionally negated.
func (p *Parser) parseLitPat() ast.Expr {
	if p.eatPunct('-') {
		return &ast.ExprUnary{Op: ast.UnNeg, Expr: p.parseLit()}
	}
	return p.parseLit()
}

func (p *Parser) parseTuplePat() ast.Pat {
	p.expectOpen(token.Paren)
	if p.atClose(token.Paren) {
		p.advance()
		return &ast.PatTuple{}
	}
	first := p.parsePat()
	if p.atClose(token.Paren) {
		p.advance()
		if _, rest := first.(*ast.PatRest); rest {
			return &ast.PatTuple{Elems: []ast.Pat{first}}
		}
		return &ast.PatParen{Pat: first}
	}
	p.expectPunct(',')
	elems := append([]ast.Pat{first}, p.parsePatList(token.Paren)...)
	return &ast.PatTuple{Elems: elems}
}

// parsePatList parses comma separated patterns up to and including the
// closing delimiter.
func (p *Parser) parsePatList(close token.Delim) []ast.Pat {
	var elems []ast.Pat
	for !p.atClose(close) {
		elems = append(elems, p.parsePat())
		if !p.eatPunct(',') {
			break
		}
	}
	p.expectClose(close)
	return elems
}

func (p *Parser) parseStructPat(q *ast.QSelf, path ast.Path) ast.Pat {
	pat := &ast.PatStruct{QSelf: q, Path: path}
	p.expectOpen(token.Brace)
	for !p.atClose(token.Brace) {
		attrs := p.parseOuterAttrs()
		if p.eatOp("..") {
			pat.Rest = true
			break
		}
		field := ast.FieldPat{Attrs: attrs}
		switch tok := p.peek(); {
		case tok.Kind == token.Literal && tok.Lit == token.LitInt:
			idx, err := strconv.Atoi(p.advance().Text)
			if err != nil {
				p.errorf("invalid tuple index")
			}
			field.Member = ast.Member{Index: idx}
			p.expectPunct(':')
			field.Pat = p.parsePat()
		case p.atIdent() && p.opAt(1) == ":":
			field.Member = ast.Member{Name: p.advance().Text}
			p.advance()
			field.Pat = p.parsePat()
		default:
			binding, ok := p.parseBindingPat().(*ast.PatIdent)
			if !ok || binding.Sub != nil {
				p.errorf("expected field pattern")
			}
			field.Member = ast.Member{Name: binding.Name}
			field.Pat = binding
			field.Shorthand = true
		}
		pat.Fields = append(pat.Fields, field)
		if !p.eatPunct(',') {
			break
		}
	}
	p.expectClose(token.Brace)
	return pat
}
