package parser

import (
	"strconv"

	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/token"
)

var compareOps = map[token.Type]bool{
	token.EQ: true, token.NE: true,
	token.LT: true, token.LE: true,
	token.GT: true, token.GE: true,
}

// parseExpression parses a full expression. precedence is accepted for
// symmetry with statement-level call sites but every caller passes LOWEST;
// the cascade below already encodes the full precedence table.
func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.OR) {
		tok := p.curToken
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Tok: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.AND) {
		tok := p.curToken
		p.next()
		right, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Tok: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left, nil
}

// parseCompare handles the single non-associative relational level: at
// most one comparison operator may appear at this level, so there is no
// loop here (unlike every other level).
func (p *Parser) parseCompare() (ast.Expression, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if compareOps[p.curToken.Type] {
		tok := p.curToken
		p.next()
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Tok: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left, nil
}

func (p *Parser) parseSum() (ast.Expression, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		tok := p.curToken
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Tok: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left, nil
}

func (p *Parser) parseProduct() (ast.Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.TIMES) || p.curIs(token.SLASH) || p.curIs(token.DIV) || p.curIs(token.MOD) {
		tok := p.curToken
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Tok: tok, Left: left, Op: tok.Type, Right: right}
	}
	return left, nil
}

// parseNot handles unary `not`, right-associative, binding looser than
// unary minus but tighter than every binary operator.
func (p *Parser) parseNot() (ast.Expression, error) {
	if p.curIs(token.NOT) {
		tok := p.curToken
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Tok: tok, Op: tok.Type, Operand: operand}, nil
	}
	return p.parseUnaryMinus()
}

// parseUnaryMinus handles unary `-` and `+`, right-associative, the
// tightest-binding level.
func (p *Parser) parseUnaryMinus() (ast.Expression, error) {
	if p.curIs(token.MINUS) || p.curIs(token.PLUS) {
		tok := p.curToken
		p.next()
		operand, err := p.parseUnaryMinus()
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Tok: tok, Op: tok.Type, Operand: operand}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses literals, parenthesized expressions, variables,
// array accesses, `length(e)`, and function calls.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.curToken.Type {
	case token.INT:
		return p.parseIntLiteral()
	case token.REAL:
		return p.parseRealLiteral()
	case token.STRING:
		tok := p.curToken
		p.next()
		return &ast.Literal{Tok: tok, Kind: ast.StringLiteral, StringValue: tok.Literal}, nil
	case token.TRUE, token.FALSE:
		tok := p.curToken
		p.next()
		return &ast.Literal{Tok: tok, Kind: ast.BoolLiteral, BoolValue: tok.Type == token.TRUE}, nil
	case token.LPAREN:
		p.next()
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LENGTH:
		return p.parseLengthCall()
	case token.IDENT:
		return p.parseIdentExpr()
	}
	return nil, p.syntaxError("unexpected token %s (%q) in expression", p.curToken.Type, p.curToken.Literal)
}

func (p *Parser) parseIntLiteral() (ast.Expression, error) {
	tok := p.curToken
	p.next()
	var n int64
	for _, ch := range tok.Literal {
		n = n*10 + int64(ch-'0')
	}
	return &ast.Literal{Tok: tok, Kind: ast.IntLiteral, IntValue: n}, nil
}

func (p *Parser) parseRealLiteral() (ast.Expression, error) {
	tok := p.curToken
	p.next()
	f, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, p.syntaxError("invalid real literal %q", tok.Literal)
	}
	return &ast.Literal{Tok: tok, Kind: ast.RealLiteral, RealValue: f}, nil
}

func (p *Parser) parseLengthCall() (ast.Expression, error) {
	tok := p.curToken
	p.next()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	arg, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.FuncCall{Tok: tok, IsLength: true, Args: []ast.Expression{arg}}, nil
}

// parseIdentExpr parses a bare variable, an array access, or a function
// call, all starting with IDENT.
func (p *Parser) parseIdentExpr() (ast.Expression, error) {
	tok := p.curToken
	p.next()

	if p.curIs(token.LBRACK) {
		return p.parseArrayAccess(&ast.Var{Tok: tok, Name: tok.Literal})
	}

	if p.curIs(token.LPAREN) {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ast.FuncCall{Tok: tok, Name: &ast.Ident{Tok: tok, Value: tok.Literal}, Args: args}, nil
	}

	return &ast.Var{Tok: tok, Name: tok.Literal}, nil
}

func (p *Parser) parseArrayAccess(target ast.Expression) (ast.Expression, error) {
	tok := p.curToken
	p.next() // consume '['
	index, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACK); err != nil {
		return nil, err
	}
	return &ast.ArrayAccess{Tok: tok, Target: target, Index: index}, nil
}

