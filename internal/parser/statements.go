package parser

import (
	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/token"
)

// parseCompound parses `begin stmt; stmt; ... end`. A trailing semicolon
// before `end` is permitted; the resulting empty statement is a NoOp and is
// stripped from the final list (spec.md §4.2 subtleties).
func (p *Parser) parseCompound() (*ast.Compound, error) {
	tok, err := p.expect(token.BEGIN)
	if err != nil {
		return nil, err
	}
	comp := &ast.Compound{Tok: tok}
	for !p.curIs(token.END) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if _, isNoOp := stmt.(*ast.NoOp); !isNoOp {
			comp.Statements = append(comp.Statements, stmt)
		}
		if p.curIs(token.SEMICOLON) {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}
	return comp, nil
}

// parseStatement dispatches on the current token to one of the statement
// forms of spec.md §4.2.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken.Type {
	case token.BEGIN:
		return p.parseCompound()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.REPEAT:
		return p.parseRepeat()
	case token.READLN, token.WRITELN:
		return p.parseBuiltinCall()
	case token.IDENT:
		return p.parseAssignOrCall()
	case token.SEMICOLON, token.END:
		return &ast.NoOp{Tok: p.curToken}, nil
	}
	return nil, p.syntaxError("unexpected token %s (%q) in statement", p.curToken.Type, p.curToken.Literal)
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok, err := p.expect(token.IF)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	thenStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	ifStmt := &ast.If{Tok: tok, Condition: cond, Then: thenStmt}
	// Dangling-else: an `else` here always binds to this, the nearest open if.
	if p.curIs(token.ELSE) {
		p.next()
		elseStmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		ifStmt.Else = elseStmt
	}
	return ifStmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok, err := p.expect(token.WHILE)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DO); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Tok: tok, Condition: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	tok, err := p.expect(token.FOR)
	if err != nil {
		return nil, err
	}
	varTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	from, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	down := false
	switch p.curToken.Type {
	case token.TO:
		p.next()
	case token.DOWNTO:
		down = true
		p.next()
	default:
		return nil, p.syntaxError("expected to or downto, got %s", p.curToken.Type)
	}
	to, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DO); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.For{
		Tok:  tok,
		Var:  &ast.Ident{Tok: varTok, Value: varTok.Literal},
		From: from, To: to, Down: down, Body: body,
	}, nil
}

func (p *Parser) parseRepeat() (ast.Statement, error) {
	tok, err := p.expect(token.REPEAT)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.curIs(token.UNTIL) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if _, isNoOp := stmt.(*ast.NoOp); !isNoOp {
			stmts = append(stmts, stmt)
		}
		if p.curIs(token.SEMICOLON) {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(token.UNTIL); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.Repeat{Tok: tok, Body: stmts, Condition: cond}, nil
}

// parseBuiltinCall parses `readln(...)` or `writeln(...)` as statements.
func (p *Parser) parseBuiltinCall() (ast.Statement, error) {
	tok := p.curToken
	p.next()
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.ProcCall{Tok: tok, Name: &ast.Ident{Tok: tok, Value: tok.Literal}, Args: args}, nil
}

// parseAssignOrCall parses either an assignment (`lvalue := expr`, where
// lvalue is a Var or ArrayAccess) or a bare procedure call.
func (p *Parser) parseAssignOrCall() (ast.Statement, error) {
	nameTok := p.curToken
	p.next()

	var target ast.Expression = &ast.Var{Tok: nameTok, Name: nameTok.Literal}
	if p.curIs(token.LBRACK) {
		var err error
		target, err = p.parseArrayAccess(target)
		if err != nil {
			return nil, err
		}
	}

	if p.curIs(token.ASSIGN) {
		assignTok := p.curToken
		p.next()
		rhs, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Tok: assignTok, Left: target, Right: rhs}, nil
	}

	// Bare procedure call: name with optional parenthesized argument list.
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.ProcCall{Tok: nameTok, Name: &ast.Ident{Tok: nameTok, Value: nameTok.Literal}, Args: args}, nil
}

// parseArgList parses an optional parenthesized, comma-separated argument
// list; an absent `(` means zero arguments.
func (p *Parser) parseArgList() ([]ast.Expression, error) {
	if !p.curIs(token.LPAREN) {
		return nil, nil
	}
	p.next()
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		for {
			arg, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.curIs(token.COMMA) {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}
