// Package parser implements a recursive-descent parser for the
// Pascal-subset language, grounded on the teacher's internal/parser/parser.go
// single-token-lookahead Parser and its expect/curIs/peekIs helpers.
// Expression precedence is a cascade of one parse function per level (see
// expressions.go), not a precedence map with prefix/infix function tables.
package parser

import (
	"fmt"

	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/errors"
	"github.com/pasc-lang/pasc/internal/lexer"
	"github.com/pasc-lang/pasc/internal/token"
)

// LOWEST is the entry precedence for a full expression. The seven-level
// table of spec.md §4.2 is realized as a cascade of parse functions in
// expressions.go rather than a single Pratt loop, since the `=`/`<>`/`<`/
// `<=`/`>`/`>=` level is explicitly non-associative — a single shared
// precedence-climbing loop would need a special case to reject chaining,
// while a dedicated parseCompare level simply never loops.
const LOWEST = 0

// Parser consumes tokens from a Lexer and builds an AST, halting with a
// SyntaxError on the first grammar violation, per spec.md §4.2. Per
// spec.md §7, a lexical error is fatal too: the lexer itself stays total
// (so `pasc lex` can report every bad character), and once parsing returns
// ParseProgram reports the first recorded lexer error as a LexicalError in
// place of the parse result or any syntax error.
type Parser struct {
	l      *lexer.Lexer
	source string
	file   string

	curToken  token.Token
	peekToken token.Token

	seenLexErrors int
}

// New creates a Parser over source, priming the two-token lookahead.
func New(l *lexer.Lexer, source, file string) *Parser {
	p := &Parser{l: l, source: source, file: file}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// lexicalError returns the first lexical error the lexer has accumulated
// since the last call, as a LexicalError, or nil if there is none.
func (p *Parser) lexicalError() error {
	errs := p.l.Errors()
	if len(errs) <= p.seenLexErrors {
		return nil
	}
	first := errs[p.seenLexErrors]
	p.seenLexErrors = len(errs)
	return errors.Lex(first.Pos, first.Message, p.source, p.file)
}

func (p *Parser) curIs(tt token.Type) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt token.Type) bool { return p.peekToken.Type == tt }

func (p *Parser) syntaxError(format string, args ...interface{}) error {
	return errors.Syn(p.curToken.Pos, fmt.Sprintf(format, args...), p.source, p.file)
}

// expect checks the current token, consumes it, and advances, or returns a
// SyntaxError describing what was expected.
func (p *Parser) expect(tt token.Type) (token.Token, error) {
	if !p.curIs(tt) {
		return token.Token{}, p.syntaxError("expected %s, got %s (%q)", tt, p.curToken.Type, p.curToken.Literal)
	}
	tok := p.curToken
	p.next()
	return tok, nil
}

// ParseProgram parses a complete `program IDENT ; block .`. A lexical
// error recorded anywhere along the way takes priority over any resulting
// syntax error, since by the time a bad token derails the grammar the
// lexer has typically already scanned (and recorded) it via the parser's
// one-token lookahead.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog, err := p.parseProgram()
	if lexErr := p.lexicalError(); lexErr != nil {
		return nil, lexErr
	}
	return prog, err
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	progTok, err := p.expect(token.PROGRAM)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DOT); err != nil {
		return nil, err
	}
	return &ast.Program{
		Tok:   progTok,
		Name:  &ast.Ident{Tok: nameTok, Value: nameTok.Literal},
		Block: block,
	}, nil
}

// parseBlock parses variable-declaration groups, then subprogram
// declarations, then a second optional round of variable-declaration
// groups, then a compound statement — per spec.md §4.2.
func (p *Parser) parseBlock() (*ast.Block, error) {
	block := &ast.Block{}

	for p.curIs(token.VAR) {
		decls, err := p.parseVarDeclGroup()
		if err != nil {
			return nil, err
		}
		block.VarDecls = append(block.VarDecls, decls...)
	}

	for p.curIs(token.PROCEDURE) || p.curIs(token.FUNCTION) {
		if p.curIs(token.PROCEDURE) {
			d, err := p.parseProcedureDecl()
			if err != nil {
				return nil, err
			}
			block.ProcedureDecls = append(block.ProcedureDecls, d)
		} else {
			d, err := p.parseFunctionDecl()
			if err != nil {
				return nil, err
			}
			block.FunctionDecls = append(block.FunctionDecls, d)
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
	}

	for p.curIs(token.VAR) {
		decls, err := p.parseVarDeclGroup()
		if err != nil {
			return nil, err
		}
		block.VarDecls = append(block.VarDecls, decls...)
	}

	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	block.Body = body
	return block, nil
}

// parseVarDeclGroup parses `var id,id,...:type; id,...:type; ...` and
// returns one *ast.VarDecl per semicolon-separated section.
func (p *Parser) parseVarDeclGroup() ([]*ast.VarDecl, error) {
	varTok, err := p.expect(token.VAR)
	if err != nil {
		return nil, err
	}
	var decls []*ast.VarDecl
	for {
		names, err := p.parseIdentList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		decls = append(decls, &ast.VarDecl{Tok: varTok, Names: names, Type: typ})
		if !p.curIs(token.IDENT) {
			break
		}
	}
	return decls, nil
}

func (p *Parser) parseIdentList() ([]*ast.Ident, error) {
	var names []*ast.Ident
	for {
		tok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		names = append(names, &ast.Ident{Tok: tok, Value: tok.Literal})
		if !p.curIs(token.COMMA) {
			break
		}
		p.next()
	}
	return names, nil
}

// parseTypeExpr parses a scalar type name or `array [ low..high ] of type`.
func (p *Parser) parseTypeExpr() (*ast.TypeExpr, error) {
	switch p.curToken.Type {
	case token.INTEGER, token.REALTYPE, token.BOOLEAN, token.STRINGTYPE:
		tok := p.curToken
		p.next()
		return &ast.TypeExpr{Tok: tok, Name: tok.Type.String()}, nil
	case token.ARRAY:
		arrTok := p.curToken
		p.next()
		if _, err := p.expect(token.LBRACK); err != nil {
			return nil, err
		}
		low, err := p.expectIntLiteral()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.DOTDOT); err != nil {
			return nil, err
		}
		high, err := p.expectIntLiteral()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACK); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.OF); err != nil {
			return nil, err
		}
		elem, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		return &ast.TypeExpr{Tok: arrTok, Name: "array", Low: low, High: high, Elem: elem}, nil
	}
	return nil, p.syntaxError("expected a type, got %s (%q)", p.curToken.Type, p.curToken.Literal)
}

func (p *Parser) expectIntLiteral() (int, error) {
	neg := false
	if p.curIs(token.MINUS) {
		neg = true
		p.next()
	}
	tok, err := p.expect(token.INT)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, ch := range tok.Literal {
		n = n*10 + int(ch-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

// parseParams parses a parenthesized, semicolon-separated list of
// comma-separated parameter sections, all by value.
func (p *Parser) parseParams() ([]*ast.Param, error) {
	if !p.curIs(token.LPAREN) {
		return nil, nil
	}
	p.next()
	var params []*ast.Param
	if !p.curIs(token.RPAREN) {
		for {
			names, err := p.parseIdentList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			typ, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				params = append(params, &ast.Param{Tok: n.Tok, Name: n, Type: typ})
			}
			if !p.curIs(token.SEMICOLON) {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseProcedureDecl() (*ast.ProcedureDecl, error) {
	tok, err := p.expect(token.PROCEDURE)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ProcedureDecl{
		Tok:    tok,
		Name:   &ast.Ident{Tok: nameTok, Value: nameTok.Literal},
		Params: params,
		Block:  block,
	}, nil
}

func (p *Parser) parseFunctionDecl() (*ast.FunctionDecl, error) {
	tok, err := p.expect(token.FUNCTION)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	retType, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		Tok:        tok,
		Name:       &ast.Ident{Tok: nameTok, Value: nameTok.Literal},
		Params:     params,
		ReturnType: retType,
		Block:      block,
	}, nil
}
