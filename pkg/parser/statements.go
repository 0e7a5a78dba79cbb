package parser

import (
	"strings"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/lexer"
)

func (p *parser) parseStatement() (ast.Statement, error) {
	var (
		stmt ast.Statement
		err  error
	)
	switch p.peek().Kind {
	case lexer.IDENTIFIER:
		stmt, err = p.parseIdentifierStatement()
	case lexer.INT, lexer.REAL:
		stmt, err = p.parseDeclaration(ast.AccessNone)
	case lexer.IF, lexer.WHILE:
		stmt, err = p.parseIfOrWhile()
	case lexer.PRINT, lexer.PRINTLN:
		stmt, err = p.parsePrint()
	case lexer.SCANF:
		stmt, err = p.parseScanf()
	case lexer.CLASS:
		stmt, err = p.parseClass()
	default:
		stmt, err = p.parseExpression()
	}
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIdentifierStatement decides what a leading identifier starts by the
// token that follows it.
func (p *parser) parseIdentifierStatement() (ast.Statement, error) {
	ident := p.next()
	name := ast.NewVariable(ident)
	switch p.peek().Kind {
	case lexer.ASSIGN:
		eq := p.next()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(eq, name, value), nil
	case lexer.DOT:
		access, err := p.parseMemberTail(name, true)
		if err != nil {
			return nil, err
		}
		if access.Call || access.Value != nil {
			return access, nil
		}
		return p.continueExpression(access)
	case lexer.LBRACKET:
		access, err := p.parseIndexTail(name)
		if err != nil {
			return nil, err
		}
		if p.has(lexer.ASSIGN) {
			eq := p.next()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return ast.NewArrayAssign(eq, access, value), nil
		}
		return p.continueExpression(access)
	case lexer.IDENTIFIER:
		return ast.NewObjectCreation(ident, ast.NewVariable(p.next())), nil
	}
	return p.continueExpression(name)
}

func (p *parser) parseDeclaration(access ast.Access) (ast.Declaration, error) {
	typeTok := p.next()
	typ := ast.TypeInt
	if typeTok.Kind == lexer.REAL {
		typ = ast.TypeReal
	}
	if p.has(lexer.LBRACKET) {
		p.next()
		size, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return nil, err
		}
		nameTok, err := p.expect(lexer.IDENTIFIER, "array name")
		if err != nil {
			return nil, err
		}
		decl := ast.NewArrayInit(typeTok, typ, size, ast.NewVariable(nameTok))
		decl.Access = access
		return decl, nil
	}
	nameTok, err := p.expect(lexer.IDENTIFIER, "variable name")
	if err != nil {
		return nil, err
	}
	decl := ast.NewVarDecl(typeTok, typ, ast.NewVariable(nameTok))
	decl.Access = access
	return decl, nil
}

func (p *parser) parseIfOrWhile() (ast.Statement, error) {
	kw := p.next()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if kw.Kind == lexer.IF {
		body, err := p.parseBlock(kw, lexer.ENDIF)
		if err != nil {
			return nil, err
		}
		return ast.NewIf(kw, cond, body), nil
	}
	body, err := p.parseBlock(kw, lexer.ENDWHILE)
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(kw, cond, body), nil
}

// parseCondition reads "( e RelOp e ) ->" and the newline that opens the body.
func (p *parser) parseCondition() (*ast.Condition, error) {
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.has(lexer.LESS, lexer.GREATER, lexer.IS, lexer.ISNOT) {
		return nil, p.unexpected("relational operator ('<', '>', 'is', 'isnot')")
	}
	op := p.next()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW, "'->'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.NEWLINE, "end of line"); err != nil {
		return nil, err
	}
	return ast.NewCondition(op, left, right), nil
}

// parsePrint normalises literal text to single-spaced words.
func (p *parser) parsePrint() (ast.Statement, error) {
	kw := p.next()
	if p.has(lexer.TEXT) {
		text := p.next()
		return ast.NewPrint(kw, ast.NewText(text, strings.Join(strings.Fields(text.Lexeme), " "))), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewPrint(kw, value), nil
}

func (p *parser) parseScanf() (ast.Statement, error) {
	p.next()
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENTIFIER, "variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return ast.NewScan(name), nil
}
