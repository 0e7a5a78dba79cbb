package parser

import (
	"strconv"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/lexer"
)

// Expression ::= Term (('+'|'-') Term)*
func (p *parser) parseExpression() (ast.Expression, error) {
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return p.parseExpressionRest(term)
}

func (p *parser) parseExpressionRest(left ast.Expression) (ast.Expression, error) {
	for p.has(lexer.PLUS, lexer.MINUS) {
		op := p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op, left, right)
	}
	return left, nil
}

// Term ::= Factor (('*'|'/') Factor)*
func (p *parser) parseTerm() (ast.Expression, error) {
	factor, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return p.parseTermRest(factor)
}

func (p *parser) parseTermRest(left ast.Expression) (ast.Expression, error) {
	for p.has(lexer.STAR, lexer.SLASH) {
		op := p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op, left, right)
	}
	return left, nil
}

// Factor ::= Base ('^' Factor)?   (right-associative)
func (p *parser) parseFactor() (ast.Expression, error) {
	base, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	return p.parseFactorRest(base)
}

func (p *parser) parseFactorRest(base ast.Expression) (ast.Expression, error) {
	if !p.has(lexer.CARET) {
		return base, nil
	}
	op := p.next()
	exponent, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryOp(op, base, exponent), nil
}

// continueExpression resumes the precedence chain after a statement has
// already consumed the leading operand.
func (p *parser) continueExpression(operand ast.Expression) (ast.Expression, error) {
	factor, err := p.parseFactorRest(operand)
	if err != nil {
		return nil, err
	}
	term, err := p.parseTermRest(factor)
	if err != nil {
		return nil, err
	}
	return p.parseExpressionRest(term)
}

// Base ::= '(' Expression ')' | '-' Expression | Number
func (p *parser) parseBase() (ast.Expression, error) {
	switch p.peek().Kind {
	case lexer.LPAREN:
		p.next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.MINUS:
		op := p.next()
		operand, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewNegate(op, operand), nil
	}
	return p.parseNumber()
}

// Number ::= IntLit | RealLit | Identifier ['[' Expression ']' | '.' Identifier]
func (p *parser) parseNumber() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.INTLIT:
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.unexpected("integer literal within 64-bit range")
		}
		p.next()
		return ast.NewIntNumber(tok, v), nil
	case lexer.REALLIT:
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.unexpected("real literal")
		}
		p.next()
		return ast.NewRealNumber(tok, v), nil
	case lexer.IDENTIFIER:
		name := ast.NewVariable(p.next())
		switch p.peek().Kind {
		case lexer.LBRACKET:
			return p.parseIndexTail(name)
		case lexer.DOT:
			return p.parseMemberTail(name, false)
		}
		return name, nil
	}
	return nil, p.unexpected("expression")
}

func (p *parser) parseIndexTail(array *ast.Variable) (*ast.ArrayAccess, error) {
	open := p.next()
	index, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return ast.NewArrayAccess(open, array, index), nil
}

// parseMemberTail reads ".member" followed by an optional argument list, or,
// when writes are allowed, "= value".
func (p *parser) parseMemberTail(object *ast.Variable, allowWrite bool) (*ast.MemberAccess, error) {
	dot := p.next()
	memberTok, err := p.expect(lexer.IDENTIFIER, "member name")
	if err != nil {
		return nil, err
	}
	access := ast.NewMemberAccess(dot, object, ast.NewVariable(memberTok))
	switch {
	case p.has(lexer.LPAREN):
		p.next()
		access.Call = true
		for !p.has(lexer.RPAREN) {
			if len(access.Args) > 0 {
				if _, err := p.expect(lexer.COMMA, "',' or ')'"); err != nil {
					return nil, err
				}
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			access.Args = append(access.Args, arg)
		}
		p.next()
	case allowWrite && p.has(lexer.ASSIGN):
		p.next()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		access.Value = value
	}
	return access, nil
}
