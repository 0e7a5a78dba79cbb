package parser

import (
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/lexer"
)

var accessKinds = map[lexer.Kind]ast.Access{
	lexer.PUBLIC:    ast.AccessPublic,
	lexer.PRIVATE:   ast.AccessPrivate,
	lexer.PROTECTED: ast.AccessProtected,
}

// parseClass reads a class header, its field declarations, then its methods.
func (p *parser) parseClass() (ast.Statement, error) {
	kw := p.next()
	nameTok, err := p.expect(lexer.IDENTIFIER, "class name")
	if err != nil {
		return nil, err
	}
	var parent string
	if p.has(lexer.DERIVED) {
		p.next()
		parentTok, err := p.expect(lexer.IDENTIFIER, "parent class name")
		if err != nil {
			return nil, err
		}
		parent = parentTok.Lexeme
	}
	if _, err := p.expect(lexer.ARROW, "'->'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.NEWLINE, "end of line"); err != nil {
		return nil, err
	}

	var fields []ast.Declaration
	p.skipNewlines()
	for {
		access, ok := accessKinds[p.peek().Kind]
		if !ok {
			break
		}
		p.next()
		if !p.has(lexer.INT, lexer.REAL) {
			return nil, p.unexpected("field type ('int' or 'real')")
		}
		decl, err := p.parseDeclaration(access)
		if err != nil {
			return nil, err
		}
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		fields = append(fields, decl)
		p.skipNewlines()
	}

	var methods []*ast.Method
	seen := make(map[string]bool)
	for p.has(lexer.DEF) {
		if _, dup := seen[p.toks[p.pos+1].Lexeme]; dup {
			p.next()
			return nil, &ParseError{Token: p.peek(), Expected: "unique method name"}
		}
		method, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		seen[method.Name] = true
		methods = append(methods, method)
		p.skipNewlines()
	}
	if _, err := p.expect(lexer.ENDCLASS, "field, method or 'endclass'"); err != nil {
		return nil, err
	}
	return ast.NewClassDefinition(
		nameTok,
		parent,
		ast.NewFieldList(kw, fields),
		ast.NewMethodList(kw, methods),
	), nil
}

func (p *parser) parseMethod() (*ast.Method, error) {
	p.next()
	nameTok, err := p.expect(lexer.IDENTIFIER, "method name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.has(lexer.RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(lexer.COMMA, "',' or ')'"); err != nil {
				return nil, err
			}
		}
		if !p.has(lexer.INT, lexer.REAL) {
			return nil, p.unexpected("parameter type ('int' or 'real')")
		}
		typ := ast.TypeInt
		if p.next().Kind == lexer.REAL {
			typ = ast.TypeReal
		}
		paramTok, err := p.expect(lexer.IDENTIFIER, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Type: typ, Name: paramTok.Lexeme})
	}
	p.next()
	if _, err := p.expect(lexer.ARROW, "'->'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.NEWLINE, "end of line"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(nameTok, lexer.ENDDEF)
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return ast.NewMethod(nameTok, params, body), nil
}
