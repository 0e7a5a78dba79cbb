package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/lexer"
)

// ErrParse is wrapped by every *ParseError.
var ErrParse = errors.New("parse error")

// ParseError reports the first token the grammar could not accept.
type ParseError struct {
	Token    lexer.Token
	Expected string
}

func (e *ParseError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("parse error at %s: unexpected token %s", e.Token.Pos(), e.Token)
	}
	return fmt.Sprintf("parse error at %s: unexpected token %s, expected %s", e.Token.Pos(), e.Token, e.Expected)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// Options configure parsing.
type Options struct {
	DisableComments bool
}

// Parse reads a whole program from r. No partial tree is returned on error.
func Parse(r io.Reader, opts Options) (*ast.Program, error) {
	toks, err := lexer.Tokenize(r, lexer.Options{DisableComments: opts.DisableComments})
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

// ParseString parses an in-memory program with default options.
func ParseString(src string) (*ast.Program, error) {
	return Parse(strings.NewReader(src), Options{})
}

// ParseFile parses the program stored at path.
func ParseFile(path string, opts Options) (*ast.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts)
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *parser) next() lexer.Token {
	tok := p.toks[p.pos]
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) has(kinds ...lexer.Kind) bool {
	k := p.peek().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (p *parser) expect(kind lexer.Kind, expected string) (lexer.Token, error) {
	if !p.has(kind) {
		return lexer.Token{}, p.unexpected(expected)
	}
	return p.next(), nil
}

func (p *parser) unexpected(expected string) error {
	return &ParseError{Token: p.peek(), Expected: expected}
}

func (p *parser) skipNewlines() {
	for p.has(lexer.NEWLINE) {
		p.next()
	}
}

// endStatement consumes the line terminator. The last statement may end at EOF.
func (p *parser) endStatement() error {
	switch p.peek().Kind {
	case lexer.NEWLINE:
		p.next()
		return nil
	case lexer.EOF:
		return nil
	}
	return p.unexpected("end of line")
}

func (p *parser) parseProgram() (*ast.Program, error) {
	var stmts []ast.Statement
	for {
		p.skipNewlines()
		if p.has(lexer.EOF) {
			return ast.NewProgram(stmts), nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

// parseBlock reads statements until the closing keyword and consumes it.
func (p *parser) parseBlock(open lexer.Token, end lexer.Kind) (*ast.Block, error) {
	var stmts []ast.Statement
	for {
		p.skipNewlines()
		if p.has(end) {
			p.next()
			return ast.NewBlock(open, stmts), nil
		}
		if p.has(lexer.EOF) {
			return nil, p.unexpected(end.String())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}
