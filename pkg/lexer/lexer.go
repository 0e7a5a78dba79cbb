package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrLex is returned (wrapped) for malformed input.
var ErrLex = errors.New("lex error")

// Options tune the scanner.
type Options struct {
	// DisableComments treats '#' as an ordinary (and therefore invalid) character.
	DisableComments bool
}

// Lexer turns source text into a stream of tokens.
type Lexer struct {
	r    *bufio.Reader
	opts Options

	ch        rune
	line, col int
	nextLine  int
	nextCol   int
	eof       bool
	err       error
}

// New creates a lexer reading from r.
func New(r io.Reader, opts Options) *Lexer {
	l := &Lexer{r: bufio.NewReader(r), opts: opts, nextLine: 1, nextCol: 1}
	l.read()
	if l.ch == 0xFEFF {
		// A byte order mark does not occupy a column.
		l.nextCol = 1
		l.read()
	}
	return l
}

// Tokenize scans all of r and returns the tokens, terminated by EOF.
func Tokenize(r io.Reader, opts Options) ([]Token, error) {
	l := New(r, opts)
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == EOF {
			return out, nil
		}
	}
}

// TokenizeString is Tokenize over an in-memory source.
func TokenizeString(src string) ([]Token, error) {
	return Tokenize(strings.NewReader(src), Options{})
}

// Next returns the next token. After EOF it keeps returning EOF.
func (l *Lexer) Next() (Token, error) {
	l.skipBlanks()
	if l.err != nil {
		return Token{}, l.err
	}
	line, col := l.line, l.col
	if l.eof {
		return Token{Kind: EOF, Line: line, Col: col}, nil
	}
	emit := func(k Kind, lit string) (Token, error) {
		return Token{Kind: k, Lexeme: lit, Line: line, Col: col}, nil
	}

	switch ch := l.ch; ch {
	case '\n':
		l.read()
		return emit(NEWLINE, "\n")
	case '+', '*', '/', '^', '=', '<', '>', '(', ')', '[', ']', ',':
		l.read()
		return emit(singles[ch], string(ch))
	case '-':
		l.read()
		if l.ch == '>' && !l.eof {
			l.read()
			return emit(ARROW, "->")
		}
		return emit(MINUS, "-")
	case '.':
		if isDigit(l.peek()) {
			return emit(REALLIT, l.readNumber())
		}
		l.read()
		return emit(DOT, ".")
	case '"':
		text, err := l.readText(line, col)
		if err != nil {
			return Token{}, err
		}
		return emit(TEXT, text)
	}

	switch {
	case isIdentStart(l.ch):
		word := l.readWhile(isIdentPart)
		return emit(Lookup(word), word)
	case isDigit(l.ch):
		lit := l.readNumber()
		if strings.Contains(lit, ".") {
			return emit(REALLIT, lit)
		}
		return emit(INTLIT, lit)
	}
	return Token{}, fmt.Errorf("%w at %d:%d: unexpected character %q", ErrLex, line, col, l.ch)
}

var singles = map[rune]Kind{
	'+': PLUS, '*': STAR, '/': SLASH, '^': CARET, '=': ASSIGN,
	'<': LESS, '>': GREATER, '(': LPAREN, ')': RPAREN,
	'[': LBRACKET, ']': RBRACKET, ',': COMMA,
}

func (l *Lexer) read() {
	l.line, l.col = l.nextLine, l.nextCol
	ch, _, err := l.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = fmt.Errorf("%w at %d:%d: %v", ErrLex, l.line, l.col, err)
		}
		l.eof = true
		l.ch = 0
		return
	}
	l.ch = ch
	if ch == '\n' {
		l.nextLine++
		l.nextCol = 1
	} else {
		l.nextCol++
	}
}

func (l *Lexer) peek() rune {
	ch, _, err := l.r.ReadRune()
	if err != nil {
		return 0
	}
	_ = l.r.UnreadRune()
	return ch
}

// skipBlanks skips horizontal whitespace and comments; newlines are tokens.
func (l *Lexer) skipBlanks() {
	for !l.eof {
		switch {
		case l.ch != '\n' && unicode.IsSpace(l.ch):
			l.read()
		case l.ch == '#' && !l.opts.DisableComments:
			for !l.eof && l.ch != '\n' {
				l.read()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readWhile(ok func(rune) bool) string {
	var b strings.Builder
	for !l.eof && ok(l.ch) {
		b.WriteRune(l.ch)
		l.read()
	}
	return b.String()
}

// readNumber reads digits with at most one decimal point.
func (l *Lexer) readNumber() string {
	var b strings.Builder
	b.WriteString(l.readWhile(isDigit))
	if !l.eof && l.ch == '.' {
		b.WriteRune('.')
		l.read()
		b.WriteString(l.readWhile(isDigit))
	}
	return b.String()
}

func (l *Lexer) readText(line, col int) (string, error) {
	l.read() // opening quote
	var b strings.Builder
	for {
		if l.eof || l.ch == '\n' {
			return "", fmt.Errorf("%w at %d:%d: unterminated text literal", ErrLex, line, col)
		}
		if l.ch == '"' {
			l.read()
			return b.String(), nil
		}
		b.WriteRune(l.ch)
		l.read()
	}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
