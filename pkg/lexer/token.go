package lexer

import "fmt"

// Kind is the lexical category of a token.
type Kind int

const (
	EOF Kind = iota
	NEWLINE
	IDENTIFIER
	INTLIT
	REALLIT
	TEXT

	PLUS
	MINUS
	STAR
	SLASH
	CARET
	ASSIGN
	LESS
	GREATER
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	DOT
	COMMA
	ARROW

	keywordStart
	PRINT
	PRINTLN
	SCANF
	IF
	ENDIF
	WHILE
	ENDWHILE
	CLASS
	ENDCLASS
	DERIVED
	DEF
	ENDDEF
	INT
	REAL
	IS
	ISNOT
	PUBLIC
	PRIVATE
	PROTECTED
	keywordEnd
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	NEWLINE:    "NEWLINE",
	IDENTIFIER: "IDENTIFIER",
	INTLIT:     "INTLIT",
	REALLIT:    "REALLIT",
	TEXT:       "TEXT",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	CARET:      "^",
	ASSIGN:     "=",
	LESS:       "<",
	GREATER:    ">",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACKET:   "[",
	RBRACKET:   "]",
	DOT:        ".",
	COMMA:      ",",
	ARROW:      "->",
	PRINT:      "print",
	PRINTLN:    "println",
	SCANF:      "scanf",
	IF:         "if",
	ENDIF:      "endif",
	WHILE:      "while",
	ENDWHILE:   "endwhile",
	CLASS:      "class",
	ENDCLASS:   "endclass",
	DERIVED:    "derived",
	DEF:        "def",
	ENDDEF:     "enddef",
	INT:        "int",
	REAL:       "real",
	IS:         "is",
	ISNOT:      "isnot",
	PUBLIC:     "public",
	PRIVATE:    "private",
	PROTECTED:  "protected",
}

var keywords = func() map[string]Kind {
	out := make(map[string]Kind, int(keywordEnd-keywordStart))
	for k := keywordStart + 1; k < keywordEnd; k++ {
		out[kindNames[k]] = k
	}
	return out
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// Lookup maps an identifier-shaped word to its keyword kind, or IDENTIFIER.
func Lookup(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return IDENTIFIER
}

// Keywords lists the reserved words in declaration order.
func Keywords() []string {
	out := make([]string, 0, int(keywordEnd-keywordStart)-1)
	for k := keywordStart + 1; k < keywordEnd; k++ {
		out = append(out, kindNames[k])
	}
	return out
}

// Token is one lexeme together with its category and source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Col    int
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case NEWLINE:
		return "end of line"
	case TEXT:
		return fmt.Sprintf("%q", t.Lexeme)
	}
	return fmt.Sprintf("'%s'", t.Lexeme)
}

// Pos formats the token position as line:col.
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Col)
}
