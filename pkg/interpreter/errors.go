package interpreter

import (
	"errors"
	"fmt"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/lexer"
)

var (
	ErrMethodNotFound = errors.New("method not found")
	ErrNotAnObject    = errors.New("not an object")
	ErrNotAClass      = errors.New("not a class")
	ErrNotAnArray     = errors.New("not an array")
	ErrDivisionByZero = errors.New("integer division by zero")
	ErrInput          = errors.New("input error")
	ErrArity          = errors.New("wrong number of arguments")
	ErrArraySize      = errors.New("invalid array size")
	ErrCallDepth      = errors.New("call depth exceeded")
)

// RuntimeError is a fatal evaluation failure at a node.
type RuntimeError struct {
	Token   lexer.Token
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	if e.Token.Line == 0 {
		return "runtime error: " + e.Message
	}
	return fmt.Sprintf("runtime error at %s: %s", e.Token.Pos(), e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func runtimeError(tok lexer.Token, err error, format string, args ...any) error {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...), Err: err}
}

// wrap attaches a position to err unless it already carries one.
func wrap(tok lexer.Token, err error) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return err
	}
	return &RuntimeError{Token: tok, Message: err.Error(), Err: err}
}

// DiagnosticLevel is the severity of a soft diagnostic.
type DiagnosticLevel string

const (
	LevelWarning DiagnosticLevel = "warning"
	LevelError   DiagnosticLevel = "error"
)

const CodeArrayKindMismatch = "array_kind_mismatch"

// Diagnostic is a non-fatal problem; execution continues after it.
type Diagnostic struct {
	Level   DiagnosticLevel
	Code    string
	Message string
	Line    int
	Col     int
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s at %d:%d: %s", d.Level, d.Line, d.Col, d.Message)
}
