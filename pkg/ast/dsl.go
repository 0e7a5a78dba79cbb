package ast

import (
	"strconv"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/lexer"
)

// Builders for constructing trees by hand, mostly in tests. Synthesised
// tokens carry no position.

func tok(kind lexer.Kind, lexeme string) lexer.Token {
	return lexer.Token{Kind: kind, Lexeme: lexeme}
}

func ID(name string) *Variable {
	return NewVariable(tok(lexer.IDENTIFIER, name))
}

func Int(value int64) *Number {
	return NewIntNumber(tok(lexer.INTLIT, strconv.FormatInt(value, 10)), value)
}

func Flt(value float64) *Number {
	return NewRealNumber(tok(lexer.REALLIT, strconv.FormatFloat(value, 'f', -1, 64)), value)
}

func Bin(op Operator, left, right Expression) *BinaryOp {
	return NewBinaryOp(tok(opKind(op), string(op)), left, right)
}

func Neg(operand Expression) *Negate {
	return NewNegate(tok(lexer.MINUS, "-"), operand)
}

func Cond(op Operator, left, right Expression) *Condition {
	return NewCondition(tok(opKind(op), string(op)), left, right)
}

func opKind(op Operator) lexer.Kind {
	switch op {
	case OpAdd:
		return lexer.PLUS
	case OpSub:
		return lexer.MINUS
	case OpMul:
		return lexer.STAR
	case OpDiv:
		return lexer.SLASH
	case OpPow:
		return lexer.CARET
	case OpLess:
		return lexer.LESS
	case OpMore:
		return lexer.GREATER
	case OpIs:
		return lexer.IS
	case OpIsNot:
		return lexer.ISNOT
	}
	return lexer.IDENTIFIER
}

func typeToken(t NumericType) lexer.Token {
	if t == TypeReal {
		return tok(lexer.REAL, "real")
	}
	return tok(lexer.INT, "int")
}

// Statement helpers.

func Prog(stmts ...Statement) *Program {
	return NewProgram(stmts)
}

func Blk(stmts ...Statement) *Block {
	return NewBlock(lexer.Token{}, stmts)
}

func Decl(t NumericType, name string) *VarDecl {
	return NewVarDecl(typeToken(t), t, ID(name))
}

func Arr(t NumericType, size Expression, name string) *ArrayInit {
	return NewArrayInit(typeToken(t), t, size, ID(name))
}

func Set(name string, value Expression) *Assign {
	return NewAssign(tok(lexer.ASSIGN, "="), ID(name), value)
}

func Idx(name string, index Expression) *ArrayAccess {
	return NewArrayAccess(tok(lexer.LBRACKET, "["), ID(name), index)
}

func SetIdx(name string, index, value Expression) *ArrayAssign {
	return NewArrayAssign(tok(lexer.ASSIGN, "="), Idx(name, index), value)
}

func IfStmt(cond *Condition, body ...Statement) *If {
	return NewIf(tok(lexer.IF, "if"), cond, Blk(body...))
}

func WhileStmt(cond *Condition, body ...Statement) *While {
	return NewWhile(tok(lexer.WHILE, "while"), cond, Blk(body...))
}

func PrintExpr(value Expression) *Print {
	return NewPrint(tok(lexer.PRINT, "print"), value)
}

func PrintText(text string) *Print {
	return NewPrint(tok(lexer.PRINT, "print"), NewText(tok(lexer.TEXT, text), text))
}

func PrintlnText(text string) *Print {
	return NewPrint(tok(lexer.PRINTLN, "println"), NewText(tok(lexer.TEXT, text), text))
}

func ScanInto(name string) *Scan {
	return NewScan(tok(lexer.IDENTIFIER, name))
}

// Class helpers.

func Field(access Access, decl Declaration) Declaration {
	switch d := decl.(type) {
	case *VarDecl:
		d.Access = access
	case *ArrayInit:
		d.Access = access
	}
	return decl
}

func Def(name string, params []Param, body ...Statement) *Method {
	return NewMethod(tok(lexer.IDENTIFIER, name), params, Blk(body...))
}

func Class(name, parent string, fields []Declaration, methods ...*Method) *ClassDefinition {
	return NewClassDefinition(
		tok(lexer.IDENTIFIER, name),
		parent,
		NewFieldList(lexer.Token{}, fields),
		NewMethodList(lexer.Token{}, methods),
	)
}

func New(class, object string) *ObjectCreation {
	return NewObjectCreation(tok(lexer.IDENTIFIER, class), ID(object))
}

func Get(object, member string) *MemberAccess {
	return NewMemberAccess(tok(lexer.DOT, "."), ID(object), ID(member))
}

func Put(object, member string, value Expression) *MemberAccess {
	m := Get(object, member)
	m.Value = value
	return m
}

func Invoke(object, method string, args ...Expression) *MemberAccess {
	m := Get(object, method)
	m.Call = true
	m.Args = args
	return m
}
