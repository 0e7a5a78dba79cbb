package ast

import "github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/lexer"

type NodeType string

const (
	NodeProgram         NodeType = "Program"
	NodeBlock           NodeType = "Block"
	NodeNumber          NodeType = "Number"
	NodeVariable        NodeType = "Variable"
	NodeScan            NodeType = "Scan"
	NodeText            NodeType = "Text"
	NodeNegate          NodeType = "Negate"
	NodeVarDecl         NodeType = "VarDecl"
	NodePrint           NodeType = "Print"
	NodeObjectCreation  NodeType = "ObjectCreation"
	NodeBinaryOp        NodeType = "BinaryOp"
	NodeAssign          NodeType = "Assign"
	NodeCondition       NodeType = "Condition"
	NodeArrayAccess     NodeType = "ArrayAccess"
	NodeArrayAssign     NodeType = "ArrayAssign"
	NodeClassDefinition NodeType = "ClassDefinition"
	NodeIf              NodeType = "If"
	NodeWhile           NodeType = "While"
	NodeArrayInit       NodeType = "ArrayInit"
	NodeFieldList       NodeType = "FieldList"
	NodeMethodList      NodeType = "MethodList"
	NodeMethod          NodeType = "Method"
	NodeMemberAccess    NodeType = "MemberAccess"
)

// Shape classifies a node by how many children it owns.
type Shape int

const (
	Leaf Shape = iota
	Unary
	Binary
	Nary
)

func (s Shape) String() string {
	switch s {
	case Leaf:
		return "leaf"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	default:
		return "n-ary"
	}
}

// Node is implemented by every tree node. Each node pins the token it was
// built from; the token doubles as the operator tag and source position.
type Node interface {
	NodeType() NodeType
	Token() lexer.Token
	Shape() Shape
	Children() []Node
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Statement
	expressionNode()
}

// Declaration is a statement that introduces a name (scalar or array).
type Declaration interface {
	Statement
	DeclaredName() string
	declarationNode()
}

type nodeImpl struct {
	Tok lexer.Token `json:"-"`
}

func (n nodeImpl) Token() lexer.Token { return n.Tok }

type statementMarker struct{}

func (statementMarker) statementNode() {}

type expressionMarker struct{ statementMarker }

func (expressionMarker) expressionNode() {}

// NumericType is the declared kind of a scalar slot or an array element.
type NumericType int

const (
	TypeInt NumericType = iota
	TypeReal
)

func (t NumericType) String() string {
	if t == TypeReal {
		return "real"
	}
	return "int"
}

// Access is a field qualifier. It is recorded and never enforced.
type Access string

const (
	AccessNone      Access = ""
	AccessPublic    Access = "public"
	AccessPrivate   Access = "private"
	AccessProtected Access = "protected"
)

type Operator string

const (
	OpAdd   Operator = "+"
	OpSub   Operator = "-"
	OpMul   Operator = "*"
	OpDiv   Operator = "/"
	OpPow   Operator = "^"
	OpLess  Operator = "<"
	OpMore  Operator = ">"
	OpIs    Operator = "is"
	OpIsNot Operator = "isnot"
)
