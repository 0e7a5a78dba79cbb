package ast

import "github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/lexer"

// Program is the root: the top-level statement sequence.
type Program struct {
	nodeImpl
	statementMarker
	Statements []Statement
}

func (*Program) NodeType() NodeType { return NodeProgram }
func (*Program) Shape() Shape       { return Nary }
func (p *Program) Children() []Node { return statementNodes(p.Statements) }

func NewProgram(stmts []Statement) *Program {
	return &Program{nodeImpl: nodeImpl{Tok: lexer.Token{Kind: lexer.EOF, Line: 1, Col: 1}}, Statements: stmts}
}

// Block is a statement sequence inside if/while/def.
type Block struct {
	nodeImpl
	statementMarker
	Statements []Statement
}

func (*Block) NodeType() NodeType { return NodeBlock }
func (*Block) Shape() Shape       { return Nary }
func (b *Block) Children() []Node { return statementNodes(b.Statements) }

func NewBlock(tok lexer.Token, stmts []Statement) *Block {
	return &Block{nodeImpl: nodeImpl{Tok: tok}, Statements: stmts}
}

func statementNodes(stmts []Statement) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

//-----------------------------------------------------------------------------
// Leaves
//-----------------------------------------------------------------------------

// Number is a literal; its value is fixed when the node is built.
type Number struct {
	nodeImpl
	expressionMarker
	Type NumericType
	Int  int64
	Real float64
}

func (*Number) NodeType() NodeType { return NodeNumber }
func (*Number) Shape() Shape       { return Leaf }
func (*Number) Children() []Node   { return nil }

func NewIntNumber(tok lexer.Token, v int64) *Number {
	return &Number{nodeImpl: nodeImpl{Tok: tok}, Type: TypeInt, Int: v}
}

func NewRealNumber(tok lexer.Token, v float64) *Number {
	return &Number{nodeImpl: nodeImpl{Tok: tok}, Type: TypeReal, Real: v}
}

type Variable struct {
	nodeImpl
	expressionMarker
	Name string
}

func (*Variable) NodeType() NodeType { return NodeVariable }
func (*Variable) Shape() Shape       { return Leaf }
func (*Variable) Children() []Node   { return nil }

func NewVariable(tok lexer.Token) *Variable {
	return &Variable{nodeImpl: nodeImpl{Tok: tok}, Name: tok.Lexeme}
}

// Scan reads one console token into the named slot.
type Scan struct {
	nodeImpl
	statementMarker
	Name string
}

func (*Scan) NodeType() NodeType { return NodeScan }
func (*Scan) Shape() Shape       { return Leaf }
func (*Scan) Children() []Node   { return nil }

func NewScan(tok lexer.Token) *Scan {
	return &Scan{nodeImpl: nodeImpl{Tok: tok}, Name: tok.Lexeme}
}

// Text is captured literal text for print.
type Text struct {
	nodeImpl
	Value string
}

func (*Text) NodeType() NodeType { return NodeText }
func (*Text) Shape() Shape       { return Leaf }
func (*Text) Children() []Node   { return nil }

func NewText(tok lexer.Token, value string) *Text {
	return &Text{nodeImpl: nodeImpl{Tok: tok}, Value: value}
}

//-----------------------------------------------------------------------------
// Unary
//-----------------------------------------------------------------------------

type Negate struct {
	nodeImpl
	expressionMarker
	Operand Expression
}

func (*Negate) NodeType() NodeType { return NodeNegate }
func (*Negate) Shape() Shape       { return Unary }
func (n *Negate) Children() []Node { return []Node{n.Operand} }

func NewNegate(tok lexer.Token, operand Expression) *Negate {
	return &Negate{nodeImpl: nodeImpl{Tok: tok}, Operand: operand}
}

// VarDecl declares a scalar. Access is set only for class fields.
type VarDecl struct {
	nodeImpl
	statementMarker
	Type   NumericType
	Name   *Variable
	Access Access
}

func (*VarDecl) NodeType() NodeType     { return NodeVarDecl }
func (*VarDecl) Shape() Shape           { return Unary }
func (d *VarDecl) Children() []Node     { return []Node{d.Name} }
func (d *VarDecl) DeclaredName() string { return d.Name.Name }
func (*VarDecl) declarationNode()       {}

func NewVarDecl(tok lexer.Token, typ NumericType, name *Variable) *VarDecl {
	return &VarDecl{nodeImpl: nodeImpl{Tok: tok}, Type: typ, Name: name}
}

// Print writes a value followed by a newline, or literal text.
type Print struct {
	nodeImpl
	statementMarker
	Value   Node
	Newline bool
}

func (*Print) NodeType() NodeType { return NodePrint }
func (*Print) Shape() Shape       { return Unary }
func (p *Print) Children() []Node { return []Node{p.Value} }

func NewPrint(tok lexer.Token, value Node) *Print {
	return &Print{nodeImpl: nodeImpl{Tok: tok}, Value: value, Newline: tok.Kind == lexer.PRINTLN}
}

// ObjectCreation instantiates Class under the name Object. Its token is the
// class name.
type ObjectCreation struct {
	nodeImpl
	statementMarker
	Class  string
	Object *Variable
}

func (*ObjectCreation) NodeType() NodeType { return NodeObjectCreation }
func (*ObjectCreation) Shape() Shape       { return Unary }
func (o *ObjectCreation) Children() []Node { return []Node{o.Object} }

func NewObjectCreation(classTok lexer.Token, object *Variable) *ObjectCreation {
	return &ObjectCreation{nodeImpl: nodeImpl{Tok: classTok}, Class: classTok.Lexeme, Object: object}
}

//-----------------------------------------------------------------------------
// Binary
//-----------------------------------------------------------------------------

type BinaryOp struct {
	nodeImpl
	expressionMarker
	Op    Operator
	Left  Expression
	Right Expression
}

func (*BinaryOp) NodeType() NodeType { return NodeBinaryOp }
func (*BinaryOp) Shape() Shape       { return Binary }
func (b *BinaryOp) Children() []Node { return []Node{b.Left, b.Right} }

func NewBinaryOp(tok lexer.Token, left, right Expression) *BinaryOp {
	return &BinaryOp{nodeImpl: nodeImpl{Tok: tok}, Op: Operator(tok.Lexeme), Left: left, Right: right}
}

type Assign struct {
	nodeImpl
	statementMarker
	Target *Variable
	Value  Expression
}

func (*Assign) NodeType() NodeType { return NodeAssign }
func (*Assign) Shape() Shape       { return Binary }
func (a *Assign) Children() []Node { return []Node{a.Target, a.Value} }

func NewAssign(tok lexer.Token, target *Variable, value Expression) *Assign {
	return &Assign{nodeImpl: nodeImpl{Tok: tok}, Target: target, Value: value}
}

// Condition yields Integer 1 or 0.
type Condition struct {
	nodeImpl
	Op    Operator
	Left  Expression
	Right Expression
}

func (*Condition) NodeType() NodeType { return NodeCondition }
func (*Condition) Shape() Shape       { return Binary }
func (c *Condition) Children() []Node { return []Node{c.Left, c.Right} }

func NewCondition(tok lexer.Token, left, right Expression) *Condition {
	return &Condition{nodeImpl: nodeImpl{Tok: tok}, Op: Operator(tok.Lexeme), Left: left, Right: right}
}

type ArrayAccess struct {
	nodeImpl
	expressionMarker
	Array *Variable
	Index Expression
}

func (*ArrayAccess) NodeType() NodeType { return NodeArrayAccess }
func (*ArrayAccess) Shape() Shape       { return Binary }
func (a *ArrayAccess) Children() []Node { return []Node{a.Array, a.Index} }

func NewArrayAccess(tok lexer.Token, array *Variable, index Expression) *ArrayAccess {
	return &ArrayAccess{nodeImpl: nodeImpl{Tok: tok}, Array: array, Index: index}
}

// ArrayAssign stores Value at Array[Index]. The value is evaluated before
// the index.
type ArrayAssign struct {
	nodeImpl
	statementMarker
	Target *ArrayAccess
	Value  Expression
}

func (*ArrayAssign) NodeType() NodeType { return NodeArrayAssign }
func (*ArrayAssign) Shape() Shape       { return Binary }
func (a *ArrayAssign) Children() []Node { return []Node{a.Target, a.Value} }

func NewArrayAssign(tok lexer.Token, target *ArrayAccess, value Expression) *ArrayAssign {
	return &ArrayAssign{nodeImpl: nodeImpl{Tok: tok}, Target: target, Value: value}
}

type ClassDefinition struct {
	nodeImpl
	statementMarker
	Name    string
	Parent  string
	Derived bool
	Fields  *FieldList
	Methods *MethodList
}

func (*ClassDefinition) NodeType() NodeType { return NodeClassDefinition }
func (*ClassDefinition) Shape() Shape       { return Binary }
func (c *ClassDefinition) Children() []Node { return []Node{c.Fields, c.Methods} }

func NewClassDefinition(nameTok lexer.Token, parent string, fields *FieldList, methods *MethodList) *ClassDefinition {
	return &ClassDefinition{
		nodeImpl: nodeImpl{Tok: nameTok},
		Name:     nameTok.Lexeme,
		Parent:   parent,
		Derived:  parent != "",
		Fields:   fields,
		Methods:  methods,
	}
}

// Method finds a method declared directly on this class.
func (c *ClassDefinition) Method(name string) (*Method, bool) {
	if c.Methods == nil {
		return nil, false
	}
	for _, m := range c.Methods.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

type If struct {
	nodeImpl
	statementMarker
	Cond *Condition
	Body *Block
}

func (*If) NodeType() NodeType { return NodeIf }
func (*If) Shape() Shape       { return Binary }
func (n *If) Children() []Node { return []Node{n.Cond, n.Body} }

func NewIf(tok lexer.Token, cond *Condition, body *Block) *If {
	return &If{nodeImpl: nodeImpl{Tok: tok}, Cond: cond, Body: body}
}

type While struct {
	nodeImpl
	statementMarker
	Cond *Condition
	Body *Block
}

func (*While) NodeType() NodeType { return NodeWhile }
func (*While) Shape() Shape       { return Binary }
func (n *While) Children() []Node { return []Node{n.Cond, n.Body} }

func NewWhile(tok lexer.Token, cond *Condition, body *Block) *While {
	return &While{nodeImpl: nodeImpl{Tok: tok}, Cond: cond, Body: body}
}

//-----------------------------------------------------------------------------
// N-ary
//-----------------------------------------------------------------------------

// ArrayInit declares a zero-filled array of Size elements.
type ArrayInit struct {
	nodeImpl
	statementMarker
	Type   NumericType
	Size   Expression
	Name   *Variable
	Access Access
}

func (*ArrayInit) NodeType() NodeType     { return NodeArrayInit }
func (*ArrayInit) Shape() Shape           { return Nary }
func (a *ArrayInit) Children() []Node     { return []Node{a.Size, a.Name} }
func (a *ArrayInit) DeclaredName() string { return a.Name.Name }
func (*ArrayInit) declarationNode()       {}

func NewArrayInit(tok lexer.Token, typ NumericType, size Expression, name *Variable) *ArrayInit {
	return &ArrayInit{nodeImpl: nodeImpl{Tok: tok}, Type: typ, Size: size, Name: name}
}

type FieldList struct {
	nodeImpl
	Fields []Declaration
}

func (*FieldList) NodeType() NodeType { return NodeFieldList }
func (*FieldList) Shape() Shape       { return Nary }
func (f *FieldList) Children() []Node {
	out := make([]Node, len(f.Fields))
	for i, d := range f.Fields {
		out[i] = d
	}
	return out
}

func NewFieldList(tok lexer.Token, fields []Declaration) *FieldList {
	return &FieldList{nodeImpl: nodeImpl{Tok: tok}, Fields: fields}
}

type MethodList struct {
	nodeImpl
	Methods []*Method
}

func (*MethodList) NodeType() NodeType { return NodeMethodList }
func (*MethodList) Shape() Shape       { return Nary }
func (m *MethodList) Children() []Node {
	out := make([]Node, len(m.Methods))
	for i, def := range m.Methods {
		out[i] = def
	}
	return out
}

func NewMethodList(tok lexer.Token, methods []*Method) *MethodList {
	return &MethodList{nodeImpl: nodeImpl{Tok: tok}, Methods: methods}
}

// Param is a typed method parameter.
type Param struct {
	Type NumericType
	Name string
}

type Method struct {
	nodeImpl
	Name   string
	Params []Param
	Body   *Block
}

func (*Method) NodeType() NodeType { return NodeMethod }
func (*Method) Shape() Shape       { return Nary }
func (m *Method) Children() []Node { return statementNodes(m.Body.Statements) }

func NewMethod(nameTok lexer.Token, params []Param, body *Block) *Method {
	return &Method{nodeImpl: nodeImpl{Tok: nameTok}, Name: nameTok.Lexeme, Params: params, Body: body}
}

// MemberAccess is obj.member in one of three forms: a field read, a field
// write (Value set), or a method call (Call set).
type MemberAccess struct {
	nodeImpl
	expressionMarker
	Object *Variable
	Member *Variable
	Call   bool
	Args   []Expression
	Value  Expression
}

func (*MemberAccess) NodeType() NodeType { return NodeMemberAccess }
func (*MemberAccess) Shape() Shape       { return Nary }
func (m *MemberAccess) Children() []Node {
	out := []Node{m.Object, m.Member}
	for _, a := range m.Args {
		out = append(out, a)
	}
	if m.Value != nil {
		out = append(out, m.Value)
	}
	return out
}

func NewMemberAccess(dotTok lexer.Token, object, member *Variable) *MemberAccess {
	return &MemberAccess{nodeImpl: nodeImpl{Tok: dotTok}, Object: object, Member: member}
}
