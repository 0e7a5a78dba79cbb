package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFprintRotatesBinaryNodes(t *testing.T) {
	prog := Prog(PrintExpr(Bin(OpAdd, Int(1), Int(2))))
	want := "--+ Program\n" +
		"  |--+ Print\n" +
		"  |  |  |--+ Number 2\n" +
		"  |  |--+ BinaryOp +\n" +
		"  |  |  |--+ Number 1\n"
	if got := String(prog); got != want {
		t.Fatalf("unexpected tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestShapes(t *testing.T) {
	tests := []struct {
		node Node
		want Shape
	}{
		{Int(1), Leaf},
		{ID("x"), Leaf},
		{ScanInto("x"), Leaf},
		{Neg(Int(1)), Unary},
		{Decl(TypeInt, "x"), Unary},
		{PrintText("hi"), Unary},
		{New("Point", "p"), Unary},
		{Bin(OpMul, Int(1), Int(2)), Binary},
		{Set("x", Int(1)), Binary},
		{Cond(OpLess, Int(1), Int(2)), Binary},
		{SetIdx("a", Int(0), Int(1)), Binary},
		{WhileStmt(Cond(OpLess, Int(1), Int(2))), Binary},
		{Class("Point", "", nil), Binary},
		{Arr(TypeReal, Int(3), "a"), Nary},
		{Invoke("p", "move"), Nary},
		{Prog(), Nary},
	}
	for _, tc := range tests {
		if got := tc.node.Shape(); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.node.NodeType(), tc.want, got)
		}
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		want string
		node Node
	}{
		{"Number 2.5", Flt(2.5)},
		{"VarDecl real private", Field(AccessPrivate, Decl(TypeReal, "r"))},
		{"ClassDefinition Circle derived Shape", Class("Circle", "Shape", nil)},
		{"Method move(int dx, real dy)", Def("move", []Param{{Type: TypeInt, Name: "dx"}, {Type: TypeReal, Name: "dy"}})},
		{"MemberAccess write", Put("p", "x", Int(1))},
		{"Condition isnot", Cond(OpIsNot, Int(1), Int(2))},
		{`Text "a b"`, PrintText("a b").Value},
	}
	for _, tc := range tests {
		if got := Label(tc.node); got != tc.want {
			t.Fatalf("expected label %q, got %q", tc.want, got)
		}
	}
}

func TestDumpKeepsChildOrder(t *testing.T) {
	got := Dump(Set("x", Bin(OpSub, Int(5), Int(3))))
	want := DumpNode{
		Type:  NodeAssign,
		Label: "Assign",
		Children: []DumpNode{
			{Type: NodeVariable, Label: "Variable x"},
			{Type: NodeBinaryOp, Label: "BinaryOp -", Children: []DumpNode{
				{Type: NodeNumber, Label: "Number 5"},
				{Type: NodeNumber, Label: "Number 3"},
			}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dump mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectVisitsInSourceOrder(t *testing.T) {
	prog := Prog(Decl(TypeInt, "x"), WhileStmt(Cond(OpLess, ID("x"), Int(3)), PrintExpr(ID("x"))))
	var got []NodeType
	Inspect(prog, func(n Node) bool {
		got = append(got, n.NodeType())
		return n.NodeType() != NodeCondition
	})
	want := []NodeType{NodeProgram, NodeVarDecl, NodeVariable, NodeWhile, NodeCondition, NodeBlock, NodePrint, NodeVariable}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestContains(t *testing.T) {
	inMethod := Prog(Class("Reader", "", nil, Def("read", nil, ScanInto("v"))))
	if !Contains(inMethod, NodeScan) {
		t.Fatalf("expected scanf inside a method body to be found")
	}
	if Contains(Prog(PrintExpr(Int(1))), NodeScan) {
		t.Fatalf("unexpected scanf")
	}
}
