package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint renders the tree sideways, one node per line. The right operand of
// a binary node is printed above it and the left operand below, so the output
// reads like the tree rotated a quarter turn.
func Fprint(w io.Writer, root Node) error {
	p := &treePrinter{w: w}
	p.node(root, 0)
	return p.err
}

// String renders the tree the way Fprint does.
func String(root Node) string {
	var b strings.Builder
	_ = Fprint(&b, root)
	return b.String()
}

type treePrinter struct {
	w   io.Writer
	err error
}

func (p *treePrinter) node(n Node, depth int) {
	if p.err != nil {
		return
	}
	kids := n.Children()
	if n.Shape() == Binary && len(kids) == 2 {
		p.node(kids[1], depth+1)
		p.line(n, depth)
		p.node(kids[0], depth+1)
		return
	}
	p.line(n, depth)
	for _, child := range kids {
		p.node(child, depth+1)
	}
}

func (p *treePrinter) line(n Node, depth int) {
	_, p.err = fmt.Fprintf(p.w, "%s--+ %s\n", strings.Repeat("  |", depth), Label(n))
}

// Label is the one-line description of a node used by the printers.
func Label(n Node) string {
	switch n := n.(type) {
	case *Number:
		if n.Type == TypeReal {
			return "Number " + strconv.FormatFloat(n.Real, 'g', -1, 64)
		}
		return "Number " + strconv.FormatInt(n.Int, 10)
	case *Variable:
		return "Variable " + n.Name
	case *Scan:
		return "Scan " + n.Name
	case *Text:
		return "Text " + strconv.Quote(n.Value)
	case *VarDecl:
		return withAccess("VarDecl "+n.Type.String(), n.Access)
	case *ArrayInit:
		return withAccess("ArrayInit "+n.Type.String(), n.Access)
	case *Print:
		if n.Newline {
			return "Println"
		}
		return "Print"
	case *ObjectCreation:
		return "ObjectCreation " + n.Class
	case *BinaryOp:
		return "BinaryOp " + string(n.Op)
	case *Condition:
		return "Condition " + string(n.Op)
	case *ClassDefinition:
		if n.Derived {
			return fmt.Sprintf("ClassDefinition %s derived %s", n.Name, n.Parent)
		}
		return "ClassDefinition " + n.Name
	case *Method:
		params := make([]string, len(n.Params))
		for i, prm := range n.Params {
			params[i] = prm.Type.String() + " " + prm.Name
		}
		return fmt.Sprintf("Method %s(%s)", n.Name, strings.Join(params, ", "))
	case *MemberAccess:
		switch {
		case n.Call:
			return "MemberAccess call"
		case n.Value != nil:
			return "MemberAccess write"
		}
		return "MemberAccess read"
	}
	return string(n.NodeType())
}

func withAccess(label string, access Access) string {
	if access == AccessNone {
		return label
	}
	return label + " " + string(access)
}

// DumpNode is a serialisable view of a tree.
type DumpNode struct {
	Type     NodeType   `json:"type"`
	Label    string     `json:"label"`
	Line     int        `json:"line,omitempty"`
	Col      int        `json:"col,omitempty"`
	Children []DumpNode `json:"children,omitempty"`
}

// Dump converts a tree into DumpNodes, keeping child order.
func Dump(n Node) DumpNode {
	tok := n.Token()
	out := DumpNode{Type: n.NodeType(), Label: Label(n), Line: tok.Line, Col: tok.Col}
	for _, child := range n.Children() {
		out.Children = append(out.Children, Dump(child))
	}
	return out
}
