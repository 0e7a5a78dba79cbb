package ast

// Inspect visits n and then its children depth-first, in source order. When
// fn returns false the children of that node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Inspect(child, fn)
	}
}

// Contains reports whether any node in the tree rooted at n has type t.
func Contains(n Node, t NodeType) bool {
	found := false
	Inspect(n, func(node Node) bool {
		if node.NodeType() == t {
			found = true
		}
		return !found
	})
	return found
}
