// Package xmltree builds small XML documents from an ordered element tree and
// writes them with a fixed layout. Text can be written verbatim, for
// consumers that expect the legacy unescaped output, or escaped.
package xmltree

// Node is an element with either text content or ordered children. When both
// are set, Text is written before the children.
type Node struct {
	Name     string
	Text     string
	Children []Node
}

// Element returns a node holding children.
func Element(name string, children ...Node) Node {
	return Node{Name: name, Children: children}
}

// Leaf returns a text-only node.
func Leaf(name, text string) Node {
	return Node{Name: name, Text: text}
}

// Append adds children and returns the node for chaining.
func (n Node) Append(children ...Node) Node {
	n.Children = append(n.Children, children...)
	return n
}

// Find returns every descendant (including n) with the given name in
// document order.
func (n Node) Find(name string) []Node {
	var out []Node
	n.walk(func(node Node) {
		if node.Name == name {
			out = append(out, node)
		}
	})
	return out
}

func (n Node) walk(fn func(Node)) {
	fn(n)
	for _, child := range n.Children {
		child.walk(fn)
	}
}
