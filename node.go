package distill

// Node is one element of a content tree built from captured markup.
// The interface keeps the scoring, filtering, and gating engines
// platform-agnostic: any tree representation that can answer these
// questions can flow through the pipeline.
//
// Trees handed to the pipeline are exclusively owned by one run.
// Engines that rewrite a tree (pruning, boilerplate filtering) operate
// on clones; the capture's original tree is never mutated.
type Node interface {
	// Kind returns the lowercased tag name, or "#text" for text nodes.
	Kind() string

	// Attr returns the value of the named attribute, or "" if absent.
	Attr(name string) string

	// Attrs returns a copy of the node's attribute map.
	Attrs() map[string]string

	// Text returns the normalized visible text of the subtree.
	// Script, style, and hidden content contribute nothing.
	Text() string

	// Children returns the node's element children in document order.
	Children() []Node

	// Visible reports whether the node would render: false for the
	// hidden attribute, display:none, visibility:hidden, zero opacity,
	// and aria-hidden="true".
	Visible() bool

	// Matches reports whether the node matches a CSS selector.
	// Invalid selectors match nothing.
	Matches(selector string) bool

	// Clone returns a deep copy detached from the original tree.
	Clone() Node

	// Remove detaches the node from its parent. Removing a detached
	// node is a no-op.
	Remove()

	// Unwrap replaces the node with its children, flattening one
	// level. Unwrapping a detached or childless node removes it.
	Unwrap()

	// HTML returns the serialized markup of the subtree.
	HTML() string

	// Parent returns the parent node, or nil at the tree root.
	Parent() Node
}

// Candidate pairs a content-island node with its computed score and the
// rationale behind it.
type Candidate struct {
	Node      Node
	Score     int
	Rationale []string
}

// Walk visits n and every element beneath it in document order.
// Returning false from fn stops descent into that subtree.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// FindAll returns every node in the subtree matching the selector, in
// document order.
func FindAll(root Node, selector string) []Node {
	var out []Node
	Walk(root, func(n Node) bool {
		if n.Matches(selector) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// First returns the first node in the subtree matching the selector,
// or nil.
func First(root Node, selector string) Node {
	var found Node
	Walk(root, func(n Node) bool {
		if found != nil {
			return false
		}
		if n.Matches(selector) {
			found = n
			return false
		}
		return true
	})
	return found
}
