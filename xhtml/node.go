// Package xhtml implements the distill content tree on top of
// golang.org/x/net/html, with cascadia CSS selector matching.
package xhtml

import (
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"github.com/ham-zax/distill"
	"golang.org/x/net/html"
)

// Ensure Node implements distill.Node at compile time.
var _ distill.Node = (*Node)(nil)

// Node wraps an *html.Node as a distill content tree node.
type Node struct {
	n *html.Node
}

// Parse builds a content tree from captured markup. The returned root
// is the document body when one exists, otherwise the document itself.
func Parse(rawHTML string) (*Node, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, distill.Errorf(distill.EINVALID, "empty HTML input")
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, distill.Errorf(distill.EINVALID, "failed to parse HTML: %v", err)
	}

	if body := dom.QuerySelector(doc, "body"); body != nil {
		return &Node{n: body}, nil
	}
	return &Node{n: doc}, nil
}

// FromHTMLNode wraps an existing parsed node.
func FromHTMLNode(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

// HTMLNode returns the underlying parsed node.
func (n *Node) HTMLNode() *html.Node {
	return n.n
}

// Kind returns the lowercased tag name, or "#text" for text nodes.
func (n *Node) Kind() string {
	switch n.n.Type {
	case html.ElementNode:
		return strings.ToLower(n.n.Data)
	case html.TextNode:
		return "#text"
	case html.DocumentNode:
		return "#document"
	case html.CommentNode:
		return "#comment"
	default:
		return ""
	}
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	return dom.GetAttribute(n.n, name)
}

// Attrs returns a copy of the node's attribute map.
func (n *Node) Attrs() map[string]string {
	attrs := make(map[string]string, len(n.n.Attr))
	for _, a := range n.n.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

// skippedKinds contribute no visible text.
var skippedKinds = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
}

// Text returns the normalized visible text of the subtree. Script,
// style, and hidden content contribute nothing; whitespace runs
// collapse to single spaces.
func (n *Node) Text() string {
	var b strings.Builder
	collectText(n.n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if skippedKinds[tag] {
			return
		}
		if !isVisible(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// Children returns the node's element children in document order.
func (n *Node) Children() []distill.Node {
	var out []distill.Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Node{n: c})
		}
	}
	return out
}

// Visible reports whether the node would render.
func (n *Node) Visible() bool {
	return isVisible(n.n)
}

func isVisible(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return true
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return false
		case "aria-hidden":
			if a.Val == "true" {
				return false
			}
		case "style":
			if styleHides(a.Val) {
				return false
			}
		}
	}
	return true
}

// styleHides detects inline styles that suppress rendering.
func styleHides(style string) bool {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if strings.Contains(s, "display:none") || strings.Contains(s, "visibility:hidden") {
		return true
	}
	for _, decl := range strings.Split(s, ";") {
		val, ok := strings.CutPrefix(decl, "opacity:")
		if !ok {
			continue
		}
		if val == "0" || val == "0.0" || val == ".0" || val == "0%" {
			return true
		}
	}
	return false
}

// selectorCache holds compiled selectors. Rule configuration is
// read-mostly, so the cache is shared across concurrent runs.
var (
	selectorMu    sync.RWMutex
	selectorCache = map[string]cascadia.Selector{}
)

func compileSelector(selector string) (cascadia.Selector, bool) {
	selectorMu.RLock()
	sel, ok := selectorCache[selector]
	selectorMu.RUnlock()
	if ok {
		return sel, sel != nil
	}

	compiled, err := cascadia.Compile(selector)
	selectorMu.Lock()
	if err != nil {
		// Negative entries keep invalid selectors cheap.
		selectorCache[selector] = nil
	} else {
		selectorCache[selector] = compiled
	}
	selectorMu.Unlock()
	return compiled, err == nil
}

// Matches reports whether the node matches a CSS selector.
// Invalid selectors match nothing.
func (n *Node) Matches(selector string) bool {
	if n.n.Type != html.ElementNode {
		return false
	}
	sel, ok := compileSelector(selector)
	if !ok {
		return false
	}
	return sel.Match(n.n)
}

// Clone returns a deep copy detached from the original tree.
func (n *Node) Clone() distill.Node {
	return &Node{n: dom.Clone(n.n, true)}
}

// Remove detaches the node from its parent.
func (n *Node) Remove() {
	if n.n.Parent != nil {
		n.n.Parent.RemoveChild(n.n)
	}
}

// Unwrap replaces the node with its children, flattening one level.
func (n *Node) Unwrap() {
	parent := n.n.Parent
	if parent == nil {
		return
	}
	for c := n.n.FirstChild; c != nil; {
		next := c.NextSibling
		n.n.RemoveChild(c)
		parent.InsertBefore(c, n.n)
		c = next
	}
	parent.RemoveChild(n.n)
}

// HTML returns the serialized markup of the subtree.
func (n *Node) HTML() string {
	return dom.OuterHTML(n.n)
}

// Parent returns the parent node, or nil at the tree root.
func (n *Node) Parent() distill.Node {
	if n.n.Parent == nil {
		return nil
	}
	return &Node{n: n.n.Parent}
}
