// Package dom provides the document node tree consumed by the style and
// layout engines.
package dom

import "strings"

// NodeType represents the type of DOM node
type NodeType int

const (
	NodeDocument NodeType = iota
	NodeElement
	NodeText
)

// Attr is a single attribute. Attributes keep their source order.
type Attr struct {
	Name  string
	Value string
}

// Node represents a node in the DOM tree. A node owns its children; Parent
// is a non-owning back-reference used for ancestor traversal only.
type Node struct {
	Type       NodeType
	Tag        string // elements only, ASCII lower-case
	Text       string // text nodes only, whitespace-collapsed
	Attributes []Attr // elements only, names lower-case, values entity-decoded
	Children   []*Node
	Parent     *Node
}

// NewDocument creates a new document node
func NewDocument() *Node {
	return &Node{Type: NodeDocument}
}

// NewElement creates a new element node
func NewElement(tag string) *Node {
	return &Node{Type: NodeElement, Tag: strings.ToLower(tag)}
}

// NewText creates a new text node
func NewText(text string) *Node {
	return &Node{Type: NodeText, Text: text}
}

// AppendChild adds a child node to this node
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// GetAttr returns an attribute value or empty string
func (n *Node) GetAttr(name string) string {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// SetAttr sets an attribute, replacing an existing one of the same name.
func (n *Node) SetAttr(name, value string) {
	name = strings.ToLower(name)
	for i, a := range n.Attributes {
		if a.Name == name {
			n.Attributes[i].Value = value
			return
		}
	}
	n.Attributes = append(n.Attributes, Attr{Name: name, Value: value})
}

// HasClass checks whether the space-split class attribute contains name.
func (n *Node) HasClass(name string) bool {
	for _, c := range strings.Fields(n.GetAttr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// ID returns the element id attribute.
func (n *Node) ID() string {
	return n.GetAttr("id")
}

// IsElement reports whether the node is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n.Type == NodeElement && n.Tag == tag
}

// blockTags are the element defaults that establish block-level boxes.
// The user-agent stylesheet refines per-tag display further.
var blockTags = map[string]bool{
	"html": true, "body": true, "div": true, "p": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"nav": true, "main": true, "aside": true, "ul": true, "ol": true,
	"li": true, "form": true, "fieldset": true, "blockquote": true,
	"pre": true, "figure": true, "figcaption": true, "hr": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true, "tr": true,
	"address": true, "dl": true, "dt": true, "dd": true,
}

// IsBlockTag reports whether tag is block-level by default.
func IsBlockTag(tag string) bool {
	return blockTags[tag]
}

// blockAncestorTags are the tags triple-click paragraph selection stops at.
var blockAncestorTags = map[string]bool{
	"p": true, "div": true, "li": true, "td": true, "th": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "article": true, "section": true,
	"header": true, "footer": true, "main": true, "nav": true, "aside": true,
}

// BlockAncestor returns the nearest element ancestor of n whose tag is a
// block container, or nil if there is none.
func (n *Node) BlockAncestor() *Node {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Type == NodeElement && blockAncestorTags[cur.Tag] {
			return cur
		}
	}
	return nil
}

// IsDescendantOf reports whether ancestor is on n's parent chain (or n itself).
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}
