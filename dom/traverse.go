package dom

import "strings"

// Walk visits the tree in pre-order (document order). Returning false from
// visit stops the walk.
func Walk(root *Node, visit func(*Node) bool) bool {
	if root == nil {
		return true
	}
	if !visit(root) {
		return false
	}
	for _, child := range root.Children {
		if !Walk(child, visit) {
			return false
		}
	}
	return true
}

// TextNodes returns every non-empty text node in document order.
func TextNodes(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Type == NodeText && n.Text != "" {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindByID returns the first element with the given id.
func FindByID(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if n.Type == NodeElement && n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByTag returns all elements with the given tag in document order.
func FindByTag(root *Node, tag string) []*Node {
	tag = strings.ToLower(tag)
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.IsElement(tag) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// StylesheetTexts collects the contents of every <style> element in
// document order.
func StylesheetTexts(root *Node) []string {
	var out []string
	for _, styleEl := range FindByTag(root, "style") {
		var b strings.Builder
		for _, child := range styleEl.Children {
			if child.Type == NodeText {
				b.WriteString(child.Text)
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return out
}

// Title returns the text of the first <title> element, if any.
func Title(root *Node) string {
	for _, t := range FindByTag(root, "title") {
		var b strings.Builder
		for _, child := range t.Children {
			if child.Type == NodeText {
				b.WriteString(child.Text)
			}
		}
		return strings.TrimSpace(b.String())
	}
	return ""
}

// ElementIndex returns the 1-based ordinal of n among its element-typed
// siblings that share its tag, or 0 when n has no parent.
func ElementIndex(n *Node) int {
	if n.Parent == nil {
		return 0
	}
	idx := 0
	for _, sib := range n.Parent.Children {
		if sib.Type == NodeElement && sib.Tag == n.Tag {
			idx++
			if sib == n {
				return idx
			}
		}
	}
	return 0
}
