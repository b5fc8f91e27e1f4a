package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML builds a document tree from raw HTML. Tokenization and entity
// decoding are delegated to x/net/html; this layer applies the whitespace
// collapsing contract: runs of whitespace become a single space,
// pure-whitespace text between block parents is dropped, and edge spaces
// survive only next to inline content.
func ParseHTML(raw string) (*Node, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	convertChildren(root, doc)
	normalizeWhitespace(doc)
	return doc, nil
}

// skippedTags never produce nodes; their subtrees carry no renderable
// content. <style> and <title> stay in the tree so stylesheets and the
// document title can be extracted.
var skippedTags = map[string]bool{
	"script": true, "meta": true, "link": true,
	"noscript": true, "template": true, "iframe": true,
}

func convertChildren(src *html.Node, dst *Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			tag := strings.ToLower(c.Data)
			if skippedTags[tag] {
				continue
			}
			el := NewElement(tag)
			for _, a := range c.Attr {
				el.Attributes = append(el.Attributes, Attr{
					Name:  strings.ToLower(a.Key),
					Value: a.Val,
				})
			}
			dst.AppendChild(el)
			convertChildren(c, el)
		case html.TextNode:
			if dst.IsElement("pre") || dst.IsElement("style") || dst.IsElement("title") {
				// Preformatted and raw-text content keeps its whitespace.
				if c.Data != "" {
					dst.AppendChild(NewText(c.Data))
				}
				continue
			}
			if t := CollapseWhitespace(c.Data); t != "" {
				dst.AppendChild(NewText(t))
			}
		}
	}
}

// normalizeWhitespace applies the flow-boundary rules after the tree shape
// is known: pure-space text between block-level siblings or at the edge of
// a block parent is dropped; non-space text loses an edge space only where
// it touches a flow boundary.
func normalizeWhitespace(n *Node) {
	if n.IsElement("pre") {
		return
	}
	if n.Type != NodeText {
		isBlockParent := n.Type == NodeDocument || (n.Type == NodeElement && IsBlockTag(n.Tag))
		kept := n.Children[:0]
		for i, child := range n.Children {
			if child.Type != NodeText {
				kept = append(kept, child)
				continue
			}
			blockBefore := i == 0 && isBlockParent ||
				i > 0 && n.Children[i-1].Type == NodeElement && IsBlockTag(n.Children[i-1].Tag)
			blockAfter := i == len(n.Children)-1 && isBlockParent ||
				i < len(n.Children)-1 && n.Children[i+1].Type == NodeElement && IsBlockTag(n.Children[i+1].Tag)

			text := child.Text
			if text == " " && (blockBefore || blockAfter) {
				continue
			}
			if blockBefore {
				text = strings.TrimPrefix(text, " ")
			}
			if blockAfter {
				text = strings.TrimSuffix(text, " ")
			}
			if text == "" {
				continue
			}
			child.Text = text
			kept = append(kept, child)
		}
		n.Children = kept
	}
	for _, child := range n.Children {
		normalizeWhitespace(child)
	}
}

// CollapseWhitespace reduces every run of whitespace to a single space.
func CollapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteRune(r)
	}
	if inSpace {
		b.WriteByte(' ')
	}
	return b.String()
}
