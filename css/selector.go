// Package css provides the CSS parser: stylesheets, selectors and property
// application onto computed styles.
package css

import (
	"strings"

	"go-view/dom"
)

// ======================================================================================
// CSS SELECTORS
// ======================================================================================

// SimpleSelector is one compound-free selector: an optional tag (or *), an
// optional id, and a set of classes.
type SimpleSelector struct {
	Tag     string // "" or "*" match any element
	ID      string
	Classes []string
}

// Selector is an ordered list of simple selectors matched as a descendant
// chain. Child and sibling combinators parse but match as descendant.
type Selector struct {
	Parts []SimpleSelector
}

// Specificity is the (id-count, class-count, tag-count) triple, compared
// lexicographically.
type Specificity struct {
	IDs      int
	Classes  int
	Elements int
}

// Compare returns 1 if s > other, -1 if s < other, 0 if equal.
func (s Specificity) Compare(other Specificity) int {
	if s.IDs != other.IDs {
		if s.IDs > other.IDs {
			return 1
		}
		return -1
	}
	if s.Classes != other.Classes {
		if s.Classes > other.Classes {
			return 1
		}
		return -1
	}
	if s.Elements != other.Elements {
		if s.Elements > other.Elements {
			return 1
		}
		return -1
	}
	return 0
}

// Specificity returns the selector's specificity, summed over its parts.
func (sel Selector) Specificity() Specificity {
	spec := Specificity{}
	for _, p := range sel.Parts {
		if p.ID != "" {
			spec.IDs++
		}
		spec.Classes += len(p.Classes)
		if p.Tag != "" && p.Tag != "*" {
			spec.Elements++
		}
	}
	return spec
}

// ParseSelectorList parses a comma-separated selector list.
func ParseSelectorList(text string) []Selector {
	var selectors []Selector
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if sel, ok := ParseSelector(part); ok {
			selectors = append(selectors, sel)
		}
	}
	return selectors
}

// combinatorReplacer turns >, + and ~ into plain descendant whitespace.
var combinatorReplacer = strings.NewReplacer(">", " ", "+", " ", "~", " ")

// ParseSelector parses a single (possibly compound) selector.
func ParseSelector(text string) (Selector, bool) {
	text = combinatorReplacer.Replace(text)
	var sel Selector
	for _, token := range strings.Fields(text) {
		part, ok := parseSimpleSelector(token)
		if !ok {
			return Selector{}, false
		}
		sel.Parts = append(sel.Parts, part)
	}
	return sel, len(sel.Parts) > 0
}

// parseSimpleSelector scans a token like div#main.note.wide into its tag,
// id and class components. Pseudo-classes are tolerated and ignored.
func parseSimpleSelector(token string) (SimpleSelector, bool) {
	if idx := strings.Index(token, ":"); idx != -1 {
		token = token[:idx]
	}
	if token == "" {
		return SimpleSelector{Tag: "*"}, true
	}

	var part SimpleSelector
	i := 0
	for i < len(token) {
		switch token[i] {
		case '.':
			j := i + 1
			for j < len(token) && token[j] != '.' && token[j] != '#' {
				j++
			}
			if j == i+1 {
				return SimpleSelector{}, false
			}
			part.Classes = append(part.Classes, token[i+1:j])
			i = j
		case '#':
			j := i + 1
			for j < len(token) && token[j] != '.' && token[j] != '#' {
				j++
			}
			if j == i+1 {
				return SimpleSelector{}, false
			}
			part.ID = token[i+1 : j]
			i = j
		default:
			j := i
			for j < len(token) && token[j] != '.' && token[j] != '#' {
				j++
			}
			part.Tag = strings.ToLower(token[i:j])
			i = j
		}
	}
	return part, true
}

// MatchesSimple checks a simple selector against one element.
func (p SimpleSelector) MatchesSimple(node *dom.Node) bool {
	if node == nil || node.Type != dom.NodeElement {
		return false
	}
	if p.Tag != "" && p.Tag != "*" && node.Tag != p.Tag {
		return false
	}
	if p.ID != "" && node.ID() != p.ID {
		return false
	}
	for _, class := range p.Classes {
		if !node.HasClass(class) {
			return false
		}
	}
	return true
}

// Matches checks the compound selector against a node: the last simple
// selector must match the node itself and each earlier one must match some
// ancestor, in order.
func (sel Selector) Matches(node *dom.Node) bool {
	n := len(sel.Parts)
	if n == 0 {
		return false
	}
	if !sel.Parts[n-1].MatchesSimple(node) {
		return false
	}
	current := node.Parent
	for i := n - 2; i >= 0; i-- {
		found := false
		for current != nil {
			if sel.Parts[i].MatchesSimple(current) {
				found = true
				current = current.Parent
				break
			}
			current = current.Parent
		}
		if !found {
			return false
		}
	}
	return true
}
