// Package style computes per-node styles: selector matching, cascade by
// origin and specificity, inheritance, and the runtime list rules.
package style

import (
	"sort"

	"go-view/css"
	"go-view/css/values"
	"go-view/dom"
)

// Engine matches rules against nodes and produces computed styles.
type Engine struct {
	sheets []*css.Stylesheet
}

// NewEngine creates an engine over the user-agent sheet plus the given
// author sheets, in cascade order.
func NewEngine(author ...*css.Stylesheet) *Engine {
	sheets := []*css.Stylesheet{UserAgentSheet()}
	sheets = append(sheets, author...)
	return &Engine{sheets: sheets}
}

// AddSheet appends another author stylesheet.
func (e *Engine) AddSheet(sheet *css.Stylesheet) {
	e.sheets = append(e.sheets, sheet)
}

// matchEntry is one matched declaration with its cascade keys.
type matchEntry struct {
	decl        css.Declaration
	origin      css.Origin
	specificity css.Specificity
	order       int
}

// ComputeFor produces the computed style for a node given its parent's
// computed style (nil for the root). Text nodes copy the parent's
// typography wholesale.
func (e *Engine) ComputeFor(node *dom.Node, parent *values.ComputedStyle) *values.ComputedStyle {
	style := values.NewComputedStyle()

	if node.Type != dom.NodeElement {
		if node.Type == dom.NodeDocument {
			style.Display = "block"
		}
		if parent != nil {
			copyTypography(style, parent)
			style.UserSelect = parent.UserSelect
		}
		return style
	}

	// Elements default to block; the user-agent sheet refines per tag.
	style.Display = "block"

	// Inherited properties seed from the parent before the cascade so that
	// relative font sizes resolve against the inherited value and so that
	// anything the cascade does not touch stays inherited.
	if parent != nil {
		copyTypography(style, parent)
		style.UserSelect = parent.UserSelect
	}

	// Collect matching declarations across all sheets, then sort ascending
	// by (origin, specificity, source order) and apply in order, so later
	// entries override earlier ones.
	var entries []matchEntry
	order := 0
	for _, sheet := range e.sheets {
		for _, rule := range sheet.Rules {
			for _, selector := range rule.Selectors {
				if !selector.Matches(node) {
					continue
				}
				spec := selector.Specificity()
				for _, decl := range rule.Declarations {
					entries = append(entries, matchEntry{
						decl:        decl,
						origin:      rule.Origin,
						specificity: spec,
						order:       order,
					})
					order++
				}
				break
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].origin != entries[j].origin {
			return entries[i].origin < entries[j].origin
		}
		if cmp := entries[i].specificity.Compare(entries[j].specificity); cmp != 0 {
			return cmp < 0
		}
		return entries[i].order < entries[j].order
	})

	for _, entry := range entries {
		css.ApplyProperty(style, entry.decl.Property, entry.decl.Value)
	}

	// Inline style attribute wins over every sheet.
	if inline := node.GetAttr("style"); inline != "" {
		css.ApplyDeclarations(style, css.ParseDeclarations(inline))
	}

	e.applyRuntimeRules(node, style)

	return style
}

// applyRuntimeRules handles the list rules that cannot be expressed
// statically: list markers depend on the parent list kind, and ordered
// items carry their 1-based ordinal.
func (e *Engine) applyRuntimeRules(node *dom.Node, style *values.ComputedStyle) {
	if node.Tag != "li" || node.Parent == nil {
		return
	}
	switch node.Parent.Tag {
	case "ul":
		if !style.WasSet("list-style-type") {
			style.ListStyleType = "disc"
		}
	case "ol":
		if !style.WasSet("list-style-type") {
			style.ListStyleType = "decimal"
		}
		ordinal := 0
		for _, sib := range node.Parent.Children {
			if sib.IsElement("li") {
				ordinal++
				if sib == node {
					break
				}
			}
		}
		style.ListItemIndex = ordinal
	}
}

// copyTypography copies the inherited typographic properties from parent.
func copyTypography(dst, src *values.ComputedStyle) {
	dst.Color = src.Color
	dst.FontFamily = append([]string(nil), src.FontFamily...)
	dst.FontSize = src.FontSize
	dst.FontWeight = src.FontWeight
	dst.FontStyle = src.FontStyle
	dst.LineHeight = src.LineHeight
	dst.TextAlign = src.TextAlign
	dst.TextDecoration = src.TextDecoration
}
