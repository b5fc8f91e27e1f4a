package layout

import (
	"strconv"

	"go-view/css/values"
)

// =============================================================================
// INTRINSIC WIDTH MEASUREMENT
// The natural width of a box before its container constrains it. Used by
// inline, inline-block and table sizing.
// =============================================================================

// intrinsicWidth measures a box's natural width.
func (e *Engine) intrinsicWidth(b *RenderBox) float64 {
	if b.IsText() {
		return e.measure(b.Style, b.Node.Text)
	}
	if b.Node == nil {
		return 0
	}

	s := b.Style

	// An explicit width short-circuits measurement.
	if w := s.Width.Resolve(values.ResolveContext{FontSize: s.FontSize}); w != values.Unset {
		_, padding, _ := resolveEdges(s, 0)
		if s.BoxSizing == "border-box" {
			return w
		}
		return w + padding.Horizontal()
	}

	switch b.Node.Tag {
	case "input":
		switch b.Node.GetAttr("type") {
		case "checkbox":
			return 16 + 4
		case "radio":
			return 16
		}
		return 150
	case "button":
		sum := 0.0
		for _, child := range b.Children {
			sum += e.intrinsicWidth(child)
		}
		if sum < 40 {
			sum = 40
		}
		return sum
	case "img":
		if w := b.Node.GetAttr("width"); w != "" {
			if v, err := strconv.ParseFloat(w, 64); err == nil {
				return v
			}
		}
		return 150
	case "textarea":
		cols := 20.0
		if c := b.Node.GetAttr("cols"); c != "" {
			if v, err := strconv.ParseFloat(c, 64); err == nil && v > 0 {
				cols = v
			}
		}
		return cols * 0.6 * s.FontSize
	case "select":
		return 150
	}

	_, padding, _ := resolveEdges(s, 0)
	if s.IsBlock() {
		// Block-display element: widest child plus own horizontal padding.
		widest := 0.0
		for _, child := range b.Children {
			if child.Style.Display == "none" {
				continue
			}
			if w := e.intrinsicWidth(child); w > widest {
				widest = w
			}
		}
		return widest + padding.Horizontal()
	}

	// Inline and inline-block: children side by side.
	sum := 0.0
	for _, child := range b.Children {
		if child.Style.Display == "none" {
			continue
		}
		sum += e.intrinsicWidth(child)
	}
	return sum + padding.Horizontal()
}
