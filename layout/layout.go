package layout

import (
	"strconv"

	"go-view/css/values"
	"go-view/dom"
	"go-view/font"
	"go-view/style"
)

// Engine computes geometry for a render tree. One engine is reused across
// frames; it holds no per-frame state.
type Engine struct {
	Fonts          font.Provider
	ViewportWidth  float64
	ViewportHeight float64
}

// NewEngine creates a layout engine for a viewport.
func NewEngine(fonts font.Provider, viewportWidth, viewportHeight float64) *Engine {
	return &Engine{
		Fonts:          fonts,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

// face resolves the style's font.
func (e *Engine) face(s *values.ComputedStyle) font.Face {
	if e.Fonts == nil {
		return nil
	}
	return e.Fonts.GetFont(s.FontFamily, s.FontWeight, s.FontStyle)
}

// measure returns the width of text at the style's font.
func (e *Engine) measure(s *values.ComputedStyle, text string) float64 {
	return font.TextWidth(e.face(s), text, s.FontSize)
}

// BuildRenderTree mirrors the DOM into render boxes, computing each node's
// style on the way down. The previous tree is discarded wholesale.
func BuildRenderTree(doc *dom.Node, styles *style.Engine) *RenderBox {
	return buildBox(doc, styles, nil)
}

func buildBox(node *dom.Node, styles *style.Engine, parent *RenderBox) *RenderBox {
	var parentStyle *values.ComputedStyle
	if parent != nil {
		parentStyle = parent.Style
	}
	box := &RenderBox{
		Node:   node,
		Style:  styles.ComputeFor(node, parentStyle),
		Parent: parent,
	}
	for _, child := range node.Children {
		box.Children = append(box.Children, buildBox(child, styles, box))
	}
	return box
}

// Layout positions the whole tree for the engine's viewport and records the
// document scroll extent on the root box.
func (e *Engine) Layout(root *RenderBox) {
	height := e.layoutBox(root, 0, 0, e.ViewportWidth)
	root.ScrollableHeight = 0
	if height > e.ViewportHeight {
		root.ScrollableHeight = height - e.ViewportHeight
	}
	root.ClampScroll()
}

// layoutBox lays out one box with its margin-box origin at (x, y) and the
// given available width, and returns the margin-box height consumed.
func (e *Engine) layoutBox(b *RenderBox, x, y, availWidth float64) float64 {
	return e.layoutBoxWidth(b, x, y, availWidth, -1)
}

// layoutBoxWidth is layoutBox with an optional pinned content width
// (forcedWidth >= 0), used by the flex and table contexts which size
// children themselves.
func (e *Engine) layoutBoxWidth(b *RenderBox, x, y, availWidth, forcedWidth float64) float64 {
	s := b.Style
	if s.Display == "none" {
		b.Box = BoxDimensions{X: x, Y: y}
		b.Lines = nil
		return 0
	}

	if b.IsText() {
		// A text node reaching here is a standalone block-level text run.
		return e.layoutTextBlock(b, x, y, availWidth)
	}

	margin, padding, border := resolveEdges(s, availWidth)
	b.Box = BoxDimensions{X: x, Y: y, Margin: margin, Padding: padding, Border: border}

	ctx := values.ResolveContext{
		ContainingSize: availWidth,
		FontSize:       s.FontSize,
		RootFontSize:   16,
		ViewportWidth:  e.ViewportWidth,
		ViewportHeight: e.ViewportHeight,
	}

	// Content width per the box model rules.
	if forcedWidth >= 0 {
		b.Box.ContentWidth = forcedWidth
	} else {
		b.Box.ContentWidth = e.resolveContentWidth(b, availWidth, ctx)
	}

	replacedH, isReplaced := e.replacedHeight(b)

	// Children layout.
	contentX := b.Box.ContentX()
	contentY := b.Box.ContentY()
	var childrenHeight float64
	switch {
	case isReplaced:
		childrenHeight = replacedH
	case s.IsFlex():
		childrenHeight = e.layoutFlex(b, contentX, contentY)
	case s.Display == "table":
		childrenHeight = e.layoutTable(b, contentX, contentY)
	default:
		childrenHeight = e.layoutFlow(b, contentX, contentY, b.Box.ContentWidth)
	}

	// Content height: auto uses the height the children consumed. The
	// containing block height is not tracked, so percentages act as auto.
	heightCtx := ctx
	heightCtx.ContainingSize = 0
	resolveHeight := func(l values.Length) float64 {
		if l.Unit == values.UnitPercent {
			return values.Unset
		}
		return l.Resolve(heightCtx)
	}
	contentHeight := childrenHeight
	if h := resolveHeight(s.Height); h != values.Unset {
		contentHeight = h
		if s.BoxSizing == "border-box" {
			contentHeight -= padding.Vertical() + border.Vertical()
			if contentHeight < 0 {
				contentHeight = 0
			}
		}
	}
	if minH := resolveHeight(s.MinHeight); minH != values.Unset && contentHeight < minH {
		contentHeight = minH
	}
	if maxH := resolveHeight(s.MaxHeight); maxH != values.Unset && contentHeight > maxH {
		contentHeight = maxH
	}
	b.Box.ContentHeight = contentHeight

	// Scroll overflow: the excess of natural content over the clamped box.
	if s.IsScrollable() && childrenHeight > contentHeight {
		b.ScrollableHeight = childrenHeight - contentHeight
	} else {
		b.ScrollableHeight = 0
	}
	b.ClampScroll()

	return b.Box.MarginBoxHeight()
}

// resolveContentWidth applies the width determination rules of the box
// model: explicit width, intrinsic width for inline-level and table boxes,
// otherwise fill the line. Min and max clamp the result.
func (e *Engine) resolveContentWidth(b *RenderBox, availWidth float64, ctx values.ResolveContext) float64 {
	s := b.Style
	box := &b.Box

	var width float64
	if w := s.Width.Resolve(ctx); w != values.Unset {
		width = w
		if s.BoxSizing == "border-box" {
			width -= box.Padding.Horizontal() + box.Border.Horizontal()
			if width < 0 {
				width = 0
			}
		}
	} else if s.IsInlineLevel() || s.Display == "table" {
		width = e.intrinsicWidth(b) - box.Padding.Horizontal()
		if width < 0 {
			width = 0
		}
		max := availWidth - box.Margin.Horizontal() - box.Border.Horizontal() - box.Padding.Horizontal()
		if width > max {
			width = max
		}
	} else {
		width = availWidth - box.Margin.Horizontal() - box.Border.Horizontal() - box.Padding.Horizontal()
		if width < 0 {
			width = 0
		}
	}

	if minW := s.MinWidth.Resolve(ctx); minW != values.Unset && width < minW {
		width = minW
	}
	if maxW := s.MaxWidth.Resolve(ctx); maxW != values.Unset && width > maxW {
		width = maxW
	}
	return width
}

// layoutFlow lays out normal-flow children: contiguous inline-level runs go
// through the inline context, block-level children stack with sibling
// margin collapsing.
func (e *Engine) layoutFlow(b *RenderBox, contentX, contentY, availWidth float64) float64 {
	children := b.Children
	if len(children) == 0 {
		return 0
	}

	if allInlineLevel(children) && hasInlineElement(children) {
		return e.layoutInline(b, children, contentX, contentY, availWidth)
	}

	cursorY := contentY
	prevMarginBottom := 0.0
	i := 0
	for i < len(children) {
		child := children[i]
		if child.Style.Display == "none" {
			child.Box = BoxDimensions{X: contentX, Y: cursorY}
			child.Lines = nil
			i++
			continue
		}

		if isInlineLevel(child) {
			// Group the contiguous inline run into one anonymous pass.
			j := i
			for j < len(children) && (isInlineLevel(children[j]) || children[j].Style.Display == "none") {
				j++
			}
			run := children[i:j]
			var runHeight float64
			if hasInlineElement(run) {
				runHeight = e.layoutInline(b, run, contentX, cursorY, availWidth)
			} else {
				runHeight = e.layoutTextRun(b, run, contentX, cursorY, availWidth)
			}
			cursorY += runHeight
			prevMarginBottom = 0
			i = j
			continue
		}

		// Block-level child: collapse the separating vertical margins.
		marginTop, marginBottom := blockMargins(child.Style, availWidth)
		borderTop := cursorY - prevMarginBottom + maxF(prevMarginBottom, marginTop)
		e.layoutBox(child, contentX, borderTop-marginTop, availWidth)
		cursorY = borderTop + child.Box.BorderBoxHeight() + marginBottom
		prevMarginBottom = marginBottom
		i++
	}

	return cursorY - contentY
}

// blockMargins resolves just the vertical margins of a block child.
func blockMargins(s *values.ComputedStyle, containingWidth float64) (top, bottom float64) {
	margin, _, _ := resolveEdges(s, containingWidth)
	return margin.Top, margin.Bottom
}

// layoutTextRun wraps a run of standalone text children on whitespace only.
func (e *Engine) layoutTextRun(parent *RenderBox, run []*RenderBox, x, y, availWidth float64) float64 {
	cursorY := y
	for _, child := range run {
		if child.Style.Display == "none" {
			continue
		}
		if child.IsText() {
			cursorY += e.layoutTextBlock(child, x, cursorY, availWidth)
		} else {
			cursorY += e.layoutBox(child, x, cursorY, availWidth)
		}
	}
	return cursorY - y
}

// replacedHeight returns the fixed content height for replaced elements.
func (e *Engine) replacedHeight(b *RenderBox) (float64, bool) {
	if b.Node == nil || b.Node.Type != dom.NodeElement {
		return 0, false
	}
	s := b.Style
	switch b.Node.Tag {
	case "img":
		if h := b.Node.GetAttr("height"); h != "" {
			if v, err := strconv.ParseFloat(h, 64); err == nil {
				return v, true
			}
		}
		return 100, true
	case "input":
		switch b.Node.GetAttr("type") {
		case "checkbox", "radio":
			return 16, true
		}
		return s.FontSize*1.4 + 10, true
	case "textarea":
		rows := 2.0
		if r := b.Node.GetAttr("rows"); r != "" {
			if v, err := strconv.ParseFloat(r, 64); err == nil && v > 0 {
				rows = v
			}
		}
		return rows*s.LineHeightPx() + 8, true
	case "select":
		return s.FontSize*1.4 + 12, true
	case "hr":
		return 0, true
	}
	return 0, false
}

func isInlineLevel(b *RenderBox) bool {
	return b.IsText() || b.Style.IsInlineLevel()
}

func allInlineLevel(children []*RenderBox) bool {
	for _, c := range children {
		if c.Style.Display == "none" {
			continue
		}
		if !isInlineLevel(c) {
			return false
		}
	}
	return true
}

func hasInlineElement(children []*RenderBox) bool {
	for _, c := range children {
		if c.Style.Display == "none" {
			continue
		}
		if !c.IsText() && c.Style.IsInlineLevel() {
			return true
		}
	}
	return false
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
