// Package layout builds the render tree and computes geometry for block,
// inline, flex and table formatting contexts.
package layout

import (
	"go-view/css/values"
	"go-view/dom"
)

// =============================================================================
// BOX MODEL
// =============================================================================

// Edges holds the four resolved widths of one box-model layer.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns left + right.
func (e Edges) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns top + bottom.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}

// BoxDimensions holds a box's resolved geometry. X and Y are the margin-box
// origin; the content rect derives from the edge sets.
type BoxDimensions struct {
	X, Y          float64
	ContentWidth  float64
	ContentHeight float64

	Margin  Edges
	Padding Edges
	Border  Edges
}

// ContentX returns the content-box left edge.
func (b *BoxDimensions) ContentX() float64 {
	return b.X + b.Margin.Left + b.Border.Left + b.Padding.Left
}

// ContentY returns the content-box top edge.
func (b *BoxDimensions) ContentY() float64 {
	return b.Y + b.Margin.Top + b.Border.Top + b.Padding.Top
}

// PaddingBoxWidth returns content + padding width.
func (b *BoxDimensions) PaddingBoxWidth() float64 {
	return b.ContentWidth + b.Padding.Horizontal()
}

// PaddingBoxHeight returns content + padding height.
func (b *BoxDimensions) PaddingBoxHeight() float64 {
	return b.ContentHeight + b.Padding.Vertical()
}

// BorderBoxWidth returns content + padding + border width.
func (b *BoxDimensions) BorderBoxWidth() float64 {
	return b.ContentWidth + b.Padding.Horizontal() + b.Border.Horizontal()
}

// BorderBoxHeight returns content + padding + border height.
func (b *BoxDimensions) BorderBoxHeight() float64 {
	return b.ContentHeight + b.Padding.Vertical() + b.Border.Vertical()
}

// MarginBoxWidth returns the full horizontal extent including margins.
func (b *BoxDimensions) MarginBoxWidth() float64 {
	return b.BorderBoxWidth() + b.Margin.Horizontal()
}

// MarginBoxHeight returns the full vertical extent including margins.
func (b *BoxDimensions) MarginBoxHeight() float64 {
	return b.BorderBoxHeight() + b.Margin.Vertical()
}

// BorderRect returns the border-box rectangle.
func (b *BoxDimensions) BorderRect() (x, y, w, h float64) {
	return b.X + b.Margin.Left, b.Y + b.Margin.Top, b.BorderBoxWidth(), b.BorderBoxHeight()
}

// PaddingRect returns the padding-box rectangle.
func (b *BoxDimensions) PaddingRect() (x, y, w, h float64) {
	return b.X + b.Margin.Left + b.Border.Left, b.Y + b.Margin.Top + b.Border.Top,
		b.PaddingBoxWidth(), b.PaddingBoxHeight()
}

// Translate shifts the whole box.
func (b *BoxDimensions) Translate(dx, dy float64) {
	b.X += dx
	b.Y += dy
}

// =============================================================================
// RENDER TREE
// =============================================================================

// TextLine is a single laid-out run of text within a text box.
type TextLine struct {
	Text   string
	X, Y   float64
	Width  float64
	Height float64
	Start  int // byte index of the first character in the node's text
}

// End returns the byte index one past the line's last character.
func (l *TextLine) End() int {
	return l.Start + len(l.Text)
}

// RenderBox mirrors one DOM node with its computed style and geometry. The
// tree shape mirrors the DOM exactly; no anonymous boxes are inserted.
type RenderBox struct {
	Node     *dom.Node
	Style    *values.ComputedStyle
	Box      BoxDimensions
	Children []*RenderBox
	Parent   *RenderBox

	// Lines is set iff the node is a text node that has been laid out.
	Lines []*TextLine

	// Scroll state for overflow: scroll | auto boxes.
	ScrollY          float64
	ScrollableHeight float64
}

// IsText reports whether the box mirrors a text node.
func (b *RenderBox) IsText() bool {
	return b.Node != nil && b.Node.Type == dom.NodeText
}

// Translate shifts the box and everything below it.
func (b *RenderBox) Translate(dx, dy float64) {
	b.Box.Translate(dx, dy)
	for _, line := range b.Lines {
		line.X += dx
		line.Y += dy
	}
	for _, child := range b.Children {
		child.Translate(dx, dy)
	}
}

// Walk visits the render tree in pre-order.
func (b *RenderBox) Walk(visit func(*RenderBox) bool) bool {
	if b == nil {
		return true
	}
	if !visit(b) {
		return false
	}
	for _, child := range b.Children {
		if !child.Walk(visit) {
			return false
		}
	}
	return true
}

// TextBoxes returns, in document order, every text box that produced at
// least one line. This is the list the selection model operates on.
func (b *RenderBox) TextBoxes() []*RenderBox {
	var out []*RenderBox
	b.Walk(func(rb *RenderBox) bool {
		if rb.IsText() && len(rb.Lines) > 0 {
			out = append(out, rb)
		}
		return true
	})
	return out
}

// ClampScroll keeps the scroll offset within [0, scrollable extent].
func (b *RenderBox) ClampScroll() {
	if b.ScrollY < 0 {
		b.ScrollY = 0
	}
	if b.ScrollY > b.ScrollableHeight {
		b.ScrollY = b.ScrollableHeight
	}
}

// resolveEdges resolves margin, padding and border for a style against the
// containing width. Auto margins resolve to zero.
func resolveEdges(style *values.ComputedStyle, containingWidth float64) (margin, padding, border Edges) {
	ctx := values.ResolveContext{
		ContainingSize: containingWidth,
		FontSize:       style.FontSize,
		RootFontSize:   16,
	}
	res := func(l values.Length) float64 {
		v := l.Resolve(ctx)
		if v == values.Unset {
			return 0
		}
		return v
	}
	margin = Edges{res(style.MarginTop), res(style.MarginRight), res(style.MarginBottom), res(style.MarginLeft)}
	padding = Edges{res(style.PaddingTop), res(style.PaddingRight), res(style.PaddingBottom), res(style.PaddingLeft)}
	border = Edges{res(style.BorderTopWidth), res(style.BorderRightWidth), res(style.BorderBottomWidth), res(style.BorderLeftWidth)}
	return margin, padding, border
}
