package paint

import (
	"fmt"

	"go-view/css/values"
	"go-view/font"
	"go-view/layout"
	"go-view/selection"
)

// Highlight colors.
var (
	ColorSelection    = values.RGBA8(45, 110, 220, 90)
	ColorSelectedText = values.White()
)

const (
	markerGutter        = 20.0
	decorationThickness = 1.0
)

// Painter walks a laid-out tree and emits drawing commands.
type Painter struct {
	Fonts          font.Provider
	ViewportWidth  float64
	ViewportHeight float64
}

// NewPainter creates a painter for a viewport.
func NewPainter(fonts font.Provider, viewportWidth, viewportHeight float64) *Painter {
	return &Painter{Fonts: fonts, ViewportWidth: viewportWidth, ViewportHeight: viewportHeight}
}

// Paint emits the whole frame: the document translated by its scroll
// offset, selection highlights under recoloured glyphs.
func (p *Painter) Paint(root *layout.RenderBox, sel *selection.Selection, sink Sink) {
	sink.PushTranslate(0, -root.ScrollY)
	p.paintBox(root, sel, sink, root.ScrollY)
	sink.PopTranslate()
}

// paintBox paints one box and recurses. scrollOffset tracks the
// accumulated vertical translation for viewport culling.
func (p *Painter) paintBox(b *layout.RenderBox, sel *selection.Selection, sink Sink, scrollOffset float64) {
	s := b.Style
	if s.Display == "none" {
		return
	}

	// Viewport culling against the translated position.
	_, by, _, bh := b.Box.BorderRect()
	if !b.IsText() && bh > 0 {
		top := by - scrollOffset
		if top > p.ViewportHeight || top+bh < 0 {
			return
		}
	}

	if b.IsText() {
		p.paintTextBox(b, sel, sink)
		return
	}

	p.paintBackground(b, sink)
	p.paintBorders(b, sink)
	if s.Display == "list-item" && s.ListStyleType != "none" {
		p.paintListMarker(b, sink)
	}

	scrollable := s.IsScrollable() && b.ScrollableHeight > 0
	if scrollable {
		px, py, pw, ph := b.Box.PaddingRect()
		sink.PushClip(px, py, pw, ph)
		sink.PushTranslate(0, -b.ScrollY)
		scrollOffset += b.ScrollY
	}

	for _, child := range b.Children {
		p.paintBox(child, sel, sink, scrollOffset)
	}

	if scrollable {
		sink.PopTranslate()
		sink.PopClip()
	}
}

// paintBackground fills the border box when the background is visible.
func (p *Painter) paintBackground(b *layout.RenderBox, sink Sink) {
	s := b.Style
	bg := s.BackgroundColor
	if bg.IsTransparent() {
		return
	}
	bg = bg.WithAlpha(bg.A * s.Opacity)
	x, y, w, h := b.Box.BorderRect()
	radius := resolveRadius(s)
	if radius > 0 {
		sink.FillRoundedRect(x, y, w, h, radius, bg)
		return
	}
	sink.FillRect(x, y, w, h, bg)
}

func resolveRadius(s *values.ComputedStyle) float64 {
	r := s.BorderTopLeftRadius.Resolve(values.ResolveContext{FontSize: s.FontSize})
	if r == values.Unset || r < 0 {
		return 0
	}
	return r
}

// paintBorders draws each side as a filled strip with its own color.
func (p *Painter) paintBorders(b *layout.RenderBox, sink Sink) {
	s := b.Style
	x, y, w, h := b.Box.BorderRect()
	bd := b.Box.Border

	alpha := s.Opacity
	if bd.Top > 0 {
		sink.FillRect(x, y, w, bd.Top, s.BorderTopColor.WithAlpha(s.BorderTopColor.A*alpha))
	}
	if bd.Bottom > 0 {
		sink.FillRect(x, y+h-bd.Bottom, w, bd.Bottom, s.BorderBottomColor.WithAlpha(s.BorderBottomColor.A*alpha))
	}
	if bd.Left > 0 {
		sink.FillRect(x, y, bd.Left, h, s.BorderLeftColor.WithAlpha(s.BorderLeftColor.A*alpha))
	}
	if bd.Right > 0 {
		sink.FillRect(x+w-bd.Right, y, bd.Right, h, s.BorderRightColor.WithAlpha(s.BorderRightColor.A*alpha))
	}
}

// paintListMarker draws the disc or decimal marker in the gutter left of
// the item's content.
func (p *Painter) paintListMarker(b *layout.RenderBox, sink Sink) {
	s := b.Style
	x := b.Box.ContentX() - markerGutter
	y := b.Box.ContentY()

	switch s.ListStyleType {
	case "disc":
		size := s.FontSize * 0.35
		sink.FillRoundedRect(x, y+s.LineHeightPx()/2-size/2, size, size, size/2, s.Color)
	case "decimal":
		face := p.face(s)
		label := fmt.Sprintf("%d.", s.ListItemIndex)
		baseline := y + ascentOf(face, s.FontSize)
		sink.TextRun(x, baseline, label, face, s.FontSize, s.Color)
	}
}

func (p *Painter) face(s *values.ComputedStyle) font.Face {
	if p.Fonts == nil {
		return nil
	}
	return p.Fonts.GetFont(s.FontFamily, s.FontWeight, s.FontStyle)
}

func ascentOf(f font.Face, size float64) float64 {
	if f == nil {
		return size * 0.8
	}
	return f.Ascent(size)
}

// paintTextBox paints a text node's lines: highlight rects first, the runs
// themselves, then the selected spans recoloured, then any decoration.
func (p *Painter) paintTextBox(b *layout.RenderBox, sel *selection.Selection, sink Sink) {
	s := b.Style
	face := p.face(s)
	color := s.Color.WithAlpha(s.Color.A * s.Opacity)

	for li, line := range b.Lines {
		baseline := line.Y + (line.Height-s.FontSize)/2 + ascentOf(face, s.FontSize)

		var selStart, selEnd int
		selected := false
		if sel != nil {
			if start, end, ok := sel.RangeForLine(b, li); ok && start < end {
				selStart, selEnd = start, end
				selected = true
			}
			if r, ok := sel.HighlightRectForLine(b, li); ok {
				sink.FillRect(r.X, r.Y, r.W, r.H, ColorSelection)
			}
		}

		sink.TextRun(line.X, baseline, line.Text, face, s.FontSize, color)

		if selected && face != nil {
			x0 := line.X + face.PositionAtIndex(line.Text, selStart, s.FontSize)
			sink.TextRun(x0, baseline, line.Text[selStart:selEnd], face, s.FontSize, ColorSelectedText)
		}

		switch s.TextDecoration {
		case "underline":
			y := baseline + 2
			sink.Line(line.X, y, line.X+line.Width, y, decorationThickness, color)
		case "line-through":
			y := baseline - s.FontSize*0.3
			sink.Line(line.X, y, line.X+line.Width, y, decorationThickness, color)
		}
	}
}
