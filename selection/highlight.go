package selection

import (
	"math"

	"go-view/css/values"
	"go-view/font"
	"go-view/layout"
)

// =============================================================================
// HIGHLIGHT GEOMETRY
// One rectangle per selected span of each line box. When a selection runs
// off the end of a line into an inline sibling on the same visual line,
// the rect extends to the sibling's start so the gap fills contiguously.
// =============================================================================

// Rect is a highlight rectangle in document coordinates.
type Rect struct {
	X, Y, W, H float64
}

// HighlightRects returns the filled rectangles covering the selection.
func (s *Selection) HighlightRects() []Rect {
	if s.IsCollapsed() {
		return nil
	}

	var rects []Rect
	for _, b := range s.boxes {
		for li := range b.Lines {
			if r, ok := s.HighlightRectForLine(b, li); ok {
				rects = append(rects, r)
			}
		}
	}
	return rects
}

// HighlightRectForLine returns the highlight rectangle of one line, if any
// of it is selected.
func (s *Selection) HighlightRectForLine(b *layout.RenderBox, li int) (Rect, bool) {
	if s.IsCollapsed() {
		return Rect{}, false
	}
	start, end, ok := s.RangeForLine(b, li)
	if !ok || start == end {
		return Rect{}, false
	}

	f := s.face(b)
	line := b.Lines[li]
	x0 := line.X + glyphX(f, line.Text, start, b.Style.FontSize)
	x1 := line.X + glyphX(f, line.Text, end, b.Style.FontSize)

	// A selection running off the line's end bridges the gap to the next
	// inline sibling on the same visual row, unless padding separates them.
	if end == len(line.Text) {
		if next, nextLine := s.nextOnSameVisualLine(b, li); next != nil {
			if inlinePaddingRight(b) == 0 && inlinePaddingLeft(next) == 0 {
				x1 = nextLine.X
			}
		}
	}

	if x1 <= x0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: line.Y, W: x1 - x0, H: line.Height}, true
}

func glyphX(f font.Face, text string, index int, size float64) float64 {
	if f == nil {
		return 0
	}
	return f.PositionAtIndex(text, index, size)
}

// nextOnSameVisualLine finds the nearest line box to the right of box b's
// line li on the same visual row.
func (s *Selection) nextOnSameVisualLine(b *layout.RenderBox, li int) (*layout.RenderBox, *layout.TextLine) {
	cur := b.Lines[li]
	var bestBox *layout.RenderBox
	var bestLine *layout.TextLine
	for _, other := range s.boxes {
		for _, line := range other.Lines {
			if line == cur {
				continue
			}
			if math.Abs(line.Y-cur.Y) > 1 {
				continue
			}
			if line.X < cur.X+cur.Width-0.5 {
				continue
			}
			if bestLine == nil || line.X < bestLine.X {
				bestBox = other
				bestLine = line
			}
		}
	}
	return bestBox, bestLine
}

// inlinePaddingRight returns the right padding contributed by a text box's
// enclosing inline element, if any.
func inlinePaddingRight(b *layout.RenderBox) float64 {
	if p := inlineWrapper(b); p != nil {
		return resolvePad(p.Style.PaddingRight, p.Style.FontSize)
	}
	return 0
}

// inlinePaddingLeft is the symmetric query.
func inlinePaddingLeft(b *layout.RenderBox) float64 {
	if p := inlineWrapper(b); p != nil {
		return resolvePad(p.Style.PaddingLeft, p.Style.FontSize)
	}
	return 0
}

// inlineWrapper returns the parent when it is an inline element wrapping
// this text box.
func inlineWrapper(b *layout.RenderBox) *layout.RenderBox {
	if b.Parent != nil && b.Parent.Style.Display == "inline" {
		return b.Parent
	}
	return nil
}

func resolvePad(l values.Length, fontSize float64) float64 {
	v := l.Resolve(values.ResolveContext{FontSize: fontSize})
	if v == values.Unset {
		return 0
	}
	return v
}
