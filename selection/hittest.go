package selection

import (
	"math"

	"go-view/layout"
)

// =============================================================================
// HIT TESTING
// Exact hits walk the render tree in z-order; drag updates use the
// nearest-line-at-Y query; clicks in empty space fall back to the nearest
// box overall with the caret placed by quadrant.
// =============================================================================

// IsOverText reports whether the point lands exactly on a text line box,
// for pointer cursor feedback.
func (s *Selection) IsOverText(x, y float64) bool {
	_, ok := s.hitExact(s.root, x, y)
	return ok
}

// hitPosition resolves an initial click: exact hit first, then nearest
// overall.
func (s *Selection) hitPosition(x, y float64) (Position, bool) {
	if p, ok := s.hitExact(s.root, x, y); ok {
		return p, true
	}
	return s.nearestOverall(x, y)
}

// hitExact walks depth-first in z-order (later children first) and returns
// the innermost text line box containing the point.
func (s *Selection) hitExact(b *layout.RenderBox, x, y float64) (Position, bool) {
	if b == nil {
		return Position{}, false
	}
	for i := len(b.Children) - 1; i >= 0; i-- {
		if p, ok := s.hitExact(b.Children[i], x, y); ok {
			return p, true
		}
	}
	if !b.IsText() {
		return Position{}, false
	}
	for li, line := range b.Lines {
		if x >= line.X && x <= line.X+line.Width && y >= line.Y && y <= line.Y+line.Height {
			return Position{b, li, s.charIndexAt(b, li, x)}, true
		}
	}
	return Position{}, false
}

// charIndexAt maps an absolute X to a byte index within a line by summing
// glyph advances.
func (s *Selection) charIndexAt(b *layout.RenderBox, li int, x float64) int {
	line := b.Lines[li]
	f := s.face(b)
	if f == nil {
		return 0
	}
	return f.HitTest(line.Text, x-line.X, b.Style.FontSize)
}

// lineRef is one (box, line) pair used by the geometric queries.
type lineRef struct {
	box  *layout.RenderBox
	line int
}

// allLines enumerates every line box in document order.
func (s *Selection) allLines() []lineRef {
	var refs []lineRef
	for _, b := range s.boxes {
		for li := range b.Lines {
			refs = append(refs, lineRef{b, li})
		}
	}
	return refs
}

// nearestLineAt implements the nearest-line-at-Y query: among the lines
// whose vertical range contains y, prefer the one containing x, then the
// gap-midpoint rule, then the extremes. With no line straddling y, the box
// with the closest vertical mid wins, the caret landing at its start or
// end depending on the side.
func (s *Selection) nearestLineAt(x, y float64) (Position, bool) {
	refs := s.allLines()
	if len(refs) == 0 {
		return Position{}, false
	}

	var band []lineRef
	for _, r := range refs {
		line := r.box.Lines[r.line]
		if y >= line.Y && y <= line.Y+line.Height {
			band = append(band, r)
		}
	}

	if len(band) > 0 {
		// Containing X range wins outright.
		for _, r := range band {
			line := r.box.Lines[r.line]
			if x >= line.X && x <= line.X+line.Width {
				return Position{r.box, r.line, s.charIndexAt(r.box, r.line, x)}, true
			}
		}
		// Between two boxes on the same Y, split at the gap midpoint.
		for i := 0; i+1 < len(band); i++ {
			a := band[i].box.Lines[band[i].line]
			b := band[i+1].box.Lines[band[i+1].line]
			if x > a.X+a.Width && x < b.X {
				mid := (a.X + a.Width + b.X) / 2
				if x < mid {
					return Position{band[i].box, band[i].line, len(a.Text)}, true
				}
				return Position{band[i+1].box, band[i+1].line, 0}, true
			}
		}
		// Off both ends.
		first := band[0]
		last := band[len(band)-1]
		if x < first.box.Lines[first.line].X {
			return Position{first.box, first.line, 0}, true
		}
		lastLine := last.box.Lines[last.line]
		return Position{last.box, last.line, len(lastLine.Text)}, true
	}

	// No line straddles y: closest vertical mid decides the box.
	best := refs[0]
	bestDist := math.Inf(1)
	for _, r := range refs {
		line := r.box.Lines[r.line]
		mid := line.Y + line.Height/2
		if d := math.Abs(y - mid); d < bestDist {
			bestDist = d
			best = r
		}
	}
	line := best.box.Lines[best.line]
	if y < line.Y {
		return Position{best.box, best.line, 0}, true
	}
	return Position{best.box, best.line, len(line.Text)}, true
}

// nearestOverall handles clicks in empty space: the closest line box wins
// and the quadrant of the click relative to it places the caret.
func (s *Selection) nearestOverall(x, y float64) (Position, bool) {
	refs := s.allLines()
	if len(refs) == 0 {
		return Position{}, false
	}

	best := refs[0]
	bestDist := math.Inf(1)
	for _, r := range refs {
		line := r.box.Lines[r.line]
		dx := axisDistance(x, line.X, line.X+line.Width)
		dy := axisDistance(y, line.Y, line.Y+line.Height)
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = r
		}
	}

	line := best.box.Lines[best.line]
	switch {
	case y < line.Y:
		return Position{best.box, best.line, 0}, true
	case y > line.Y+line.Height:
		return Position{best.box, best.line, len(line.Text)}, true
	case x < line.X:
		return Position{best.box, best.line, 0}, true
	case x > line.X+line.Width:
		return Position{best.box, best.line, len(line.Text)}, true
	}
	return Position{best.box, best.line, s.charIndexAt(best.box, best.line, x)}, true
}

// axisDistance is the distance from v to the interval [lo, hi].
func axisDistance(v, lo, hi float64) float64 {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}
