package selection

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"go-view/layout"
)

// =============================================================================
// CARET MOVEMENT
// Horizontal moves go character or word wise; vertical moves keep a sticky
// goal column across consecutive presses. Without shift the caret
// collapses the selection at its new position.
// =============================================================================

// settle collapses the selection onto the focus when shift is not held.
func (s *Selection) settle(shift bool) {
	if !shift {
		s.Anchor = s.Focus
	}
}

// MoveRight advances the focus one character, or one word with word set.
func (s *Selection) MoveRight(shift, word bool) {
	if !s.active || len(s.boxes) == 0 {
		return
	}
	s.goalX = -1
	p := s.Focus
	line := p.Box.Lines[p.Line]

	if word {
		p.Char = nextWordEnd(line.Text, p.Char)
		s.Focus = p
		s.settle(shift)
		return
	}

	if p.Char < len(line.Text) {
		_, size := utf8.DecodeRuneInString(line.Text[p.Char:])
		p.Char += size
	} else if p.Line+1 < len(p.Box.Lines) {
		p.Line++
		p.Char = skipLeadingBlank(p.Box.Lines[p.Line].Text)
	} else if next, ok := s.adjacentBox(p.Box, 1); ok {
		p = Position{next, 0, skipLeadingBlank(next.Lines[0].Text)}
	}
	s.Focus = p
	s.settle(shift)
}

// MoveLeft is the inverse of MoveRight.
func (s *Selection) MoveLeft(shift, word bool) {
	if !s.active || len(s.boxes) == 0 {
		return
	}
	s.goalX = -1
	p := s.Focus
	line := p.Box.Lines[p.Line]

	if word {
		p.Char = prevWordStart(line.Text, p.Char)
		s.Focus = p
		s.settle(shift)
		return
	}

	if p.Char > 0 {
		_, size := utf8.DecodeLastRuneInString(line.Text[:p.Char])
		p.Char -= size
	} else if p.Line > 0 {
		p.Line--
		p.Char = trimmedLineEnd(p.Box.Lines[p.Line].Text)
	} else if prev, ok := s.adjacentBox(p.Box, -1); ok {
		last := len(prev.Lines) - 1
		p = Position{prev, last, trimmedLineEnd(prev.Lines[last].Text)}
	}
	s.Focus = p
	s.settle(shift)
}

// MoveDown moves the focus to the next visual line, sticking to the goal
// column.
func (s *Selection) MoveDown(shift bool) {
	s.moveVertical(shift, 1)
}

// MoveUp moves the focus to the previous visual line.
func (s *Selection) MoveUp(shift bool) {
	s.moveVertical(shift, -1)
}

func (s *Selection) moveVertical(shift bool, dir int) {
	if !s.active || len(s.boxes) == 0 {
		return
	}
	if s.goalX < 0 {
		s.goalX = s.caretX(s.Focus)
	}

	refs := s.allLines()
	sort.SliceStable(refs, func(i, j int) bool {
		a := refs[i].box.Lines[refs[i].line]
		b := refs[j].box.Lines[refs[j].line]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	curY := s.Focus.Box.Lines[s.Focus.Line].Y

	// The target band is the nearest row of lines strictly above or below.
	targetY := math.Inf(dir)
	for _, r := range refs {
		y := r.box.Lines[r.line].Y
		if dir > 0 && y > curY+1 && y < targetY {
			targetY = y
		}
		if dir < 0 && y < curY-1 && y > targetY {
			targetY = y
		}
	}
	if math.IsInf(targetY, 0) {
		return
	}

	var band []lineRef
	for _, r := range refs {
		if math.Abs(r.box.Lines[r.line].Y-targetY) <= 1 {
			band = append(band, r)
		}
	}

	// Within the band: the line containing goalX, else the nearest edge.
	var chosen lineRef
	found := false
	for _, r := range band {
		line := r.box.Lines[r.line]
		if s.goalX >= line.X && s.goalX <= line.X+line.Width {
			chosen = r
			found = true
			break
		}
	}
	if !found {
		bestDist := math.Inf(1)
		for _, r := range band {
			line := r.box.Lines[r.line]
			d := axisDistance(s.goalX, line.X, line.X+line.Width)
			if d < bestDist {
				bestDist = d
				chosen = r
			}
		}
	}

	s.Focus = Position{chosen.box, chosen.line, s.closestCharToX(chosen.box, chosen.line, s.goalX)}
	s.settle(shift)
}

// closestCharToX returns the byte index within a line whose caret X is
// closest to the absolute x, clamping outside the line.
func (s *Selection) closestCharToX(b *layout.RenderBox, li int, x float64) int {
	line := b.Lines[li]
	if x <= line.X {
		return 0
	}
	if x >= line.X+line.Width {
		return len(line.Text)
	}
	f := s.face(b)
	if f == nil {
		return 0
	}

	best := 0
	bestDist := math.Inf(1)
	i := 0
	for {
		pos := line.X + f.PositionAtIndex(line.Text, i, b.Style.FontSize)
		if d := math.Abs(pos - x); d < bestDist {
			bestDist = d
			best = i
		}
		if i >= len(line.Text) {
			break
		}
		_, size := utf8.DecodeRuneInString(line.Text[i:])
		i += size
	}
	return best
}

// adjacentBox returns the text box dir steps away in document order.
func (s *Selection) adjacentBox(b *layout.RenderBox, dir int) (*layout.RenderBox, bool) {
	idx, ok := s.index[b]
	if !ok {
		return nil, false
	}
	idx += dir
	if idx < 0 || idx >= len(s.boxes) {
		return nil, false
	}
	return s.boxes[idx], true
}

// skipLeadingBlank returns the index past any leading ASCII space or tab.
func skipLeadingBlank(text string) int {
	i := 0
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}

// trimmedLineEnd returns the line end with trailing spaces trimmed.
func trimmedLineEnd(text string) int {
	return len(strings.TrimRight(text, " "))
}
