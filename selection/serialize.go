package selection

import (
	"math"
	"strings"

	"go-view/layout"
)

// =============================================================================
// RANGE QUERIES AND COPY SERIALIZATION
// =============================================================================

// RangeForLine returns the selected byte range of one line of one box, or
// ok=false when the line is outside the selection.
func (s *Selection) RangeForLine(b *layout.RenderBox, li int) (start, end int, ok bool) {
	if !s.active {
		return 0, 0, false
	}
	from, to := s.ordered()
	idx, known := s.index[b]
	if !known {
		return 0, 0, false
	}
	fromIdx := s.index[from.Box]
	toIdx := s.index[to.Box]
	if idx < fromIdx || idx > toIdx {
		return 0, 0, false
	}

	line := b.Lines[li]
	start, end = 0, len(line.Text)

	if idx == fromIdx {
		if li < from.Line {
			return 0, 0, false
		}
		if li == from.Line {
			start = from.Char
		}
	}
	if idx == toIdx {
		if li > to.Line {
			return 0, 0, false
		}
		if li == to.Line {
			end = to.Char
		}
	}

	if start > end {
		start = end
	}
	return start, end, true
}

// Serialize renders the selection as plain text: wrapped lines within one
// box join with a single space, and a box starting on a new visual line is
// preceded by a newline. An empty selection serializes to the empty string.
func (s *Selection) Serialize() string {
	if !s.active {
		return ""
	}
	from, to := s.ordered()
	fromIdx := s.index[from.Box]
	toIdx := s.index[to.Box]

	var out strings.Builder
	lastY := math.Inf(-1)
	haveOutput := false

	for i := fromIdx; i <= toIdx; i++ {
		b := s.boxes[i]
		firstLineOfBox := true
		for li, line := range b.Lines {
			start, end, ok := s.RangeForLine(b, li)
			if !ok {
				continue
			}
			if haveOutput {
				if firstLineOfBox {
					// Boxes landing on a new visual line join with a
					// newline; same-line siblings keep their own spacing.
					if math.Abs(line.Y-lastY) > 1 {
						out.WriteByte('\n')
					}
				} else if lastByte(&out) != '\n' {
					// A wrapped continuation line joins with one space.
					out.WriteByte(' ')
				}
			}
			out.WriteString(line.Text[start:end])
			haveOutput = true
			firstLineOfBox = false
			lastY = line.Y
		}
	}

	return out.String()
}

// lastByte peeks at the last written byte of a builder.
func lastByte(b *strings.Builder) byte {
	s := b.String()
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}
