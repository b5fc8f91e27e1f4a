package selection

import (
	"go-view/font"
	"go-view/layout"
)

// Mode is the selection granularity.
type Mode int

const (
	ModeCharacter Mode = iota
	ModeWord
	ModeBlock
)

// Position addresses one character boundary: a text box, a line within it,
// and a byte offset within that line's text.
type Position struct {
	Box  *layout.RenderBox
	Line int
	Char int
}

// Selection is the document-order selection state over the text boxes of
// the current render tree.
type Selection struct {
	fonts font.Provider

	root  *layout.RenderBox
	boxes []*layout.RenderBox
	index map[*layout.RenderBox]int

	Anchor Position
	Focus  Position

	active   bool
	mode     Mode
	dragging bool

	// goalX is the sticky column for vertical caret movement; -1 is unset.
	goalX float64

	// The anchor word remembered for word-mode drag extension.
	anchorWordStart Position
	anchorWordEnd   Position
}

// New creates an empty selection backed by the given glyph provider.
func New(fonts font.Provider) *Selection {
	return &Selection{fonts: fonts, goalX: -1}
}

// Rebuild re-derives the document-order text box list after a layout pass.
// The selection clears: positions into the old tree would be invalid.
func (s *Selection) Rebuild(root *layout.RenderBox) {
	s.root = root
	s.boxes = root.TextBoxes()
	s.index = make(map[*layout.RenderBox]int, len(s.boxes))
	for i, b := range s.boxes {
		s.index[b] = i
	}
	s.Clear()
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.active = false
	s.dragging = false
	s.goalX = -1
	s.Anchor = Position{}
	s.Focus = Position{}
}

// Active reports whether a selection (possibly collapsed) exists.
func (s *Selection) Active() bool {
	return s.active
}

// IsCollapsed reports whether anchor and focus coincide.
func (s *Selection) IsCollapsed() bool {
	return !s.active || s.Anchor == s.Focus
}

// Boxes returns the document-order text box list.
func (s *Selection) Boxes() []*layout.RenderBox {
	return s.boxes
}

// compare orders two positions in document order.
func (s *Selection) compare(a, b Position) int {
	ai, bi := s.index[a.Box], s.index[b.Box]
	if ai != bi {
		if ai < bi {
			return -1
		}
		return 1
	}
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	if a.Char != b.Char {
		if a.Char < b.Char {
			return -1
		}
		return 1
	}
	return 0
}

// ordered returns the selection endpoints in document order.
func (s *Selection) ordered() (Position, Position) {
	if s.compare(s.Anchor, s.Focus) <= 0 {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

// face resolves the glyph face for a text box.
func (s *Selection) face(b *layout.RenderBox) font.Face {
	if s.fonts == nil {
		return nil
	}
	return s.fonts.GetFont(b.Style.FontFamily, b.Style.FontWeight, b.Style.FontStyle)
}

// caretX returns the absolute X of a position's caret.
func (s *Selection) caretX(p Position) float64 {
	line := p.Box.Lines[p.Line]
	f := s.face(p.Box)
	if f == nil {
		return line.X
	}
	return line.X + f.PositionAtIndex(line.Text, p.Char, p.Box.Style.FontSize)
}

// =============================================================================
// POINTER EVENTS
// =============================================================================

// PointerDown starts or extends a selection. clickCount is 1, 2 or 3;
// shift extends from the existing anchor.
func (s *Selection) PointerDown(x, y float64, clickCount int, shift bool) {
	if len(s.boxes) == 0 {
		return
	}

	hit, ok := s.hitPosition(x, y)
	if !ok {
		return
	}

	switch userSelectFor(hit.Box) {
	case "none":
		// The element declines to start a selection; an existing one stays.
		return
	case "all":
		s.selectWholeElement(hit.Box)
		return
	}

	s.goalX = -1

	if shift && s.active {
		s.Focus = hit
		s.mode = ModeCharacter
		s.dragging = true
		return
	}

	switch clickCount {
	case 2:
		line := hit.Box.Lines[hit.Line]
		start, end := FindWordBoundaries(line.Text, hit.Char)
		s.Anchor = Position{hit.Box, hit.Line, start}
		s.Focus = Position{hit.Box, hit.Line, end}
		s.anchorWordStart = s.Anchor
		s.anchorWordEnd = s.Focus
		s.mode = ModeWord
		s.active = true
		s.dragging = true
	case 3:
		s.selectBlock(hit)
		s.mode = ModeBlock
		s.active = true
		s.dragging = false
	default:
		s.Anchor = hit
		s.Focus = hit
		s.mode = ModeCharacter
		s.active = true
		s.dragging = true
	}
}

// PointerMove extends the selection while dragging.
func (s *Selection) PointerMove(x, y float64) {
	if !s.dragging || !s.active {
		return
	}
	hit, ok := s.nearestLineAt(x, y)
	if !ok {
		return
	}

	switch s.mode {
	case ModeWord:
		line := hit.Box.Lines[hit.Line]
		start, end := FindWordBoundaries(line.Text, hit.Char)
		wordStart := Position{hit.Box, hit.Line, start}
		wordEnd := Position{hit.Box, hit.Line, end}
		if s.compare(wordStart, s.anchorWordStart) >= 0 {
			s.Anchor = s.anchorWordStart
			s.Focus = wordEnd
		} else {
			s.Anchor = s.anchorWordEnd
			s.Focus = wordStart
		}
	case ModeBlock:
		// Block drags are disabled for the triple-click gesture.
	default:
		s.Focus = hit
	}
}

// PointerUp ends a drag.
func (s *Selection) PointerUp() {
	s.dragging = false
}

// selectBlock selects every text box under the hit's block ancestor.
func (s *Selection) selectBlock(hit Position) {
	ancestor := hit.Box.Node.BlockAncestor()
	if ancestor == nil {
		s.Anchor = Position{hit.Box, 0, 0}
		last := len(hit.Box.Lines) - 1
		s.Focus = Position{hit.Box, last, len(hit.Box.Lines[last].Text)}
		return
	}

	var first, last *layout.RenderBox
	for _, b := range s.boxes {
		if b.Node.IsDescendantOf(ancestor) {
			if first == nil {
				first = b
			}
			last = b
		}
	}
	if first == nil {
		return
	}
	s.Anchor = Position{first, 0, 0}
	lastLine := len(last.Lines) - 1
	s.Focus = Position{last, lastLine, len(last.Lines[lastLine].Text)}
}

// selectWholeElement handles user-select: all — the whole element's text
// range becomes the selection.
func (s *Selection) selectWholeElement(hit *layout.RenderBox) {
	owner := selectAllOwner(hit)
	if owner == nil {
		return
	}
	var first, last *layout.RenderBox
	for _, b := range s.boxes {
		for rb := b; rb != nil; rb = rb.Parent {
			if rb == owner {
				if first == nil {
					first = b
				}
				last = b
				break
			}
		}
	}
	if first == nil {
		return
	}
	s.Anchor = Position{first, 0, 0}
	lastLine := len(last.Lines) - 1
	s.Focus = Position{last, lastLine, len(last.Lines[lastLine].Text)}
	s.mode = ModeBlock
	s.active = true
	s.dragging = false
}

// userSelectFor resolves the effective user-select for a text box.
func userSelectFor(b *layout.RenderBox) string {
	for rb := b; rb != nil; rb = rb.Parent {
		switch rb.Style.UserSelect {
		case "none":
			return "none"
		case "all":
			return "all"
		}
	}
	return "auto"
}

// selectAllOwner finds the outermost contiguous ancestor carrying
// user-select: all; clicking anywhere inside selects that whole element.
func selectAllOwner(b *layout.RenderBox) *layout.RenderBox {
	var owner *layout.RenderBox
	for rb := b; rb != nil; rb = rb.Parent {
		if rb.Style.UserSelect != "all" {
			break
		}
		owner = rb
	}
	return owner
}

// SelectAll selects from the first text box's start to the last one's end.
func (s *Selection) SelectAll() {
	if len(s.boxes) == 0 {
		return
	}
	first := s.boxes[0]
	last := s.boxes[len(s.boxes)-1]
	s.Anchor = Position{first, 0, 0}
	lastLine := len(last.Lines) - 1
	s.Focus = Position{last, lastLine, len(last.Lines[lastLine].Text)}
	s.mode = ModeCharacter
	s.active = true
	s.goalX = -1
}
