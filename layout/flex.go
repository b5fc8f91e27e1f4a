package layout

import (
	"go-view/css/values"
)

// =============================================================================
// FLEX FORMATTING CONTEXT
// row and row-reverse treat horizontal as the main axis, the column
// variants vertical. Sizing distributes free space by flex-grow; wrapping
// packs greedily; justify-content positions each line's items.
// =============================================================================

// flexItem carries one child's sizing through the flex passes.
type flexItem struct {
	box      *RenderBox
	baseSize float64 // intrinsic main size incl. margins
	mainSize float64 // final main size incl. margins
	grow     float64
	margin   Edges
	padding  Edges
	border   Edges
}

// layoutFlex lays out b's children as a flex container and returns the
// content height consumed.
func (e *Engine) layoutFlex(b *RenderBox, contentX, contentY float64) float64 {
	s := b.Style
	isRow := s.FlexDirection == "row" || s.FlexDirection == "row-reverse"
	isReverse := s.FlexDirection == "row-reverse" || s.FlexDirection == "column-reverse"

	gap := s.Gap.Resolve(values.ResolveContext{
		ContainingSize: b.Box.ContentWidth,
		FontSize:       s.FontSize,
	})
	if gap == values.Unset {
		gap = 0
	}

	var items []*flexItem
	for _, child := range b.Children {
		if child.Style.Display == "none" || (child.IsText() && child.Node.Text == "") {
			continue
		}
		items = append(items, e.measureFlexItem(child, b, isRow))
	}
	if len(items) == 0 {
		return 0
	}

	mainAvail := b.Box.ContentWidth
	if !isRow {
		// Column main size: the explicit height when there is one,
		// otherwise the line grows to its content and no space distributes.
		mainAvail = 0
		if h := s.Height.Resolve(values.ResolveContext{FontSize: s.FontSize}); h != values.Unset {
			mainAvail = h
		}
	}

	lines := collectFlexLines(items, mainAvail, gap, s.FlexWrap == "wrap")

	crossCursor := 0.0
	for _, line := range lines {
		resolveFlexLengths(line, mainAvail, gap)
		start, spacing := justifyLine(s.JustifyContent, line, mainAvail, gap)

		ordered := line
		if isReverse {
			ordered = make([]*flexItem, len(line))
			for i, item := range line {
				ordered[len(line)-1-i] = item
			}
		}

		pos := start
		lineCross := 0.0
		for i, item := range ordered {
			var cross float64
			if isRow {
				childWidth := item.mainSize - item.margin.Horizontal() -
					item.border.Horizontal() - item.padding.Horizontal()
				e.layoutBoxWidth(item.box, contentX+pos, contentY+crossCursor, item.mainSize, maxF(childWidth, 0))
				cross = item.box.Box.MarginBoxHeight()
			} else {
				e.layoutBox(item.box, contentX+crossCursor, contentY+pos, b.Box.ContentWidth)
				cross = item.box.Box.MarginBoxWidth()
				// Pin the main size the distribution decided.
				if item.mainSize > item.box.Box.MarginBoxHeight() {
					item.box.Box.ContentHeight += item.mainSize - item.box.Box.MarginBoxHeight()
				}
			}
			if cross > lineCross {
				lineCross = cross
			}
			pos += item.mainSize
			if i < len(ordered)-1 {
				pos += gap + spacing
			}
		}

		crossCursor += lineCross + gap
	}

	if isRow {
		return crossCursor - gap
	}
	// Column: content height is the tallest main extent across lines.
	height := 0.0
	for _, line := range lines {
		if m := mainExtent(line) - contentY; m > height {
			height = m
		}
	}
	return height
}

// mainExtent returns the bottom-most margin edge of a column line.
func mainExtent(line []*flexItem) float64 {
	extent := 0.0
	for _, item := range line {
		bottom := item.box.Box.Y + item.box.Box.MarginBoxHeight()
		if bottom > extent {
			extent = bottom
		}
	}
	return extent
}

// measureFlexItem computes the intrinsic main size of one flex child. An
// explicit flex-basis wins, then an explicit width in a row; otherwise a
// child with flex-grow > 0 contributes only its padding, border and margin,
// and the distribution gives it its real size.
func (e *Engine) measureFlexItem(child *RenderBox, container *RenderBox, isRow bool) *flexItem {
	cs := child.Style
	margin, padding, border := resolveEdges(cs, container.Box.ContentWidth)

	item := &flexItem{box: child, grow: cs.FlexGrow, margin: margin, padding: padding, border: border}

	ctx := values.ResolveContext{
		ContainingSize: container.Box.ContentWidth,
		FontSize:       cs.FontSize,
	}

	switch {
	case cs.FlexBasis.IsSet():
		if v := cs.FlexBasis.Resolve(ctx); v != values.Unset {
			item.baseSize = v + margin.Horizontal()
		}
	case isRow && cs.Width.IsSet():
		if w := cs.Width.Resolve(ctx); w != values.Unset {
			item.baseSize = w + margin.Horizontal()
		}
	case cs.FlexGrow > 0:
		// Growing children start from their minimum; the distribution
		// hands them their real size.
		item.baseSize = padding.Horizontal() + border.Horizontal() + margin.Horizontal()
	case isRow:
		item.baseSize = e.intrinsicWidth(child) + margin.Horizontal() + border.Horizontal()
	default:
		// Column: measure the child's natural height at the container width.
		e.layoutBox(child, 0, 0, container.Box.ContentWidth)
		item.baseSize = child.Box.MarginBoxHeight()
	}

	item.mainSize = item.baseSize
	return item
}

// collectFlexLines packs items into lines: greedy when wrapping, a single
// line otherwise.
func collectFlexLines(items []*flexItem, mainAvail, gap float64, wrap bool) [][]*flexItem {
	if !wrap || mainAvail <= 0 {
		return [][]*flexItem{items}
	}
	var lines [][]*flexItem
	var current []*flexItem
	used := 0.0
	for _, item := range items {
		if len(current) > 0 && used+gap+item.baseSize > mainAvail {
			lines = append(lines, current)
			current = nil
			used = 0
		}
		if len(current) > 0 {
			used += gap
		}
		current = append(current, item)
		used += item.baseSize
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// resolveFlexLengths distributes positive free space by flex-grow.
func resolveFlexLengths(line []*flexItem, mainAvail, gap float64) {
	used := 0.0
	totalGrow := 0.0
	for _, item := range line {
		used += item.baseSize
		totalGrow += item.grow
	}
	if len(line) > 1 {
		used += gap * float64(len(line)-1)
	}

	free := mainAvail - used
	if free <= 0 || totalGrow <= 0 {
		return
	}
	for _, item := range line {
		item.mainSize = item.baseSize + free*item.grow/totalGrow
	}
}

// justifyLine returns the leading offset and extra inter-item spacing for a
// line under justify-content.
func justifyLine(justify string, line []*flexItem, mainAvail, gap float64) (start, spacing float64) {
	used := 0.0
	for _, item := range line {
		used += item.mainSize
	}
	if len(line) > 1 {
		used += gap * float64(len(line)-1)
	}
	free := mainAvail - used
	if free < 0 {
		free = 0
	}

	switch justify {
	case "center":
		return free / 2, 0
	case "flex-end":
		return free, 0
	case "space-between":
		if len(line) > 1 {
			return 0, free / float64(len(line)-1)
		}
		return 0, 0
	case "space-around":
		spacing = free / float64(len(line))
		return spacing / 2, spacing
	}
	return 0, 0
}
