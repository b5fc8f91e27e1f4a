package layout

// =============================================================================
// TABLE FORMATTING CONTEXT
// Two passes: column widths from the column-wise max of cell intrinsic
// widths (scaled down when they overflow the table), then cell layout with
// the assigned widths. Spans are out of scope.
// =============================================================================

// tableRow is one logical row with its cells and owning row group, if any.
type tableRow struct {
	row   *RenderBox
	cells []*RenderBox
	group *RenderBox
}

// layoutTable lays out a table element and returns the content height.
func (e *Engine) layoutTable(b *RenderBox, contentX, contentY float64) float64 {
	rows := collectRows(b)
	if len(rows) == 0 {
		return 0
	}

	// Pass 1: column widths.
	columnCount := 0
	for _, r := range rows {
		if len(r.cells) > columnCount {
			columnCount = len(r.cells)
		}
	}
	if columnCount == 0 {
		return 0
	}

	widths := make([]float64, columnCount)
	for _, r := range rows {
		for i, cell := range r.cells {
			_, _, border := resolveEdges(cell.Style, b.Box.ContentWidth)
			w := e.intrinsicWidth(cell) + border.Horizontal()
			if w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > b.Box.ContentWidth && total > 0 {
		scale := b.Box.ContentWidth / total
		for i := range widths {
			widths[i] *= scale
		}
	}

	tableWidth := 0.0
	for _, w := range widths {
		tableWidth += w
	}

	// Pass 2: cell layout, row by row.
	cursorY := contentY
	groupTops := make(map[*RenderBox]float64)
	for _, r := range rows {
		if r.group != nil {
			if _, seen := groupTops[r.group]; !seen {
				groupTops[r.group] = cursorY
			}
		}

		cellX := contentX
		rowHeight := 0.0
		for i, cell := range r.cells {
			_, padding, border := resolveEdges(cell.Style, widths[i])
			inner := widths[i] - padding.Horizontal() - border.Horizontal()
			e.layoutBoxWidth(cell, cellX, cursorY, widths[i], maxF(inner, 0))
			if h := cell.Box.MarginBoxHeight(); h > rowHeight {
				rowHeight = h
			}
			cellX += widths[i]
		}

		// The row frame is set explicitly to cover its cells.
		r.row.Box = BoxDimensions{
			X: contentX, Y: cursorY,
			ContentWidth: tableWidth, ContentHeight: rowHeight,
		}
		cursorY += rowHeight
	}

	// Row-group frames cover their contained rows.
	for group, top := range groupTops {
		bottom := top
		for _, r := range rows {
			if r.group == group {
				if b := r.row.Box.Y + r.row.Box.ContentHeight; b > bottom {
					bottom = b
				}
			}
		}
		group.Box = BoxDimensions{
			X: contentX, Y: top,
			ContentWidth: tableWidth, ContentHeight: bottom - top,
		}
	}

	return cursorY - contentY
}

// collectRows gathers logical rows: direct tr children, and tr one level
// down through thead, tbody and tfoot.
func collectRows(table *RenderBox) []*tableRow {
	var rows []*tableRow
	appendRow := func(tr, group *RenderBox) {
		r := &tableRow{row: tr, group: group}
		for _, cell := range tr.Children {
			if cell.Node != nil && (cell.Node.Tag == "td" || cell.Node.Tag == "th") {
				r.cells = append(r.cells, cell)
			}
		}
		rows = append(rows, r)
	}

	for _, child := range table.Children {
		if child.Node == nil {
			continue
		}
		switch {
		case child.Node.IsElement("tr"):
			appendRow(child, nil)
		case child.Node.IsElement("thead") || child.Node.IsElement("tbody") || child.Node.IsElement("tfoot"):
			for _, tr := range child.Children {
				if tr.Node != nil && tr.Node.IsElement("tr") {
					appendRow(tr, child)
				}
			}
		}
	}
	return rows
}
