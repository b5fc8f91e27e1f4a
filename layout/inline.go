package layout

import (
	"strings"

	"go-view/css/values"
	"go-view/font"
)

// =============================================================================
// INLINE FORMATTING CONTEXT
// Line-based layout with a pen position and a rolling line height. Tokens
// wrap on break units; closed lines get text-align and vertical-align
// treatment before the pen moves down.
// =============================================================================

// breakToken is one unbreakable unit of text.
type breakToken struct {
	text     string
	start    int // byte offset into the source string
	isSpace  bool
	puncOnly bool
}

// trailingPunct are the marks that stay glued to the preceding run.
func isTrailingPunct(r rune) bool {
	switch r {
	case ',', '.', ';', ':', '!', '?':
		return true
	}
	return false
}

// tokenizeBreakUnits splits text into break units: runs of non-space,
// single spaces, with '-' a break point that keeps the dash on the prior
// run. Punctuation-only units are flagged so they never start a line.
func tokenizeBreakUnits(text string) []breakToken {
	var tokens []breakToken
	i := 0
	for i < len(text) {
		if text[i] == ' ' {
			tokens = append(tokens, breakToken{text: " ", start: i, isSpace: true})
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] != ' ' {
			if text[j] == '-' {
				j++
				break
			}
			j++
		}
		tok := text[i:j]
		puncOnly := true
		for _, r := range tok {
			if !isTrailingPunct(r) {
				puncOnly = false
				break
			}
		}
		tokens = append(tokens, breakToken{text: tok, start: i, puncOnly: puncOnly})
		i = j
	}
	return tokens
}

// lineItem is one inline-level participant of the current line.
type lineItem struct {
	line     *TextLine  // text segment, nil for element units
	unit     *RenderBox // element laid out as a unit, nil for text
	height   float64
	fontSize float64
	valign   string
}

// pendingSegment accumulates the current text run of one text box until the
// line wraps or the run ends.
type pendingSegment struct {
	box       *RenderBox
	face      font.Face
	style     *values.ComputedStyle
	valign    string
	text      string
	startByte int
	startX    float64
}

// inlineFlow is the pen state of one inline formatting context pass.
type inlineFlow struct {
	e          *Engine
	container  *values.ComputedStyle
	lineStartX float64
	avail      float64
	curX, curY float64
	lineHeight float64
	items      []lineItem
	pending    *pendingSegment
}

// layoutInline lays out a run of inline-level children starting at (x, y)
// and returns the height consumed.
func (e *Engine) layoutInline(parent *RenderBox, run []*RenderBox, x, y, availWidth float64) float64 {
	flow := &inlineFlow{
		e:          e,
		container:  parent.Style,
		lineStartX: x,
		avail:      availWidth,
		curX:       x,
		curY:       y,
	}

	for _, child := range run {
		if child.Style.Display == "none" {
			child.Box = BoxDimensions{X: x, Y: flow.curY}
			child.Lines = nil
			continue
		}
		switch {
		case child.IsText():
			child.Lines = nil
			flow.flowText(child, child.Style, child.Style.VerticalAlign)
			setTextBoxBounds(child)
		case child.Node != nil && child.Node.Tag == "br":
			flow.lineBreak(child)
		case isSimpleInline(child):
			flow.flowSimpleInline(child)
		default:
			flow.flowUnit(child)
		}
	}

	flow.flushSegment(false)
	flow.closeLine(false)

	// Text box bounds may have shifted during the final close.
	for _, child := range run {
		if child.IsText() {
			setTextBoxBounds(child)
		}
	}

	return flow.curY - y
}

// isSimpleInline reports whether an inline element wraps exactly one text
// child and can flow token by token.
func isSimpleInline(b *RenderBox) bool {
	return b.Style.Display == "inline" &&
		len(b.Children) == 1 && b.Children[0].IsText()
}

// lineNonEmpty reports whether anything occupies the current line.
func (f *inlineFlow) lineNonEmpty() bool {
	if len(f.items) > 0 || f.curX > f.lineStartX {
		return true
	}
	return f.pending != nil && f.pending.text != ""
}

// flowText places one text node's break units.
func (f *inlineFlow) flowText(tb *RenderBox, st *values.ComputedStyle, valign string) {
	face := f.e.face(st)
	f.pending = &pendingSegment{
		box:       tb,
		face:      face,
		style:     st,
		valign:    valign,
		startByte: 0,
		startX:    f.curX,
	}

	for _, tok := range tokenizeBreakUnits(tb.Node.Text) {
		w := font.TextWidth(face, tok.text, st.FontSize)
		if tok.isSpace {
			if f.pending.text == "" && f.curX == f.lineStartX {
				// Leading spaces on a fresh line are dropped.
				f.pending.startByte = tok.start + 1
				continue
			}
			f.pending.text += tok.text
			f.curX += w
			continue
		}
		if !tok.puncOnly && f.curX+w > f.lineStartX+f.avail && f.lineNonEmpty() {
			f.flushSegment(true)
			f.closeLine(false)
			f.pending.startByte = tok.start
			f.pending.startX = f.curX
		}
		f.pending.text += tok.text
		f.curX += w
	}

	f.flushSegment(false)
	f.pending = nil
}

// flushSegment turns the pending text into a line box. Wrapping flushes
// trim trailing spaces; end-of-run flushes keep them so an inline sibling
// on the same line stays separated.
func (f *inlineFlow) flushSegment(trim bool) {
	p := f.pending
	if p == nil {
		return
	}
	text := p.text
	if trim {
		trimmed := strings.TrimRight(text, " ")
		f.curX -= font.TextWidth(p.face, text[len(trimmed):], p.style.FontSize)
		text = trimmed
	}
	if text == "" {
		p.text = ""
		return
	}

	h := p.style.LineHeightPx()
	line := &TextLine{
		Text:   text,
		X:      p.startX,
		Y:      f.curY,
		Width:  font.TextWidth(p.face, text, p.style.FontSize),
		Height: h,
		Start:  p.startByte,
	}
	p.box.Lines = append(p.box.Lines, line)
	f.items = append(f.items, lineItem{
		line:     line,
		height:   h,
		fontSize: p.style.FontSize,
		valign:   p.valign,
	})
	if h > f.lineHeight {
		f.lineHeight = h
	}

	p.text = ""
	p.startByte += len(text)
	p.startX = f.curX
}

// closeLine applies text-align and vertical-align to the items of the
// current line and moves the pen to the next one. forced closes an empty
// line too (a <br> on a blank line still advances).
func (f *inlineFlow) closeLine(forced bool) {
	if len(f.items) == 0 {
		if forced {
			f.curY += f.container.LineHeightPx()
			f.curX = f.lineStartX
		}
		return
	}

	// Horizontal alignment of the whole line.
	lineWidth := f.curX - f.lineStartX
	var dx float64
	switch f.container.TextAlign {
	case "center":
		dx = (f.avail - lineWidth) / 2
	case "right":
		dx = f.avail - lineWidth
	}
	if dx < 0 {
		dx = 0
	}

	for _, item := range f.items {
		dy := verticalOffset(item.valign, f.lineHeight, item.height, item.fontSize)
		if item.line != nil {
			item.line.X += dx
			item.line.Y += dy
		}
		if item.unit != nil {
			item.unit.Translate(dx, dy)
		}
	}

	f.curY += f.lineHeight
	f.curX = f.lineStartX
	f.lineHeight = 0
	f.items = f.items[:0]
	if f.pending != nil {
		f.pending.startX = f.curX
	}
}

// verticalOffset positions an inline-level item inside its line box.
func verticalOffset(valign string, lineHeight, itemHeight, fontSize float64) float64 {
	switch valign {
	case "top", "text-top":
		return 0
	case "middle":
		return (lineHeight - itemHeight) / 2
	case "sub":
		return lineHeight - itemHeight + 0.2*fontSize
	case "super":
		return -0.4 * fontSize
	}
	// baseline, text-bottom, bottom
	return lineHeight - itemHeight
}

// lineBreak handles <br>: flush and force a new line.
func (f *inlineFlow) lineBreak(br *RenderBox) {
	f.flushSegment(false)
	f.closeLine(true)
	br.Box = BoxDimensions{X: f.lineStartX, Y: f.curY}
}

// flowSimpleInline flows an inline element whose sole child is a text node:
// the element contributes its left edges before and right edges after the
// text run, and the emitted lines belong to the text child.
func (f *inlineFlow) flowSimpleInline(el *RenderBox) {
	st := el.Style
	textChild := el.Children[0]
	textChild.Lines = nil
	margin, padding, border := resolveEdges(st, f.avail)
	leftInset := margin.Left + border.Left + padding.Left
	rightInset := margin.Right + border.Right + padding.Right

	// If the first word plus the leading inset cannot fit, the whole
	// inline unit wraps first.
	if f.lineNonEmpty() {
		if first, ok := firstWordWidth(textChild.Node.Text, f.e.face(textChild.Style), textChild.Style.FontSize); ok {
			if f.curX+leftInset+first > f.lineStartX+f.avail {
				f.closeLine(false)
			}
		}
	}

	f.curX += leftInset
	f.flowText(textChild, textChild.Style, st.VerticalAlign)
	f.curX += rightInset

	setTextBoxBounds(textChild)
	el.Box = BoxDimensions{Margin: margin, Padding: padding, Border: border}
	syncInlineElementBounds(el, textChild, leftInset, rightInset)
}

// firstWordWidth measures the first non-space break unit of text.
func firstWordWidth(text string, face font.Face, size float64) (float64, bool) {
	for _, tok := range tokenizeBreakUnits(text) {
		if !tok.isSpace {
			return font.TextWidth(face, tok.text, size), true
		}
	}
	return 0, false
}

// syncInlineElementBounds wraps the element frame around its text child.
func syncInlineElementBounds(el, textChild *RenderBox, leftInset, rightInset float64) {
	if len(textChild.Lines) == 0 {
		return
	}
	first := textChild.Lines[0]
	el.Box.X = first.X - leftInset
	el.Box.Y = first.Y
	maxRight, maxBottom := 0.0, 0.0
	for _, line := range textChild.Lines {
		if line.X+line.Width > maxRight {
			maxRight = line.X + line.Width
		}
		if line.Y+line.Height > maxBottom {
			maxBottom = line.Y + line.Height
		}
		if line.X < el.Box.X+leftInset {
			el.Box.X = line.X - leftInset
		}
		if line.Y < el.Box.Y {
			el.Box.Y = line.Y
		}
	}
	el.Box.ContentWidth = maxRight - el.Box.ContentX()
	el.Box.ContentHeight = maxBottom - el.Box.ContentY()
}

// flowUnit lays out a complex inline element as one unbreakable unit.
func (f *inlineFlow) flowUnit(el *RenderBox) {
	margin, _, _ := resolveEdges(el.Style, f.avail)
	unitWidth := f.e.intrinsicWidth(el) + margin.Horizontal()
	if f.curX+unitWidth > f.lineStartX+f.avail && f.lineNonEmpty() {
		f.flushSegment(false)
		f.closeLine(false)
	}

	remaining := f.lineStartX + f.avail - f.curX
	f.e.layoutBox(el, f.curX, f.curY, remaining)

	w := el.Box.MarginBoxWidth()
	h := el.Box.MarginBoxHeight()
	f.curX += w
	f.items = append(f.items, lineItem{
		unit:     el,
		height:   h,
		fontSize: el.Style.FontSize,
		valign:   el.Style.VerticalAlign,
	})
	if h > f.lineHeight {
		f.lineHeight = h
	}
}

// setTextBoxBounds wraps a text box's frame around its line boxes.
func setTextBoxBounds(tb *RenderBox) {
	if len(tb.Lines) == 0 {
		tb.Box.ContentWidth = 0
		tb.Box.ContentHeight = 0
		return
	}
	minX, minY := tb.Lines[0].X, tb.Lines[0].Y
	maxX, maxY := minX, minY
	for _, line := range tb.Lines {
		if line.X < minX {
			minX = line.X
		}
		if line.Y < minY {
			minY = line.Y
		}
		if line.X+line.Width > maxX {
			maxX = line.X + line.Width
		}
		if line.Y+line.Height > maxY {
			maxY = line.Y + line.Height
		}
	}
	tb.Box = BoxDimensions{X: minX, Y: minY, ContentWidth: maxX - minX, ContentHeight: maxY - minY}
}

// layoutTextBlock wraps a standalone block-level text node on whitespace
// only and returns the height consumed.
func (e *Engine) layoutTextBlock(tb *RenderBox, x, y, availWidth float64) float64 {
	st := tb.Style
	face := e.face(st)
	tb.Lines = nil

	text := tb.Node.Text
	lineH := st.LineHeightPx()
	spaceW := font.TextWidth(face, " ", st.FontSize)

	curY := y
	lineText := ""
	lineStart := 0
	lineWidth := 0.0

	flush := func() {
		trimmed := strings.TrimRight(lineText, " ")
		if trimmed == "" {
			return
		}
		w := font.TextWidth(face, trimmed, st.FontSize)
		lx := x
		switch st.TextAlign {
		case "center":
			lx = x + (availWidth-w)/2
		case "right":
			lx = x + availWidth - w
		}
		if lx < x {
			lx = x
		}
		tb.Lines = append(tb.Lines, &TextLine{
			Text: trimmed, X: lx, Y: curY, Width: w, Height: lineH, Start: lineStart,
		})
		curY += lineH
	}

	offset := 0
	for _, word := range strings.Split(text, " ") {
		wordStart := offset
		offset += len(word) + 1
		if word == "" {
			continue
		}
		w := font.TextWidth(face, word, st.FontSize)
		if lineText != "" && lineWidth+w > availWidth {
			flush()
			lineText = ""
			lineWidth = 0
			lineStart = wordStart
		}
		if lineText == "" {
			lineStart = wordStart
		}
		lineText += word + " "
		lineWidth += w + spaceW
	}
	flush()

	setTextBoxBounds(tb)
	return curY - y
}
