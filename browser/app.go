// Package browser runs the cooperative per-frame loop: it polls events,
// mutates selection and scroll state, re-runs layout when needed and emits
// paint commands.
package browser

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"go-view/css"
	"go-view/dom"
	"go-view/font"
	"go-view/layout"
	"go-view/paint"
	"go-view/render"
	"go-view/selection"
	"go-view/style"
)

const (
	// multiClickFrames is the double/triple click window at 60 ticks/s.
	multiClickFrames = 30
	multiClickSlop   = 5.0
	wheelStep        = 30.0
)

// App is the viewer application. It owns the document, the engines and the
// per-frame state, and implements ebiten.Game.
type App struct {
	log   *zap.Logger
	fonts font.Provider

	width, height float64

	domRoot     *dom.Node
	styleEngine *style.Engine
	extraSheets []*css.Stylesheet

	root     *layout.RenderBox
	layouter *layout.Engine
	painter  *paint.Painter
	sel      *selection.Selection

	needsLayout bool
	scrollY     float64 // document scroll, carried across re-layout

	// Click bookkeeping for double/triple clicks.
	tick           int
	lastClickTick  int
	lastClickX     float64
	lastClickY     float64
	clickCount     int
	mouseDown      bool
}

// NewApp creates an application for the given viewport.
func NewApp(log *zap.Logger, fonts font.Provider, width, height int) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		log:    log,
		fonts:  fonts,
		width:  float64(width),
		height: float64(height),
		sel:    selection.New(fonts),
	}
}

// AddStylesheet registers an extra author stylesheet applied to every
// document loaded afterwards.
func (a *App) AddStylesheet(source string) {
	a.extraSheets = append(a.extraSheets, css.ParseStylesheet(source, css.OriginAuthor))
}

// LoadHTML parses a document and schedules a layout pass.
func (a *App) LoadHTML(raw string) error {
	doc, err := dom.ParseHTML(raw)
	if err != nil {
		return err
	}
	a.domRoot = doc

	a.styleEngine = style.NewEngine(a.extraSheets...)
	for _, sheetText := range dom.StylesheetTexts(doc) {
		a.styleEngine.AddSheet(css.ParseStylesheet(sheetText, css.OriginAuthor))
	}

	if title := dom.Title(doc); title != "" {
		ebiten.SetWindowTitle(title)
	}

	a.scrollY = 0
	a.needsLayout = true
	a.log.Info("document loaded", zap.Int("nodes", countNodes(doc)))
	return nil
}

func countNodes(n *dom.Node) int {
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	return count
}

// reflow rebuilds the render tree from the DOM and re-runs layout.
// Everything from style onward recomputes; the selection clears because
// its document-order indices would be stale.
func (a *App) reflow() {
	if a.domRoot == nil {
		return
	}
	a.layouter = layout.NewEngine(a.fonts, a.width, a.height)
	a.painter = paint.NewPainter(a.fonts, a.width, a.height)

	a.root = layout.BuildRenderTree(a.domRoot, a.styleEngine)
	a.layouter.Layout(a.root)

	// The document scroll position survives re-layout, clamped to the new
	// extent; nested scrollables reset with their rebuilt boxes.
	a.root.ScrollY = a.scrollY
	a.root.ClampScroll()
	a.scrollY = a.root.ScrollY

	a.sel.Rebuild(a.root)
	a.needsLayout = false
}

// Update polls input and mutates selection and scroll state. Events apply
// in arrival order; layout re-runs before the next draw when needed.
func (a *App) Update() error {
	a.tick++
	if a.needsLayout {
		a.reflow()
	}
	if a.root == nil {
		return nil
	}

	a.handleWheel()
	a.handlePointer()
	a.handleKeys()
	a.updateCursorShape()
	return nil
}

// updateCursorShape switches to the text cursor while the pointer is over
// a text run.
func (a *App) updateCursorShape() {
	mx, my := ebiten.CursorPosition()
	x, y := a.docCoords(float64(mx), float64(my))
	if a.sel.IsOverText(x, y) {
		ebiten.SetCursorShape(ebiten.CursorShapeText)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw emits the frame.
func (a *App) Draw(screen *ebiten.Image) {
	if a.root == nil {
		return
	}
	sink := render.NewSink(screen)
	a.painter.Paint(a.root, a.sel, sink)
}

// Layout reports the ebiten rendering size and triggers reflow on resize.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != a.width || h != a.height {
		a.width, a.height = w, h
		a.needsLayout = true
	}
	return outsideWidth, outsideHeight
}

// docCoords maps a widget-space point into document coordinates,
// accounting for the viewport scroll and any scrolled ancestor under the
// point.
func (a *App) docCoords(x, y float64) (float64, float64) {
	y += a.root.ScrollY
	return shiftForScroll(a.root, x, y)
}

func shiftForScroll(b *layout.RenderBox, x, y float64) (float64, float64) {
	for _, child := range b.Children {
		if child.Style != nil && child.Style.Display == "none" {
			continue
		}
		px, py, pw, ph := child.Box.PaddingRect()
		if child.ScrollableHeight > 0 && x >= px && x <= px+pw && y >= py && y <= py+ph {
			return shiftForScroll(child, x, y+child.ScrollY)
		}
		bx, by, bw, bh := child.Box.BorderRect()
		if x >= bx && x <= bx+bw && y >= by && y <= by+bh {
			return shiftForScroll(child, x, y)
		}
	}
	return x, y
}

// handleWheel applies wheel delta to the innermost scrollable under the
// pointer, propagating the unconsumed remainder outward and finally to the
// viewport.
func (a *App) handleWheel() {
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	delta := -dy * wheelStep

	mx, my := ebiten.CursorPosition()
	x, y := a.docCoords(float64(mx), float64(my))

	var chain []*layout.RenderBox
	collectScrollChain(a.root, x, y, &chain)

	// Innermost first.
	for i := len(chain) - 1; i >= 0; i-- {
		delta = applyScroll(chain[i], delta)
		if delta == 0 {
			return
		}
	}

	// Remainder goes to the viewport.
	applyScroll(a.root, delta)
	a.scrollY = a.root.ScrollY
}

func collectScrollChain(b *layout.RenderBox, x, y float64, chain *[]*layout.RenderBox) {
	for _, child := range b.Children {
		bx, by, bw, bh := child.Box.BorderRect()
		if x < bx || x > bx+bw || y < by || y > by+bh {
			continue
		}
		if child.ScrollableHeight > 0 {
			*chain = append(*chain, child)
		}
		collectScrollChain(child, x, y, chain)
	}
}

// applyScroll consumes as much delta as the box allows and returns the
// rest.
func applyScroll(b *layout.RenderBox, delta float64) float64 {
	if b.ScrollableHeight <= 0 {
		return delta
	}
	before := b.ScrollY
	b.ScrollY += delta
	b.ClampScroll()
	return delta - (b.ScrollY - before)
}

// handlePointer turns mouse state into selection gestures.
func (a *App) handlePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := a.docCoords(float64(mx), float64(my))
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if a.tick-a.lastClickTick <= multiClickFrames &&
			absF(x-a.lastClickX) <= multiClickSlop && absF(y-a.lastClickY) <= multiClickSlop {
			a.clickCount++
			if a.clickCount > 3 {
				a.clickCount = 1
			}
		} else {
			a.clickCount = 1
		}
		a.lastClickTick = a.tick
		a.lastClickX, a.lastClickY = x, y
		a.mouseDown = true

		a.sel.PointerDown(x, y, a.clickCount, shift)
		return
	}

	if a.mouseDown && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		a.sel.PointerMove(x, y)
		return
	}

	if a.mouseDown && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.mouseDown = false
		a.sel.PointerUp()
	}
}

// handleKeys maps keyboard input onto caret movement, select-all and copy.
func (a *App) handleKeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		a.sel.MoveRight(shift, ctrl)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		a.sel.MoveLeft(shift, ctrl)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		a.sel.MoveDown(shift)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		a.sel.MoveUp(shift)
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyA):
		a.sel.SelectAll()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		a.copySelection()
	}
}

// copySelection serializes the selection to the system clipboard. An empty
// selection is a no-op.
func (a *App) copySelection() {
	text := a.sel.Serialize()
	if text == "" {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		a.log.Warn("clipboard write failed", zap.Error(err))
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
