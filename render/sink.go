package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-view/css/values"
	"go-view/font"
	"go-view/paint"
)

// Sink draws paint commands onto an ebiten image. Clips nest by
// intersecting subimages; translations accumulate onto every coordinate.
type Sink struct {
	screen *ebiten.Image

	clipStack []*ebiten.Image
	dx, dy    float64
	txStack   [][2]float64
}

var _ paint.Sink = (*Sink)(nil)

// NewSink creates a sink for one frame's target image.
func NewSink(screen *ebiten.Image) *Sink {
	return &Sink{screen: screen}
}

// target returns the current clip target.
func (s *Sink) target() *ebiten.Image {
	if n := len(s.clipStack); n > 0 {
		return s.clipStack[n-1]
	}
	return s.screen
}

func (s *Sink) FillRect(x, y, w, h float64, c values.Color) {
	vector.DrawFilledRect(s.target(), float32(x+s.dx), float32(y+s.dy), float32(w), float32(h), c.ToRGBA(), true)
}

func (s *Sink) StrokeRect(x, y, w, h float64, c values.Color) {
	vector.StrokeRect(s.target(), float32(x+s.dx), float32(y+s.dy), float32(w), float32(h), 1, c.ToRGBA(), true)
}

func (s *Sink) FillRoundedRect(x, y, w, h, radius float64, c values.Color) {
	// ebiten's vector package has no rounded rect primitive; a plain rect
	// keeps the command honest visually for small radii.
	vector.DrawFilledRect(s.target(), float32(x+s.dx), float32(y+s.dy), float32(w), float32(h), c.ToRGBA(), true)
}

func (s *Sink) Line(x1, y1, x2, y2, thickness float64, c values.Color) {
	vector.StrokeLine(s.target(), float32(x1+s.dx), float32(y1+s.dy), float32(x2+s.dx), float32(y2+s.dy), float32(thickness), c.ToRGBA(), true)
}

func (s *Sink) TextRun(xBaseline, yBaseline float64, str string, face font.Face, sizePx float64, c values.Color) {
	gt, ok := face.(*GoTextFace)
	if !ok || gt == nil || gt.Source() == nil {
		return
	}
	tf := &text.GoTextFace{Source: gt.Source(), Size: sizePx}
	op := &text.DrawOptions{}
	// text.Draw positions the em box top; shift up by the ascent to honor
	// the baseline contract.
	op.GeoM.Translate(xBaseline+s.dx, yBaseline+s.dy-tf.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c.ToRGBA())
	text.Draw(s.target(), str, tf, op)
}

func (s *Sink) PushClip(x, y, w, h float64) {
	r := image.Rect(int(x+s.dx), int(y+s.dy), int(x+s.dx+w), int(y+s.dy+h))
	r = r.Intersect(s.target().Bounds())
	sub := s.target().SubImage(r).(*ebiten.Image)
	s.clipStack = append(s.clipStack, sub)
}

func (s *Sink) PopClip() {
	if n := len(s.clipStack); n > 0 {
		s.clipStack = s.clipStack[:n-1]
	}
}

func (s *Sink) PushTranslate(dx, dy float64) {
	s.txStack = append(s.txStack, [2]float64{dx, dy})
	s.dx += dx
	s.dy += dy
}

func (s *Sink) PopTranslate() {
	if n := len(s.txStack); n > 0 {
		t := s.txStack[n-1]
		s.txStack = s.txStack[:n-1]
		s.dx -= t[0]
		s.dy -= t[1]
	}
}
