// Package render is the ebiten backend: it adapts ebiten's text and vector
// facilities to the paint sink and glyph provider contracts.
package render

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"go-view/font"
)

// GoTextFace adapts an ebiten GoTextFaceSource to the font.Face contract.
type GoTextFace struct {
	source *text.GoTextFaceSource
}

func (g *GoTextFace) textFace(sizePx float64) *text.GoTextFace {
	return &text.GoTextFace{Source: g.source, Size: sizePx}
}

func (g *GoTextFace) Advance(r rune, sizePx float64) float64 {
	if g.source == nil {
		return font.MissingAdvance
	}
	return text.Advance(string(r), g.textFace(sizePx))
}

func (g *GoTextFace) Ascent(sizePx float64) float64 {
	if g.source == nil {
		return sizePx * 0.8
	}
	return g.textFace(sizePx).Metrics().HAscent
}

func (g *GoTextFace) Descent(sizePx float64) float64 {
	if g.source == nil {
		return sizePx * 0.2
	}
	return g.textFace(sizePx).Metrics().HDescent
}

func (g *GoTextFace) TextWidth(s string, sizePx float64) float64 {
	if g.source == nil {
		return 0
	}
	return text.Advance(s, g.textFace(sizePx))
}

func (g *GoTextFace) HitTest(s string, localX, sizePx float64) int {
	return font.HitTestString(g, s, localX, sizePx)
}

func (g *GoTextFace) PositionAtIndex(s string, index int, sizePx float64) float64 {
	return font.PositionAt(g, s, index, sizePx)
}

// Source exposes the underlying face source for drawing.
func (g *GoTextFace) Source() *text.GoTextFaceSource {
	return g.source
}

// FontLibrary is a font.Provider over loaded GoText sources. Loading may
// run on background goroutines; lookups after a successful load need no
// further synchronization because sources are immutable.
type FontLibrary struct {
	mu       sync.RWMutex
	families map[string]*GoTextFace
	fallback *GoTextFace
}

// NewFontLibrary creates an empty library.
func NewFontLibrary() *FontLibrary {
	return &FontLibrary{families: make(map[string]*GoTextFace)}
}

// LoadFile registers a TTF/OTF file under a family name. The first loaded
// face becomes the last-resort fallback.
func (l *FontLibrary) LoadFile(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("font %q: %w", family, err)
	}
	return l.LoadBytes(family, data)
}

// LoadBytes registers an in-memory font under a family name.
func (l *FontLibrary) LoadBytes(family string, data []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("font %q: %w", family, err)
	}
	face := &GoTextFace{source: src}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.families[family] = face
	if l.fallback == nil {
		l.fallback = face
	}
	return nil
}

// GetFont resolves the family list, then serif, then anything loaded.
func (l *FontLibrary) GetFont(families []string, weight int, style string) font.Face {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, family := range families {
		if f, ok := l.families[family]; ok {
			return f
		}
	}
	if f, ok := l.families["serif"]; ok {
		return f
	}
	if l.fallback != nil {
		return l.fallback
	}
	return nil
}
