// Package font defines the glyph metrics contract the layout and selection
// engines consume. Providers decode UTF-8 themselves; all string indices in
// this module are byte offsets on rune boundaries.
package font

import "unicode/utf8"

// MissingAdvance is the sentinel a Face returns for a codepoint it cannot
// serve yet; the caller drops the codepoint and never fails.
const MissingAdvance = -1.0

// Face exposes synchronous metric and hit-test queries for one resolved
// font. Implementations must be safe for repeated lookup without external
// synchronization once a query has succeeded.
type Face interface {
	// Advance returns the horizontal advance of a codepoint at the given
	// pixel size, or MissingAdvance when the glyph is unavailable.
	Advance(r rune, sizePx float64) float64
	// Ascent is the distance from baseline to the top of the em box.
	Ascent(sizePx float64) float64
	// Descent is the distance from baseline to the bottom of the em box.
	Descent(sizePx float64) float64
	// TextWidth measures a whole string; unavailable codepoints contribute
	// no advance.
	TextWidth(s string, sizePx float64) float64
	// HitTest maps a local X offset to the byte index of the character the
	// pointer is past the mid-point of.
	HitTest(s string, localX, sizePx float64) int
	// PositionAtIndex returns the X offset of the character at the given
	// byte index.
	PositionAtIndex(s string, index int, sizePx float64) float64
}

// Provider resolves a font family list plus weight and style to a Face.
// Resolution falls back: explicit families, then serif, then any loaded
// face. A provider with nothing loaded returns nil; callers treat that as
// zero-width text.
type Provider interface {
	GetFont(families []string, weight int, style string) Face
}

// TextWidth is a nil-tolerant helper over Face.TextWidth.
func TextWidth(f Face, s string, sizePx float64) float64 {
	if f == nil {
		return 0
	}
	return f.TextWidth(s, sizePx)
}

// MeasureWidth sums per-codepoint advances the way every Face does, skipping
// unavailable glyphs. Faces with uniform metrics can delegate to it.
func MeasureWidth(f Face, s string, sizePx float64) float64 {
	w := 0.0
	for _, r := range s {
		adv := f.Advance(r, sizePx)
		if adv == MissingAdvance {
			continue
		}
		w += adv
	}
	return w
}

// HitTestString walks s summing advances and returns the byte index of the
// character whose mid-point localX has passed.
func HitTestString(f Face, s string, localX, sizePx float64) int {
	x := 0.0
	for i, r := range s {
		adv := f.Advance(r, sizePx)
		if adv == MissingAdvance {
			continue
		}
		if localX < x+adv/2 {
			return i
		}
		x += adv
	}
	return len(s)
}

// PositionAt returns the X offset in s of the rune starting at byte index.
func PositionAt(f Face, s string, index int, sizePx float64) float64 {
	if index > len(s) {
		index = len(s)
	}
	x := 0.0
	for i := 0; i < index; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			break
		}
		adv := f.Advance(r, sizePx)
		if adv != MissingAdvance {
			x += adv
		}
		i += size
	}
	return x
}
