package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedFaceMetrics(t *testing.T) {
	f := &FixedFace{AdvanceRatio: 0.5}

	assert.Equal(t, 8.0, f.Advance('a', 16))
	assert.Equal(t, 40.0, f.TextWidth("hello", 16))
	assert.Equal(t, 12.8, f.Ascent(16))
}

func TestHitTestString(t *testing.T) {
	f := &FixedFace{AdvanceRatio: 0.5} // 8px per rune at size 16

	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"before_first_midpoint", 2, 0},
		{"past_first_midpoint", 5, 1},
		{"inside_second", 10, 1},
		{"past_all", 100, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.HitTest("hello", tt.x, 16))
		})
	}
}

func TestPositionAtIndexMultibyte(t *testing.T) {
	f := &FixedFace{AdvanceRatio: 0.5}
	// "é" is two bytes; both runes advance 8px each.
	s := "aé b"
	require.Equal(t, 5, len(s))

	assert.Equal(t, 0.0, f.PositionAtIndex(s, 0, 16))
	assert.Equal(t, 8.0, f.PositionAtIndex(s, 1, 16))
	assert.Equal(t, 16.0, f.PositionAtIndex(s, 3, 16))
	assert.Equal(t, 32.0, f.PositionAtIndex(s, 5, 16))
}

// missingFace serves no glyphs at all.
type missingFace struct{ FixedFace }

func (m *missingFace) Advance(r rune, sizePx float64) float64 {
	return MissingAdvance
}

func TestMissingGlyphsContributeNothing(t *testing.T) {
	m := &missingFace{}
	assert.Equal(t, 0.0, MeasureWidth(m, "abc", 16))
	assert.Equal(t, 3, HitTestString(m, "abc", 50, 16))
}

func TestRegistryFallbackChain(t *testing.T) {
	serif := &FixedFace{AdvanceRatio: 0.4}
	sans := &FixedFace{AdvanceRatio: 0.5}

	reg := NewRegistry(nil)
	reg.Register("serif", 400, "normal", serif)
	reg.Register("Inter", 400, "normal", sans)

	assert.Same(t, sans, reg.GetFont([]string{"Inter"}, 400, "normal"))
	assert.Same(t, serif, reg.GetFont([]string{"NoSuchFamily"}, 400, "normal"))
	// Bold request degrades to the regular face.
	assert.Same(t, sans, reg.GetFont([]string{"Inter"}, 700, "normal"))
}

func TestRegistryEmptyReturnsFallback(t *testing.T) {
	fb := &FixedFace{}
	assert.Same(t, fb, NewRegistry(fb).GetFont([]string{"x"}, 400, "normal"))

	var nilReg = NewRegistry(nil)
	assert.Nil(t, nilReg.GetFont([]string{"x"}, 400, "normal"))
}
