package css

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-view/css/values"
)

func applied(decls string) *values.ComputedStyle {
	style := values.NewComputedStyle()
	ApplyDeclarations(style, ParseDeclarations(decls))
	return style
}

func TestEdgeShorthand(t *testing.T) {
	tests := []struct {
		name                     string
		value                    string
		top, right, bottom, left float64
	}{
		{"one_value", "margin: 10px", 10, 10, 10, 10},
		{"two_values", "margin: 10px 20px", 10, 20, 10, 20},
		{"three_values", "margin: 10px 20px 30px", 10, 20, 30, 20},
		{"four_values", "margin: 1px 2px 3px 4px", 1, 2, 3, 4},
	}

	ctx := values.ResolveContext{FontSize: 16}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := applied(tt.value)
			assert.Equal(t, tt.top, s.MarginTop.Resolve(ctx))
			assert.Equal(t, tt.right, s.MarginRight.Resolve(ctx))
			assert.Equal(t, tt.bottom, s.MarginBottom.Resolve(ctx))
			assert.Equal(t, tt.left, s.MarginLeft.Resolve(ctx))
		})
	}
}

func TestBorderShorthand(t *testing.T) {
	s := applied("border: 2px solid red")
	ctx := values.ResolveContext{FontSize: 16}
	assert.Equal(t, 2.0, s.BorderTopWidth.Resolve(ctx))
	assert.Equal(t, 2.0, s.BorderLeftWidth.Resolve(ctx))
	assert.InDelta(t, 1.0, s.BorderTopColor.R, 0.01)
	assert.InDelta(t, 0.0, s.BorderTopColor.G, 0.01)

	side := applied("border-left: 4px #00f")
	assert.Equal(t, 4.0, side.BorderLeftWidth.Resolve(ctx))
	assert.InDelta(t, 1.0, side.BorderLeftColor.B, 0.01)
	// Other sides untouched.
	assert.Equal(t, 0.0, side.BorderTopWidth.Resolve(ctx))
}

func TestFlexShorthand(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		grow   float64
		shrink float64
		basis  values.Length
	}{
		{"auto", "flex: auto", 1, 1, values.Auto()},
		{"none", "flex: none", 0, 0, values.Auto()},
		{"single_number", "flex: 2", 2, 1, values.Percent(0)},
		{"grow_shrink", "flex: 2 3", 2, 3, values.Auto()},
		{"grow_basis", "flex: 2 30px", 2, 1, values.Px(30)},
		{"full", "flex: 1 2 10%", 1, 2, values.Percent(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := applied(tt.value)
			assert.Equal(t, tt.grow, s.FlexGrow)
			assert.Equal(t, tt.shrink, s.FlexShrink)
			assert.Equal(t, tt.basis, s.FlexBasis)
		})
	}
}

func TestKeywordPropertiesRejectUnknown(t *testing.T) {
	s := applied("display: sparkle; text-align: middleish; overflow: lost")
	assert.Equal(t, "inline", s.Display)
	assert.Equal(t, "left", s.TextAlign)
	assert.Equal(t, "visible", s.Overflow)
}

func TestFontProperties(t *testing.T) {
	s := applied("font-size: 2em; font-weight: bold; font-family: Inter, 'Noto Sans', sans-serif; line-height: 2")
	assert.Equal(t, 32.0, s.FontSize) // 2em of the initial 16
	assert.Equal(t, 700, s.FontWeight)
	assert.Equal(t, []string{"Inter", "Noto Sans", "sans-serif"}, s.FontFamily)
	assert.Equal(t, 2.0, s.LineHeight)

	px := applied("font-size: 20px; line-height: 30px")
	assert.Equal(t, 20.0, px.FontSize)
	assert.InDelta(t, 1.5, px.LineHeight, 1e-9)
}

func TestSetTracking(t *testing.T) {
	s := applied("color: red")
	assert.True(t, s.WasSet("color"))
	assert.False(t, s.WasSet("background-color"))
}
