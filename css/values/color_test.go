package values

import (
	"math"
	"testing"
)

func colorsClose(a, b Color) bool {
	const eps = 1.0 / 255
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Color
		ok    bool
	}{
		{"named", "red", RGBA8(255, 0, 0, 255), true},
		{"named_case", "RebeccaPurple", RGBA8(102, 51, 153, 255), true},
		{"transparent", "transparent", Transparent(), true},
		{"hex_short", "#f00", RGBA8(255, 0, 0, 255), true},
		{"hex_short_alpha", "#f008", RGBA8(255, 0, 0, 136), true},
		{"hex_full", "#1976d2", RGBA8(25, 118, 210, 255), true},
		{"hex_full_alpha", "#1976d280", RGBA8(25, 118, 210, 128), true},
		{"rgb", "rgb(10, 20, 30)", RGBA8(10, 20, 30, 255), true},
		{"rgb_percent", "rgb(100%, 0%, 50%)", Color{1, 0, 0.5, 1}, true},
		{"rgba", "rgba(255, 0, 0, 0.5)", Color{1, 0, 0, 0.5}, true},
		{"rgb_clamps", "rgb(300, -5, 0)", Color{1, 0, 0, 1}, true},
		{"hsl_red", "hsl(0, 100%, 50%)", Color{1, 0, 0, 1}, true},
		{"hsl_green", "hsl(120, 100%, 50%)", Color{0, 1, 0, 1}, true},
		{"hsl_gray", "hsl(0, 0%, 50%)", Color{0.5, 0.5, 0.5, 1}, true},
		{"hsla", "hsla(240, 100%, 50%, 0.25)", Color{0, 0, 1, 0.25}, true},
		{"hsl_wraps_hue", "hsl(480, 100%, 50%)", Color{0, 1, 0, 1}, true},
		{"bad_hex", "#12345", Color{}, false},
		{"unknown_name", "blurple", Color{}, false},
		{"empty", "", Color{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseColor(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !colorsClose(got, tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorToRGBA(t *testing.T) {
	c := Color{1, 0.5, 0, 1}.ToRGBA()
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Errorf("ToRGBA = %+v", c)
	}
}
