package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBreakUnits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"words_and_spaces", "aa bb", []string{"aa", " ", "bb"}},
		{"hyphen_breaks_after_dash", "well-known", []string{"well-", "known"}},
		{"trailing_punct_stays", "stop, go", []string{"stop,", " ", "go"}},
		{"lone_punct", "a , b", []string{"a", " ", ",", " ", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, tok := range tokenizeBreakUnits(tt.input) {
				got = append(got, tok.text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenStartOffsets(t *testing.T) {
	toks := tokenizeBreakUnits("ab cd")
	require.Len(t, toks, 3)
	assert.Equal(t, 0, toks[0].start)
	assert.Equal(t, 2, toks[1].start)
	assert.Equal(t, 3, toks[2].start)
}

func TestPunctOnlyFlag(t *testing.T) {
	toks := tokenizeBreakUnits("a ,")
	require.Len(t, toks, 3)
	assert.False(t, toks[0].puncOnly)
	assert.True(t, toks[2].puncOnly)
}

func TestStandaloneTextWraps(t *testing.T) {
	// 8px per char at the default font; "aaa bbb ccc" needs 88px, the box
	// gives 64, so the third word wraps.
	root := renderHTML(t, `<body style="margin:0">
		<p style="margin:0; width:64px">aaa bbb ccc</p>
	</body>`, 800, 600)

	tb := textBoxContaining(root, "aaa")
	require.NotNil(t, tb)
	require.Len(t, tb.Lines, 2)

	assert.Equal(t, "aaa bbb", tb.Lines[0].Text)
	assert.Equal(t, "ccc", tb.Lines[1].Text)
	assert.Equal(t, 0, tb.Lines[0].Start)
	assert.Equal(t, 8, tb.Lines[1].Start)

	// Line monotonicity: Y never decreases within one text box.
	assert.Greater(t, tb.Lines[1].Y, tb.Lines[0].Y)
}

func TestInlineFlowAcrossElements(t *testing.T) {
	root := renderHTML(t, `<body style="margin:0">
		<p style="margin:0">Hello <strong>world</strong> today</p>
	</body>`, 800, 600)

	hello := textBoxContaining(root, "Hello")
	world := textBoxContaining(root, "world")
	today := textBoxContaining(root, "today")
	require.NotNil(t, hello)
	require.NotNil(t, world)
	require.NotNil(t, today)

	require.Len(t, hello.Lines, 1)
	require.Len(t, world.Lines, 1)
	require.Len(t, today.Lines, 1)

	// One visual line: "Hello " then "world" then " today".
	assert.Equal(t, hello.Lines[0].Y, world.Lines[0].Y)
	assert.Equal(t, world.Lines[0].Y, today.Lines[0].Y)
	assert.Equal(t, "Hello ", hello.Lines[0].Text)
	assert.InDelta(t, 48.0, world.Lines[0].X, 1e-9)
	assert.InDelta(t, 88.0, today.Lines[0].X, 1e-9)
}

func TestInlineElementWrapsAsUnit(t *testing.T) {
	// "aaaa" fills 32 of the 64px line; the <em> word needs 40 more, so
	// the whole inline unit wraps first.
	root := renderHTML(t, `<body style="margin:0">
		<div style="width:64px"><p style="margin:0">aaaa <em>bbbbb</em></p></div>
	</body>`, 800, 600)

	em := textBoxContaining(root, "bbbbb")
	require.NotNil(t, em)
	require.Len(t, em.Lines, 1)
	assert.Equal(t, 0.0, em.Lines[0].X)

	first := textBoxContaining(root, "aaaa")
	require.NotNil(t, first)
	assert.Greater(t, em.Lines[0].Y, first.Lines[0].Y)
}

func TestBrForcesLineBreak(t *testing.T) {
	root := renderHTML(t, `<body style="margin:0">
		<p style="margin:0">a<br>b</p>
	</body>`, 800, 600)

	a := textBoxContaining(root, "a")
	b := textBoxContaining(root, "b")
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.Len(t, a.Lines, 1)
	require.Len(t, b.Lines, 1)

	assert.Equal(t, 0.0, b.Lines[0].X)
	assert.InDelta(t, 22.4, b.Lines[0].Y-a.Lines[0].Y, 0.01)
}

func TestTextAlignShiftsLines(t *testing.T) {
	root := renderHTML(t, `<body style="margin:0">
		<p style="margin:0; width:100px; text-align:center">abc</p>
		<div style="width:100px; text-align:right"><p style="margin:0">abc</p></div>
	</body>`, 800, 600)

	centered := textBoxContaining(root, "abc")
	require.NotNil(t, centered)
	// 24px of text in 100px: centered at 38.
	assert.InDelta(t, 38.0, centered.Lines[0].X, 1e-9)
}

func TestVerticalAlignSuper(t *testing.T) {
	root := renderHTML(t, `<body style="margin:0">
		<p style="margin:0">x<span style="vertical-align:super">2</span></p>
	</body>`, 800, 600)

	base := textBoxContaining(root, "x")
	sup := textBoxContaining(root, "2")
	require.NotNil(t, base)
	require.NotNil(t, sup)

	// super raises the run 0.4em above the line top.
	assert.InDelta(t, -6.4, sup.Lines[0].Y-base.Lines[0].Y, 0.01)
}

func TestLeadingSpaceDroppedAfterWrap(t *testing.T) {
	root := renderHTML(t, `<body style="margin:0">
		<p style="margin:0; width:40px">aaaa bbb</p>
	</body>`, 800, 600)

	tb := textBoxContaining(root, "aaaa")
	require.NotNil(t, tb)
	require.Len(t, tb.Lines, 2)
	assert.Equal(t, "aaaa", tb.Lines[0].Text)
	assert.Equal(t, "bbb", tb.Lines[1].Text)
	assert.Equal(t, 0.0, tb.Lines[1].X)
}
