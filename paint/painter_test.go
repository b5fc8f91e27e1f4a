package paint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-view/css"
	"go-view/dom"
	"go-view/font"
	"go-view/layout"
	"go-view/selection"
	"go-view/style"
)

func paintHTML(t *testing.T, raw string) (*DisplayList, *layout.RenderBox, *selection.Selection) {
	t.Helper()
	doc, err := dom.ParseHTML(raw)
	require.NoError(t, err)

	engine := style.NewEngine()
	for _, sheetText := range dom.StylesheetTexts(doc) {
		engine.AddSheet(css.ParseStylesheet(sheetText, css.OriginAuthor))
	}

	provider := font.FixedProvider(0.5)
	root := layout.BuildRenderTree(doc, engine)
	layout.NewEngine(provider, 800, 600).Layout(root)

	sel := selection.New(provider)
	sel.Rebuild(root)

	list := &DisplayList{}
	NewPainter(provider, 800, 600).Paint(root, sel, list)
	return list, root, sel
}

func commandsOfKind(list *DisplayList, kind CommandKind) []Command {
	var out []Command
	for _, c := range list.Commands {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func TestPaintEmitsScrollTranslate(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0"><p style="margin:0">hi</p></body>`)
	require.NotEmpty(t, list.Commands)
	assert.Equal(t, CmdPushTranslate, list.Commands[0].Kind)
	assert.Equal(t, CmdPopTranslate, list.Commands[len(list.Commands)-1].Kind)
}

func TestClipAndTranslateBalance(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0">
		<div style="overflow:scroll; height:30px">
			<p style="margin:0">one</p><p style="margin:0">two</p><p style="margin:0">three</p>
		</div>
	</body>`)

	assert.Equal(t,
		len(commandsOfKind(list, CmdPushClip)), len(commandsOfKind(list, CmdPopClip)))
	assert.Equal(t,
		len(commandsOfKind(list, CmdPushTranslate)), len(commandsOfKind(list, CmdPopTranslate)))
	assert.NotEmpty(t, commandsOfKind(list, CmdPushClip), "a scrolled box must clip its children")
}

func TestTextRunsEmitted(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0"><p style="margin:0">hello world</p></body>`)
	runs := commandsOfKind(list, CmdTextRun)
	require.NotEmpty(t, runs)

	var texts []string
	for _, r := range runs {
		texts = append(texts, r.Text)
	}
	assert.Contains(t, strings.Join(texts, "|"), "hello world")
}

func TestBackgroundPaintedBeforeText(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0">
		<p style="margin:0; background-color:#ff0000">x</p>
	</body>`)

	bgIdx, textIdx := -1, -1
	for i, c := range list.Commands {
		if c.Kind == CmdFillRect && c.Color.R > 0.9 && bgIdx == -1 {
			bgIdx = i
		}
		if c.Kind == CmdTextRun && textIdx == -1 {
			textIdx = i
		}
	}
	require.NotEqual(t, -1, bgIdx)
	require.NotEqual(t, -1, textIdx)
	assert.Less(t, bgIdx, textIdx)
}

func TestViewportCulling(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0">
		<div style="height:5000px"></div>
		<p style="margin:0; background-color:#00ff00">far away</p>
	</body>`)

	for _, c := range commandsOfKind(list, CmdFillRect) {
		assert.False(t, c.Color.G > 0.9 && c.Color.R < 0.1, "offscreen background must be culled")
	}
	assert.Empty(t, commandsOfKind(list, CmdTextRun))
}

func TestSelectionHighlightAndRecolour(t *testing.T) {
	doc, err := dom.ParseHTML(`<body style="margin:0"><p style="margin:0">abcdef</p></body>`)
	require.NoError(t, err)

	provider := font.FixedProvider(0.5)
	root := layout.BuildRenderTree(doc, style.NewEngine())
	layout.NewEngine(provider, 800, 600).Layout(root)

	sel := selection.New(provider)
	sel.Rebuild(root)
	sel.SelectAll()

	list := &DisplayList{}
	NewPainter(provider, 800, 600).Paint(root, sel, list)

	fills := commandsOfKind(list, CmdFillRect)
	require.NotEmpty(t, fills, "selection emits a highlight rect")

	runs := commandsOfKind(list, CmdTextRun)
	require.Len(t, runs, 2, "base run plus recoloured selected run")
	assert.Equal(t, runs[0].Text, runs[1].Text)
	assert.Equal(t, ColorSelectedText, runs[1].Color)
}

func TestTextDecorationLines(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0">
		<p style="margin:0; text-decoration:underline">u</p>
	</body>`)
	assert.NotEmpty(t, commandsOfKind(list, CmdLine))
}

func TestListMarkers(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0">
		<ol><li>first</li><li>second</li></ol>
	</body>`)

	var labels []string
	for _, r := range commandsOfKind(list, CmdTextRun) {
		labels = append(labels, r.Text)
	}
	joined := strings.Join(labels, "|")
	assert.Contains(t, joined, "1.")
	assert.Contains(t, joined, "2.")
}

func TestBorderStripsUseResolvedWidths(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0">
		<div style="border:3px solid #0000ff; width:50px; height:10px"></div>
	</body>`)

	var blue []Command
	for _, c := range commandsOfKind(list, CmdFillRect) {
		if c.Color.B > 0.9 && c.Color.R < 0.1 {
			blue = append(blue, c)
		}
	}
	require.Len(t, blue, 4, "four border sides")
	assert.Equal(t, 3.0, blue[0].H, "top strip thickness")
}

func TestReplayRoundTrip(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0"><p style="margin:0">abc</p></body>`)
	replayed := &DisplayList{}
	list.Replay(replayed)
	assert.Equal(t, list.Commands, replayed.Commands)
}

func TestOpacityScalesAlpha(t *testing.T) {
	list, _, _ := paintHTML(t, `<body style="margin:0">
		<div style="background-color:#ff0000; opacity:0.5; height:10px"></div>
	</body>`)

	var found bool
	for _, c := range commandsOfKind(list, CmdFillRect) {
		if c.Color.R > 0.9 {
			assert.InDelta(t, 0.5, c.Color.A, 0.01)
			found = true
		}
	}
	assert.True(t, found)
}
