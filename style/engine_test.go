package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-view/css"
	"go-view/css/values"
	"go-view/dom"
)

func parseDoc(t *testing.T, raw string) *dom.Node {
	t.Helper()
	doc, err := dom.ParseHTML(raw)
	require.NoError(t, err)
	return doc
}

// computeChain computes styles down to target, mirroring how the render
// tree builder walks the document.
func computeChain(e *Engine, target *dom.Node) *values.ComputedStyle {
	var chain []*dom.Node
	for n := target; n != nil; n = n.Parent {
		chain = append([]*dom.Node{n}, chain...)
	}
	var parent *values.ComputedStyle
	var computed *values.ComputedStyle
	for _, n := range chain {
		computed = e.ComputeFor(n, parent)
		parent = computed
	}
	return computed
}

func firstTag(root *dom.Node, tag string) *dom.Node {
	els := dom.FindByTag(root, tag)
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

func TestUserAgentDefaults(t *testing.T) {
	doc := parseDoc(t, "<p>x</p><span>y</span><li>z</li>")
	e := NewEngine()

	assert.Equal(t, "block", computeChain(e, firstTag(doc, "p")).Display)
	assert.Equal(t, "inline", computeChain(e, firstTag(doc, "span")).Display)
	assert.Equal(t, "list-item", computeChain(e, firstTag(doc, "li")).Display)
	assert.Equal(t, "none", computeChain(e, firstTag(doc, "head")).Display)
}

func TestAuthorOverridesUserAgent(t *testing.T) {
	doc := parseDoc(t, "<p>x</p>")
	sheet := css.ParseStylesheet("p { display: inline-block; color: red; }", css.OriginAuthor)
	e := NewEngine(sheet)

	s := computeChain(e, firstTag(doc, "p"))
	assert.Equal(t, "inline-block", s.Display)
	assert.InDelta(t, 1.0, s.Color.R, 0.01)
}

func TestSpecificityWinsOverOrder(t *testing.T) {
	doc := parseDoc(t, `<p class="note" id="it">x</p>`)
	sheet := css.ParseStylesheet(`
		#it { color: #0000ff; }
		.note { color: #00ff00; }
		p { color: #ff0000; }
	`, css.OriginAuthor)
	e := NewEngine(sheet)

	s := computeChain(e, firstTag(doc, "p"))
	assert.InDelta(t, 1.0, s.Color.B, 0.01, "the id rule must win despite source order")
	assert.InDelta(t, 0.0, s.Color.R, 0.01)
}

func TestSourceOrderBreaksTies(t *testing.T) {
	doc := parseDoc(t, "<p>x</p>")
	sheet := css.ParseStylesheet("p { color: #ff0000; } p { color: #00ff00; }", css.OriginAuthor)
	e := NewEngine(sheet)

	s := computeChain(e, firstTag(doc, "p"))
	assert.InDelta(t, 1.0, s.Color.G, 0.01)
}

func TestInlineStyleWins(t *testing.T) {
	doc := parseDoc(t, `<p id="it" style="color: #00ff00">x</p>`)
	sheet := css.ParseStylesheet("#it { color: #ff0000; }", css.OriginAuthor)
	e := NewEngine(sheet)

	s := computeChain(e, firstTag(doc, "p"))
	assert.InDelta(t, 1.0, s.Color.G, 0.01)
}

func TestInheritance(t *testing.T) {
	doc := parseDoc(t, `<div style="color: #ff0000; font-size: 20px"><p>x</p></div>`)
	e := NewEngine()

	s := computeChain(e, firstTag(doc, "p"))
	assert.InDelta(t, 1.0, s.Color.R, 0.01)
	assert.Equal(t, 20.0, s.FontSize)
	// Non-inherited properties keep their defaults.
	assert.True(t, s.BackgroundColor.IsTransparent())
}

func TestRelativeFontSizeResolvesAgainstParent(t *testing.T) {
	doc := parseDoc(t, `<div style="font-size: 20px"><p style="font-size: 1.5em">x</p></div>`)
	e := NewEngine()
	s := computeChain(e, firstTag(doc, "p"))
	assert.Equal(t, 30.0, s.FontSize)
}

func TestTextNodeCopiesTypography(t *testing.T) {
	doc := parseDoc(t, `<p style="color: #ff0000; font-size: 24px; text-align: center">hello</p>`)
	e := NewEngine()

	p := firstTag(doc, "p")
	require.Len(t, p.Children, 1)
	textStyle := computeChain(e, p.Children[0])

	assert.Equal(t, "inline", textStyle.Display)
	assert.Equal(t, 24.0, textStyle.FontSize)
	assert.Equal(t, "center", textStyle.TextAlign)
	assert.InDelta(t, 1.0, textStyle.Color.R, 0.01)
}

func TestListRuntimeRules(t *testing.T) {
	doc := parseDoc(t, "<ul><li>a</li></ul><ol><li>x</li><li>y</li></ol>")
	e := NewEngine()

	items := dom.FindByTag(doc, "li")
	require.Len(t, items, 3)

	assert.Equal(t, "disc", computeChain(e, items[0]).ListStyleType)

	second := computeChain(e, items[2])
	assert.Equal(t, "decimal", second.ListStyleType)
	assert.Equal(t, 2, second.ListItemIndex)
}

func TestBoldAndHeadingDefaults(t *testing.T) {
	doc := parseDoc(t, "<h1>big</h1><strong>b</strong><em>i</em>")
	e := NewEngine()

	h1 := computeChain(e, firstTag(doc, "h1"))
	assert.Equal(t, 700, h1.FontWeight)
	assert.Equal(t, 32.0, h1.FontSize)

	assert.Equal(t, 700, computeChain(e, firstTag(doc, "strong")).FontWeight)
	assert.Equal(t, "italic", computeChain(e, firstTag(doc, "em")).FontStyle)
}
