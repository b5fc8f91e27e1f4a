package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flexChildren(root *RenderBox, containerTag string) []*RenderBox {
	container := boxByTag(root, containerTag)
	if container == nil {
		return nil
	}
	var out []*RenderBox
	for _, c := range container.Children {
		if c.Node != nil && !c.IsText() {
			out = append(out, c)
		}
	}
	return out
}

func TestFlexGrowDistribution(t *testing.T) {
	// 300px container, three 40px children, grow 1:2:0. Free space is 180,
	// split 100/160/40.
	root := renderHTML(t, `<body style="margin:0">
		<section style="display:flex; width:300px">
			<div style="width:40px; flex-grow:1"></div>
			<div style="width:40px; flex-grow:2"></div>
			<div style="width:40px"></div>
		</section>
	</body>`, 800, 600)

	children := flexChildren(root, "section")
	require.Len(t, children, 3)

	assert.InDelta(t, 100.0, children[0].Box.BorderBoxWidth(), 1e-9)
	assert.InDelta(t, 160.0, children[1].Box.BorderBoxWidth(), 1e-9)
	assert.InDelta(t, 40.0, children[2].Box.BorderBoxWidth(), 1e-9)

	x0, _, _, _ := children[0].Box.BorderRect()
	x1, _, _, _ := children[1].Box.BorderRect()
	x2, _, _, _ := children[2].Box.BorderRect()
	assert.InDelta(t, 0.0, x0, 1e-9)
	assert.InDelta(t, 100.0, x1, 1e-9)
	assert.InDelta(t, 260.0, x2, 1e-9)
}

func TestJustifyContent(t *testing.T) {
	tests := []struct {
		name    string
		justify string
		want    []float64 // child X positions
	}{
		{"start", "flex-start", []float64{0, 50}},
		{"center", "center", []float64{100, 150}},
		{"end", "flex-end", []float64{200, 250}},
		{"space_between", "space-between", []float64{0, 250}},
		{"space_around", "space-around", []float64{50, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := renderHTML(t, `<body style="margin:0">
				<section style="display:flex; width:300px; justify-content:`+tt.justify+`">
					<div style="width:50px"></div>
					<div style="width:50px"></div>
				</section>
			</body>`, 800, 600)

			children := flexChildren(root, "section")
			require.Len(t, children, 2)
			for i, want := range tt.want {
				x, _, _, _ := children[i].Box.BorderRect()
				assert.InDelta(t, want, x, 1e-9, "child %d", i)
			}
		})
	}
}

func TestFlexGap(t *testing.T) {
	root := renderHTML(t, `<body style="margin:0">
		<section style="display:flex; width:300px; gap:10px">
			<div style="width:40px"></div>
			<div style="width:40px"></div>
			<div style="width:40px"></div>
		</section>
	</body>`, 800, 600)

	children := flexChildren(root, "section")
	require.Len(t, children, 3)
	for i, want := range []float64{0, 50, 100} {
		x, _, _, _ := children[i].Box.BorderRect()
		assert.InDelta(t, want, x, 1e-9)
	}
}

func TestFlexWrap(t *testing.T) {
	root := renderHTML(t, `<body style="margin:0">
		<section style="display:flex; flex-wrap:wrap; width:100px">
			<div style="width:60px; height:10px"></div>
			<div style="width:60px; height:10px"></div>
		</section>
	</body>`, 800, 600)

	children := flexChildren(root, "section")
	require.Len(t, children, 2)

	_, y0, _, _ := children[0].Box.BorderRect()
	_, y1, _, _ := children[1].Box.BorderRect()
	assert.Greater(t, y1, y0, "the second item must wrap onto a new flex line")

	section := boxByTag(root, "section")
	assert.InDelta(t, 20.0, section.Box.ContentHeight, 1e-9)
}

func TestFlexColumnStacks(t *testing.T) {
	root := renderHTML(t, `<body style="margin:0">
		<section style="display:flex; flex-direction:column">
			<div style="height:30px"></div>
			<div style="height:20px"></div>
		</section>
	</body>`, 800, 600)

	children := flexChildren(root, "section")
	require.Len(t, children, 2)

	_, y0, _, h0 := children[0].Box.BorderRect()
	_, y1, _, _ := children[1].Box.BorderRect()
	assert.Equal(t, 0.0, y0)
	assert.InDelta(t, h0, y1-y0, 1e-9)

	section := boxByTag(root, "section")
	assert.InDelta(t, 50.0, section.Box.ContentHeight, 1e-9)
}

func TestRowReverse(t *testing.T) {
	root := renderHTML(t, `<body style="margin:0">
		<section style="display:flex; flex-direction:row-reverse; width:100px">
			<div style="width:30px"></div>
			<div style="width:30px"></div>
		</section>
	</body>`, 800, 600)

	children := flexChildren(root, "section")
	require.Len(t, children, 2)
	x0, _, _, _ := children[0].Box.BorderRect()
	x1, _, _, _ := children[1].Box.BorderRect()
	assert.Greater(t, x0, x1, "row-reverse places the first child after the second")
}
