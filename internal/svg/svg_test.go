package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorString(t *testing.T) {
	assert.Equal(t, "red", Named("red").String())
	assert.Equal(t, "rgb(1,2,3)", RGB(1, 2, 3).String())
	assert.Equal(t, "rgba(1,2,3,0.5)", RGBA(1, 2, 3, 0.5).String())
}

func TestCircleRender(t *testing.T) {
	c := NewCircle(Point{X: 1, Y: 2}, 5).SetFillColor(Named("white"))
	got := c.Render()
	assert.Contains(t, got, `cx="1"`)
	assert.Contains(t, got, `cy="2"`)
	assert.Contains(t, got, `r="5"`)
	assert.Contains(t, got, `fill="white"`)
}

func TestPolylineRender(t *testing.T) {
	p := NewPolyline().AddPoint(Point{0, 0}).AddPoint(Point{1, 1}).SetStrokeWidth(2)
	got := p.Render()
	assert.Contains(t, got, "0,0")
	assert.Contains(t, got, "1,1")
	assert.Contains(t, got, `stroke-width="2"`)
}

func TestTextEscapesData(t *testing.T) {
	txt := NewText(Point{}, "A & B")
	assert.Contains(t, txt.Render(), "A &amp; B")
}

// Invariant 8: after overlay cleanup the base document is byte-for-
// byte identical.
func TestDocumentTruncateRestoresExactBytes(t *testing.T) {
	doc := NewDocument()
	doc.Add(NewCircle(Point{1, 1}, 2))
	before := doc.Render()
	baseLen := doc.Len()

	doc.Add(NewCircle(Point{3, 3}, 4))
	doc.Add(NewPolyline().AddPoint(Point{0, 0}))
	assert.NotEqual(t, before, doc.Render())

	doc.Truncate(baseLen)
	assert.Equal(t, before, doc.Render())
}

func TestDocumentRenderWrapsInSVG(t *testing.T) {
	doc := NewDocument()
	got := doc.Render()
	assert.Contains(t, got, "<svg")
	assert.Contains(t, got, "</svg>")
}
