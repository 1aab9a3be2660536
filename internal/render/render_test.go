package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitquery/internal/geo"
	"transitquery/internal/graph"
	"transitquery/internal/layout"
	"transitquery/internal/svg"
	"transitquery/internal/transit"
)

func fixtureStore(t *testing.T) (*transit.Store, map[string]svg.Point) {
	st := transit.NewStore()
	st.AddStop("A", geo.Point{Lat: 55.6, Lon: 37.6})
	st.AddStop("B", geo.Point{Lat: 55.7, Lon: 37.7})
	st.AddDistance("A", "B", 1000)
	st.AddBus("99", []string{"A", "B"}, false)

	coords := layout.Compute(st, layout.Settings{Width: 600, Height: 400, Padding: 10})
	return st, coords
}

func fixtureSettings() Settings {
	return Settings{
		Width: 600, Height: 400, Padding: 10,
		StopRadius: 5, LineWidth: 2,
		StopLabelFontSize: 10, BusLabelFontSize: 10,
		OuterMargin:     20,
		StopLabelOffset: svg.Point{X: 7, Y: -3},
		BusLabelOffset:  svg.Point{X: 7, Y: -3},
		UnderlayerColor: svg.Named("white"),
		UnderlayerWidth: 4,
		ColorPalette:    []svg.Color{svg.Named("green"), svg.RGB(0, 0, 255)},
		Layers:          []string{"bus_lines", "bus_labels", "stop_points", "stop_labels"},
	}
}

func TestRendererDrawsBusLineAndStopPoints(t *testing.T) {
	st, coords := fixtureStore(t)
	r := New(st, coords, fixtureSettings())

	got := r.Map()
	assert.Contains(t, got, "<polyline")
	assert.Contains(t, got, "<circle")
	assert.Contains(t, got, "<text")
}

func TestOverlayRenderRouteThenCleansUp(t *testing.T) {
	st, coords := fixtureStore(t)
	r := New(st, coords, fixtureSettings())
	overlay := r.NewOverlay()

	a, _ := st.Stop("A")
	b, _ := st.Stop("B")
	edges := []*graph.Edge{
		{From: a.WaitVertex(), To: a.BoardVertex(), Kind: graph.Wait, Label: "A", Weight: 6},
		{
			From: a.BoardVertex(), To: b.WaitVertex(), Kind: graph.Ride, Label: "99",
			SpanCount: 1, Weight: 1,
			Sequence:  []graph.StopPair{{From: "A", To: "B"}},
		},
	}

	before := r.base.Render()
	got := overlay.RenderRoute(edges)
	assert.Contains(t, got, "<rect")
	assert.Contains(t, got, "<polyline")

	after := r.base.Render()
	assert.Equal(t, before, after)
}

func TestPaletteIndexingWrapsAround(t *testing.T) {
	st := transit.NewStore()
	st.AddStop("A", geo.Point{Lat: 0, Lon: 0})
	st.AddStop("B", geo.Point{Lat: 0, Lon: 1})
	st.AddDistance("A", "B", 10)
	st.AddBus("one", []string{"A", "B"}, false)
	st.AddBus("two", []string{"A", "B"}, false)

	coords := layout.Compute(st, layout.Settings{Width: 100, Height: 100, Padding: 5})
	settings := fixtureSettings()
	settings.ColorPalette = []svg.Color{svg.Named("only-color")}
	r := New(st, coords, settings)

	require.Equal(t, "only-color", r.paletteColor("one").String())
	require.Equal(t, "only-color", r.paletteColor("two").String())
}
