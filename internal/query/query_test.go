package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitquery/internal/requestdoc"
)

func renderSettingsFixture() requestdoc.RenderSettings {
	var white, green requestdoc.Color
	_ = white.UnmarshalJSON([]byte(`"white"`))
	_ = green.UnmarshalJSON([]byte(`"green"`))
	return requestdoc.RenderSettings{
		Width: 600, Height: 400, Padding: 10,
		StopRadius: 5, LineWidth: 2,
		StopLabelFontSize: 10, BusLabelFontSize: 10,
		OuterMargin:     20,
		StopLabelOffset: [2]float64{7, -3},
		BusLabelOffset:  [2]float64{7, -3},
		UnderlayerColor: white,
		UnderlayerWidth: 4,
		ColorPalette:    []requestdoc.Color{green},
		Layers:          []string{"bus_lines", "bus_labels", "stop_points", "stop_labels"},
	}
}

// S1: empty network, one Map request.
func TestEmptyNetworkMap(t *testing.T) {
	doc := &requestdoc.Document{
		RoutingSettings: requestdoc.RoutingSettings{BusWaitTime: 1, BusVelocity: 1},
		RenderSettings:  renderSettingsFixture(),
		StatRequests:    []requestdoc.StatRequest{{Type: "Map", ID: 1}},
	}
	engine, err := Build(doc)
	require.NoError(t, err)

	resp := engine.Answer(doc.StatRequests[0])
	assert.True(t, strings.HasPrefix(resp.Map, "<?xml"))
	assert.Contains(t, resp.Map, "<svg")
}

// S2: single stop placed at (padding, height-padding), no polylines.
func TestSingleStopMap(t *testing.T) {
	doc := &requestdoc.Document{
		RoutingSettings: requestdoc.RoutingSettings{BusWaitTime: 1, BusVelocity: 1},
		RenderSettings:  renderSettingsFixture(),
		BaseRequests: []requestdoc.BaseRequest{
			{Type: "Stop", Name: "A", Latitude: 55.6, Longitude: 37.6},
		},
		StatRequests: []requestdoc.StatRequest{{Type: "Map", ID: 1}},
	}
	engine, err := Build(doc)
	require.NoError(t, err)

	resp := engine.Answer(doc.StatRequests[0])
	assert.NotContains(t, resp.Map, "<polyline")
}

// S3: one linear bus, two stops.
func TestLinearBusRoute(t *testing.T) {
	doc := &requestdoc.Document{
		RoutingSettings: requestdoc.RoutingSettings{BusWaitTime: 6, BusVelocity: 60},
		RenderSettings:  renderSettingsFixture(),
		BaseRequests: []requestdoc.BaseRequest{
			{Type: "Stop", Name: "A", Latitude: 55.6, Longitude: 37.6, RoadDistances: map[string]int{"B": 1000}},
			{Type: "Stop", Name: "B", Latitude: 55.7, Longitude: 37.7},
			{Type: "Bus", Name: "99", IsRoundtrip: true, Stops: []string{"A", "B"}},
		},
		StatRequests: []requestdoc.StatRequest{{Type: "Route", ID: 1, From: "A", To: "B"}},
	}
	engine, err := Build(doc)
	require.NoError(t, err)

	resp := engine.Answer(doc.StatRequests[0])
	require.NotNil(t, resp.TotalTime)
	assert.InDelta(t, 7.0, *resp.TotalTime, 1e-9)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Wait", resp.Items[0].Type)
	assert.Equal(t, "A", resp.Items[0].StopName)
	assert.InDelta(t, 6.0, resp.Items[0].Time, 1e-9)
	assert.Equal(t, "Bus", resp.Items[1].Type)
	assert.Equal(t, "99", resp.Items[1].Bus)
	assert.Equal(t, uint(1), resp.Items[1].SpanCount)
	assert.InDelta(t, 1.0, resp.Items[1].Time, 1e-9)
}

// S4: curvature through the Bus stat request.
func TestBusStatCurvature(t *testing.T) {
	doc := &requestdoc.Document{
		RoutingSettings: requestdoc.RoutingSettings{BusWaitTime: 1, BusVelocity: 60},
		RenderSettings:  renderSettingsFixture(),
		BaseRequests: []requestdoc.BaseRequest{
			{Type: "Stop", Name: "A", Latitude: 55.6, Longitude: 37.6, RoadDistances: map[string]int{"B": 1400}},
			{Type: "Stop", Name: "B", Latitude: 55.609, Longitude: 37.6}, // about 1000 m north of A
			{Type: "Bus", Name: "99", IsRoundtrip: true, Stops: []string{"A", "B"}},
		},
		StatRequests: []requestdoc.StatRequest{{Type: "Bus", ID: 1, Name: "99"}},
	}
	engine, err := Build(doc)
	require.NoError(t, err)

	resp := engine.Answer(doc.StatRequests[0])
	assert.Equal(t, 2, resp.StopCount)
	assert.Equal(t, 2, resp.UniqueStopCount)
	assert.Equal(t, 1400, resp.RouteLength)
	assert.GreaterOrEqual(t, resp.Curvature, 1.0)
}

// S6: router tie, first-constructed bus wins deterministically.
func TestRouterTieBreak(t *testing.T) {
	doc := &requestdoc.Document{
		RoutingSettings: requestdoc.RoutingSettings{BusWaitTime: 1, BusVelocity: 60},
		RenderSettings:  renderSettingsFixture(),
		BaseRequests: []requestdoc.BaseRequest{
			{Type: "Stop", Name: "A", Latitude: 0, Longitude: 0, RoadDistances: map[string]int{"B": 1000}},
			{Type: "Stop", Name: "B", Latitude: 0, Longitude: 1},
			{Type: "Bus", Name: "first", IsRoundtrip: true, Stops: []string{"A", "B"}},
			{Type: "Bus", Name: "second", IsRoundtrip: true, Stops: []string{"A", "B"}},
		},
		StatRequests: []requestdoc.StatRequest{{Type: "Route", ID: 1, From: "A", To: "B"}},
	}
	engine, err := Build(doc)
	require.NoError(t, err)

	resp := engine.Answer(doc.StatRequests[0])
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "first", resp.Items[1].Bus)
}

func TestNotFoundResponses(t *testing.T) {
	doc := &requestdoc.Document{
		RoutingSettings: requestdoc.RoutingSettings{BusWaitTime: 1, BusVelocity: 60},
		RenderSettings:  renderSettingsFixture(),
		StatRequests: []requestdoc.StatRequest{
			{Type: "Bus", ID: 1, Name: "ghost"},
			{Type: "Stop", ID: 2, Name: "nowhere"},
		},
	}
	engine, err := Build(doc)
	require.NoError(t, err)

	assert.Equal(t, "not found", engine.Answer(doc.StatRequests[0]).ErrorMessage)
	assert.Equal(t, "not found", engine.Answer(doc.StatRequests[1]).ErrorMessage)
}

// Invariant 6: a route from a stop to itself is zero-cost, not an
// error.
func TestRouteToSelfIsZero(t *testing.T) {
	doc := &requestdoc.Document{
		RoutingSettings: requestdoc.RoutingSettings{BusWaitTime: 1, BusVelocity: 60},
		RenderSettings:  renderSettingsFixture(),
		BaseRequests: []requestdoc.BaseRequest{
			{Type: "Stop", Name: "A", Latitude: 0, Longitude: 0},
		},
		StatRequests: []requestdoc.StatRequest{{Type: "Route", ID: 1, From: "A", To: "A"}},
	}
	engine, err := Build(doc)
	require.NoError(t, err)

	resp := engine.Answer(doc.StatRequests[0])
	require.NotNil(t, resp.TotalTime)
	assert.Equal(t, 0.0, *resp.TotalTime)
	assert.Empty(t, resp.Items)
	assert.Empty(t, resp.ErrorMessage)
}

func TestRenderRouteOverlayCleansUpAfterItself(t *testing.T) {
	doc := &requestdoc.Document{
		RoutingSettings: requestdoc.RoutingSettings{BusWaitTime: 6, BusVelocity: 60},
		RenderSettings:  renderSettingsFixture(),
		BaseRequests: []requestdoc.BaseRequest{
			{Type: "Stop", Name: "A", Latitude: 55.6, Longitude: 37.6, RoadDistances: map[string]int{"B": 1000}},
			{Type: "Stop", Name: "B", Latitude: 55.7, Longitude: 37.7},
			{Type: "Bus", Name: "99", IsRoundtrip: true, Stops: []string{"A", "B"}},
		},
	}
	engine, err := Build(doc)
	require.NoError(t, err)

	before := engine.renderer.Map()
	svg1, ok := engine.RenderRoute("A", "B")
	require.True(t, ok)
	assert.NotEmpty(t, svg1)

	after := engine.renderer.Map()
	assert.Equal(t, before, after)
}
