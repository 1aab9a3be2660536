// Package query wires the transit store, graph, router, and renderer
// together into one engine that answers the four stat request kinds.
package query

import (
	"fmt"

	"transitquery/internal/geo"
	"transitquery/internal/graph"
	"transitquery/internal/layout"
	"transitquery/internal/render"
	"transitquery/internal/requestdoc"
	"transitquery/internal/router"
	"transitquery/internal/svg"
	"transitquery/internal/transit"
)

// Engine answers stat requests against one loaded transit network. It
// is built once and is read-only afterward.
type Engine struct {
	st       *transit.Store
	g        *graph.Graph
	rt       *router.Router
	renderer *render.Renderer
	overlay  *render.Overlay
}

// Build loads doc's base requests into a fresh store, validates
// declared road distances, and constructs the graph, router, layout,
// and renderer once.
func Build(doc *requestdoc.Document) (*Engine, error) {
	st := transit.NewStore()

	for _, br := range doc.BaseRequests {
		switch br.Type {
		case "Stop":
			st.AddStop(br.Name, geo.Point{Lat: br.Latitude, Lon: br.Longitude})
			for neighbor, meters := range br.RoadDistances {
				st.AddDistance(br.Name, neighbor, meters)
			}
		case "Bus":
			st.AddBus(br.Name, br.Stops, !br.IsRoundtrip)
		}
	}

	if err := st.ValidateDistances(); err != nil {
		return nil, fmt.Errorf("internal invariant violation: %w", err)
	}

	g := transit.BuildGraph(st, transit.RoutingSettings{
		BusWaitTime: doc.RoutingSettings.BusWaitTime,
		BusVelocity: doc.RoutingSettings.BusVelocity,
	})

	coords := layout.Compute(st, layout.Settings{
		Width:   doc.RenderSettings.Width,
		Height:  doc.RenderSettings.Height,
		Padding: doc.RenderSettings.Padding,
	})

	settings := render.Settings{
		Width:             doc.RenderSettings.Width,
		Height:            doc.RenderSettings.Height,
		Padding:           doc.RenderSettings.Padding,
		StopRadius:        doc.RenderSettings.StopRadius,
		LineWidth:         doc.RenderSettings.LineWidth,
		StopLabelFontSize: doc.RenderSettings.StopLabelFontSize,
		BusLabelFontSize:  doc.RenderSettings.BusLabelFontSize,
		OuterMargin:       doc.RenderSettings.OuterMargin,
		StopLabelOffset:   pointFromPair(doc.RenderSettings.StopLabelOffset),
		BusLabelOffset:    pointFromPair(doc.RenderSettings.BusLabelOffset),
		UnderlayerColor:   doc.RenderSettings.UnderlayerColor.ToSVG(),
		UnderlayerWidth:   doc.RenderSettings.UnderlayerWidth,
		Layers:            doc.RenderSettings.Layers,
	}
	for _, c := range doc.RenderSettings.ColorPalette {
		settings.ColorPalette = append(settings.ColorPalette, c.ToSVG())
	}

	renderer := render.New(st, coords, settings)

	return &Engine{
		st:       st,
		g:        g,
		rt:       router.New(g),
		renderer: renderer,
		overlay:  renderer.NewOverlay(),
	}, nil
}

func pointFromPair(p [2]float64) svg.Point {
	return svg.Point{X: p[0], Y: p[1]}
}

// Answer dispatches one stat request to the handler matching its
// type.
func (e *Engine) Answer(req requestdoc.StatRequest) requestdoc.Response {
	switch req.Type {
	case "Bus":
		return e.answerBus(req)
	case "Stop":
		return e.answerStop(req)
	case "Route":
		return e.answerRoute(req)
	case "Map":
		return e.answerMap(req)
	default:
		return notFound(req.ID)
	}
}

func notFound(id uint) requestdoc.Response {
	return requestdoc.Response{RequestID: id, ErrorMessage: "not found"}
}

func (e *Engine) answerBus(req requestdoc.StatRequest) requestdoc.Response {
	b, ok := e.st.Bus(req.Name)
	if !ok {
		return notFound(req.ID)
	}
	road, _ := b.RoadLength(e.st)
	curvature, _ := b.Curvature(e.st)
	return requestdoc.Response{
		RequestID:       req.ID,
		Kind:            requestdoc.KindBus,
		StopCount:       b.TotalStops(),
		UniqueStopCount: b.UniqueStops(),
		RouteLength:     road,
		Curvature:       curvature,
	}
}

func (e *Engine) answerStop(req requestdoc.StatRequest) requestdoc.Response {
	if _, ok := e.st.Stop(req.Name); !ok {
		return notFound(req.ID)
	}
	return requestdoc.Response{
		RequestID: req.ID,
		Kind:      requestdoc.KindStop,
		Buses:     e.st.BusesAt(req.Name),
	}
}

func (e *Engine) answerRoute(req requestdoc.StatRequest) requestdoc.Response {
	if _, ok := e.st.Stop(req.From); !ok {
		return notFound(req.ID)
	}
	if _, ok := e.st.Stop(req.To); !ok {
		return notFound(req.ID)
	}
	if req.From == req.To {
		zero := 0.0
		return requestdoc.Response{RequestID: req.ID, Kind: requestdoc.KindRoute, TotalTime: &zero, Items: []requestdoc.RouteItem{}}
	}

	edges, ok := e.routeEdges(req.From, req.To)
	if !ok {
		return notFound(req.ID)
	}

	total := 0.0
	items := make([]requestdoc.RouteItem, 0, len(edges))
	for _, edge := range edges {
		total += edge.Weight
		if edge.Kind == graph.Wait {
			items = append(items, requestdoc.RouteItem{Type: "Wait", StopName: edge.Label, Time: edge.Weight})
		} else {
			items = append(items, requestdoc.RouteItem{Type: "Bus", Bus: edge.Label, SpanCount: edge.SpanCount, Time: edge.Weight})
		}
	}

	return requestdoc.Response{RequestID: req.ID, Kind: requestdoc.KindRoute, TotalTime: &total, Items: items}
}

func (e *Engine) answerMap(req requestdoc.StatRequest) requestdoc.Response {
	return requestdoc.Response{RequestID: req.ID, Kind: requestdoc.KindMap, Map: e.renderer.Map()}
}

// routeEdges reconstructs the edge sequence of the minimum-weight
// path from `from` to `to`, or (nil, false) if none exists.
func (e *Engine) routeEdges(from, to string) ([]*graph.Edge, bool) {
	fromStop, ok1 := e.st.Stop(from)
	toStop, ok2 := e.st.Stop(to)
	if !ok1 || !ok2 {
		return nil, false
	}
	result, ok := e.rt.BuildRoute(fromStop.WaitVertex(), toStop.WaitVertex())
	if !ok {
		return nil, false
	}
	defer e.rt.ReleaseRoute(result.ID)

	edges := make([]*graph.Edge, result.EdgeCount)
	for k := 0; k < result.EdgeCount; k++ {
		edges[k] = e.g.Edge(e.rt.RouteEdge(result.ID, k))
	}
	return edges, true
}

// RenderRoute draws the minimum-weight path from `from` to `to` as a
// standalone map overlay, on top of the dimmed static map. It returns
// ("", false) if the path does not exist.
func (e *Engine) RenderRoute(from, to string) (string, bool) {
	edges, ok := e.routeEdges(from, to)
	if !ok {
		return "", false
	}
	return e.overlay.RenderRoute(edges), true
}
