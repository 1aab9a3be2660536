// Package render draws the static network map and, per routing
// query, a route overlay on top of it, composing internal/svg
// primitives in the layer order a render request configures.
package render

import (
	"transitquery/internal/graph"
	"transitquery/internal/svg"
	"transitquery/internal/transit"
)

// Settings mirrors the request document's render_settings object.
type Settings struct {
	Width, Height, Padding         float64
	StopRadius, LineWidth          float64
	StopLabelFontSize              float64
	BusLabelFontSize               float64
	OuterMargin                    float64
	StopLabelOffset, BusLabelOffset svg.Point
	UnderlayerColor                svg.Color
	UnderlayerWidth                float64
	ColorPalette                   []svg.Color
	Layers                         []string
}

const (
	layerBusLines   = "bus_lines"
	layerBusLabels  = "bus_labels"
	layerStopPoints = "stop_points"
	layerStopLabels = "stop_labels"
)

// Renderer holds the immutable state needed to draw the static map
// once and to spin up overlay renderers for individual queries.
type Renderer struct {
	st       *transit.Store
	coords   map[string]svg.Point
	settings Settings
	busIndex map[string]int
	base     *svg.Document
}

// New builds the static map once from st's stops and buses at the
// given screen coordinates.
func New(st *transit.Store, coords map[string]svg.Point, settings Settings) *Renderer {
	r := &Renderer{st: st, coords: coords, settings: settings}
	r.busIndex = make(map[string]int)
	for i, name := range st.SortedBusNames() {
		r.busIndex[name] = i
	}
	r.base = svg.NewDocument()
	for _, layerName := range settings.Layers {
		r.drawBaseLayer(r.base, layerName)
	}
	return r
}

// Map serializes the cached static map.
func (r *Renderer) Map() string {
	return r.base.Render()
}

func (r *Renderer) paletteColor(busName string) svg.Color {
	if len(r.settings.ColorPalette) == 0 {
		return svg.Named("black")
	}
	idx := r.busIndex[busName] % len(r.settings.ColorPalette)
	return r.settings.ColorPalette[idx]
}

func (r *Renderer) addLabelPair(doc *svg.Document, at svg.Point, text string, offset svg.Point, fontSize float64, overlayColor svg.Color) {
	underlay := svg.NewText(at, text).
		SetOffset(offset.X, offset.Y).
		SetFontFamily("Verdana").
		SetFontSize(fontSize).
		SetFontWeight("bold").
		SetFillColor(r.settings.UnderlayerColor).
		SetStrokeColor(r.settings.UnderlayerColor).
		SetStrokeWidth(r.settings.UnderlayerWidth).
		SetStrokeLineCap("round").
		SetStrokeLineJoin("round")
	doc.Add(underlay)

	overlay := svg.NewText(at, text).
		SetOffset(offset.X, offset.Y).
		SetFontFamily("Verdana").
		SetFontSize(fontSize).
		SetFontWeight("bold").
		SetFillColor(overlayColor)
	doc.Add(overlay)
}

func (r *Renderer) drawBaseLayer(doc *svg.Document, layerName string) {
	switch layerName {
	case layerBusLines:
		for _, busName := range r.st.SortedBusNames() {
			b, _ := r.st.Bus(busName)
			line := svg.NewPolyline().
				SetStrokeColor(r.paletteColor(busName)).
				SetStrokeWidth(r.settings.LineWidth).
				SetStrokeLineCap("round").
				SetStrokeLineJoin("round").
				SetFillColor(svg.None())
			for _, name := range b.Traversal() {
				line.AddPoint(r.coords[name])
			}
			doc.Add(line)
		}
	case layerBusLabels:
		for _, busName := range r.st.SortedBusNames() {
			b, _ := r.st.Bus(busName)
			color := r.paletteColor(busName)
			for _, name := range b.Endpoints() {
				r.addLabelPair(doc, r.coords[name], busName, r.settings.BusLabelOffset, r.settings.BusLabelFontSize, color)
			}
		}
	case layerStopPoints:
		for _, name := range r.st.SortedStopNames() {
			circle := svg.NewCircle(r.coords[name], r.settings.StopRadius).
				SetFillColor(svg.Named("white"))
			doc.Add(circle)
		}
	case layerStopLabels:
		for _, name := range r.st.SortedStopNames() {
			r.addLabelPair(doc, r.coords[name], name, r.settings.StopLabelOffset, r.settings.StopLabelFontSize, svg.Named("black"))
		}
	}
}

// Overlay draws one routing query's result on top of the static map,
// reusing a single scratch document across queries.
type Overlay struct {
	r       *Renderer
	doc     *svg.Document
	baseLen int
}

// NewOverlay starts a fresh scratch document from a copy of the base
// map plus one dimming rectangle, per the route overlay contract.
func (r *Renderer) NewOverlay() *Overlay {
	doc := r.base.Clone()
	s := r.settings
	rect := svg.NewRectangle(
		-s.OuterMargin, -s.OuterMargin,
		s.Width+2*s.OuterMargin, s.Height+2*s.OuterMargin,
	).SetFillColor(s.UnderlayerColor)
	doc.Add(rect)
	return &Overlay{r: r, doc: doc, baseLen: doc.Len()}
}

// RenderRoute draws edges (in path order) on top of the dimmed base
// map, returns the serialized SVG, and resets the scratch document
// for the next query.
func (o *Overlay) RenderRoute(edges []*graph.Edge) string {
	defer o.doc.Truncate(o.baseLen)

	for _, layerName := range o.r.settings.Layers {
		switch layerName {
		case layerBusLines:
			o.drawLines(edges)
		case layerBusLabels:
			o.drawBusLabels(edges)
		case layerStopPoints:
			o.drawStopPoints(edges)
		case layerStopLabels:
			o.drawStopLabels(edges)
		}
	}

	return o.doc.Render()
}

func (o *Overlay) drawLines(edges []*graph.Edge) {
	for _, e := range edges {
		if e.Kind != graph.Ride || len(e.Sequence) == 0 {
			continue
		}
		line := svg.NewPolyline().
			SetStrokeColor(o.r.paletteColor(e.Label)).
			SetStrokeWidth(o.r.settings.LineWidth).
			SetStrokeLineCap("round").
			SetStrokeLineJoin("round").
			SetFillColor(svg.None())
		for _, pair := range e.Sequence {
			line.AddPoint(o.r.coords[pair.From])
		}
		last := e.Sequence[len(e.Sequence)-1]
		line.AddPoint(o.r.coords[last.To])
		o.doc.Add(line)
	}
}

func (o *Overlay) drawBusLabels(edges []*graph.Edge) {
	for _, e := range edges {
		if e.Kind != graph.Ride || len(e.Sequence) == 0 {
			continue
		}
		b, ok := o.r.st.Bus(e.Label)
		if !ok {
			continue
		}
		color := o.r.paletteColor(e.Label)
		first := e.Sequence[0].From
		last := e.Sequence[len(e.Sequence)-1].To
		if b.IsEndpoint(first) {
			o.r.addLabelPair(o.doc, o.r.coords[first], e.Label, o.r.settings.BusLabelOffset, o.r.settings.BusLabelFontSize, color)
		}
		if b.IsEndpoint(last) {
			o.r.addLabelPair(o.doc, o.r.coords[last], e.Label, o.r.settings.BusLabelOffset, o.r.settings.BusLabelFontSize, color)
		}
	}
}

func (o *Overlay) drawStopPoints(edges []*graph.Edge) {
	addCircle := func(name string) {
		circle := svg.NewCircle(o.r.coords[name], o.r.settings.StopRadius).SetFillColor(svg.Named("white"))
		o.doc.Add(circle)
	}
	for _, e := range edges {
		if e.Kind != graph.Ride || len(e.Sequence) == 0 {
			continue
		}
		for _, pair := range e.Sequence {
			addCircle(pair.From)
		}
		addCircle(e.Sequence[len(e.Sequence)-1].To)
	}
}

// drawStopLabels labels the entry stop (the first Wait edge), every
// subsequent Wait edge's stop, and the very last stop of the route,
// regardless of what kind of edge reaches it.
func (o *Overlay) drawStopLabels(edges []*graph.Edge) {
	label := func(name string) {
		o.r.addLabelPair(o.doc, o.r.coords[name], name, o.r.settings.StopLabelOffset, o.r.settings.StopLabelFontSize, svg.Named("black"))
	}
	for i, e := range edges {
		if e.Kind == graph.Wait {
			label(e.Label)
		}
		if i == len(edges)-1 && e.Kind == graph.Ride && len(e.Sequence) > 0 {
			label(e.Sequence[len(e.Sequence)-1].To)
		}
	}
}
