// Package svg implements the small set of typed SVG shapes the map
// and overlay renderers need, plus the document they are collected
// into. Setters mutate the receiver and return it, the Go analogue of
// the fluent builder this package's C++ ancestor used.
package svg

import (
	"fmt"
	"strings"
)

// Point is a screen-space coordinate.
type Point struct {
	X, Y float64
}

// Shape is any object that can render itself as one SVG element.
type Shape interface {
	Render() string
}

type style struct {
	fill          Color
	hasFill       bool
	stroke        Color
	hasStroke     bool
	strokeWidth   float64
	hasStrokeW    bool
	lineCap       string
	lineJoin      string
}

func (s style) writeAttrs(b *strings.Builder) {
	if s.hasFill {
		fmt.Fprintf(b, ` fill="%s"`, s.fill.String())
	}
	if s.hasStroke {
		fmt.Fprintf(b, ` stroke="%s"`, s.stroke.String())
	}
	if s.hasStrokeW {
		fmt.Fprintf(b, ` stroke-width="%g"`, s.strokeWidth)
	}
	if s.lineCap != "" {
		fmt.Fprintf(b, ` stroke-linecap="%s"`, s.lineCap)
	}
	if s.lineJoin != "" {
		fmt.Fprintf(b, ` stroke-linejoin="%s"`, s.lineJoin)
	}
}

// Circle is a filled/stroked circle primitive.
type Circle struct {
	style
	center Point
	radius float64
}

// NewCircle returns a circle centered at c with radius r.
func NewCircle(c Point, r float64) *Circle {
	return &Circle{center: c, radius: r}
}

func (c *Circle) SetFillColor(col Color) *Circle     { c.fill, c.hasFill = col, true; return c }
func (c *Circle) SetStrokeColor(col Color) *Circle   { c.stroke, c.hasStroke = col, true; return c }
func (c *Circle) SetStrokeWidth(w float64) *Circle   { c.strokeWidth, c.hasStrokeW = w, true; return c }
func (c *Circle) SetStrokeLineCap(s string) *Circle  { c.lineCap = s; return c }
func (c *Circle) SetStrokeLineJoin(s string) *Circle { c.lineJoin = s; return c }

// Render implements Shape.
func (c *Circle) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g"`, c.center.X, c.center.Y, c.radius)
	c.style.writeAttrs(&b)
	b.WriteString(`/>`)
	return b.String()
}

// Polyline is an open sequence of line segments.
type Polyline struct {
	style
	points []Point
}

// NewPolyline returns an empty polyline.
func NewPolyline() *Polyline {
	return &Polyline{}
}

// AddPoint appends p to the polyline and returns the receiver.
func (p *Polyline) AddPoint(pt Point) *Polyline {
	p.points = append(p.points, pt)
	return p
}

func (p *Polyline) SetFillColor(col Color) *Polyline     { p.fill, p.hasFill = col, true; return p }
func (p *Polyline) SetStrokeColor(col Color) *Polyline   { p.stroke, p.hasStroke = col, true; return p }
func (p *Polyline) SetStrokeWidth(w float64) *Polyline   { p.strokeWidth, p.hasStrokeW = w, true; return p }
func (p *Polyline) SetStrokeLineCap(s string) *Polyline  { p.lineCap = s; return p }
func (p *Polyline) SetStrokeLineJoin(s string) *Polyline { p.lineJoin = s; return p }

// Render implements Shape.
func (p *Polyline) Render() string {
	var b strings.Builder
	b.WriteString(`<polyline points="`)
	for _, pt := range p.points {
		fmt.Fprintf(&b, "%g,%g ", pt.X, pt.Y)
	}
	b.WriteString(`"`)
	p.style.writeAttrs(&b)
	b.WriteString(`/>`)
	return b.String()
}

// Text is a single line of label text anchored at a point plus an
// offset.
type Text struct {
	style
	position   Point
	offset     Point
	fontSize   float64
	fontFamily string
	fontWeight string
	data       string
}

// NewText returns a text element positioned at pos with label data.
func NewText(pos Point, data string) *Text {
	return &Text{position: pos, data: data}
}

func (t *Text) SetOffset(dx, dy float64) *Text        { t.offset = Point{dx, dy}; return t }
func (t *Text) SetFontSize(size float64) *Text        { t.fontSize = size; return t }
func (t *Text) SetFontFamily(family string) *Text     { t.fontFamily = family; return t }
func (t *Text) SetFontWeight(weight string) *Text     { t.fontWeight = weight; return t }
func (t *Text) SetFillColor(col Color) *Text          { t.fill, t.hasFill = col, true; return t }
func (t *Text) SetStrokeColor(col Color) *Text        { t.stroke, t.hasStroke = col, true; return t }
func (t *Text) SetStrokeWidth(w float64) *Text        { t.strokeWidth, t.hasStrokeW = w, true; return t }
func (t *Text) SetStrokeLineCap(s string) *Text       { t.lineCap = s; return t }
func (t *Text) SetStrokeLineJoin(s string) *Text      { t.lineJoin = s; return t }

// Render implements Shape.
func (t *Text) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<text x="%g" y="%g" dx="%g" dy="%g"`,
		t.position.X, t.position.Y, t.offset.X, t.offset.Y)
	if t.fontFamily != "" {
		fmt.Fprintf(&b, ` font-family="%s"`, t.fontFamily)
	}
	if t.fontSize != 0 {
		fmt.Fprintf(&b, ` font-size="%g"`, t.fontSize)
	}
	if t.fontWeight != "" {
		fmt.Fprintf(&b, ` font-weight="%s"`, t.fontWeight)
	}
	t.style.writeAttrs(&b)
	fmt.Fprintf(&b, `>%s</text>`, escapeText(t.data))
	return b.String()
}

// Rectangle is an axis-aligned filled/stroked box.
type Rectangle struct {
	style
	x, y, width, height float64
}

// NewRectangle returns a rectangle with top-left corner (x, y).
func NewRectangle(x, y, width, height float64) *Rectangle {
	return &Rectangle{x: x, y: y, width: width, height: height}
}

func (r *Rectangle) SetFillColor(col Color) *Rectangle     { r.fill, r.hasFill = col, true; return r }
func (r *Rectangle) SetStrokeColor(col Color) *Rectangle   { r.stroke, r.hasStroke = col, true; return r }
func (r *Rectangle) SetStrokeWidth(w float64) *Rectangle   { r.strokeWidth, r.hasStrokeW = w, true; return r }
func (r *Rectangle) SetStrokeLineCap(s string) *Rectangle  { r.lineCap = s; return r }
func (r *Rectangle) SetStrokeLineJoin(s string) *Rectangle { r.lineJoin = s; return r }

// Render implements Shape.
func (r *Rectangle) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g"`, r.x, r.y, r.width, r.height)
	r.style.writeAttrs(&b)
	b.WriteString(`/>`)
	return b.String()
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
