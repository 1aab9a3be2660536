// Package requestdoc implements the JSON request/response document
// this program reads and writes: struct definitions with validation
// tags, heterogeneous field decoding (Color), and the top-level
// Decode/Encode entry points.
package requestdoc

// RoutingSettings is routing_settings in the request document.
type RoutingSettings struct {
	BusWaitTime float64 `json:"bus_wait_time" validate:"gte=0"`
	BusVelocity float64 `json:"bus_velocity" validate:"gt=0"`
}

// RenderSettings is render_settings in the request document.
type RenderSettings struct {
	Width              float64    `json:"width" validate:"gt=0"`
	Height             float64    `json:"height" validate:"gt=0"`
	Padding            float64    `json:"padding" validate:"gte=0"`
	StopRadius         float64    `json:"stop_radius" validate:"gt=0"`
	LineWidth          float64    `json:"line_width" validate:"gt=0"`
	StopLabelFontSize  float64    `json:"stop_label_font_size" validate:"gt=0"`
	BusLabelFontSize   float64    `json:"bus_label_font_size" validate:"gt=0"`
	OuterMargin        float64    `json:"outer_margin" validate:"gte=0"`
	StopLabelOffset    [2]float64 `json:"stop_label_offset"`
	BusLabelOffset     [2]float64 `json:"bus_label_offset"`
	UnderlayerColor    Color      `json:"underlayer_color"`
	UnderlayerWidth    float64    `json:"underlayer_width" validate:"gt=0"`
	ColorPalette       []Color    `json:"color_palette" validate:"required,min=1"`
	Layers             []string   `json:"layers" validate:"required,min=1,dive,oneof=bus_lines bus_labels stop_points stop_labels"`
}

// BaseRequest is one element of base_requests: either a Stop or a Bus
// declaration, distinguished by Type. Fields that do not apply to a
// given Type are left zero.
type BaseRequest struct {
	Type string `json:"type" validate:"required,oneof=Stop Bus"`

	// Stop fields.
	Name          string         `json:"name" validate:"required"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	RoadDistances map[string]int `json:"road_distances"`

	// Bus fields.
	IsRoundtrip bool     `json:"is_roundtrip"`
	Stops       []string `json:"stops"`
}

// StatRequest is one element of stat_requests.
type StatRequest struct {
	Type string `json:"type" validate:"required,oneof=Bus Stop Route Map"`
	ID   uint   `json:"id"`

	// Bus / Stop fields.
	Name string `json:"name"`

	// Route fields.
	From string `json:"from"`
	To   string `json:"to"`
}

// Document is the whole request document.
type Document struct {
	RoutingSettings RoutingSettings `json:"routing_settings" validate:"required"`
	RenderSettings  RenderSettings  `json:"render_settings" validate:"required"`
	BaseRequests    []BaseRequest   `json:"base_requests"`
	StatRequests    []StatRequest   `json:"stat_requests"`
}

// RouteItem is one element of a Route response's items list. It
// carries its own MarshalJSON so that Time prints to the contracted
// 16 significant digits instead of encoding/json's default shortest
// round-trip float formatting.
type RouteItem struct {
	Type      string
	StopName  string
	Bus       string
	SpanCount uint
	Time      float64
}

// ResponseKind distinguishes which of the four stat_request shapes a
// Response carries, since each shape contracts a different, disjoint
// set of JSON fields and the zero value of an unset field (empty
// string, nil slice) cannot tell "this field does not apply" apart
// from "this field is legitimately empty".
type ResponseKind int

const (
	KindError ResponseKind = iota
	KindBus
	KindStop
	KindRoute
	KindMap
)

// Response is one element of the response document, matching
// stat_requests one-to-one by position. Kind selects which fields
// MarshalJSON emits; ErrorMessage, when set, always takes over
// regardless of Kind, replacing the entire body.
type Response struct {
	RequestID    uint
	Kind         ResponseKind
	ErrorMessage string

	// Bus response fields.
	StopCount       int
	UniqueStopCount int
	RouteLength     int
	Curvature       float64

	// Stop response fields.
	Buses []string

	// Route response fields.
	TotalTime *float64
	Items     []RouteItem

	// Map response fields.
	Map string
}
