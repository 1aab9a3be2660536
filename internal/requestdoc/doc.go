package requestdoc

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// sigFigs renders f to 16 significant digits, the contracted format
// for every floating quantity except route_length. json.Number is
// marshaled as the bare numeric literal it holds, so this sidesteps
// encoding/json's default shortest-round-trip float formatting.
func sigFigs(f float64) json.Number {
	return json.Number(strconv.FormatFloat(f, 'g', 16, 64))
}

// MarshalJSON renders it with Time at 16 significant digits.
func (it RouteItem) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type      string      `json:"type"`
		StopName  string      `json:"stop_name,omitempty"`
		Bus       string      `json:"bus,omitempty"`
		SpanCount uint        `json:"span_count,omitempty"`
		Time      json.Number `json:"time"`
	}
	return json.Marshal(wire{
		Type:      it.Type,
		StopName:  it.StopName,
		Bus:       it.Bus,
		SpanCount: it.SpanCount,
		Time:      sigFigs(it.Time),
	})
}

// MarshalJSON renders r according to its Kind, emitting exactly the
// field set contracted for that stat_request shape -- never a
// null/zero field belonging to a different shape -- and formatting
// every floating field other than route_length to 16 significant
// digits. ErrorMessage, when set, replaces the entire body regardless
// of Kind.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.ErrorMessage != "" {
		return json.Marshal(struct {
			RequestID    uint   `json:"request_id"`
			ErrorMessage string `json:"error_message"`
		}{r.RequestID, r.ErrorMessage})
	}

	switch r.Kind {
	case KindBus:
		return json.Marshal(struct {
			RequestID       uint        `json:"request_id"`
			StopCount       int         `json:"stop_count"`
			UniqueStopCount int         `json:"unique_stop_count"`
			RouteLength     int         `json:"route_length"`
			Curvature       json.Number `json:"curvature"`
		}{r.RequestID, r.StopCount, r.UniqueStopCount, r.RouteLength, sigFigs(r.Curvature)})

	case KindStop:
		buses := r.Buses
		if buses == nil {
			buses = []string{}
		}
		return json.Marshal(struct {
			RequestID uint     `json:"request_id"`
			Buses     []string `json:"buses"`
		}{r.RequestID, buses})

	case KindRoute:
		total := 0.0
		if r.TotalTime != nil {
			total = *r.TotalTime
		}
		items := r.Items
		if items == nil {
			items = []RouteItem{}
		}
		return json.Marshal(struct {
			RequestID uint        `json:"request_id"`
			TotalTime json.Number `json:"total_time"`
			Items     []RouteItem `json:"items"`
		}{r.RequestID, sigFigs(total), items})

	case KindMap:
		return json.Marshal(struct {
			RequestID uint   `json:"request_id"`
			Map       string `json:"map"`
		}{r.RequestID, r.Map})

	default:
		return json.Marshal(struct {
			RequestID uint `json:"request_id"`
		}{r.RequestID})
	}
}

// Decode reads and validates one request document from r. Both a
// malformed JSON payload and a structurally invalid document (missing
// required key, wrong kind) are reported as the same input-format
// error; the caller is expected to abort the run on either.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("malformed request document: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid request document: %w", err)
	}
	return &doc, nil
}

// Encode writes the response document to w as a JSON array.
func Encode(w io.Writer, responses []Response) error {
	enc := json.NewEncoder(w)
	return enc.Encode(responses)
}
