package requestdoc

import (
	"encoding/json"
	"fmt"

	"transitquery/internal/svg"
)

// Color is the wire representation of a color: either a bare CSS name
// or an RGB(A) numeric array. It decodes the way the corpus's
// tolerant JSON helpers decode a field whose shape varies by
// case -- inspect the raw token, switch on its Go type.
type Color struct {
	name  string
	isRGB bool
	r, g, b uint8
	a     *float64
}

// UnmarshalJSON accepts a JSON string or a [r,g,b] / [r,g,b,a] array.
func (c *Color) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		c.name = v
	case []interface{}:
		if len(v) != 3 && len(v) != 4 {
			return fmt.Errorf("color array must have 3 or 4 elements, got %d", len(v))
		}
		c.isRGB = true
		c.r = toByte(v[0])
		c.g = toByte(v[1])
		c.b = toByte(v[2])
		if len(v) == 4 {
			a := toNumber(v[3])
			c.a = &a
		}
	default:
		return fmt.Errorf("color must be a string or an [r,g,b] / [r,g,b,a] array, got %T", v)
	}
	return nil
}

func toNumber(v interface{}) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return 0
}

func toByte(v interface{}) uint8 {
	return uint8(toNumber(v))
}

// ToSVG converts the wire color into an internal/svg.Color.
func (c Color) ToSVG() svg.Color {
	if c.isRGB {
		if c.a != nil {
			return svg.RGBA(c.r, c.g, c.b, *c.a)
		}
		return svg.RGB(c.r, c.g, c.b)
	}
	return svg.Named(c.name)
}
