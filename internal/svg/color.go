package svg

import "fmt"

// Color is either a named CSS color ("red", "none", ...) or an RGB
// triple with an optional alpha channel.
type Color struct {
	name    string
	isRGB   bool
	r, g, b uint8
	a       *float64
}

// Named returns a color referred to by its CSS name.
func Named(name string) Color {
	return Color{name: name}
}

// RGB returns an opaque RGB color.
func RGB(r, g, b uint8) Color {
	return Color{isRGB: true, r: r, g: g, b: b}
}

// RGBA returns an RGB color with an alpha channel in [0, 1].
func RGBA(r, g, b uint8, a float64) Color {
	return Color{isRGB: true, r: r, g: g, b: b, a: &a}
}

// None is the "no paint" color, used to suppress fill or stroke.
func None() Color { return Color{name: "none"} }

// IsZero reports whether c is the zero Color value (neither a name
// nor an RGB triple has been set).
func (c Color) IsZero() bool {
	return !c.isRGB && c.name == ""
}

// String renders c the way the document serializer expects:
// "name", "rgb(r,g,b)", or "rgba(r,g,b,a)".
func (c Color) String() string {
	if !c.isRGB {
		return c.name
	}
	if c.a != nil {
		return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.r, c.g, c.b, *c.a)
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", c.r, c.g, c.b)
}
