package compositor

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Components are float32 in the range [0, 1], with color channels
// premultiplied by alpha. Buffers store pixels in this format.
type RGBA struct {
	R, G, B, A float32
}

// Transparent is fully transparent black.
var Transparent = RGBA{}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Premultiply converts straight-alpha components to a premultiplied RGBA.
func Premultiply(r, g, b, a float32) RGBA {
	return RGBA{R: r * a, G: g * a, B: b * a, A: a}
}

// Unpremultiply returns the straight-alpha components of the color.
// Fully transparent pixels unpremultiply to zero.
func (c RGBA) Unpremultiply() (r, g, b, a float32) {
	if c.A <= 0 {
		return 0, 0, 0, 0
	}
	inv := 1 / c.A
	return c.R * inv, c.G * inv, c.B * inv, c.A
}

// Color converts the premultiplied RGBA to the standard color.Color
// interface (straight alpha, 8 bits per channel).
func (c RGBA) Color() color.Color {
	r, g, b, a := c.Unpremultiply()
	return color.NRGBA{
		R: uint8(clamp255(r * 255)),
		G: uint8(clamp255(g * 255)),
		B: uint8(clamp255(b * 255)),
		A: uint8(clamp255(a * 255)),
	}
}

// FromColor converts a standard color.Color to premultiplied RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA() // already alpha-premultiplied, 16 bit
	return RGBA{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
		A: float32(a) / 65535,
	}
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
