package ops

import "github.com/gogpu/compositor"

// Color renders a constant color over its canvas. It has no inputs and
// is the simplest generator, useful as a backdrop or a mix operand.
type Color struct {
	base
	color compositor.RGBA
}

// NewColor creates a constant color generator covering canvas.
func NewColor(name string, canvas compositor.Region, c compositor.RGBA) *Color {
	return &Color{
		base:  base{name: name, canvas: canvas},
		color: c,
	}
}

// Render implements compositor.Operation.
func (o *Color) Render(dst *compositor.Buffer, area compositor.Region, _ []*compositor.Buffer) {
	dst.Fill(area, o.color)
}
