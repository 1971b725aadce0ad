package ops

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/filter"
)

// ColorMatrix applies a 4x5 color matrix to its input, the building
// block behind brightness, contrast, saturation, tint, and channel
// inversion adjustments. The filter package provides constructors for
// the common matrices.
type ColorMatrix struct {
	base
	filter *filter.ColorMatrixFilter
}

// NewColorMatrix creates a color matrix operation over the input's
// canvas.
func NewColorMatrix(name string, f *filter.ColorMatrixFilter, in compositor.Operation) *ColorMatrix {
	return &ColorMatrix{
		base: base{
			name:   name,
			canvas: in.Canvas(),
			inputs: []compositor.Operation{in},
		},
		filter: f,
	}
}

// Matrix returns the 4x5 coefficients in row-major order.
func (o *ColorMatrix) Matrix() [20]float32 { return o.filter.Matrix }

// AccelOp implements compositor.AcceleratedOperation.
func (o *ColorMatrix) AccelOp() compositor.AcceleratedOp { return compositor.AccelColorMatrix }

// Render implements compositor.Operation.
func (o *ColorMatrix) Render(dst *compositor.Buffer, area compositor.Region, inputs []*compositor.Buffer) {
	src := inputs[0]
	if src == nil {
		dst.Fill(area, compositor.Transparent)
		return
	}
	o.filter.Apply(dst, src, area)
}
