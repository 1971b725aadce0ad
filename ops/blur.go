package ops

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/filter"
)

// Blur applies separable Gaussian blur to its input. The effective
// radius shrinks at reduced quality and during fast calculation,
// trading looks for interactive speed.
type Blur struct {
	base
	radiusX, radiusY float64
	filter           *filter.BlurFilter
}

// NewBlur creates an isotropic Gaussian blur over the input's canvas.
func NewBlur(name string, radius float64, in compositor.Operation) *Blur {
	return NewBlurXY(name, radius, radius, in)
}

// NewBlurXY creates an anisotropic Gaussian blur with separate
// horizontal and vertical radii.
func NewBlurXY(name string, radiusX, radiusY float64, in compositor.Operation) *Blur {
	return &Blur{
		base: base{
			name:   name,
			canvas: in.Canvas(),
			inputs: []compositor.Operation{in},
		},
		radiusX: radiusX,
		radiusY: radiusY,
		filter:  filter.NewBlurFilterXY(radiusX, radiusY),
	}
}

// Radii returns the configured radii, before any quality degradation.
func (o *Blur) Radii() (x, y float64) { return o.radiusX, o.radiusY }

// AccelOp implements compositor.AcceleratedOperation.
func (o *Blur) AccelOp() compositor.AcceleratedOp { return compositor.AccelBlur }

// InitData picks the effective radius for the run: the configured
// radius divided by the quality step, halved once more during fast
// calculation.
func (o *Blur) InitData(ctx *compositor.Context) {
	step := float64(ctx.Quality().Step())
	if ctx.FastCalculation() {
		step *= 2
	}
	o.filter = filter.NewBlurFilterXY(o.radiusX/step, o.radiusY/step)
}

// InputArea expands the requested area by the effective kernel reach.
func (o *Blur) InputArea(i int, area compositor.Region) compositor.Region {
	return o.filter.ExpandArea(area)
}

// Render implements compositor.Operation.
func (o *Blur) Render(dst *compositor.Buffer, area compositor.Region, inputs []*compositor.Buffer) {
	src := inputs[0]
	if src == nil {
		dst.Fill(area, compositor.Transparent)
		return
	}
	o.filter.Apply(dst, src, area)
}
