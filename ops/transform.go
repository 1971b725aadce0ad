package ops

import (
	"math"

	"github.com/gogpu/compositor"
)

// Transform resamples its input through an affine matrix. The canvas is
// the input canvas mapped through the matrix and snapped outward to
// whole pixels; output pixels that map outside the input canvas are
// transparent rather than edge-smeared.
type Transform struct {
	base
	matrix  compositor.Matrix
	inverse compositor.Matrix
	nearest bool
}

// NewTransform creates an affine resampling operation. The matrix maps
// input coordinates to output coordinates; rendering walks it backward.
func NewTransform(name string, matrix compositor.Matrix, in compositor.Operation) *Transform {
	return &Transform{
		base: base{
			name:   name,
			canvas: matrix.TransformRegion(in.Canvas()),
			inputs: []compositor.Operation{in},
		},
		matrix:  matrix,
		inverse: matrix.Invert(),
	}
}

// Matrix returns the forward mapping from input to output space.
func (o *Transform) Matrix() compositor.Matrix { return o.matrix }

// AccelOp implements compositor.AcceleratedOperation.
func (o *Transform) AccelOp() compositor.AcceleratedOp { return compositor.AccelTransform }

// InitData selects the sampling filter: bilinear normally, nearest
// neighbor at low quality and during fast calculation.
func (o *Transform) InitData(ctx *compositor.Context) {
	o.nearest = ctx.Quality() == compositor.QualityLow || ctx.FastCalculation()
}

// InputArea inverse-maps the requested area and pads one pixel for the
// bilinear taps.
func (o *Transform) InputArea(i int, area compositor.Region) compositor.Region {
	return o.inverse.TransformRegion(area).Expand(1)
}

// Render implements compositor.Operation.
func (o *Transform) Render(dst *compositor.Buffer, area compositor.Region, inputs []*compositor.Buffer) {
	src := inputs[0]
	if src == nil {
		dst.Fill(area, compositor.Transparent)
		return
	}
	srcCanvas := o.inputs[0].Canvas()

	for y := area.MinY; y < area.MaxY; y++ {
		for x := area.MinX; x < area.MaxX; x++ {
			// Sample at the pixel center, mapped back to input space.
			sx, sy := o.inverse.Apply(float64(x)+0.5, float64(y)+0.5)

			if sx < float64(srcCanvas.MinX) || sx >= float64(srcCanvas.MaxX) ||
				sy < float64(srcCanvas.MinY) || sy >= float64(srcCanvas.MaxY) {
				dst.Set(x, y, compositor.Transparent)
				continue
			}

			var c compositor.RGBA
			if o.nearest {
				c = src.At(int(math.Floor(sx)), int(math.Floor(sy)))
			} else {
				c = src.Sample(sx, sy)
			}
			dst.Set(x, y, c)
		}
	}
}
