package ops

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/internal/blend"
)

// AlphaOver composites a foreground input over a background input with
// the premultiplied over operator. The factor scales the foreground's
// contribution; at 0 the background passes through untouched.
type AlphaOver struct {
	base
	factor float32
}

// NewAlphaOver creates an alpha-over operation covering the background
// input's canvas. Inputs are (background, foreground).
func NewAlphaOver(name string, factor float32, bg, fg compositor.Operation) *AlphaOver {
	return &AlphaOver{
		base: base{
			name:   name,
			canvas: bg.Canvas(),
			inputs: []compositor.Operation{bg, fg},
		},
		factor: factor,
	}
}

// Factor returns the foreground contribution factor.
func (o *AlphaOver) Factor() float32 { return o.factor }

// Render implements compositor.Operation.
func (o *AlphaOver) Render(dst *compositor.Buffer, area compositor.Region, inputs []*compositor.Buffer) {
	bg, fg := inputs[0], inputs[1]
	for y := area.MinY; y < area.MaxY; y++ {
		for x := area.MinX; x < area.MaxX; x++ {
			dst.Set(x, y, blend.OverFac(inputAt(fg, x, y), inputAt(bg, x, y), o.factor))
		}
	}
}
