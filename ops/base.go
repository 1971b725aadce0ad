package ops

import "github.com/gogpu/compositor"

// base carries the bookkeeping every operation shares: a display name,
// the output canvas, and input wiring. Concrete operations embed it and
// provide Render.
type base struct {
	name   string
	canvas compositor.Region
	inputs []compositor.Operation
}

// Name identifies the operation in logs and previews.
func (b *base) Name() string { return b.name }

// Canvas returns the output bounds.
func (b *base) Canvas() compositor.Region { return b.canvas }

// Inputs returns the upstream operations in socket order.
func (b *base) Inputs() []compositor.Operation { return b.inputs }

// InitData is a no-op for operations without per-run state.
func (b *base) InitData(ctx *compositor.Context) {}

// InputArea reports a point dependency: input i is needed over the same
// area as the output. Filters and transforms override this.
func (b *base) InputArea(i int, area compositor.Region) compositor.Region { return area }

// inputAt reads a pixel from an input buffer, treating an absent buffer
// (a degenerate upstream canvas) as fully transparent.
func inputAt(b *compositor.Buffer, x, y int) compositor.RGBA {
	if b == nil {
		return compositor.RGBA{}
	}
	return b.At(x, y)
}
