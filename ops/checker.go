package ops

import "github.com/gogpu/compositor"

// Checker renders a two-color checkerboard, the usual backdrop for
// judging transparency.
type Checker struct {
	base
	even, odd compositor.RGBA
	size      int
}

// NewChecker creates a checkerboard generator with square cells of the
// given size in pixels. Cell parity is anchored at the origin, not the
// canvas corner, so the pattern is stable under canvas changes.
func NewChecker(name string, canvas compositor.Region, even, odd compositor.RGBA, size int) *Checker {
	if size < 1 {
		size = 1
	}
	return &Checker{
		base: base{name: name, canvas: canvas},
		even: even,
		odd:  odd,
		size: size,
	}
}

// Render implements compositor.Operation.
func (o *Checker) Render(dst *compositor.Buffer, area compositor.Region, _ []*compositor.Buffer) {
	for y := area.MinY; y < area.MaxY; y++ {
		cy := floorDiv(y, o.size)
		for x := area.MinX; x < area.MaxX; x++ {
			c := o.even
			if (floorDiv(x, o.size)+cy)&1 != 0 {
				c = o.odd
			}
			dst.Set(x, y, c)
		}
	}
}

// floorDiv divides rounding toward negative infinity, keeping the cell
// pattern seamless across the origin.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
