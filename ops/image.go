package ops

import (
	"image"

	"github.com/gogpu/compositor"
)

// Image renders a pre-loaded pixel buffer. The canvas matches the
// buffer's region, optionally translated.
type Image struct {
	base
	buf    *compositor.Buffer
	dx, dy int
}

// NewImage creates an image source from a standard library image,
// converting pixels to premultiplied float once at construction.
func NewImage(name string, img image.Image) *Image {
	return NewImageBuffer(name, compositor.FromImage(img))
}

// NewImageBuffer creates an image source over an existing buffer. The
// buffer is shared, not copied; it must not change during runs.
func NewImageBuffer(name string, buf *compositor.Buffer) *Image {
	return &Image{
		base: base{name: name, canvas: buf.Region()},
		buf:  buf,
	}
}

// Translate moves the canvas by (dx, dy). Returns the operation for
// chaining during graph assembly; must not be called once a system has
// been built from the graph.
func (o *Image) Translate(dx, dy int) *Image {
	o.dx += dx
	o.dy += dy
	o.canvas = o.canvas.Offset(dx, dy)
	return o
}

// Render implements compositor.Operation.
func (o *Image) Render(dst *compositor.Buffer, area compositor.Region, _ []*compositor.Buffer) {
	if o.dx == 0 && o.dy == 0 {
		dst.CopyFrom(o.buf, area)
		return
	}
	for y := area.MinY; y < area.MaxY; y++ {
		for x := area.MinX; x < area.MaxX; x++ {
			dst.Set(x, y, o.buf.At(x-o.dx, y-o.dy))
		}
	}
}
