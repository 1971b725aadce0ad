package compositor

import (
	"fmt"
	"image"
	"math"
)

// Buffer is a float32 RGBA pixel buffer covering a Region. Pixels are
// stored row-major, four floats per pixel, premultiplied alpha.
//
// Reads outside the region clamp to the nearest edge pixel, the extend
// policy filter operations expect. Writes outside the region are dropped.
// Concurrent use is safe as long as writers target disjoint areas.
type Buffer struct {
	region Region
	data   []float32 // RGBA, 4 floats per pixel
}

// NewBuffer allocates a zeroed buffer covering the given region.
// Panics on an empty region: operations never allocate degenerate buffers.
func NewBuffer(region Region) *Buffer {
	if region.IsEmpty() {
		panic(fmt.Sprintf("compositor: empty buffer region %v", region))
	}
	return &Buffer{
		region: region,
		data:   make([]float32, region.Area()*4),
	}
}

// Region returns the pixel region the buffer covers.
func (b *Buffer) Region() Region {
	return b.region
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.region.Width()
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.region.Height()
}

// Data returns the raw pixel data (RGBA, 4 floats per pixel, row-major).
func (b *Buffer) Data() []float32 {
	return b.data
}

// index returns the data offset for the pixel (x, y), clamped into the
// buffer region.
func (b *Buffer) index(x, y int) int {
	if x < b.region.MinX {
		x = b.region.MinX
	} else if x >= b.region.MaxX {
		x = b.region.MaxX - 1
	}
	if y < b.region.MinY {
		y = b.region.MinY
	} else if y >= b.region.MaxY {
		y = b.region.MaxY - 1
	}
	return ((y-b.region.MinY)*b.region.Width() + (x - b.region.MinX)) * 4
}

// At returns the color of the pixel (x, y). Coordinates outside the
// region clamp to the nearest edge pixel.
func (b *Buffer) At(x, y int) RGBA {
	i := b.index(x, y)
	return RGBA{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
}

// Set writes the color of the pixel (x, y). Writes outside the region
// are dropped.
func (b *Buffer) Set(x, y int, c RGBA) {
	if !b.region.Contains(x, y) {
		return
	}
	i := ((y-b.region.MinY)*b.region.Width() + (x - b.region.MinX)) * 4
	b.data[i+0] = c.R
	b.data[i+1] = c.G
	b.data[i+2] = c.B
	b.data[i+3] = c.A
}

// Fill sets every pixel of area (clipped to the buffer) to c.
func (b *Buffer) Fill(area Region, c RGBA) {
	area = area.Intersect(b.region)
	for y := area.MinY; y < area.MaxY; y++ {
		i := ((y-b.region.MinY)*b.region.Width() + (area.MinX - b.region.MinX)) * 4
		for x := area.MinX; x < area.MaxX; x++ {
			b.data[i+0] = c.R
			b.data[i+1] = c.G
			b.data[i+2] = c.B
			b.data[i+3] = c.A
			i += 4
		}
	}
}

// CopyFrom copies area from src into b. The area is clipped to both
// buffer regions; rows are copied in bulk.
func (b *Buffer) CopyFrom(src *Buffer, area Region) {
	area = area.Intersect(b.region).Intersect(src.region)
	if area.IsEmpty() {
		return
	}
	w := area.Width() * 4
	for y := area.MinY; y < area.MaxY; y++ {
		di := ((y-b.region.MinY)*b.region.Width() + (area.MinX - b.region.MinX)) * 4
		si := ((y-src.region.MinY)*src.region.Width() + (area.MinX - src.region.MinX)) * 4
		copy(b.data[di:di+w], src.data[si:si+w])
	}
}

// Sample returns the bilinearly interpolated color at the continuous
// coordinate (fx, fy). Samples outside the region clamp to the edge.
func (b *Buffer) Sample(fx, fy float64) RGBA {
	fx -= 0.5
	fy -= 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := float32(fx - math.Floor(fx))
	ty := float32(fy - math.Floor(fy))

	c00 := b.At(x0, y0)
	c10 := b.At(x0+1, y0)
	c01 := b.At(x0, y0+1)
	c11 := b.At(x0+1, y0+1)

	lerp := func(a, b float32, t float32) float32 { return a + (b-a)*t }
	top := RGBA{
		R: lerp(c00.R, c10.R, tx),
		G: lerp(c00.G, c10.G, tx),
		B: lerp(c00.B, c10.B, tx),
		A: lerp(c00.A, c10.A, tx),
	}
	bot := RGBA{
		R: lerp(c01.R, c11.R, tx),
		G: lerp(c01.G, c11.G, tx),
		B: lerp(c01.B, c11.B, tx),
		A: lerp(c01.A, c11.A, tx),
	}
	return RGBA{
		R: lerp(top.R, bot.R, ty),
		G: lerp(top.G, bot.G, ty),
		B: lerp(top.B, bot.B, ty),
		A: lerp(top.A, bot.A, ty),
	}
}

// ToImage converts the buffer to an image.NRGBA (straight alpha, 8 bits
// per channel). The image bounds start at (0, 0) regardless of the
// buffer region origin.
func (b *Buffer) ToImage() *image.NRGBA {
	w, h := b.Width(), b.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			c := RGBA{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
			r, g, bl, a := c.Unpremultiply()
			o := img.PixOffset(x, y)
			img.Pix[o+0] = uint8(clamp255(r * 255))
			img.Pix[o+1] = uint8(clamp255(g * 255))
			img.Pix[o+2] = uint8(clamp255(bl * 255))
			img.Pix[o+3] = uint8(clamp255(a * 255))
		}
	}
	return img
}

// FromImage creates a buffer from an image. The buffer region matches the
// image bounds; colors are converted to premultiplied float32.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	region := Region{MinX: bounds.Min.X, MinY: bounds.Min.Y, MaxX: bounds.Max.X, MaxY: bounds.Max.Y}
	b := NewBuffer(region)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := FromColor(img.At(x, y))
			b.data[i+0] = c.R
			b.data[i+1] = c.G
			b.data[i+2] = c.B
			b.data[i+3] = c.A
			i += 4
		}
	}
	return b
}
