package filter

import (
	"math"
	"sync"

	"github.com/gogpu/compositor"
)

// BlurFilter applies separable Gaussian blur to a buffer area.
// The separable algorithm runs a horizontal and a vertical 1D pass,
// achieving O(w*h*(rx+ry)) complexity instead of O(w*h*rx*ry).
type BlurFilter struct {
	// RadiusX is the horizontal blur radius in pixels.
	RadiusX float64

	// RadiusY is the vertical blur radius in pixels.
	RadiusY float64
}

// NewBlurFilter creates a blur filter with equal radius in both directions.
func NewBlurFilter(radius float64) *BlurFilter {
	return &BlurFilter{
		RadiusX: radius,
		RadiusY: radius,
	}
}

// NewBlurFilterXY creates a blur filter with different X and Y radii,
// for anisotropic (directional) blur.
func NewBlurFilterXY(radiusX, radiusY float64) *BlurFilter {
	return &BlurFilter{
		RadiusX: radiusX,
		RadiusY: radiusY,
	}
}

// Apply convolves src over area and writes the result to dst. Reads
// outside the source region clamp to its edge; writes outside the
// destination region are dropped.
//
// The two passes share an intermediate buffer sized to cover area plus
// the vertical kernel reach, so every output pixel sees a fully
// populated window.
func (f *BlurFilter) Apply(dst, src *compositor.Buffer, area compositor.Region) {
	if src == nil || dst == nil || area.IsEmpty() {
		return
	}

	// Zero radius is the identity.
	if f.RadiusX <= 0 && f.RadiusY <= 0 {
		dst.CopyFrom(src, area)
		return
	}

	kernelX := CachedGaussianKernel(f.RadiusX)
	kernelY := CachedGaussianKernel(f.RadiusY)

	// The vertical pass at row y reads horizontally blurred rows
	// y-half..y+half, so the intermediate covers that reach.
	half := len(kernelY) / 2
	width := area.Width()
	tempH := area.Height() + 2*half

	temp := getTempBuffer(width * tempH * 4)
	defer putTempBuffer(temp)

	blurHorizontal(src, temp.data, area.MinX, area.MinY-half, width, tempH, kernelX)
	blurVertical(temp.data, dst, area, kernelY)
}

// ExpandArea returns the source area the filter reads to produce input:
// the input grown by three standard deviations on each axis. Operations
// report this as their input requirement.
func (f *BlurFilter) ExpandArea(input compositor.Region) compositor.Region {
	expandX := int(math.Ceil(f.RadiusX * 3))
	expandY := int(math.Ceil(f.RadiusY * 3))

	return compositor.Region{
		MinX: input.MinX - expandX,
		MinY: input.MinY - expandY,
		MaxX: input.MaxX + expandX,
		MaxY: input.MaxY + expandY,
	}
}

// blurHorizontal convolves each row with the 1D kernel, reading from src
// with edge clamping and writing width*height pixels to temp. The row
// window starts at (minX, minY) in source coordinates and may extend
// outside the source region.
func blurHorizontal(src *compositor.Buffer, temp []float32, minX, minY, width, height int, kernel []float32) {
	half := len(kernel) / 2
	sr := src.Region()
	srcData := src.Data()
	srcW := sr.Width()

	for y := 0; y < height; y++ {
		sy := minY + y
		if sy < sr.MinY {
			sy = sr.MinY
		} else if sy >= sr.MaxY {
			sy = sr.MaxY - 1
		}
		rowBase := (sy - sr.MinY) * srcW

		for x := 0; x < width; x++ {
			var r, g, b, a float32

			for k, w := range kernel {
				kx := minX + x + k - half
				if kx < sr.MinX {
					kx = sr.MinX
				} else if kx >= sr.MaxX {
					kx = sr.MaxX - 1
				}

				si := (rowBase + kx - sr.MinX) * 4
				r += srcData[si+0] * w
				g += srcData[si+1] * w
				b += srcData[si+2] * w
				a += srcData[si+3] * w
			}

			ti := (y*width + x) * 4
			temp[ti+0] = r
			temp[ti+1] = g
			temp[ti+2] = b
			temp[ti+3] = a
		}
	}
}

// blurVertical convolves each column of the intermediate buffer and
// writes area to dst. The intermediate holds area.Height()+kernel-1
// rows, so the column window y..y+len(kernel)-1 never leaves it.
func blurVertical(temp []float32, dst *compositor.Buffer, area compositor.Region, kernel []float32) {
	width := area.Width()
	height := area.Height()
	dr := dst.Region()
	dstData := dst.Data()
	dstW := dr.Width()

	for y := 0; y < height; y++ {
		dy := area.MinY + y
		if dy < dr.MinY || dy >= dr.MaxY {
			continue
		}

		for x := 0; x < width; x++ {
			dx := area.MinX + x
			if dx < dr.MinX || dx >= dr.MaxX {
				continue
			}

			var r, g, b, a float32

			for k, w := range kernel {
				ti := ((y+k)*width + x) * 4
				r += temp[ti+0] * w
				g += temp[ti+1] * w
				b += temp[ti+2] * w
				a += temp[ti+3] * w
			}

			di := ((dy-dr.MinY)*dstW + dx - dr.MinX) * 4
			dstData[di+0] = r
			dstData[di+1] = g
			dstData[di+2] = b
			dstData[di+3] = a
		}
	}
}

// floatBuffer wraps a slice so sync.Pool stores a pointer-shaped value.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 256*1024)}
	},
}

// getTempBuffer returns a pooled intermediate buffer of at least n
// elements. The horizontal pass overwrites every element it uses, so
// the buffer is not cleared.
func getTempBuffer(n int) *floatBuffer {
	buf := tempBufferPool.Get().(*floatBuffer)
	if cap(buf.data) < n {
		buf.data = make([]float32, n)
	}
	buf.data = buf.data[:n]
	return buf
}

// putTempBuffer returns a buffer to the pool. Oversized buffers are
// dropped so one huge render does not pin memory forever.
func putTempBuffer(buf *floatBuffer) {
	if cap(buf.data) <= 16*1024*1024 {
		tempBufferPool.Put(buf)
	}
}
