package filter

import (
	"math"

	"github.com/gogpu/compositor"
)

// ColorMatrixFilter applies a 4x5 color transformation matrix to a buffer.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column provides bias/offset values. The matrix operates on
// straight-alpha values in the [0, 1] range; Apply unpremultiplies,
// transforms and re-premultiplies each pixel.
type ColorMatrixFilter struct {
	// Matrix is the 4x5 transformation matrix in row-major order.
	// [0-4] = row 0 (R), [5-9] = row 1 (G), [10-14] = row 2 (B), [15-19] = row 3 (A)
	Matrix [20]float32
}

// NewColorMatrixFilter creates a color matrix filter with the given matrix.
func NewColorMatrixFilter(matrix [20]float32) *ColorMatrixFilter {
	return &ColorMatrixFilter{Matrix: matrix}
}

// NewIdentityColorMatrix creates a color matrix filter that passes colors
// through unchanged.
func NewIdentityColorMatrix() *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			1, 0, 0, 0, 0, // R
			0, 1, 0, 0, 0, // G
			0, 0, 1, 0, 0, // B
			0, 0, 0, 1, 0, // A
		},
	}
}

// NewBrightnessFilter creates a filter that scales brightness.
// factor: 0.0 = black, 1.0 = unchanged, 2.0 = twice as bright.
func NewBrightnessFilter(factor float32) *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			factor, 0, 0, 0, 0,
			0, factor, 0, 0, 0,
			0, 0, factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewContrastFilter creates a filter that adjusts contrast around
// mid-gray: (color - 0.5) * factor + 0.5.
// factor: 0.0 = flat gray, 1.0 = unchanged, 2.0 = high contrast.
func NewContrastFilter(factor float32) *ColorMatrixFilter {
	offset := 0.5 * (1 - factor)
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			factor, 0, 0, 0, offset,
			0, factor, 0, 0, offset,
			0, 0, factor, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// NewSaturationFilter creates a filter that adjusts color saturation.
// factor: 0.0 = grayscale, 1.0 = unchanged, 2.0 = oversaturated.
func NewSaturationFilter(factor float32) *ColorMatrixFilter {
	// Luminance weights (Rec. 709).
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)

	// Blends between the luminance projection (0) and identity (1).
	invFactor := 1 - factor

	return &ColorMatrixFilter{
		Matrix: [20]float32{
			lumR*invFactor + factor, lumG * invFactor, lumB * invFactor, 0, 0,
			lumR * invFactor, lumG*invFactor + factor, lumB * invFactor, 0, 0,
			lumR * invFactor, lumG * invFactor, lumB*invFactor + factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewGrayscaleFilter creates a filter that converts to grayscale using
// Rec. 709 luminance weights.
func NewGrayscaleFilter() *ColorMatrixFilter {
	return NewSaturationFilter(0)
}

// NewSepiaFilter creates a filter that applies a sepia tone.
func NewSepiaFilter() *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewInvertFilter creates a filter that inverts color channels, leaving
// alpha unchanged.
func NewInvertFilter() *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			-1, 0, 0, 0, 1,
			0, -1, 0, 0, 1,
			0, 0, -1, 0, 1,
			0, 0, 0, 1, 0,
		},
	}
}

// NewHueRotateFilter creates a filter that rotates hue by the given
// angle in degrees, rotating in YIQ space.
func NewHueRotateFilter(degrees float32) *ColorMatrixFilter {
	rad := float64(degrees) * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)

	return &ColorMatrixFilter{
		Matrix: [20]float32{
			lumR + cos*(1-lumR) + sin*(-lumR), lumG + cos*(-lumG) + sin*(-lumG), lumB + cos*(-lumB) + sin*(1-lumB), 0, 0,
			lumR + cos*(-lumR) + sin*(0.143), lumG + cos*(1-lumG) + sin*(0.140), lumB + cos*(-lumB) + sin*(-0.283), 0, 0,
			lumR + cos*(-lumR) + sin*(-(1 - lumR)), lumG + cos*(-lumG) + sin*(lumG), lumB + cos*(1-lumB) + sin*(lumB), 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewOpacityFilter creates a filter that multiplies alpha by the given
// factor. factor: 0.0 = fully transparent, 1.0 = unchanged.
func NewOpacityFilter(factor float32) *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			1, 0, 0, 0, 0,
			0, 1, 0, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 0, factor, 0,
		},
	}
}

// NewColorTintFilter creates a filter that blends colors toward the tint
// color, weighted by the tint's alpha.
func NewColorTintFilter(tint compositor.RGBA) *ColorMatrixFilter {
	tr, tg, tb, ta := tint.Unpremultiply()
	invF := 1 - ta

	return &ColorMatrixFilter{
		Matrix: [20]float32{
			invF, 0, 0, 0, tr * ta,
			0, invF, 0, 0, tg * ta,
			0, 0, invF, 0, tb * ta,
			0, 0, 0, 1, 0,
		},
	}
}

// Apply transforms area of src and writes the result to dst. The area is
// clipped to both buffer regions.
//
// Alpha is clamped to [0, 1] so re-premultiplication stays meaningful;
// color channels are left unclamped for downstream HDR-aware operations.
func (f *ColorMatrixFilter) Apply(dst, src *compositor.Buffer, area compositor.Region) {
	if src == nil || dst == nil {
		return
	}
	area = area.Intersect(src.Region()).Intersect(dst.Region())
	if area.IsEmpty() {
		return
	}

	sr := src.Region()
	dr := dst.Region()
	srcData := src.Data()
	dstData := dst.Data()
	srcW := sr.Width()
	dstW := dr.Width()

	m := &f.Matrix

	for y := area.MinY; y < area.MaxY; y++ {
		si := ((y-sr.MinY)*srcW + (area.MinX - sr.MinX)) * 4
		di := ((y-dr.MinY)*dstW + (area.MinX - dr.MinX)) * 4

		for x := area.MinX; x < area.MaxX; x++ {
			pr := srcData[si+0]
			pg := srcData[si+1]
			pb := srcData[si+2]
			a := srcData[si+3]

			// The coefficients assume straight-alpha values.
			var r, g, b float32
			if a > 0 {
				inv := 1 / a
				r = pr * inv
				g = pg * inv
				b = pb * inv
			}

			newR := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
			newG := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
			newB := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
			newA := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]

			if newA < 0 {
				newA = 0
			} else if newA > 1 {
				newA = 1
			}

			dstData[di+0] = newR * newA
			dstData[di+1] = newG * newA
			dstData[di+2] = newB * newA
			dstData[di+3] = newA

			si += 4
			di += 4
		}
	}
}

// TransformColor applies the matrix to a single premultiplied color.
func (f *ColorMatrixFilter) TransformColor(c compositor.RGBA) compositor.RGBA {
	r, g, b, a := c.Unpremultiply()
	m := &f.Matrix

	newR := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
	newG := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
	newB := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
	newA := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]

	if newA < 0 {
		newA = 0
	} else if newA > 1 {
		newA = 1
	}
	return compositor.Premultiply(newR, newG, newB, newA)
}

// Multiply returns a new filter that is the product of this filter and
// other. The result applies other first, then this filter.
func (f *ColorMatrixFilter) Multiply(other *ColorMatrixFilter) *ColorMatrixFilter {
	a := &f.Matrix
	b := &other.Matrix

	result := &ColorMatrixFilter{}
	r := &result.Matrix

	// 4x5 * 4x5 with the fifth column treated as a constant term.
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[row*5+k] * b[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = a[row*5+0]*b[4] + a[row*5+1]*b[9] +
			a[row*5+2]*b[14] + a[row*5+3]*b[19] + a[row*5+4]
	}

	return result
}
