package filter

import (
	"math"
	"testing"

	"github.com/gogpu/compositor"
)

func TestNewBlurFilter(t *testing.T) {
	f := NewBlurFilter(5)

	if f.RadiusX != 5 {
		t.Errorf("RadiusX = %v, want 5", f.RadiusX)
	}
	if f.RadiusY != 5 {
		t.Errorf("RadiusY = %v, want 5", f.RadiusY)
	}
}

func TestNewBlurFilterXY(t *testing.T) {
	f := NewBlurFilterXY(3, 7)

	if f.RadiusX != 3 {
		t.Errorf("RadiusX = %v, want 3", f.RadiusX)
	}
	if f.RadiusY != 7 {
		t.Errorf("RadiusY = %v, want 7", f.RadiusY)
	}
}

func TestBlurFilterExpandArea(t *testing.T) {
	tests := []struct {
		name   string
		rx, ry float64
		input  compositor.Region
		want   compositor.Region
	}{
		{
			name:  "zero radius",
			input: compositor.Rect(10, 10, 100, 100),
			want:  compositor.Rect(10, 10, 100, 100),
		},
		{
			name:  "symmetric radius",
			rx:    5,
			ry:    5,
			input: compositor.Rect(0, 0, 100, 100),
			want:  compositor.Rect(-15, -15, 115, 115), // ceil(5*3) = 15
		},
		{
			name:  "asymmetric radius",
			rx:    3,
			ry:    10,
			input: compositor.Rect(50, 50, 150, 150),
			want:  compositor.Rect(41, 20, 159, 180), // ceil(3*3)=9, ceil(10*3)=30
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewBlurFilterXY(tt.rx, tt.ry)
			if got := f.ExpandArea(tt.input); got != tt.want {
				t.Errorf("ExpandArea = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlurFilterApplyZeroRadius(t *testing.T) {
	region := compositor.Rect(0, 0, 10, 10)
	red := compositor.RGB(1, 0, 0)
	src := solidBuffer(region, red)
	dst := compositor.NewBuffer(region)

	NewBlurFilter(0).Apply(dst, src, region)

	wantColor(t, dst, 0, 0, red, 0)
	wantColor(t, dst, 9, 9, red, 0)
}

func TestBlurFilterApplyUniformField(t *testing.T) {
	// A normalized kernel over a constant field is the identity, edge
	// clamping included.
	region := compositor.Rect(0, 0, 20, 20)
	c := compositor.RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1}
	src := solidBuffer(region, c)
	dst := compositor.NewBuffer(region)

	NewBlurFilter(3).Apply(dst, src, region)

	for _, p := range [][2]int{{0, 0}, {19, 0}, {10, 10}, {0, 19}, {19, 19}} {
		wantColor(t, dst, p[0], p[1], c, 1e-4)
	}
}

func TestBlurFilterApplySpreadsPoint(t *testing.T) {
	region := compositor.Rect(0, 0, 16, 16)
	src := compositor.NewBuffer(region)
	src.Set(8, 8, compositor.RGBA{R: 1, A: 1})
	dst := compositor.NewBuffer(region)

	NewBlurFilter(1).Apply(dst, src, region)

	center := dst.At(8, 8)
	if center.R <= 0 || center.R >= 1 {
		t.Errorf("center R = %v, want in (0, 1)", center.R)
	}
	if n := dst.At(8, 9); n.R <= 0 {
		t.Error("expected blur to spread into the neighbor row")
	}

	// The kernel window stays inside the buffer, so the weight sum is
	// preserved exactly up to rounding.
	var sum float64
	data := dst.Data()
	for i := 0; i < len(data); i += 4 {
		sum += float64(data[i])
	}
	if math.Abs(sum-1.0) > 1e-3 {
		t.Errorf("red energy after blur = %v, want ~1.0", sum)
	}

	// Point spread is symmetric around the center.
	if l, r := dst.At(6, 8).R, dst.At(10, 8).R; abs32(l-r) > 1e-5 {
		t.Errorf("asymmetric spread: left %v, right %v", l, r)
	}
}

func TestBlurFilterApplyAnisotropic(t *testing.T) {
	region := compositor.Rect(0, 0, 16, 16)
	src := compositor.NewBuffer(region)
	src.Set(8, 8, compositor.RGBA{R: 1, A: 1})
	dst := compositor.NewBuffer(region)

	// Horizontal-only blur leaves other rows untouched.
	NewBlurFilterXY(2, 0).Apply(dst, src, region)

	if beside := dst.At(9, 8); beside.R <= 0 {
		t.Error("expected horizontal spread")
	}
	if above := dst.At(8, 7); above.R != 0 {
		t.Errorf("row above center = %v, want 0 with RadiusY=0", above.R)
	}
}

func TestBlurFilterApplyMatchesDirectConvolution(t *testing.T) {
	region := compositor.Rect(0, 0, 12, 9)
	src := compositor.NewBuffer(region)
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			src.Set(x, y, compositor.RGBA{
				R: float32(x) / 12,
				G: float32(y) / 9,
				B: float32(x*y) / 100,
				A: 1,
			})
		}
	}
	dst := compositor.NewBuffer(region)

	f := NewBlurFilterXY(1.5, 1)
	f.Apply(dst, src, region)

	kx := GaussianKernel(f.RadiusX)
	ky := GaussianKernel(f.RadiusY)
	hx, hy := len(kx)/2, len(ky)/2

	// Direct 2D convolution with the same edge clamping.
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			var want compositor.RGBA
			for j, wy := range ky {
				for i, wx := range kx {
					c := src.At(x+i-hx, y+j-hy)
					w := wx * wy
					want.R += c.R * w
					want.G += c.G * w
					want.B += c.B * w
					want.A += c.A * w
				}
			}
			if got := dst.At(x, y); !colorNear(got, want, 1e-4) {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestBlurFilterApplySubArea(t *testing.T) {
	// Rendering a band of the output must match the same band of a
	// whole-area render. This is how slab rendering drives the filter.
	region := compositor.Rect(0, 0, 24, 24)
	src := compositor.NewBuffer(region)
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			src.Set(x, y, compositor.RGBA{R: float32((x + y) % 5), A: 1})
		}
	}

	whole := compositor.NewBuffer(region)
	f := NewBlurFilter(2)
	f.Apply(whole, src, region)

	banded := compositor.NewBuffer(region)
	f.Apply(banded, src, compositor.Rect(0, 0, 24, 10))
	f.Apply(banded, src, compositor.Rect(0, 10, 24, 24))

	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			if got, want := banded.At(x, y), whole.At(x, y); !colorNear(got, want, 1e-5) {
				t.Fatalf("pixel (%d,%d): banded %+v, whole %+v", x, y, got, want)
			}
		}
	}
}

func TestBlurFilterApplyNilBuffers(t *testing.T) {
	region := compositor.Rect(0, 0, 4, 4)
	buf := compositor.NewBuffer(region)

	// Must not panic.
	f := NewBlurFilter(2)
	f.Apply(nil, buf, region)
	f.Apply(buf, nil, region)
	f.Apply(buf, buf, compositor.Region{})
}

func BenchmarkBlurFilterApply(b *testing.B) {
	region := compositor.Rect(0, 0, 256, 256)
	src := solidBuffer(region, compositor.RGB(0.5, 0.5, 0.5))
	dst := compositor.NewBuffer(region)
	f := NewBlurFilter(5)

	b.ReportAllocs()
	for b.Loop() {
		f.Apply(dst, src, region)
	}
}
