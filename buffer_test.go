package compositor

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// =============================================================================
// Buffer Pixel Access Tests
// =============================================================================

func TestBuffer_SetAt(t *testing.T) {
	b := NewBuffer(Rect(10, 20, 14, 24))

	c := RGBA{R: 0.5, G: 0.25, B: 1, A: 1}
	b.Set(11, 21, c)

	if got := b.At(11, 21); got != c {
		t.Errorf("At(11, 21) = %v, want %v", got, c)
	}
	if got := b.At(10, 20); got != (RGBA{}) {
		t.Errorf("At(10, 20) = %v, want zero", got)
	}
}

func TestBuffer_AtClampsToEdge(t *testing.T) {
	b := NewBuffer(Rect(0, 0, 2, 2))
	c := RGBA{R: 1, A: 1}
	b.Set(0, 0, c)

	// Reads left and above the region clamp to the corner pixel.
	if got := b.At(-5, -5); got != c {
		t.Errorf("At(-5, -5) = %v, want %v (edge clamp)", got, c)
	}

	d := RGBA{G: 1, A: 1}
	b.Set(1, 1, d)
	if got := b.At(10, 10); got != d {
		t.Errorf("At(10, 10) = %v, want %v (edge clamp)", got, d)
	}
}

func TestBuffer_SetOutsideDropped(t *testing.T) {
	b := NewBuffer(Rect(0, 0, 2, 2))
	b.Set(5, 5, RGBA{R: 1, A: 1})

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := b.At(x, y); got != (RGBA{}) {
				t.Errorf("At(%d, %d) = %v, want zero after out-of-region Set", x, y, got)
			}
		}
	}
}

func TestBuffer_EmptyRegionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBuffer(empty) did not panic")
		}
	}()
	NewBuffer(Region{})
}

// =============================================================================
// Fill / Copy Tests
// =============================================================================

func TestBuffer_Fill(t *testing.T) {
	b := NewBuffer(Rect(0, 0, 4, 4))
	c := RGBA{R: 0.2, G: 0.4, B: 0.6, A: 1}

	b.Fill(Rect(1, 1, 3, 3), c)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := RGBA{}
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = c
			}
			if got := b.At(x, y); got != want {
				t.Errorf("At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBuffer_FillClipsToRegion(t *testing.T) {
	b := NewBuffer(Rect(0, 0, 2, 2))
	b.Fill(Rect(-10, -10, 10, 10), RGBA{A: 1})

	if got := b.At(1, 1); got != (RGBA{A: 1}) {
		t.Errorf("At(1, 1) = %v, want filled", got)
	}
}

func TestBuffer_CopyFrom(t *testing.T) {
	src := NewBuffer(Rect(0, 0, 4, 4))
	src.Fill(src.Region(), RGBA{R: 1, A: 1})

	dst := NewBuffer(Rect(2, 2, 6, 6))
	dst.CopyFrom(src, Rect(0, 0, 6, 6))

	// Only the overlap [2,4)x[2,4) is copied.
	if got := dst.At(2, 2); got != (RGBA{R: 1, A: 1}) {
		t.Errorf("At(2, 2) = %v, want copied red", got)
	}
	if got := dst.At(4, 4); got != (RGBA{}) {
		t.Errorf("At(4, 4) = %v, want zero (outside src)", got)
	}
}

// =============================================================================
// Sampling Tests
// =============================================================================

func TestBuffer_SamplePixelCenter(t *testing.T) {
	b := NewBuffer(Rect(0, 0, 2, 1))
	b.Set(0, 0, RGBA{R: 1, A: 1})
	b.Set(1, 0, RGBA{R: 0, A: 1})

	// Pixel centers sample exactly.
	if got := b.Sample(0.5, 0.5); !colorsClose(got, RGBA{R: 1, A: 1}) {
		t.Errorf("Sample(0.5, 0.5) = %v, want red", got)
	}
	// Halfway between centers blends evenly.
	if got := b.Sample(1.0, 0.5); !colorsClose(got, RGBA{R: 0.5, A: 1}) {
		t.Errorf("Sample(1.0, 0.5) = %v, want half red", got)
	}
}

// =============================================================================
// Image Interop Tests
// =============================================================================

func TestBuffer_ImageRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{R: 0, G: 128, B: 0, A: 128})

	b := FromImage(img)
	if b.Region() != Rect(0, 0, 3, 2) {
		t.Fatalf("Region() = %v, want %v", b.Region(), Rect(0, 0, 3, 2))
	}

	out := b.ToImage()
	got := out.NRGBAAt(0, 0)
	if got.R != 255 || got.A != 255 {
		t.Errorf("round trip (0,0) = %v, want opaque red", got)
	}

	// Premultiplied storage loses at most quantization precision.
	got = out.NRGBAAt(2, 1)
	if got.A != 128 || math.Abs(float64(got.G)-128) > 2 {
		t.Errorf("round trip (2,1) = %v, want G≈128 A=128", got)
	}
}

func colorsClose(a, b RGBA) bool {
	const eps = 1e-5
	return math.Abs(float64(a.R-b.R)) < eps &&
		math.Abs(float64(a.G-b.G)) < eps &&
		math.Abs(float64(a.B-b.B)) < eps &&
		math.Abs(float64(a.A-b.A)) < eps
}
