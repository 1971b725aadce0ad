package filter

import (
	"testing"

	"github.com/gogpu/compositor"
)

// Test helpers shared across filter tests.

// solidBuffer creates a buffer covering region filled with the color.
func solidBuffer(region compositor.Region, c compositor.RGBA) *compositor.Buffer {
	b := compositor.NewBuffer(region)
	b.Fill(region, c)
	return b
}

// colorNear compares two colors channel-wise with tolerance.
func colorNear(a, b compositor.RGBA, tol float32) bool {
	return abs32(a.R-b.R) <= tol &&
		abs32(a.G-b.G) <= tol &&
		abs32(a.B-b.B) <= tol &&
		abs32(a.A-b.A) <= tol
}

// wantColor fails the test when the buffer pixel differs from want by
// more than tol on any channel.
func wantColor(t *testing.T, b *compositor.Buffer, x, y int, want compositor.RGBA, tol float32) {
	t.Helper()
	got := b.At(x, y)
	if !colorNear(got, want, tol) {
		t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
