package ops

import (
	"testing"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/filter"
)

func TestColorMatrixInvert(t *testing.T) {
	canvas := compositor.Rect(0, 0, 4, 4)
	in := NewColor("in", canvas, compositor.RGB(1, 0, 0.25))

	out := renderChain(NewColorMatrix("invert", filter.NewInvertFilter(), in))
	wantPixel(t, out, 1, 1, compositor.RGB(0, 1, 0.75), 1e-5)
}

func TestColorMatrixGrayscale(t *testing.T) {
	canvas := compositor.Rect(0, 0, 2, 2)
	in := NewColor("in", canvas, compositor.RGB(1, 0, 0))

	out := renderChain(NewColorMatrix("gray", filter.NewGrayscaleFilter(), in))
	wantPixel(t, out, 0, 0, compositor.RGB(0.2126, 0.2126, 0.2126), 1e-4)
}

func TestColorMatrixCanvasAndKind(t *testing.T) {
	canvas := compositor.Rect(5, 5, 25, 15)
	in := NewColor("in", canvas, compositor.RGB(1, 1, 1))
	op := NewColorMatrix("cm", filter.NewBrightnessFilter(2), in)

	if op.Canvas() != canvas {
		t.Errorf("Canvas = %v, want input canvas %v", op.Canvas(), canvas)
	}
	if op.AccelOp() != compositor.AccelColorMatrix {
		t.Errorf("AccelOp = %v, want AccelColorMatrix", op.AccelOp())
	}
	if got := op.Matrix(); got != filter.NewBrightnessFilter(2).Matrix {
		t.Error("Matrix accessor does not match the filter coefficients")
	}
}

func TestColorMatrixNilInputTransparent(t *testing.T) {
	canvas := compositor.Rect(0, 0, 2, 2)
	in := NewColor("in", canvas, compositor.RGB(1, 0, 0))
	op := NewColorMatrix("cm", filter.NewInvertFilter(), in)

	dst := compositor.NewBuffer(canvas)
	dst.Fill(canvas, compositor.RGB(1, 1, 1))
	op.Render(dst, canvas, []*compositor.Buffer{nil})

	wantPixel(t, dst, 0, 0, compositor.Transparent, 0)
}
