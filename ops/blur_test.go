package ops

import (
	"testing"

	"github.com/gogpu/compositor"
)

func TestBlurInputAreaMargin(t *testing.T) {
	src := NewColor("src", compositor.Rect(0, 0, 32, 32), compositor.RGB(1, 1, 1))
	op := NewBlur("blur", 2, src)

	got := op.InputArea(0, compositor.Rect(10, 10, 20, 20))
	want := compositor.Rect(4, 4, 26, 26)
	if got != want {
		t.Errorf("InputArea = %v, want %v", got, want)
	}
}

func TestBlurUniformField(t *testing.T) {
	canvas := compositor.Rect(0, 0, 16, 16)
	c := compositor.RGB(0.3, 0.6, 0.9)
	src := NewColor("src", canvas, c)

	out := renderChain(NewBlur("blur", 2, src))
	wantPixel(t, out, 8, 8, c, 1e-4)
	wantPixel(t, out, 0, 0, c, 1e-4)
}

func TestBlurZeroRadiusCopies(t *testing.T) {
	canvas := compositor.Rect(0, 0, 8, 8)
	src := NewChecker("src", canvas, compositor.RGB(0, 0, 0), compositor.RGB(1, 1, 1), 2)

	out := renderChain(NewBlur("blur", 0, src))
	ref := renderChain(src)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			wantPixel(t, out, x, y, ref.At(x, y), 0)
		}
	}
}

func TestBlurRadiiAndKind(t *testing.T) {
	src := NewColor("src", compositor.Rect(0, 0, 4, 4), compositor.RGB(1, 1, 1))
	op := NewBlurXY("blur", 3, 7, src)

	rx, ry := op.Radii()
	if rx != 3 || ry != 7 {
		t.Errorf("Radii = %v/%v, want 3/7", rx, ry)
	}
	if op.AccelOp() != compositor.AccelBlur {
		t.Errorf("AccelOp = %v, want AccelBlur", op.AccelOp())
	}
}

// A low-quality run divides the radius by the quality step, shrinking
// the kernel reach the engine asks for.
func TestBlurQualityStepThroughRun(t *testing.T) {
	g := NewGraph()
	g.SetEditQuality(compositor.QualityLow)

	src := NewColor("src", compositor.Rect(0, 0, 8, 8), compositor.RGB(1, 1, 1))
	op := NewBlur("blur", 8, src)
	g.AddOutput(NewViewer("view", op))

	area := compositor.Rect(0, 0, 10, 10)
	if got, want := op.InputArea(0, area), compositor.Rect(-24, -24, 34, 34); got != want {
		t.Fatalf("before run: InputArea = %v, want %v", got, want)
	}

	execute(t, g)

	// Low quality steps by 4: radius 8 becomes 2, reach 24 becomes 6.
	if got, want := op.InputArea(0, area), compositor.Rect(-6, -6, 16, 16); got != want {
		t.Errorf("after run: InputArea = %v, want %v", got, want)
	}
}

func TestBlurFastCalculation(t *testing.T) {
	g := NewGraph()

	src := NewColor("src", compositor.Rect(0, 0, 8, 8), compositor.RGB(1, 1, 1))
	op := NewBlur("blur", 12, src)
	g.AddOutput(NewViewer("view", op))

	execute(t, g, compositor.WithFastCalculation(true))

	// Medium edit quality steps by 2, doubled under fast calculation:
	// radius 12 becomes 3, reach 9.
	area := compositor.Rect(0, 0, 10, 10)
	if got, want := op.InputArea(0, area), compositor.Rect(-9, -9, 19, 19); got != want {
		t.Errorf("InputArea = %v, want %v", got, want)
	}
}

func TestBlurNilInputTransparent(t *testing.T) {
	canvas := compositor.Rect(0, 0, 4, 4)
	src := NewColor("src", canvas, compositor.RGB(1, 0, 0))
	op := NewBlur("blur", 1, src)

	dst := compositor.NewBuffer(canvas)
	dst.Fill(canvas, compositor.RGB(1, 1, 1))
	op.Render(dst, canvas, []*compositor.Buffer{nil})

	wantPixel(t, dst, 2, 2, compositor.Transparent, 0)
}
