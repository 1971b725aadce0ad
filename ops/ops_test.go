package ops

import (
	"testing"

	"github.com/gogpu/compositor"
)

// Shared helpers for the ops tests.

// renderChain evaluates op and its upstream chain full-frame without an
// engine, for tests that exercise Render directly. InitData is not
// called; operations run with their construction-time defaults.
func renderChain(op compositor.Operation) *compositor.Buffer {
	bufs := make(map[compositor.Operation]*compositor.Buffer)
	var eval func(o compositor.Operation) *compositor.Buffer
	eval = func(o compositor.Operation) *compositor.Buffer {
		if b, ok := bufs[o]; ok {
			return b
		}
		ins := o.Inputs()
		inputs := make([]*compositor.Buffer, len(ins))
		for i, in := range ins {
			if in != nil {
				inputs[i] = eval(in)
			}
		}
		out := compositor.NewBuffer(o.Canvas())
		o.Render(out, o.Canvas(), inputs)
		bufs[o] = out
		return out
	}
	return eval(op)
}

// wantPixel fails the test when the buffer pixel differs from want by
// more than tol on any channel.
func wantPixel(t *testing.T, b *compositor.Buffer, x, y int, want compositor.RGBA, tol float32) {
	t.Helper()
	got := b.At(x, y)
	if abs32(got.R-want.R) > tol || abs32(got.G-want.G) > tol ||
		abs32(got.B-want.B) > tol || abs32(got.A-want.A) > tol {
		t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// execute builds a system from the graph and runs it to completion. The
// system is closed at test cleanup, not here, so viewer results stay
// readable in the test body.
func execute(t *testing.T, g *Graph, opts ...compositor.Option) {
	t.Helper()
	sys, err := compositor.NewSystem(g, opts...)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	t.Cleanup(func() { sys.Close() })
	sys.Execute()
}
