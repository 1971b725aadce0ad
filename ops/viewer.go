package ops

import (
	"math"

	"github.com/gogpu/compositor"
)

// Viewer is a sink operation that retains its input for display. During
// rendering it applies the run's view transform (exposure and gamma)
// and keeps the result; after an uncancelled run it publishes a preview
// thumbnail to the tree's preview store under the operation name.
type Viewer struct {
	base
	display  *compositor.Buffer
	scale    float32
	invGamma float64
}

// NewViewer creates a viewer sink over the input's canvas.
func NewViewer(name string, in compositor.Operation) *Viewer {
	return &Viewer{
		base: base{
			name:   name,
			canvas: in.Canvas(),
			inputs: []compositor.Operation{in},
		},
		scale:    1,
		invGamma: 1,
	}
}

// InitData allocates the retained display buffer and captures the view
// transform for the run.
func (o *Viewer) InitData(ctx *compositor.Context) {
	if o.display == nil || o.display.Region() != o.canvas {
		o.display = nil
		if !o.canvas.IsEmpty() {
			o.display = compositor.NewBuffer(o.canvas)
		}
	}

	vs := ctx.ViewSettings()
	o.scale = float32(math.Exp2(vs.Exposure))
	o.invGamma = 1
	if vs.Gamma > 0 {
		o.invGamma = 1 / vs.Gamma
	}
}

// Render implements compositor.Operation. Concurrent bands cover
// disjoint areas, so the retained buffer needs no locking.
func (o *Viewer) Render(dst *compositor.Buffer, area compositor.Region, inputs []*compositor.Buffer) {
	src := inputs[0]
	for y := area.MinY; y < area.MaxY; y++ {
		for x := area.MinX; x < area.MaxX; x++ {
			c := o.displayColor(inputAt(src, x, y))
			dst.Set(x, y, c)
			if o.display != nil {
				o.display.Set(x, y, c)
			}
		}
	}
}

// displayColor applies exposure then gamma on straight-alpha channels.
func (o *Viewer) displayColor(c compositor.RGBA) compositor.RGBA {
	if o.scale == 1 && o.invGamma == 1 {
		return c
	}
	r, g, b, a := c.Unpremultiply()
	r *= o.scale
	g *= o.scale
	b *= o.scale
	if o.invGamma != 1 {
		r = powf(r, o.invGamma)
		g = powf(g, o.invGamma)
		b = powf(b, o.invGamma)
	}
	return compositor.Premultiply(r, g, b, a)
}

func powf(v float32, p float64) float32 {
	if v <= 0 {
		return 0
	}
	return float32(math.Pow(float64(v), p))
}

// Result returns the retained display buffer from the last run, nil
// before the first run or after Close.
func (o *Viewer) Result() *compositor.Buffer { return o.display }

// FinishData publishes the preview thumbnail. A cancelled run keeps the
// previous thumbnail instead of publishing a half-rendered one.
func (o *Viewer) FinishData(ctx *compositor.Context) {
	if ctx.Tree().ShouldBreak() || o.display == nil {
		return
	}
	if store := ctx.Previews(); store != nil {
		store.Set(o.name, o.display.ToImage())
	}
}

// Close drops the retained buffer.
func (o *Viewer) Close() error {
	o.display = nil
	return nil
}
