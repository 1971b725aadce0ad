package ops

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/internal/blend"
)

// BlendMode selects the per-channel combine function of a Mix.
type BlendMode = blend.Mode

// Blend modes.
const (
	// ModeMix linearly interpolates toward the top input.
	ModeMix = blend.ModeMix

	// ModeAdd adds the top channels to the base.
	ModeAdd = blend.ModeAdd

	// ModeSubtract subtracts the top channels from the base.
	ModeSubtract = blend.ModeSubtract

	// ModeMultiply multiplies the channels. Result is darker or equal.
	ModeMultiply = blend.ModeMultiply

	// ModeScreen performs inverse multiply for lighter results.
	ModeScreen = blend.ModeScreen

	// ModeDifference takes the absolute channel difference.
	ModeDifference = blend.ModeDifference

	// ModeDarken keeps the darker channel.
	ModeDarken = blend.ModeDarken

	// ModeLighten keeps the lighter channel.
	ModeLighten = blend.ModeLighten
)

// Mix blends two inputs per pixel with a fixed factor. At factor 0 the
// result is the base input unchanged; at factor 1 each color channel is
// fully replaced by the blend-mode result. Coverage follows the base
// input: mixing never changes alpha.
type Mix struct {
	base
	mode   BlendMode
	factor float32
}

// NewMix creates a mix operation over the base input's canvas. Inputs
// are (base, top).
func NewMix(name string, mode BlendMode, factor float32, baseIn, top compositor.Operation) *Mix {
	return &Mix{
		base: base{
			name:   name,
			canvas: baseIn.Canvas(),
			inputs: []compositor.Operation{baseIn, top},
		},
		mode:   mode,
		factor: factor,
	}
}

// Mode returns the blend mode.
func (o *Mix) Mode() BlendMode { return o.mode }

// Factor returns the blend factor.
func (o *Mix) Factor() float32 { return o.factor }

// AccelOp implements compositor.AcceleratedOperation.
func (o *Mix) AccelOp() compositor.AcceleratedOp { return compositor.AccelMix }

// Render implements compositor.Operation.
func (o *Mix) Render(dst *compositor.Buffer, area compositor.Region, inputs []*compositor.Buffer) {
	bottom, top := inputs[0], inputs[1]
	for y := area.MinY; y < area.MaxY; y++ {
		for x := area.MinX; x < area.MaxX; x++ {
			dst.Set(x, y, blend.Blend(inputAt(bottom, x, y), inputAt(top, x, y), o.factor, o.mode))
		}
	}
}
