// Package blend implements the per-pixel mixing math used by mix-style
// operations.
//
// All entry points take premultiplied colors, matching the engine's
// buffer format. Separable modes unpremultiply internally, blend the
// straight channels, then restore premultiplication. A factored blend
// keeps the base input's alpha, so mixing never changes coverage.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"github.com/gogpu/compositor"
)

// Mode selects the channel math applied by Blend.
type Mode int

const (
	// ModeMix interpolates base toward top.
	ModeMix Mode = iota
	// ModeAdd sums the channels.
	ModeAdd
	// ModeSubtract subtracts top from base.
	ModeSubtract
	// ModeMultiply multiplies the channels.
	ModeMultiply
	// ModeScreen inverts, multiplies, inverts again.
	ModeScreen
	// ModeDifference takes the absolute channel difference.
	ModeDifference
	// ModeDarken keeps the smaller channel.
	ModeDarken
	// ModeLighten keeps the larger channel.
	ModeLighten
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMix:
		return "Mix"
	case ModeAdd:
		return "Add"
	case ModeSubtract:
		return "Subtract"
	case ModeMultiply:
		return "Multiply"
	case ModeScreen:
		return "Screen"
	case ModeDifference:
		return "Difference"
	case ModeDarken:
		return "Darken"
	case ModeLighten:
		return "Lighten"
	default:
		return "Unknown"
	}
}

// channelFunc blends one straight (unpremultiplied) channel pair.
// Formulas follow the W3C separable blend functions B(Cb, Cs).
type channelFunc func(base, top float32) float32

func mixChan(_, top float32) float32      { return top }
func addChan(base, top float32) float32   { return base + top }
func subChan(base, top float32) float32   { return base - top }
func mulChan(base, top float32) float32   { return base * top }
func screenChan(base, top float32) float32 {
	return 1 - (1-base)*(1-top)
}
func diffChan(base, top float32) float32 {
	if base > top {
		return base - top
	}
	return top - base
}
func darkenChan(base, top float32) float32  { return min(base, top) }
func lightenChan(base, top float32) float32 { return max(base, top) }

func channelFor(m Mode) channelFunc {
	switch m {
	case ModeAdd:
		return addChan
	case ModeSubtract:
		return subChan
	case ModeMultiply:
		return mulChan
	case ModeScreen:
		return screenChan
	case ModeDifference:
		return diffChan
	case ModeDarken:
		return darkenChan
	case ModeLighten:
		return lightenChan
	default:
		return mixChan
	}
}

// Blend mixes top into base: each color channel moves toward the mode's
// blend result by fac, and the base alpha is kept. fac is clamped to
// [0, 1]; fac 0 returns base unchanged.
//
// Channel values are not clamped, so additive modes can push results
// above 1 the same way a float render pipeline would.
func Blend(base, top compositor.RGBA, fac float32, mode Mode) compositor.RGBA {
	if fac <= 0 {
		return base
	}
	if fac > 1 {
		fac = 1
	}

	br, bg, bb, ba := base.Unpremultiply()
	tr, tg, tb, _ := top.Unpremultiply()

	f := channelFor(mode)
	r := br + fac*(f(br, tr)-br)
	g := bg + fac*(f(bg, tg)-bg)
	b := bb + fac*(f(bb, tb)-bb)

	return compositor.Premultiply(r, g, b, ba)
}

// Over composites a premultiplied foreground over a background.
// Formula: out = fg + bg * (1 - fgA)
func Over(fg, bg compositor.RGBA) compositor.RGBA {
	inv := 1 - fg.A
	return compositor.RGBA{
		R: fg.R + bg.R*inv,
		G: fg.G + bg.G*inv,
		B: fg.B + bg.B*inv,
		A: fg.A + bg.A*inv,
	}
}

// OverFac composites fg over bg scaled by fac: the foreground's
// contribution fades out as fac drops to 0. fac is clamped to [0, 1].
func OverFac(fg, bg compositor.RGBA, fac float32) compositor.RGBA {
	if fac <= 0 {
		return bg
	}
	if fac > 1 {
		fac = 1
	}
	if fac < 1 {
		fg = compositor.RGBA{R: fg.R * fac, G: fg.G * fac, B: fg.B * fac, A: fg.A * fac}
	}
	return Over(fg, bg)
}
