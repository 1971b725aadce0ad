// Package filter provides the pixel kernels behind the filtering
// operations: separable Gaussian blur, 1D convolution kernels, and 4x5
// color matrix transforms.
//
// All filters work on premultiplied float32 buffers and read past the
// source edge with clamp-to-edge semantics, so filtering up to a canvas
// border never darkens the result. Gaussian kernels are cached by
// quantized radius since a node graph typically re-renders with the
// same few radii.
package filter
