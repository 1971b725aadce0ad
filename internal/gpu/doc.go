// Package gpu implements the wgpu-backed accelerator registered by the
// public gpu package.
//
// The accelerator evaluates color matrix operations through a compute
// kernel compiled from embedded WGSL. Device initialization is lazy: the
// first accelerated render either opens a standalone Vulkan device or
// adopts one shared by the host via SetDeviceProvider. When no device
// can be opened, every render reports ErrFallbackToCPU and the engine
// stays on its CPU path.
package gpu
