//go:build !nogpu

// Package gpu registers the wgpu compute accelerator for GPU-assisted
// compositing.
//
// Import this package to let the full-frame model evaluate supported
// operations (currently color matrix transforms) on the GPU. The
// accelerator compiles its kernels from embedded WGSL through naga and
// opens a Vulkan device lazily on first use; when no device can be
// opened, every render falls back to the CPU path, so importing this
// package is safe on machines without a GPU.
//
// Usage:
//
//	import _ "github.com/gogpu/compositor/gpu" // enable GPU acceleration
package gpu

import (
	"github.com/gogpu/compositor"
	gpuimpl "github.com/gogpu/compositor/internal/gpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func init() {
	accel := &gpuimpl.WGPUAccelerator{}
	if err := compositor.RegisterAccelerator(accel); err != nil {
		compositor.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// Available reports whether an accelerator is registered. Device
// readiness is probed lazily, so true means the GPU lane exists, not
// that a device has been opened.
func Available() bool {
	return compositor.Accelerator() != nil
}

// AcceleratorName returns the registered accelerator's name, or "" when
// none is registered.
func AcceleratorName() string {
	a := compositor.Accelerator()
	if a == nil {
		return ""
	}
	return a.Name()
}

// SetDeviceProvider configures the accelerator to use a shared GPU
// device from an external provider (e.g., a gogpu window) instead of
// creating its own. The provider should be a DeviceHandle that also
// exposes HalDevice() any and HalQueue() any for direct HAL access.
//
// Call this before the first Execute, typically right after the host
// has opened its device.
func SetDeviceProvider(provider any) error {
	return compositor.SetAcceleratorDeviceProvider(provider)
}

// DeviceHandle is the device sharing contract between a host
// application and the compositor. The host owns the GPU device and
// passes it in; the compositor never creates one when a handle is
// provided.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, giving the
// integration point a compositor-local name while staying compatible
// with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with nil implementations. Used for
// CPU-only hosts that must still satisfy a DeviceHandle parameter.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns unknown adapter info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
