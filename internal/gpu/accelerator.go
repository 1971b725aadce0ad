//go:build !nogpu

package gpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/cache"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// WGPUAccelerator evaluates supported operations with wgpu/hal compute
// kernels. It implements compositor.GPUAccelerator.
//
// Device initialization is deferred until the first accelerated render
// or until SetDeviceProvider hands over a shared device. The lazy
// approach avoids creating a standalone Vulkan device that could
// interfere with an external DX12/Metal device provided later; on some
// Intel iGPU drivers destroying a Vulkan device kills a coexisting DX12
// device.
type WGPUAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// Compiled kernels by name, built on first use per kernel and
	// reused across runs. Allocated lazily so the zero value is usable.
	kernels *cache.Cache[string, *kernelPipeline]

	gpuReady       bool
	initTried      bool
	initErr        error
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

// Interface compliance checks.
var _ compositor.GPUAccelerator = (*WGPUAccelerator)(nil)
var _ compositor.DeviceProviderAware = (*WGPUAccelerator)(nil)

// Name returns the accelerator identifier.
func (a *WGPUAccelerator) Name() string { return "wgpu" }

// Init registers the accelerator. Device initialization is deferred,
// so registration always succeeds; an unusable GPU surfaces later as
// per-render CPU fallback.
func (a *WGPUAccelerator) Init() error {
	return nil
}

// SetLogger sets the logger for the accelerator and its internals.
// Called by compositor.SetLogger to propagate logging configuration.
func (a *WGPUAccelerator) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// CanAccelerate reports whether the accelerator has a kernel for the
// operation kind. Only the color matrix kernel is implemented.
func (a *WGPUAccelerator) CanAccelerate(op compositor.AcceleratedOp) bool {
	return op&compositor.AccelColorMatrix != 0
}

// Close releases all GPU resources held by the accelerator.
func (a *WGPUAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.destroyKernelsLocked()

	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
			a.device = nil
		}
		if a.instance != nil {
			a.instance.Destroy()
			a.instance = nil
		}
	} else {
		// Don't destroy shared resources, we don't own them.
		a.device = nil
		a.instance = nil
	}
	a.queue = nil
	a.gpuReady = false
	a.initTried = false
	a.initErr = nil
	a.externalDevice = false
}

// SetDeviceProvider switches the accelerator to a shared GPU device from
// an external provider (e.g., a gogpu window). The provider must
// implement HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue.
func (a *WGPUAccelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Drop resources we created ourselves.
	a.destroyKernelsLocked()
	if !a.externalDevice && a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}

	a.device = device
	a.queue = queue
	a.externalDevice = true
	a.gpuReady = true
	a.initTried = true
	a.initErr = nil

	slogger().Debug("wgpu: switched to shared GPU device")
	return nil
}

// Render evaluates area of the operation on the device, falling back to
// the CPU path for unsupported operations or an unavailable GPU.
func (a *WGPUAccelerator) Render(op compositor.Operation, dst *compositor.Buffer, area compositor.Region, inputs []*compositor.Buffer) error {
	src, ok := op.(colorMatrixSource)
	if !ok {
		return compositor.ErrFallbackToCPU
	}
	if dst == nil || len(inputs) == 0 || inputs[0] == nil {
		return compositor.ErrFallbackToCPU
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureDeviceLocked(); err != nil {
		return compositor.ErrFallbackToCPU
	}
	if _, err := a.kernelLocked(colorMatrixKernel, colorMatrixShaderSource); err != nil {
		slogger().Warn("wgpu: kernel unavailable",
			"kernel", colorMatrixKernel, "error", err)
		return compositor.ErrFallbackToCPU
	}
	return a.dispatchColorMatrix(src.Matrix(), dst, inputs[0], area)
}

// colorMatrixSource is the accessor contract a color matrix operation
// must expose for device evaluation.
type colorMatrixSource interface {
	compositor.Operation
	Matrix() [20]float32
}

// ensureDeviceLocked opens the standalone device on first use. The
// outcome is cached: a failed probe is not retried until Close resets
// the accelerator.
func (a *WGPUAccelerator) ensureDeviceLocked() error {
	if a.gpuReady {
		return nil
	}
	if a.initTried {
		return a.initErr
	}
	a.initTried = true
	if err := a.initGPULocked(); err != nil {
		a.initErr = err
		slogger().Warn("wgpu: GPU unavailable, rendering on CPU", "error", err)
		return err
	}
	a.gpuReady = true
	return nil
}

// initGPULocked creates a standalone Vulkan device for compute-only use.
// This is the fallback path when no external device arrives via
// SetDeviceProvider.
func (a *WGPUAccelerator) initGPULocked() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		a.instance = nil
		return fmt.Errorf("no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		a.instance = nil
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue

	slogger().Debug("wgpu: GPU device initialized", "adapter", selected.Info.Name)
	return nil
}

// kernelLocked returns the compiled kernel, building it on first use.
func (a *WGPUAccelerator) kernelLocked(name, wgsl string) (*kernelPipeline, error) {
	if a.kernels == nil {
		a.kernels = cache.New[string, *kernelPipeline](8)
	}
	if k, ok := a.kernels.Get(name); ok {
		return k, nil
	}
	k, err := newKernelPipeline(a.device, name, wgsl)
	if err != nil {
		return nil, err
	}
	a.kernels.Set(name, k)
	return k, nil
}

// kernelNames lists every kernel the accelerator may have compiled.
// Close walks it because the cache has no value iteration.
var kernelNames = []string{colorMatrixKernel}

func (a *WGPUAccelerator) destroyKernelsLocked() {
	if a.kernels == nil {
		return
	}
	if a.device != nil {
		for _, name := range kernelNames {
			if k, ok := a.kernels.Get(name); ok {
				k.destroy(a.device)
			}
		}
	}
	a.kernels.Clear()
}
