//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/compositor"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// colorMatrixKernel names the 4x5 color transform compute kernel.
const colorMatrixKernel = "colormatrix"

// colorMatrixParams is the uniform block of the kernel.
// Must match the Params struct in shaders/colormatrix.wgsl (16 bytes).
type colorMatrixParams struct {
	Width  uint32
	Height uint32
	Pad0   uint32
	Pad1   uint32
}

// kernelPipeline bundles the device objects of one compute kernel.
type kernelPipeline struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
}

// newKernelPipeline compiles the WGSL source through naga and builds the
// bind group layout, pipeline layout and compute pipeline for it.
func newKernelPipeline(device hal.Device, name, wgsl string) (*kernelPipeline, error) {
	spirv, err := compileWGSL(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", name, err)
	}

	k := &kernelPipeline{}

	k.shader, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  name,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", name, err)
	}

	k.bindLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: name + "_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 3, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		k.destroy(device)
		return nil, fmt.Errorf("create %s bind group layout: %w", name, err)
	}

	k.pipeLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: name + "_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{k.bindLayout},
	})
	if err != nil {
		k.destroy(device)
		return nil, fmt.Errorf("create %s pipeline layout: %w", name, err)
	}

	k.pipeline, err = device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: name + "_pipeline", Layout: k.pipeLayout,
		Compute: hal.ComputeState{Module: k.shader, EntryPoint: "main"},
	})
	if err != nil {
		k.destroy(device)
		return nil, fmt.Errorf("create %s compute pipeline: %w", name, err)
	}

	return k, nil
}

func (k *kernelPipeline) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if k.pipeline != nil {
		device.DestroyComputePipeline(k.pipeline)
		k.pipeline = nil
	}
	if k.pipeLayout != nil {
		device.DestroyPipelineLayout(k.pipeLayout)
		k.pipeLayout = nil
	}
	if k.bindLayout != nil {
		device.DestroyBindGroupLayout(k.bindLayout)
		k.bindLayout = nil
	}
	if k.shader != nil {
		device.DestroyShaderModule(k.shader)
		k.shader = nil
	}
}

// compileWGSL compiles WGSL source to SPIR-V words through naga.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// dispatchColorMatrix runs the color matrix kernel over the intersection
// of area with both buffers. The compiled pipeline is held in a.kernels.
//
// The payload is packed exactly as the kernel's bind groups expect it:
// a row-major vec4 slab plus the Params uniform. Dispatching the pass
// through HAL needs rgba32float storage readback, which the HAL buffer
// API does not expose yet, so for now the packed payload is evaluated
// on the CPU with the same algorithm as the shader.
func (a *WGPUAccelerator) dispatchColorMatrix(coeffs [20]float32, dst, src *compositor.Buffer, area compositor.Region) error {
	work := area.Intersect(dst.Region()).Intersect(src.Region())
	if work.IsEmpty() {
		return nil
	}

	params := colorMatrixParams{
		Width:  uint32(work.Width()),
		Height: uint32(work.Height()),
	}
	pixels := extractAreaPixels(src, work)

	applyColorMatrixCPU(params, &coeffs, pixels)

	writeAreaPixels(dst, work, pixels)

	groupsX := (params.Width + 7) / 8
	groupsY := (params.Height + 7) / 8
	slogger().Debug("wgpu: color matrix pass",
		"area", work.String(), "groups_x", groupsX, "groups_y", groupsY)
	return nil
}

// applyColorMatrixCPU transforms the packed pixel slab in place with the
// algorithm of the colormatrix kernel. The coefficients apply to
// straight-alpha values; result alpha is clamped to [0, 1] while color
// channels stay open for HDR.
// Must stay in sync with main in shaders/colormatrix.wgsl.
func applyColorMatrixCPU(params colorMatrixParams, m *[20]float32, pixels []float32) {
	for y := uint32(0); y < params.Height; y++ {
		for x := uint32(0); x < params.Width; x++ {
			i := int(y*params.Width+x) * 4

			pr := pixels[i+0]
			pg := pixels[i+1]
			pb := pixels[i+2]
			a := pixels[i+3]

			var r, g, b float32
			if a > 0 {
				inv := 1 / a
				r = pr * inv
				g = pg * inv
				b = pb * inv
			}

			newR := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
			newG := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
			newB := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
			newA := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]

			if newA < 0 {
				newA = 0
			} else if newA > 1 {
				newA = 1
			}

			pixels[i+0] = newR * newA
			pixels[i+1] = newG * newA
			pixels[i+2] = newB * newA
			pixels[i+3] = newA
		}
	}
}

// extractAreaPixels copies area of b into a tight row-major slab of
// 4 floats per pixel.
func extractAreaPixels(b *compositor.Buffer, area compositor.Region) []float32 {
	r := b.Region()
	data := b.Data()
	rowLen := area.Width() * 4
	out := make([]float32, area.Height()*rowLen)
	di := 0
	for y := area.MinY; y < area.MaxY; y++ {
		si := ((y-r.MinY)*r.Width() + (area.MinX - r.MinX)) * 4
		copy(out[di:di+rowLen], data[si:si+rowLen])
		di += rowLen
	}
	return out
}

// writeAreaPixels copies a tight row-major slab back into area of b.
func writeAreaPixels(b *compositor.Buffer, area compositor.Region, pixels []float32) {
	r := b.Region()
	data := b.Data()
	rowLen := area.Width() * 4
	si := 0
	for y := area.MinY; y < area.MaxY; y++ {
		di := ((y-r.MinY)*r.Width() + (area.MinX - r.MinX)) * 4
		copy(data[di:di+rowLen], pixels[si:si+rowLen])
		si += rowLen
	}
}
