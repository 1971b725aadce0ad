package filter

import (
	"math"

	"github.com/gogpu/compositor/cache"
)

// GaussianKernel generates a 1D Gaussian kernel for the given radius.
// The kernel is normalized so all values sum to 1.0.
//
// The kernel size is 2 * ceil(radius * 3) + 1, covering three standard
// deviations of the distribution (99.7% of the weight).
//
// For radius <= 0, returns a single-element identity kernel [1.0].
func GaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	// Using the radius as sigma.
	sigma := radius
	halfSize := int(math.Ceil(sigma * 3))
	size := halfSize*2 + 1

	kernel := make([]float32, size)

	// G(x) = exp(-x^2 / (2*sigma^2)); the constant factor cancels in
	// the normalization below.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)

	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	if sum > 0 {
		invSum := float32(1.0 / sum)
		for i := range kernel {
			kernel[i] *= invSum
		}
	}

	return kernel
}

// BoxKernel generates a 1D box (uniform) kernel for the given radius.
// All values are equal: 1/(2*radius+1).
//
// Box blur is faster than Gaussian but produces blocky results. Three
// passes of box blur approximate a Gaussian well.
func BoxKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	size := radius*2 + 1
	kernel := make([]float32, size)
	val := float32(1.0) / float32(size)

	for i := range kernel {
		kernel[i] = val
	}

	return kernel
}

// Kernels are cached by radius quantized to 0.01 precision. A graph
// re-renders with the same few radii, so recomputation is pure waste.
// Concurrent band renders hit the cache from many goroutines at once,
// hence the sharded variant.
var kernelCache = cache.NewSharded[int, []float32](64, cache.IntHasher)

// CachedGaussianKernel returns a cached Gaussian kernel for the radius.
// Callers must not modify the returned slice.
func CachedGaussianKernel(radius float64) []float32 {
	key := int(radius * 100)
	return kernelCache.GetOrCreate(key, func() []float32 {
		return GaussianKernel(radius)
	})
}

// OptimalKernelSize returns the kernel size GaussianKernel would produce
// for a given radius. Useful for pre-allocating buffers.
func OptimalKernelSize(radius float64) int {
	if radius <= 0 {
		return 1
	}
	halfSize := int(math.Ceil(radius * 3))
	return halfSize*2 + 1
}

// KernelCenter returns the center index of a kernel of the given size.
func KernelCenter(kernelSize int) int {
	return kernelSize / 2
}
