// Package filter implements single-channel convolution primitives used by
// the ink-bleed effect: separable Gaussian blur and a small morphological
// dilation, both operating on *image.Gray.
package filter

import (
	"math"
	"sync"
)

// GaussianKernel generates a normalized 1D Gaussian kernel for the given
// radius (used as sigma). The kernel size is 2*ceil(radius*3)+1, covering
// three standard deviations.
//
// For radius <= 0, returns a single-element identity kernel.
func GaussianKernel(radius float64) []float64 {
	if radius <= 0 {
		return []float64{1.0}
	}

	sigma := radius
	half := int(math.Ceil(sigma * 3))
	size := half*2 + 1

	kernel := make([]float64, size)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// kernelCache memoizes kernels by quantized radius. Bleed radii are drawn
// from a continuous range, so quantizing to 1/16 px keeps the cache small
// without visibly changing the result.
var kernelCache sync.Map // int64 -> []float64

// CachedGaussianKernel returns a (possibly shared) kernel for the radius.
// The returned slice must not be modified.
func CachedGaussianKernel(radius float64) []float64 {
	q := int64(math.Round(radius * 16))
	if k, ok := kernelCache.Load(q); ok {
		return k.([]float64)
	}
	k := GaussianKernel(float64(q) / 16)
	kernelCache.Store(q, k)
	return k
}
