package filter

import "image"

// Blur applies a separable Gaussian blur to src and returns a new image.
// The two-pass algorithm (rows, then columns) runs in O(w*h*r) instead of
// O(w*h*r²) for a full 2D convolution. Edges are clamped.
//
// Radius <= 0 returns an unmodified copy.
func Blur(src *image.Gray, radius float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(b)
	if w == 0 || h == 0 {
		return out
	}
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}

	kernel := CachedGaussianKernel(radius)
	half := len(kernel) / 2
	tmp := make([]float64, w*h)

	// Pass 1: horizontal (src -> tmp).
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			var acc float64
			for k, kv := range kernel {
				sx := clampInt(x+k-half, 0, w-1)
				acc += float64(row[sx]) * kv
			}
			tmp[y*w+x] = acc
		}
	}

	// Pass 2: vertical (tmp -> out).
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var acc float64
			for k, kv := range kernel {
				sy := clampInt(y+k-half, 0, h-1)
				acc += tmp[sy*w+x] * kv
			}
			out.Pix[y*out.Stride+x] = clampByte(acc)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
