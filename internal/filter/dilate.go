package filter

import "image"

// DilateDark grows dark regions by one pixel: each output pixel takes the
// minimum value of its 3×3 neighborhood. On white-background text images
// this spreads ink outward, which is exactly the bleed look. Edges clamp.
func DilateDark(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(b)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lo := src.Pix[y*src.Stride+x]
			for dy := -1; dy <= 1; dy++ {
				sy := clampInt(y+dy, 0, h-1)
				for dx := -1; dx <= 1; dx++ {
					sx := clampInt(x+dx, 0, w-1)
					if v := src.Pix[sy*src.Stride+sx]; v < lo {
						lo = v
					}
				}
			}
			out.Pix[y*out.Stride+x] = lo
		}
	}
	return out
}
