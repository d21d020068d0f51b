package overlap

import (
	"image"
	"image/color"
	"math/rand/v2"

	xdraw "golang.org/x/image/draw"

	"github.com/gosynth/synthtext/internal/filter"
)

// Ink-bleed tuning constants.
const (
	// bleedRadiusMin/Max bound the blur radius draw, scaled by intensity.
	bleedRadiusMin = 0.3
	bleedRadiusMax = 1.2

	// darkThreshold separates ink from paper: only pixels below this
	// brightness are darkened further.
	darkThreshold = 200

	// darkenStrength scales how much ink pixels darken at full intensity.
	darkenStrength = 0.35

	// dilateIntensity is the intensity above which the bleed also spreads
	// ink into neighboring pixels.
	dilateIntensity = 0.4
)

// InkBleed simulates ink spreading on physical media: the image is reduced
// to a single channel, blurred with a radius drawn uniformly from
// [0.3, 1.2]×intensity, ink pixels (brightness < 200) are darkened in
// proportion to intensity, and above intensity 0.4 a one-pixel dilation
// spreads the ink outward. The original channel layout is restored on the
// way out: grayscale stays grayscale, color inputs come back as NRGBA with
// the processed value on all three channels and alpha preserved. Ink is
// achromatic, so hue is deliberately not carried through the filter.
//
// Intensity <= 0 returns img unchanged.
func InkBleed(img image.Image, intensity float64, rng *rand.Rand) image.Image {
	if intensity <= 0 || img == nil {
		return img
	}
	intensity = clamp01(intensity)

	gray := toGray(img)

	radius := (bleedRadiusMin + rng.Float64()*(bleedRadiusMax-bleedRadiusMin)) * intensity
	gray = filter.Blur(gray, radius)

	darken := 1 - darkenStrength*intensity
	for i, v := range gray.Pix {
		if v < darkThreshold {
			gray.Pix[i] = uint8(float64(v)*darken + 0.5)
		}
	}

	if intensity > dilateIntensity {
		gray = filter.DilateDark(gray)
	}

	if _, ok := img.(*image.Gray); ok {
		return gray
	}
	return restoreColor(img, gray)
}

// toGray converts any image to *image.Gray using the standard luminance
// conversion.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		out := image.NewGray(g.Bounds())
		copy(out.Pix, g.Pix)
		return out
	}
	out := image.NewGray(img.Bounds())
	xdraw.Draw(out, out.Bounds(), img, img.Bounds().Min, xdraw.Src)
	return out
}

// restoreColor rebuilds a color image from the processed gray channel,
// keeping the source alpha.
func restoreColor(src image.Image, gray *image.Gray) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := gray.GrayAt(x, y).Y
			_, _, _, a := src.At(x, y).RGBA()
			out.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: uint8(a >> 8)})
		}
	}
	return out
}
