// Package overlap computes inter-character spacing reduction and the
// post-render ink-bleed effect used to simulate tight kerning and physical
// print artifacts in synthetic OCR samples.
//
// All randomized functions take an explicit *rand.Rand so that a seeded
// generator reproduces the same sample byte for byte.
package overlap

import "math/rand/v2"

// maxReduction caps the spacing reduction at 80% of the glyph dimension so
// that full intensity still leaves glyphs distinguishable instead of
// collapsing them onto one another.
const maxReduction = 0.80

// jitterFraction scales the uniform spacing noise added when jitter is on.
const jitterFraction = 0.10

// HorizontalSpacing returns the horizontal advance to use after a glyph of
// the given width, in the same unit as charWidth.
//
// Intensity is clamped to [0, 1]; the spacing is reduced by up to 80% of
// the width at full intensity. With jitter enabled and a positive
// intensity, uniform noise in ±10% of intensity×charWidth is added. The
// result never drops below zero.
func HorizontalSpacing(charWidth, intensity float64, jitter bool, rng *rand.Rand) float64 {
	return spacing(charWidth, intensity, jitter, rng)
}

// VerticalSpacing is the same law applied to character height, used by
// top-to-bottom and bottom-to-top layouts.
func VerticalSpacing(charHeight, intensity float64, jitter bool, rng *rand.Rand) float64 {
	return spacing(charHeight, intensity, jitter, rng)
}

func spacing(dim, intensity float64, jitter bool, rng *rand.Rand) float64 {
	intensity = clamp01(intensity)
	// Subtraction form, not dim*(1-intensity*maxReduction): the factored
	// form rounds (1 - 0.8) to 0.19999..., and with jitter off the result
	// must be bit-exact for reproducible layouts.
	out := dim - dim*intensity*maxReduction
	if jitter && intensity > 0 {
		noise := (rng.Float64()*2 - 1) * jitterFraction * intensity * dim
		out += noise
	}
	if out < 0 {
		return 0
	}
	return out
}

// ShouldApply reports a Bernoulli outcome with probability equal to the
// clamped intensity: 0 never applies, 1 always does. Callers use it to gate
// whether [InkBleed] runs at all for a given sample.
func ShouldApply(intensity float64, rng *rand.Rand) bool {
	intensity = clamp01(intensity)
	if intensity <= 0 {
		return false
	}
	if intensity >= 1 {
		return true
	}
	return rng.Float64() < intensity
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
