// Package palette computes per-character color sequences for synthetic
// text samples and derives contrasting backgrounds. Colors come from four
// built-in palettes or from caller-supplied custom colors; the draw modes
// mirror what scanned documents exhibit (uniform ink, per-glyph variation,
// gradients).
package palette

import "image/color"

// RGB is an 8-bit opaque color triple.
type RGB struct {
	R, G, B uint8
}

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Luminance returns the perceptual brightness of the color in [0, 1],
// using the Rec. 601 weights 0.299R + 0.587G + 0.114B.
func (c RGB) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// Common ink and paper colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Named palette identifiers accepted by [Colors] and [LineColors].
const (
	DarkRealistic  = "dark-realistic"
	LightRealistic = "light-realistic"
	Vibrant        = "vibrant"
	Pastel         = "pastel"
)

// palettes holds the built-in palettes. Each is a fixed ordered list; the
// gradient mode interpolates between the first two entries, so ordering is
// part of the contract.
var palettes = map[string][]RGB{
	DarkRealistic: {
		{20, 20, 20},    // near-black ink
		{40, 35, 30},    // aged ink
		{25, 25, 60},    // dark blue pen
		{60, 30, 25},    // dark red pen
		{30, 45, 30},    // dark green pen
		{45, 40, 55},    // faded violet
	},
	LightRealistic: {
		{90, 90, 90},    // photocopied gray
		{110, 100, 90},  // faded sepia
		{85, 95, 120},   // washed blue
		{120, 95, 85},   // washed red
		{100, 110, 95},  // washed olive
	},
	Vibrant: {
		{230, 30, 30},   // red
		{30, 120, 230},  // blue
		{30, 180, 60},   // green
		{240, 160, 20},  // orange
		{170, 40, 200},  // purple
		{20, 190, 190},  // teal
	},
	Pastel: {
		{240, 170, 180}, // rose
		{170, 210, 240}, // sky
		{190, 235, 190}, // mint
		{245, 225, 170}, // cream
		{215, 190, 235}, // lilac
	},
}

// Palette returns a copy of a named palette and whether the name is known.
// Unknown names report false with a nil slice.
func Palette(name string) ([]RGB, bool) {
	p, ok := palettes[name]
	if !ok {
		return nil, false
	}
	out := make([]RGB, len(p))
	copy(out, p)
	return out, true
}

// PaletteNames lists the built-in palette names in a fixed order.
func PaletteNames() []string {
	return []string{DarkRealistic, LightRealistic, Vibrant, Pastel}
}
