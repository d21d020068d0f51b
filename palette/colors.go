package palette

import "math/rand/v2"

// Mode selects how per-character colors are drawn.
type Mode string

const (
	// ModeUniform draws one color and repeats it for every character.
	ModeUniform Mode = "uniform"

	// ModePerGlyph draws an independent color per character.
	ModePerGlyph Mode = "per_glyph"

	// ModeGradient interpolates between the palette's first two entries
	// across character positions.
	ModeGradient Mode = "gradient"

	// ModeRandom resolves to ModeUniform or ModePerGlyph with equal
	// probability per call.
	ModeRandom Mode = "random"
)

// Auto is the sentinel background request resolved by [BackgroundFor] to a
// contrasting black or white.
const Auto = "auto"

// LineColors returns one color per character of text.
//
// The effective palette is customColors when non-empty, otherwise the named
// palette (falling back to [Vibrant] for unknown names). Unrecognized modes
// fall back to [ModeUniform]. The gradient mode degenerates to uniform when
// the effective palette has fewer than two entries.
//
// All draws come from rng, so a seeded generator makes color assignment
// reproducible.
func LineColors(text string, mode Mode, paletteName string, customColors []RGB, rng *rand.Rand) []RGB {
	n := len([]rune(text))
	if n == 0 {
		return nil
	}

	pal := effectivePalette(paletteName, customColors)

	switch mode {
	case ModePerGlyph:
		out := make([]RGB, n)
		for i := range out {
			out[i] = pal[rng.IntN(len(pal))]
		}
		return out

	case ModeGradient:
		if len(pal) < 2 {
			return uniform(n, pal[0])
		}
		return gradient(n, pal[0], pal[1])

	case ModeRandom:
		if rng.IntN(2) == 0 {
			return LineColors(text, ModeUniform, paletteName, customColors, rng)
		}
		return LineColors(text, ModePerGlyph, paletteName, customColors, rng)

	default: // ModeUniform and anything unrecognized
		return uniform(n, pal[rng.IntN(len(pal))])
	}
}

// effectivePalette resolves the palette to draw from. Always non-empty.
func effectivePalette(name string, custom []RGB) []RGB {
	if len(custom) > 0 {
		return custom
	}
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[Vibrant]
}

func uniform(n int, c RGB) []RGB {
	out := make([]RGB, n)
	for i := range out {
		out[i] = c
	}
	return out
}

// gradient linearly interpolates from a to b over positions 0..n-1.
func gradient(n int, a, b RGB) []RGB {
	out := make([]RGB, n)
	if n == 1 {
		out[0] = a
		return out
	}
	for i := range out {
		t := float64(i) / float64(n-1)
		out[i] = RGB{
			R: lerpByte(a.R, b.R, t),
			G: lerpByte(a.G, b.G, t),
			B: lerpByte(a.B, b.B, t),
		}
	}
	return out
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// BackgroundFor resolves the requested background against the text color.
//
// The sentinel [Auto] picks white for dark text (luminance < 0.5) and black
// otherwise, guaranteeing contrast. Any other request is parsed as a hex
// color; parse failures fall back to white.
func BackgroundFor(textColor RGB, requested string) RGB {
	if requested == Auto {
		if textColor.Luminance() < 0.5 {
			return White
		}
		return Black
	}
	c, ok := Parse(requested)
	if !ok {
		return White
	}
	return c
}

// Parse parses a hex color string with or without a leading '#', in "RGB"
// or "RRGGBB" form. It is deliberately forgiving: malformed input returns
// (White, false) rather than an error, because custom colors arrive from
// user configuration and a bad value should degrade, not abort a batch.
func Parse(s string) (RGB, bool) {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	switch len(s) {
	case 3: // RGB
		if !parseHex(s[0:1], &r) || !parseHex(s[1:2], &g) || !parseHex(s[2:3], &b) {
			return White, false
		}
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		if !parseHex(s[0:2], &r) || !parseHex(s[2:4], &g) || !parseHex(s[4:6], &b) {
			return White, false
		}
	default:
		return White, false
	}

	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, true
}

// parseHex accumulates a hex digit group into val, reporting malformed
// characters instead of silently truncating.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
