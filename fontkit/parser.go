// Package fontkit loads and inspects font files for layout and validation.
// It wraps two interchangeable parsing backends — go-text/typesetting and
// golang.org/x/image/font/opentype — behind one small interface covering
// exactly what layout needs: glyph presence, advances, and line metrics.
package fontkit

import "errors"

// Sentinel errors for fontkit.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fontkit: empty font data")

	// ErrUnknownBackend is returned for an unrecognized parser name.
	ErrUnknownBackend = errors.New("fontkit: unknown parser backend")
)

// EngineError wraps an error raised by the underlying font engine (parse
// failures, broken tables). Reliability tracking uses the type to separate
// engine-originated failures from everything else.
type EngineError struct {
	Identity string // font identity being processed, may be empty
	Err      error
}

func (e *EngineError) Error() string {
	if e.Identity == "" {
		return "fontkit: font engine: " + e.Err.Error()
	}
	return "fontkit: font engine (" + e.Identity + "): " + e.Err.Error()
}

func (e *EngineError) Unwrap() error { return e.Err }

// Parser is a font parsing backend.
type Parser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)

	// Name identifies the backend ("gotext", "ximage").
	Name() string
}

// ParsedFont is a parsed font file, reduced to the operations layout and
// validation consume.
//
// Implementations are safe for concurrent use.
type ParsedFont interface {
	// Name returns the font family name, or "" if unavailable.
	Name() string

	// UnitsPerEm returns the design units per em.
	UnitsPerEm() int

	// HasGlyph reports whether the font maps r to a real glyph
	// (not .notdef).
	HasGlyph(r rune) bool

	// GlyphAdvance returns the horizontal advance of r at the given
	// pixels-per-em, and whether the glyph exists.
	GlyphAdvance(r rune, ppem float64) (float64, bool)

	// Metrics returns line metrics scaled to the given pixels-per-em.
	Metrics(ppem float64) Metrics
}

// Metrics holds font-level line metrics at a specific size, in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font
	// (positive, upward).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the
	// font (positive, downward).
	Descent float64

	// LineGap is the recommended extra gap between lines.
	LineGap float64
}

// LineHeight returns the total advance between baselines.
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent + m.LineGap }

// NewParser returns the parser backend with the given name. The empty name
// selects the default go-text backend.
func NewParser(name string) (Parser, error) {
	switch name {
	case "", "gotext":
		return &goTextParser{}, nil
	case "ximage":
		return &ximageParser{}, nil
	default:
		return nil, ErrUnknownBackend
	}
}
