package fontkit

import (
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements Parser using golang.org/x/image/font/opentype.
type ximageParser struct{}

func (p *ximageParser) Name() string { return "ximage" }

// Parse implements Parser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &EngineError{Err: err}
	}
	return &ximageFont{font: f}, nil
}

// ximageFont implements ParsedFont over an sfnt font. sfnt operations need
// a scratch buffer that is not safe for concurrent use; the mutex guards it.
type ximageFont struct {
	mu   sync.Mutex
	font *opentype.Font
	buf  sfnt.Buffer
}

// Name implements ParsedFont.Name.
func (f *ximageFont) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name, err := f.font.Name(&f.buf, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// HasGlyph implements ParsedFont.HasGlyph.
func (f *ximageFont) HasGlyph(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.font.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageFont) GlyphAdvance(r rune, ppem float64) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	adv, err := f.font.GlyphAdvance(&f.buf, idx, floatToFixed(ppem), xfont.HintingNone)
	if err != nil {
		return 0, false
	}
	return fixedToFloat(adv), true
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageFont) Metrics(ppem float64) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.font.Metrics(&f.buf, floatToFixed(ppem), xfont.HintingNone)
	if err != nil {
		return Metrics{}
	}
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	return Metrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: fixedToFloat(m.Height) - ascent - descent,
	}
}

// floatToFixed converts a float64 size to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts 26.6 fixed point to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
