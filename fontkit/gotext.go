package fontkit

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/font"
)

// goTextParser implements Parser using go-text/typesetting.
// This is the default backend.
type goTextParser struct{}

func (p *goTextParser) Name() string { return "gotext" }

// Parse implements Parser.Parse.
func (p *goTextParser) Parse(data []byte) (ParsedFont, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &EngineError{Err: err}
	}
	return &goTextFont{face: face}, nil
}

// goTextFont implements ParsedFont over a go-text face.
//
// font.Face has internal mutable caches and is not safe for concurrent
// use, so every access goes through the mutex. A fresh face per call
// around the shared *font.Font would cost more than the lock for these
// short advance/presence lookups.
type goTextFont struct {
	mu   sync.Mutex
	face *font.Face
}

// Name implements ParsedFont.Name. go-text does not expose name-table
// lookup on a parsed face, so this backend reports "".
func (f *goTextFont) Name() string { return "" }

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *goTextFont) UnitsPerEm() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(f.face.Upem())
}

// HasGlyph implements ParsedFont.HasGlyph.
func (f *goTextFont) HasGlyph(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	gid, ok := f.face.NominalGlyph(r)
	return ok && gid != 0
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *goTextFont) GlyphAdvance(r rune, ppem float64) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0, false
	}
	upem := float64(f.face.Upem())
	if upem == 0 {
		return 0, false
	}
	adv := float64(f.face.HorizontalAdvance(gid))
	return adv / upem * ppem, true
}

// Metrics implements ParsedFont.Metrics.
func (f *goTextFont) Metrics(ppem float64) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()

	upem := float64(f.face.Upem())
	if upem == 0 {
		return Metrics{}
	}
	ext, ok := f.face.FontHExtents()
	if !ok {
		// Fall back to the em box when the font lacks hhea extents.
		return Metrics{Ascent: ppem * 0.8, Descent: ppem * 0.2}
	}
	scale := ppem / upem
	return Metrics{
		Ascent:  float64(ext.Ascender) * scale,
		Descent: -float64(ext.Descender) * scale,
		LineGap: float64(ext.LineGap) * scale,
	}
}
