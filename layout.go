package synthtext

import (
	"image"
	"math/rand/v2"
	"slices"

	"golang.org/x/text/unicode/bidi"

	"github.com/gosynth/synthtext/fontkit"
	"github.com/gosynth/synthtext/overlap"
	"github.com/gosynth/synthtext/palette"
	"github.com/gosynth/synthtext/reliability"
	"github.com/gosynth/synthtext/validate"
)

// CharacterBox is the placement of one character: its value and an
// axis-aligned bounding box in raster coordinates (origin top-left, Y
// down). Boxes are emitted in rendering sequence and are immutable after
// creation; callers consume them for label export.
type CharacterBox struct {
	Char                   rune
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the box width.
func (b CharacterBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box height.
func (b CharacterBox) Height() float64 { return b.MaxY - b.MinY }

// Line is the deterministic layout of one text sample.
type Line struct {
	// Text is the source string, in logical order.
	Text string

	// Font is the identity of the selected font.
	Font string

	// Boxes holds one entry per character, in rendering sequence. For
	// right-to-left text the rendering sequence is the reverse of the
	// logical order.
	Boxes []CharacterBox

	// Colors holds one color per entry of Boxes.
	Colors []palette.RGB

	// Background is the resolved background color.
	Background palette.RGB

	// Width and Height are the overall extent of the layout.
	Width, Height float64
}

// Engine composes font selection, render validation, spacing and color
// into reproducible line layouts, and feeds outcomes back into the
// reliability store.
//
// An Engine is not safe for concurrent use: its random source is stateful
// and call order defines the output. Run one Engine per worker; the
// reliability store behind them handles its own locking.
type Engine struct {
	store  *reliability.Store
	cache  *validate.Cache
	loader fontkit.Loader
	rng    *rand.Rand
	opts   engineOptions
}

// NewEngine creates an Engine over the given reliability store.
func NewEngine(store *reliability.Store, opts ...EngineOption) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.loader == nil {
		o.loader = fontkit.NewFileLoader()
	}
	return &Engine{
		store:  store,
		cache:  validate.NewCache(store, o.loader),
		loader: o.loader,
		rng:    newRand(o.seed),
		opts:   o,
	}
}

// Store returns the reliability store the engine reports to.
func (e *Engine) Store() *reliability.Store { return e.store }

// Validator returns the engine's render-validation cache.
func (e *Engine) Validator() *validate.Cache { return e.cache }

// LayoutLine selects a font from candidates, validates it against text and
// characterSet, and computes per-character boxes and colors.
//
// Selection is weighted by font health. A candidate that fails validation
// is excluded (its failure has already been recorded by the validation
// path) and selection retries among the remaining candidates, so a single
// bad font degrades the pool instead of aborting the sample.
//
// The returned layout is a pure function of the engine's seed, prior call
// sequence, and the arguments.
func (e *Engine) LayoutLine(text string, candidates []string, characterSet string) (*Line, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	remaining := slices.Clone(candidates)
	for len(remaining) > 0 {
		font, ok := e.store.SelectWeighted(e.rng, remaining, text)
		if !ok {
			break
		}
		if !e.cache.CanRender(font, text, characterSet) {
			remaining = deleteIdentity(remaining, font)
			continue
		}

		line, err := e.layoutWith(font, text)
		if err != nil {
			// Font engine failure during layout: record, exclude,
			// and keep the error moving if no candidate is left.
			e.store.RecordFailure(font, ClassifyReason(err))
			remaining = deleteIdentity(remaining, font)
			if len(remaining) == 0 {
				return nil, err
			}
			continue
		}

		e.store.RecordSuccess(font, text)
		return line, nil
	}
	return nil, ErrNoUsableFont
}

// layoutWith computes the boxes and colors for text in the given font.
func (e *Engine) layoutWith(font, text string) (*Line, error) {
	f, err := e.loader.Load(font)
	if err != nil {
		return nil, err
	}

	dir := e.resolveDirection(text)
	runes := renderOrder(text, dir)

	size := e.opts.fontSize
	metrics := f.Metrics(size)
	lineHeight := metrics.Ascent + metrics.Descent

	boxes := make([]CharacterBox, 0, len(runes))
	var extent float64
	var pen float64
	for _, r := range runes {
		adv, ok := f.GlyphAdvance(r, size)
		if !ok || adv <= 0 {
			// Validation confirmed the glyph exists; a zero advance
			// (combining marks) still gets a minimal box.
			adv = size * 0.1
		}

		var box CharacterBox
		var step float64
		switch dir {
		case DirectionTTB, DirectionBTT:
			box = CharacterBox{Char: r, MinX: 0, MinY: pen, MaxX: adv, MaxY: pen + lineHeight}
			step = overlap.VerticalSpacing(lineHeight, e.opts.overlapIntensity, e.opts.jitter, e.rng)
		default:
			box = CharacterBox{Char: r, MinX: pen, MinY: 0, MaxX: pen + adv, MaxY: lineHeight}
			step = overlap.HorizontalSpacing(adv, e.opts.overlapIntensity, e.opts.jitter, e.rng)
		}
		boxes = append(boxes, box)

		switch dir {
		case DirectionTTB, DirectionBTT:
			if box.MaxY > extent {
				extent = box.MaxY
			}
		default:
			if box.MaxX > extent {
				extent = box.MaxX
			}
		}
		pen += step
	}

	line := &Line{
		Text:  text,
		Font:  font,
		Boxes: boxes,
	}
	switch dir {
	case DirectionTTB, DirectionBTT:
		line.Height = extent
		for _, b := range boxes {
			if b.MaxX > line.Width {
				line.Width = b.MaxX
			}
		}
		if dir == DirectionBTT {
			flipVertical(line.Boxes, line.Height)
		}
	default:
		line.Width = extent
		line.Height = lineHeight
	}

	line.Colors = palette.LineColors(string(runes), e.opts.colorMode,
		e.opts.paletteName, e.opts.customColors, e.rng)
	textColor := palette.Black
	if len(line.Colors) > 0 {
		textColor = line.Colors[0]
	}
	line.Background = palette.BackgroundFor(textColor, e.opts.background)

	return line, nil
}

// ApplyBleed runs the ink-bleed filter over a rendered sample when the
// engine's bleed gate fires. The returned image is the input when the gate
// does not fire or the configured intensity is zero.
func (e *Engine) ApplyBleed(img image.Image) image.Image {
	if !overlap.ShouldApply(e.opts.bleedIntensity, e.rng) {
		return img
	}
	return overlap.InkBleed(img, e.opts.bleedIntensity, e.rng)
}

// ReportRenderFailure records a render-time failure from the external
// rendering engine against the font and returns err unchanged, preserving
// the contract that this module never swallows failures it did not
// originate. Callers re-raise the returned error.
func (e *Engine) ReportRenderFailure(font string, err error) error {
	if err == nil {
		return nil
	}
	e.store.RecordFailure(font, ClassifyReason(err))
	return err
}

// resolveDirection fixes DirectionAuto from the text's bidi base direction.
func (e *Engine) resolveDirection(text string) Direction {
	if e.opts.direction != DirectionAuto {
		return e.opts.direction
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return DirectionLTR
	}
	if _, err := p.Order(); err != nil {
		return DirectionLTR
	}
	if p.IsLeftToRight() {
		return DirectionLTR
	}
	return DirectionRTL
}

// renderOrder returns the runes of text in rendering sequence.
func renderOrder(text string, dir Direction) []rune {
	runes := []rune(text)
	if dir == DirectionRTL {
		slices.Reverse(runes)
	}
	return runes
}

// flipVertical mirrors boxes across the horizontal midline, converting a
// top-to-bottom layout into bottom-to-top.
func flipVertical(boxes []CharacterBox, height float64) {
	for i := range boxes {
		minY := height - boxes[i].MaxY
		maxY := height - boxes[i].MinY
		boxes[i].MinY, boxes[i].MaxY = minY, maxY
	}
}

// deleteIdentity removes the first occurrence of id, preserving order.
func deleteIdentity(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return slices.Delete(ids, i, i+1)
		}
	}
	return ids
}
