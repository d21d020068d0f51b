// Package synthtext generates labeled text layouts for OCR training data.
//
// # Overview
//
// synthtext is the core of a synthetic text-image pipeline: it picks a usable
// font for a string, computes deterministic per-character placement, spacing
// and color, and feeds render outcomes back into an adaptive font-reliability
// tracker. Rasterization itself is delegated to an external rendering engine;
// this module produces the layout (character boxes), the color plan, and the
// post-render ink-bleed filter.
//
// # Quick Start
//
//	import "github.com/gosynth/synthtext"
//
//	store := reliability.NewStore(reliability.WithPath("fonts.json"))
//	store.Load()
//	defer store.Save()
//
//	eng := synthtext.NewEngine(store,
//	    synthtext.WithSeed(42),
//	    synthtext.WithOverlapIntensity(0.3),
//	)
//	line, err := eng.LayoutLine("hello world", fonts, charset)
//
// # Architecture
//
// The module is organized into:
//   - Root: Engine (layout orchestration), CharacterBox, options
//   - reliability: per-font health scoring, cooldown, weighted selection,
//     durable JSON state
//   - validate: memoized "can font F render text T" predicate
//   - overlap: spacing reduction laws and the ink-bleed image filter
//   - palette: named palettes, per-character color modes, background contrast
//   - fontkit: pluggable font parsing backends (go-text and x/image)
//
// # Determinism
//
// Every function that draws randomness takes an explicit *rand.Rand. Given
// the same seed and inputs, layout output is byte-identical across process
// boundaries. There is no implicit global random state.
//
// # Coordinate System
//
// Character boxes use standard raster coordinates: origin at top-left,
// X increases right, Y increases down.
package synthtext

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"
)
