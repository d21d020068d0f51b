// Package validate answers "can font F render text T given character set C"
// with memoization, consulting the reliability store to short-circuit
// unhealthy fonts before any font file is touched.
package validate

import (
	"slices"
	"strings"

	"github.com/gosynth/synthtext/fontkit"
	"github.com/gosynth/synthtext/internal/memo"
	"github.com/gosynth/synthtext/reliability"
)

// DefaultCacheSize is the memo table's default soft limit.
const DefaultCacheSize = 4096

// cacheKey identifies one validation question. The character set component
// is canonicalized (sorted, deduplicated) so that two sets with the same
// members hit the same entry regardless of the order the caller built them.
type cacheKey struct {
	font    string
	text    string
	charset string
}

// Cache memoizes render validation. It holds explicit references to the
// reliability store and the font loader instead of reaching for any global
// state; construct one long-lived instance and hand it to every caller.
//
// Cache is safe for concurrent use. Results are memoized on first
// evaluation and never invalidated: a font whose health crosses the
// eligibility threshold after a result was cached keeps serving the cached
// answer for the same (font, text, charset) triple.
type Cache struct {
	store  *reliability.Store
	loader fontkit.Loader
	memo   *memo.Cache[cacheKey, bool]
}

// CacheOption configures a Cache during creation.
type CacheOption func(*Cache)

// WithCacheSize sets the memo table's soft limit. Zero means unlimited.
func WithCacheSize(n int) CacheOption {
	return func(c *Cache) {
		c.memo = memo.New[cacheKey, bool](n)
	}
}

// NewCache creates a validation cache over the given store and loader.
func NewCache(store *reliability.Store, loader fontkit.Loader, opts ...CacheOption) *Cache {
	c := &Cache{
		store:  store,
		loader: loader,
		memo:   memo.New[cacheKey, bool](DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CanRender reports whether fontIdentity can render every character of
// text, given the allowed characterSet.
//
// The decision path, evaluated once per distinct (font, text, set) triple:
//  1. Empty text or empty set fails closed.
//  2. A font in cooldown or below the health threshold fails without a
//     probe.
//  3. The font is loaded; a load failure is recorded against the font as a
//     validation_error and fails. A character of text outside characterSet
//     fails without a failure report (the text, not the font, is at fault);
//     a character the font has no glyph for is recorded as a
//     validation_error and fails.
//  4. On success the characterSet is folded into the font's confirmed
//     coverage.
//
// Concurrent callers racing on the same triple observe first-writer-wins:
// exactly one evaluates, the rest share its result.
func (c *Cache) CanRender(fontIdentity, text, characterSet string) bool {
	if text == "" || characterSet == "" {
		return false
	}

	key := cacheKey{
		font:    fontIdentity,
		text:    text,
		charset: canonicalSet(characterSet),
	}
	return c.memo.GetOrCreate(key, func() bool {
		return c.probe(fontIdentity, text, key.charset)
	})
}

// probe performs the uncached validation.
func (c *Cache) probe(fontIdentity, text, charset string) bool {
	if !c.store.IsEligible(fontIdentity) {
		slogger().Debug("validation skipped, font not eligible",
			"font", fontIdentity)
		return false
	}

	f, err := c.loader.Load(fontIdentity)
	if err != nil {
		slogger().Warn("font failed to load during validation",
			"font", fontIdentity, "error", err)
		c.store.RecordFailure(fontIdentity, reliability.ReasonValidation)
		return false
	}

	for _, r := range text {
		if !strings.ContainsRune(charset, r) {
			return false
		}
		if !f.HasGlyph(r) {
			slogger().Debug("font missing glyph",
				"font", fontIdentity, "rune", string(r))
			c.store.RecordFailure(fontIdentity, reliability.ReasonValidation)
			return false
		}
	}

	c.store.ExtendCoverage(fontIdentity, charset)
	return true
}

// Len returns the number of memoized results.
func (c *Cache) Len() int { return c.memo.Len() }

// Clear drops all memoized results. Use after reloading reliability state
// so stale eligibility answers do not outlive the records that produced
// them.
func (c *Cache) Clear() { c.memo.Clear() }

// canonicalSet sorts and deduplicates the runes of a character set so that
// it behaves as an unordered set in cache keys.
func canonicalSet(s string) string {
	runes := []rune(s)
	slices.Sort(runes)
	runes = slices.Compact(runes)
	return string(runes)
}
