// Package reliability tracks how trustworthy each font is for synthetic
// text rendering. Fonts earn health on successful renders and lose it on
// failures; fonts that fail repeatedly are placed in an escalating cooldown
// and excluded from selection until it expires. The full record set can be
// persisted to a JSON file and restored on the next run.
package reliability

import "time"

// Failure reason codes recorded against a font. Callers may pass arbitrary
// reason strings to [Store.RecordFailure]; these are the codes this module
// itself produces.
const (
	// ReasonValidation marks a font that failed to load or could not
	// render the characters a sample requires.
	ReasonValidation = "validation_error"

	// ReasonRender marks a failure originating in the external rendering
	// engine during an actual render attempt.
	ReasonRender = "render_error"

	// ReasonUnknown marks a failure that could not be classified.
	ReasonUnknown = "unknown_error"
)

// Health score bounds. Scores are clamped into [MinScore, MaxScore]
// after every update.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Record holds the mutable reliability state of a single font.
//
// Records are owned exclusively by a [Store]; all mutation goes through
// store methods under the store's lock. The accessor methods on Record are
// only safe to call on the snapshot copies the store hands out, or from
// tests that own the record outright.
type Record struct {
	identity            string
	health              float64
	successCount        int
	failureCount        int
	consecutiveFailures int
	lastSuccess         time.Time // zero = never
	lastFailure         time.Time // zero = never
	failureReasons      map[string]int
	coverage            map[rune]struct{}
	cooldownUntil       time.Time // zero = not in cooldown
}

// newRecord creates a record with full health and no history.
func newRecord(identity string) *Record {
	return &Record{
		identity:       identity,
		health:         MaxScore,
		failureReasons: make(map[string]int),
		coverage:       make(map[rune]struct{}),
	}
}

// Identity returns the font identity this record tracks.
func (r *Record) Identity() string { return r.identity }

// HealthScore returns the current health in [MinScore, MaxScore].
func (r *Record) HealthScore() float64 { return r.health }

// SuccessCount returns the number of recorded successes.
func (r *Record) SuccessCount() int { return r.successCount }

// FailureCount returns the number of recorded failures.
func (r *Record) FailureCount() int { return r.failureCount }

// ConsecutiveFailures returns the length of the current failure streak.
// It resets to zero on any success.
func (r *Record) ConsecutiveFailures() int { return r.consecutiveFailures }

// LastSuccessTime returns the time of the most recent success and whether
// one has ever been recorded.
func (r *Record) LastSuccessTime() (time.Time, bool) {
	return r.lastSuccess, !r.lastSuccess.IsZero()
}

// LastFailureTime returns the time of the most recent failure and whether
// one has ever been recorded.
func (r *Record) LastFailureTime() (time.Time, bool) {
	return r.lastFailure, !r.lastFailure.IsZero()
}

// FailureReasons returns a copy of the reason-code occurrence counts.
func (r *Record) FailureReasons() map[string]int {
	out := make(map[string]int, len(r.failureReasons))
	for k, v := range r.failureReasons {
		out[k] = v
	}
	return out
}

// Coverage returns a copy of the set of characters empirically confirmed
// renderable by this font. Coverage only ever grows.
func (r *Record) Coverage() map[rune]struct{} {
	out := make(map[rune]struct{}, len(r.coverage))
	for c := range r.coverage {
		out[c] = struct{}{}
	}
	return out
}

// Covers reports whether the record's coverage contains every rune of chars.
// A record with empty coverage covers nothing; see [Store.FilterAvailable]
// for the optimistic unknown-coverage rule.
func (r *Record) Covers(chars string) bool {
	for _, c := range chars {
		if _, ok := r.coverage[c]; !ok {
			return false
		}
	}
	return true
}

// InCooldown reports whether the record is excluded from selection at the
// given instant.
func (r *Record) InCooldown(now time.Time) bool {
	return !r.cooldownUntil.IsZero() && now.Before(r.cooldownUntil)
}

// CooldownUntil returns the cooldown deadline and whether one is set.
func (r *Record) CooldownUntil() (time.Time, bool) {
	return r.cooldownUntil, !r.cooldownUntil.IsZero()
}

// clone returns a deep copy. Used by the store to hand out snapshots
// without exposing its privately owned record.
func (r *Record) clone() *Record {
	c := &Record{
		identity:            r.identity,
		health:              r.health,
		successCount:        r.successCount,
		failureCount:        r.failureCount,
		consecutiveFailures: r.consecutiveFailures,
		lastSuccess:         r.lastSuccess,
		lastFailure:         r.lastFailure,
		failureReasons:      make(map[string]int, len(r.failureReasons)),
		coverage:            make(map[rune]struct{}, len(r.coverage)),
		cooldownUntil:       r.cooldownUntil,
	}
	for k, v := range r.failureReasons {
		c.failureReasons[k] = v
	}
	for ch := range r.coverage {
		c.coverage[ch] = struct{}{}
	}
	return c
}

// clampScore bounds a health score into [MinScore, MaxScore].
func clampScore(s float64) float64 {
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}
