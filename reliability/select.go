package reliability

import "math/rand/v2"

// FilterAvailable returns the subsequence of candidates that are eligible
// and, when requiredChars is non-empty, whose confirmed coverage contains
// every required character. A font with no confirmed coverage at all is
// accepted optimistically: coverage is learned from renders, so an unknown
// font has simply not been probed yet. Input order is preserved.
//
// Unseen candidates are registered with the default full score.
func (s *Store) FilterAvailable(candidates []string, requiredChars string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, id := range candidates {
		r := s.register(id)
		if !s.eligible(r) {
			continue
		}
		if requiredChars != "" && len(r.coverage) > 0 && !r.Covers(requiredChars) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// SelectWeighted picks one candidate with probability proportional to its
// health score among the eligible, coverage-satisfying candidates, drawing
// from rng. Fonts scoring exactly zero contribute zero weight; if every
// qualifying font scores zero the choice is uniform among them. Returns
// ("", false) when no candidate qualifies.
//
// Passing the same rng state and candidate list always yields the same
// choice, which is what makes whole-run layout reproducible from a seed.
func (s *Store) SelectWeighted(rng *rand.Rand, candidates []string, requiredChars string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		pool    []string
		weights []float64
		total   float64
	)
	for _, id := range candidates {
		r := s.register(id)
		if !s.eligible(r) {
			continue
		}
		if requiredChars != "" && len(r.coverage) > 0 && !r.Covers(requiredChars) {
			continue
		}
		pool = append(pool, id)
		weights = append(weights, r.health)
		total += r.health
	}
	if len(pool) == 0 {
		return "", false
	}
	if total <= 0 {
		// All qualifying fonts sit at zero health: uniform fallback.
		return pool[rng.IntN(len(pool))], true
	}

	x := rng.Float64() * total
	for i, w := range weights {
		x -= w
		if x < 0 {
			return pool[i], true
		}
	}
	// Float round-off can leave x at an epsilon above zero after the
	// last subtraction; the last positive-weight entry wins.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return pool[i], true
		}
	}
	return pool[len(pool)-1], true
}
