package reliability

import (
	"log/slog"
	"sync"
	"time"
)

// Default store configuration. Overridable via [Option] values.
const (
	// DefaultMinHealth is the health score below which a font is no
	// longer eligible for selection.
	DefaultMinHealth = 30.0

	// DefaultIncrement is the health gained per recorded success.
	DefaultIncrement = 5.0

	// DefaultDecrement is the health lost per recorded failure.
	DefaultDecrement = 10.0

	// DefaultFailureThreshold is the consecutive-failure count that
	// triggers a cooldown.
	DefaultFailureThreshold = 3

	// DefaultBaseCooldown is the cooldown window applied when the
	// failure threshold is first reached. It doubles with every further
	// consecutive failure.
	DefaultBaseCooldown = 5 * time.Minute
)

// config holds the tunable store parameters.
type config struct {
	minHealth        float64
	increment        float64
	decrement        float64
	failureThreshold int
	baseCooldown     time.Duration
	path             string
	now              func() time.Time
}

func defaultConfig() config {
	return config{
		minHealth:        DefaultMinHealth,
		increment:        DefaultIncrement,
		decrement:        DefaultDecrement,
		failureThreshold: DefaultFailureThreshold,
		baseCooldown:     DefaultBaseCooldown,
		now:              time.Now,
	}
}

// Option configures a Store during creation.
type Option func(*config)

// WithMinHealth sets the eligibility threshold. Fonts scoring below it are
// excluded from selection until successes raise them back above.
func WithMinHealth(h float64) Option {
	return func(c *config) { c.minHealth = h }
}

// WithIncrement sets the health gained per success.
func WithIncrement(v float64) Option {
	return func(c *config) { c.increment = v }
}

// WithDecrement sets the health lost per failure.
func WithDecrement(v float64) Option {
	return func(c *config) { c.decrement = v }
}

// WithFailureThreshold sets the consecutive-failure count that triggers a
// cooldown. Values below 1 are treated as 1.
func WithFailureThreshold(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.failureThreshold = n
	}
}

// WithBaseCooldown sets the initial cooldown window. Each consecutive
// failure past the threshold doubles it.
func WithBaseCooldown(d time.Duration) Option {
	return func(c *config) { c.baseCooldown = d }
}

// WithPath sets the durable state file used by [Store.Save] and
// [Store.Load]. Without it, Save and Load return [ErrNoPath].
func WithPath(path string) Option {
	return func(c *config) { c.path = path }
}

// WithClock replaces the store's time source. Intended for tests that need
// to step through cooldown windows without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// Store is the registry of per-font reliability records.
//
// A Store is safe for concurrent use within one process: every operation
// takes the store lock, serializing selection reads against success/failure
// writes. Cross-process sharing goes through Save/Load on the configured
// file with last-writer-wins semantics; see the package documentation.
//
// Store must not be copied after creation (has mutex).
type Store struct {
	mu      sync.Mutex
	records map[string]*Record
	cfg     config
}

// NewStore creates an empty store with the given options applied over the
// defaults. Call [Store.Load] afterwards to restore persisted state.
func NewStore(opts ...Option) *Store {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{
		records: make(map[string]*Record),
		cfg:     cfg,
	}
}

// Register creates a default record for identity if none exists.
// Re-registering an existing identity is a no-op.
func (s *Store) Register(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.register(identity)
}

// register creates the record if absent. Caller must hold s.mu.
func (s *Store) register(identity string) *Record {
	r, ok := s.records[identity]
	if !ok {
		r = newRecord(identity)
		s.records[identity] = r
		slogger().Debug("font registered", "font", identity)
	}
	return r
}

// RecordSuccess reports a successful render of observedText with the font.
// Health rises by the configured increment (clamped to [MaxScore]), the
// failure streak and any cooldown are cleared, and the characters of
// observedText are added to the font's coverage.
func (s *Store) RecordSuccess(identity, observedText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.register(identity)
	r.successCount++
	r.health = clampScore(r.health + s.cfg.increment)
	r.consecutiveFailures = 0
	r.cooldownUntil = time.Time{}
	r.lastSuccess = s.cfg.now()
	for _, c := range observedText {
		r.coverage[c] = struct{}{}
	}
}

// RecordFailure reports a failed render attempt with the given reason code.
// Health drops by the configured decrement (clamped to [MinScore]). Once
// the consecutive-failure streak reaches the configured threshold, the font
// enters cooldown; the window doubles with every further failure:
//
//	cooldown_until = now + base << (streak - threshold)
func (s *Store) RecordFailure(identity, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.register(identity)
	r.failureCount++
	r.failureReasons[reason]++
	r.health = clampScore(r.health - s.cfg.decrement)
	r.consecutiveFailures++
	now := s.cfg.now()
	r.lastFailure = now

	if r.consecutiveFailures >= s.cfg.failureThreshold {
		excess := r.consecutiveFailures - s.cfg.failureThreshold
		window := scaleCooldown(s.cfg.baseCooldown, excess)
		r.cooldownUntil = now.Add(window)
		slogger().Warn("font entered cooldown",
			slog.String("font", identity),
			slog.String("reason", reason),
			slog.Int("consecutive_failures", r.consecutiveFailures),
			slog.Time("until", r.cooldownUntil),
		)
	}
}

// scaleCooldown returns base * 2^excess, saturating instead of overflowing
// for long failure streaks.
func scaleCooldown(base time.Duration, excess int) time.Duration {
	const maxShift = 16 // ~5m << 16 is already years
	if excess > maxShift {
		excess = maxShift
	}
	return base << uint(excess)
}

// ExtendCoverage adds the runes of chars to the font's confirmed coverage
// without touching its score or counters. Used by the validation cache when
// a probe confirms renderability outside a full render attempt.
func (s *Store) ExtendCoverage(identity, chars string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.register(identity)
	for _, c := range chars {
		r.coverage[c] = struct{}{}
	}
}

// IsEligible reports whether the font may be selected right now: not in
// cooldown and at or above the minimum health threshold. Unseen identities
// are registered on the spot and are eligible with the default full score.
func (s *Store) IsEligible(identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.register(identity)
	return s.eligible(r)
}

// eligible applies the cooldown and health checks. Caller must hold s.mu.
func (s *Store) eligible(r *Record) bool {
	if r.InCooldown(s.cfg.now()) {
		return false
	}
	return r.health >= s.cfg.minHealth
}

// InCooldown reports whether the font is currently in a cooldown window.
// Unseen identities are registered and are not in cooldown.
func (s *Store) InCooldown(identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.register(identity).InCooldown(s.cfg.now())
}

// Record returns a snapshot copy of the font's record, or nil if the
// identity has never been registered.
func (s *Store) Record(identity string) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[identity]
	if !ok {
		return nil
	}
	return r.clone()
}

// Len returns the number of registered fonts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// ResetIdentity removes a single font's record, discarding its history.
func (s *Store) ResetIdentity(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, identity)
}

// Reset discards every record. The persisted file, if any, is untouched
// until the next [Store.Save].
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*Record)
}

// Summary aggregates store-wide reliability statistics.
type Summary struct {
	Total      int     // registered fonts
	Healthy    int     // eligible right now
	Unhealthy  int     // below the health threshold
	InCooldown int     // inside a cooldown window
	MeanScore  float64 // mean health across all records; 0 when empty
}

// SummaryReport returns aggregate counts without mutating any record.
func (s *Store) SummaryReport() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum Summary
	sum.Total = len(s.records)
	if sum.Total == 0 {
		return sum
	}

	now := s.cfg.now()
	var total float64
	for _, r := range s.records {
		total += r.health
		switch {
		case r.InCooldown(now):
			sum.InCooldown++
		case r.health < s.cfg.minHealth:
			sum.Unhealthy++
		default:
			sum.Healthy++
		}
	}
	sum.MeanScore = total / float64(sum.Total)
	return sum
}
