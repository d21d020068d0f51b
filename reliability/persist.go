package reliability

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// ErrNoPath is returned by Save and Load when the store was created
// without [WithPath].
var ErrNoPath = errors.New("reliability: no state path configured")

// SchemaVersion is the current persisted-state schema version.
const SchemaVersion = 1

// fileState is the on-disk layout of the durable reliability state.
type fileState struct {
	Metadata metadata               `json:"metadata"`
	Fonts    map[string]recordState `json:"fonts"`
}

type metadata struct {
	SchemaVersion int       `json:"schema_version"`
	SavedAt       time.Time `json:"saved_at"`
	RecordCount   int       `json:"record_count"`
}

// recordState is the serialized form of a [Record]. Coverage is stored as
// a sorted list of single-character strings so that saving equal state
// twice produces byte-identical files.
type recordState struct {
	HealthScore         float64        `json:"health_score"`
	SuccessCount        int            `json:"success_count"`
	FailureCount        int            `json:"failure_count"`
	ConsecutiveFailures int            `json:"consecutive_failures"`
	LastSuccessTime     *time.Time     `json:"last_success_time,omitempty"`
	LastFailureTime     *time.Time     `json:"last_failure_time,omitempty"`
	FailureReasons      map[string]int `json:"failure_reasons,omitempty"`
	CharacterCoverage   []string       `json:"character_coverage"`
	CooldownUntil       *time.Time     `json:"cooldown_until,omitempty"`
}

// marshalRecord converts a record to its serialized form.
func marshalRecord(r *Record) recordState {
	st := recordState{
		HealthScore:         r.health,
		SuccessCount:        r.successCount,
		FailureCount:        r.failureCount,
		ConsecutiveFailures: r.consecutiveFailures,
		CharacterCoverage:   coverageList(r.coverage),
	}
	if !r.lastSuccess.IsZero() {
		t := r.lastSuccess
		st.LastSuccessTime = &t
	}
	if !r.lastFailure.IsZero() {
		t := r.lastFailure
		st.LastFailureTime = &t
	}
	if len(r.failureReasons) > 0 {
		st.FailureReasons = make(map[string]int, len(r.failureReasons))
		for k, v := range r.failureReasons {
			st.FailureReasons[k] = v
		}
	}
	if !r.cooldownUntil.IsZero() {
		t := r.cooldownUntil
		st.CooldownUntil = &t
	}
	return st
}

// unmarshalRecord restores a record from its serialized form, clamping the
// score in case the file was edited by hand.
func unmarshalRecord(identity string, st recordState) *Record {
	r := newRecord(identity)
	r.health = clampScore(st.HealthScore)
	r.successCount = max(st.SuccessCount, 0)
	r.failureCount = max(st.FailureCount, 0)
	r.consecutiveFailures = max(st.ConsecutiveFailures, 0)
	if st.LastSuccessTime != nil {
		r.lastSuccess = *st.LastSuccessTime
	}
	if st.LastFailureTime != nil {
		r.lastFailure = *st.LastFailureTime
	}
	for k, v := range st.FailureReasons {
		r.failureReasons[k] = v
	}
	for _, s := range st.CharacterCoverage {
		for _, c := range s {
			r.coverage[c] = struct{}{}
		}
	}
	if st.CooldownUntil != nil {
		r.cooldownUntil = *st.CooldownUntil
	}
	return r
}

// coverageList flattens a coverage set into a sorted list of
// single-character strings.
func coverageList(cov map[rune]struct{}) []string {
	runes := make([]rune, 0, len(cov))
	for c := range cov {
		runes = append(runes, c)
	}
	slices.Sort(runes)
	out := make([]string, len(runes))
	for i, c := range runes {
		out[i] = string(c)
	}
	return out
}

// Save writes the full record set plus metadata to the configured path.
// The write goes through a temp file in the same directory followed by a
// rename, so a concurrent reader never observes a half-written file.
// Concurrent savers race with last-writer-wins semantics.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.path == "" {
		return ErrNoPath
	}

	st := fileState{
		Metadata: metadata{
			SchemaVersion: SchemaVersion,
			SavedAt:       s.cfg.now(),
			RecordCount:   len(s.records),
		},
		Fonts: make(map[string]recordState, len(s.records)),
	}
	for id, r := range s.records {
		st.Fonts[id] = marshalRecord(r)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("reliability: encode state: %w", err)
	}

	dir := filepath.Dir(s.cfg.path)
	tmp, err := os.CreateTemp(dir, ".reliability-*.json")
	if err != nil {
		return fmt.Errorf("reliability: save state: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("reliability: save state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("reliability: save state: %w", err)
	}
	if err := os.Rename(tmpName, s.cfg.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("reliability: save state: %w", err)
	}

	slogger().Info("reliability state saved",
		"path", s.cfg.path, "records", len(s.records))
	return nil
}

// Load replaces the store's records with the contents of the configured
// path. A missing file or one that fails to decode is not an error: the
// store starts empty so a corrupt state file cannot take down a run.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.path == "" {
		return ErrNoPath
	}

	data, err := os.ReadFile(s.cfg.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slogger().Info("no reliability state file, starting fresh",
				"path", s.cfg.path)
			s.records = make(map[string]*Record)
			return nil
		}
		return fmt.Errorf("reliability: load state: %w", err)
	}

	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		slogger().Warn("corrupt reliability state discarded",
			"path", s.cfg.path, "error", err)
		s.records = make(map[string]*Record)
		return nil
	}

	records := make(map[string]*Record, len(st.Fonts))
	for id, rs := range st.Fonts {
		records[id] = unmarshalRecord(id, rs)
	}
	s.records = records

	slogger().Info("reliability state loaded",
		"path", s.cfg.path,
		"records", len(records),
		"schema_version", st.Metadata.SchemaVersion,
	)
	return nil
}
