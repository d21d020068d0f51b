package reliability

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	src, clk := newTestStore(WithPath(path), WithBaseCooldown(time.Minute))
	src.RecordSuccess("a.ttf", "héllo")
	src.RecordFailure("a.ttf", ReasonRender)
	src.RecordFailure("a.ttf", ReasonValidation)
	clk.advance(time.Second)
	src.RecordFailure("a.ttf", ReasonValidation) // triggers cooldown
	src.Register("b.ttf")

	if err := src.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	dst := NewStore(WithPath(path), WithClock(clk.now))
	if err := dst.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if dst.Len() != 2 {
		t.Fatalf("Len() = %d after load, want 2", dst.Len())
	}

	want := src.Record("a.ttf")
	got := dst.Record("a.ttf")

	if got.HealthScore() != want.HealthScore() {
		t.Errorf("HealthScore = %v, want %v", got.HealthScore(), want.HealthScore())
	}
	if got.SuccessCount() != want.SuccessCount() {
		t.Errorf("SuccessCount = %d, want %d", got.SuccessCount(), want.SuccessCount())
	}
	if got.FailureCount() != want.FailureCount() {
		t.Errorf("FailureCount = %d, want %d", got.FailureCount(), want.FailureCount())
	}
	if got.ConsecutiveFailures() != want.ConsecutiveFailures() {
		t.Errorf("ConsecutiveFailures = %d, want %d",
			got.ConsecutiveFailures(), want.ConsecutiveFailures())
	}
	if !maps.Equal(got.FailureReasons(), want.FailureReasons()) {
		t.Errorf("FailureReasons = %v, want %v", got.FailureReasons(), want.FailureReasons())
	}
	// Coverage compared as sets.
	if !maps.Equal(got.Coverage(), want.Coverage()) {
		t.Errorf("Coverage = %v, want %v", got.Coverage(), want.Coverage())
	}
	gs, gok := got.LastSuccessTime()
	ws, wok := want.LastSuccessTime()
	if gok != wok || !gs.Equal(ws) {
		t.Errorf("LastSuccessTime = (%v,%v), want (%v,%v)", gs, gok, ws, wok)
	}
	gf, gok := got.LastFailureTime()
	wf, wok := want.LastFailureTime()
	if gok != wok || !gf.Equal(wf) {
		t.Errorf("LastFailureTime = (%v,%v), want (%v,%v)", gf, gok, wf, wok)
	}
	gc, gok := got.CooldownUntil()
	wc, wok := want.CooldownUntil()
	if gok != wok || !gc.Equal(wc) {
		t.Errorf("CooldownUntil = (%v,%v), want (%v,%v)", gc, gok, wc, wok)
	}

	// The never-touched record survives too.
	if r := dst.Record("b.ttf"); r == nil || r.HealthScore() != MaxScore {
		t.Errorf("b.ttf record = %+v, want default score", r)
	}
}

func TestRecordState_RoundTripAnyRecord(t *testing.T) {
	clk := newFakeClock()
	r := newRecord("f.ttf")
	r.health = 42.5
	r.successCount = 7
	r.failureCount = 3
	r.consecutiveFailures = 2
	r.lastSuccess = clk.now()
	r.failureReasons["render_error"] = 3
	r.coverage['a'] = struct{}{}
	r.coverage['字'] = struct{}{}

	data, err := json.Marshal(marshalRecord(r))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var st recordState
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := unmarshalRecord("f.ttf", st)

	if got.health != r.health ||
		got.successCount != r.successCount ||
		got.failureCount != r.failureCount ||
		got.consecutiveFailures != r.consecutiveFailures ||
		!got.lastSuccess.Equal(r.lastSuccess) ||
		!got.lastFailure.Equal(r.lastFailure) ||
		!got.cooldownUntil.Equal(r.cooldownUntil) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, r)
	}
	if !maps.Equal(got.failureReasons, r.failureReasons) {
		t.Errorf("failureReasons = %v, want %v", got.failureReasons, r.failureReasons)
	}
	if !maps.Equal(got.coverage, r.coverage) {
		t.Errorf("coverage = %v, want %v", got.coverage, r.coverage)
	}
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")
	s := NewStore(WithPath(path))
	s.Register("stale")

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after loading missing file, want 0", s.Len())
	}
}

func TestLoad_CorruptFileStartsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{{{{"},
		{name: "wrong shape", content: `{"fonts": 17}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			s := NewStore(WithPath(path))
			if err := s.Load(); err != nil {
				t.Fatalf("Load() error = %v, want nil for corrupt file", err)
			}
			if s.Len() != 0 {
				t.Errorf("Len() = %d, want 0", s.Len())
			}
		})
	}
}

func TestLoad_EmptyStructureAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(WithPath(path))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSave_NoPath(t *testing.T) {
	s := NewStore()
	if err := s.Save(); err != ErrNoPath {
		t.Errorf("Save() error = %v, want ErrNoPath", err)
	}
	if err := s.Load(); err != ErrNoPath {
		t.Errorf("Load() error = %v, want ErrNoPath", err)
	}
}

func TestSave_WritesMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, clk := newTestStore(WithPath(path))
	s.Register("a")
	s.Register("b")

	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	if st.Metadata.SchemaVersion != SchemaVersion {
		t.Errorf("schema_version = %d, want %d", st.Metadata.SchemaVersion, SchemaVersion)
	}
	if st.Metadata.RecordCount != 2 {
		t.Errorf("record_count = %d, want 2", st.Metadata.RecordCount)
	}
	if !st.Metadata.SavedAt.Equal(clk.now()) {
		t.Errorf("saved_at = %v, want %v", st.Metadata.SavedAt, clk.now())
	}
}

func TestSave_Deterministic(t *testing.T) {
	// Equal state saved twice must produce byte-identical files; coverage
	// sets serialize in sorted order.
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.json")
	p2 := filepath.Join(dir, "b.json")

	build := func(path string) *Store {
		s, _ := newTestStore(WithPath(path))
		s.RecordSuccess("f", "zyxabc")
		return s
	}
	if err := build(p1).Save(); err != nil {
		t.Fatal(err)
	}
	if err := build(p2).Save(); err != nil {
		t.Fatal(err)
	}

	b1, _ := os.ReadFile(p1)
	b2, _ := os.ReadFile(p2)
	if string(b1) != string(b2) {
		t.Error("equal stores saved different bytes")
	}
}
