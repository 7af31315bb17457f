package settings

import (
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func TestLoad_MissingRecordYieldsDefaults(t *testing.T) {
	s := newTestStore(t)

	got := s.Load("u1")
	if got != Defaults() {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestLoad_CorruptRecordYieldsDefaults(t *testing.T) {
	s := newTestStore(t)

	if err := s.d.Write(recordKey("u1"), []byte("{not json")); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	got := s.Load("u1")
	if got != Defaults() {
		t.Errorf("expected defaults for corrupt record, got %+v", got)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := Defaults()
	in.DashboardSearchLimit = 12
	in.DefaultEventStartTime = "07:30"
	in.ConfirmBeforeDelete = false

	saved, err := s.Save("u1", in)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved != in {
		t.Errorf("valid settings should save unchanged, got %+v", saved)
	}

	loaded := s.Load("u1")
	if loaded != saved {
		t.Errorf("load mismatch: saved %+v, loaded %+v", saved, loaded)
	}
}

func TestSave_ClampsOutOfRangeNumbers(t *testing.T) {
	s := newTestStore(t)

	in := Defaults()
	in.DashboardSearchLimit = 100
	in.DefaultEventDurationMinutes = 1
	in.SmartPlannerDurationMinutes = 10000

	saved, err := s.Save("u1", in)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if saved.DashboardSearchLimit != MaxSearchLimit {
		t.Errorf("expected search limit clamped to %d, got %d", MaxSearchLimit, saved.DashboardSearchLimit)
	}
	if saved.DefaultEventDurationMinutes != MinDurationMinutes {
		t.Errorf("expected duration clamped to %d, got %d", MinDurationMinutes, saved.DefaultEventDurationMinutes)
	}
	if saved.SmartPlannerDurationMinutes != MaxDurationMinutes {
		t.Errorf("expected planner duration clamped to %d, got %d", MaxDurationMinutes, saved.SmartPlannerDurationMinutes)
	}
}

func TestSave_MalformedStringsFallBackToDefaults(t *testing.T) {
	s := newTestStore(t)
	def := Defaults()

	in := def
	in.DefaultEventStartTime = "9am"
	in.SmartPlannerStartTime = "25:99"
	in.DefaultEventColor = "blue"

	saved, err := s.Save("u1", in)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if saved.DefaultEventStartTime != def.DefaultEventStartTime {
		t.Errorf("expected default start time, got %s", saved.DefaultEventStartTime)
	}
	if saved.SmartPlannerStartTime != def.SmartPlannerStartTime {
		t.Errorf("expected default planner time, got %s", saved.SmartPlannerStartTime)
	}
	if saved.DefaultEventColor != def.DefaultEventColor {
		t.Errorf("expected default colour, got %s", saved.DefaultEventColor)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []Settings{
		Defaults(),
		{DashboardSearchLimit: 100, DefaultEventStartTime: "bogus", DefaultEventDurationMinutes: -5,
			SmartPlannerStartTime: "13:15", SmartPlannerDurationMinutes: 90, DefaultEventColor: "#ABCDEF"},
		{},
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("normalize not idempotent: %+v vs %+v", once, twice)
		}
	}
}

func TestLoad_PartialRecordFillsFieldIndependently(t *testing.T) {
	s := newTestStore(t)
	def := Defaults()

	// Only two fields present; one valid, one junk. Everything else falls
	// back to its default.
	raw := []byte(`{"dashboardSearchLimit": 15.4, "defaultEventColor": 42}`)
	if err := s.d.Write(recordKey("u1"), raw); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	got := s.Load("u1")
	if got.DashboardSearchLimit != 15 {
		t.Errorf("expected rounded 15, got %d", got.DashboardSearchLimit)
	}
	if got.DefaultEventColor != def.DefaultEventColor {
		t.Errorf("expected default colour, got %s", got.DefaultEventColor)
	}
	if got.DefaultEventStartTime != def.DefaultEventStartTime {
		t.Errorf("expected default start time, got %s", got.DefaultEventStartTime)
	}
	if got.ConfirmBeforeDelete != def.ConfirmBeforeDelete {
		t.Errorf("expected default confirm flag, got %t", got.ConfirmBeforeDelete)
	}
}

func TestReset_RemovesRecord(t *testing.T) {
	s := newTestStore(t)

	in := Defaults()
	in.DashboardSearchLimit = 3
	if _, err := s.Save("u1", in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.Reset("u1")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if got != Defaults() {
		t.Errorf("reset should return defaults, got %+v", got)
	}

	if s.Load("u1") != Defaults() {
		t.Error("record should be gone after reset")
	}
}

func TestReset_MissingRecordIsFine(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Reset("never-saved"); err != nil {
		t.Fatalf("reset of missing record failed: %v", err)
	}
}

func TestStoresArePerUser(t *testing.T) {
	s := newTestStore(t)

	in := Defaults()
	in.DashboardSearchLimit = 19
	if _, err := s.Save("u1", in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if got := s.Load("u2"); got != Defaults() {
		t.Errorf("u2 should see defaults, got %+v", got)
	}
	if got := s.Load("u1"); got.DashboardSearchLimit != 19 {
		t.Errorf("u1 should see saved value, got %d", got.DashboardSearchLimit)
	}
}
