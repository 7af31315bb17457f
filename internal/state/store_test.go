package state

import (
	"testing"

	"github.com/novaqhq/novaq/internal/model"
)

func sampleProjects() []model.Project {
	return []model.Project{
		{
			ID: "p1", Name: "Thesis", Description: "Final year writeup",
			Status: model.StatusInProgress, TimeSpentOnProject: 12.5,
			CalendarEvents: []model.CalendarEvent{
				{ID: "e1", Title: "Draft chapter", Date: "2024-06-03", StartAt: "2024-06-03T09:00:00Z"},
				{ID: "e2", Title: "Focus block", Date: "2024-06-10", StartAt: "2024-06-10T09:00:00Z"},
			},
		},
		{
			ID: "p2", Name: "Garden", Description: "Backyard overhaul",
			Status: model.StatusCompleted, TimeSpentOnProject: 3,
			CalendarEvents: []model.CalendarEvent{
				{ID: "e3", Title: "Order soil", Date: "2024-06-01", StartAt: "2024-06-01T10:00:00Z"},
			},
		},
		{ID: "p3", Name: "Band practice", Status: model.StatusNotStarted},
	}
}

func TestReplace_SnapshotIsolation(t *testing.T) {
	s := NewStore()
	input := sampleProjects()
	s.Replace(input)

	// Mutating the input after Replace must not leak into the store.
	input[0].Name = "mutated"
	got := s.Projects()
	if got[0].Name != "Thesis" {
		t.Errorf("store shares memory with its input: %q", got[0].Name)
	}

	// Nor should mutating a returned snapshot.
	got[1].Name = "also mutated"
	if again := s.Projects(); again[1].Name != "Garden" {
		t.Errorf("snapshot shares memory with the store: %q", again[1].Name)
	}
}

func TestSubscribe_NotifiedOnEveryReplace(t *testing.T) {
	s := NewStore()
	calls := 0
	cancel := s.Subscribe(func() { calls++ })

	s.Replace(sampleProjects())
	s.Replace(nil)
	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}

	cancel()
	s.Replace(sampleProjects())
	if calls != 2 {
		t.Errorf("cancelled subscriber must not fire, got %d calls", calls)
	}
}

func TestProject_Lookup(t *testing.T) {
	s := NewStore()
	s.Replace(sampleProjects())

	p, ok := s.Project("p2")
	if !ok || p.Name != "Garden" {
		t.Errorf("expected Garden, got %+v ok=%v", p, ok)
	}
	if _, ok := s.Project("missing"); ok {
		t.Error("lookup of an unknown id should fail")
	}
}

func TestSearch_MatchesNameDescriptionAndTitle(t *testing.T) {
	s := NewStore()
	s.Replace(sampleProjects())

	res := s.Search("GARDEN", 10)
	if len(res.Projects) != 1 || res.Projects[0].ID != "p2" {
		t.Errorf("case-insensitive name match failed: %+v", res.Projects)
	}

	res = s.Search("writeup", 10)
	if len(res.Projects) != 1 || res.Projects[0].ID != "p1" {
		t.Errorf("description match failed: %+v", res.Projects)
	}

	res = s.Search("focus", 10)
	if len(res.Events) != 1 || res.Events[0].ID != "e2" {
		t.Errorf("event title match failed: %+v", res.Events)
	}
	if res.Events[0].ProjectName != "Thesis" {
		t.Errorf("event match should carry its project, got %q", res.Events[0].ProjectName)
	}
}

func TestSearch_EmptyTermAndLimit(t *testing.T) {
	s := NewStore()
	s.Replace(sampleProjects())

	if res := s.Search("   ", 10); len(res.Projects)+len(res.Events) != 0 {
		t.Errorf("blank term should match nothing, got %+v", res)
	}
	if res := s.Search("a", 0); len(res.Projects)+len(res.Events) != 0 {
		t.Errorf("zero limit should match nothing, got %+v", res)
	}

	// "a" appears in every project name; the cap applies per list.
	res := s.Search("a", 2)
	if len(res.Projects) != 2 {
		t.Errorf("expected the project list capped at 2, got %d", len(res.Projects))
	}
}

func TestStats_Counts(t *testing.T) {
	s := NewStore()
	s.Replace(sampleProjects())

	st := s.Stats()
	if st.Projects != 3 || st.Completed != 1 || st.InProgress != 1 {
		t.Errorf("unexpected project counts: %+v", st)
	}
	if st.Events != 3 {
		t.Errorf("expected 3 events, got %d", st.Events)
	}
	if st.TimeSpent != 15.5 {
		t.Errorf("expected 15.5 hours, got %v", st.TimeSpent)
	}
}

func TestUpcomingEvents_OrderedAndCapped(t *testing.T) {
	s := NewStore()
	s.Replace(sampleProjects())

	got := s.UpcomingEvents("2024-06-02", 10)
	if len(got) != 2 {
		t.Fatalf("expected the June 1 event excluded, got %d events", len(got))
	}
	if got[0].ID != "e1" || got[1].ID != "e2" {
		t.Errorf("expected soonest first, got %s then %s", got[0].ID, got[1].ID)
	}

	if capped := s.UpcomingEvents("2024-01-01", 1); len(capped) != 1 || capped[0].ID != "e3" {
		t.Errorf("expected the single soonest event, got %+v", capped)
	}
}
