package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/novaqhq/novaq/internal/model"
	"github.com/novaqhq/novaq/internal/settings"
)

type write struct {
	projectID string
	events    []model.CalendarEvent
}

type fakeRepo struct {
	writes []write
	failOn string
}

func (f *fakeRepo) ReplaceEvents(ctx context.Context, projectID string, events []model.CalendarEvent) error {
	if f.failOn == projectID {
		return errors.New("write refused")
	}
	f.writes = append(f.writes, write{projectID: projectID, events: events})
	return nil
}

// fridayJune7 is a Friday, so the first candidate day (Saturday) falls on
// a weekend and planning starts the following Monday.
var fridayJune7 = time.Date(2024, time.June, 7, 12, 0, 0, 0, time.UTC)

func activeProjects(n int) []model.Project {
	names := []string{"Thesis", "Side hustle", "Garden", "Band", "Reading", "Sixth", "Seventh"}
	out := make([]model.Project, n)
	for i := 0; i < n; i++ {
		out[i] = model.Project{ID: string(rune('a' + i)), Name: names[i]}
	}
	return out
}

func TestPlanWeek_SchedulesWeekdaysSkippingWeekend(t *testing.T) {
	repo := &fakeRepo{}
	res, err := PlanWeek(context.Background(), repo, activeProjects(5), settings.Defaults(), fridayJune7)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	if res.Created != 5 || res.ActiveProjects != 5 {
		t.Errorf("expected 5 blocks for 5 projects, got %+v", res)
	}
	if res.Message() != "Created 5 focus blocks" {
		t.Errorf("unexpected message %q", res.Message())
	}

	wantDates := []string{"2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13", "2024-06-14"}
	if len(repo.writes) != 5 {
		t.Fatalf("expected 5 writes, got %d", len(repo.writes))
	}
	for i, w := range repo.writes {
		if len(w.events) != 1 {
			t.Fatalf("write %d: expected one event, got %d", i, len(w.events))
		}
		if w.events[0].Date != wantDates[i] {
			t.Errorf("write %d: expected date %s, got %s", i, wantDates[i], w.events[0].Date)
		}
	}
}

func TestPlanWeek_EventFields(t *testing.T) {
	repo := &fakeRepo{}
	s := settings.Defaults()
	s.SmartPlannerStartTime = "14:00"
	s.SmartPlannerDurationMinutes = 90
	s.DefaultEventColor = "#ABCDEF"

	projects := []model.Project{
		{ID: "p1", Name: "Thesis", BackgroundColour: "#112233"},
		{ID: "p2", Name: "Garden"},
	}
	if _, err := PlanWeek(context.Background(), repo, projects, s, fridayJune7); err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	first := repo.writes[0].events[0]
	if first.Title != "Focus block" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.Description != "Deep work for Thesis" {
		t.Errorf("unexpected description %q", first.Description)
	}
	if first.StartTime != "14:00" || first.EndTime != "15:30" {
		t.Errorf("expected 14:00-15:30, got %s-%s", first.StartTime, first.EndTime)
	}
	if first.Color != "#112233" {
		t.Errorf("project colour should win, got %q", first.Color)
	}
	if first.ID == "" || first.StartAt == "" || first.EndAt == "" || first.CreatedAt == "" {
		t.Errorf("incomplete event %+v", first)
	}

	second := repo.writes[1].events[0]
	if second.Color != "#ABCDEF" {
		t.Errorf("colourless project should fall back to the default, got %q", second.Color)
	}
}

func TestPlanWeek_ExistingBlockKeepsDayButCreatesNothing(t *testing.T) {
	repo := &fakeRepo{}
	projects := activeProjects(3)
	// First project already has its Monday block.
	projects[0].CalendarEvents = []model.CalendarEvent{
		{ID: "old", Title: "Focus block", Date: "2024-06-10"},
	}

	res, err := PlanWeek(context.Background(), repo, projects, settings.Defaults(), fridayJune7)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	if res.Created != 2 {
		t.Errorf("expected 2 created, got %d", res.Created)
	}
	// The skipped project still consumed Monday.
	if repo.writes[0].events[0].Date != "2024-06-11" {
		t.Errorf("second project should land on Tuesday, got %s", repo.writes[0].events[0].Date)
	}
	if repo.writes[1].events[0].Date != "2024-06-12" {
		t.Errorf("third project should land on Wednesday, got %s", repo.writes[1].events[0].Date)
	}
}

func TestPlanWeek_TitleMatchIsExact(t *testing.T) {
	repo := &fakeRepo{}
	projects := activeProjects(1)
	projects[0].CalendarEvents = []model.CalendarEvent{
		{ID: "e1", Title: "Focus block review", Date: "2024-06-10"},
		{ID: "e2", Title: "focus block", Date: "2024-06-10"},
	}

	res, err := PlanWeek(context.Background(), repo, projects, settings.Defaults(), fridayJune7)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if res.Created != 1 {
		t.Errorf("near-miss titles must not suppress planning, created %d", res.Created)
	}
	if len(repo.writes) != 1 || len(repo.writes[0].events) != 3 {
		t.Fatalf("expected existing events preserved plus the new block, got %+v", repo.writes)
	}
}

func TestPlanWeek_AllBlocksAlreadyPlanned(t *testing.T) {
	repo := &fakeRepo{}
	projects := activeProjects(2)
	projects[0].CalendarEvents = []model.CalendarEvent{{Title: "Focus block", Date: "2024-06-10"}}
	projects[1].CalendarEvents = []model.CalendarEvent{{Title: "Focus block", Date: "2024-06-11"}}

	res, err := PlanWeek(context.Background(), repo, projects, settings.Defaults(), fridayJune7)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if res.Created != 0 || len(repo.writes) != 0 {
		t.Errorf("expected nothing written, got %+v / %d writes", res, len(repo.writes))
	}
	if res.Message() != "No changes: focus blocks already planned" {
		t.Errorf("unexpected message %q", res.Message())
	}
}

func TestPlanWeek_NoActiveProjects(t *testing.T) {
	repo := &fakeRepo{}
	projects := []model.Project{
		{ID: "done", Name: "Done", Status: model.StatusCompleted},
		{Name: "unsaved draft"},
	}
	res, err := PlanWeek(context.Background(), repo, projects, settings.Defaults(), fridayJune7)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if res.ActiveProjects != 0 || len(repo.writes) != 0 {
		t.Errorf("completed and unsaved projects must be ignored, got %+v", res)
	}
	if res.Message() != "No active projects to plan for" {
		t.Errorf("unexpected message %q", res.Message())
	}
}

func TestPlanWeek_CapsAtFiveProjects(t *testing.T) {
	repo := &fakeRepo{}
	res, err := PlanWeek(context.Background(), repo, activeProjects(7), settings.Defaults(), fridayJune7)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if res.ActiveProjects != 5 || res.Created != 5 {
		t.Errorf("expected the run capped at 5, got %+v", res)
	}
}

func TestPlanWeek_WriteFailureAborts(t *testing.T) {
	repo := &fakeRepo{failOn: "b"}
	res, err := PlanWeek(context.Background(), repo, activeProjects(3), settings.Defaults(), fridayJune7)
	if err == nil {
		t.Fatal("expected the failed write to surface")
	}
	if res.Created != 1 {
		t.Errorf("expected only the first block counted, got %d", res.Created)
	}
	if len(repo.writes) != 1 {
		t.Errorf("planning must stop at the failed project, got %d writes", len(repo.writes))
	}
}
