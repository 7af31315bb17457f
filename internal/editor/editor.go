// Package editor implements the create/edit flow for calendar events as an
// explicit state machine, independent of any particular UI.
package editor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/novaqhq/novaq/internal/calendar"
	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/internal/model"
	"github.com/novaqhq/novaq/internal/settings"
)

// ProjectNone is the unselected-project sentinel. Validation rejects it.
const ProjectNone = "none"

// State is the editor lifecycle state.
type State int

const (
	StateClosed State = iota
	StateCreate
	StateEdit
	StateSaving
)

// Validation errors, checked in this order. The first failure wins and
// nothing is written.
var (
	ErrTitleRequired = errors.New("title is required")
	ErrNoProject     = errors.New("select a project")
	ErrBadDate       = errors.New("date must be YYYY-MM-DD")
	ErrBadTime       = errors.New("times must be HH:MM")
	ErrTimeRange     = errors.New("end time must be after start time")
	ErrProjectGone   = errors.New("selected project no longer exists")
)

// Repository persists a project's full event array. Writes are whole-array
// replacements; there is no per-event patch.
type Repository interface {
	ReplaceEvents(ctx context.Context, projectID string, events []model.CalendarEvent) error
}

// Form holds the editable fields.
type Form struct {
	Title       string
	Description string
	Date        string // day key, "2024-06-03"
	StartTime   string // "HH:MM"
	EndTime     string // "HH:MM"
	ProjectID   string
}

// Editor drives one open create/edit session.
type Editor struct {
	State State
	Form  Form
	Err   error

	// carried outside the form: the settings default on create, the
	// event's stored colour on edit
	color string

	// set only when editing an existing event
	eventID         string
	createdAt       string
	sourceProjectID string
}

// OpenCreate resets the form for a new event on dateKey. Start and end
// times come from the user's defaults; if the calendar is filtered to a
// single project it becomes the preselected target.
func (e *Editor) OpenCreate(dateKey string, s settings.Settings, projectFilter string) {
	projectID := ProjectNone
	if projectFilter != "" && projectFilter != calendar.ProjectFilterAll {
		projectID = projectFilter
	}
	start := s.DefaultEventStartTime
	e.State = StateCreate
	e.Err = nil
	e.color = s.DefaultEventColor
	e.eventID = ""
	e.createdAt = ""
	e.sourceProjectID = ""
	e.Form = Form{
		Date:      dateKey,
		StartTime: start,
		EndTime:   model.AddMinutes(start, s.DefaultEventDurationMinutes),
		ProjectID: projectID,
	}
}

// OpenEdit seeds the form from an existing event.
func (e *Editor) OpenEdit(ev calendar.Event) {
	e.State = StateEdit
	e.Err = nil
	e.color = ev.Color
	e.eventID = ev.ID
	e.createdAt = ev.CreatedAt
	e.sourceProjectID = ev.ProjectID
	e.Form = Form{
		Title:       ev.Title,
		Description: ev.Description,
		Date:        ev.Date,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		ProjectID:   ev.ProjectID,
	}
}

// Close discards the session.
func (e *Editor) Close() {
	e.State = StateClosed
	e.Err = nil
}

// Open reports whether the editor is showing.
func (e *Editor) Open() bool { return e.State != StateClosed }

// Editing reports whether the session targets an existing event.
func (e *Editor) Editing() bool { return e.eventID != "" }

// Validate checks the form against the current project set. Checks run in
// a fixed order and the first failure is returned.
func (e *Editor) Validate(projects []model.Project) error {
	if strings.TrimSpace(e.Form.Title) == "" {
		return ErrTitleRequired
	}
	if e.Form.ProjectID == "" || e.Form.ProjectID == ProjectNone {
		return ErrNoProject
	}
	if _, err := model.ParseDateKey(e.Form.Date); err != nil {
		return ErrBadDate
	}
	if !model.ValidClock(e.Form.StartTime) || !model.ValidClock(e.Form.EndTime) {
		return ErrBadTime
	}
	if e.Form.EndTime <= e.Form.StartTime {
		return ErrTimeRange
	}
	if findProject(projects, e.Form.ProjectID) == nil {
		return ErrProjectGone
	}
	return nil
}

// Result describes a completed save.
type Result struct {
	Event     model.CalendarEvent
	ProjectID string
	Moved     bool // event changed projects
}

// Save validates and persists the form. Creation appends to the target
// project's array; an edit replaces the matching event in place, falling
// back to append if the id has vanished. Moving an event across projects
// is two independent writes with no rollback.
//
// On failure the editor stays open with Err set; on success it closes.
func (e *Editor) Save(ctx context.Context, repo Repository, projects []model.Project) (Result, error) {
	if err := e.Validate(projects); err != nil {
		e.Err = err
		return Result{}, err
	}

	prev := e.State
	e.State = StateSaving

	target := findProject(projects, e.Form.ProjectID)
	ev := e.buildEvent(target)

	var err error
	moved := false
	switch {
	case !e.Editing():
		err = repo.ReplaceEvents(ctx, target.ID, append(cloneEvents(target.CalendarEvents), ev))
	case e.sourceProjectID == target.ID:
		err = repo.ReplaceEvents(ctx, target.ID, replaceOrAppend(target.CalendarEvents, ev))
	default:
		moved = true
		err = e.move(ctx, repo, projects, target, ev)
	}

	if err != nil {
		logger.Error("event save failed", logger.F("event", ev.ID), logger.F("error", err))
		e.State = prev
		e.Err = err
		return Result{}, err
	}

	logger.Info("event saved",
		logger.F("event", ev.ID), logger.F("project", target.ID), logger.F("date", ev.Date))
	e.Close()
	return Result{Event: ev, ProjectID: target.ID, Moved: moved}, nil
}

// move takes the event out of its source project and appends it to the
// target. The removal is written first; if the append then fails the event
// is gone from both arrays until the next full refresh.
func (e *Editor) move(ctx context.Context, repo Repository, projects []model.Project, target *model.Project, ev model.CalendarEvent) error {
	source := findProject(projects, e.sourceProjectID)
	if source != nil {
		remaining := make([]model.CalendarEvent, 0, len(source.CalendarEvents))
		for _, existing := range source.CalendarEvents {
			if existing.ID != ev.ID {
				remaining = append(remaining, existing)
			}
		}
		if err := repo.ReplaceEvents(ctx, source.ID, remaining); err != nil {
			return err
		}
	}
	return repo.ReplaceEvents(ctx, target.ID, append(cloneEvents(target.CalendarEvents), ev))
}

// buildEvent assembles the record to persist. Absolute timestamps are
// always recomputed from the form's date and times, never carried over
// from stale state. The colour was fixed when the session opened: the
// settings default for a new event, the event's own colour on edit.
func (e *Editor) buildEvent(target *model.Project) model.CalendarEvent {
	id := e.eventID
	createdAt := e.createdAt
	if id == "" {
		id = model.NewEventID()
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}
	color := e.color
	if color == "" {
		color = target.Color("")
	}
	return model.CalendarEvent{
		ID:          id,
		Title:       strings.TrimSpace(e.Form.Title),
		Description: strings.TrimSpace(e.Form.Description),
		Date:        e.Form.Date,
		StartTime:   e.Form.StartTime,
		EndTime:     e.Form.EndTime,
		StartAt:     model.CombineDateTime(e.Form.Date, e.Form.StartTime),
		EndAt:       model.CombineDateTime(e.Form.Date, e.Form.EndTime),
		Color:       color,
		CreatedAt:   createdAt,
	}
}

func findProject(projects []model.Project, id string) *model.Project {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}

func cloneEvents(events []model.CalendarEvent) []model.CalendarEvent {
	out := make([]model.CalendarEvent, len(events))
	copy(out, events)
	return out
}

func replaceOrAppend(events []model.CalendarEvent, ev model.CalendarEvent) []model.CalendarEvent {
	out := cloneEvents(events)
	for i := range out {
		if out[i].ID == ev.ID {
			out[i] = ev
			return out
		}
	}
	// id vanished from the array; keep the edit rather than drop it
	return append(out, ev)
}
