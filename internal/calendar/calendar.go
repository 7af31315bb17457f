// Package calendar derives calendar views from the in-memory project list.
// Everything here is pure computation: the same projects, month and filter
// always produce the same output.
package calendar

import (
	"sort"
	"time"

	"github.com/novaqhq/novaq/internal/model"
)

// ProjectFilterAll selects events from every project.
const ProjectFilterAll = "all"

// Event is a calendar event annotated with its owning project.
type Event struct {
	model.CalendarEvent
	ProjectID   string
	ProjectName string
}

// Flatten collects every event across all projects, tagging each with its
// project's id and display name, sorted ascending by absolute start time.
// StartAt is RFC3339 UTC so a plain string compare orders correctly.
func Flatten(projects []model.Project) []Event {
	var out []Event
	for _, p := range projects {
		if p.ID == "" {
			continue
		}
		for _, ev := range p.CalendarEvents {
			out = append(out, Event{
				CalendarEvent: ev,
				ProjectID:     p.ID,
				ProjectName:   p.Name,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartAt < out[j].StartAt
	})
	return out
}

// FilterByProject retains only events belonging to projectID. The
// ProjectFilterAll sentinel keeps everything.
func FilterByProject(events []Event, projectID string) []Event {
	if projectID == ProjectFilterAll || projectID == "" {
		return events
	}
	var out []Event
	for _, ev := range events {
		if ev.ProjectID == projectID {
			out = append(out, ev)
		}
	}
	return out
}

// GridCell is one cell of the month grid. Blank padding cells have Day == 0
// and an empty DateKey.
type GridCell struct {
	DateKey string // "2024-06-03", empty for padding
	Day     int    // day of month, 0 for padding
}

// Blank reports whether the cell is padding before the 1st or after the
// last day of the month.
func (c GridCell) Blank() bool { return c.Day == 0 }

// MonthGrid lays out the given month as a flat sequence of 7-cell weeks:
// leading blanks for the weekday offset of the 1st (Sunday = 0), one cell
// per day, trailing blanks so the total length is a multiple of 7.
func MonthGrid(year int, month time.Month) []GridCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]GridCell, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, GridCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, GridCell{
			DateKey: model.FormatDateKey(time.Date(year, month, day, 0, 0, 0, 0, time.Local)),
			Day:     day,
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, GridCell{})
	}
	return cells
}

// GroupByDate buckets events by their date key. Within each bucket events
// are sorted ascending by start time; the fixed HH:MM width makes the
// lexicographic compare correct.
func GroupByDate(events []Event) map[string][]Event {
	byDate := make(map[string][]Event)
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}
	for key, bucket := range byDate {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartTime < bucket[j].StartTime
		})
		byDate[key] = bucket
	}
	return byDate
}
