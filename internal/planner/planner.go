// Package planner creates one "Focus block" event per active project across
// upcoming weekdays.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/novaqhq/novaq/internal/editor"
	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/internal/model"
	"github.com/novaqhq/novaq/internal/settings"
)

// FocusBlockTitle marks planner-created events. The duplicate check matches
// this title exactly.
const FocusBlockTitle = "Focus block"

// MaxProjects caps how many projects a single run schedules.
const MaxProjects = 5

// Result reports what a planner run did.
type Result struct {
	Created        int
	ActiveProjects int
}

// Message renders the outcome for display. "No changes" is distinct from
// "created N": it means every candidate day already had a block.
func (r Result) Message() string {
	switch {
	case r.ActiveProjects == 0:
		return "No active projects to plan for"
	case r.Created == 0:
		return "No changes: focus blocks already planned"
	case r.Created == 1:
		return "Created 1 focus block"
	default:
		return fmt.Sprintf("Created %d focus blocks", r.Created)
	}
}

// PlanWeek schedules a focus block for up to MaxProjects non-completed
// projects, starting tomorrow and skipping weekends. The date cursor is
// shared: each project claims the next weekday whether or not a block is
// actually created for it. A project that already has a same-day focus
// block keeps its day but gets no duplicate. Each created block is written
// immediately, one write per project.
func PlanWeek(ctx context.Context, repo editor.Repository, projects []model.Project, s settings.Settings, now time.Time) (Result, error) {
	var active []model.Project
	for _, p := range projects {
		if p.Active() {
			active = append(active, p)
		}
		if len(active) == MaxProjects {
			break
		}
	}

	res := Result{ActiveProjects: len(active)}
	if len(active) == 0 {
		return res, nil
	}

	startTime := s.SmartPlannerStartTime
	endTime := model.AddMinutes(startTime, s.SmartPlannerDurationMinutes)

	cursor := now.AddDate(0, 0, 1)
	for _, p := range active {
		for model.IsWeekend(cursor) {
			cursor = cursor.AddDate(0, 0, 1)
		}
		dateKey := model.FormatDateKey(cursor)

		if hasFocusBlock(p.CalendarEvents, dateKey) {
			logger.Debug("focus block exists, skipping",
				logger.F("project", p.ID), logger.F("date", dateKey))
			cursor = cursor.AddDate(0, 0, 1)
			continue
		}

		ev := model.CalendarEvent{
			ID:          model.NewEventID(),
			Title:       FocusBlockTitle,
			Description: fmt.Sprintf("Deep work for %s", p.Name),
			Date:        dateKey,
			StartTime:   startTime,
			EndTime:     endTime,
			StartAt:     model.CombineDateTime(dateKey, startTime),
			EndAt:       model.CombineDateTime(dateKey, endTime),
			Color:       p.Color(s.DefaultEventColor),
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		}

		events := make([]model.CalendarEvent, len(p.CalendarEvents), len(p.CalendarEvents)+1)
		copy(events, p.CalendarEvents)
		if err := repo.ReplaceEvents(ctx, p.ID, append(events, ev)); err != nil {
			logger.Error("focus block write failed",
				logger.F("project", p.ID), logger.F("error", err))
			return res, fmt.Errorf("failed to plan %s: %w", p.Name, err)
		}

		res.Created++
		logger.Info("focus block created",
			logger.F("project", p.ID), logger.F("date", dateKey))
		cursor = cursor.AddDate(0, 0, 1)
	}

	return res, nil
}

func hasFocusBlock(events []model.CalendarEvent, dateKey string) bool {
	for _, ev := range events {
		if ev.Date == dateKey && ev.Title == FocusBlockTitle {
			return true
		}
	}
	return false
}
