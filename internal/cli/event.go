package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/novaqhq/novaq/internal/calendar"
	"github.com/novaqhq/novaq/internal/editor"
	"github.com/novaqhq/novaq/internal/model"
	"github.com/novaqhq/novaq/internal/settings"
	"github.com/novaqhq/novaq/internal/state"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add an event to a project's calendar",
	Long: `Add an event to a project's calendar.

Examples:
  novaq event add "Design review" --project 4f2c... --date 2026-09-01
  novaq event add "Standup" -p 4f2c... -d 2026-09-01 -s 10:00 -e 10:15`,
	Args: cobra.ExactArgs(1),
	RunE: runEventAdd,
}

var eventListCmd = &cobra.Command{
	Use:     "list [date]",
	Aliases: []string{"ls"},
	Short:   "List events, optionally for a single day",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runEventList,
}

var eventDeleteCmd = &cobra.Command{
	Use:     "delete [event-id]",
	Aliases: []string{"rm"},
	Short:   "Delete an event",
	Args:    cobra.ExactArgs(1),
	RunE:    runEventDelete,
}

var (
	eventProject  string
	eventDate     string
	eventStart    string
	eventEnd      string
	eventDesc     string
	eventUpcoming int
)

func init() {
	eventAddCmd.Flags().StringVarP(&eventProject, "project", "p", "", "Target project id (required)")
	eventAddCmd.Flags().StringVarP(&eventDate, "date", "d", "", "Event date, YYYY-MM-DD (default today)")
	eventAddCmd.Flags().StringVarP(&eventStart, "start", "s", "", "Start time, HH:MM (default from settings)")
	eventAddCmd.Flags().StringVarP(&eventEnd, "end", "e", "", "End time, HH:MM (default start + duration)")
	eventAddCmd.Flags().StringVar(&eventDesc, "description", "", "Event description")
	eventAddCmd.MarkFlagRequired("project")

	eventListCmd.Flags().StringVarP(&eventProject, "project", "p", calendar.ProjectFilterAll, "Filter by project id")
	eventListCmd.Flags().IntVar(&eventUpcoming, "upcoming", 0, "Show only the next N events from today")

	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventDeleteCmd)
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	store, err := settings.OpenDefault()
	if err != nil {
		return err
	}
	userSettings := store.Load(client.UserID())

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	date := eventDate
	if date == "" {
		date = model.FormatDateKey(time.Now())
	} else if _, err := model.ParseDateKey(date); err != nil {
		return err
	}

	var ed editor.Editor
	ed.OpenCreate(date, userSettings, eventProject)
	ed.Form.Title = args[0]
	ed.Form.Description = eventDesc
	if eventStart != "" {
		if !model.ValidClock(eventStart) {
			return fmt.Errorf("invalid start time %q, expected HH:MM", eventStart)
		}
		ed.Form.StartTime = eventStart
		ed.Form.EndTime = model.AddMinutes(eventStart, userSettings.DefaultEventDurationMinutes)
	}
	if eventEnd != "" {
		if !model.ValidClock(eventEnd) {
			return fmt.Errorf("invalid end time %q, expected HH:MM", eventEnd)
		}
		ed.Form.EndTime = eventEnd
	}

	res, err := ed.Save(cmd.Context(), client, projects)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added %q on %s %s-%s\n", res.Event.Title, res.Event.Date, res.Event.StartTime, res.Event.EndTime)
	return nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	var events []calendar.Event
	if eventUpcoming > 0 {
		projectState := state.NewStore()
		projectState.Replace(projects)
		events = calendar.FilterByProject(
			projectState.UpcomingEvents(model.FormatDateKey(time.Now()), eventUpcoming), eventProject)
	} else {
		events = calendar.FilterByProject(calendar.Flatten(projects), eventProject)
		if len(args) == 1 {
			if _, err := model.ParseDateKey(args[0]); err != nil {
				return err
			}
			events = calendar.GroupByDate(events)[args[0]]
		}
	}

	if len(events) == 0 {
		fmt.Println("No events found.")
		return nil
	}

	fmt.Println()
	for _, ev := range events {
		fmt.Printf("  %s  %s-%s  %-30s  [%s]  %s\n",
			ev.Date, ev.StartTime, ev.EndTime, ev.Title, ev.ProjectName, ev.ID)
	}
	fmt.Println()
	return nil
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	eventID := args[0]

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	for _, p := range projects {
		for _, ev := range p.CalendarEvents {
			if ev.ID != eventID {
				continue
			}
			remaining := make([]model.CalendarEvent, 0, len(p.CalendarEvents)-1)
			for _, existing := range p.CalendarEvents {
				if existing.ID != eventID {
					remaining = append(remaining, existing)
				}
			}
			if err := client.ReplaceEvents(cmd.Context(), p.ID, remaining); err != nil {
				return fmt.Errorf("failed to delete event: %w", err)
			}
			fmt.Printf("🗑️  Deleted %q from %s\n", ev.Title, p.Name)
			return nil
		}
	}

	return fmt.Errorf("event not found: %s", strings.TrimSpace(eventID))
}
