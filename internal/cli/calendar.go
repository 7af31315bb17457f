package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/novaqhq/novaq/internal/calendar"
	"github.com/novaqhq/novaq/internal/model"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar [YYYY-MM]",
	Aliases: []string{"cal"},
	Short:   "Print a month calendar with event counts",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runCalendar,
}

var calendarProject string

func init() {
	calendarCmd.Flags().StringVarP(&calendarProject, "project", "p", calendar.ProjectFilterAll, "Filter by project id")
}

const gridWidth = len("Su Mo Tu We Th Fr Sa")

func runCalendar(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	anchor := time.Now()
	if len(args) == 1 {
		anchor, err = time.ParseInLocation("2006-01", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", args[0])
		}
	}

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	events := calendar.FilterByProject(calendar.Flatten(projects), calendarProject)
	byDate := calendar.GroupByDate(events)
	grid := calendar.MonthGrid(anchor.Year(), anchor.Month())

	printMonth(anchor, grid, byDate)

	// Day detail under the grid, busiest first day order
	today := model.FormatDateKey(time.Now())
	for _, cell := range grid {
		if cell.Blank() || len(byDate[cell.DateKey]) == 0 {
			continue
		}
		marker := " "
		if cell.DateKey == today {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, cell.DateKey)
		for _, ev := range byDate[cell.DateKey] {
			fmt.Printf("    %s-%s  %s  [%s]\n", ev.StartTime, ev.EndTime, ev.Title, ev.ProjectName)
		}
	}

	return nil
}

func printMonth(anchor time.Time, grid []calendar.GridCell, byDate map[string][]calendar.Event) {
	title := color.New(color.FgWhite, color.Italic)
	quiet := color.New(color.Faint, color.FgWhite)
	busy := color.New(color.Bold, color.FgHiWhite)
	today := color.New(color.Bold, color.Underline)

	m := fmt.Sprintf("%s %d", anchor.Month(), anchor.Year())
	mid := (gridWidth - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	title.Printf("%s%s\n", strings.Repeat(" ", mid), m)
	quiet.Println("Su Mo Tu We Th Fr Sa")

	todayKey := model.FormatDateKey(time.Now())
	for i, cell := range grid {
		switch {
		case cell.Blank():
			fmt.Print("   ")
		case cell.DateKey == todayKey:
			today.Printf("%2d", cell.Day)
			fmt.Print(" ")
		case len(byDate[cell.DateKey]) > 0:
			busy.Printf("%2d ", cell.Day)
		default:
			quiet.Printf("%2d ", cell.Day)
		}
		if i%7 == 6 {
			fmt.Println()
		}
	}
	fmt.Println()
}
