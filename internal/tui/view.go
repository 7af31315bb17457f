package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/novaqhq/novaq/internal/calendar"
	"github.com/novaqhq/novaq/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	grid := m.renderCalendar()
	dayList := m.renderDayList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, grid, dayList)

	switch m.mode {
	case ModeEditor:
		mainContent = m.overlay(m.renderEditorModal())
	case ModeConfirmDelete:
		mainContent = m.overlay(m.renderConfirmModal())
	case ModeSearch:
		mainContent = m.overlay(m.renderSearchModal())
	case ModeHelp:
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) overlay(modal string) string {
	return lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderSidebar() string {
	var s string

	now := time.Now().Format("15:04:05")
	s += HeaderStyle.Render("Novaq") + "\n"
	s += HelpStyle.Render(now) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render("────────────────────") + "\n\n"

	options := m.filterOptions()
	projects := m.projects.Projects()
	for i, opt := range options {
		label := "All projects"
		count := 0
		if opt == calendar.ProjectFilterAll {
			for _, p := range projects {
				count += len(p.CalendarEvents)
			}
		} else {
			for _, p := range projects {
				if p.ID == opt {
					label = p.Name
					count = len(p.CalendarEvents)
					break
				}
			}
		}

		cursor := "  "
		style := ProjectItemStyle
		if i == m.projCursor {
			cursor = "❯ "
			if m.pane == PaneSidebar {
				style = ProjectItemSelectedStyle
			}
		}
		active := " "
		if opt == m.projectFilter {
			active = "●"
		}

		line := fmt.Sprintf("%s%s %-12s %d", cursor, active, truncate(label, 12), count)
		s += style.Render(line) + "\n"
	}

	stats := m.projects.Stats()
	s += "\n" + lipgloss.NewStyle().Foreground(Border).Render("────────────────────") + "\n"
	s += HelpStyle.Render(fmt.Sprintf("%d projects", stats.Projects)) + "\n"
	s += HelpStyle.Render(fmt.Sprintf("%d in progress", stats.InProgress)) + "\n"
	s += HelpStyle.Render(fmt.Sprintf("%d completed", stats.Completed)) + "\n"
	s += HelpStyle.Render(fmt.Sprintf("%d events", stats.Events)) + "\n"
	if stats.TimeSpent > 0 {
		s += HelpStyle.Render(fmt.Sprintf("%.1fh logged", stats.TimeSpent)) + "\n"
	}

	return SidebarStyle.Height(m.height - 2).Render(s)
}

func (m Model) renderCalendar() string {
	width := 30
	var s string

	header := fmt.Sprintf("%s %d", m.anchor.Month(), m.anchor.Year())
	s += HeaderStyle.Render(header)
	s += HelpStyle.Render(fmt.Sprintf("  (%s)", m.filterLabel())) + "\n\n"
	s += HelpStyle.Render("Su Mo Tu We Th Fr Sa") + "\n"

	byDate := calendar.GroupByDate(m.visibleEvents())
	grid := calendar.MonthGrid(m.anchor.Year(), m.anchor.Month())
	todayKey := model.FormatDateKey(time.Now())

	var row strings.Builder
	for i, cell := range grid {
		if cell.Blank() {
			row.WriteString("   ")
		} else {
			style := DayCellStyle
			if len(byDate[cell.DateKey]) > 0 {
				style = DayCellBusyStyle
			}
			if cell.DateKey == todayKey {
				style = DayCellTodayStyle
			}
			if cell.DateKey == m.selectedDate {
				style = DayCellSelectedStyle
			}
			row.WriteString(style.Render(fmt.Sprintf("%2d", cell.Day)) + " ")
		}
		if i%7 == 6 {
			s += row.String() + "\n"
			row.Reset()
		}
	}

	s += "\n"
	s += HelpStyle.Render("[/]: month  t: today") + "\n"

	return CalendarStyle.Width(width).Height(m.height - 2).Render(s)
}

func (m Model) renderDayList() string {
	width := m.width - 26 - 30 - 4
	if width < 24 {
		width = 24
	}
	var s string

	s += HeaderStyle.Render(m.selectedDate) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", min(width-4, 40))) + "\n\n"

	events := m.dayEvents()
	if len(events) == 0 {
		s += HelpStyle.Render("  No events. Press 'a' to add one.")
	}

	for i, ev := range events {
		cursor := "  "
		style := EventItemStyle
		if i == m.dayCursor && m.pane == PaneDayList {
			cursor = "❯ "
			style = EventItemSelectedStyle
		}

		line := fmt.Sprintf("%s%s-%s  %s", cursor, ev.StartTime, ev.EndTime, truncate(ev.Title, width-28))
		s += style.Render(line)
		s += HelpStyle.Render("  ["+truncate(ev.ProjectName, 12)+"]") + "\n"
		if ev.Description != "" {
			s += HelpStyle.Render("         "+truncate(ev.Description, width-14)) + "\n"
		}
	}

	return DayListStyle.Width(width).Height(m.height - 2).Render(s)
}

func (m Model) renderEditorModal() string {
	title := "New Event"
	if m.editor.Editing() {
		title = "Edit Event"
	}

	var s string
	s += HeaderStyle.Render(title) + "\n\n"

	rows := []struct {
		label string
		field int
		view  string
	}{
		{"Title", fieldTitle, m.inputs[fieldTitle].View()},
		{"Description", fieldDescription, m.inputs[fieldDescription].View()},
		{"Date", fieldDate, m.inputs[fieldDate].View()},
		{"Start", fieldStart, m.inputs[fieldStart].View()},
		{"End", fieldEnd, m.inputs[fieldEnd].View()},
		{"Project", fieldProject, "◀ " + m.editorProjectName() + " ▶"},
	}
	for _, r := range rows {
		label := LabelStyle
		if m.focus == r.field {
			label = LabelFocusStyle
		}
		s += label.Render(r.label) + " " + r.view + "\n"
	}

	s += "\n"
	if m.editErr != "" {
		s += ErrorStyle.Render("✗ "+m.editErr) + "\n"
	}
	if m.saving {
		s += SavingStyle.Render("Saving...") + "\n"
	}
	s += HelpStyle.Render("tab: next field  enter: save  esc: cancel")

	return ModalStyle.Render(s)
}

func (m Model) renderConfirmModal() string {
	var s string
	s += lipgloss.NewStyle().Bold(true).Foreground(Danger).Render("Delete event?") + "\n\n"
	if m.deleting != nil {
		s += fmt.Sprintf("%q on %s %s-%s\n\n",
			m.deleting.Title, m.deleting.Date, m.deleting.StartTime, m.deleting.EndTime)
	}
	s += HelpStyle.Render("y: delete  n: cancel")
	return ModalStyle.BorderForeground(Danger).Render(s)
}

func (m Model) renderSearchModal() string {
	var s string
	s += HeaderStyle.Render("Search") + "\n\n"
	s += m.searchInput.View() + "\n\n"

	if len(m.searchHits.Projects) == 0 && len(m.searchHits.Events) == 0 {
		if m.searchInput.Value() != "" {
			s += HelpStyle.Render("No matches")
		}
	}
	if len(m.searchHits.Projects) > 0 {
		s += HelpStyle.Render("Projects") + "\n"
		for _, p := range m.searchHits.Projects {
			s += fmt.Sprintf("  %-24s %s\n", truncate(p.Name, 24), HelpStyle.Render(p.Status))
		}
	}
	if len(m.searchHits.Events) > 0 {
		s += HelpStyle.Render("Events") + "\n"
		for _, ev := range m.searchHits.Events {
			s += fmt.Sprintf("  %s %s-%s  %s\n", ev.Date, ev.StartTime, ev.EndTime, truncate(ev.Title, 24))
		}
	}

	s += "\n" + HelpStyle.Render("enter: jump to first hit  esc: close")
	return ModalStyle.Render(s)
}

func (m Model) renderHelp() string {
	help := `
  Novaq keys

  Navigation
    tab          cycle panes
    ←/→ ↑/↓      move day (calendar) / cursor
    [ / ]        previous / next month
    t            jump to today

  Events
    a            add event on selected day
    e            edit selected event
    d            delete selected event
    P            smart plan focus blocks
    f            cycle project filter
    /            search projects and events

  Other
    r            refresh from server
    ?            close help
    q            quit
`
	return lipgloss.NewStyle().Padding(1, 4).Render(help)
}

func (m Model) renderStatusBar() string {
	help := "a:add  e:edit  d:del  P:plan  f:filter  /:search  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}
	if m.saving {
		help = SavingStyle.Render("Working...")
	}
	return StatusBarStyle.Width(m.width).Render(help)
}
