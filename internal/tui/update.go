package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/novaqhq/novaq/internal/calendar"
	"github.com/novaqhq/novaq/internal/editor"
	"github.com/novaqhq/novaq/internal/model"
	"github.com/novaqhq/novaq/internal/planner"
)

// tickMsg is sent every second for clock updates
type tickMsg time.Time

// refreshMsg is sent when the project store is replaced
type refreshMsg struct{}

// savedMsg reports the outcome of an event save
type savedMsg struct {
	res editor.Result
	err error
}

// deletedMsg reports the outcome of an event delete
type deletedMsg struct {
	title string
	err   error
}

// plannedMsg reports the outcome of a smart planner run
type plannedMsg struct {
	res planner.Result
	err error
}

// Init starts the clock and the refresh listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForRefresh())
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForRefresh listens for store replacement signals
func (m Model) waitForRefresh() tea.Cmd {
	return func() tea.Msg {
		<-m.refreshChan
		return refreshMsg{}
	}
}

// refreshCmd refetches the project list in the background; the store
// subscription delivers the UI update.
func (m Model) refreshCmd() tea.Cmd {
	poller := m.poller
	return func() tea.Msg {
		poller.Refresh(context.Background())
		return nil
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tickCmd()

	case refreshMsg:
		m.clampCursors()
		return m, m.waitForRefresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case deletedMsg:
		m.saving = false
		if msg.err != nil {
			m.message = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}
		m.message = fmt.Sprintf("Deleted %q", msg.title)
		return m, m.refreshCmd()

	case plannedMsg:
		m.saving = false
		if msg.err != nil {
			m.message = fmt.Sprintf("Planner failed: %v", msg.err)
			return m, nil
		}
		m.message = msg.res.Message()
		return m, m.refreshCmd()

	case tea.KeyMsg:
		switch m.mode {
		case ModeEditor:
			return m.updateEditor(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.poller.Stop()
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		m.pane = (m.pane + 1) % 3

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case key.Matches(msg, keys.Left):
		m.handleLeft()

	case key.Matches(msg, keys.Right):
		m.handleRight()

	case key.Matches(msg, keys.PrevMonth):
		m.shiftMonth(-1)

	case key.Matches(msg, keys.NextMonth):
		m.shiftMonth(1)

	case key.Matches(msg, keys.Today):
		now := time.Now()
		m.selectedDate = model.FormatDateKey(now)
		m.anchor = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		m.dayCursor = 0

	case key.Matches(msg, keys.Enter):
		if m.pane == PaneSidebar {
			m.applySidebarSelection()
		}

	case key.Matches(msg, keys.Filter):
		m.cycleFilter()

	case key.Matches(msg, keys.Add):
		return m.openCreate()

	case key.Matches(msg, keys.Edit):
		return m.openEdit()

	case key.Matches(msg, keys.Delete):
		return m.startDelete()

	case key.Matches(msg, keys.Plan):
		return m.startPlan()

	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue("")
		m.searchHits = m.projects.Search("", 0)
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Refresh):
		m.message = "Refreshing..."
		return m, m.refreshCmd()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleUp() {
	switch m.pane {
	case PaneSidebar:
		if m.projCursor > 0 {
			m.projCursor--
		}
	case PaneCalendar:
		m.shiftSelectedDate(-7)
	case PaneDayList:
		if m.dayCursor > 0 {
			m.dayCursor--
		}
	}
}

func (m *Model) handleDown() {
	switch m.pane {
	case PaneSidebar:
		if m.projCursor < len(m.filterOptions())-1 {
			m.projCursor++
		}
	case PaneCalendar:
		m.shiftSelectedDate(7)
	case PaneDayList:
		if m.dayCursor < len(m.dayEvents())-1 {
			m.dayCursor++
		}
	}
}

func (m *Model) handleLeft() {
	if m.pane == PaneCalendar {
		m.shiftSelectedDate(-1)
	} else if m.pane > PaneSidebar {
		m.pane--
	}
}

func (m *Model) handleRight() {
	if m.pane == PaneCalendar {
		m.shiftSelectedDate(1)
	} else if m.pane < PaneDayList {
		m.pane++
	}
}

// shiftSelectedDate moves the selection by days, following across month
// boundaries.
func (m *Model) shiftSelectedDate(days int) {
	day, err := model.ParseDateKey(m.selectedDate)
	if err != nil {
		day = time.Now()
	}
	day = day.AddDate(0, 0, days)
	m.selectedDate = model.FormatDateKey(day)
	m.anchor = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.Local)
	m.dayCursor = 0
}

// shiftMonth pages the grid without moving the selected day unless it
// falls outside the new month.
func (m *Model) shiftMonth(months int) {
	m.anchor = m.anchor.AddDate(0, months, 0)
	if day, err := model.ParseDateKey(m.selectedDate); err == nil {
		if day.Year() != m.anchor.Year() || day.Month() != m.anchor.Month() {
			m.selectedDate = model.FormatDateKey(m.anchor)
			m.dayCursor = 0
		}
	}
}

func (m *Model) applySidebarSelection() {
	options := m.filterOptions()
	if m.projCursor < len(options) {
		m.projectFilter = options[m.projCursor]
		m.dayCursor = 0
		m.message = "Showing " + m.filterLabel()
	}
}

func (m *Model) cycleFilter() {
	options := m.filterOptions()
	for i, opt := range options {
		if opt == m.projectFilter {
			m.projectFilter = options[(i+1)%len(options)]
			m.projCursor = (i + 1) % len(options)
			m.dayCursor = 0
			m.message = "Showing " + m.filterLabel()
			return
		}
	}
	// filtered project was deleted out from under us
	m.projectFilter = calendar.ProjectFilterAll
	m.projCursor = 0
}

func (m *Model) clampCursors() {
	if n := len(m.filterOptions()); m.projCursor >= n {
		m.projCursor = n - 1
	}
	if n := len(m.dayEvents()); m.dayCursor >= n && m.dayCursor > 0 {
		m.dayCursor = n - 1
		if m.dayCursor < 0 {
			m.dayCursor = 0
		}
	}
	if m.projectFilter != calendar.ProjectFilterAll {
		if _, ok := m.projects.Project(m.projectFilter); !ok {
			m.projectFilter = calendar.ProjectFilterAll
			m.projCursor = 0
		}
	}
}

func (m Model) startDelete() (tea.Model, tea.Cmd) {
	ev := m.selectedEvent()
	if ev == nil {
		return m, nil
	}
	if m.userSettings.ConfirmBeforeDelete {
		m.mode = ModeConfirmDelete
		m.deleting = ev
		return m, nil
	}
	return m.deleteEvent(*ev)
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		ev := m.deleting
		m.mode = ModeNormal
		m.deleting = nil
		if ev != nil {
			return m.deleteEvent(*ev)
		}
	case "n", "N", "esc", "q":
		m.mode = ModeNormal
		m.deleting = nil
		m.message = "Delete cancelled"
	}
	return m, nil
}

func (m Model) deleteEvent(ev calendar.Event) (tea.Model, tea.Cmd) {
	project, ok := m.projects.Project(ev.ProjectID)
	if !ok {
		m.message = "Project no longer exists"
		return m, m.refreshCmd()
	}

	remaining := make([]model.CalendarEvent, 0, len(project.CalendarEvents))
	for _, existing := range project.CalendarEvents {
		if existing.ID != ev.ID {
			remaining = append(remaining, existing)
		}
	}

	client := m.client
	m.saving = true
	return m, func() tea.Msg {
		err := client.ReplaceEvents(context.Background(), project.ID, remaining)
		return deletedMsg{title: ev.Title, err: err}
	}
}

func (m Model) startPlan() (tea.Model, tea.Cmd) {
	client := m.client
	projects := m.projects.Projects()
	userSettings := m.userSettings
	m.saving = true
	m.message = "Planning focus blocks..."
	return m, func() tea.Msg {
		res, err := planner.PlanWeek(context.Background(), client, projects, userSettings, time.Now())
		return plannedMsg{res: res, err: err}
	}
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.editErr = msg.err.Error()
		return m, nil
	}

	// Jump the calendar to the saved event's day
	m.mode = ModeNormal
	m.editor.Close()
	m.selectedDate = msg.res.Event.Date
	if day, err := model.ParseDateKey(msg.res.Event.Date); err == nil {
		m.anchor = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.Local)
	}
	m.message = fmt.Sprintf("Saved %q", msg.res.Event.Title)
	return m, m.refreshCmd()
}
