package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/novaqhq/novaq/internal/api"
	"github.com/novaqhq/novaq/internal/calendar"
	"github.com/novaqhq/novaq/internal/editor"
	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/internal/model"
	"github.com/novaqhq/novaq/internal/settings"
	"github.com/novaqhq/novaq/internal/state"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneCalendar
	PaneDayList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditor
	ModeConfirmDelete
	ModeSearch
	ModeHelp
)

// Editor form fields, in focus order
const (
	fieldTitle = iota
	fieldDescription
	fieldDate
	fieldStart
	fieldEnd
	fieldProject
	fieldCount
)

// Model is the main TUI model
type Model struct {
	client       *api.Client
	projects     *state.Store
	poller       *state.Poller
	settingsRepo *settings.Store
	userSettings settings.Settings

	// Refresh signal from the store subscription
	refreshChan chan struct{}

	// UI state
	width         int
	height        int
	pane          Pane
	mode          Mode
	anchor        time.Time // first of the displayed month
	selectedDate  string
	projectFilter string
	projCursor    int
	dayCursor     int

	// Event editor
	editor   editor.Editor
	inputs   []textinput.Model
	focus    int
	editErr  string
	saving   bool
	deleting *calendar.Event

	// Search
	searchInput textinput.Model
	searchHits  state.SearchResult

	message string
}

// NewModel creates the TUI model and wires the live refresh subscription
func NewModel(client *api.Client, projects *state.Store, poller *state.Poller, settingsRepo *settings.Store) Model {
	logger.Info("Initializing TUI model")

	now := time.Now()

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldTitle].Placeholder = "Event title..."
	inputs[fieldDescription].Placeholder = "Description (optional)"
	inputs[fieldDate].Placeholder = model.DateKeyFormat
	inputs[fieldDate].Width = 12
	inputs[fieldStart].Placeholder = "09:00"
	inputs[fieldStart].Width = 7
	inputs[fieldEnd].Placeholder = "10:00"
	inputs[fieldEnd].Width = 7

	search := textinput.New()
	search.Placeholder = "Search projects and events..."
	search.CharLimit = 128
	search.Width = 40

	m := Model{
		client:        client,
		projects:      projects,
		poller:        poller,
		settingsRepo:  settingsRepo,
		userSettings:  settingsRepo.Load(client.UserID()),
		refreshChan:   make(chan struct{}, 1),
		pane:          PaneCalendar,
		mode:          ModeNormal,
		anchor:        time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		selectedDate:  model.FormatDateKey(now),
		projectFilter: calendar.ProjectFilterAll,
		inputs:        inputs,
		searchInput:   search,
	}

	// Non-blocking send so a burst of updates collapses into one redraw
	projects.Subscribe(func() {
		select {
		case m.refreshChan <- struct{}{}:
		default:
		}
	})

	logger.Debug("TUI model initialized",
		logger.F("projects", len(projects.Projects())))
	return m
}

// visibleEvents returns the filtered flattened event list.
func (m *Model) visibleEvents() []calendar.Event {
	return calendar.FilterByProject(calendar.Flatten(m.projects.Projects()), m.projectFilter)
}

// dayEvents returns the selected day's events in start order.
func (m *Model) dayEvents() []calendar.Event {
	return calendar.GroupByDate(m.visibleEvents())[m.selectedDate]
}

// selectedEvent returns the event under the day cursor.
func (m *Model) selectedEvent() *calendar.Event {
	events := m.dayEvents()
	if m.dayCursor < len(events) {
		ev := events[m.dayCursor]
		return &ev
	}
	return nil
}

// filterOptions returns the project filter cycle: all, then each project.
func (m *Model) filterOptions() []string {
	options := []string{calendar.ProjectFilterAll}
	for _, p := range m.projects.Projects() {
		options = append(options, p.ID)
	}
	return options
}

func (m *Model) filterLabel() string {
	if m.projectFilter == calendar.ProjectFilterAll {
		return "all projects"
	}
	if p, ok := m.projects.Project(m.projectFilter); ok {
		return p.Name
	}
	return m.projectFilter
}
