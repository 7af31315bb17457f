package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/novaqhq/novaq/internal/model"
	"github.com/novaqhq/novaq/internal/state"
)

// updateSearch drives the search overlay with live results.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.searchHits = state.SearchResult{}
		return m, nil

	case key.Matches(msg, keys.Enter):
		// Jump to the first event hit's day
		if len(m.searchHits.Events) > 0 {
			ev := m.searchHits.Events[0]
			m.selectedDate = ev.Date
			if day, err := model.ParseDateKey(ev.Date); err == nil {
				m.anchor = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.Local)
			}
			m.pane = PaneDayList
			m.dayCursor = 0
		} else if len(m.searchHits.Projects) > 0 {
			m.projectFilter = m.searchHits.Projects[0].ID
			m.message = "Showing " + m.filterLabel()
		}
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.searchHits = state.SearchResult{}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchHits = m.projects.Search(m.searchInput.Value(), m.userSettings.DashboardSearchLimit)
	return m, cmd
}
