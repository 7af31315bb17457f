package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/novaqhq/novaq/internal/editor"
)

// openCreate opens the event modal seeded for the selected day.
func (m Model) openCreate() (tea.Model, tea.Cmd) {
	m.editor.OpenCreate(m.selectedDate, m.userSettings, m.projectFilter)
	return m.showEditor()
}

// openEdit opens the modal seeded from the event under the cursor.
func (m Model) openEdit() (tea.Model, tea.Cmd) {
	ev := m.selectedEvent()
	if ev == nil {
		return m, nil
	}
	m.editor.OpenEdit(*ev)
	return m.showEditor()
}

func (m Model) showEditor() (tea.Model, tea.Cmd) {
	m.mode = ModeEditor
	m.editErr = ""
	m.inputs[fieldTitle].SetValue(m.editor.Form.Title)
	m.inputs[fieldDescription].SetValue(m.editor.Form.Description)
	m.inputs[fieldDate].SetValue(m.editor.Form.Date)
	m.inputs[fieldStart].SetValue(m.editor.Form.StartTime)
	m.inputs[fieldEnd].SetValue(m.editor.Form.EndTime)
	m.focus = fieldTitle
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[fieldTitle].Focus()
	m.inputs[fieldTitle].CursorEnd()
	return m, textinput.Blink
}

// updateEditor drives the modal: tab cycles fields, left/right picks the
// project when that row is focused, enter saves, esc closes.
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.editor.Close()
		return m, nil

	case key.Matches(msg, keys.Tab), msg.String() == "shift+tab", msg.String() == "down", msg.String() == "up":
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = -1
		}
		m.focus = (m.focus + delta + fieldCount) % fieldCount
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		if m.focus != fieldProject {
			m.inputs[m.focus].Focus()
			m.inputs[m.focus].CursorEnd()
		}
		return m, textinput.Blink

	case key.Matches(msg, keys.Enter):
		return m.submitEditor()
	}

	if m.focus == fieldProject {
		switch msg.String() {
		case "left", "h":
			m.cycleEditorProject(-1)
		case "right", "l", " ":
			m.cycleEditorProject(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// cycleEditorProject steps the target project through none plus every
// known project.
func (m *Model) cycleEditorProject(delta int) {
	options := []string{editor.ProjectNone}
	for _, p := range m.projects.Projects() {
		options = append(options, p.ID)
	}
	idx := 0
	for i, opt := range options {
		if opt == m.editor.Form.ProjectID {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(options)) % len(options)
	m.editor.Form.ProjectID = options[idx]
}

// submitEditor validates synchronously, then runs the write off the UI
// loop. Validation failures keep the modal open with an inline error and
// nothing is persisted.
func (m Model) submitEditor() (tea.Model, tea.Cmd) {
	m.editor.Form.Title = m.inputs[fieldTitle].Value()
	m.editor.Form.Description = m.inputs[fieldDescription].Value()
	m.editor.Form.Date = m.inputs[fieldDate].Value()
	m.editor.Form.StartTime = m.inputs[fieldStart].Value()
	m.editor.Form.EndTime = m.inputs[fieldEnd].Value()

	projects := m.projects.Projects()
	if err := m.editor.Validate(projects); err != nil {
		m.editErr = err.Error()
		return m, nil
	}

	m.editErr = ""
	m.saving = true

	ed := m.editor
	client := m.client
	return m, func() tea.Msg {
		res, err := ed.Save(context.Background(), client, projects)
		return savedMsg{res: res, err: err}
	}
}

func (m *Model) editorProjectName() string {
	if m.editor.Form.ProjectID == editor.ProjectNone {
		return "(none)"
	}
	if p, ok := m.projects.Project(m.editor.Form.ProjectID); ok {
		return p.Name
	}
	return m.editor.Form.ProjectID
}
