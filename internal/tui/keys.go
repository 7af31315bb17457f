package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Tab       key.Binding
	Enter     key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Filter    key.Binding
	Plan      key.Binding
	Search    key.Binding
	Today     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add event")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit event")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete event")),
	Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle project filter")),
	Plan:      key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "smart plan")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
	NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
	Refresh:   key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "refresh")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
