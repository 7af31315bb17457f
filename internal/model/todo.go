package model

import "time"

// TodoItem is a quick checklist entry attached to a project, with an
// optional reminder timestamp.
type TodoItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Completed    bool   `json:"completed"`
	ReminderTime string `json:"reminderTime,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

// NewTodoItem creates a pending todo
func NewTodoItem(id, title, reminder string) TodoItem {
	return TodoItem{
		ID:           id,
		Title:        title,
		ReminderTime: reminder,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

// ReminderDue reports whether the reminder falls within the window around
// now. Completed items never fire.
func (t *TodoItem) ReminderDue(now time.Time, window time.Duration) bool {
	if t.Completed || t.ReminderTime == "" {
		return false
	}
	at, err := time.Parse(time.RFC3339, t.ReminderTime)
	if err != nil {
		return false
	}
	d := at.Sub(now)
	if d < 0 {
		d = -d
	}
	return d < window
}
