package model

// Note is a freeform sticky note on a project's canvas. Position and size
// are persisted so the canvas is stable across sessions.
type Note struct {
	ID            string  `json:"id"`
	Content       string  `json:"content"`
	IsHighlighted bool    `json:"isHighlighted,omitempty"`
	FontSize      int     `json:"fontSize,omitempty"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
}

// NewNote creates a note with the default canvas footprint.
func NewNote(id, content string, x, y float64) Note {
	return Note{
		ID:      id,
		Content: content,
		X:       x,
		Y:       y,
		Width:   200,
		Height:  150,
	}
}
