package model

import (
	"fmt"
	"strings"
	"time"
)

// Project status values
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// DefaultProjectColor is used when a project has no colour of its own.
const DefaultProjectColor = "#4D3BED"

// Project is a user-owned project document. Calendar events are embedded as
// an ordered list; order is not significant and is re-sorted on read.
type Project struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	BackgroundColour   string          `json:"backgroundColour,omitempty"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	Status             string          `json:"status,omitempty"`
	TimeSpentOnProject float64         `json:"timeSpentOnProject,omitempty"`
	Attachments        []string        `json:"attachments"`
	ResourceLinks      []string        `json:"resourceLinks"`
	CalendarEvents     []CalendarEvent `json:"calendarEvents"`
	UserID             string          `json:"userId,omitempty"`
	CreatedAt          string          `json:"createdAt"`
}

// NewProject creates a project with defaults
func NewProject(id, userID, name string) Project {
	return Project{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Status:    StatusNotStarted,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Active reports whether the project is a candidate for auto-planning:
// it has an identifier and is not completed.
func (p *Project) Active() bool {
	return p.ID != "" && p.Status != StatusCompleted
}

// NormalizeLink trims a resource link and ensures it carries a scheme.
// Bare domains get an https:// prefix.
func NormalizeLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}

// AppendLink adds a normalized link to the list, rejecting empty input and
// duplicates.
func AppendLink(links []string, raw string) ([]string, error) {
	link := NormalizeLink(raw)
	if link == "" {
		return links, fmt.Errorf("empty link")
	}
	for _, existing := range links {
		if existing == link {
			return links, fmt.Errorf("link already added: %s", link)
		}
	}
	return append(links, link), nil
}

// Color returns the project's background colour, or fallback when unset.
func (p *Project) Color(fallback string) string {
	if p.BackgroundColour != "" {
		return p.BackgroundColour
	}
	return fallback
}
