package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Date and time formats used throughout the calendar. Dates are day keys
// ("2024-06-03"), times are 24h wall-clock ("09:00"). Both sort correctly as
// plain strings.
const (
	DateKeyFormat = "2006-01-02"
	ClockFormat   = "15:04"
)

// CalendarEvent is a single scheduled block embedded in a project document.
// StartAt/EndAt are derived from Date+StartTime/EndTime and recomputed on
// every save; they are never edited directly.
type CalendarEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	StartAt     string `json:"startAt"`
	EndAt       string `json:"endAt"`
	Color       string `json:"color,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// NewEventID returns a fresh client-generated event identifier.
func NewEventID() string {
	return uuid.New().String()
}

// FormatDateKey renders t as a calendar day key.
func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// ParseDateKey parses a day key at local midnight.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyFormat, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	return t, nil
}

// CombineDateTime turns a day key and wall-clock time into an absolute
// RFC3339 UTC timestamp. The wall-clock time is interpreted in local time,
// matching how the calendar displays it.
func CombineDateTime(date, clock string) string {
	t, err := time.ParseInLocation(DateKeyFormat+"T"+ClockFormat, date+"T"+clock, time.Local)
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// AddMinutes adds minutes to an HH:MM time, wrapping around midnight.
func AddMinutes(clock string, minutes int) string {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return clock
	}
	day := 24 * 60
	total := ((h*60+m+minutes)%day + day) % day
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ValidClock reports whether s is a well-formed HH:MM time.
func ValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse(ClockFormat, s)
	return err == nil
}

// ValidHexColor reports whether s is a "#RRGGBB" colour.
func ValidHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range strings.ToLower(s[1:]) {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
