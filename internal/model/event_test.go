package model

import (
	"testing"
	"time"
)

func TestAddMinutes_Basic(t *testing.T) {
	if got := AddMinutes("09:00", 60); got != "10:00" {
		t.Errorf("expected 10:00, got %s", got)
	}
	if got := AddMinutes("09:45", 30); got != "10:15" {
		t.Errorf("expected 10:15, got %s", got)
	}
}

func TestAddMinutes_WrapsAroundMidnight(t *testing.T) {
	if got := AddMinutes("23:30", 60); got != "00:30" {
		t.Errorf("expected 00:30, got %s", got)
	}
	if got := AddMinutes("00:30", -60); got != "23:30" {
		t.Errorf("expected 23:30, got %s", got)
	}
}

func TestAddMinutes_InvalidInputReturnedUnchanged(t *testing.T) {
	if got := AddMinutes("not-a-time", 60); got != "not-a-time" {
		t.Errorf("expected input back, got %s", got)
	}
}

func TestCombineDateTime_ProducesRFC3339(t *testing.T) {
	got := CombineDateTime("2024-06-03", "09:00")
	if got == "" {
		t.Fatal("expected a timestamp, got empty string")
	}
	if _, err := time.Parse(time.RFC3339, got); err != nil {
		t.Errorf("result %q does not parse as RFC3339: %v", got, err)
	}
}

func TestCombineDateTime_OrdersByStart(t *testing.T) {
	early := CombineDateTime("2024-06-03", "09:00")
	late := CombineDateTime("2024-06-03", "10:00")
	nextDay := CombineDateTime("2024-06-04", "01:00")

	if !(early < late) {
		t.Errorf("expected %q < %q", early, late)
	}
	if !(late < nextDay) {
		t.Errorf("expected %q < %q", late, nextDay)
	}
}

func TestCombineDateTime_InvalidInput(t *testing.T) {
	if got := CombineDateTime("bogus", "09:00"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := CombineDateTime("2024-06-03", "9am"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		if !ValidClock(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "noonish"}
	for _, s := range invalid {
		if ValidClock(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestValidHexColor(t *testing.T) {
	valid := []string{"#000000", "#4D3BED", "#ffffff"}
	for _, s := range valid {
		if !ValidHexColor(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "#fff", "4D3BED", "#GGGGGG", "#4D3BED0"}
	for _, s := range invalid {
		if ValidHexColor(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	sat := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)
	sun := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.Local)
	mon := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.Local)

	if !IsWeekend(sat) || !IsWeekend(sun) {
		t.Error("expected Saturday and Sunday to be weekend")
	}
	if IsWeekend(mon) {
		t.Error("expected Monday to be a weekday")
	}
}

func TestProjectActive(t *testing.T) {
	p := NewProject("p1", "u1", "Thesis")
	if !p.Active() {
		t.Error("new project should be active")
	}

	p.Status = StatusCompleted
	if p.Active() {
		t.Error("completed project should not be active")
	}

	blank := Project{Status: StatusInProgress}
	if blank.Active() {
		t.Error("project without an id should not be active")
	}
}

func TestProjectColor(t *testing.T) {
	p := Project{BackgroundColour: "#FF6B6B"}
	if got := p.Color("#000000"); got != "#FF6B6B" {
		t.Errorf("expected project colour, got %s", got)
	}

	p.BackgroundColour = ""
	if got := p.Color("#000000"); got != "#000000" {
		t.Errorf("expected fallback colour, got %s", got)
	}
}
