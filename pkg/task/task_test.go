package task

import (
	"testing"

	calendar "google.golang.org/api/calendar/v3"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		summary    string
		wantModule string
		wantCrNo   string
	}{
		{"PROJ-123: fix bug", "PROJ", "PROJ-123"},
		{"proj-123 review", "PROJ", "proj-123"},
		{"Deploy CORE-9 to staging", "CORE", "CORE-9"},
		{"Team sync", "Meeting", ""},
		{"1:1 with manager", "Meeting", ""},
		{"AB-12 too short a prefix", "Meeting", ""},
		{"pick first ABC-1 then DEF-2", "ABC", "ABC-1"},
	}

	for _, tt := range tests {
		module, crNo := Classify(tt.summary)
		if module != tt.wantModule {
			t.Errorf("Classify(%q) module = %q, want %q", tt.summary, module, tt.wantModule)
		}
		if crNo != tt.wantCrNo {
			t.Errorf("Classify(%q) crNo = %q, want %q", tt.summary, crNo, tt.wantCrNo)
		}
	}
}

func TestDenylisted(t *testing.T) {
	tests := []struct {
		summary string
		want    bool
	}{
		{"Lunch", true},
		{"LUNCH", true},
		{"lunch", true},
		{"Out of office", true},
		{"OUT OF OFFICE", true},
		{"Lunch with team", false},
		{"Team sync", false},
	}

	for _, tt := range tests {
		if got := Denylisted(tt.summary); got != tt.want {
			t.Errorf("Denylisted(%q) = %v, want %v", tt.summary, got, tt.want)
		}
	}
}

func newEvent(summary, start, end string) *calendar.Event {
	return &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start},
		End:     &calendar.EventDateTime{DateTime: end},
	}
}

func TestFromEvent(t *testing.T) {
	ev := newEvent("PROJ-123: fix bug", "2024-03-14T09:00:00Z", "2024-03-14T11:00:00Z")

	task, err := FromEvent(ev, "Internal")
	if err != nil {
		t.Fatalf("FromEvent failed: %v", err)
	}

	if task.Task != "PROJ-123: fix bug" {
		t.Errorf("Task = %q, want the event summary", task.Task)
	}
	if task.Module != "PROJ" {
		t.Errorf("Module = %q, want PROJ", task.Module)
	}
	if task.CrNo != "PROJ-123" {
		t.Errorf("CrNo = %q, want PROJ-123", task.CrNo)
	}
	if task.Manhours != 2 {
		t.Errorf("Manhours = %d, want 2", task.Manhours)
	}
	if task.Project != "Internal" {
		t.Errorf("Project = %q, want Internal", task.Project)
	}
	if task.Date != "14-03-2024" {
		t.Errorf("Date = %q, want 14-03-2024", task.Date)
	}
	if task.ID == "" {
		t.Error("expected a generated ID")
	}
}

func TestFromEventGeneratesUniqueIDs(t *testing.T) {
	ev := newEvent("Team sync", "2024-03-14T14:00:00Z", "2024-03-14T14:30:00Z")

	first, err := FromEvent(ev, "Internal")
	if err != nil {
		t.Fatalf("FromEvent failed: %v", err)
	}
	second, err := FromEvent(ev, "Internal")
	if err != nil {
		t.Fatalf("FromEvent failed: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("expected unique IDs, both were %q", first.ID)
	}
}

func TestFromEventManhoursRounding(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2024-03-14T09:00:00Z", "2024-03-14T09:20:00Z", 0},  // 20m rounds down
		{"2024-03-14T09:00:00Z", "2024-03-14T09:30:00Z", 1},  // 30m rounds up
		{"2024-03-14T09:00:00Z", "2024-03-14T10:30:00Z", 2},  // 1h30m rounds up
		{"2024-03-14T09:00:00Z", "2024-03-14T17:00:00Z", 8},  // exact
		{"2024-03-14T22:00:00Z", "2024-03-15T01:00:00Z", 3},  // crosses midnight
	}

	for _, tt := range tests {
		task, err := FromEvent(newEvent("Team sync", tt.start, tt.end), "Internal")
		if err != nil {
			t.Fatalf("FromEvent(%s..%s) failed: %v", tt.start, tt.end, err)
		}
		if task.Manhours != tt.want {
			t.Errorf("Manhours for %s..%s = %d, want %d", tt.start, tt.end, task.Manhours, tt.want)
		}
	}
}

func TestFromEventRejectsMalformedTimes(t *testing.T) {
	if _, err := FromEvent(newEvent("x", "not-a-time", "2024-03-14T11:00:00Z"), "p"); err == nil {
		t.Error("expected error for malformed start time")
	}
	if _, err := FromEvent(newEvent("x", "2024-03-14T09:00:00Z", "not-a-time"), "p"); err == nil {
		t.Error("expected error for malformed end time")
	}
	if _, err := FromEvent(&calendar.Event{Summary: "x"}, "p"); err == nil {
		t.Error("expected error for event without start/end")
	}
}
