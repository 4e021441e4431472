package task

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
)

// codePattern matches a change-request code in an event title, e.g.
// "PROJ-123". Letters and digits 1-9 (no zeros) before the hyphen, 3 to 10
// of them, then a numeric suffix.
var codePattern = regexp.MustCompile(`[A-Za-z1-9]{3,10}-\d+`)

// Titles that never become work-log entries, compared case-insensitively.
var denylist = map[string]struct{}{
	"LUNCH":         {},
	"OUT OF OFFICE": {},
}

// Task is a work-log record derived from a single calendar event. IDs are
// freshly generated per invocation and never correlated across fetches.
type Task struct {
	ID       string `json:"id"`
	Task     string `json:"task"`
	Module   string `json:"module"`
	Manhours int    `json:"manhours"`
	Project  string `json:"project"`
	CrNo     string `json:"crNo"`
	Date     string `json:"date"`
}

// Classify extracts the module and change-request code from an event title.
// The first code match wins; titles without a code classify as "Meeting".
func Classify(summary string) (module, crNo string) {
	match := codePattern.FindString(summary)
	if match == "" {
		return "Meeting", ""
	}
	head, _, _ := strings.Cut(match, "-")
	return strings.ToUpper(head), match
}

// Denylisted reports whether an event title is excluded from the work log.
func Denylisted(summary string) bool {
	_, ok := denylist[strings.ToUpper(summary)]
	return ok
}

// FromEvent maps a raw calendar event to a Task. Manhours are the event
// duration rounded to whole hours; the date is the start day as DD-MM-YYYY.
func FromEvent(ev *calendar.Event, project string) (Task, error) {
	if ev == nil || ev.Start == nil || ev.End == nil {
		return Task{}, fmt.Errorf("event is missing start or end time")
	}

	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		return Task{}, fmt.Errorf("could not parse event start time %q: %w", ev.Start.DateTime, err)
	}
	end, err := time.Parse(time.RFC3339, ev.End.DateTime)
	if err != nil {
		return Task{}, fmt.Errorf("could not parse event end time %q: %w", ev.End.DateTime, err)
	}

	module, crNo := Classify(ev.Summary)

	return Task{
		ID:       uuid.NewString(),
		Task:     ev.Summary,
		Module:   module,
		Manhours: int(math.Round(end.Sub(start).Hours())),
		Project:  project,
		CrNo:     crNo,
		Date:     start.Format("02-01-2006"),
	}, nil
}
