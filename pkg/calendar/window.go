package calendar

import "time"

// DayWindow returns the inclusive UTC bounds of the calendar day containing
// the given instant: 00:00:00.000 through 23:59:59.999.
func DayWindow(day time.Time) (start, end time.Time) {
	d := day.UTC()
	start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
	return start, end
}
