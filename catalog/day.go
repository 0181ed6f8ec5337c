package catalog

import "time"

// DateLayout is the calendar date format used on the wire
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date, so dates compare by day only
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DayPtr returns a pointer to the calendar day of t
func DayPtr(t time.Time) *time.Time {
	d := Day(t)
	return &d
}
