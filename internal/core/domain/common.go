package domain

import "time"

// DateLayout is the calendar-date format used for day session keys and due dates.
const DateLayout = "2006-01-02"

// DateKey returns the calendar date of t in loc, formatted with DateLayout.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// ParseDateKey parses a DateLayout string as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, key, loc)
}
