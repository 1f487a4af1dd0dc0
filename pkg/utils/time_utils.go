// utils/timeutil.go
package utils

import "time"

const ISODateLayout = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD string in UTC.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse(ISODateLayout, s)
}

func FormatISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISODateLayout)
}

// DaysInclusive returns the number of calendar days covered by [start, end],
// both endpoints included. A same-day trip counts as 1.
func DaysInclusive(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours()/24) + 1
}

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
