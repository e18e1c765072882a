package utils

import (
	"time"
	_ "time/tzdata"
)

// DayBounds returns [start of day, start of next day) for now in loc.
func DayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// WeekBounds returns [Monday 00:00, next Monday 00:00) around now in loc.
func WeekBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	dayStart, _ := DayBounds(now, loc)
	offset := (int(dayStart.Weekday()) + 6) % 7
	start := dayStart.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// Within reports whether t falls in [from, to).
func Within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
