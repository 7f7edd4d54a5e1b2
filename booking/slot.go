package booking

import (
	"fmt"
	"time"

	"github.com/medibook/medibook-api/models"
)

// ParseClock converts a "HH:MM" 24h clock string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) share any instant. All values are minutes since midnight.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// SlotWithinWindows reports whether [startMin, startMin+durationMin) lies
// entirely inside one of the provider's active windows for the given
// weekday. Windows with unparseable times are skipped.
func SlotWithinWindows(windows []models.Availability, day time.Weekday, startMin, durationMin int) bool {
	end := startMin + durationMin
	for _, w := range windows {
		if w.DayOfWeek != day || !w.IsActive {
			continue
		}
		winStart, err := ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		winEnd, err := ParseClock(w.EndTime)
		if err != nil {
			continue
		}
		if winStart <= startMin && end <= winEnd {
			return true
		}
	}
	return false
}

// DateOnly strips the clock portion so equality comparisons against the
// date column behave the same on every dialect.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
