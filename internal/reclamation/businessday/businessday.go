// Package businessday counts working days between calendar dates. A business
// day is any day that is not a Saturday, not a Sunday, and not present in the
// holiday set.
package businessday

import "time"

// DateFormat is the key format for the holiday set.
const DateFormat = "2006-01-02"

// Between returns the number of business days in [start, end), walking one
// calendar day at a time. Time-of-day and timezone offsets are ignored; only
// the calendar date matters. When start is on or after end the result is 0,
// never negative.
func Between(start, end time.Time, holidays map[string]struct{}) int {
	day := truncateToDate(start)
	last := truncateToDate(end)

	count := 0
	for day.Before(last) {
		if isBusinessDay(day, holidays) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}

	return count
}

func isBusinessDay(day time.Time, holidays map[string]struct{}) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if _, isHoliday := holidays[day.Format(DateFormat)]; isHoliday {
		return false
	}
	return true
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
