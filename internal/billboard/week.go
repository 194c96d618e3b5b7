package billboard

import "time"

// CurrentWeek computes the billboard week number and year for a given
// instant. The number is ceil((dayOfMonth + weekday) / 7) with a 0-based
// Sunday weekday. This is not an ISO-8601 week; it is the historical
// formula every stored billboard entry was keyed with, so it is kept
// behind this single function. Swapping in ISO weeks would only require
// changing this implementation (and migrating stored entries).
func CurrentWeek(now time.Time) (week, year int) {
	day := now.Day()
	wd := int(now.Weekday()) // 0 = Sunday
	week = (day + wd + 6) / 7
	return week, now.Year()
}
