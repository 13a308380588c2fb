package timetable

import (
	"sort"
	"time"
)

// DateLayout is the day format used throughout the TimeEdit export
const DateLayout = "02-01-2006"

// ForDate returns the entries for a specific date along with the week number
// it belongs to. The bool reports whether the date appears at all.
func ForDate(t Timetable, date string) ([]Entry, int, bool) {
	for key, courses := range t {
		if key.Date == date {
			return courses, key.Week, true
		}
	}
	return nil, 0, false
}

// Day pairs a date with its entries for ordered week views
type Day struct {
	Date    string
	Entries []Entry
}

// DaysInWeek returns the days of the given week, sorted chronologically.
func DaysInWeek(t Timetable, week int) []Day {
	var days []Day
	for key, courses := range t {
		if key.Week == week {
			days = append(days, Day{Date: key.Date, Entries: courses})
		}
	}

	sort.Slice(days, func(i, j int) bool {
		di, erri := time.Parse(DateLayout, days[i].Date)
		dj, errj := time.Parse(DateLayout, days[j].Date)
		if erri != nil || errj != nil {
			return days[i].Date < days[j].Date
		}
		return di.Before(dj)
	})

	return days
}
