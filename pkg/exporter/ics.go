package exporter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"uforactl/pkg/timetable"

	ics "github.com/arran4/golang-ical"
)

// GenerateICS writes the timetable as an ICS calendar so it can be imported
// into any calendar app. Entries with malformed dates or time slots are
// skipped rather than failing the whole export.
func GenerateICS(t timetable.Timetable, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	// Timezone location for Belgium
	loc, err := time.LoadLocation("Europe/Brussels")
	if err != nil {
		return fmt.Errorf("could not load timezone: %w", err)
	}

	// Deterministic event order regardless of map iteration
	keys := make([]timetable.Key, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date < keys[j].Date
		}
		return keys[i].Week < keys[j].Week
	})

	layout := "02-01-2006 15:04"

	for _, key := range keys {
		for i, entry := range t[key] {
			// entry.TimeSlot example: "13:00 - 14:30"
			startRaw, endRaw, found := strings.Cut(entry.TimeSlot, "-")
			if !found {
				continue
			}

			startTime, err := time.ParseInLocation(layout, fmt.Sprintf("%s %s", key.Date, strings.TrimSpace(startRaw)), loc)
			if err != nil {
				continue // Skip invalid times
			}
			endTime, err := time.ParseInLocation(layout, fmt.Sprintf("%s %s", key.Date, strings.TrimSpace(endRaw)), loc)
			if err != nil {
				continue
			}

			event := cal.AddEvent(fmt.Sprintf("%s-%d", startTime.Format("20060102T150405Z"), i))
			event.SetCreatedTime(time.Now())
			event.SetDtStampTime(time.Now())
			event.SetModifiedAt(time.Now())
			event.SetStartAt(startTime)
			event.SetEndAt(endTime)
			event.SetSummary(entry.CourseName)
			event.SetLocation(entry.Location)

			description := fmt.Sprintf("Type: %s\nCode: %s", entry.CourseType, entry.CourseCode)
			if len(entry.Professors) > 0 {
				description += fmt.Sprintf("\nProfessors: %s", strings.Join(entry.Professors, ", "))
			}
			event.SetDescription(description)
		}
	}

	return cal.SerializeTo(w)
}
