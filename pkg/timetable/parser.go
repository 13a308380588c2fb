package timetable

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	// datePattern matches day headers like "Ma W 43 20-10-2025"
	datePattern = regexp.MustCompile(`^([A-Z][a-z])\s+W\s+(\d+)\s+(\d{2}-\d{2}-\d{4})`)
	// coursePattern matches course lines like
	// "13:00 - 14:30 , C003782. Besturingssystemen, Lecture, Aud 1, J. Doe"
	coursePattern = regexp.MustCompile(`^(\d{2}:\d{2}\s*-\s*\d{2}:\d{2})\s*,\s*(.*)$`)
)

// ParseFile reads and parses a TimeEdit plain-text export
func ParseFile(path string) (Timetable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse scans the export line by line. A date header opens a new day bucket,
// flushing the previous one; course lines accumulate into the current bucket;
// anything else is ignored. Days that end up without courses are dropped.
func Parse(r io.Reader) (Timetable, error) {
	timetable := make(Timetable)

	var current Key
	var haveDay bool
	var dayCourses []Entry

	flush := func() {
		if haveDay && len(dayCourses) > 0 {
			timetable[current] = dayCourses
		}
		dayCourses = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := datePattern.FindStringSubmatch(line); m != nil {
			flush()
			week, _ := strconv.Atoi(m[2])
			current = Key{Date: m[3], Week: week}
			haveDay = true
			continue
		}

		if m := coursePattern.FindStringSubmatch(line); m != nil && haveDay {
			dayCourses = append(dayCourses, parseCourseLine(m[1], m[2]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	flush()
	return timetable, nil
}

// parseCourseLine splits the comma-separated remainder of a course line into
// its fields: "code.name, type, location, professor, professor, ..."
func parseCourseLine(timeSlot, rest string) Entry {
	parts := strings.Split(rest, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	entry := Entry{TimeSlot: timeSlot, Professors: []string{}}

	if len(parts) > 0 {
		// First part holds code and name separated by the first period
		if code, name, found := strings.Cut(parts[0], "."); found {
			entry.CourseCode = strings.TrimSpace(code)
			entry.CourseName = strings.TrimSpace(name)
		}
	}
	if len(parts) > 1 {
		entry.CourseType = parts[1]
	}
	if len(parts) > 2 {
		entry.Location = parts[2]
	}
	if len(parts) > 3 {
		for _, prof := range parts[3:] {
			if prof == "" || strings.EqualFold(prof, "none") {
				continue
			}
			entry.Professors = append(entry.Professors, prof)
		}
	}

	return entry
}
