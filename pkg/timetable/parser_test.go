package timetable

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"Some export preamble that matches nothing",
		"Ma W 43 20-10-2025",
		"08:30 - 11:15 , C003782. Besturingssystemen, Hoorcollege, Aud 1, F. Kerckhof",
		"13:00 - 14:30 , C003781. Software Engineering, Werkcollege, PC-klas 2, J. Peeters, A. Maes",
		"Di W 43 21-10-2025",
		"10:00 - 11:30 , C003780. Databanken, Hoorcollege, Aud 3, none",
		"",
		"Wo W 43 22-10-2025",
	}, "\n")

	parsed, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(parsed) != 2 {
		t.Fatalf("expected 2 days with courses, got %d: %+v", len(parsed), parsed)
	}

	monday := parsed[Key{Date: "20-10-2025", Week: 43}]
	if len(monday) != 2 {
		t.Fatalf("expected 2 courses on Monday, got %d", len(monday))
	}

	first := monday[0]
	if first.TimeSlot != "08:30 - 11:15" {
		t.Errorf("unexpected time slot: %q", first.TimeSlot)
	}
	if first.CourseCode != "C003782" || first.CourseName != "Besturingssystemen" {
		t.Errorf("unexpected code/name: %q / %q", first.CourseCode, first.CourseName)
	}
	if first.CourseType != "Hoorcollege" || first.Location != "Aud 1" {
		t.Errorf("unexpected type/location: %q / %q", first.CourseType, first.Location)
	}
	if !reflect.DeepEqual(first.Professors, []string{"F. Kerckhof"}) {
		t.Errorf("unexpected professors: %v", first.Professors)
	}

	if profs := monday[1].Professors; !reflect.DeepEqual(profs, []string{"J. Peeters", "A. Maes"}) {
		t.Errorf("expected both professors collected, got %v", profs)
	}

	// "none" professors are dropped
	tuesday := parsed[Key{Date: "21-10-2025", Week: 43}]
	if len(tuesday) != 1 {
		t.Fatalf("expected 1 course on Tuesday, got %d", len(tuesday))
	}
	if len(tuesday[0].Professors) != 0 {
		t.Errorf("expected 'none' professor to be dropped, got %v", tuesday[0].Professors)
	}

	// Wednesday has a header but no courses: it must not appear at all
	if _, ok := parsed[Key{Date: "22-10-2025", Week: 43}]; ok {
		t.Errorf("expected empty day to be dropped from the timetable")
	}
}

func TestParseDateHeaderAtEOF(t *testing.T) {
	parsed, err := Parse(strings.NewReader("Ma W 43 20-10-2025\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(parsed) != 0 {
		t.Errorf("expected an empty timetable for a lone date header, got %+v", parsed)
	}
}

func TestParseIgnoresCourseLinesBeforeAnyHeader(t *testing.T) {
	parsed, err := Parse(strings.NewReader("08:30 - 11:15 , C1. Orphan, Lecture, Aud 1\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(parsed) != 0 {
		t.Errorf("expected course lines before a date header to be ignored, got %+v", parsed)
	}
}

func TestParseCourseLineWithoutTrailingFields(t *testing.T) {
	input := "Ma W 43 20-10-2025\n08:30 - 09:15 , C1. Short Course\n"

	parsed, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	entries := parsed[Key{Date: "20-10-2025", Week: 43}]
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.CourseCode != "C1" || e.CourseName != "Short Course" {
		t.Errorf("unexpected code/name: %q / %q", e.CourseCode, e.CourseName)
	}
	if e.CourseType != "" || e.Location != "" || len(e.Professors) != 0 {
		t.Errorf("expected missing fields to stay empty, got %+v", e)
	}
}
