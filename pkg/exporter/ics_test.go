package exporter

import (
	"bytes"
	"strings"
	"testing"

	"uforactl/pkg/timetable"
)

func TestGenerateICS(t *testing.T) {
	tt := timetable.Timetable{
		{Date: "20-10-2025", Week: 43}: {
			{
				TimeSlot:   "13:00 - 14:30",
				CourseCode: "C003782",
				CourseName: "Besturingssystemen",
				CourseType: "Hoorcollege",
				Location:   "Aud 1",
				Professors: []string{"F. Kerckhof"},
			},
		},
	}

	var buf bytes.Buffer
	err := GenerateICS(tt, &buf)
	if err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "SUMMARY:Besturingssystemen") {
		t.Errorf("Expected ICS to contain course summary, got: \n%s", output)
	}

	if !strings.Contains(output, "LOCATION:Aud 1") {
		t.Errorf("Expected ICS to contain location")
	}

	// 20-Oct-2025 13:00 Brussels time is 11:00 UTC.
	if !strings.Contains(output, "DTSTART:20251020T110000Z") {
		t.Errorf("Expected start time string in ICS (should be UTC), got: \n%s", output)
	}

	if !strings.Contains(output, "F. Kerckhof") {
		t.Errorf("Expected professor in the event description")
	}
}

func TestGenerateICSSkipsMalformedSlots(t *testing.T) {
	tt := timetable.Timetable{
		{Date: "20-10-2025", Week: 43}: {
			{TimeSlot: "whenever", CourseName: "Broken"},
		},
	}

	var buf bytes.Buffer
	if err := GenerateICS(tt, &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	if strings.Contains(buf.String(), "Broken") {
		t.Errorf("expected malformed entry to be skipped")
	}
}
