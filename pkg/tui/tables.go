package tui

import (
	"fmt"
	"strings"
	"time"

	"uforactl/pkg/timetable"
	"uforactl/pkg/ufora"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleCaser  = cases.Title(language.English)
)

// RenderCourseTable prints the numbered course list the other commands
// index into.
func RenderCourseTable(courses []ufora.Course, year int) {
	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Your Courses Started in %d", year)))
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-4s %s", "ID", "Course Name")))

	for i, course := range courses {
		fmt.Printf("%s %s\n", accentStyle.Render(fmt.Sprintf("%-4d", i+1)), course.Title)
	}
	fmt.Println()
}

// RenderMaterialsTable prints all modules, their materials and subfolder
// materials in one indented listing.
func RenderMaterialsTable(courseName string, modules []ufora.Module) {
	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Course materials for %s", courseName)))

	for _, module := range modules {
		fmt.Println(accentStyle.Bold(true).Render(module.Name))
		renderMaterialRows(module.Materials, 1)
		for _, sub := range module.Subfolders {
			fmt.Printf("  %s\n", accentStyle.Render(sub.Name))
			renderMaterialRows(sub.Materials, 2)
		}
	}
	fmt.Println()
}

func renderMaterialRows(materials []ufora.Material, indent int) {
	pad := strings.Repeat("  ", indent)
	for _, m := range materials {
		fmt.Printf("%s%-60s %s\n", pad, m.Title, dimStyle.Render(m.Type))
	}
}

// DayDisplay formats a "DD-MM-YYYY" date as "Mon 20/10" for table headers
func DayDisplay(date string) string {
	parsed, err := time.Parse(timetable.DateLayout, date)
	if err != nil {
		return date
	}
	return parsed.Format("Mon 02/01")
}

// RenderTimetableDay prints all course slots of a single day
func RenderTimetableDay(date string, week int, entries []timetable.Entry, compact bool) {
	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Your Schedule for %s (W%d)", DayDisplay(date), week)))
	fmt.Println()
	renderEntryRows(entries, "", compact)
	fmt.Println()
}

// RenderTimetableWeek prints the whole week, one block of rows per day with
// the date shown only on the first row.
func RenderTimetableWeek(week int, days []timetable.Day, compact bool) {
	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Your Schedule for Week %d", week)))
	fmt.Println()

	for _, day := range days {
		renderEntryRows(day.Entries, DayDisplay(day.Date), compact)
	}
	fmt.Println()
}

func renderEntryRows(entries []timetable.Entry, dateLabel string, compact bool) {
	for i, entry := range entries {
		label := ""
		if i == 0 {
			label = dateLabel
		}

		row := fmt.Sprintf("%-11s %-16s %-35s %-14s %-25s",
			accentStyle.Render(label),
			entry.TimeSlot,
			entry.CourseName,
			titleCaser.String(entry.CourseType),
			entry.Location,
		)
		if !compact {
			professors := "—"
			if len(entry.Professors) > 0 {
				professors = strings.Join(entry.Professors, ", ")
			}
			row += " " + dimStyle.Render(professors)
		}
		fmt.Println(row)
	}
}
