package timetable

// Key identifies one day of the schedule
type Key struct {
	Date string // "DD-MM-YYYY"
	Week int    // ISO week number from the export
}

// Entry is a single course slot on a day
type Entry struct {
	TimeSlot   string   `json:"time_slot"` // "HH:MM - HH:MM"
	CourseCode string   `json:"course_code"`
	CourseName string   `json:"course_name"`
	CourseType string   `json:"course_type"`
	Location   string   `json:"location"`
	Professors []string `json:"professors"`
}

// Timetable maps days to their ordered course entries. Days without courses
// are never present.
type Timetable map[Key][]Entry
