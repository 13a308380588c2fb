package ufora

// Course represents a single enrolled course offering
type Course struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	ContentURL string `json:"content_url"`
	StartDate  string `json:"start"` // RFC3339 string as returned by the enrollment API
}

// Module is a top-level grouping on a course content page
type Module struct {
	Name       string      `json:"name"`
	Materials  []Material  `json:"materials"`
	Subfolders []Subfolder `json:"subfolders,omitempty"`
}

// Subfolder is the single supported nesting level below a module
type Subfolder struct {
	Name      string     `json:"name"`
	Materials []Material `json:"materials"`
}

// Material is one content item (file, assignment, discussion, ...) in a module
type Material struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"` // numeric content id, empty when the link has none
}
