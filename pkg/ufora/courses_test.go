package ufora

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"uforactl/pkg/session"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	originalBaseURL := baseURL
	baseURL = serverURL
	t.Cleanup(func() { baseURL = originalBaseURL })

	return NewClient(session.New(nil))
}

func TestCourseTitleDerivation(t *testing.T) {
	tests := []struct {
		rawName   string
		code      string
		wantName  string
		wantTitle string
	}{
		// Faculty prefix is stripped from the raw name
		{"Group A - Systems Design", "SYS101", "Systems Design", "SYS101 - Systems Design"},
		// No separator: name passes through untouched
		{"Systems Design", "SYS101", "Systems Design", "SYS101 - Systems Design"},
		// Code equal to name: title is just the name
		{"Systems Design", "Systems Design", "Systems Design", "Systems Design"},
		// No code at all
		{"Group A - Systems Design", "", "Systems Design", "Systems Design"},
		// Only the first separator splits
		{"Group A - Systems - Design", "C1", "Systems - Design", "C1 - Systems - Design"},
	}

	for _, tt := range tests {
		name := normalizeName(tt.rawName)
		if name != tt.wantName {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.rawName, name, tt.wantName)
		}
		if title := courseTitle(tt.code, name); title != tt.wantTitle {
			t.Errorf("courseTitle(%q, %q) = %q, want %q", tt.code, name, title, tt.wantTitle)
		}
	}
}

func TestGetCoursesPagination(t *testing.T) {
	var requests []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.String())

		if r.URL.Query().Get("Bookmark") == "page2" {
			// Final page: no more items
			fmt.Fprint(w, `{
				"Items": [
					{"OrgUnit": {"Id": 222, "Name": "FEA - Thermodynamics", "Code": "E002", "Type": {"Id": 3}},
					 "Access": {"IsActive": true, "StartDate": "2026-02-01T00:00:00.000Z"}}
				],
				"PagingInfo": {"HasMoreItems": false, "Bookmark": ""}
			}`)
			return
		}

		// First page: one active offering, one inactive, one non-offering, and a bookmark
		fmt.Fprint(w, `{
			"Items": [
				{"OrgUnit": {"Id": 111, "Name": "FEA - Systems Design", "Code": "E001", "Type": {"Id": 3}},
				 "Access": {"IsActive": true, "StartDate": "2026-09-01T00:00:00.000Z"}},
				{"OrgUnit": {"Id": 998, "Name": "Old Course", "Code": "E000", "Type": {"Id": 3}},
				 "Access": {"IsActive": false, "StartDate": "2020-09-01T00:00:00.000Z"}},
				{"OrgUnit": {"Id": 999, "Name": "Faculty of Engineering", "Code": "FEA", "Type": {"Id": 7}},
				 "Access": {"IsActive": true, "StartDate": "2020-09-01T00:00:00.000Z"}}
			],
			"PagingInfo": {"HasMoreItems": true, "Bookmark": "page2"}
		}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	courses := client.GetCourses()

	// One request per page, nothing extra after the final page
	if len(requests) != 2 {
		t.Fatalf("expected exactly 2 requests, got %d: %v", len(requests), requests)
	}

	if len(courses) != 2 {
		t.Fatalf("expected 2 active course offerings, got %d: %+v", len(courses), courses)
	}

	first := courses[0]
	if first.ID != "111" {
		t.Errorf("expected id 111, got %s", first.ID)
	}
	if first.Name != "Systems Design" {
		t.Errorf("expected stripped name 'Systems Design', got %q", first.Name)
	}
	if first.Title != "E001 - Systems Design" {
		t.Errorf("expected title 'E001 - Systems Design', got %q", first.Title)
	}
	if first.ContentURL != server.URL+"/d2l/le/content/111/Home" {
		t.Errorf("unexpected content url: %s", first.ContentURL)
	}

	if courses[1].ID != "222" {
		t.Errorf("expected second page course 222, got %s", courses[1].ID)
	}
}

func TestGetCoursesVersionFallback(t *testing.T) {
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		// Only the oldest API version answers
		if r.URL.Path != "/d2l/api/lp/1.0/enrollments/myenrollments/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{
			"Items": [
				{"OrgUnit": {"Id": 333, "Name": "Databases", "Code": "E003", "Type": {"Id": 3}},
				 "Access": {"IsActive": true, "StartDate": "2026-09-01T00:00:00.000Z"}}
			],
			"PagingInfo": {"HasMoreItems": false}
		}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	courses := client.GetCourses()

	if len(paths) != len(apiVersions) {
		t.Errorf("expected every version to be probed, got %v", paths)
	}
	if len(courses) != 1 || courses[0].ID != "333" {
		t.Fatalf("expected the fallback version to yield the course, got %+v", courses)
	}
}

func TestGetCoursesAllVersionsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if courses := client.GetCourses(); len(courses) != 0 {
		t.Errorf("expected empty result when no API version answers, got %+v", courses)
	}
}

func TestFilterByYear(t *testing.T) {
	courses := []Course{
		{ID: "1", StartDate: "2026-09-01T00:00:00.000Z"},
		{ID: "2", StartDate: "2025-09-01T00:00:00.000Z"},
		{ID: "3", StartDate: "not-a-date"},
		{ID: "4", StartDate: ""},
	}

	filtered := FilterByYear(courses, 2026)
	if len(filtered) != 1 || filtered[0].ID != "1" {
		t.Errorf("expected only course 1 for 2026, got %+v", filtered)
	}
}
