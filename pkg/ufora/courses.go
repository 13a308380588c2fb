package ufora

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"uforactl/pkg/session"
)

// baseURL is a variable so tests can point the client at a local server
var baseURL = "https://ufora.ugent.be"

// apiVersions are tried newest-first until the enrollment endpoint answers
var apiVersions = []string{"1.28", "1.9", "1.8", "1.4", "1.0"}

// orgUnitTypeCourseOffering is the D2L org unit type id for a course offering
const orgUnitTypeCourseOffering = 3

// Client talks to the Brightspace enrollment API and content pages through
// an authenticated session
type Client struct {
	session *session.Session
}

// NewClient wraps an authenticated session
func NewClient(s *session.Session) *Client {
	return &Client{session: s}
}

// enrollmentPage mirrors one page of the myenrollments response
type enrollmentPage struct {
	Items []struct {
		OrgUnit struct {
			ID   int64  `json:"Id"`
			Name string `json:"Name"`
			Code string `json:"Code"`
			Type struct {
				ID int `json:"Id"`
			} `json:"Type"`
		} `json:"OrgUnit"`
		Access struct {
			IsActive  bool   `json:"IsActive"`
			StartDate string `json:"StartDate"`
		} `json:"Access"`
	} `json:"Items"`
	PagingInfo struct {
		HasMoreItems bool   `json:"HasMoreItems"`
		Bookmark     string `json:"Bookmark"`
	} `json:"PagingInfo"`
}

// GetCourses fetches all active course offerings the user is enrolled in,
// following the API's bookmark pagination. Any failure degrades to an empty
// list with a printed warning; callers treat that as "nothing found".
func (c *Client) GetCourses() []Course {
	var apiURL string
	var resp *http.Response

	for _, version := range apiVersions {
		apiURL = fmt.Sprintf("%s/d2l/api/lp/%s/enrollments/myenrollments/", baseURL, version)
		r, err := c.session.Get(apiURL)
		if err != nil {
			fmt.Printf("Error fetching courses: %v\n", err)
			return nil
		}
		if r.StatusCode == http.StatusOK {
			resp = r
			break
		}
		r.Body.Close()
	}

	if resp == nil {
		fmt.Println("Enrollment API did not answer on any known version")
		return nil
	}

	var courses []Course
	for resp != nil {
		var page enrollmentPage
		err := json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			fmt.Printf("Error decoding enrollments: %v\n", err)
			return nil
		}

		for _, item := range page.Items {
			if item.OrgUnit.Type.ID != orgUnitTypeCourseOffering || !item.Access.IsActive {
				continue
			}

			id := strconv.FormatInt(item.OrgUnit.ID, 10)
			name := normalizeName(item.OrgUnit.Name)

			courses = append(courses, Course{
				ID:         id,
				Code:       item.OrgUnit.Code,
				Name:       name,
				Title:      courseTitle(item.OrgUnit.Code, name),
				URL:        fmt.Sprintf("%s/d2l/home/%s", baseURL, id),
				ContentURL: fmt.Sprintf("%s/d2l/le/content/%s/Home", baseURL, id),
				StartDate:  item.Access.StartDate,
			})
		}

		resp = nil
		if page.PagingInfo.HasMoreItems && page.PagingInfo.Bookmark != "" {
			next, err := c.session.Get(fmt.Sprintf("%s?Bookmark=%s", apiURL, page.PagingInfo.Bookmark))
			if err != nil {
				fmt.Printf("Error fetching next course page: %v\n", err)
				return courses
			}
			resp = next
		}
	}

	return courses
}

// normalizeName strips the faculty prefix the API prepends to course names,
// e.g. "Group A - Systems Design" becomes "Systems Design".
func normalizeName(name string) string {
	if _, rest, found := strings.Cut(name, " - "); found {
		return rest
	}
	return name
}

// courseTitle builds the display title: "code - name" when a distinct code
// exists, otherwise just the name.
func courseTitle(code, name string) string {
	if code != "" && code != name {
		return fmt.Sprintf("%s - %s", code, name)
	}
	return name
}

// FilterByYear keeps courses whose enrollment start date falls in the given
// year. Unparsable or missing dates are dropped.
func FilterByYear(courses []Course, year int) []Course {
	var filtered []Course
	for _, course := range courses {
		if course.StartDate == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, course.StartDate)
		if err != nil {
			continue
		}
		if start.Year() == year {
			filtered = append(filtered, course)
		}
	}
	return filtered
}

// drain is used for responses whose body we must consume but don't read
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
