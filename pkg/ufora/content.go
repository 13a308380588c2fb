package ufora

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// contentIDPattern pulls the numeric content id out of a material href
	contentIDPattern = regexp.MustCompile(`/viewContent/(\d+)/View`)
	// folderIDPattern pulls the numeric module id out of a tree accordion
	// element id
	folderIDPattern = regexp.MustCompile(`D2L_LE_Content_TreeBrowser_D2L\.LE\.Content\.ContentObject\.ModuleCO-(\d+)`)
)

const treeNodeIDPrefix = "D2L_LE_Content_TreeBrowser_D2L.LE.Content.ContentObject.ModuleCO-"

// d2lBoilerplate is the fixed parameter set the content partial endpoints
// expect alongside their real arguments
var d2lBoilerplate = map[string]string{
	"_d2l_prc$headingLevel":  "2",
	"_d2l_prc$scope":         "",
	"_d2l_prc$hasActiveForm": "false",
	"isXhr":                  "true",
}

// SetTableOfContentsState primes the server-side view state so the content
// page renders the full Table of Contents. Must be called once before
// GetCourseContent; without it the page defaults to a partial view that
// lacks the module tree.
func (c *Client) SetTableOfContentsState(contentURL string) bool {
	params := url.Values{}
	params.Set("identifier", "TOC")
	params.Set("moduleTitle", "Table of Contents")
	for k, v := range d2lBoilerplate {
		params.Set(k, v)
	}

	partialURL := strings.TrimSuffix(contentURL, "Home") + "PartialMainView?" + params.Encode()

	resp, err := c.session.Get(partialURL)
	if err != nil {
		fmt.Printf("Error setting table of contents state: %v\n", err)
		return false
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Failed to set table of contents state: %d\n", resp.StatusCode)
		return false
	}
	return true
}

// moduleSet is an insertion-ordered collection of modules keyed by name.
// Duplicate names collapse last-write-wins; the two extraction passes both
// write through here so the collision policy is explicit.
type moduleSet struct {
	order  []string
	byName map[string]*Module
}

func newModuleSet() *moduleSet {
	return &moduleSet{byName: make(map[string]*Module)}
}

// upsert returns the module for name, creating it in insertion order
func (ms *moduleSet) upsert(name string) *Module {
	if m, ok := ms.byName[name]; ok {
		return m
	}
	m := &Module{Name: name}
	ms.byName[name] = m
	ms.order = append(ms.order, name)
	return m
}

func (ms *moduleSet) list() []Module {
	modules := make([]Module, 0, len(ms.order))
	for _, name := range ms.order {
		modules = append(modules, *ms.byName[name])
	}
	return modules
}

// GetCourseContent fetches a course's content page and recovers the module
// hierarchy: top-level modules with their materials, plus one level of
// subfolders discovered from the navigation tree. Failures degrade to an
// empty result with a printed warning.
func (c *Client) GetCourseContent(contentURL string) []Module {
	doc, err := c.fetchDocument(contentURL)
	if err != nil {
		fmt.Printf("Error fetching course content: %v\n", err)
		return nil
	}

	modules := newModuleSet()

	// Pass 1: root-level modules and their materials from the TOC listing
	toc := doc.Find("ul.d2l-datalist.vui-list").First()
	if toc.Length() == 0 {
		fmt.Println("Table of contents not found on the course page")
		return nil
	}

	rootItems := toc.Find("li.d2l-datalist-item.d2l-datalist-newitem.d2l-datalist-item-hide-separators.d2l-datalist-simpleitem")
	if rootItems.Length() == 0 {
		fmt.Println("Modules not found in the table of contents")
		return nil
	}

	rootItems.Each(func(i int, item *goquery.Selection) {
		name := strings.TrimSpace(item.Find("h2").First().Text())
		if name == "" {
			return
		}
		materials := extractMaterials(item)
		if len(materials) == 0 {
			return
		}
		m := modules.upsert(name)
		m.Materials = materials
	})

	// Pass 2: subfolders from the navigation tree. Only non-root accordion
	// items count; their parent is the nearest enclosing root item, which
	// caps the recovered hierarchy at a single nesting level.
	doc.Find("li.d2l-le-TreeAccordionItem").Each(func(i int, item *goquery.Selection) {
		id, ok := item.Attr("id")
		if !ok || !strings.HasPrefix(id, treeNodeIDPrefix) {
			return
		}
		if item.HasClass("d2l-le-TreeAccordionItem-Root") {
			return
		}

		parent := item.ParentsFiltered("li.d2l-le-TreeAccordionItem.d2l-le-TreeAccordionItem-Root").First()
		if parent.Length() == 0 {
			return
		}
		parentName := strings.TrimSpace(parent.Find("div.d2l-textblock").First().Text())
		if parentName == "" {
			return
		}

		folderName := strings.TrimSpace(item.Find("div.d2l-textblock").First().Text())
		if folderName == "" || strings.Contains(strings.ToLower(folderName), "module:") {
			return
		}

		idMatch := folderIDPattern.FindStringSubmatch(id)
		if idMatch == nil {
			return
		}
		folderID := idMatch[1]

		materials, err := c.fetchSubfolderMaterials(contentURL, folderID)
		if err != nil {
			fmt.Printf("Warning: could not fetch contents for subfolder '%s': %v\n", folderName, err)
			return
		}

		m := modules.upsert(parentName)
		m.Subfolders = append(m.Subfolders, Subfolder{Name: folderName, Materials: materials})
	})

	return modules.list()
}

// fetchSubfolderMaterials navigates the server's module panel to a subfolder
// and extracts its materials. The details call mutates session-scoped UI
// state; its own response is not the content, only the subsequent re-fetch
// of the content page reflects the selected subfolder.
func (c *Client) fetchSubfolderMaterials(contentURL, folderID string) ([]Material, error) {
	params := url.Values{}
	params.Set("mId", folderID)
	params.Set("writeHistoryEntry", "0")
	for k, v := range d2lBoilerplate {
		params.Set(k, v)
	}

	detailsURL := strings.TrimSuffix(contentURL, "Home") + "ModuleDetailsPartial?" + params.Encode()
	resp, err := c.session.Get(detailsURL)
	if err != nil {
		return nil, err
	}
	drain(resp)

	doc, err := c.fetchDocument(contentURL)
	if err != nil {
		return nil, err
	}

	return extractMaterials(doc.Selection), nil
}

func (c *Client) fetchDocument(pageURL string) (*goquery.Document, error) {
	resp, err := c.session.Get(pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return goquery.NewDocumentFromReader(resp.Body)
}

// extractMaterials pulls the material rows out of a module listing or a full
// page. Rows without a content link are skipped.
func extractMaterials(sel *goquery.Selection) []Material {
	var materials []Material

	sel.Find("li.d2l-datalist-item").Each(func(i int, item *goquery.Selection) {
		link := item.Find(`a.d2l-link[href*="/d2l/le/content/"]`).First()
		if link.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		materialType := "Unknown"
		if block := item.Find("div.d2l-textblock.d2l-body-small").First(); block.Length() > 0 {
			materialType = strings.TrimSpace(block.Text())
		}

		var id string
		if m := contentIDPattern.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		materials = append(materials, Material{
			Title: strings.TrimSpace(link.Text()),
			URL:   absoluteURL(href),
			Type:  materialType,
			ID:    id,
		})
	})

	return materials
}

// absoluteURL resolves a scraped href against the portal base
func absoluteURL(href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
