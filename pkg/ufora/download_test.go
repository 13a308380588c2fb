package ufora

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/d2l/le/content/123456/topics/files/download/111/DirectFileTopicDownload" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("file contents"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	dest := filepath.Join(t.TempDir(), "slides.pdf")

	if !client.DownloadFile("123456", "111", dest) {
		t.Fatalf("expected download to succeed")
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("could not read downloaded file: %v", err)
	}
	if string(data) != "file contents" {
		t.Errorf("unexpected file contents: %q", data)
	}

	// Unknown file id yields false, not an error
	if client.DownloadFile("123456", "999", filepath.Join(t.TempDir(), "missing.pdf")) {
		t.Errorf("expected download of unknown file to report false")
	}
}

func TestDownloadMaterialsSkipsNonDownloadable(t *testing.T) {
	downloadRequests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downloadRequests++
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	materials := []Material{
		{Title: "Homework 1", Type: "Assignment", ID: "112"},
		{Title: "Slides week 1", Type: "File", ID: "111"},
		{Title: "Questions?", Type: "Discussion Topic", ID: "113"},
	}

	ticks := 0
	downloaded, failed := client.DownloadMaterials("123456", materials, t.TempDir(), func() { ticks++ })

	if downloadRequests != 1 {
		t.Errorf("expected exactly 1 download request for the File item, got %d", downloadRequests)
	}
	if downloaded != 1 || failed != 0 {
		t.Errorf("expected downloaded=1 failed=0, got downloaded=%d failed=%d", downloaded, failed)
	}
	// Skipped items tick progress too
	if ticks != 3 {
		t.Errorf("expected 3 progress ticks (one per item), got %d", ticks)
	}
}

func TestDownloadMaterialsCountsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	downloaded, failed := client.DownloadMaterials("123456",
		[]Material{{Title: "Slides", Type: "File", ID: "111"}}, t.TempDir(), nil)

	if downloaded != 0 || failed != 1 {
		t.Errorf("expected downloaded=0 failed=1, got downloaded=%d failed=%d", downloaded, failed)
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := SanitizeFilename(`Week 1: "Intro" <A/B>?`)
	want := "Week 1_ _Intro_ _A_B__"
	if got != want {
		t.Errorf("SanitizeFilename = %q, want %q", got, want)
	}
}
