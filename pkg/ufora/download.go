package ufora

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
)

// nonDownloadable lists material types that have no file behind them; the
// downloader skips these without counting them as failures
var nonDownloadable = map[string]bool{
	"Assignment":       true,
	"Discussion Topic": true,
}

// unsafeFilename matches characters that cannot appear in filenames
var unsafeFilename = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename replaces filesystem-hostile characters in a material or
// folder title with underscores
func SanitizeFilename(name string) string {
	return unsafeFilename.ReplaceAllString(name, "_")
}

// DownloadFile streams a single file to destPath. Reports success as a bool:
// any transport error or non-OK status is printed and yields false. A failed
// download may leave a partial file behind.
func (c *Client) DownloadFile(courseID, fileID, destPath string) bool {
	downloadURL := fmt.Sprintf("%s/d2l/le/content/%s/topics/files/download/%s/DirectFileTopicDownload",
		baseURL, courseID, fileID)

	resp, err := c.session.Get(downloadURL)
	if err != nil {
		fmt.Printf("Error downloading file: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Error downloading file: status %d\n", resp.StatusCode)
		return false
	}

	out, err := os.Create(destPath)
	if err != nil {
		fmt.Printf("Error downloading file: %v\n", err)
		return false
	}
	defer out.Close()

	buf := make([]byte, 8192)
	if _, err := io.CopyBuffer(out, resp.Body, buf); err != nil {
		fmt.Printf("Error downloading file: %v\n", err)
		return false
	}

	return true
}

// DownloadMaterials downloads each material into dir, skipping types that
// have no file behind them. Every item ticks progress once, skipped ones
// included, so a progress bar sized to len(materials) completes. Returns
// (downloaded, failed) counts; skipped items appear in neither.
func (c *Client) DownloadMaterials(courseID string, materials []Material, dir string, progress func()) (int, int) {
	tick := func() {
		if progress != nil {
			progress()
		}
	}

	downloaded := 0
	failed := 0

	for _, item := range materials {
		if nonDownloadable[item.Type] {
			tick()
			continue
		}

		destPath := filepath.Join(dir, SanitizeFilename(item.Title))
		if c.DownloadFile(courseID, item.ID, destPath) {
			fmt.Printf(" ✓ Saved to %s\n", destPath)
			downloaded++
		} else {
			fmt.Printf(" ✗ Failed to download %s\n", item.Title)
			failed++
		}
		tick()
	}

	return downloaded, failed
}
