package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"uforactl/pkg/ufora"

	"github.com/charmbracelet/huh"
)

// RunDownloadTUI walks the user through picking a module and then a file,
// subfolder or everything, and downloads the selection into targetDir.
// When useBase is set, subfolder contents land in their own directory.
func RunDownloadTUI(client *ufora.Client, course ufora.Course, modules []ufora.Module, targetDir string, useBase bool) error {
	module, err := pickModule(course, modules)
	if err != nil {
		return err
	}

	const (
		choiceAll    = "all"
		choiceFile   = "file:"
		choiceFolder = "folder:"
	)

	options := []huh.Option[string]{
		huh.NewOption("⬇ Download everything in this module", choiceAll),
	}
	for i, m := range module.Materials {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", m.Title, m.Type), fmt.Sprintf("%s%d", choiceFile, i)))
	}
	for i, sub := range module.Subfolders {
		options = append(options, huh.NewOption(fmt.Sprintf("📁 %s", sub.Name), fmt.Sprintf("%s%d", choiceFolder, i)))
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Available files in %s", module.Name)).
				Options(options...).
				Value(&choice),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	switch {
	case choice == choiceAll:
		return downloadWholeModule(client, course, module, targetDir)

	case strings.HasPrefix(choice, choiceFile):
		idx, err := strconv.Atoi(strings.TrimPrefix(choice, choiceFile))
		if err != nil {
			return err
		}
		return downloadBatch(client, course.ID, []ufora.Material{module.Materials[idx]}, targetDir)

	default:
		idx, err := strconv.Atoi(strings.TrimPrefix(choice, choiceFolder))
		if err != nil {
			return err
		}
		return downloadFromSubfolder(client, course, module.Subfolders[idx], targetDir, useBase)
	}
}

func pickModule(course ufora.Course, modules []ufora.Module) (ufora.Module, error) {
	var options []huh.Option[int]
	for i, module := range modules {
		options = append(options, huh.NewOption(module.Name, i))
	}

	var idx int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("Select a module of %s", course.Name)).
				Options(options...).
				Value(&idx),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return ufora.Module{}, err
	}

	return modules[idx], nil
}

// downloadWholeModule downloads the module's own materials and every
// subfolder, the latter into their own directories.
func downloadWholeModule(client *ufora.Client, course ufora.Course, module ufora.Module, targetDir string) error {
	total := len(module.Materials)
	for _, sub := range module.Subfolders {
		total += len(sub.Materials)
	}

	progress := newProgress(total)

	downloaded, failed := client.DownloadMaterials(course.ID, module.Materials, targetDir, progress)

	for _, sub := range module.Subfolders {
		subDir := filepath.Join(targetDir, ufora.SanitizeFilename(sub.Name))
		if err := os.MkdirAll(subDir, 0755); err != nil {
			return fmt.Errorf("could not create subfolder directory: %w", err)
		}

		fmt.Println(accentStyle.Render(fmt.Sprintf("Downloading subfolder: %s", sub.Name)))
		if allNonDownloadable(sub.Materials) {
			fmt.Println(warnStyle.Render("No downloadable content in this folder"))
		}
		d, f := client.DownloadMaterials(course.ID, sub.Materials, subDir, progress)
		downloaded += d
		failed += f
	}

	printSummary(downloaded, failed)
	return nil
}

// downloadFromSubfolder lets the user pick a single file from the subfolder
// or take all of it.
func downloadFromSubfolder(client *ufora.Client, course ufora.Course, sub ufora.Subfolder, targetDir string, useBase bool) error {
	options := []huh.Option[int]{
		huh.NewOption("⬇ Download everything in this folder", -1),
	}
	for i, m := range sub.Materials {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", m.Title, m.Type), i))
	}

	var idx int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("Available files in %s", sub.Name)).
				Options(options...).
				Value(&idx),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	toDownload := sub.Materials
	if idx >= 0 {
		toDownload = []ufora.Material{sub.Materials[idx]}
	}

	// Only nest into a named folder when downloading to the configured base
	dir := targetDir
	if useBase {
		dir = filepath.Join(targetDir, ufora.SanitizeFilename(sub.Name))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create download directory: %w", err)
	}

	if allNonDownloadable(toDownload) {
		fmt.Println(warnStyle.Render("No downloadable content in this folder"))
	}

	return downloadBatch(client, course.ID, toDownload, dir)
}

func downloadBatch(client *ufora.Client, courseID string, materials []ufora.Material, dir string) error {
	progress := newProgress(len(materials))
	downloaded, failed := client.DownloadMaterials(courseID, materials, dir, progress)
	printSummary(downloaded, failed)
	return nil
}

// newProgress returns a tick callback that prints a running counter
func newProgress(total int) func() {
	done := 0
	return func() {
		done++
		fmt.Printf("%s\n", dimStyle.Render(fmt.Sprintf("[%d/%d]", done, total)))
	}
}

func printSummary(downloaded, failed int) {
	if failed > 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("✗ %d downloads failed", failed)))
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Download complete! (%d files)", downloaded)))
	fmt.Println()
}

func allNonDownloadable(materials []ufora.Material) bool {
	for _, m := range materials {
		if m.Type != "Assignment" && m.Type != "Discussion Topic" {
			return false
		}
	}
	return len(materials) > 0
}
