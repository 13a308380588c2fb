package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"uforactl/pkg/config"
	"uforactl/pkg/tui"
	"uforactl/pkg/ufora"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <course_id>",
	Short: "Download course materials",
	Long:  `Interactively pick a module and download its files, by course ID from the 'courses' command. Files go to the current directory unless --dir or --base is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		course, err := lookupCachedCourse(args[0])
		if err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("dir")
		useBase, _ := cmd.Flags().GetBool("base")

		targetDir, err := resolveTargetDir(course, dir, useBase)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(targetDir, 0755); err != nil {
			return fmt.Errorf("could not create target directory: %w", err)
		}

		s := newSession()
		if err := s.EnsureAuthenticated(tui.PromptCredentials); err != nil {
			return err
		}

		client := ufora.NewClient(s)
		modules := fetchCourseContent(client, course)
		if len(modules) == 0 {
			fmt.Println("No materials found")
			return nil
		}

		return tui.RunDownloadTUI(client, course, modules, targetDir, useBase)
	},
}

// resolveTargetDir picks the download destination: an explicit --dir wins,
// --base nests under the configured base directory per course, the default
// is the current working directory.
func resolveTargetDir(course ufora.Course, dir string, useBase bool) (string, error) {
	if dir != "" {
		return expandPath(dir)
	}
	if useBase {
		cfg, err := config.Load()
		if err != nil {
			return "", err
		}
		base := cfg.BaseDirectory
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, "uni")
		}
		return filepath.Join(base, ufora.SanitizeFilename(course.Name)), nil
	}
	return os.Getwd()
}

// expandPath resolves ~ and makes the path absolute
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringP("dir", "d", "", "Target directory (relative or absolute path)")
	downloadCmd.Flags().BoolP("base", "b", false, "Download to the configured base directory")
}
