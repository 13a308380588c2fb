package cmd

import (
	"fmt"
	"strconv"

	"uforactl/pkg/config"
	"uforactl/pkg/tui"
	"uforactl/pkg/ufora"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

// lookupCachedCourse resolves a 1-based index from the `courses` listing
func lookupCachedCourse(arg string) (ufora.Course, error) {
	cfg, err := config.Load()
	if err != nil {
		return ufora.Course{}, err
	}
	if len(cfg.Courses) == 0 {
		return ufora.Course{}, fmt.Errorf("no cached course list; run `uforactl courses` first")
	}

	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(cfg.Courses) {
		return ufora.Course{}, fmt.Errorf("invalid course ID %q: expected a number between 1 and %d", arg, len(cfg.Courses))
	}

	return cfg.Courses[idx-1], nil
}

// fetchCourseContent primes the table-of-contents view state and extracts
// the module hierarchy
func fetchCourseContent(client *ufora.Client, course ufora.Course) []ufora.Module {
	var modules []ufora.Module

	_ = spinner.New().
		Title(fmt.Sprintf("Fetching materials for %s...", course.Name)).
		Action(func() {
			if !client.SetTableOfContentsState(course.ContentURL) {
				return
			}
			modules = client.GetCourseContent(course.ContentURL)
		}).
		Run()

	return modules
}

var materialsCmd = &cobra.Command{
	Use:   "materials <course_id>",
	Short: "List materials for a course",
	Long:  `List all modules, subfolders and materials of a course, by its ID from the 'courses' command.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		course, err := lookupCachedCourse(args[0])
		if err != nil {
			return err
		}

		s := newSession()
		if err := s.EnsureAuthenticated(tui.PromptCredentials); err != nil {
			return err
		}

		modules := fetchCourseContent(ufora.NewClient(s), course)
		if len(modules) == 0 {
			fmt.Println("No materials found or unable to parse content.")
			return nil
		}

		tui.RenderMaterialsTable(course.Name, modules)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(materialsCmd)
}
