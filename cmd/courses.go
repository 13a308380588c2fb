package cmd

import (
	"fmt"
	"time"

	"uforactl/pkg/config"
	"uforactl/pkg/tui"
	"uforactl/pkg/ufora"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List your courses that started this year",
	Long:  `Fetch your active course enrollments from Ufora and cache the list locally. The other commands refer to courses by their position in this list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		if err := s.EnsureAuthenticated(tui.PromptCredentials); err != nil {
			return err
		}

		client := ufora.NewClient(s)

		var courses []ufora.Course
		_ = spinner.New().
			Title("Fetching your enrollments from Ufora...").
			Action(func() {
				courses = client.GetCourses()
			}).
			Run()

		if len(courses) == 0 {
			fmt.Println("No courses found.")
			return nil
		}

		currentYear := time.Now().Year()
		filtered := ufora.FilterByYear(courses, currentYear)
		if len(filtered) == 0 {
			fmt.Printf("No courses started in %d found.\n", currentYear)
			return nil
		}

		tui.RenderCourseTable(filtered, currentYear)

		// Cache the list so materials/download can index into it
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.Courses = filtered
		return config.Save(cfg)
	},
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}
