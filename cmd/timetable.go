package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"uforactl/pkg/config"
	"uforactl/pkg/exporter"
	"uforactl/pkg/timetable"
	"uforactl/pkg/tui"

	"github.com/spf13/cobra"
)

func timetablePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "timetable.json"), nil
}

var importTimetableCmd = &cobra.Command{
	Use:   "importtimetable <file>",
	Short: "Import a TimeEdit timetable export",
	Long:  `Parse a TimeEdit plain-text timetable export and save it as JSON for the 'timetable' command.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Parsing timetable file...")

		parsed, err := timetable.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("could not parse timetable file: %w", err)
		}
		if len(parsed) == 0 {
			return fmt.Errorf("no courses found in the file")
		}

		path, err := timetablePath()
		if err != nil {
			return err
		}
		if err := timetable.Save(parsed, path); err != nil {
			return err
		}

		fmt.Println("✓ Timetable imported successfully!")
		fmt.Printf("Saved %d days with courses to %s\n", len(parsed), path)
		return nil
	},
}

var timetableCmd = &cobra.Command{
	Use:   "timetable",
	Short: "Display your timetable for today",
	Long:  `Display the imported timetable for today, or the whole current week with --week.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetBool("week")
		compact, _ := cmd.Flags().GetBool("compact")

		data, err := loadTimetable()
		if err != nil {
			return err
		}

		today := time.Now().Format(timetable.DateLayout)
		todayCourses, weekNum, found := timetable.ForDate(data, today)
		if !found {
			fmt.Printf("No courses scheduled for today (%s)\n", today)
			return nil
		}

		if week {
			days := timetable.DaysInWeek(data, weekNum)
			tui.RenderTimetableWeek(weekNum, days, compact)
			return nil
		}

		tui.RenderTimetableDay(today, weekNum, todayCourses, compact)
		return nil
	},
}

var timetableExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the imported timetable to an ICS file",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		data, err := loadTimetable()
		if err != nil {
			return err
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(data, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d days to %s\n", len(data), output)
		return nil
	},
}

func loadTimetable() (timetable.Timetable, error) {
	path, err := timetablePath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no timetable found; import one first with `uforactl importtimetable <file>`")
	}
	return timetable.Load(path)
}

func init() {
	rootCmd.AddCommand(importTimetableCmd)
	rootCmd.AddCommand(timetableCmd)
	timetableCmd.AddCommand(timetableExportCmd)

	timetableCmd.Flags().BoolP("week", "w", false, "Show the entire week instead of just today")
	timetableCmd.Flags().BoolP("compact", "c", false, "Hide the professors column for a compact view")
	timetableExportCmd.Flags().StringP("output", "o", "timetable.ics", "Output file path")
}
