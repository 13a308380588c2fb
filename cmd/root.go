package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "uforactl",
	Short: "A CLI for UGent course materials on Ufora",
	Long: `uforactl is an application for students at Ghent University
to browse and download their Ufora course materials and check their
TimeEdit timetable from the command line.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
