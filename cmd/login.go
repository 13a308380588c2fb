package cmd

import (
	"fmt"

	"uforactl/pkg/session"
	"uforactl/pkg/tui"

	"github.com/spf13/cobra"
)

// newSession wires the browser automator and its SMS prompt into a session
func newSession() *session.Session {
	return session.New(&session.BrowserAutomator{
		PromptSMSCode: tui.PromptSMSCode,
	})
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Ufora",
	Long:  `Authenticate against the UGent identity provider (password + 2FA) using a headless browser and store the session cookies locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Logging in...")

		s := newSession()
		if err := s.Login(tui.PromptCredentials); err != nil {
			return err
		}

		fmt.Println("✓ Login successful! Cookies saved.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
