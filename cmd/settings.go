package cmd

import (
	"fmt"
	"os"
	"strings"

	"uforactl/pkg/config"

	"github.com/spf13/cobra"
)

var directoryCmd = &cobra.Command{
	Use:   "directory <path>",
	Short: "Set the base directory for course materials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := expandPath(args[0])
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Printf("Directory doesn't exist. Creating: %s\n", path)
			if err := os.MkdirAll(path, 0755); err != nil {
				return fmt.Errorf("could not create directory: %w", err)
			}
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.BaseDirectory = path
		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Printf("✓ Base directory set to: %s\n", path)
		return nil
	},
}

var emailCmd = &cobra.Command{
	Use:   "email <address>",
	Short: "Set your UGent email address to be used in login",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.Email = args[0]
		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Printf("✓ UGent email set to: %s\n", args[0])
		return nil
	},
}

var twofaCmd = &cobra.Command{
	Use:   "twofa <app|sms>",
	Short: "Set your 2FA method",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		method := strings.ToLower(args[0])
		if method != "app" && method != "sms" {
			return fmt.Errorf("invalid 2FA method %q: must be 'app' or 'sms'", args[0])
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.TwoFAMethod = method
		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Printf("✓ 2FA method set to: %s\n", method)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(directoryCmd)
	rootCmd.AddCommand(emailCmd)
	rootCmd.AddCommand(twofaCmd)
}
