package tui

import (
	"fmt"

	"uforactl/pkg/config"
	"uforactl/pkg/session"

	"github.com/charmbracelet/huh"
)

// PromptCredentials asks for the UGent email and password, prefilling the
// saved email and 2FA preference from the config.
func PromptCredentials() (session.Credentials, error) {
	cfg, _ := config.Load()

	var creds session.Credentials
	if cfg != nil {
		creds.Email = cfg.Email
		creds.TwoFAMethod = cfg.TwoFAMethod
	}
	if creds.TwoFAMethod == "" {
		creds.TwoFAMethod = "app"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("UGent email").
				Value(&creds.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return session.Credentials{}, err
	}

	return creds, nil
}

// PromptSMSCode asks for the 2FA code received via SMS
func PromptSMSCode() (string, error) {
	var code string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter the 2FA code from SMS").
				Value(&code),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	if code == "" {
		return "", fmt.Errorf("no code entered")
	}

	return code, nil
}
