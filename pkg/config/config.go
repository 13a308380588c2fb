package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"uforactl/pkg/ufora"
)

// Config holds all user-defined persistent settings
type Config struct {
	Email         string         `json:"email,omitempty"`
	TwoFAMethod   string         `json:"2fa_method,omitempty"` // "app" or "sms"
	BaseDirectory string         `json:"base_directory,omitempty"`
	AccentColor   string         `json:"accent_color,omitempty"`
	Courses       []ufora.Course `json:"courses,omitempty"` // cached result of the last `courses` run
}

// Dir returns the config directory (~/.config/uforactl), creating it if needed.
// The cookie store and the imported timetable live here too.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".config", "uforactl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}
	return dir, nil
}

func getConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just return an empty default configuration
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
