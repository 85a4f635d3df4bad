// Package config loads and validates application configuration.
// Values come from environment variables with the ASSISTANT_ prefix, read
// through viper so defaults and overrides live in one place.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the assistant.
type Config struct {
	// File is the path of the persisted address book.
	// Defaults to $HOME/.assistant/addressbook.json.
	// Set ASSISTANT_FILE to override.
	File string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// BirthdayDays is the default window for the birthdays command.
	// Defaults to 7; must not be negative.
	BirthdayDays int
}

// Load reads configuration from the environment and returns a Config.
// Returns an error when a value fails validation.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ASSISTANT")
	v.AutomaticEnv()

	v.SetDefault("file", defaultFile())
	v.SetDefault("log_level", "info")
	v.SetDefault("birthday_days", 7)

	cfg := Config{
		File:         v.GetString("file"),
		LogLevel:     v.GetString("log_level"),
		BirthdayDays: v.GetInt("birthday_days"),
	}

	if cfg.File == "" {
		return Config{}, fmt.Errorf("config.Load: ASSISTANT_FILE must not be empty")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("config.Load: invalid ASSISTANT_LOG_LEVEL %q", cfg.LogLevel)
	}
	if cfg.BirthdayDays < 0 {
		return Config{}, fmt.Errorf("config.Load: ASSISTANT_BIRTHDAY_DAYS must not be negative")
	}
	return cfg, nil
}

// defaultFile returns the address-book path under the user's home directory,
// falling back to the working directory when home cannot be resolved.
func defaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "addressbook.json"
	}
	return filepath.Join(home, ".assistant", "addressbook.json")
}
