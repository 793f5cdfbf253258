// Package config provides configuration management for the reporting tool.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lolaverein/lola-accounting/pkg/pos"
)

// Config represents the application configuration.
type Config struct {
	Export   ExportConfig
	Classify ClassifyConfig
	Debug    bool
}

// ExportConfig represents output-related configuration.
type ExportConfig struct {
	Root string
}

// ClassifyConfig represents the classification rules.
type ClassifyConfig struct {
	// ThresholdMiTi ends the midday-meal span (times strictly before it
	// are MiTi), ThresholdRental ends the café span (times strictly after
	// it are rental).
	ThresholdMiTi   pos.ClockTime
	ThresholdRental pos.ClockTime
	TipMarker       string
	MenuMarker      string
	DefaultOwner    string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	thresholdMiTi, err := parseClockEnv("LOLA_THRESHOLD_MITI", pos.ClockTime{Hour: 15})
	if err != nil {
		return nil, err
	}
	thresholdRental, err := parseClockEnv("LOLA_THRESHOLD_RENTAL", pos.ClockTime{Hour: 18})
	if err != nil {
		return nil, err
	}
	if !thresholdMiTi.Before(thresholdRental) {
		return nil, fmt.Errorf("LOLA_THRESHOLD_MITI (%s) must be before LOLA_THRESHOLD_RENTAL (%s)",
			thresholdMiTi, thresholdRental)
	}

	config := &Config{
		Export: ExportConfig{
			Root: getEnvOrDefault("LOLA_EXPORT_ROOT", "./exports"),
		},
		Classify: ClassifyConfig{
			ThresholdMiTi:   thresholdMiTi,
			ThresholdRental: thresholdRental,
			TipMarker:       getEnvOrDefault("LOLA_TIP_MARKER", "Trinkgeld"),
			MenuMarker:      getEnvOrDefault("LOLA_MENU_MARKER", "Menü"),
			DefaultOwner:    getEnvOrDefault("LOLA_DEFAULT_OWNER", "LoLa"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks that all required fields are set.
func (c *Config) Validate() error {
	var missing []string

	if c.Export.Root == "" {
		missing = append(missing, "export.root")
	}
	if c.Classify.TipMarker == "" {
		missing = append(missing, "classify.tipMarker")
	}
	if c.Classify.MenuMarker == "" {
		missing = append(missing, "classify.menuMarker")
	}
	if c.Classify.DefaultOwner == "" {
		missing = append(missing, "classify.defaultOwner")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseClockEnv parses a HH:MM time of day from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseClockEnv(key string, defaultValue pos.ClockTime) (pos.ClockTime, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := pos.ParseClockTime(value)
	if err != nil {
		return pos.ClockTime{}, fmt.Errorf("invalid time value for %s: %s", key, value)
	}

	return parsed, nil
}
