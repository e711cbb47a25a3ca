// Package config reads the settings of a test run from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvFile is loaded if it exists and no other file was specified.
const DefaultEnvFile = ".env"

// Config holds the settings that can come from the environment. Command-line flags override
// them.
type Config struct {
	APIBaseURL        string        `envconfig:"API_BASE_URL" default:"https://reqres.in"`
	PageURL           string        `envconfig:"PAGE_URL"`
	APIKey            string        `envconfig:"API_KEY"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	NavigationTimeout time.Duration `envconfig:"NAVIGATION_TIMEOUT" default:"30s"`
	HarnessHost       string        `envconfig:"HARNESS_HOST" default:"localhost"`
	HarnessPort       int           `envconfig:"HARNESS_PORT" default:"8111"`
}

// Load reads envFile into the process environment and then parses the environment. Variables
// that are already set are not overridden by the file. An empty envFile means DefaultEnvFile,
// which is optional; any other file must exist.
func Load(envFile string) (Config, error) {
	var cfg Config
	if envFile == "" {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.PageURL == "" {
		cfg.PageURL = cfg.APIBaseURL
	}
	return cfg, nil
}
