package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Fetch defaults
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultUserAgent  = "pubmanifest-go/1.0"

	// TOC defaults
	DefaultFetchTOC = true

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pubmanifest"
	}
	return filepath.Join(home, ".pubmanifest")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:    DefaultTimeout,
			MaxRetries: DefaultMaxRetries,
			UserAgent:  DefaultUserAgent,
		},
		Defaults: DefaultsConfig{
			Language:  "",
			Direction: "",
		},
		TOC: TOCConfig{
			Fetch: DefaultFetchTOC,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
