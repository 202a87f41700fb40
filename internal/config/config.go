package config

import (
	"fmt"
	"time"

	"github.com/quantmind-br/pubmanifest-go/internal/utils"
)

// Config represents the application configuration
type Config struct {
	Fetch    FetchConfig    `mapstructure:"fetch" yaml:"fetch"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	TOC      TOCConfig      `mapstructure:"toc" yaml:"toc"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// FetchConfig contains HTTP client settings
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// DefaultsConfig contains the contextual defaults applied to manifests
// that do not declare a language or base direction.
type DefaultsConfig struct {
	Language  string `mapstructure:"language" yaml:"language"`
	Direction string `mapstructure:"direction" yaml:"direction"`
}

// TOCConfig contains table of contents settings
type TOCConfig struct {
	Fetch bool `mapstructure:"fetch" yaml:"fetch"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for values
// out of range.
func (c *Config) Validate() error {
	if c.Fetch.Timeout < time.Second {
		c.Fetch.Timeout = DefaultTimeout
	}
	if c.Fetch.MaxRetries < 0 {
		c.Fetch.MaxRetries = DefaultMaxRetries
	}
	if c.Defaults.Language != "" && !utils.ValidLanguageTag(c.Defaults.Language) {
		return fmt.Errorf("invalid defaults.language: %q", c.Defaults.Language)
	}
	switch c.Defaults.Direction {
	case "", "ltr", "rtl":
	default:
		return fmt.Errorf("invalid defaults.direction: %q (want ltr or rtl)", c.Defaults.Direction)
	}
	return nil
}
