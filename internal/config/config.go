package config

import (
	"errors"
	"strings"

	"github.com/quantmind-br/hdlmanifest/internal/utils"
)

// ErrEmptyDefaultName indicates manifest.default_name is blank
var ErrEmptyDefaultName = errors.New("manifest.default_name cannot be empty")

// Config represents the application configuration
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ManifestConfig contains manifest loading settings
type ManifestConfig struct {
	Strict      bool   `mapstructure:"strict" yaml:"strict"`
	DefaultName string `mapstructure:"default_name" yaml:"default_name"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration, replacing unusable logging values
// with defaults
func (c *Config) Validate() error {
	c.Manifest.DefaultName = strings.TrimSpace(c.Manifest.DefaultName)
	if c.Manifest.DefaultName == "" {
		return ErrEmptyDefaultName
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if !utils.IsValidLogLevel(c.Logging.Level) {
		c.Logging.Level = DefaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if !utils.IsValidLogFormat(c.Logging.Format) {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
