package config

import (
	"go.uber.org/zap"

	"github.com/wippyai/overload/errors"
)

// LogConfig selects the zap logger built by the CLI.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn or error.
	Level string `json:"level"`
	// Format is "console" (development encoder) or "json" (production).
	Format string `json:"format"`
}

// SetDefaults applies sane defaults.
func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
	if c.Format == "" {
		c.Format = "console"
	}
}

// Validate checks the level and format.
func (c LogConfig) Validate() error {
	if _, err := zap.ParseAtomicLevel(c.Level); err != nil {
		return errors.Config("log.level", err)
	}
	if c.Format != "console" && c.Format != "json" {
		return errors.Config("log.format must be console or json, got "+c.Format, nil)
	}
	return nil
}

// NewLogger builds the configured logger.
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, errors.Config("log.level", err)
	}
	zc := zap.NewDevelopmentConfig()
	if c.Format == "json" {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
