package config

import (
	"fmt"
	"runtime"

	"github.com/wippyai/overload/errors"
)

// Color modes for CLI output.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// CLIConfig holds command-line presentation settings.
type CLIConfig struct {
	// Color is auto, on or off. Auto colours only when stdout is a terminal.
	Color string `json:"color"`
	// Parallelism bounds concurrent scenario calls.
	Parallelism int `json:"parallelism"`
}

func (c *CLIConfig) SetDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.Parallelism == 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
}

func (c CLIConfig) Validate() error {
	switch c.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return errors.Config(fmt.Sprintf("cli.color must be auto, on or off, got %q", c.Color), nil)
	}
	if c.Parallelism < 0 {
		return errors.Config(fmt.Sprintf("cli.parallelism must be positive, got %d", c.Parallelism), nil)
	}
	return nil
}
