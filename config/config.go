package config

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/wippyai/overload/errors"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: OVERLOAD_LOG__LEVEL sets log.level.
const EnvPrefix = "OVERLOAD_"

type Config struct {
	Log     LogConfig     `json:"log"`
	Resolve ResolveConfig `json:"resolve"`
	Metrics MetricsConfig `json:"metrics"`
	CLI     CLIConfig     `json:"cli"`
}

// ResolveConfig holds resolution options.
type ResolveConfig struct {
	// CheckVariadic checks every variadic argument against the variadic
	// parameter's constraint.
	CheckVariadic bool `json:"check_variadic"`
}

// MetricsConfig enables the Prometheus observer.
type MetricsConfig struct {
	Namespace string `json:"namespace"`
	// Addr, when set, serves /metrics for long-running commands.
	Addr    string `json:"addr"`
	Enabled bool   `json:"enabled"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.Namespace == "" {
		c.Namespace = "overload"
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	c.Log.SetDefaults()
	c.Metrics.SetDefaults()
	c.CLI.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return c.CLI.Validate()
}

// Load reads the file at path (yaml or json, by extension) and applies
// OVERLOAD_* environment overrides. An empty path loads the environment
// only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, errors.Config("unsupported config format "+ext, nil)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Config("load "+path, err)
		}
	}

	prefix := strings.ToLower(EnvPrefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), prefix)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, errors.Config("load environment", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, errors.Config("decode", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
