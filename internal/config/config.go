// Package config loads the leap CLI configuration.
//
// Values are layered, from lowest to highest precedence: built-in defaults,
// the YAML config file (leap.yaml or leap.yml), LEAP_ environment variables
// and explicitly set command line flags. Nested keys are separated by a
// double underscore in the environment:
//
//	LEAP_LOG_LEVEL=debug
//	LEAP_SOURCES__MAIN__HOST=db.internal
package config

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapdb/leap/datasource"
	"github.com/leapdb/leap/dialect"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "LEAP_"

// Defaults.
const (
	DefaultLogLevel = "warn"
	DefaultDialect  = dialect.MySQL
	DefaultOutput   = "text"
)

// Output formats.
var outputs = []string{"text", "json", "yaml"}

// FileNames are the config files searched in the working directory.
var FileNames = []string{"leap.yaml", "leap.yml"}

// Config holds the CLI configuration.
type Config struct {
	LogLevel       string                       `koanf:"log_level" yaml:"log_level"`
	DefaultDialect string                       `koanf:"default_dialect" yaml:"default_dialect"`
	Output         string                       `koanf:"output" yaml:"output"`
	Sources        map[string]datasource.Config `koanf:"sources" yaml:"sources,omitempty"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-" yaml:"-"`
}

// flagKeys maps flag names to config keys. Other flags are not part of
// the configuration.
var flagKeys = map[string]string{
	"log-level": "log_level",
	"dialect":   "default_dialect",
	"output":    "output",
}

// Load reads the configuration. path names the config file; when empty,
// the FileNames are looked up in the working directory and a missing file
// is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]any{
		"log_level":       DefaultLogLevel,
		"default_dialect": DefaultDialect,
		"output":          DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if path == "" {
		path = find()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("config: load flags: %w", err)
		}
	}
	cfg := &Config{File: path}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey turns LEAP_SOURCES__MAIN__DSN into sources.main.dsn.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func find() string {
	for _, name := range FileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Validate checks the global settings and every data source.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if !slices.Contains(outputs, c.Output) {
		return fmt.Errorf("config: invalid output %q (expected one of %s)", c.Output, strings.Join(outputs, ", "))
	}
	d, err := dialect.Parse(c.DefaultDialect)
	if err != nil {
		return fmt.Errorf("config: default_dialect: %w", err)
	}
	c.DefaultDialect = d
	for _, name := range c.SourceNames() {
		if err := c.Sources[name].Validate(); err != nil {
			return fmt.Errorf("config: source %q: %w", name, err)
		}
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return l, nil
}

// SourceNames returns the configured data source names, sorted.
func (c *Config) SourceNames() []string {
	return slices.Sorted(maps.Keys(c.Sources))
}

// Source returns the named data source.
func (c *Config) Source(name string) (datasource.Config, error) {
	s, ok := c.Sources[name]
	if !ok {
		return datasource.Config{}, fmt.Errorf("config: unknown source %q (configured: %s)", name, strings.Join(c.SourceNames(), ", "))
	}
	return s, nil
}
