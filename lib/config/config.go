// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "SYSINFO_CONFIG"

// Output formats accepted by output.format.
const (
	FormatJSON    = "json"
	FormatCBOR    = "cbor"
	FormatDiag    = "diag"
	FormatSummary = "summary"
)

// Colour modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	logLevels    = []string{"debug", "info", "warn", "error"}
	formats      = []string{FormatJSON, FormatCBOR, FormatDiag, FormatSummary}
	colorModes   = []string{ColorAuto, ColorAlways, ColorNever}
	compressions = []string{"none", "lz4", "zstd", "auto"}
)

// Config is the master configuration for the sysinfo command.
type Config struct {
	// Log configures the command logger.
	Log LogConfig `yaml:"log"`

	// Output configures how decoded records are printed.
	Output OutputConfig `yaml:"output"`

	// Input configures how JSON documents are read.
	Input InputConfig `yaml:"input"`

	// Pack configures chunk file creation.
	Pack PackConfig `yaml:"pack"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Level is the minimum level logged to stderr.
	// Values: debug, info, warn, error. Default: warn
	Level string `yaml:"level"`
}

// OutputConfig configures record output.
type OutputConfig struct {
	// Format selects the output encoding.
	// Values: json, cbor, diag, summary. Default: json
	Format string `yaml:"format"`

	// Color controls syntax highlighting of JSON and summary output.
	// Values: auto (highlight when stdout is a terminal), always, never.
	// Default: auto
	Color string `yaml:"color"`

	// Style is the highlighting style name. Empty selects a light or
	// dark style from the terminal background.
	Style string `yaml:"style"`
}

// InputConfig configures document reading.
type InputConfig struct {
	// AllowComments strips // and /* */ comments and trailing commas
	// from input documents before decoding.
	AllowComments bool `yaml:"allow_comments"`
}

// PackConfig configures chunk file creation.
type PackConfig struct {
	// Compression is the default chunk compression for "sysinfo pack".
	// Values: none, lz4, zstd, auto. Default: auto
	Compression string `yaml:"compression"`
}

// Default returns the default configuration. Loaded files are merged
// on top of it, so fields absent from the file keep these values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "warn",
		},
		Output: OutputConfig{
			Format: FormatJSON,
			Color:  ColorAuto,
		},
		Pack: PackConfig{
			Compression: "auto",
		},
	}
}

// Load loads configuration from the SYSINFO_CONFIG environment
// variable. It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your sysinfo.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path and
// validates it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// string fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Log.Level = expandVars(c.Log.Level, vars)
	c.Output.Format = expandVars(c.Output.Format, vars)
	c.Output.Color = expandVars(c.Output.Color, vars)
	c.Output.Style = expandVars(c.Output.Style, vars)
	c.Pack.Compression = expandVars(c.Pack.Compression, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All invalid fields
// are reported together.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}
	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", formats))
	}
	if !slices.Contains(colorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colorModes))
	}
	if !slices.Contains(compressions, c.Pack.Compression) {
		errs = append(errs, fmt.Errorf("pack.compression must be one of: %v", compressions))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
