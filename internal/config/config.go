// Package config defines the settings for the jparse command-line tool and
// loads them from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/jparse/ast"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the jparse tool.
type Config struct {
	// MaxDepth limits the nesting depth of arrays and objects.
	// Zero means ast.DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth"`

	// JWCC enables comments and trailing commas in the input.
	JWCC bool `yaml:"jwcc"`

	// Color selects colorized diagnostics: "auto", "always", or "never".
	Color string `yaml:"color"`

	Output OutputConfig `yaml:"output"`
}

// OutputConfig controls how parsed values are printed.
type OutputConfig struct {
	Compact bool   `yaml:"compact"`
	Indent  string `yaml:"indent"`
}

// Color settings.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a configuration with default settings.
func Default() *Config {
	return &Config{
		MaxDepth: ast.DefaultMaxDepth,
		Color:    ColorAuto,
		Output:   OutputConfig{Indent: "  "},
	}
}

// Load reads the configuration file at path. Settings not mentioned in the
// file keep their default values. If path == "", Load returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration over the defaults and validates it.
// Unknown fields are reported as errors.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports an error if c contains invalid settings.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth)
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be %q, %q, or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	if strings.Trim(c.Output.Indent, " \t") != "" {
		return fmt.Errorf("output.indent must contain only spaces and tabs, got %q", c.Output.Indent)
	}
	return nil
}
