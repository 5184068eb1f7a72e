// Package config reads the optional YAML configuration file.
//
//	input_pattern: "*.csv"
//	output_extension: txt
//	create_output: false
//
// Keys that are left out keep their defaults; unknown keys are rejected.
package config

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/stmtsplit/export"
	"github.com/robinvdvleuten/stmtsplit/loader"
)

// Config controls which files are read and how output files are named.
type Config struct {
	// InputPattern selects statement files inside the input directory.
	InputPattern string `yaml:"input_pattern"`

	// OutputExtension is appended to the year to name output files.
	OutputExtension string `yaml:"output_extension"`

	// CreateOutput creates a missing output directory without asking.
	CreateOutput bool `yaml:"create_output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		InputPattern:    loader.DefaultPattern,
		OutputExtension: export.DefaultExtension,
	}
}

// Parse reads a configuration document on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stdErrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects patterns that cannot be globbed and extensions that would
// not produce a plain file name.
func (c *Config) Validate() error {
	if c.InputPattern == "" {
		return fmt.Errorf("input_pattern must not be empty")
	}
	if _, err := filepath.Match(c.InputPattern, ""); err != nil {
		return fmt.Errorf("input_pattern %q: %w", c.InputPattern, err)
	}
	if strings.ContainsRune(c.InputPattern, filepath.Separator) {
		return fmt.Errorf("input_pattern %q must not contain a path separator", c.InputPattern)
	}

	ext := c.OutputExtension
	if ext == "" || strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("output_extension %q must be a bare extension such as %q", ext, export.DefaultExtension)
	}
	return nil
}
