// Package config loads cfront settings from a YAML file.
//
// A settings file looks like:
//
//	typedefs: [size_t, FILE]
//	extensions: [.c, .h]
//	format: text
//	color: auto
//	max_errors: 20
//	ignore: [.git, build]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".cfront.yaml"

type Config struct {
	Typedefs          []string `yaml:"typedefs"`
	Extensions        []string `yaml:"extensions"`
	Format            string   `yaml:"format"`
	Color             string   `yaml:"color"`
	IncludeWhitespace bool     `yaml:"include_whitespace"`
	IncludeComments   bool     `yaml:"include_comments"`
	MaxErrors         int      `yaml:"max_errors"`
	Ignore            []string `yaml:"ignore"`
}

var (
	formats    = []string{"text", "json", "sarif"}
	colorModes = []string{"auto", "always", "never"}
)

func Default() *Config {
	return &Config{
		Extensions: []string{".c", ".h"},
		Format:     "text",
		Color:      "auto",
		Ignore:     []string{".git"},
	}
}

// Load reads the file at path on top of the defaults. With an empty path
// DefaultFile is tried and its absence is not an error.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML settings over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("unknown format %q (want one of %v)", c.Format, formats)
	}
	if !slices.Contains(colorModes, c.Color) {
		return fmt.Errorf("unknown color mode %q (want one of %v)", c.Color, colorModes)
	}
	if c.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.MaxErrors)
	}
	for _, ext := range c.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// HasSourceExtension reports whether path names a file to scan.
func (c *Config) HasSourceExtension(path string) bool {
	return slices.Contains(c.Extensions, filepath.Ext(path))
}

// Ignored reports whether a directory with this base name is skipped.
func (c *Config) Ignored(name string) bool {
	return slices.Contains(c.Ignore, name)
}
