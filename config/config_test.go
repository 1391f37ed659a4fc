package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{".c", ".h"}, cfg.Extensions)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "auto", cfg.Color)
	assert.True(t, cfg.Ignored(".git"))
	assert.True(t, cfg.HasSourceExtension("src/main.c"))
	assert.False(t, cfg.HasSourceExtension("README.md"))
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
typedefs: [size_t, FILE]
format: sarif
color: never
include_comments: true
max_errors: 5
ignore: [build]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"size_t", "FILE"}, cfg.Typedefs)
	assert.Equal(t, "sarif", cfg.Format)
	assert.Equal(t, "never", cfg.Color)
	assert.True(t, cfg.IncludeComments)
	assert.False(t, cfg.IncludeWhitespace)
	assert.Equal(t, 5, cfg.MaxErrors)
	assert.Equal(t, []string{"build"}, cfg.Ignore)
	assert.Equal(t, []string{".c", ".h"}, cfg.Extensions, "unset keys keep their defaults")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "colour: auto"},
		{"bad format", "format: xml"},
		{"bad color", "color: sometimes"},
		{"negative max errors", "max_errors: -1"},
		{"bad extension", "extensions: [c]"},
		{"malformed", "typedefs: [a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("typedefs: [T]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"T"}, cfg.Typedefs)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")
}

func TestLoadDefaultFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
