package codebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAnalyze(t *testing.T) {
	info := Analyze("a.c", []byte("x = (T)y;\nint;\n"), []string{"T"})

	assert.Empty(t, info.Diagnostics)
	require.NotNil(t, info.Unit)
	assert.Len(t, info.Unit.Items, 2)
	require.NotEmpty(t, info.Tokens)
	assert.Equal(t, parser.TokenEOF, info.Tokens[len(info.Tokens)-1].Kind)
	assert.Equal(t, "a.c", info.Source.Path)
}

func TestAnalyzeCollectsDiagnostics(t *testing.T) {
	info := Analyze("a.c", []byte("x = ;\n'a\ny;\n"), nil)

	// Lexing finishes before parsing starts.
	require.Len(t, info.Diagnostics, 2)
	assert.Equal(t, parser.CodeLexical, info.Diagnostics[0].Code)
	assert.Equal(t, 2, info.Diagnostics[0].Location.Line)
	assert.Equal(t, parser.CodeSyntax, info.Diagnostics[1].Code)
	assert.Len(t, info.Unit.Items, 1)
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.c"), "a = 1;\n")
	writeFile(t, filepath.Join(root, "inc", "b.h"), "int;\n")
	writeFile(t, filepath.Join(root, "inc", "bad.c"), "b + ;\n")
	writeFile(t, filepath.Join(root, "build", "skip.c"), "+++\n")
	writeFile(t, filepath.Join(root, ".hidden", "skip.c"), "+++\n")
	writeFile(t, filepath.Join(root, "README.md"), "# not C\n")

	cfg := config.Default()
	cfg.Ignore = append(cfg.Ignore, "build")
	c := New(root, cfg)

	require.NoError(t, c.ScanAll(context.Background()))

	assert.Equal(t, []string{
		filepath.Join(root, "a.c"),
		filepath.Join(root, "inc", "b.h"),
		filepath.Join(root, "inc", "bad.c"),
	}, c.Files())

	assert.Empty(t, c.Diagnostics(filepath.Join(root, "a.c")))
	all := c.AllDiagnostics()
	require.Len(t, all, 1)
	assert.Equal(t, filepath.Join(root, "inc", "bad.c"), all[0].Location.Path())
}

func TestScanAllCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.c"), "a;\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(root, nil).ScanAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanFileMissing(t *testing.T) {
	c := New(t.TempDir(), nil)
	_, err := c.ScanFile(filepath.Join(c.RootDir(), "nope.c"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "read c file")
}

func TestUpdateAndRemoveFile(t *testing.T) {
	c := New(t.TempDir(), nil)

	info := c.UpdateFile("x.c", []byte("a +;"))
	assert.Len(t, info.Diagnostics, 1)
	assert.Same(t, info, c.GetFile("x.c"))

	info = c.UpdateFile("x.c", []byte("a + b;"))
	assert.Empty(t, info.Diagnostics)
	assert.Empty(t, c.Diagnostics("x.c"))

	assert.True(t, c.RemoveFile("x.c"))
	assert.False(t, c.RemoveFile("x.c"))
	assert.Nil(t, c.GetFile("x.c"))
	assert.Nil(t, c.Diagnostics("x.c"))
}

func TestTypedefsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Typedefs = []string{"size_t"}
	c := New(t.TempDir(), cfg)

	info := c.UpdateFile("x.c", []byte("n = (size_t)m;"))
	assert.Empty(t, info.Diagnostics)

	info = New(t.TempDir(), nil).UpdateFile("x.c", []byte("n = (size_t)m;"))
	assert.NotEmpty(t, info.Diagnostics)
}

func TestTokenAt(t *testing.T) {
	c := New(t.TempDir(), nil)
	c.UpdateFile("x.c", []byte("count = 0x1F;\n  name->len;\n"))

	tests := []struct {
		line, col int
		want      string
		ok        bool
	}{
		{1, 1, "count", true},
		{1, 5, "count", true},
		{1, 6, "", false},
		{1, 7, "=", true},
		{1, 9, "0x1F", true},
		{1, 13, ";", true},
		{2, 1, "", false},
		{2, 3, "name", true},
		{2, 7, "->", true},
		{2, 9, "len", true},
		{3, 1, "", false},
	}
	for _, tt := range tests {
		tok, ok := c.TokenAt("x.c", tt.line, tt.col)
		assert.Equal(t, tt.ok, ok, "%d:%d", tt.line, tt.col)
		if tt.ok {
			assert.Equal(t, tt.want, tok.Literal(), "%d:%d", tt.line, tt.col)
		}
	}

	_, ok := c.TokenAt("other.c", 1, 1)
	assert.False(t, ok)
}

func TestTokenAtContinuedLine(t *testing.T) {
	c := New(t.TempDir(), nil)
	c.UpdateFile("x.c", []byte("s = \"ab\\\ncd\";\n"))
	str := "\"ab\\\ncd\""

	tests := []struct {
		line, col int
		want      string
	}{
		{1, 5, str},
		{1, 8, str},
		{2, 1, str},
		{2, 3, str},
		{2, 4, ";"},
	}
	for _, tt := range tests {
		tok, ok := c.TokenAt("x.c", tt.line, tt.col)
		require.True(t, ok, "%d:%d", tt.line, tt.col)
		assert.Equal(t, tt.want, tok.Literal(), "%d:%d", tt.line, tt.col)
	}

	_, ok := c.TokenAt("x.c", 1, 4)
	assert.False(t, ok)
}
