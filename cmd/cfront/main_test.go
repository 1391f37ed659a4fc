package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/cfront/c/codebase"
	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/format"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "cfront "+version+"\n", stdout)
}

func TestTokens(t *testing.T) {
	stdout, stderr, err := run(t, "x = 1;", "tokens", "-")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.True(t, strings.HasPrefix(stdout, `1:1 Identifier "x"`+"\n"), stdout)
	assert.Contains(t, stdout, `1:5 IntLiteral "1"`)
}

func TestTokensWhitespace(t *testing.T) {
	plain, _, err := run(t, "a /* c */ b", "tokens", "-")
	require.NoError(t, err)
	full, _, err := run(t, "a /* c */ b", "tokens", "--whitespace", "--comments", "-")
	require.NoError(t, err)
	assert.Greater(t, strings.Count(full, "\n"), strings.Count(plain, "\n"))
}

func TestTokensReportsLexicalErrors(t *testing.T) {
	stdout, stderr, err := run(t, "x @", "tokens", "-")
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stdout, `1:1 Identifier "x"`)
	assert.Contains(t, stderr, "<stdin>:1:3: error:")
}

func TestParseExpression(t *testing.T) {
	stdout, _, err := run(t, "1 + 2 * 3", "parse", "--expr", "-")
	require.NoError(t, err)
	assert.Equal(t, `BinaryExpr Add
  PrimaryExpr 1
  BinaryExpr Mul
    PrimaryExpr 2
    PrimaryExpr 3
`, stdout)
}

func TestParseTypedefFlag(t *testing.T) {
	stdout, _, err := run(t, "(T)x", "parse", "--expr", "--typedef", "T", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "CastExpr T\n"), stdout)

	_, _, err = run(t, "(T)x", "parse", "--expr", "-")
	assert.ErrorIs(t, err, errDiagnostics)
}

func TestParseErrors(t *testing.T) {
	stdout, stderr, err := run(t, "a + ;", "parse", "--expr", "-")
	require.ErrorIs(t, err, errDiagnostics)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "<stdin>:1:5: error: expected expression")
	assert.Contains(t, stderr, "    1 | a + ;")

	_, _, err = run(t, "", "parse", "--expr", "--decl", "-")
	assert.EqualError(t, err, "--expr and --decl are mutually exclusive")

	_, _, err = run(t, "", "parse", filepath.Join(t.TempDir(), "missing.c"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseUnitJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"u.c": "const int; x = 1;\n"})
	stdout, _, err := run(t, "", "parse", "-f", "json", filepath.Join(dir, "u.c"))
	require.NoError(t, err)

	var node map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &node))
	assert.Equal(t, "Unit", node["kind"])
	assert.Len(t, node["children"], 2)
}

func TestParseDeclaration(t *testing.T) {
	stdout, _, err := run(t, "static unsigned long;", "parse", "--decl", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "DeclarationSpecifiers static unsigned long")
}

func TestCheck(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.c":        "a = 1;\n",
		"src/bad.c":   "a = ;\nb + ;\n",
		"notes.txt":   "+++",
		".git/x.c":    "+++",
		"src/types.h": "const int;\n",
	})

	stdout, _, err := run(t, "", "check", "--color", "never", dir)
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, err.Error(), "2 errors in 3 files")

	bad := filepath.Join(dir, "src", "bad.c")
	assert.Contains(t, stdout, bad+":1:5: error: expected expression")
	assert.Contains(t, stdout, bad+":2:5: error: expected expression")
	assert.NotContains(t, stdout, ".git")

	stdout, _, err = run(t, "", "check", "--max-errors", "1", dir)
	require.ErrorIs(t, err, errDiagnostics)
	assert.Equal(t, 1, strings.Count(stdout, "error:"))

	stdout, _, err = run(t, "", "check", filepath.Join(dir, "ok.c"))
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestCheckFormats(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.c": "x = (;\n"})

	stdout, _, err := run(t, "", "check", "-f", "sarif", dir)
	require.ErrorIs(t, err, errDiagnostics)
	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "2.1.0", report["version"])

	stdout, _, err = run(t, "", "check", "-f", "json", dir)
	require.ErrorIs(t, err, errDiagnostics)
	var diags []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &diags))
	require.NotEmpty(t, diags)
	assert.Equal(t, "syntax", diags[0]["code"])

	_, _, err = run(t, "", "check", "-f", "xml", dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errDiagnostics)
}

func TestCheckUsesConfigFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"src/a.c":      "n = (size_t)m;\n",
		"cfront.yaml": "typedefs: [size_t]\n",
	})
	src := filepath.Join(dir, "src")

	_, _, err := run(t, "", "check", src)
	require.ErrorIs(t, err, errDiagnostics)

	_, _, err = run(t, "", "--config", filepath.Join(dir, "cfront.yaml"), "check", src)
	require.NoError(t, err)

	_, _, err = run(t, "", "check", "--typedef", "size_t", src)
	require.NoError(t, err)
}

func TestBadConfigFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.yaml": "colour: always\n"})
	_, _, err := run(t, "", "--config", filepath.Join(dir, "bad.yaml"), "version")
	assert.Error(t, err)
}

func TestGrammarCheck(t *testing.T) {
	stdout, _, err := run(t, "", "grammar", "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "c.ebnf:")
	assert.Contains(t, stdout, "productions ok")

	dir := writeFiles(t, map[string]string{"bad.ebnf": "Start = A .\n"})
	stdout, _, err = run(t, "", "grammar", "check", "--start", "Start", filepath.Join(dir, "bad.ebnf"))
	require.Error(t, err)
	assert.Contains(t, stdout, "missing production A")

	_, _, err = run(t, "", "grammar", "check", filepath.Join(dir, "bad.ebnf"))
	assert.NoError(t, err, "syntax-only check")
}

func TestGrammarShow(t *testing.T) {
	stdout, _, err := run(t, "", "grammar", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Start = ")
}

func TestGrammarLex(t *testing.T) {
	_, _, err := run(t, "x = 0x1Fu + 'a';", "grammar", "lex", "-")
	require.NoError(t, err)

	stdout, _, err := run(t, "1lL", "grammar", "lex", "-")
	require.Error(t, err)
	assert.Contains(t, stdout, "integer_constant accepts 2 of 3 bytes")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrintChange(t *testing.T) {
	var out bytes.Buffer
	onChange := printChange(&out, format.NewDiagnosticReporter(&out, false))

	onChange("a.c", codebase.Analyze("a.c", []byte("a = 1;\n"), nil))
	onChange("b.c", codebase.Analyze("b.c", []byte("b = ;\n"), nil))
	onChange("c.c", nil)

	lines := out.String()
	assert.Contains(t, lines, "a.c: ok\n")
	assert.Contains(t, lines, parser.MsgExpectedExpression)
	assert.Contains(t, lines, "c.c: removed\n")

	failing := printChange(failingWriter{}, format.NewDiagnosticReporter(failingWriter{}, false))
	assert.NotPanics(t, func() {
		failing("a.c", codebase.Analyze("a.c", []byte("a = 1;\n"), nil))
		failing("b.c", codebase.Analyze("b.c", []byte("b = ;\n"), nil))
		failing("c.c", nil)
	})
}
