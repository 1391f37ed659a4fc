package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/cfront/c/parser"
)

func TestDiagnosticReporter(t *testing.T) {
	src := parser.NewSourceFile("t.c", []byte("int x = @;\nnext line\n"))
	d := parser.Diagnostic{
		Message:  "unexpected character",
		Code:     parser.CodeLexical,
		Location: parser.Location{File: src, Offset: 8, Length: 1, Line: 1, Column: 9},
	}

	var buf bytes.Buffer
	require.NoError(t, NewDiagnosticReporter(&buf, false).Report(d))

	want := "t.c:1:9: error: unexpected character\n" +
		"    1 | int x = @;\n" +
		"      |         ^\n"
	assert.Equal(t, want, buf.String())
}

func TestDiagnosticReporterUnderline(t *testing.T) {
	src := parser.NewSourceFile("t.c", []byte("\tx = ab\n"))
	diags := []parser.Diagnostic{
		{Message: "tab", Location: parser.Location{File: src, Offset: 5, Length: 2, Line: 1, Column: 6}},
		{Message: "clipped", Location: parser.Location{File: src, Offset: 5, Length: 40, Line: 1, Column: 6}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewDiagnosticReporter(&buf, false).ReportAll(diags))

	want := "t.c:1:6: error: tab\n" +
		"    1 | \tx = ab\n" +
		"      | \t    ^~\n" +
		"t.c:1:6: error: clipped\n" +
		"    1 | \tx = ab\n" +
		"      | \t    ^~\n"
	assert.Equal(t, want, buf.String())
}

func TestDiagnosticReporterWithoutSnippets(t *testing.T) {
	src := parser.NewSourceFile("t.c", []byte("a"))
	d := parser.Diagnostic{Message: "m", Location: parser.Location{File: src, Line: 1, Column: 1}}

	var buf bytes.Buffer
	require.NoError(t, NewDiagnosticReporter(&buf, false).WithoutSnippets().Report(d))
	assert.Equal(t, "t.c:1:1: error: m\n", buf.String())
}

func TestDiagnosticReporterColor(t *testing.T) {
	src := parser.NewSourceFile("t.c", []byte("a"))
	d := parser.Diagnostic{Message: "m", Location: parser.Location{File: src, Length: 1, Line: 1, Column: 1}}

	var buf bytes.Buffer
	require.NoError(t, NewDiagnosticReporter(&buf, true).Report(d))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "error:")
}

func TestColorEnabled(t *testing.T) {
	assert.True(t, ColorEnabled("always", nil))
	assert.False(t, ColorEnabled("never", nil))
	assert.False(t, ColorEnabled("auto", nil))
}

func TestSARIFEncoder(t *testing.T) {
	src := parser.NewSourceFile("/src/t.c", []byte("a +\n;"))
	diags := []parser.Diagnostic{{
		Message:  "expected expression",
		Code:     parser.CodeSyntax,
		Location: parser.Location{File: src, Offset: 4, Length: 1, Line: 2, Column: 1},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewSARIFEncoder(&buf, "1.2.3").Encode(diags))

	var report SARIFReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, SARIFSchemaURI, report.Schema)
	assert.Equal(t, SARIFVersion, report.Version)
	require.Len(t, report.Runs, 1)

	run := report.Runs[0]
	assert.Equal(t, ToolName, run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	assert.Len(t, run.Tool.Driver.Rules, 3)

	require.Len(t, run.Results, 1)
	result := run.Results[0]
	assert.Equal(t, "cfront/syntax", result.RuleID)
	assert.Equal(t, "error", result.Level)
	assert.Equal(t, "expected expression", result.Message.Text)

	loc := result.Locations[0].PhysicalLocation
	assert.Equal(t, "file:///src/t.c", loc.ArtifactLocation.URI)
	assert.Equal(t, 2, loc.Region.StartLine)
	assert.Equal(t, 1, loc.Region.StartColumn)
	assert.Equal(t, 2, loc.Region.EndLine)
	assert.Equal(t, 2, loc.Region.EndColumn)
	require.NotNil(t, loc.Region.Snippet)
	assert.Equal(t, ";", loc.Region.Snippet.Text)
}

func TestSARIFReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSARIFEncoder(&buf, "dev").Encode(nil))
	assert.Contains(t, buf.String(), `"results": []`)
}

func TestFileURI(t *testing.T) {
	assert.Equal(t, "dir/a.c", fileURI("dir/a.c"))
	assert.Equal(t, "file:///tmp/a.c", fileURI("/tmp/a.c"))
}

func TestDiagnosticJSONEncoder(t *testing.T) {
	src := parser.NewSourceFile("t.c", []byte("a + ;"))
	diags := []parser.Diagnostic{{
		Message:  "expected expression",
		Code:     parser.CodeSyntax,
		Location: parser.Location{File: src, Offset: 4, Length: 1, Line: 1, Column: 5},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewDiagnosticJSONEncoder(&buf).Encode(diags))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "t.c", got[0]["path"])
	assert.Equal(t, "syntax", got[0]["code"])
	assert.Equal(t, "expected expression", got[0]["message"])
	span := got[0]["span"].(map[string]any)
	assert.Equal(t, float64(4), span["offset"])

	buf.Reset()
	require.NoError(t, NewDiagnosticJSONEncoder(&buf).Encode(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestNewDiagnosticEncoder(t *testing.T) {
	var buf bytes.Buffer
	for name, want := range map[string]any{
		"":      &DiagnosticReporter{},
		"text":  &DiagnosticReporter{},
		"json":  &DiagnosticJSONEncoder{},
		"sarif": &SARIFEncoder{},
	} {
		enc, err := NewDiagnosticEncoder(name, &buf, false, "test")
		require.NoError(t, err, name)
		assert.IsType(t, want, enc, name)
	}

	_, err := NewDiagnosticEncoder("xml", &buf, false, "test")
	assert.EqualError(t, err, "unknown format: xml")
}
