package format

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/dhamidi/cfront/c/parser"
)

// SARIF 2.1.0 constants
const (
	SARIFSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	SARIFVersion   = "2.1.0"
	ToolName       = "cfront"
)

type SARIFReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []SARIFRule `json:"rules,omitempty"`
}

type SARIFRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription SARIFMessage `json:"shortDescription"`
}

type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

type SARIFMessage struct {
	Text string `json:"text"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

type SARIFRegion struct {
	StartLine   int           `json:"startLine"`
	StartColumn int           `json:"startColumn"`
	EndLine     int           `json:"endLine"`
	EndColumn   int           `json:"endColumn"`
	Snippet     *SARIFMessage `json:"snippet,omitempty"`
}

var sarifRules = []struct {
	code        parser.Code
	description string
}{
	{parser.CodeLexical, "The source text does not form valid C tokens."},
	{parser.CodeSyntax, "The token sequence does not match the C grammar."},
	{parser.CodeUnsupported, "The input uses a C construct the front end does not implement."},
}

// NewSARIFReport returns a report with a single run and one rule per
// diagnostic code.
func NewSARIFReport(toolVersion string) *SARIFReport {
	driver := SARIFDriver{Name: ToolName, Version: toolVersion}
	for _, r := range sarifRules {
		driver.Rules = append(driver.Rules, SARIFRule{
			ID:               ruleID(r.code),
			Name:             r.code.String(),
			ShortDescription: SARIFMessage{Text: r.description},
		})
	}
	return &SARIFReport{
		Schema:  SARIFSchemaURI,
		Version: SARIFVersion,
		Runs:    []SARIFRun{{Tool: SARIFTool{Driver: driver}, Results: []SARIFResult{}}},
	}
}

func ruleID(code parser.Code) string {
	return "cfront/" + code.String()
}

func (r *SARIFReport) AddDiagnostic(d parser.Diagnostic) {
	loc := d.Location
	end := loc.EndPosition()
	region := SARIFRegion{
		StartLine:   loc.Line,
		StartColumn: loc.Column,
		EndLine:     end.Line,
		EndColumn:   end.Column,
	}
	if text := loc.Snippet(); text != "" {
		region.Snippet = &SARIFMessage{Text: text}
	}

	r.Runs[0].Results = append(r.Runs[0].Results, SARIFResult{
		RuleID:  ruleID(d.Code),
		Level:   "error",
		Message: SARIFMessage{Text: d.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: fileURI(loc.Path())},
				Region:           region,
			},
		}},
	})
}

// SARIFEncoder writes diagnostics as a SARIF log.
type SARIFEncoder struct {
	w       io.Writer
	version string
}

func NewSARIFEncoder(w io.Writer, toolVersion string) *SARIFEncoder {
	return &SARIFEncoder{w: w, version: toolVersion}
}

func (e *SARIFEncoder) Encode(diags []parser.Diagnostic) error {
	report := NewSARIFReport(e.version)
	for _, d := range diags {
		report.AddDiagnostic(d)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(data, '\n'))
	return err
}

// fileURI keeps relative paths relative; absolute paths become file URIs.
func fileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
