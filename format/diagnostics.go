package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/cfront/c/parser"
)

// DiagnosticEncoder writes a batch of diagnostics.
type DiagnosticEncoder interface {
	Encode(diags []parser.Diagnostic) error
}

// NewDiagnosticEncoder returns the encoder for a check output format: text,
// json or sarif. colored only affects text.
func NewDiagnosticEncoder(name string, w io.Writer, colored bool, toolVersion string) (DiagnosticEncoder, error) {
	switch name {
	case "", "text":
		return NewDiagnosticReporter(w, colored), nil
	case "json":
		return NewDiagnosticJSONEncoder(w), nil
	case "sarif":
		return NewSARIFEncoder(w, toolVersion), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

func (r *DiagnosticReporter) Encode(diags []parser.Diagnostic) error {
	return r.ReportAll(diags)
}

// DiagnosticJSONEncoder writes diagnostics as a JSON array, one object per
// diagnostic.
type DiagnosticJSONEncoder struct {
	w io.Writer
}

func NewDiagnosticJSONEncoder(w io.Writer) *DiagnosticJSONEncoder {
	return &DiagnosticJSONEncoder{w: w}
}

type jsonDiagnostic struct {
	Path    string       `json:"path"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Span    *astJSONSpan `json:"span,omitempty"`
}

func (e *DiagnosticJSONEncoder) Encode(diags []parser.Diagnostic) error {
	out := make([]jsonDiagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, jsonDiagnostic{
			Path:    d.Location.Path(),
			Code:    d.Code.String(),
			Message: d.Message,
			Span:    spanToJSON(d.Location),
		})
	}
	enc := json.NewEncoder(e.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
