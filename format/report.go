package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/dhamidi/cfront/c/parser"
)

// ColorEnabled resolves a color mode (auto, always, never) for output
// written to f. In auto mode colors are used only on a terminal and only
// when NO_COLOR is unset.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type styles struct {
	location *color.Color
	severity *color.Color
	message  *color.Color
	caret    *color.Color
	gutter   *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		location: color.New(color.Bold),
		severity: color.New(color.Bold, color.FgHiRed),
		message:  color.New(color.Bold),
		caret:    color.New(color.Bold, color.FgHiGreen),
		gutter:   color.New(color.FgHiBlue),
	}
	for _, c := range []*color.Color{s.location, s.severity, s.message, s.caret, s.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// DiagnosticReporter prints diagnostics as "path:line:col: error: message"
// followed by the offending source line and a caret underline.
type DiagnosticReporter struct {
	w       io.Writer
	styles  *styles
	snippet bool
}

func NewDiagnosticReporter(w io.Writer, colored bool) *DiagnosticReporter {
	return &DiagnosticReporter{w: w, styles: newStyles(colored), snippet: true}
}

// WithoutSnippets turns off the source line and caret.
func (r *DiagnosticReporter) WithoutSnippets() *DiagnosticReporter {
	r.snippet = false
	return r
}

func (r *DiagnosticReporter) Report(d parser.Diagnostic) error {
	_, err := io.WriteString(r.w, r.render(d))
	return err
}

func (r *DiagnosticReporter) ReportAll(diags []parser.Diagnostic) error {
	for _, d := range diags {
		if err := r.Report(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *DiagnosticReporter) render(d parser.Diagnostic) string {
	s := r.styles
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s\n",
		s.location.Sprintf("%s:", d.Location),
		s.severity.Sprint("error:"),
		s.message.Sprint(d.Message),
	)
	if !r.snippet || d.Location.File == nil {
		return sb.String()
	}

	line := d.Location.File.Line(d.Location.Line)
	gutter := fmt.Sprintf("%5d | ", d.Location.Line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	sb.WriteString(s.gutter.Sprint(gutter))
	sb.WriteString(line)
	sb.WriteByte('\n')
	sb.WriteString(s.gutter.Sprint(blank))
	sb.WriteString(caretPadding(line, d.Location.Column))
	sb.WriteString(s.caret.Sprint(underline(line, d.Location.Column, d.Location.Length)))
	sb.WriteByte('\n')
	return sb.String()
}

// caretPadding keeps tabs so the caret lines up with the source line.
func caretPadding(line string, column int) string {
	var sb strings.Builder
	for i := 0; i < column-1 && i < len(line); i++ {
		if line[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// underline marks length bytes starting at column, clipped to the line.
func underline(line string, column, length int) string {
	rest := len(line) - (column - 1)
	if length > rest {
		length = rest
	}
	if length < 1 {
		length = 1
	}
	return "^" + strings.Repeat("~", length-1)
}
