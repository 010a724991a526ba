package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation run reports.
type Reporter struct {
	out     io.Writer
	format  Format
	verbose bool
}

// NewReporter creates a new Reporter. When verbose is set, passed
// documents and passed results are printed too.
func NewReporter(out io.Writer, format Format, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		format:  format,
		verbose: verbose,
	}
}

// Report writes the run report to the output.
func (r *Reporter) Report(report *RunReport) error {
	if report == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(report)
	default:
		return r.reportText(report)
	}
}

// reportJSON writes the report as JSON.
func (r *Reporter) reportJSON(report *RunReport) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(report), "encoding JSON report")
}

// reportText writes the report as human-readable text, one section per
// document with findings, then a summary line.
func (r *Reporter) reportText(report *RunReport) error {
	for _, doc := range report.Documents {
		r.printDocument(doc)
	}

	s := report.Summary
	if s.Errors == 0 && s.Warnings == 0 && s.SkippedDocuments == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %d document(s) passed", s.Documents))
		return nil
	}

	parts := []string{}
	if s.Errors > 0 {
		parts = append(parts, color.RedString("%d error(s)", s.Errors))
	}
	if s.Warnings > 0 {
		parts = append(parts, color.YellowString("%d warning(s)", s.Warnings))
	}
	if s.SkippedDocuments > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", s.SkippedDocuments))
	}
	fmt.Fprintf(r.out, "%d/%d document(s) failed: %s\n",
		s.FailedDocuments, s.Documents, strings.Join(parts, ", "))
	return nil
}

func (r *Reporter) printDocument(doc DocumentReport) {
	findings := make([]Result, 0, len(doc.Results))
	for _, res := range doc.Results {
		if !res.Passed || r.verbose {
			findings = append(findings, res)
		}
	}
	if len(findings) == 0 && !r.verbose {
		return
	}

	switch doc.Status {
	case StatusPassed:
		fmt.Fprintf(r.out, "%s %s\n", color.GreenString("✓"), doc.Path)
	case StatusSkipped:
		fmt.Fprintf(r.out, "%s %s (skipped)\n", color.New(color.FgHiBlack).Sprint("-"), doc.Path)
	default:
		fmt.Fprintf(r.out, "%s %s\n", color.RedString("✗"), doc.Path)
	}

	for _, res := range findings {
		r.printResult(res)
	}
	if len(findings) > 0 {
		fmt.Fprintln(r.out)
	}
}

func (r *Reporter) printResult(res Result) {
	var tag string
	switch {
	case res.Passed:
		tag = color.GreenString("ok")
	case res.Severity == SeverityError:
		tag = color.RedString("error")
	case res.Severity == SeverityWarning:
		tag = color.YellowString("warning")
	default:
		tag = color.CyanString("info")
	}

	var sb strings.Builder
	sb.WriteString("  • ")
	sb.WriteString(tag)
	sb.WriteString(" ")
	sb.WriteString(res.Message)
	sb.WriteString(" ")
	sb.WriteString(color.New(color.FgHiBlack).Sprintf("[%s]", res.Rule))

	if loc := res.Location; loc != nil && loc.Line > 0 {
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" line %d", loc.Line))
	}

	fmt.Fprintln(r.out, sb.String())
}
