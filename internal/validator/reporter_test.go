package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sampleReport() *RunReport {
	docs := []DocumentReport{
		{Path: "good.mdc", Status: StatusPassed},
		{Path: "bad.mdc", Status: StatusFailed, Results: []Result{
			Fail("frontmatter", RuleFrontmatterMissing, SeverityError,
				"document has no YAML frontmatter block",
				&Location{Path: "bad.mdc", Line: 1}),
			Fail("content", RuleContentCodeLanguage, SeverityWarning,
				"fenced code block has no language tag",
				&Location{Path: "bad.mdc", Line: 12}),
		}},
	}
	return &RunReport{Documents: docs, Summary: Summarize(docs)}
}

func TestReporter_Report(t *testing.T) {
	report := sampleReport()

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText, false)
		if err := reporter.Report(report); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "bad.mdc") {
			t.Error("output missing failed document")
		}
		if !strings.Contains(output, "document has no YAML frontmatter block") {
			t.Error("output missing finding message")
		}
		if !strings.Contains(output, "[frontmatter/missing]") {
			t.Error("output missing rule identifier")
		}
		if !strings.Contains(output, "1 error(s)") || !strings.Contains(output, "1 warning(s)") {
			t.Error("output missing summary counts")
		}
		if strings.Contains(output, "good.mdc") {
			t.Error("non-verbose output should omit passed documents")
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatJSON, false)
		if err := reporter.Report(report); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded RunReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}
		if len(decoded.Documents) != 2 {
			t.Errorf("decoded document count = %d, want 2", len(decoded.Documents))
		}
		if decoded.Summary.Errors != 1 {
			t.Errorf("decoded errors = %d, want 1", decoded.Summary.Errors)
		}
		if decoded.Documents[1].Results[0].Severity != SeverityError {
			t.Errorf("decoded severity = %v, want error", decoded.Documents[1].Results[0].Severity)
		}
	})

	t.Run("all passed text", func(t *testing.T) {
		docs := []DocumentReport{{Path: "good.mdc", Status: StatusPassed}}
		report := &RunReport{Documents: docs, Summary: Summarize(docs)}

		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText, false)
		if err := reporter.Report(report); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "1 document(s) passed") {
			t.Error("output missing success message")
		}
	})

	t.Run("verbose lists passed documents", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText, true)
		if err := reporter.Report(report); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "good.mdc") {
			t.Error("verbose output missing passed document")
		}
	})
}
