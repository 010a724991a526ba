package validator

// DocumentStatus describes the outcome of validating one document.
type DocumentStatus string

const (
	// StatusPassed means no error-severity findings were produced.
	StatusPassed DocumentStatus = "passed"
	// StatusFailed means at least one error-severity finding was produced.
	StatusFailed DocumentStatus = "failed"
	// StatusSkipped means the document was not validated, typically
	// because the run was cancelled before it was reached.
	StatusSkipped DocumentStatus = "skipped"
	// StatusError means the document could not be parsed.
	StatusError DocumentStatus = "error"
)

// DocumentReport collects the findings for a single document.
type DocumentReport struct {
	Path    string         `json:"path"`
	Status  DocumentStatus `json:"status"`
	Results []Result       `json:"results,omitempty"`
}

// Failed reports whether the document should count as failed, treating
// warnings as failures when failOnWarnings is set.
func (d DocumentReport) Failed(failOnWarnings bool) bool {
	switch d.Status {
	case StatusFailed, StatusError:
		return true
	}
	if !failOnWarnings {
		return false
	}
	for _, r := range d.Results {
		if !r.Passed && r.Severity >= SeverityWarning {
			return true
		}
	}
	return false
}

// Summary aggregates counts over a validation run. It is derived from
// the per-document reports, never mutated independently.
type Summary struct {
	Documents        int `json:"documents"`
	PassedDocuments  int `json:"passed_documents"`
	FailedDocuments  int `json:"failed_documents"`
	SkippedDocuments int `json:"skipped_documents"`
	TotalResults     int `json:"total_results"`
	Errors           int `json:"errors"`
	Warnings         int `json:"warnings"`
	Infos            int `json:"infos"`

	// Failed lists the paths of documents with at least one blocking
	// finding, in report order.
	Failed []string `json:"failed,omitempty"`
}

// RunReport is the complete outcome of a validation run.
type RunReport struct {
	Documents []DocumentReport `json:"documents"`
	Summary   Summary          `json:"summary"`
}

// Failed reports whether the run should map to a findings exit code.
func (r RunReport) Failed(failOnWarnings bool) bool {
	for _, d := range r.Documents {
		if d.Failed(failOnWarnings) {
			return true
		}
	}
	return false
}

// Summarize computes aggregate counts from per-document reports.
// Passed results count toward TotalResults but not toward the severity
// tallies; only findings do.
func Summarize(docs []DocumentReport) Summary {
	s := Summary{Documents: len(docs)}
	for _, d := range docs {
		switch d.Status {
		case StatusPassed:
			s.PassedDocuments++
		case StatusFailed, StatusError:
			s.FailedDocuments++
			s.Failed = append(s.Failed, d.Path)
		case StatusSkipped:
			s.SkippedDocuments++
		}
		s.TotalResults += len(d.Results)
		for _, r := range d.Results {
			if r.Passed {
				continue
			}
			switch r.Severity {
			case SeverityError:
				s.Errors++
			case SeverityWarning:
				s.Warnings++
			case SeverityInfo:
				s.Infos++
			}
		}
	}
	return s
}

// StatusFor derives a document status from its results.
func StatusFor(results []Result) DocumentStatus {
	for _, r := range results {
		if !r.Passed && r.Severity == SeverityError {
			return StatusFailed
		}
	}
	return StatusPassed
}
