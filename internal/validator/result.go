package validator

import (
	"fmt"
	"sort"
	"strings"
)

// Location identifies where in a document a finding occurred.
// It is an immutable value; Line and Column are 1-based when set.
type Location struct {
	// Path is the file the finding applies to.
	Path string `json:"path"`
	// Line is the 1-based line number, 0 when unknown.
	Line int `json:"line,omitempty"`
	// Column is the 1-based column number, 0 when unknown.
	Column int `json:"column,omitempty"`
	// Section names the document region (e.g. "frontmatter") or the
	// annotation the finding applies to.
	Section string `json:"section,omitempty"`
}

func (l Location) String() string {
	var sb strings.Builder
	sb.WriteString(l.Path)
	if l.Line > 0 {
		fmt.Fprintf(&sb, ":%d", l.Line)
		if l.Column > 0 {
			fmt.Fprintf(&sb, ":%d", l.Column)
		}
	}
	if l.Section != "" {
		fmt.Fprintf(&sb, " (%s)", l.Section)
	}
	return sb.String()
}

// Result is a single validation finding.
type Result struct {
	// Validator is the name of the validator that produced the result.
	Validator string `json:"validator"`
	// Rule identifies the specific check, e.g. "frontmatter/missing".
	Rule string `json:"rule"`
	// Severity is the impact of the finding.
	Severity Severity `json:"severity"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// Location is where the finding occurred, nil for document-wide findings.
	Location *Location `json:"location,omitempty"`
	// Passed is true when the check succeeded and the result is
	// informational only.
	Passed bool `json:"passed"`
}

// Fail constructs an unpassed result. An unpassed result must carry at
// least warning severity; info is promoted to warning to preserve the
// invariant.
func Fail(validatorName, rule string, severity Severity, message string, loc *Location) Result {
	if severity < SeverityWarning {
		severity = SeverityWarning
	}
	return Result{
		Validator: validatorName,
		Rule:      rule,
		Severity:  severity,
		Message:   message,
		Location:  loc,
	}
}

// Pass constructs a passed, informational result.
func Pass(validatorName, rule, message string, loc *Location) Result {
	return Result{
		Validator: validatorName,
		Rule:      rule,
		Severity:  SeverityInfo,
		Message:   message,
		Location:  loc,
		Passed:    true,
	}
}

// SortResults orders results deterministically: by validator name, then
// location (line, column), then rule, then message. Pipelines sort before
// aggregating so concurrent execution never changes the output.
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Validator != b.Validator {
			return a.Validator < b.Validator
		}
		aLine, aCol := locKey(a.Location)
		bLine, bCol := locKey(b.Location)
		if aLine != bLine {
			return aLine < bLine
		}
		if aCol != bCol {
			return aCol < bCol
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}

func locKey(l *Location) (line, col int) {
	if l == nil {
		return 0, 0
	}
	return l.Line, l.Column
}
