package validator

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/thoreinstein/mdcheck/internal/document"
)

// Content rule identifiers.
const (
	RuleContentSingleH1         = "content/single-h1"
	RuleContentHeadingHierarchy = "content/heading-hierarchy"
	RuleContentCodeLanguage     = "content/code-language"
	RuleContentUnknownLanguage  = "content/unknown-language"
	RuleContentRequiredSections = "content/required-sections"
	RuleContentSectionOrder     = "content/section-order"
	RuleContentBlankLines       = "content/blank-lines"
)

// defaultMaxBlankLines is the largest allowed run of consecutive blank
// lines outside code blocks.
const defaultMaxBlankLines = 2

// Content validates markdown structure: a single H1, no skipped heading
// levels, language tags on fenced code blocks, required section presence
// and order, and runs of blank lines.
type Content struct{}

// NewContent returns the content validator.
func NewContent() *Content {
	return &Content{}
}

func (c *Content) Name() string { return "content" }

func (c *Content) Description() string {
	return "Validates markdown structure: headings, code blocks, and sections"
}

func (c *Content) Validate(_ context.Context, doc *document.Document, cfg Config) []Result {
	var results []Result
	results = append(results, c.checkHeadings(doc, cfg)...)
	results = append(results, c.checkCodeBlocks(doc, cfg)...)
	results = append(results, c.checkSections(doc, cfg)...)
	results = append(results, c.checkBlankLines(doc, cfg)...)
	return results
}

func (c *Content) checkHeadings(doc *document.Document, cfg Config) []Result {
	var results []Result

	h1Count := 0
	for _, h := range doc.Headings {
		if h.Level == 1 {
			h1Count++
		}
	}
	if h1Count != 1 {
		results = append(results, Fail(c.Name(), RuleContentSingleH1,
			cfg.RuleSeverity(RuleContentSingleH1, SeverityError),
			fmt.Sprintf("document must have exactly one H1 heading, found %d", h1Count),
			&Location{Path: doc.Path}))
	}

	prev := 0
	for _, h := range doc.Headings {
		if prev > 0 && h.Level > prev+1 {
			results = append(results, Fail(c.Name(), RuleContentHeadingHierarchy,
				cfg.RuleSeverity(RuleContentHeadingHierarchy, SeverityError),
				fmt.Sprintf("heading level jumps from H%d to H%d", prev, h.Level),
				&Location{Path: doc.Path, Line: h.Line, Section: h.Text}))
		}
		prev = h.Level
	}

	return results
}

func (c *Content) checkCodeBlocks(doc *document.Document, cfg Config) []Result {
	var results []Result
	allowed := cfg.StringSliceOption("languages")

	for _, cb := range doc.CodeBlocks {
		loc := &Location{Path: doc.Path, Line: cb.Line}
		if cb.Language == "" {
			results = append(results, Fail(c.Name(), RuleContentCodeLanguage,
				cfg.RuleSeverity(RuleContentCodeLanguage, SeverityWarning),
				"fenced code block has no language tag", loc))
			continue
		}
		if len(allowed) > 0 && !containsFold(allowed, cb.Language) {
			results = append(results, Fail(c.Name(), RuleContentUnknownLanguage,
				cfg.RuleSeverity(RuleContentUnknownLanguage, SeverityWarning),
				fmt.Sprintf("code block language %q is not in the allowed set", cb.Language), loc))
		}
	}
	return results
}

func (c *Content) checkSections(doc *document.Document, cfg Config) []Result {
	required := cfg.StringSliceOption("required_sections")
	if len(required) == 0 {
		return nil
	}

	var results []Result

	// positions[i] is the index of required[i] in the document's heading
	// sequence, -1 when absent.
	positions := make([]int, len(required))
	for i, section := range required {
		positions[i] = -1
		for j, h := range doc.Headings {
			if strings.EqualFold(h.Text, section) {
				positions[i] = j
				break
			}
		}
		if positions[i] == -1 {
			results = append(results, Fail(c.Name(), RuleContentRequiredSections,
				cfg.RuleSeverity(RuleContentRequiredSections, SeverityError),
				fmt.Sprintf("required section %q is missing", section),
				&Location{Path: doc.Path, Section: section}))
		}
	}

	lastPos := -1
	for i, pos := range positions {
		if pos == -1 {
			continue
		}
		if pos < lastPos {
			h := doc.Headings[pos]
			results = append(results, Fail(c.Name(), RuleContentSectionOrder,
				cfg.RuleSeverity(RuleContentSectionOrder, SeverityWarning),
				fmt.Sprintf("section %q appears out of the configured order", required[i]),
				&Location{Path: doc.Path, Line: h.Line, Section: h.Text}))
		}
		if pos > lastPos {
			lastPos = pos
		}
	}

	return results
}

func (c *Content) checkBlankLines(doc *document.Document, cfg Config) []Result {
	maxBlank := cfg.IntOption("max_blank_lines", defaultMaxBlankLines)

	var results []Result
	lines := bytes.Split(doc.Body, []byte("\n"))
	run := 0
	for i, line := range lines {
		fileLine := doc.BodyLine + i
		if len(bytes.TrimSpace(line)) == 0 && !inCodeBlock(doc, fileLine) {
			run++
			continue
		}
		if run > maxBlank {
			results = append(results, Fail(c.Name(), RuleContentBlankLines,
				cfg.RuleSeverity(RuleContentBlankLines, SeverityWarning),
				fmt.Sprintf("%d consecutive blank lines, maximum is %d", run, maxBlank),
				&Location{Path: doc.Path, Line: fileLine - run}))
		}
		run = 0
	}
	if run > maxBlank {
		results = append(results, Fail(c.Name(), RuleContentBlankLines,
			cfg.RuleSeverity(RuleContentBlankLines, SeverityWarning),
			fmt.Sprintf("%d consecutive blank lines, maximum is %d", run, maxBlank),
			&Location{Path: doc.Path, Line: doc.BodyLine + len(lines) - run}))
	}
	return results
}

func inCodeBlock(doc *document.Document, line int) bool {
	for _, cb := range doc.CodeBlocks {
		if line >= cb.Line && (cb.EndLine == 0 || line <= cb.EndLine) {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
