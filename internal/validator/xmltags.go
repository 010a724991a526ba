package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/thoreinstein/mdcheck/internal/document"
)

// XMLTags rule identifiers.
const (
	RuleXMLTagsMismatched = "xmltags/mismatched"
	RuleXMLTagsUnclosed   = "xmltags/unclosed"
	RuleXMLTagsUnopened   = "xmltags/unopened"
	RuleXMLTagsMaxDepth   = "xmltags/max-depth"
	RuleXMLTagsRequired   = "xmltags/required"
	RuleXMLTagsAttributes = "xmltags/attributes"
)

// defaultMaxTagDepth bounds tag nesting.
const defaultMaxTagDepth = 3

// attrPattern matches one attribute inside a tag. The value group is
// empty for bare attributes and unquoted values.
var attrPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.:-]*)(?:=("(?:[^"\\]|\\.)*"|'[^']*'|[^\s"'<>]*))?`)

// XMLTags validates inline XML-style tag spans: correct nesting, bounded
// depth, required tag presence, and quoted attribute values.
type XMLTags struct{}

// NewXMLTags returns the xmltags validator.
func NewXMLTags() *XMLTags {
	return &XMLTags{}
}

func (x *XMLTags) Name() string { return "xmltags" }

func (x *XMLTags) Description() string {
	return "Validates inline XML-style tag nesting, depth, and attributes"
}

func (x *XMLTags) Validate(_ context.Context, doc *document.Document, cfg Config) []Result {
	var results []Result
	maxDepth := cfg.IntOption("max_depth", defaultMaxTagDepth)

	seen := make(map[string]bool)
	var stack []document.Tag

	for _, tag := range doc.Tags {
		loc := &Location{Path: doc.Path, Line: tag.Line, Column: tag.Column, Section: tag.Name}

		switch tag.Kind {
		case document.TagOpen, document.TagSelfClose:
			seen[tag.Name] = true
			results = append(results, x.checkAttributes(doc, tag, cfg)...)
			depth := len(stack) + 1
			if depth > maxDepth {
				results = append(results, Fail(x.Name(), RuleXMLTagsMaxDepth,
					cfg.RuleSeverity(RuleXMLTagsMaxDepth, SeverityWarning),
					fmt.Sprintf("tag <%s> is nested %d deep, maximum is %d", tag.Name, depth, maxDepth), loc))
			}
			if tag.Kind == document.TagOpen {
				stack = append(stack, tag)
			}

		case document.TagClose:
			if len(stack) == 0 {
				results = append(results, Fail(x.Name(), RuleXMLTagsUnopened,
					cfg.RuleSeverity(RuleXMLTagsUnopened, SeverityError),
					fmt.Sprintf("closing tag </%s> has no matching opening tag", tag.Name), loc))
				continue
			}
			top := stack[len(stack)-1]
			if top.Name != tag.Name {
				// Leave the stack alone so the open tag is still reported
				// as unclosed at its own location.
				results = append(results, Fail(x.Name(), RuleXMLTagsMismatched,
					cfg.RuleSeverity(RuleXMLTagsMismatched, SeverityError),
					fmt.Sprintf("closing tag </%s> does not match open tag <%s>", tag.Name, top.Name), loc))
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}

	for _, tag := range stack {
		results = append(results, Fail(x.Name(), RuleXMLTagsUnclosed,
			cfg.RuleSeverity(RuleXMLTagsUnclosed, SeverityError),
			fmt.Sprintf("tag <%s> is never closed", tag.Name),
			&Location{Path: doc.Path, Line: tag.Line, Column: tag.Column, Section: tag.Name}))
	}

	for _, name := range cfg.StringSliceOption("required_tags") {
		if !seen[name] {
			results = append(results, Fail(x.Name(), RuleXMLTagsRequired,
				cfg.RuleSeverity(RuleXMLTagsRequired, SeverityError),
				fmt.Sprintf("required tag <%s> does not appear in the document", name),
				&Location{Path: doc.Path, Section: name}))
		}
	}

	return results
}

func (x *XMLTags) checkAttributes(doc *document.Document, tag document.Tag, cfg Config) []Result {
	inner := tag.Raw
	// Strip the angle brackets, tag name, and any self-close slash.
	inner = inner[1 : len(inner)-1]
	if len(inner) > 0 && inner[len(inner)-1] == '/' {
		inner = inner[:len(inner)-1]
	}
	inner = inner[len(tag.Name):]

	var results []Result
	for _, m := range attrPattern.FindAllStringSubmatch(inner, -1) {
		if m[0] == "" {
			continue
		}
		value := m[2]
		// Bare attributes carry no value at all; flag only unquoted values.
		if !strings.Contains(m[0], "=") {
			continue
		}
		if len(value) < 2 || (value[0] != '"' && value[0] != '\'') || value[len(value)-1] != value[0] {
			results = append(results, Fail(x.Name(), RuleXMLTagsAttributes,
				cfg.RuleSeverity(RuleXMLTagsAttributes, SeverityError),
				fmt.Sprintf("attribute %q on tag <%s> must use a quoted value", m[1], tag.Name),
				&Location{Path: doc.Path, Line: tag.Line, Column: tag.Column, Section: tag.Name}))
		}
	}
	return results
}
