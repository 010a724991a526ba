package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thoreinstein/mdcheck/internal/document"
)

// Frontmatter rule identifiers.
const (
	RuleFrontmatterMissing          = "frontmatter/missing"
	RuleFrontmatterDescription      = "frontmatter/description"
	RuleFrontmatterDescriptionStyle = "frontmatter/description-style"
	RuleFrontmatterGlobs            = "frontmatter/globs"
	RuleFrontmatterGlobPattern      = "frontmatter/glob-pattern"
	RuleFrontmatterRelatedDocs      = "frontmatter/related-docs"
)

// defaultMaxDescriptionLength bounds the single-sentence heuristic.
const defaultMaxDescriptionLength = 100

// Frontmatter validates the YAML metadata block: presence, required keys,
// description style, glob syntax, and the shape of related_docs. Existence
// of related_docs targets is left to the crossref validator so filesystem
// checks happen in one place.
type Frontmatter struct{}

// NewFrontmatter returns the frontmatter validator.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{}
}

func (f *Frontmatter) Name() string { return "frontmatter" }

func (f *Frontmatter) Description() string {
	return "Validates YAML frontmatter presence, required keys, and glob patterns"
}

func (f *Frontmatter) Validate(_ context.Context, doc *document.Document, cfg Config) []Result {
	loc := func(section string) *Location {
		return &Location{Path: doc.Path, Line: 1, Section: section}
	}

	// Missing frontmatter short-circuits the field checks.
	if !doc.HasFrontmatter {
		return []Result{Fail(f.Name(), RuleFrontmatterMissing,
			cfg.RuleSeverity(RuleFrontmatterMissing, SeverityError),
			"document has no YAML frontmatter block", loc("frontmatter"))}
	}

	var results []Result

	results = append(results, f.checkDescription(doc, cfg, loc)...)
	results = append(results, f.checkGlobs(doc, cfg, loc)...)
	results = append(results, f.checkRelatedDocs(doc, cfg, loc)...)

	return results
}

func (f *Frontmatter) checkDescription(doc *document.Document, cfg Config, loc func(string) *Location) []Result {
	raw, present := doc.Frontmatter["description"]
	if !present {
		return []Result{Fail(f.Name(), RuleFrontmatterDescription,
			cfg.RuleSeverity(RuleFrontmatterDescription, SeverityError),
			"frontmatter is missing required key \"description\"", loc("description"))}
	}
	desc, ok := raw.(string)
	if !ok {
		return []Result{Fail(f.Name(), RuleFrontmatterDescription,
			cfg.RuleSeverity(RuleFrontmatterDescription, SeverityError),
			"frontmatter key \"description\" must be a string", loc("description"))}
	}
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return []Result{Fail(f.Name(), RuleFrontmatterDescription,
			cfg.RuleSeverity(RuleFrontmatterDescription, SeverityError),
			"frontmatter key \"description\" must be non-empty", loc("description"))}
	}

	var results []Result
	sev := cfg.RuleSeverity(RuleFrontmatterDescriptionStyle, SeverityWarning)
	maxLen := cfg.IntOption("max_description_length", defaultMaxDescriptionLength)

	if strings.ContainsAny(desc, "\n\r") {
		results = append(results, Fail(f.Name(), RuleFrontmatterDescriptionStyle, sev,
			"description must be a single sentence without line breaks", loc("description")))
	}
	if !strings.ContainsAny(desc[len(desc)-1:], ".!?") {
		results = append(results, Fail(f.Name(), RuleFrontmatterDescriptionStyle, sev,
			"description should end with terminal punctuation", loc("description")))
	}
	if len(desc) > maxLen {
		results = append(results, Fail(f.Name(), RuleFrontmatterDescriptionStyle, sev,
			fmt.Sprintf("description is %d characters, maximum is %d", len(desc), maxLen),
			loc("description")))
	}
	return results
}

func (f *Frontmatter) checkGlobs(doc *document.Document, cfg Config, loc func(string) *Location) []Result {
	raw, present := doc.Frontmatter["globs"]
	if !present {
		return []Result{Fail(f.Name(), RuleFrontmatterGlobs,
			cfg.RuleSeverity(RuleFrontmatterGlobs, SeverityError),
			"frontmatter is missing required key \"globs\"", loc("globs"))}
	}
	patterns, bad := stringList(raw)
	if bad {
		return []Result{Fail(f.Name(), RuleFrontmatterGlobs,
			cfg.RuleSeverity(RuleFrontmatterGlobs, SeverityError),
			"frontmatter key \"globs\" must be a list of strings", loc("globs"))}
	}
	if len(patterns) == 0 {
		return []Result{Fail(f.Name(), RuleFrontmatterGlobs,
			cfg.RuleSeverity(RuleFrontmatterGlobs, SeverityError),
			"frontmatter key \"globs\" must be a non-empty list", loc("globs"))}
	}

	var results []Result
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			results = append(results, Fail(f.Name(), RuleFrontmatterGlobPattern,
				cfg.RuleSeverity(RuleFrontmatterGlobPattern, SeverityError),
				fmt.Sprintf("invalid glob pattern %q", pattern), loc("globs")))
		}
	}
	return results
}

func (f *Frontmatter) checkRelatedDocs(doc *document.Document, cfg Config, loc func(string) *Location) []Result {
	raw, present := doc.Frontmatter["related_docs"]
	if !present {
		return nil
	}
	if _, bad := stringList(raw); bad {
		return []Result{Fail(f.Name(), RuleFrontmatterRelatedDocs,
			cfg.RuleSeverity(RuleFrontmatterRelatedDocs, SeverityError),
			"frontmatter key \"related_docs\" must be a list of strings", loc("related_docs"))}
	}
	return nil
}

// stringList coerces a frontmatter value into a string slice. The second
// return is true when the value is present but not a list of strings.
func stringList(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, false
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, true
			}
			out = append(out, s)
		}
		return out, false
	case nil:
		return nil, false
	}
	return nil, true
}
