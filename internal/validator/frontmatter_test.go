package validator

import (
	"context"
	"strings"
	"testing"
)

func TestFrontmatter_Missing(t *testing.T) {
	doc := mustDoc(t, "# Title\n\nNo frontmatter here.\n")
	results := NewFrontmatter().Validate(context.Background(), doc, Config{})

	if len(results) != 1 {
		t.Fatalf("Validate() = %d results, want exactly 1", len(results))
	}
	r := results[0]
	if r.Rule != RuleFrontmatterMissing || r.Severity != SeverityError {
		t.Errorf("Validate() = %+v, want %s error", r, RuleFrontmatterMissing)
	}
}

func TestFrontmatter_Valid(t *testing.T) {
	doc := mustDoc(t, `---
description: Enforces error wrapping conventions.
globs:
  - "**/*.go"
---

# Title
`)
	results := NewFrontmatter().Validate(context.Background(), doc, Config{})
	if rules := rulesOf(results); len(rules) != 0 {
		t.Errorf("Validate() findings = %v, want none", rules)
	}
}

func TestFrontmatter_EmptyFields(t *testing.T) {
	doc := mustDoc(t, "---\ndescription: \"\"\nglobs: []\n---\n\n# Title\n")
	results := NewFrontmatter().Validate(context.Background(), doc, Config{})

	if got := countRule(results, RuleFrontmatterDescription); got != 1 {
		t.Errorf("description findings = %d, want 1", got)
	}
	if got := countRule(results, RuleFrontmatterGlobs); got != 1 {
		t.Errorf("globs findings = %d, want 1", got)
	}
	if len(rulesOf(results)) != 2 {
		t.Errorf("Validate() findings = %v, want exactly 2", rulesOf(results))
	}
}

func TestFrontmatter_MissingKeys(t *testing.T) {
	doc := mustDoc(t, "---\ntitle: something else\n---\n\n# Title\n")
	results := NewFrontmatter().Validate(context.Background(), doc, Config{})

	if got := countRule(results, RuleFrontmatterDescription); got != 1 {
		t.Errorf("description findings = %d, want 1", got)
	}
	if got := countRule(results, RuleFrontmatterGlobs); got != 1 {
		t.Errorf("globs findings = %d, want 1", got)
	}
}

func TestFrontmatter_DescriptionStyle(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want int
	}{
		{"single sentence", "description: Checks naming conventions.", 0},
		{"no punctuation", "description: Checks naming conventions", 1},
		{"multiline", "description: |\n  First line.\n  Second line.", 1},
		{"too long", "description: " + strings.Repeat("x", 99) + "..", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, "---\n"+tt.desc+"\nglobs: [\"**/*.go\"]\n---\n\n# T\n")
			results := NewFrontmatter().Validate(context.Background(), doc, Config{})
			if got := countRule(results, RuleFrontmatterDescriptionStyle); got != tt.want {
				t.Errorf("style findings = %d, want %d (%v)", got, tt.want, rulesOf(results))
			}
		})
	}
}

func TestFrontmatter_DescriptionLengthOption(t *testing.T) {
	doc := mustDoc(t, "---\ndescription: A short sentence.\nglobs: [\"**/*.go\"]\n---\n\n# T\n")
	cfg := Config{Options: map[string]any{"max_description_length": 5}}
	results := NewFrontmatter().Validate(context.Background(), doc, cfg)
	if got := countRule(results, RuleFrontmatterDescriptionStyle); got != 1 {
		t.Errorf("style findings = %d, want 1", got)
	}
}

func TestFrontmatter_GlobPattern(t *testing.T) {
	doc := mustDoc(t, "---\ndescription: A rule.\nglobs:\n  - \"**/*.go\"\n  - \"[\"\n---\n\n# T\n")
	results := NewFrontmatter().Validate(context.Background(), doc, Config{})
	if got := countRule(results, RuleFrontmatterGlobPattern); got != 1 {
		t.Errorf("glob pattern findings = %d, want 1 (%v)", got, rulesOf(results))
	}
}

func TestFrontmatter_GlobsNotStrings(t *testing.T) {
	doc := mustDoc(t, "---\ndescription: A rule.\nglobs:\n  - 42\n---\n\n# T\n")
	results := NewFrontmatter().Validate(context.Background(), doc, Config{})
	if got := countRule(results, RuleFrontmatterGlobs); got != 1 {
		t.Errorf("globs findings = %d, want 1", got)
	}
}

func TestFrontmatter_RelatedDocsShape(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{"absent", "", 0},
		{"list of strings", "related_docs:\n  - docs/other.md", 0},
		{"scalar", "related_docs: docs/other.md", 1},
		{"mixed list", "related_docs:\n  - docs/other.md\n  - 7", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "---\ndescription: A rule.\nglobs: [\"**/*.go\"]\n"
			if tt.yaml != "" {
				content += tt.yaml + "\n"
			}
			content += "---\n\n# T\n"
			doc := mustDoc(t, content)
			results := NewFrontmatter().Validate(context.Background(), doc, Config{})
			if got := countRule(results, RuleFrontmatterRelatedDocs); got != tt.want {
				t.Errorf("related_docs findings = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFrontmatter_SeverityOverride(t *testing.T) {
	doc := mustDoc(t, "---\ndescription: A rule\nglobs: [\"**/*.go\"]\n---\n\n# T\n")
	cfg := Config{SeverityOverrides: map[string]Severity{
		RuleFrontmatterDescriptionStyle: SeverityError,
	}}
	results := NewFrontmatter().Validate(context.Background(), doc, cfg)

	found := false
	for _, r := range results {
		if r.Rule == RuleFrontmatterDescriptionStyle {
			found = true
			if r.Severity != SeverityError {
				t.Errorf("severity = %v, want error", r.Severity)
			}
		}
	}
	if !found {
		t.Fatalf("no %s finding: %v", RuleFrontmatterDescriptionStyle, rulesOf(results))
	}
}
