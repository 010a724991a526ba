package validator

import (
	"context"
	"testing"
)

const annotatedDoc = `---
description: A rule.
globs: ["**/*.go"]
---

# Title

@context {"type": "style"}

@version {"version": "1.2.3"}
`

func TestAnnotations_Valid(t *testing.T) {
	doc := mustDoc(t, annotatedDoc)
	results := NewAnnotations().Validate(context.Background(), doc, Config{})
	if rules := rulesOf(results); len(rules) != 0 {
		t.Errorf("Validate() findings = %v, want none", rules)
	}
}

func TestAnnotations_InvalidJSON(t *testing.T) {
	doc := mustDoc(t, "# T\n\n@context {type: style}\n")
	results := NewAnnotations().Validate(context.Background(), doc, Config{})
	if got := countRule(results, RuleAnnotationsInvalidJSON); got != 1 {
		t.Errorf("invalid-json findings = %d, want 1 (%v)", got, rulesOf(results))
	}
}

func TestAnnotations_LenientJSON(t *testing.T) {
	content := "# T\n\n@context {\"type\": \"style\", /* note */ \"scope\": \"repo\",}\n"

	doc := mustDoc(t, content)
	strict := NewAnnotations().Validate(context.Background(), doc, Config{})
	if got := countRule(strict, RuleAnnotationsInvalidJSON); got != 1 {
		t.Errorf("strict findings = %d, want 1", got)
	}

	lenient := NewAnnotations().Validate(context.Background(), doc, Config{
		Options: map[string]any{"lenient_json": true},
	})
	if got := countRule(lenient, RuleAnnotationsInvalidJSON); got != 0 {
		t.Errorf("lenient findings = %d, want 0 (%v)", got, rulesOf(lenient))
	}
}

func TestAnnotations_UnknownName(t *testing.T) {
	doc := mustDoc(t, "# T\n\n@mystery {\"a\": 1}\n")
	results := NewAnnotations().Validate(context.Background(), doc, Config{})

	if got := countRule(results, RuleAnnotationsUnknownName); got != 1 {
		t.Fatalf("unknown-name findings = %d, want 1", got)
	}
	for _, r := range results {
		if r.Rule == RuleAnnotationsUnknownName && r.Severity != SeverityWarning {
			t.Errorf("unknown-name severity = %v, want warning", r.Severity)
		}
	}
}

func TestAnnotations_RequiredKeys(t *testing.T) {
	doc := mustDoc(t, "# T\n\n@context {\"scope\": \"repo\"}\n")
	results := NewAnnotations().Validate(context.Background(), doc, Config{})
	if got := countRule(results, RuleAnnotationsRequiredKey); got != 1 {
		t.Errorf("required-key findings = %d, want 1 (%v)", got, rulesOf(results))
	}
}

func TestAnnotations_Version(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"valid semver", `{"version": "1.2.3"}`, 0},
		{"with prerelease", `{"version": "2.0.0-rc.1"}`, 0},
		{"not semver", `{"version": "latest"}`, 1},
		{"not a string", `{"version": 3}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, "# T\n\n@version "+tt.payload+"\n")
			results := NewAnnotations().Validate(context.Background(), doc, Config{})
			if got := countRule(results, RuleAnnotationsVersion); got != tt.want {
				t.Errorf("version findings = %d, want %d (%v)", got, tt.want, rulesOf(results))
			}
		})
	}
}

func TestAnnotations_Duplicate(t *testing.T) {
	content := "# T\n\n@examples {\"a\": 1}\n\n@examples {\"b\": 2}\n"

	doc := mustDoc(t, content)
	results := NewAnnotations().Validate(context.Background(), doc, Config{})
	if got := countRule(results, RuleAnnotationsDuplicate); got != 1 {
		t.Errorf("duplicate findings = %d, want 1", got)
	}

	repeatable := NewAnnotations().Validate(context.Background(), doc, Config{
		Options: map[string]any{"repeatable": []any{"examples"}},
	})
	if got := countRule(repeatable, RuleAnnotationsDuplicate); got != 0 {
		t.Errorf("repeatable findings = %d, want 0", got)
	}
}

func TestAnnotations_Unterminated(t *testing.T) {
	doc := mustDoc(t, "# T\n\n@context {\"type\": \"style\"\n")
	results := NewAnnotations().Validate(context.Background(), doc, Config{})
	if got := countRule(results, RuleAnnotationsUnterminated); got != 1 {
		t.Errorf("unterminated findings = %d, want 1 (%v)", got, rulesOf(results))
	}
}

func TestAnnotations_Required(t *testing.T) {
	doc := mustDoc(t, "# T\n\n@context {\"type\": \"style\"}\n")
	cfg := Config{Options: map[string]any{"required": []any{"context", "implementation"}}}
	results := NewAnnotations().Validate(context.Background(), doc, cfg)
	if got := countRule(results, RuleAnnotationsRequired); got != 1 {
		t.Errorf("required findings = %d, want 1 (%v)", got, rulesOf(results))
	}
}
