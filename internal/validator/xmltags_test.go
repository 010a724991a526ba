package validator

import (
	"context"
	"testing"
)

func TestXMLTags_Balanced(t *testing.T) {
	doc := mustDoc(t, "# T\n\n<rule>\n<example>ok</example>\n</rule>\n")
	results := NewXMLTags().Validate(context.Background(), doc, Config{})
	if rules := rulesOf(results); len(rules) != 0 {
		t.Errorf("Validate() findings = %v, want none", rules)
	}
}

func TestXMLTags_Mismatched(t *testing.T) {
	doc := mustDoc(t, "# T\n\n<a><b></a></b>\n")
	results := NewXMLTags().Validate(context.Background(), doc, Config{})

	if got := countRule(results, RuleXMLTagsMismatched); got == 0 {
		t.Fatalf("mismatched findings = 0, want at least 1 (%v)", rulesOf(results))
	}
	for _, r := range results {
		if r.Rule == RuleXMLTagsMismatched {
			if r.Location == nil || r.Location.Line != 3 {
				t.Errorf("mismatched location = %+v, want line 3", r.Location)
			}
			if r.Severity != SeverityError {
				t.Errorf("mismatched severity = %v, want error", r.Severity)
			}
		}
	}
}

func TestXMLTags_Unclosed(t *testing.T) {
	doc := mustDoc(t, "# T\n\n<rule>\n\ntext\n")
	results := NewXMLTags().Validate(context.Background(), doc, Config{})

	if got := countRule(results, RuleXMLTagsUnclosed); got != 1 {
		t.Fatalf("unclosed findings = %d, want 1", got)
	}
	for _, r := range results {
		if r.Rule == RuleXMLTagsUnclosed {
			if r.Location == nil || r.Location.Line != 3 {
				t.Errorf("unclosed location = %+v, want line 3 (the opening tag)", r.Location)
			}
		}
	}
}

func TestXMLTags_Unopened(t *testing.T) {
	doc := mustDoc(t, "# T\n\n</rule>\n")
	results := NewXMLTags().Validate(context.Background(), doc, Config{})
	if got := countRule(results, RuleXMLTagsUnopened); got != 1 {
		t.Errorf("unopened findings = %d, want 1 (%v)", got, rulesOf(results))
	}
}

func TestXMLTags_SelfClose(t *testing.T) {
	doc := mustDoc(t, "# T\n\n<rule/>\n")
	results := NewXMLTags().Validate(context.Background(), doc, Config{})
	if rules := rulesOf(results); len(rules) != 0 {
		t.Errorf("Validate() findings = %v, want none", rules)
	}
}

func TestXMLTags_MaxDepth(t *testing.T) {
	content := "# T\n\n<a><b><c><d>deep</d></c></b></a>\n"

	doc := mustDoc(t, content)
	results := NewXMLTags().Validate(context.Background(), doc, Config{})
	if got := countRule(results, RuleXMLTagsMaxDepth); got != 1 {
		t.Errorf("max-depth findings = %d, want 1 (%v)", got, rulesOf(results))
	}

	relaxed := NewXMLTags().Validate(context.Background(), doc, Config{
		Options: map[string]any{"max_depth": 4},
	})
	if got := countRule(relaxed, RuleXMLTagsMaxDepth); got != 0 {
		t.Errorf("relaxed max-depth findings = %d, want 0", got)
	}
}

func TestXMLTags_Required(t *testing.T) {
	doc := mustDoc(t, "# T\n\n<rule>body</rule>\n")
	cfg := Config{Options: map[string]any{"required_tags": []any{"rule", "example"}}}
	results := NewXMLTags().Validate(context.Background(), doc, cfg)

	if got := countRule(results, RuleXMLTagsRequired); got != 1 {
		t.Fatalf("required findings = %d, want 1", got)
	}
	for _, r := range results {
		if r.Rule == RuleXMLTagsRequired && r.Location.Section != "example" {
			t.Errorf("required section = %q, want %q", r.Location.Section, "example")
		}
	}
}

func TestXMLTags_Attributes(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want int
	}{
		{"double quoted", `<rule id="naming">x</rule>`, 0},
		{"single quoted", `<rule id='naming'>x</rule>`, 0},
		{"bare attribute", `<rule strict>x</rule>`, 0},
		{"unquoted value", `<rule id=naming>x</rule>`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, "# T\n\n"+tt.tag+"\n")
			results := NewXMLTags().Validate(context.Background(), doc, Config{})
			if got := countRule(results, RuleXMLTagsAttributes); got != tt.want {
				t.Errorf("attribute findings = %d, want %d (%v)", got, tt.want, rulesOf(results))
			}
		})
	}
}

func TestXMLTags_IgnoresFencedCode(t *testing.T) {
	doc := mustDoc(t, "# T\n\n```html\n<unclosed>\n```\n")
	results := NewXMLTags().Validate(context.Background(), doc, Config{})
	if rules := rulesOf(results); len(rules) != 0 {
		t.Errorf("Validate() findings = %v, want none", rules)
	}
}
