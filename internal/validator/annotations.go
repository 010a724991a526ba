package validator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/tailscale/hujson"

	"github.com/thoreinstein/mdcheck/internal/document"
)

// Annotations rule identifiers.
const (
	RuleAnnotationsUnterminated = "annotations/unterminated"
	RuleAnnotationsInvalidJSON  = "annotations/invalid-json"
	RuleAnnotationsUnknownName  = "annotations/unknown-name"
	RuleAnnotationsRequiredKey  = "annotations/required-key"
	RuleAnnotationsVersion      = "annotations/version"
	RuleAnnotationsDuplicate    = "annotations/duplicate"
	RuleAnnotationsRequired     = "annotations/required"
)

// knownAnnotations is the closed set of recognized annotation kinds.
// Names outside this set are reported as warnings, not errors, so new
// kinds can be introduced without breaking older validators.
var knownAnnotations = map[string]bool{
	"context":        true,
	"implementation": true,
	"validation":     true,
	"examples":       true,
	"thinking":       true,
	"quotes":         true,
	"format":         true,
	"options":        true,
	"rules":          true,
	"version":        true,
}

// requiredAnnotationKeys maps annotation names to top-level payload keys
// they must carry.
var requiredAnnotationKeys = map[string][]string{
	"context": {"type"},
	"version": {"version"},
}

// Annotations validates @name{...} blocks: payloads must be valid JSON
// (or JWCC when the lenient_json option is set), names should be from the
// known set, kind-specific required keys must be present, and duplicates
// are flagged unless the name is configured as repeatable.
type Annotations struct{}

// NewAnnotations returns the annotations validator.
func NewAnnotations() *Annotations {
	return &Annotations{}
}

func (a *Annotations) Name() string { return "annotations" }

func (a *Annotations) Description() string {
	return "Validates @name{...} annotation blocks and their JSON payloads"
}

func (a *Annotations) Validate(_ context.Context, doc *document.Document, cfg Config) []Result {
	var results []Result

	lenient := cfg.BoolOption("lenient_json", false)
	repeatable := make(map[string]bool)
	for _, name := range cfg.StringSliceOption("repeatable") {
		repeatable[name] = true
	}

	seen := make(map[string]int)
	for _, ann := range doc.Annotations {
		loc := &Location{Path: doc.Path, Line: ann.Line, Column: ann.Column, Section: "@" + ann.Name}

		seen[ann.Name]++
		if seen[ann.Name] == 2 && !repeatable[ann.Name] {
			results = append(results, Fail(a.Name(), RuleAnnotationsDuplicate,
				cfg.RuleSeverity(RuleAnnotationsDuplicate, SeverityWarning),
				fmt.Sprintf("annotation @%s appears more than once", ann.Name), loc))
		}

		if !knownAnnotations[ann.Name] {
			results = append(results, Fail(a.Name(), RuleAnnotationsUnknownName,
				cfg.RuleSeverity(RuleAnnotationsUnknownName, SeverityWarning),
				fmt.Sprintf("unknown annotation @%s", ann.Name), loc))
		}

		if ann.Unterminated {
			results = append(results, Fail(a.Name(), RuleAnnotationsUnterminated,
				cfg.RuleSeverity(RuleAnnotationsUnterminated, SeverityError),
				fmt.Sprintf("annotation @%s payload is never closed", ann.Name), loc))
			continue
		}

		payload, err := decodePayload(ann.Payload, lenient)
		if err != nil {
			results = append(results, Fail(a.Name(), RuleAnnotationsInvalidJSON,
				cfg.RuleSeverity(RuleAnnotationsInvalidJSON, SeverityError),
				fmt.Sprintf("annotation @%s payload is not valid JSON: %v", ann.Name, err), loc))
			continue
		}

		results = append(results, a.checkPayload(ann, payload, cfg, loc)...)
	}

	for _, name := range cfg.StringSliceOption("required") {
		if seen[name] == 0 {
			results = append(results, Fail(a.Name(), RuleAnnotationsRequired,
				cfg.RuleSeverity(RuleAnnotationsRequired, SeverityError),
				fmt.Sprintf("required annotation @%s is missing", name),
				&Location{Path: doc.Path, Section: "@" + name}))
		}
	}

	return results
}

func (a *Annotations) checkPayload(ann document.Annotation, payload map[string]any, cfg Config, loc *Location) []Result {
	var results []Result
	for _, key := range requiredAnnotationKeys[ann.Name] {
		if _, ok := payload[key]; !ok {
			results = append(results, Fail(a.Name(), RuleAnnotationsRequiredKey,
				cfg.RuleSeverity(RuleAnnotationsRequiredKey, SeverityError),
				fmt.Sprintf("annotation @%s requires key %q", ann.Name, key), loc))
		}
	}
	if ann.Name == "version" {
		if raw, ok := payload["version"]; ok {
			results = append(results, a.checkVersion(raw, cfg, loc)...)
		}
	}
	return results
}

func (a *Annotations) checkVersion(raw any, cfg Config, loc *Location) []Result {
	sev := cfg.RuleSeverity(RuleAnnotationsVersion, SeverityError)
	s, ok := raw.(string)
	if !ok {
		return []Result{Fail(a.Name(), RuleAnnotationsVersion, sev,
			"annotation @version key \"version\" must be a string", loc)}
	}
	if _, err := semver.NewVersion(s); err != nil {
		return []Result{Fail(a.Name(), RuleAnnotationsVersion, sev,
			fmt.Sprintf("annotation @version value %q is not a semantic version: %v", s, err), loc)}
	}
	return nil
}

// decodePayload parses an annotation payload into a JSON object. When
// lenient is set, comments and trailing commas are standardized away
// first so hand-written payloads still parse.
func decodePayload(payload string, lenient bool) (map[string]any, error) {
	data := []byte(payload)
	if lenient {
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, err
		}
		data = std
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
